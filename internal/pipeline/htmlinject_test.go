package pipeline

import (
	"context"
	"testing"
)

func TestEscapeStyleContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no escape needed", input: "body { color: red; }", expected: "body { color: red; }"},
		{name: "escapes style close", input: "</style>", expected: `<\/style>`},
		{name: "multiple occurrences", input: "</a></b>", expected: `<\/a><\/b>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := EscapeStyleContent(tt.input); got != tt.expected {
				t.Errorf("EscapeStyleContent(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCSSInjection_InjectCSS(t *testing.T) {
	t.Parallel()

	const css = "p { margin: 0; }"
	const block = "<style>\n" + css + "\n</style>\n"

	tests := []struct {
		name     string
		html     string
		css      string
		expected string
	}{
		{
			name:     "empty CSS returns HTML unchanged",
			html:     "<html><head></head><body>x</body></html>",
			css:      "",
			expected: "<html><head></head><body>x</body></html>",
		},
		{
			name:     "injects before </head>",
			html:     "<html><head></head><body>x</body></html>",
			css:      css,
			expected: "<html><head>" + block + "</head><body>x</body></html>",
		},
		{
			name:     "mixed case head",
			html:     "<html><HEAD></HEAD><body>x</body></html>",
			css:      css,
			expected: "<html><HEAD>" + block + "</HEAD><body>x</body></html>",
		},
		{
			name:     "after body when no head",
			html:     `<body class="a">x</body>`,
			css:      css,
			expected: `<body class="a">` + block + "x</body>",
		},
		{
			name:     "prepends to a fragment",
			html:     "<table></table>",
			css:      css,
			expected: block + "<table></table>",
		},
		{
			name:     "escapes closing sequences",
			html:     "<head></head>",
			css:      "</style><script>",
			expected: "<head><style>\n<\\/style><script>\n</style>\n</head>",
		},
	}

	injector := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if got != tt.expected {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCSSInjection_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	html := "<html><head></head></html>"
	got := (&CSSInjection{}).InjectCSS(ctx, html, "p{}")
	if got != html {
		t.Errorf("InjectCSS() with cancelled ctx = %q, want unchanged", got)
	}
}
