package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdownConversion indicates goldmark failed to render the input.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// MarkdownConverter turns a Markdown document into an HTML fragment.
type MarkdownConverter interface {
	ToFragment(ctx context.Context, markdown string) (string, error)
}

// GoldmarkConverter renders GitHub-flavored Markdown (tables included) with
// inline-styled code highlighting, so no extra stylesheet is needed in print.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter.
// Raw HTML in the input is dropped by goldmark's safe renderer.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToFragment converts markdown to an HTML fragment. Goldmark has no context
// support, so conversion runs in a goroutine and ctx only bounds the wait.
func (c *GoldmarkConverter) ToFragment(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

var _ MarkdownConverter = (*GoldmarkConverter)(nil)

var (
	// fenceRe matches content wrapped entirely in one fenced block, with an optional language tag.
	fenceRe = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*[ \t]*\r?\n(.*?)\r?\n?```$")
	tagRe   = regexp.MustCompile(`(?i)</?[a-z][a-z0-9-]*(\s[^<>]*)?/?>`)
)

// StripCodeFence removes a single fenced code block wrapping the whole content,
// the usual shape of a chat model answering "```html ... ```".
func StripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if m := fenceRe.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// ContainsMarkup reports whether content has at least one HTML tag.
func ContainsMarkup(content string) bool {
	return tagRe.MatchString(content)
}
