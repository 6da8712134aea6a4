package llm

import (
	"errors"
	"testing"
)

func TestParseProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Provider
		wantErr bool
	}{
		{"", ProviderAuto, false},
		{"auto", ProviderAuto, false},
		{"OpenAI", ProviderOpenAI, false},
		{" openrouter ", ProviderOpenRouter, false},
		{"ollama", ProviderOllama, false},
		{"anthropic", "", true},
	}

	for _, tt := range tests {
		got, err := ParseProvider(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownProvider) {
				t.Errorf("ParseProvider(%q) error = %v, want ErrUnknownProvider", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseProvider(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider Provider
		apiKey   string
		model    string
		baseURL  string
		want     Route
	}{
		{
			name:     "auto with openai key",
			provider: ProviderAuto,
			apiKey:   "sk-proj-abc",
			want:     Route{Provider: ProviderOpenAI, Model: OpenAIModel},
		},
		{
			name:     "auto with openrouter key",
			provider: ProviderAuto,
			apiKey:   "sk-or-v1-abc",
			want:     Route{Provider: ProviderOpenRouter, Model: OpenRouterModel, BaseURL: OpenRouterBaseURL},
		},
		{
			name:     "empty provider behaves as auto",
			provider: "",
			apiKey:   "sk-or-x",
			want:     Route{Provider: ProviderOpenRouter, Model: OpenRouterModel, BaseURL: OpenRouterBaseURL},
		},
		{
			name:     "explicit openai ignores key shape",
			provider: ProviderOpenAI,
			apiKey:   "sk-or-v1-abc",
			want:     Route{Provider: ProviderOpenAI, Model: OpenAIModel},
		},
		{
			name:     "ollama defaults",
			provider: ProviderOllama,
			want:     Route{Provider: ProviderOllama, Model: OllamaModel, BaseURL: OllamaBaseURL},
		},
		{
			name:     "overrides",
			provider: ProviderOpenAI,
			apiKey:   "k",
			model:    "gpt-4o-mini",
			baseURL:  "http://proxy.local/v1",
			want:     Route{Provider: ProviderOpenAI, Model: "gpt-4o-mini", BaseURL: "http://proxy.local/v1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(tt.provider, tt.apiKey, tt.model, tt.baseURL)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolve_UnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := Resolve("bogus", "k", "", "")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("Resolve() error = %v, want ErrUnknownProvider", err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		_, err := New(Route{Provider: ProviderOpenAI, Model: OpenAIModel}, "", nil)
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("New() error = %v, want ErrMissingAPIKey", err)
		}
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		t.Parallel()

		c, err := New(Route{Provider: ProviderOllama, Model: OllamaModel, BaseURL: OllamaBaseURL}, "", nil)
		if err != nil || c == nil {
			t.Errorf("New() = %v, %v; want client", c, err)
		}
	})

	t.Run("ollama bad url", func(t *testing.T) {
		t.Parallel()

		_, err := New(Route{Provider: ProviderOllama, BaseURL: "not a url"}, "", nil)
		if !errors.Is(err, ErrInvalidEndpoint) {
			t.Errorf("New() error = %v, want ErrInvalidEndpoint", err)
		}
	})
}
