package llm

import (
	"errors"
	"fmt"
	"strings"
)

// Provider selects the completion backend.
type Provider string

const (
	ProviderAuto       Provider = "auto"
	ProviderOpenAI     Provider = "openai"
	ProviderOpenRouter Provider = "openrouter"
	ProviderOllama     Provider = "ollama"
)

// Provider defaults.
const (
	OpenAIModel       = "gpt-3.5-turbo"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	OpenRouterModel   = "x-ai/grok-4-fast:free"
	OllamaBaseURL     = "http://localhost:11434"
	OllamaModel       = "llama3.2"

	openRouterKeyPrefix = "sk-or-"
)

var (
	ErrUnknownProvider = errors.New("unknown llm provider")
	ErrMissingAPIKey   = errors.New("api key required")
)

// ParseProvider parses a provider name. Empty means ProviderAuto.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ProviderAuto, nil
	case ProviderAuto, ProviderOpenAI, ProviderOpenRouter, ProviderOllama:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}

// Route is a fully resolved backend: which provider, which model, which base URL.
// An empty BaseURL means the client library default.
type Route struct {
	Provider Provider
	Model    string
	BaseURL  string
}

// Resolve picks the concrete route for provider. In auto mode a key starting
// with "sk-or-" selects OpenRouter, anything else OpenAI. model and baseURL
// override the provider defaults when non-empty.
func Resolve(provider Provider, apiKey, model, baseURL string) (Route, error) {
	if provider == "" || provider == ProviderAuto {
		provider = ProviderOpenAI
		if strings.HasPrefix(apiKey, openRouterKeyPrefix) {
			provider = ProviderOpenRouter
		}
	}

	var r Route
	switch provider {
	case ProviderOpenAI:
		r = Route{Provider: provider, Model: OpenAIModel}
	case ProviderOpenRouter:
		r = Route{Provider: provider, Model: OpenRouterModel, BaseURL: OpenRouterBaseURL}
	case ProviderOllama:
		r = Route{Provider: provider, Model: OllamaModel, BaseURL: OllamaBaseURL}
	default:
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	if model != "" {
		r.Model = model
	}
	if baseURL != "" {
		r.BaseURL = baseURL
	}
	return r, nil
}

// NeedsAPIKey reports whether the provider authenticates with an API key.
// A local Ollama server does not.
func (p Provider) NeedsAPIKey() bool {
	return p != ProviderOllama
}
