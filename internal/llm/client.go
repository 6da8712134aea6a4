package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrCompletion      = errors.New("chat completion failed")
	ErrNoChoices       = errors.New("completion returned no choices")
	ErrInvalidEndpoint = errors.New("invalid provider endpoint")
)

// Request is one system+user exchange.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Usage is the token accounting reported by the provider. Zero when not reported.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response holds the first choice's content.
type Response struct {
	Content string
	Usage   Usage
}

// ChatClient performs a single, non-streaming chat completion.
type ChatClient interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// New returns the ChatClient for route. httpClient may be nil for the
// library default.
func New(route Route, apiKey string, httpClient *http.Client) (ChatClient, error) {
	if route.Provider.NeedsAPIKey() && apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	switch route.Provider {
	case ProviderOpenAI, ProviderOpenRouter:
		return newOpenAIClient(route, apiKey, httpClient), nil
	case ProviderOllama:
		return newOllamaClient(route, httpClient)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, route.Provider)
	}
}
