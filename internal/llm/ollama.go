package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// ollamaClient uses Ollama's native chat API.
type ollamaClient struct {
	client *api.Client
	model  string
}

func newOllamaClient(route Route, httpClient *http.Client) (*ollamaClient, error) {
	base := strings.TrimSuffix(strings.TrimSuffix(route.BaseURL, "/"), "/v1")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, route.BaseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ollamaClient{
		client: api.NewClient(u, httpClient),
		model:  route.Model,
	}, nil
}

func (c *ollamaClient) Complete(ctx context.Context, req Request) (Response, error) {
	stream := false
	chatReq := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Stream: &stream,
		Options: map[string]any{
			"temperature": req.Temperature,
			"num_predict": req.MaxTokens,
		},
	}

	var last api.ChatResponse
	err := c.client.Chat(ctx, chatReq, func(r api.ChatResponse) error {
		last = r
		return nil
	})
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrCompletion, err)
	}
	if !last.Done && last.Message.Content == "" {
		return Response{}, ErrNoChoices
	}

	return Response{
		Content: last.Message.Content,
		Usage: Usage{
			PromptTokens:     last.PromptEvalCount,
			CompletionTokens: last.EvalCount,
			TotalTokens:      last.PromptEvalCount + last.EvalCount,
		},
	}, nil
}

var _ ChatClient = (*ollamaClient)(nil)
