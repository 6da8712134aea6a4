package llm

import (
	"context"
	"fmt"
	"net/http"

	openaigo "github.com/sashabaranov/go-openai"
)

// openAIClient serves OpenAI and any OpenAI-compatible endpoint (OpenRouter).
type openAIClient struct {
	client *openaigo.Client
	model  string
}

func newOpenAIClient(route Route, apiKey string, httpClient *http.Client) *openAIClient {
	cfg := openaigo.DefaultConfig(apiKey)
	if route.BaseURL != "" {
		cfg.BaseURL = route.BaseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &openAIClient{
		client: openaigo.NewClientWithConfig(cfg),
		model:  route.Model,
	}
}

func (c *openAIClient) Complete(ctx context.Context, req Request) (Response, error) {
	messages := []openaigo.ChatCompletionMessage{
		{Role: openaigo.ChatMessageRoleSystem, Content: req.System},
		{Role: openaigo.ChatMessageRoleUser, Content: req.User},
	}

	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrCompletion, err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, ErrNoChoices
	}

	return Response{
		Content: resp.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

var _ ChatClient = (*openAIClient)(nil)
