package lessonplan

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/alnah/go-lessonplan/internal/llm"
	"github.com/alnah/go-lessonplan/internal/metrics"
)

// mockChatClient returns a fixed response and records the request.
type mockChatClient struct {
	mu     sync.Mutex
	resp   llm.Response
	err    error
	panics bool
	block  bool
	got    llm.Request
	calls  int
}

func (m *mockChatClient) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	m.mu.Lock()
	m.calls++
	m.got = req
	m.mu.Unlock()

	if m.panics {
		panic("provider sdk bug")
	}
	if m.block {
		<-ctx.Done()
		return llm.Response{}, ctx.Err()
	}
	return m.resp, m.err
}

func noEstimate(string, string, string, string) (llm.Usage, bool) {
	return llm.Usage{}, false
}

func newTestGenerator(t *testing.T, client llm.ChatClient, opts ...GeneratorOption) *Generator {
	t.Helper()
	g, err := NewGenerator(GeneratorConfig{APIKey: "sk-test"}, append([]GeneratorOption{WithChatClient(client)}, opts...)...)
	if err != nil {
		t.Fatalf("NewGenerator() error: %v", err)
	}
	g.estimate = noEstimate
	return g
}

// ---------------------------------------------------------------------------
// TestNewGenerator
// ---------------------------------------------------------------------------

func TestNewGenerator_Routes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		cfg            GeneratorConfig
		wantProvider   llm.Provider
		wantModel      string
		wantConfigured bool
	}{
		{
			name:           "no credential is degraded",
			cfg:            GeneratorConfig{},
			wantProvider:   llm.ProviderOpenAI,
			wantModel:      llm.OpenAIModel,
			wantConfigured: false,
		},
		{
			name:           "openai key",
			cfg:            GeneratorConfig{APIKey: "sk-abc"},
			wantProvider:   llm.ProviderOpenAI,
			wantModel:      llm.OpenAIModel,
			wantConfigured: true,
		},
		{
			name:           "openrouter key inferred",
			cfg:            GeneratorConfig{APIKey: "sk-or-abc"},
			wantProvider:   llm.ProviderOpenRouter,
			wantModel:      llm.OpenRouterModel,
			wantConfigured: true,
		},
		{
			name:           "ollama needs no key",
			cfg:            GeneratorConfig{Provider: llm.ProviderOllama},
			wantProvider:   llm.ProviderOllama,
			wantModel:      llm.OllamaModel,
			wantConfigured: true,
		},
		{
			name:           "model override",
			cfg:            GeneratorConfig{APIKey: "sk-abc", Model: "gpt-4o-mini"},
			wantProvider:   llm.ProviderOpenAI,
			wantModel:      "gpt-4o-mini",
			wantConfigured: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := NewGenerator(tt.cfg)
			if err != nil {
				t.Fatalf("NewGenerator() error: %v", err)
			}
			route := g.Route()
			if route.Provider != tt.wantProvider {
				t.Errorf("provider = %q, want %q", route.Provider, tt.wantProvider)
			}
			if route.Model != tt.wantModel {
				t.Errorf("model = %q, want %q", route.Model, tt.wantModel)
			}
			if g.Configured() != tt.wantConfigured {
				t.Errorf("Configured() = %v, want %v", g.Configured(), tt.wantConfigured)
			}
		})
	}
}

func TestNewGenerator_UnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(GeneratorConfig{Provider: "anthropic-direct"})
	if !errors.Is(err, llm.ErrUnknownProvider) {
		t.Errorf("error = %v, want ErrUnknownProvider", err)
	}
}

func TestNewGenerator_BadAssets(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(GeneratorConfig{}, WithGeneratorAssets(&mockLoader{}))
	if !errors.Is(err, ErrFallbackTemplating) {
		t.Errorf("error = %v, want ErrFallbackTemplating", err)
	}
}

// ---------------------------------------------------------------------------
// TestGenerate
// ---------------------------------------------------------------------------

func TestGenerate_NoCredential(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(GeneratorConfig{})
	if err != nil {
		t.Fatalf("NewGenerator() error: %v", err)
	}

	res := g.Generate(context.Background(), completeRequest())
	if res.Success {
		t.Fatal("expected Success=false without credential")
	}
	if res.ErrorDetail != ErrCredentialMissing.Error() {
		t.Errorf("ErrorDetail = %q", res.ErrorDetail)
	}
	if !strings.Contains(res.HTML, "Mathematics") || !strings.Contains(res.HTML, "fallback lesson plan") {
		t.Errorf("fallback HTML missing request data:\n%s", res.HTML)
	}
	if res.Usage != nil {
		t.Error("fallback result must carry no usage")
	}
}

func TestGenerate_Success(t *testing.T) {
	t.Parallel()

	client := &mockChatClient{resp: llm.Response{
		Content: "```html\n<table class=\"lp-table\"><tr><td>Warm-up</td></tr></table>\n```",
		Usage:   llm.Usage{PromptTokens: 120, CompletionTokens: 480, TotalTokens: 600},
	}}
	g := newTestGenerator(t, client)

	res := g.Generate(context.Background(), completeRequest())
	if !res.Success {
		t.Fatalf("expected success, got ErrorDetail=%q", res.ErrorDetail)
	}
	if res.HTML != `<table class="lp-table"><tr><td>Warm-up</td></tr></table>` {
		t.Errorf("HTML = %q", res.HTML)
	}
	if res.Usage == nil || res.Usage.TotalTokens != 600 || res.Usage.Estimated {
		t.Errorf("Usage = %+v", res.Usage)
	}
	if res.Provider != string(llm.ProviderOpenAI) || res.Model != llm.OpenAIModel {
		t.Errorf("route = %s/%s", res.Provider, res.Model)
	}

	if client.got.System != systemInstruction {
		t.Error("system instruction not sent")
	}
	if client.got.MaxTokens != completionMaxTokens || client.got.Temperature != completionTemperature {
		t.Errorf("params = %d/%v", client.got.MaxTokens, client.got.Temperature)
	}
	if !strings.Contains(client.got.User, "- Subject: Mathematics") {
		t.Error("prompt missing request fields")
	}
}

func TestGenerate_MarkdownAnswerConverted(t *testing.T) {
	t.Parallel()

	client := &mockChatClient{resp: llm.Response{
		Content: "| Stage | Time |\n|---|---|\n| Intro | 5 min |\n",
	}}
	g := newTestGenerator(t, client)

	res := g.Generate(context.Background(), completeRequest())
	if !res.Success {
		t.Fatalf("expected success, got %q", res.ErrorDetail)
	}
	if !strings.Contains(res.HTML, "<table>") || !strings.Contains(res.HTML, "Intro") {
		t.Errorf("HTML = %q", res.HTML)
	}
}

func TestGenerate_SanitizesAnswer(t *testing.T) {
	t.Parallel()

	client := &mockChatClient{resp: llm.Response{
		Content: `<table><tr><td onmouseover="x()">a</td></tr></table><script>steal()</script>`,
	}}
	res := newTestGenerator(t, client).Generate(context.Background(), completeRequest())
	if !res.Success {
		t.Fatalf("expected success, got %q", res.ErrorDetail)
	}
	if strings.Contains(res.HTML, "script") || strings.Contains(res.HTML, "onmouseover") {
		t.Errorf("unsanitized HTML: %q", res.HTML)
	}
}

func TestGenerate_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		client     *mockChatClient
		wantDetail []string
	}{
		{
			name:       "provider error",
			client:     &mockChatClient{err: errors.New("upstream 502")},
			wantDetail: []string{ErrGeneration.Error(), "upstream 502"},
		},
		{
			name:       "empty completion",
			client:     &mockChatClient{resp: llm.Response{Content: "  "}},
			wantDetail: []string{ErrEmptyCompletion.Error()},
		},
		{
			name:       "only a script",
			client:     &mockChatClient{resp: llm.Response{Content: "<script>x</script>"}},
			wantDetail: []string{ErrEmptyCompletion.Error()},
		},
		{
			name:       "client panic",
			client:     &mockChatClient{panics: true},
			wantDetail: []string{"panic", "provider sdk bug"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := newTestGenerator(t, tt.client).Generate(context.Background(), completeRequest())
			if res.Success {
				t.Fatal("expected Success=false")
			}
			for _, want := range tt.wantDetail {
				if !strings.Contains(res.ErrorDetail, want) {
					t.Errorf("ErrorDetail %q missing %q", res.ErrorDetail, want)
				}
			}
			if !strings.Contains(res.HTML, "Springfield Elementary") {
				t.Error("fallback HTML missing request data")
			}
		})
	}
}

func TestGenerate_Timeout(t *testing.T) {
	t.Parallel()

	client := &mockChatClient{block: true}
	g, err := NewGenerator(GeneratorConfig{APIKey: "sk-test", Timeout: 20 * time.Millisecond}, WithChatClient(client))
	if err != nil {
		t.Fatalf("NewGenerator() error: %v", err)
	}

	res := g.Generate(context.Background(), completeRequest())
	if res.Success {
		t.Fatal("expected timeout failure")
	}
	if !strings.Contains(res.ErrorDetail, context.DeadlineExceeded.Error()) {
		t.Errorf("ErrorDetail = %q", res.ErrorDetail)
	}
}

func TestGenerate_EstimatesMissingUsage(t *testing.T) {
	t.Parallel()

	client := &mockChatClient{resp: llm.Response{Content: "<p>plan</p>"}}
	g := newTestGenerator(t, client)

	var gotModel string
	g.estimate = func(model, system, user, completion string) (llm.Usage, bool) {
		gotModel = model
		if system == "" || user == "" || completion != "<p>plan</p>" {
			t.Errorf("estimate got system=%d user=%d completion=%q", len(system), len(user), completion)
		}
		return llm.Usage{PromptTokens: 7, CompletionTokens: 3, TotalTokens: 10}, true
	}

	res := g.Generate(context.Background(), completeRequest())
	if !res.Success {
		t.Fatalf("expected success, got %q", res.ErrorDetail)
	}
	if gotModel != llm.OpenAIModel {
		t.Errorf("estimate model = %q", gotModel)
	}
	want := Usage{PromptTokens: 7, CompletionTokens: 3, TotalTokens: 10, Estimated: true}
	if res.Usage == nil || *res.Usage != want {
		t.Errorf("Usage = %+v, want %+v", res.Usage, want)
	}
}

func TestGenerate_Metrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	ok := newTestGenerator(t, &mockChatClient{resp: llm.Response{
		Content: "<p>x</p>",
		Usage:   llm.Usage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3},
	}}, WithGeneratorMetrics(m))
	bad := newTestGenerator(t, &mockChatClient{err: errors.New("down")}, WithGeneratorMetrics(m))

	ok.Generate(context.Background(), completeRequest())
	bad.Generate(context.Background(), completeRequest())
	bad.Generate(context.Background(), completeRequest())

	got, err := testutil.GatherAndCount(reg, "lessonplan_generation_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got != 2 {
		t.Errorf("expected 2 status series, got %d", got)
	}
	got, err = testutil.GatherAndCount(reg, "lessonplan_generation_tokens")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got != 2 {
		t.Errorf("expected prompt and completion token series, got %d", got)
	}
}
