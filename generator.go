package lessonplan

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alnah/go-lessonplan/internal/assets"
	"github.com/alnah/go-lessonplan/internal/llm"
	"github.com/alnah/go-lessonplan/internal/logger"
	"github.com/alnah/go-lessonplan/internal/metrics"
	"github.com/alnah/go-lessonplan/internal/pipeline"
)

// GeneratorConfig is read once at startup and never changes afterwards.
type GeneratorConfig struct {
	APIKey   string
	Provider llm.Provider  // auto when empty
	Model    string        // provider default when empty
	BaseURL  string        // provider default when empty
	Timeout  time.Duration // per completion; 0 leaves the HTTP client default
}

// Generator turns lesson requests into HTML lesson plans.
// It is immutable after construction and safe for concurrent use.
type Generator struct {
	route    llm.Route
	client   llm.ChatClient // nil in degraded mode (no credential)
	timeout  time.Duration
	fallback *fallbackTemplate
	markdown pipeline.MarkdownConverter
	estimate func(model, system, user, completion string) (llm.Usage, bool)
	log      *logger.Logger
	metrics  *metrics.Metrics
}

type generatorSettings struct {
	client  llm.ChatClient
	http    *http.Client
	loader  assets.AssetLoader
	log     *logger.Logger
	metrics *metrics.Metrics
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*generatorSettings)

// WithChatClient replaces the provider client built from the config.
func WithChatClient(c llm.ChatClient) GeneratorOption {
	return func(s *generatorSettings) { s.client = c }
}

// WithHTTPClient sets the HTTP client used to reach the provider.
func WithHTTPClient(c *http.Client) GeneratorOption {
	return func(s *generatorSettings) { s.http = c }
}

// WithGeneratorAssets sets where the fallback template is loaded from.
func WithGeneratorAssets(l assets.AssetLoader) GeneratorOption {
	return func(s *generatorSettings) { s.loader = l }
}

// WithGeneratorLogger sets the logger.
func WithGeneratorLogger(l *logger.Logger) GeneratorOption {
	return func(s *generatorSettings) { s.log = l }
}

// WithGeneratorMetrics sets the metrics sink.
func WithGeneratorMetrics(m *metrics.Metrics) GeneratorOption {
	return func(s *generatorSettings) { s.metrics = m }
}

// NewGenerator builds a Generator. A missing credential is not an error:
// the generator then serves fallback plans only.
func NewGenerator(cfg GeneratorConfig, opts ...GeneratorOption) (*Generator, error) {
	s := generatorSettings{loader: assets.NewEmbeddedLoader()}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}

	route, err := llm.Resolve(cfg.Provider, cfg.APIKey, cfg.Model, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	fb, err := newFallbackTemplate(s.loader)
	if err != nil {
		return nil, err
	}

	client := s.client
	if client == nil && (cfg.APIKey != "" || !route.Provider.NeedsAPIKey()) {
		client, err = llm.New(route, cfg.APIKey, s.http)
		if err != nil {
			return nil, err
		}
	}

	return &Generator{
		route:    route,
		client:   client,
		timeout:  cfg.Timeout,
		fallback: fb,
		markdown: pipeline.NewGoldmarkConverter(),
		estimate: llm.EstimateUsage,
		log:      s.log.With("component", "generator", "provider", string(route.Provider), "model", route.Model),
		metrics:  s.metrics,
	}, nil
}

// Route reports the resolved provider, model and base URL.
func (g *Generator) Route() llm.Route {
	return g.route
}

// Configured reports whether completions can be attempted.
func (g *Generator) Configured() bool {
	return g.client != nil
}

// Generate returns an HTML lesson plan for req. It never fails: any error,
// including a missing credential, yields Success=false with the fallback table
// in HTML and the cause in ErrorDetail.
func (g *Generator) Generate(ctx context.Context, req LessonRequest) (res GenerationResult) {
	if g.client == nil {
		g.log.Warn("no credential configured, serving fallback lesson plan")
		g.metrics.ObserveGeneration(string(g.route.Provider), g.route.Model, metrics.StatusFallback, 0)
		return g.failed(req, ErrCredentialMissing)
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("generation panicked", "panic", r)
			res = g.failed(req, fmt.Errorf("%w: panic: %v", ErrGeneration, r))
		}
		status := metrics.StatusSuccess
		if !res.Success {
			status = metrics.StatusFallback
		}
		g.metrics.ObserveGeneration(string(g.route.Provider), g.route.Model, status, time.Since(start))
	}()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(req)
	resp, err := g.client.Complete(ctx, llm.Request{
		System:      systemInstruction,
		User:        prompt,
		MaxTokens:   completionMaxTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		g.log.Error("completion failed", "error", err, "duration", time.Since(start))
		return g.failed(req, fmt.Errorf("%w: %v", ErrGeneration, err))
	}

	html, err := normalizeCompletion(ctx, g.markdown, resp.Content)
	if err != nil {
		g.log.Error("completion unusable", "error", err)
		return g.failed(req, fmt.Errorf("%w: %v", ErrGeneration, err))
	}

	usage := g.usage(resp, prompt)
	g.metrics.ObserveTokens(g.route.Model, usage.PromptTokens, usage.CompletionTokens)
	g.log.Info("lesson plan generated",
		"duration", time.Since(start),
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
		"estimated", usage.Estimated,
	)

	return GenerationResult{
		Success:  true,
		HTML:     html,
		Usage:    usage,
		Provider: string(g.route.Provider),
		Model:    g.route.Model,
	}
}

// usage returns provider-reported counts, or a local estimate when the
// provider reported none.
func (g *Generator) usage(resp llm.Response, prompt string) *Usage {
	u := resp.Usage
	if u.TotalTokens > 0 {
		return &Usage{PromptTokens: u.PromptTokens, CompletionTokens: u.CompletionTokens, TotalTokens: u.TotalTokens}
	}
	est, ok := g.estimate(g.route.Model, systemInstruction, prompt, resp.Content)
	if !ok {
		return &Usage{}
	}
	return &Usage{
		PromptTokens:     est.PromptTokens,
		CompletionTokens: est.CompletionTokens,
		TotalTokens:      est.TotalTokens,
		Estimated:        true,
	}
}

func (g *Generator) failed(req LessonRequest, cause error) GenerationResult {
	html, err := g.fallback.Render(req)
	if err != nil {
		g.log.Error("fallback template failed, using built-in", "error", err)
		html = FallbackHTML(req)
	}
	return GenerationResult{
		Success:     false,
		HTML:        html,
		ErrorDetail: cause.Error(),
		Provider:    string(g.route.Provider),
		Model:       g.route.Model,
	}
}
