package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	lessonplan "github.com/alnah/go-lessonplan"
	"github.com/alnah/go-lessonplan/internal/assets"
	"github.com/alnah/go-lessonplan/internal/config"
	"github.com/alnah/go-lessonplan/internal/hints"
	"github.com/alnah/go-lessonplan/internal/httpapi"
	"github.com/alnah/go-lessonplan/internal/logger"
	"github.com/alnah/go-lessonplan/internal/metrics"
)

// ErrListen wraps failures to bind the listen address.
var ErrListen = errors.New("failed to listen")

// serve runs the HTTP service until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, env *Environment) error {
	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, err := buildHandler(cfg, log, reg)
	if err != nil {
		return err
	}

	log.Info("starting lessonplan", "version", Version, "addr", cfg.Addr(), "env", cfg.Env)
	if err := httpapi.ListenAndServe(ctx, cfg.Addr(), handler, log); err != nil {
		return fmt.Errorf("%w on %s: %v", ErrListen, cfg.Addr(), err)
	}
	log.Info("lessonplan stopped")
	return nil
}

// buildHandler wires the generator, renderer and router from cfg.
func buildHandler(cfg *config.Config, log *logger.Logger, reg *prometheus.Registry) (http.Handler, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	loader, err := assets.NewAssetResolver(cfg.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	m := metrics.New(reg)

	gen, err := lessonplan.NewGenerator(lessonplan.GeneratorConfig{
		APIKey:   cfg.APIKey,
		Provider: cfg.LLMProvider(),
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.LLMTimeout,
	},
		lessonplan.WithGeneratorAssets(loader),
		lessonplan.WithGeneratorLogger(log),
		lessonplan.WithGeneratorMetrics(m),
	)
	if err != nil {
		return nil, err
	}

	route := gen.Route()
	if gen.Configured() {
		log.Info("language model configured", "provider", string(route.Provider), "model", route.Model, "base_url", route.BaseURL)
	} else {
		log.Warn("no credential configured, lesson plans will use the fallback template" + hints.ForCredential())
	}

	rendererOpts := []lessonplan.RendererOption{
		lessonplan.WithRenderTimeout(cfg.RenderTimeout),
		lessonplan.WithBrowserBin(cfg.BrowserBin),
		lessonplan.WithNoSandbox(cfg.NoSandbox),
		lessonplan.WithRendererAssets(loader),
		lessonplan.WithRendererLogger(log),
		lessonplan.WithRendererMetrics(m),
	}
	if len(cfg.BrowserCandidates) > 0 {
		rendererOpts = append(rendererOpts, lessonplan.WithBrowserCandidates(cfg.BrowserCandidates))
	}
	renderer, err := lessonplan.NewRenderer(rendererOpts...)
	if err != nil {
		return nil, err
	}

	return httpapi.NewRouter(httpapi.RouterConfig{
		Generator:   gen,
		Renderer:    renderer,
		Logger:      log,
		Gatherer:    reg,
		CORSOrigins: cfg.CORSOrigins,
		PageFormat:  cfg.PageFormat,
		ShowDetails: !cfg.IsProduction(),
	}), nil
}
