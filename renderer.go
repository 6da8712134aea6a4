package lessonplan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-lessonplan/internal/assets"
	"github.com/alnah/go-lessonplan/internal/fileutil"
	"github.com/alnah/go-lessonplan/internal/hints"
	"github.com/alnah/go-lessonplan/internal/logger"
	"github.com/alnah/go-lessonplan/internal/metrics"
)

// DefaultRenderTimeout bounds page load and network idle.
const DefaultRenderTimeout = 30 * time.Second

// pdfMarginInches is 20 CSS pixels at 96 dpi.
const pdfMarginInches = 20.0 / 96.0

// Renderer converts HTML into PDF bytes, one browser process per call.
// It is immutable after construction and safe for concurrent use.
type Renderer struct {
	launcher   browserLauncher
	browserBin string
	candidates []string
	exists     func(string) bool
	timeout    time.Duration
	docs       *documentBuilder
	log        *logger.Logger
	metrics    *metrics.Metrics
}

type rendererSettings struct {
	launcher   browserLauncher
	browserBin string
	candidates []string
	noSandbox  bool
	timeout    time.Duration
	loader     assets.AssetLoader
	log        *logger.Logger
	metrics    *metrics.Metrics
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererSettings)

// WithRenderTimeout sets the page load budget. Non-positive values are ignored.
func WithRenderTimeout(d time.Duration) RendererOption {
	return func(s *rendererSettings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithBrowserBin sets the executable for the default launch.
func WithBrowserBin(path string) RendererOption {
	return func(s *rendererSettings) { s.browserBin = path }
}

// WithBrowserCandidates replaces the executables probed after the default
// launch fails. Order is preserved.
func WithBrowserCandidates(paths []string) RendererOption {
	return func(s *rendererSettings) { s.candidates = append([]string(nil), paths...) }
}

// WithNoSandbox disables the Chrome sandbox (containers, CI).
func WithNoSandbox(v bool) RendererOption {
	return func(s *rendererSettings) { s.noSandbox = v }
}

// WithRendererAssets sets where the stylesheet and document template come from.
func WithRendererAssets(l assets.AssetLoader) RendererOption {
	return func(s *rendererSettings) { s.loader = l }
}

// WithRendererLogger sets the logger.
func WithRendererLogger(l *logger.Logger) RendererOption {
	return func(s *rendererSettings) { s.log = l }
}

// WithRendererMetrics sets the metrics sink.
func WithRendererMetrics(m *metrics.Metrics) RendererOption {
	return func(s *rendererSettings) { s.metrics = m }
}

// withLauncher swaps the browser launcher (tests).
func withLauncher(l browserLauncher) RendererOption {
	return func(s *rendererSettings) { s.launcher = l }
}

// NewRenderer builds a Renderer. Assets are loaded once here.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	s := rendererSettings{
		timeout:    DefaultRenderTimeout,
		candidates: DefaultBrowserCandidates(),
		loader:     assets.NewEmbeddedLoader(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.launcher == nil {
		s.launcher = &rodLauncher{noSandbox: s.noSandbox}
	}

	docs, err := newDocumentBuilder(s.loader)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		launcher:   s.launcher,
		browserBin: s.browserBin,
		candidates: s.candidates,
		exists:     fileutil.FileExists,
		timeout:    s.timeout,
		docs:       docs,
		log:        s.log.With("component", "renderer"),
		metrics:    s.metrics,
	}, nil
}

// Candidates returns the configured fallback executables.
func (r *Renderer) Candidates() []string {
	return append([]string(nil), r.candidates...)
}

// Render wraps html in the print document and prints it to PDF. It never
// panics; every failure is reported in RenderResult.ErrorDetail.
func (r *Renderer) Render(ctx context.Context, html string, opts RenderOptions) (res RenderResult) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("render panicked", "panic", rec)
			res = renderFailure(fmt.Errorf("%w: panic: %v", ErrPDFGeneration, rec))
		}
		status := metrics.StatusSuccess
		if !res.Success {
			status = metrics.StatusError
		}
		r.metrics.ObserveRender(status, time.Since(start))
	}()

	if strings.TrimSpace(html) == "" {
		return renderFailure(ErrEmptyHTML)
	}
	size, err := opts.paper()
	if err != nil {
		return renderFailure(err)
	}

	doc, err := r.docs.Build(ctx, html, size)
	if err != nil {
		return renderFailure(err)
	}

	pdf, err := r.print(ctx, doc, size)
	if err != nil {
		r.log.Error("render failed", "error", err, "page_format", opts.format())
		return renderFailure(err)
	}

	r.log.Info("pdf rendered", "bytes", len(pdf), "page_format", opts.format(), "duration", time.Since(start))
	return RenderResult{Success: true, PDF: pdf}
}

func (r *Renderer) print(ctx context.Context, doc string, size paperSize) ([]byte, error) {
	path, cleanup, err := fileutil.WriteTempFile(doc, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentAssembly, err)
	}
	defer cleanup()

	session, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			r.log.Warn("browser close failed, process group killed", "error", cerr)
		}
	}()

	return session.PrintPDF(ctx, "file://"+path, pdfOptions(size), r.timeout)
}

// acquire tries the default launch, then each existing candidate in order.
func (r *Renderer) acquire(ctx context.Context) (browserSession, error) {
	session, defaultErr := r.launcher.Launch(ctx, r.browserBin)
	if defaultErr == nil {
		return session, nil
	}
	r.log.Warn("default browser launch failed, probing candidates", "error", defaultErr, "candidates", len(r.candidates))

	var errs []error
	for _, path := range r.candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !r.exists(path) {
			continue
		}
		session, err := r.launcher.Launch(ctx, path)
		if err != nil {
			r.log.Debug("candidate launch failed", "path", path, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		r.log.Info("browser launched from candidate", "path", path)
		r.metrics.BrowserFallback()
		return session, nil
	}

	detail := fmt.Sprintf("default launch: %v", defaultErr)
	if len(errs) > 0 {
		detail += "; " + errors.Join(errs...).Error()
	}
	return nil, fmt.Errorf("%w (%s)%s", ErrBrowserNotFound, detail, hints.ForBrowserConnect())
}

func pdfOptions(size paperSize) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(size.Width),
		PaperHeight:         floatPtr(size.Height),
		MarginTop:           floatPtr(pdfMarginInches),
		MarginBottom:        floatPtr(pdfMarginInches),
		MarginLeft:          floatPtr(pdfMarginInches),
		MarginRight:         floatPtr(pdfMarginInches),
		PrintBackground:     true,
		PreferCSSPageSize:   true,
		DisplayHeaderFooter: false,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
