package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alnah/go-lessonplan/internal/logger"
)

// Route prefixes. Both serve the same endpoints.
const (
	APIPrefix    = "/api/generate"
	LegacyPrefix = "/generate"
)

// DefaultMaxBodyBytes caps JSON request bodies.
const DefaultMaxBodyBytes int64 = 10 << 20

// RouterConfig wires the router's collaborators.
type RouterConfig struct {
	Generator    LessonGenerator
	Renderer     PDFRenderer
	Logger       *logger.Logger
	Gatherer     prometheus.Gatherer // /metrics is not mounted when nil
	CORSOrigins  []string            // empty allows any origin
	PageFormat   string              // default for PDF requests without one
	ShowDetails  bool                // expose panic details in 500 bodies
	MaxBodyBytes int64
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	limit := cfg.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	r := gin.New()
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(Recovery(log, cfg.ShowDetails))
	r.Use(CORS(cfg.CORSOrigins))
	r.Use(LimitBody(limit))

	h := NewHandler(cfg.Generator, cfg.Renderer, cfg.PageFormat, log)
	for _, prefix := range []string{APIPrefix, LegacyPrefix} {
		g := r.Group(prefix)
		g.POST("/lesson-plan", h.LessonPlan)
		g.POST("/pdf", h.PDF)
		g.GET("/test", h.Sample)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, ErrorBody{
			Error:   "Not found",
			Message: "No route for " + c.Request.Method + " " + c.Request.URL.Path,
		})
	})

	return r
}
