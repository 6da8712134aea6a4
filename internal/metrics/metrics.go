// Package metrics defines the Prometheus collectors for generation and rendering.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lessonplan"

// Status label values.
const (
	StatusSuccess  = "success"
	StatusFallback = "fallback"
	StatusError    = "error"
)

// Metrics holds every collector. A nil *Metrics records nothing.
type Metrics struct {
	generationRequests *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	tokens             *prometheus.HistogramVec
	renderRequests     *prometheus.CounterVec
	renderDuration     prometheus.Histogram
	browserFallbacks   prometheus.Counter
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		generationRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_requests_total",
			Help:      "Lesson plan generations by provider, model and outcome.",
		}, []string{"provider", "model", "status"}),
		generationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of chat completion calls.",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}, []string{"provider", "model"}),
		tokens: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_tokens",
			Help:      "Token counts per completion.",
			Buckets:   prometheus.LinearBuckets(250, 250, 12),
		}, []string{"model", "kind"}),
		renderRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_requests_total",
			Help:      "PDF renders by outcome.",
		}, []string{"status"}),
		renderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of PDF renders including browser launch.",
			Buckets:   prometheus.DefBuckets,
		}),
		browserFallbacks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "browser_candidate_launches_total",
			Help:      "Browsers launched from the candidate list after the default launch failed.",
		}),
	}
}

// ObserveGeneration records one generation outcome.
func (m *Metrics) ObserveGeneration(provider, model, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.generationRequests.WithLabelValues(provider, model, status).Inc()
	if d > 0 {
		m.generationDuration.WithLabelValues(provider, model).Observe(d.Seconds())
	}
}

// ObserveTokens records token usage for one completion.
func (m *Metrics) ObserveTokens(model string, prompt, completion int) {
	if m == nil {
		return
	}
	m.tokens.WithLabelValues(model, "prompt").Observe(float64(prompt))
	m.tokens.WithLabelValues(model, "completion").Observe(float64(completion))
}

// ObserveRender records one render outcome.
func (m *Metrics) ObserveRender(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.renderRequests.WithLabelValues(status).Inc()
	m.renderDuration.Observe(d.Seconds())
}

// BrowserFallback counts a launch from the candidate list.
func (m *Metrics) BrowserFallback() {
	if m == nil {
		return
	}
	m.browserFallbacks.Inc()
}
