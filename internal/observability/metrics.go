package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/talent-analytics-backend/internal/platform/envutil"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

const (
	namespace = "talent"

	StatusOK    = "ok"
	StatusError = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	externalRequests *prometheus.CounterVec
	externalLatency  *prometheus.HistogramVec

	predictions     *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
	assessmentCache *prometheus.CounterVec
	embeddingRows   prometheus.Gauge
	eventsPublished *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	current     *Metrics
)

// Enabled reports whether METRICS_ENABLED allows collection. Defaults on.
func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", true)
}

// Init builds the process-wide collectors once. Returns nil when metrics are disabled.
func Init(log *logger.Logger) *Metrics {
	metricsOnce.Do(func() {
		if !Enabled() {
			if log != nil {
				log.Info("metrics disabled")
			}
			return
		}
		current = New()
		current.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
	return current
}

// Current returns the collectors installed by Init, or nil.
func Current() *Metrics {
	return current
}

// New builds a set of collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Requests currently being served.",
		}),
		externalRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "external",
			Name:      "requests_total",
			Help:      "Calls to generator, embedder and probability services.",
		}, []string{"service", "operation", "status"}),
		externalLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "external",
			Name:      "request_duration_seconds",
			Help:      "Latency of external capability calls.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"service", "operation"}),
		predictions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "predictions_total",
			Help:      "Persisted predictions by type and band.",
		}, []string{"type", "band"}),
		fallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "fallbacks_total",
			Help:      "Deterministic fallbacks taken after a generator failure.",
		}, []string{"component", "reason"}),
		assessmentCache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "manager",
			Name:      "assessment_cache_total",
			Help:      "Manager assessment lookups served from the freshness window or recomputed.",
		}, []string{"result"}),
		embeddingRows: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "embeddings",
			Name:      "rows",
			Help:      "Stored skill embedding rows after the last rebuild.",
		}),
		eventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events handed to the notifier.",
		}, []string{"event", "status"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveExternal records one call to an external capability.
func (m *Metrics) ObserveExternal(service, operation string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.externalRequests.WithLabelValues(service, operation, status).Inc()
	m.externalLatency.WithLabelValues(service, operation).Observe(dur.Seconds())
}

func (m *Metrics) IncPrediction(predictionType, band string) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(predictionType, band).Inc()
}

func (m *Metrics) IncFallback(component, reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(component, reason).Inc()
}

func (m *Metrics) IncAssessmentCache(result string) {
	if m == nil {
		return
	}
	m.assessmentCache.WithLabelValues(result).Inc()
}

func (m *Metrics) SetEmbeddingRows(n int64) {
	if m == nil {
		return
	}
	m.embeddingRows.Set(float64(n))
}

func (m *Metrics) IncEventPublished(event string, err error) {
	if m == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.eventsPublished.WithLabelValues(event, status).Inc()
}
