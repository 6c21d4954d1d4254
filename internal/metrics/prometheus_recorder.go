package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	sourceDuration    *prom.HistogramVec
	httpRequests      *prom.CounterVec
	cacheResults      *prom.CounterVec
	postsAssembled    prom.Counter
	webhookDeliveries *prom.CounterVec
	registry          *prom.Registry
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.sourceDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "inkwell",
			Name:      "source_request_duration_seconds",
			Help:      "Duration of source store transport calls",
			Buckets:   prom.DefBuckets,
		}, []string{"operation", "result"})
		pr.httpRequests = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "inkwell",
			Name:      "http_requests_total",
			Help:      "HTTP requests by path and status",
		}, []string{"path", "status"})
		pr.cacheResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "inkwell",
			Name:      "cache_results_total",
			Help:      "Response cache hits and misses by key",
		}, []string{"key", "result"})
		pr.postsAssembled = prom.NewCounter(prom.CounterOpts{
			Namespace: "inkwell",
			Name:      "posts_assembled_total",
			Help:      "Fully assembled posts (block tree fetched and rendered)",
		})
		pr.webhookDeliveries = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "inkwell",
			Name:      "webhook_deliveries_total",
			Help:      "Webhook deliveries by outcome",
		}, []string{"result"})
		reg.MustRegister(pr.sourceDuration, pr.httpRequests, pr.cacheResults, pr.postsAssembled, pr.webhookDeliveries)
	})
	return pr
}

// Handler exposes the recorder's registry for the admin /metrics endpoint.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *PrometheusRecorder) ObserveSourceRequestDuration(operation string, d time.Duration, success bool) {
	if p == nil || p.sourceDuration == nil {
		return
	}
	result := "success"
	if !success {
		result = "failure"
	}
	p.sourceDuration.WithLabelValues(operation, result).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncHTTPRequest(path string, status int) {
	if p == nil || p.httpRequests == nil {
		return
	}
	p.httpRequests.WithLabelValues(path, strconv.Itoa(status)).Inc()
}

func (p *PrometheusRecorder) IncCacheResult(key string, hit bool) {
	if p == nil || p.cacheResults == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cacheResults.WithLabelValues(key, result).Inc()
}

func (p *PrometheusRecorder) IncPostAssembled() {
	if p == nil || p.postsAssembled == nil {
		return
	}
	p.postsAssembled.Inc()
}

func (p *PrometheusRecorder) IncWebhookDelivery(result ResultLabel) {
	if p == nil || p.webhookDeliveries == nil {
		return
	}
	p.webhookDeliveries.WithLabelValues(string(result)).Inc()
}
