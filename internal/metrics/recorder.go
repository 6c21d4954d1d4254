package metrics

import "time"

// ResultLabel enumerates webhook delivery outcomes for counters.
type ResultLabel string

const (
	ResultAccepted ResultLabel = "accepted"
	ResultRejected ResultLabel = "rejected"
	ResultIgnored  ResultLabel = "ignored"
)

// Recorder defines observability hooks for the blog service. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe on
// the NoopRecorder (allowing optional injection).
type Recorder interface {
	ObserveSourceRequestDuration(operation string, d time.Duration, success bool)
	IncHTTPRequest(path string, status int)
	IncCacheResult(key string, hit bool)
	IncPostAssembled()
	IncWebhookDelivery(result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveSourceRequestDuration(string, time.Duration, bool) {}
func (NoopRecorder) IncHTTPRequest(string, int)                              {}
func (NoopRecorder) IncCacheResult(string, bool)                             {}
func (NoopRecorder) IncPostAssembled()                                       {}
func (NoopRecorder) IncWebhookDelivery(ResultLabel)                          {}
