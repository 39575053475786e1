package telemetry

// SLI metric names used for instrumentation.
const (
	// Latency
	MetricAPILatencyP50 = "api.latency.p50"
	MetricAPILatencyP95 = "api.latency.p95"
	MetricAPILatencyP99 = "api.latency.p99"

	// Throughput
	MetricRequestsPerSec = "api.requests_per_second"

	// Upstream dependency
	MetricGeocodeLatency   = "geocoding.request_latency"
	MetricGeocodeErrorRate = "geocoding.error_rate"

	// Availability
	MetricUptime = "service.uptime_percentage"

	// Business
	MetricQueriesComputed = "business.midpoints_computed"
	MetricCacheHitRate    = "business.geocode_cache_hit_rate"
)
