package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds the risk pipeline's metric vectors.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Assessment pipeline
	AssessmentsTotal        CounterVec
	AssessmentDuration      HistogramVec
	AssessmentEntityCount   HistogramVec
	DomainScorerDuration    HistogramVec
	DomainDegradationsTotal CounterVec
	EntityMatchesTotal      CounterVec

	// External services
	ExternalCallDuration HistogramVec
	ExternalCallsTotal   CounterVec

	// Graph layer
	GraphQueryDuration HistogramVec

	// Sanctions reference set
	SanctionsIndexSize   GaugeVec
	SanctionsReloadTotal CounterVec

	// Infrastructure
	CacheHitsTotal    CounterVec
	CacheMissesTotal  CounterVec
	EventsPublished   CounterVec
	EventsConsumed    CounterVec
	AuditWritesTotal  CounterVec
	HealthCheckStatus GaugeVec
}

var (
	// DefaultHTTPDurationBuckets suits request-scoped latencies.
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	// DefaultPipelineDurationBuckets suits the full assessment path, which
	// fans out to the graph, the vector index, and external knowledge APIs.
	DefaultPipelineDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}
	// DefaultGraphDurationBuckets suits individual graph round trips.
	DefaultGraphDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewAppMetrics registers the pipeline metrics on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total",
		"Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds",
		"HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests",
		"In-flight HTTP requests", "method", "path")

	m.AssessmentsTotal = collector.RegisterCounter("assessments_total",
		"Completed transaction assessments", "status")
	m.AssessmentDuration = collector.RegisterHistogram("assessment_duration_seconds",
		"End-to-end assessment duration", DefaultPipelineDurationBuckets)
	m.AssessmentEntityCount = collector.RegisterHistogram("assessment_entity_count",
		"Entities per assessed transaction", []float64{1, 2, 3, 5, 8, 13, 21})
	m.DomainScorerDuration = collector.RegisterHistogram("domain_scorer_duration_seconds",
		"Per-domain scorer duration", DefaultPipelineDurationBuckets, "domain")
	m.DomainDegradationsTotal = collector.RegisterCounter("domain_degradations_total",
		"Scorer failures degraded to default results", "domain", "reason")
	m.EntityMatchesTotal = collector.RegisterCounter("entity_matches_total",
		"Entity resolution outcomes", "category", "outcome")

	m.ExternalCallDuration = collector.RegisterHistogram("external_call_duration_seconds",
		"External service call duration", DefaultHTTPDurationBuckets, "service")
	m.ExternalCallsTotal = collector.RegisterCounter("external_calls_total",
		"External service calls", "service", "status")

	m.GraphQueryDuration = collector.RegisterHistogram("graph_query_duration_seconds",
		"Graph query duration", DefaultGraphDurationBuckets, "query_type")

	m.SanctionsIndexSize = collector.RegisterGauge("sanctions_index_size",
		"Records in the sanctions reference index", "backend")
	m.SanctionsReloadTotal = collector.RegisterCounter("sanctions_reload_total",
		"Sanctions reference set reloads", "status")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.EventsPublished = collector.RegisterCounter("events_published_total",
		"Events published to the bus", "topic", "status")
	m.EventsConsumed = collector.RegisterCounter("events_consumed_total",
		"Events consumed from the bus", "topic", "status")
	m.AuditWritesTotal = collector.RegisterCounter("audit_writes_total",
		"Assessment audit store writes", "status")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status",
		"Component health (1=up, 0=down)", "component")

	return m
}

// Helpers

func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordAssessment(m *AppMetrics, success bool, entityCount int, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.AssessmentsTotal.WithLabelValues(status).Inc()
	m.AssessmentDuration.WithLabelValues().Observe(duration.Seconds())
	m.AssessmentEntityCount.WithLabelValues().Observe(float64(entityCount))
}

func RecordDomainScore(m *AppMetrics, domain string, duration time.Duration) {
	m.DomainScorerDuration.WithLabelValues(domain).Observe(duration.Seconds())
}

func RecordDegradation(m *AppMetrics, domain, reason string) {
	m.DomainDegradationsTotal.WithLabelValues(domain, reason).Inc()
}

func RecordEntityMatch(m *AppMetrics, category string, matched bool) {
	outcome := "matched"
	if !matched {
		outcome = "unmatched"
	}
	m.EntityMatchesTotal.WithLabelValues(category, outcome).Inc()
}

func RecordExternalCall(m *AppMetrics, service string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.ExternalCallsTotal.WithLabelValues(service, status).Inc()
	m.ExternalCallDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}
