package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор прометеус-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	FeasibilityChecks    *prometheus.CounterVec
	RuleStoreRebuilds    prometheus.Counter
	RuleCacheHits        prometheus.Counter
	RuleCacheMisses      prometheus.Counter
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "code"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		FeasibilityChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_feasibility_checks_total",
			Help:        "Feasibility checks grouped by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		RuleStoreRebuilds: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "availability_rule_store_rebuilds_total",
			Help:        "Number of rule store snapshot rebuilds",
			ConstLabels: constLabels,
		}),

		RuleCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "availability_rule_cache_hits_total",
			Help:        "Rule snapshot cache hits",
			ConstLabels: constLabels,
		}),

		RuleCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "availability_rule_cache_misses_total",
			Help:        "Rule snapshot cache misses",
			ConstLabels: constLabels,
		}),
	}
}

// RuleCacheHit инкрементирует счетчик попаданий в кэш правил
func (m *Metrics) RuleCacheHit() {
	m.RuleCacheHits.Inc()
}

// RuleCacheMiss инкрементирует счетчик промахов кэша правил
func (m *Metrics) RuleCacheMiss() {
	m.RuleCacheMisses.Inc()
}

// RuleStoreRebuilt инкрементирует счетчик сборок снапшотов правил
func (m *Metrics) RuleStoreRebuilt() {
	m.RuleStoreRebuilds.Inc()
}

// FeasibilityCheck инкрементирует счетчик проверок осуществимости по исходу
func (m *Metrics) FeasibilityCheck(outcome string) {
	m.FeasibilityChecks.WithLabelValues(outcome).Inc()
}
