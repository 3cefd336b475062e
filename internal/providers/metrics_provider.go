package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"wedcms/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveBackupDuration(duration time.Duration)
	IncSavesTotal()
}

// StatsSource exposes the gauges the metrics provider samples lazily.
type StatsSource interface {
	SectionCount() int
	BackupCount() int
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	backupDuration  prometheus.Histogram
	savesTotal      prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveBackupDuration(duration time.Duration) {
	m.backupDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncSavesTotal() {
	m.savesTotal.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, source StatsSource) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wedcms_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wedcms_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wedcms_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wedcms_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		backupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wedcms_backup_duration_seconds",
			Help:    "Duration of backup snapshots in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		savesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wedcms_site_saves_total",
			Help: "Total number of aggregate site-data saves",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "wedcms_sections_total",
		Help: "Current number of site-data sections",
	}, func() float64 {
		return float64(source.SectionCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "wedcms_backups_total",
		Help: "Current number of retained backups",
	}, func() float64 {
		return float64(source.BackupCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObserveBackupDuration(_ time.Duration)            {}
func (n *noopMetrics) IncSavesTotal()                                   {}
