package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBConnectionsOpen *prometheus.GaugeVec
	DBConnectionsInUse *prometheus.GaugeVec
	DBConnectionsIdle  *prometheus.GaugeVec

	AppointmentsCreatedTotal   *prometheus.CounterVec
	OccurrencesSkippedTotal    *prometheus.CounterVec
	AvailabilityRejectionsTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation"}),

		DBConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Number of open database connections",
		}, []string{"service"}),

		DBConnectionsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of database connections currently in use",
		}, []string{"service"}),

		DBConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		}, []string{"service"}),

		AppointmentsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_created_total",
			Help: "Total number of created appointments",
		}, []string{"service", "kind"}),

		OccurrencesSkippedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "recurrence_occurrences_skipped_total",
			Help: "Total number of recurrence occurrences skipped due to conflicts",
		}, []string{"service"}),

		AvailabilityRejectionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_rejections_total",
			Help: "Total number of availability checks rejected, by reason",
		}, []string{"service", "reason"}),
	}
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(service, operation string, seconds float64) {
	m.DBQueryDuration.WithLabelValues(service, operation).Observe(seconds)
}

// SetDBPoolStats записывает состояние connection pool
func (m *Metrics) SetDBPoolStats(service string, stats sql.DBStats) {
	m.DBConnectionsOpen.WithLabelValues(service).Set(float64(stats.OpenConnections))
	m.DBConnectionsInUse.WithLabelValues(service).Set(float64(stats.InUse))
	m.DBConnectionsIdle.WithLabelValues(service).Set(float64(stats.Idle))
}
