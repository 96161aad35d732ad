package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBQueryErrors       *prometheus.CounterVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBTransactionsTotal *prometheus.CounterVec

	ReservationsCreated  *prometheus.CounterVec
	ReservationConflicts *prometheus.CounterVec
	ReservationDecisions *prometheus.CounterVec
	ViewRefreshes        *prometheus.CounterVec

	serviceName string
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		DBTransactionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_transactions_total",
			Help: "Total number of finished transactions",
		}, []string{"service", "result"}),

		ReservationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lab_reservations_created_total",
			Help: "Total number of created (pending) reservations",
		}, []string{"service"}),

		ReservationConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lab_reservation_conflicts_total",
			Help: "Total number of rejected overlapping reservations",
		}, []string{"service", "stage"}),

		ReservationDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lab_reservation_decisions_total",
			Help: "Total number of administrator decisions",
		}, []string{"service", "decision"}),

		ViewRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lab_view_refreshes_total",
			Help: "Total number of calendar view refreshes",
		}, []string{"service", "trigger"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBTransactionsTotal,
		m.ReservationsCreated,
		m.ReservationConflicts,
		m.ReservationDecisions,
		m.ViewRefreshes,
	)

	return m
}

// Бизнес-метрики. Все методы безопасны для nil-получателя (метрики выключены).

// ReservationCreated учитывает созданную заявку
func (m *Metrics) ReservationCreated() {
	if m == nil {
		return
	}
	m.ReservationsCreated.WithLabelValues(m.serviceName).Inc()
}

// ConflictDetected учитывает отклонение из-за пересечения (stage: create | approve)
func (m *Metrics) ConflictDetected(stage string) {
	if m == nil {
		return
	}
	m.ReservationConflicts.WithLabelValues(m.serviceName, stage).Inc()
}

// DecisionRecorded учитывает решение администратора
func (m *Metrics) DecisionRecorded(decision string) {
	if m == nil {
		return
	}
	m.ReservationDecisions.WithLabelValues(m.serviceName, decision).Inc()
}

// RefreshCompleted учитывает обновление представлений (trigger: manual | periodic)
func (m *Metrics) RefreshCompleted(trigger string) {
	if m == nil {
		return
	}
	m.ViewRefreshes.WithLabelValues(m.serviceName, trigger).Inc()
}
