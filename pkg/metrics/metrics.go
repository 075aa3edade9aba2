// Package metrics собирает Prometheus-метрики сервиса.
//
// Используется собственный реестр, поэтому несколько экземпляров Metrics
// (например, в тестах) не конфликтуют друг с другом. Методы записи
// безопасно вызывать на nil-указателе: так выглядит выключенный сбор метрик.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса
type Metrics struct {
	registry *prometheus.Registry
	service  string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueriesTotal      *prometheus.CounterVec
	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBWaitDurationTotal *prometheus.GaugeVec

	// Бизнес-метрики бронирований
	BookingsCreatedTotal      *prometheus.CounterVec
	SlotConflictsTotal        *prometheus.CounterVec
	CodeRedrawsTotal          *prometheus.CounterVec
	StatusTransitionsTotal    *prometheus.CounterVec
	EventPublishFailuresTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики для сервиса serviceName
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		service:  serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
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
		DBWaitDurationTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_duration_seconds_total",
			Help: "Total time blocked waiting for a new connection",
		}, []string{"service"}),

		BookingsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of created bookings",
		}, []string{"service"}),
		SlotConflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_slot_conflicts_total",
			Help: "Booking attempts rejected because the slot was already taken",
		}, []string{"service"}),
		CodeRedrawsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_code_redraws_total",
			Help: "Booking code collisions that required a redraw",
		}, []string{"service"}),
		StatusTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_status_transitions_total",
			Help: "Booking status transitions by target status",
		}, []string{"service", "status"}),
		EventPublishFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_event_publish_failures_total",
			Help: "Booking events that could not be published",
		}, []string{"service", "event_type"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBWaitDurationTotal,
		m.BookingsCreatedTotal,
		m.SlotConflictsTotal,
		m.CodeRedrawsTotal,
		m.StatusTransitionsTotal,
		m.EventPublishFailuresTotal,
	)

	return m
}

// Handler HTTP-обработчик для эндпоинта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает реестр (для тестов и дополнительных коллекторов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest записывает метрики HTTP-запроса
func (m *Metrics) ObserveHTTPRequest(service, method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(service, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает метрики SQL-запроса
func (m *Metrics) ObserveDBQuery(service, operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(service, operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// BookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.WithLabelValues(m.service).Inc()
}

// SlotConflict увеличивает счетчик конфликтов по слоту
func (m *Metrics) SlotConflict() {
	if m == nil {
		return
	}
	m.SlotConflictsTotal.WithLabelValues(m.service).Inc()
}

// CodeRedraw увеличивает счетчик повторных генераций кода
func (m *Metrics) CodeRedraw() {
	if m == nil {
		return
	}
	m.CodeRedrawsTotal.WithLabelValues(m.service).Inc()
}

// StatusTransition увеличивает счетчик переходов в статус status
func (m *Metrics) StatusTransition(status string) {
	if m == nil {
		return
	}
	m.StatusTransitionsTotal.WithLabelValues(m.service, status).Inc()
}

// EventPublishFailed увеличивает счетчик неотправленных событий
func (m *Metrics) EventPublishFailed(eventType string) {
	if m == nil {
		return
	}
	m.EventPublishFailuresTotal.WithLabelValues(m.service, eventType).Inc()
}
