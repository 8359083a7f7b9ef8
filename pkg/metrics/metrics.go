package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: сервис с выключенными метриками передает nil
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	slotsComputed        *prometheus.CounterVec
	bookingConflicts     *prometheus.CounterVec
	paymentFailures      prometheus.Counter
	notificationsSent    *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		dbConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		slotsComputed: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slots_computed_total",
			Help:        "Slots returned to clients, by source and availability",
			ConstLabels: constLabels,
		}, []string{"source", "available"}),

		bookingConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Bookings rejected because the slot was taken",
			ConstLabels: constLabels,
		}, []string{"stage"}),

		paymentFailures: factory.NewCounter(prometheus.CounterOpts{
			Name:        "payment_failures_total",
			Help:        "Card payments that failed after the appointment was inserted",
			ConstLabels: constLabels,
		}),

		notificationsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_sent_total",
			Help:        "Notifications delivered",
			ConstLabels: constLabels,
		}, []string{"event"}),

		notificationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "notification_failures_total",
			Help:        "Notifications that could not be delivered",
			ConstLabels: constLabels,
		}, []string{"event"}),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

// AddSlots учитывает выданные клиенту слоты
func (m *Metrics) AddSlots(source string, available, unavailable int) {
	if m == nil {
		return
	}
	m.slotsComputed.WithLabelValues(source, "true").Add(float64(available))
	m.slotsComputed.WithLabelValues(source, "false").Add(float64(unavailable))
}

// IncBookingConflict учитывает отказ по занятому слоту
// stage: precheck (проверка пересечений) или constraint (ограничение БД)
func (m *Metrics) IncBookingConflict(stage string) {
	if m == nil {
		return
	}
	m.bookingConflicts.WithLabelValues(stage).Inc()
}

// IncPaymentFailure учитывает неуспешное списание
func (m *Metrics) IncPaymentFailure() {
	if m == nil {
		return
	}
	m.paymentFailures.Inc()
}

// IncNotification учитывает результат отправки уведомления
func (m *Metrics) IncNotification(event string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.notificationFailures.WithLabelValues(event).Inc()
		return
	}
	m.notificationsSent.WithLabelValues(event).Inc()
}
