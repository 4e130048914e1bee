// Package metrics содержит Prometheus-метрики сервиса.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик HTTP-слоя и интеграций
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	upstreamRequestsTotal   *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec

	refreshesTotal *prometheus.CounterVec
}

// New регистрирует метрики в default-регистре и возвращает коллектор
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests processed",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		upstreamRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "upstream_requests_total",
			Help:        "Total number of requests issued to the booking backend",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		upstreamRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "upstream_request_duration_seconds",
			Help:        "Booking backend request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),

		refreshesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "event_store_refreshes_total",
			Help:        "Event store refresh outcomes (applied, stale, failed)",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveUpstreamRequest фиксирует запрос к бэкенду бронирований
func (m *Metrics) ObserveUpstreamRequest(operation string, status int, duration time.Duration) {
	m.upstreamRequestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	m.upstreamRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveRefresh фиксирует исход refresh-цикла event store
func (m *Metrics) ObserveRefresh(result string) {
	m.refreshesTotal.WithLabelValues(result).Inc()
}
