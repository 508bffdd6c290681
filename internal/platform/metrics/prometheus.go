package metrics

import (
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds the service's Prometheus collectors.
type MetricsManager struct {
	Registry             *prometheus.Registry
	BookingsCreatedTotal prometheus.Counter
	BookingFailuresTotal *prometheus.CounterVec // by stage: cost, debit, persist
	CompensationsTotal   *prometheus.CounterVec // by outcome: refunded, failed, skipped
	ReviewsCreatedTotal  *prometheus.CounterVec // by target type
	FundsAddedTotal      prometheus.Counter
	ListingCacheLookups  *prometheus.CounterVec // by result: hit, miss, error
	APIErrorsTotal       *prometheus.CounterVec
	APILatency           *prometheus.HistogramVec
}

// NewMetricsManager registers every collector on a private registry.
func NewMetricsManager(serviceName string) *MetricsManager {
	namespace := strings.ReplaceAll(serviceName, "-", "_")
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		BookingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Total number of bookings persisted.",
		}),
		BookingFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_failures_total",
			Help:      "Booking attempts that failed, by workflow stage.",
		}, []string{"stage"}),
		CompensationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_compensations_total",
			Help:      "Refunds issued after a booking could not be persisted, by outcome.",
		}, []string{"outcome"}),
		ReviewsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_created_total",
			Help:      "Total number of reviews created, by target type.",
		}, []string{"target_type"}),
		FundsAddedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_top_ups_total",
			Help:      "Total number of successful wallet top ups.",
		}),
		ListingCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_cache_lookups_total",
			Help:      "Listing cache lookups, by result.",
		}, []string{"result"}),
		APIErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of API errors by route.",
		}, []string{"route", "error_type"}),
		APILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_latency_seconds",
			Help:      "Latency of API requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	registry.MustRegister(
		m.BookingsCreatedTotal,
		m.BookingFailuresTotal,
		m.CompensationsTotal,
		m.ReviewsCreatedTotal,
		m.FundsAddedTotal,
		m.ListingCacheLookups,
		m.APIErrorsTotal,
		m.APILatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// NewMetricsServer returns the /metrics HTTP server, or nil when port is empty.
func NewMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) *http.Server {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server configured", zap.String("port", port), zap.String("path", "/metrics"))
	return &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
}

// The helpers below are safe on a nil manager so usecases can run without metrics.

func (m *MetricsManager) BookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.Inc()
}

func (m *MetricsManager) BookingFailed(stage string) {
	if m == nil {
		return
	}
	m.BookingFailuresTotal.WithLabelValues(stage).Inc()
}

func (m *MetricsManager) Compensation(outcome string) {
	if m == nil {
		return
	}
	m.CompensationsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsManager) ReviewCreated(targetType string) {
	if m == nil {
		return
	}
	m.ReviewsCreatedTotal.WithLabelValues(targetType).Inc()
}

func (m *MetricsManager) FundsAdded() {
	if m == nil {
		return
	}
	m.FundsAddedTotal.Inc()
}

func (m *MetricsManager) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.ListingCacheLookups.WithLabelValues(result).Inc()
}

func (m *MetricsManager) APIError(route, errorType string) {
	if m == nil {
		return
	}
	m.APIErrorsTotal.WithLabelValues(route, errorType).Inc()
}

func (m *MetricsManager) ObserveLatency(route, method string, seconds float64) {
	if m == nil {
		return
	}
	m.APILatency.WithLabelValues(route, method).Observe(seconds)
}
