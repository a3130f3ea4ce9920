package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives registration outcomes. Outcome is "ok" or an error kind.
type Recorder interface {
	Registration(resource, outcome string)
	Cancellation(resource string)
}

type Metrics struct {
	registry      *prometheus.Registry
	registrations *prometheus.CounterVec
	cancellations *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skb",
			Name:      "registrations_total",
			Help:      "Registration attempts by resource and outcome.",
		}, []string{"resource", "outcome"}),
		cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skb",
			Name:      "registration_cancellations_total",
			Help:      "Cancelled registrations by resource.",
		}, []string{"resource"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skb",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "skb",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.registrations,
		m.cancellations,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Registration(resource, outcome string) {
	m.registrations.WithLabelValues(resource, outcome).Inc()
}

func (m *Metrics) Cancellation(resource string) {
	m.cancellations.WithLabelValues(resource).Inc()
}

func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// Handler exposes the registry on a fiber route.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Nop discards everything; used in tests and tools.
type Nop struct{}

func (Nop) Registration(string, string) {}
func (Nop) Cancellation(string)         {}
