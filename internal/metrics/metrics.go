package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Duty kinds used as the "kind" label of DutiesRecorded.
const (
	DutyKindFirst      = "first"
	DutyKindSubsequent = "subsequent"
	DutyKindRetirement = "retirement"
)

// Metrics holds all Prometheus metrics for the service. Each instance owns
// its registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	PeopleCreated   prometheus.Counter
	PeopleRenamed   prometheus.Counter
	DutiesRecorded  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		PeopleCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "astronaut_people_created_total",
			Help: "Total number of people created",
		}),
		PeopleRenamed: factory.NewCounter(prometheus.CounterOpts{
			Name: "astronaut_people_renamed_total",
			Help: "Total number of people renamed",
		}),
		DutiesRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "astronaut_duties_recorded_total",
			Help: "Total number of astronaut duties recorded, by kind",
		}, []string{"kind"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "astronaut_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IncrementPeopleCreated() {
	m.PeopleCreated.Inc()
}

func (m *Metrics) IncrementPeopleRenamed() {
	m.PeopleRenamed.Inc()
}

func (m *Metrics) IncrementDutiesRecorded(kind string) {
	m.DutiesRecorded.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
