package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg             *prometheus.Registry
	Assembled       prometheus.Counter
	Rejected        *prometheus.CounterVec
	AssembleLatency prometheus.Histogram
	HTTPRequests    *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	assembled := prometheus.NewCounter(prometheus.CounterOpts{Name: "itinerary_options_assembled_total"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "itinerary_options_rejected_total"}, []string{"reason"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "itinerary_assemble_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "itinerary_http_requests_total"}, []string{"path", "code"})

	r.MustRegister(assembled, rejected, latency, httpRequests)
	return &Registry{
		reg:             r,
		Assembled:       assembled,
		Rejected:        rejected,
		AssembleLatency: latency,
		HTTPRequests:    httpRequests,
	}
}

func (r *Registry) ObserveAssembly(assembled int, rejectReasons []string, elapsed time.Duration) {
	r.Assembled.Add(float64(assembled))
	for _, reason := range rejectReasons {
		r.Rejected.WithLabelValues(reason).Inc()
	}
	r.AssembleLatency.Observe(elapsed.Seconds())
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
