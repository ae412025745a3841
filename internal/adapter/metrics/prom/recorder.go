// Package prom exports transition outcomes as prometheus counters on a
// private registry.
package prom

import (
	"net/http"
	"time"

	"nftforge/internal/domain/progression"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
	OutcomeFailure  = "failure"
)

type Recorder struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
}

func NewRecorder(namespace string) *Recorder {
	if namespace == "" {
		namespace = "nftforge"
	}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Progression transitions by kind and outcome.",
		}, []string{"kind", "outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transition_rejections_total",
			Help:      "Rejected progression transitions by kind and reason.",
		}, []string{"kind", "reason"}),
	}
	r.registry.MustRegister(
		r.transitions,
		r.rejections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) RecordSuccess(kind progression.TransitionKind) {
	r.transitions.WithLabelValues(string(kind), OutcomeSuccess).Inc()
}

func (r *Recorder) RecordRejected(kind progression.TransitionKind, reason string) {
	r.transitions.WithLabelValues(string(kind), OutcomeRejected).Inc()
	r.rejections.WithLabelValues(string(kind), reason).Inc()
}

func (r *Recorder) RecordConflict(kind progression.TransitionKind) {
	r.transitions.WithLabelValues(string(kind), OutcomeConflict).Inc()
}

func (r *Recorder) RecordFailure(kind progression.TransitionKind) {
	r.transitions.WithLabelValues(string(kind), OutcomeFailure).Inc()
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// NewServer builds the standalone listener that serves the registry at path.
// The caller owns ListenAndServe and Shutdown.
func (r *Recorder) NewServer(addr, path string) *http.Server {
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, r.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}
