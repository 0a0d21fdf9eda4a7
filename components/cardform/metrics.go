package cardform

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "cardform"

type metrics struct {
	requests        *prometheus.CounterVec
	commits         *prometheus.CounterVec
	classifications *prometheus.CounterVec
	gatherer        prometheus.Gatherer
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{}
	if reg == nil {
		private := prometheus.NewRegistry()
		reg = private
		m.gatherer = private
	}

	var err error
	if m.requests, err = registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests handled by the card form component.",
	}, "route", "code"); err != nil {
		return nil, err
	}
	if m.commits, err = registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "commits_total",
		Help:      "Commit attempts by outcome (stored, incomplete, failed).",
	}, "result"); err != nil {
		return nil, err
	}
	if m.classifications, err = registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "classifications_total",
		Help:      "Networks detected by classify and normalize requests.",
	}, "network"); err != nil {
		return nil, err
	}
	return m, nil
}

// registerCounterVec registers a counter, reusing an identical collector that
// is already registered (e.g. a second component on the default registry).
func registerCounterVec(reg prometheus.Registerer, opts prometheus.CounterOpts, labels ...string) (*prometheus.CounterVec, error) {
	vec := prometheus.NewCounterVec(opts, labels)
	if err := reg.Register(vec); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return vec, nil
}

func (m *metrics) observe(route string, code int) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// handler serves the private registry; nil when metrics go to a caller
// provided registerer.
func (m *metrics) handler() http.Handler {
	if m.gatherer == nil {
		return nil
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
