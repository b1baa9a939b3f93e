package toast

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus collectors a Scheduler updates. A nil *Metrics
// records nothing.
type Metrics struct {
	active    prometheus.Gauge
	queued    prometheus.Gauge
	shown     prometheus.Counter
	enqueued  prometheus.Counter
	evicted   prometheus.Counter
	discarded prometheus.Counter
	closed    prometheus.Counter
}

// NewMetrics registers the scheduler collectors with reg under namespace.
// A nil reg means prometheus.DefaultRegisterer. Registering twice with the
// same registry panics, as promauto does.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "toasts_active",
			Help:      "Number of toasts currently admitted",
		}),
		queued: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "toasts_queued",
			Help:      "Number of toasts waiting for a slot",
		}),
		shown: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toasts_shown_total",
			Help:      "Total number of toasts admitted",
		}),
		enqueued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toasts_queued_total",
			Help:      "Total number of show requests that had to wait",
		}),
		evicted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toasts_evicted_total",
			Help:      "Total number of active toasts closed early to make room",
		}),
		discarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toasts_discarded_total",
			Help:      "Total number of queued toasts dropped without being shown",
		}),
		closed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toasts_closed_total",
			Help:      "Total number of admitted toasts that finished closing",
		}),
	}
}

func (m *Metrics) setSizes(active, queued int) {
	if m == nil {
		return
	}
	m.active.Set(float64(active))
	m.queued.Set(float64(queued))
}

func (m *Metrics) incShown() {
	if m != nil {
		m.shown.Inc()
	}
}

func (m *Metrics) incQueued() {
	if m != nil {
		m.enqueued.Inc()
	}
}

func (m *Metrics) incEvicted() {
	if m != nil {
		m.evicted.Inc()
	}
}

func (m *Metrics) incDiscarded() {
	if m != nil {
		m.discarded.Inc()
	}
}

func (m *Metrics) incClosed() {
	if m != nil {
		m.closed.Inc()
	}
}
