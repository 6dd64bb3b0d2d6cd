package printing

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeDelivered     = "delivered"
	outcomeDropped       = "dropped"
	outcomeNoSubscribers = "no_subscribers"
	outcomePrinted       = "printed"
	outcomeAckFailed     = "ack_failed"
)

// Metrics holds the dispatch counters shared by both dispatchers.
type Metrics struct {
	dispatches *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	dispatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "refill",
		Name:      "print_dispatch_total",
		Help:      "Print job dispatch attempts by dispatcher and outcome.",
	}, []string{"dispatcher", "outcome"})

	if err := reg.Register(dispatches); err != nil {
		return nil, err
	}
	return &Metrics{dispatches: dispatches}, nil
}

func (m *Metrics) inc(dispatcher, outcome string) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(dispatcher, outcome).Inc()
}
