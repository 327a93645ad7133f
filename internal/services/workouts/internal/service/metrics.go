package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts domain events. A nil *Metrics records nothing.
type Metrics struct {
	created *prometheus.CounterVec
	deleted *prometheus.CounterVec
	logins  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		created: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entities_created_total",
				Help:      "Number of created records by entity",
			},
			[]string{"entity"},
		),
		deleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entities_deleted_total",
				Help:      "Number of deleted records by entity",
			},
			[]string{"entity"},
		),
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "social_logins_total",
				Help:      "Social logins by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.created, m.deleted, m.logins)
	return m
}

func (m *Metrics) entityCreated(entity string) {
	if m == nil {
		return
	}
	m.created.WithLabelValues(entity).Inc()
}

func (m *Metrics) entityDeleted(entity string) {
	if m == nil {
		return
	}
	m.deleted.WithLabelValues(entity).Inc()
}

// socialLogin counts by outcome only. Providers are client input and
// stay out of label values.
func (m *Metrics) socialLogin(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}
