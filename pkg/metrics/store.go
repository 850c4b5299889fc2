package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records cart/wishlist store activity.
type StoreMetrics struct {
	mutations    *prometheus.CounterVec
	saveFailures *prometheus.CounterVec
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_mutations_total",
		Help: "State store mutations by store and operation.",
	}, []string{"store", "op"})
	saveFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_save_failures_total",
		Help: "Snapshot persistence failures by store.",
	}, []string{"store"})
	reg.MustRegister(mutations, saveFailures)
	return &StoreMetrics{
		mutations:    mutations,
		saveFailures: saveFailures,
	}
}

// IncMutation counts one mutation of the named store.
func (s *StoreMetrics) IncMutation(store, op string) {
	if s == nil || s.mutations == nil {
		return
	}
	s.mutations.WithLabelValues(normalizeLabel(store), normalizeLabel(op)).Inc()
}

// IncSaveFailure counts one failed snapshot write.
func (s *StoreMetrics) IncSaveFailure(store string) {
	if s == nil || s.saveFailures == nil {
		return
	}
	s.saveFailures.WithLabelValues(normalizeLabel(store)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
