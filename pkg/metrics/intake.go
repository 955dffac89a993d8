package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// IntakeMetrics records the outcome of wager intake attempts.
type IntakeMetrics struct {
	placed   prometheus.Counter
	rejected *prometheus.CounterVec
	staked   prometheus.Counter
}

// NewIntakeMetrics registers the wager intake metrics on the provided registerer.
func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	if reg == nil {
		return &IntakeMetrics{}
	}
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bets_placed_total",
		Help: "Successfully recorded bets.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bets_rejected_total",
		Help: "Bets rejected before any state change.",
	}, []string{"reason"})
	staked := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stake_cents_total",
		Help: "Total stake accepted, in minor currency units.",
	})
	reg.MustRegister(placed, rejected, staked)
	return &IntakeMetrics{
		placed:   placed,
		rejected: rejected,
		staked:   staked,
	}
}

// IncPlaced records an accepted bet and its stake.
func (m *IntakeMetrics) IncPlaced(amountCents int64) {
	if m == nil || m.placed == nil {
		return
	}
	m.placed.Inc()
	if amountCents > 0 {
		m.staked.Add(float64(amountCents))
	}
}

// IncRejected records a rejected bet by reason.
func (m *IntakeMetrics) IncRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
