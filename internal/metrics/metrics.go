package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for the redemption pipeline.
type Metrics struct {
	CodesIssued        prometheus.Counter
	Redemptions        prometheus.Counter
	RedemptionFailures *prometheus.CounterVec
	SettlementRows     prometheus.Counter
}

// New creates the counters and registers them on reg. Each server instance
// carries its own registry, so building the wiring twice in one process does
// not collide on the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		CodesIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "relief_vouchers_codes_issued_total",
			Help: "Total number of redemption codes issued",
		}),
		Redemptions: factory.NewCounter(prometheus.CounterOpts{
			Name: "relief_vouchers_redemptions_total",
			Help: "Total number of successful redemptions",
		}),
		RedemptionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "relief_vouchers_redemption_failures_total",
			Help: "Total number of rejected redemption attempts",
		}, []string{"reason"}),
		SettlementRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "relief_vouchers_settlement_rows_total",
			Help: "Total number of per-unit settlement rows written",
		}),
	}
}

// IncCodesIssued increments the issued-code counter by 1.
func (m *Metrics) IncCodesIssued() {
	if m == nil {
		return
	}
	m.CodesIssued.Inc()
}

// IncRedemptions increments the successful-redemption counter by 1.
func (m *Metrics) IncRedemptions() {
	if m == nil {
		return
	}
	m.Redemptions.Inc()
}

// IncRedemptionFailure records a rejected redemption with its reason.
func (m *Metrics) IncRedemptionFailure(reason string) {
	if m == nil {
		return
	}
	m.RedemptionFailures.WithLabelValues(reason).Inc()
}

// AddSettlementRows adds the number of settlement rows written.
func (m *Metrics) AddSettlementRows(n int) {
	if m == nil {
		return
	}
	m.SettlementRows.Add(float64(n))
}
