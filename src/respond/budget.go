// Package respond assembles the token-bounded, paginated diagnostic
// response. This is the failure-sensitive end of the pipeline: the budget
// walk makes exceeding the token ceiling structurally impossible rather than
// detecting it after the fact.
package respond

// Budget constants. The multiplier and reserve are empirically calibrated
// against the downstream consumer, not architecturally fixed; override them
// through Budget when recalibrating.
const (
	// TokenBudget is the hard ceiling on the estimated token cost of any
	// single response.
	TokenBudget = 25000

	// MetadataReserve is the fixed estimate charged for the non-diagnostic
	// response fields (status, summary, truncation metadata, cursor).
	MetadataReserve = 1000

	// DefaultSafetyFactor hedges against estimator undercount. Each
	// diagnostic's estimate is multiplied by this before being charged
	// against the budget.
	DefaultSafetyFactor = 1.4
)

// Budget carries the truncation parameters for one response.
type Budget struct {
	// Limit is the hard token ceiling.
	Limit int
	// MetadataReserve is subtracted from Limit before any diagnostic is
	// admitted.
	MetadataReserve int
	// SafetyFactor multiplies every per-diagnostic estimate.
	SafetyFactor float64
}

// DefaultBudget returns the calibrated production budget.
func DefaultBudget() Budget {
	return Budget{
		Limit:           TokenBudget,
		MetadataReserve: MetadataReserve,
		SafetyFactor:    DefaultSafetyFactor,
	}
}
