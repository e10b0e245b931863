package worksite

import "time"

// Classification thresholds, in percent of initial budget.
const (
	atRiskBelowPct = 5.0
	watchBelowPct  = 15.0

	// budgetAlertRatio is the committed-to-budget ratio above which the
	// budget alert fires.
	budgetAlertRatio = 0.9

	// PendingAmendmentMaxAge is how long an amendment may stay pending
	// before the amendment alert fires.
	PendingAmendmentMaxAge = 7 * 24 * time.Hour

	// openEndedMaxAge flags active worksites that have been running without
	// a planned end date for roughly six months.
	openEndedMaxAge = 182 * 24 * time.Hour
)

// Derivation holds the financial fields computed from a budget and the
// committed-cost total. It is produced by Derive and carries no identity.
type Derivation struct {
	MarginEstimated  int64
	MarginPercentage float64
	Profitability    Profitability
	BudgetAlert      bool
}

// Derive computes margin, margin percentage, profitability classification and
// the budget alert from the initial budget and the committed-cost total, both
// in centimes. It is pure and safe to re-run on reconciliation.
//
// A zero budget makes the percentage meaningless, so it is defined as 0 and
// the classification falls back to the margin sign alone.
func Derive(budgetInitial, costsCommitted int64) Derivation {
	d := Derivation{
		MarginEstimated: budgetInitial - costsCommitted,
		BudgetAlert:     float64(costsCommitted) > budgetAlertRatio*float64(budgetInitial),
	}

	if budgetInitial == 0 {
		if d.MarginEstimated < 0 {
			d.Profitability = AtRisk
		} else {
			d.Profitability = Profitable
		}

		return d
	}

	d.MarginPercentage = float64(d.MarginEstimated) / float64(budgetInitial) * 100

	switch {
	case d.MarginPercentage < atRiskBelowPct || d.MarginEstimated < 0:
		d.Profitability = AtRisk
	case d.MarginPercentage < watchBelowPct:
		d.Profitability = Watch
	default:
		d.Profitability = Profitable
	}

	return d
}

// DeriveAmendmentAlert reports whether a pending amendment requested at the
// given time has been waiting longer than PendingAmendmentMaxAge. A nil
// requested-at means no pending amendment exists.
func DeriveAmendmentAlert(oldestPending *time.Time, now time.Time) bool {
	if oldestPending == nil {
		return false
	}

	return now.Sub(*oldestPending) > PendingAmendmentMaxAge
}

// DeriveAdminAlert reports whether an active worksite needs administrative
// attention: its planned end date is in the past, or it has no planned end
// date and has been running for more than openEndedMaxAge.
func DeriveAdminAlert(status Status, startDate, plannedEndDate *time.Time, now time.Time) bool {
	if status != StatusActive {
		return false
	}

	if plannedEndDate != nil {
		return plannedEndDate.Before(now)
	}

	if startDate == nil {
		return false
	}

	return now.Sub(*startDate) > openEndedMaxAge
}
