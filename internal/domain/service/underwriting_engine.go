package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
)

// Reason codes form the decision vocabulary: every decision carries one,
// and callers and tests match on them verbatim.
const (
	ReasonApprovedWithinPolicy  = "approved within policy"
	ReasonNoCreditProfile       = "no credit profile on file"
	ReasonNoMatchingOffer       = "no matching offer"
	ReasonScoreBelowThreshold   = "credit score below threshold"
	ReasonSalarySlipRequired    = "salary verification required"
	ReasonAmountExceedsMaximum  = "amount exceeds maximum multiplier"
	ReasonEMIExceedsIncomeShare = "EMI exceeds 50% of income"
)

// UnderwritingEngine produces a loan decision from an application, a credit
// profile, and the offer catalog. It is deterministic and side-effect free:
// the same inputs always yield the same decision.
type UnderwritingEngine struct {
	policy valueobject.Policy
	calc   *FinanceCalculator
}

func NewUnderwritingEngine(policy valueobject.Policy, calc *FinanceCalculator) *UnderwritingEngine {
	return &UnderwritingEngine{policy: policy, calc: calc}
}

// Decide runs the ordered rule chain. Checks fire in a fixed order so the
// reported reason is stable: score floor, offer match, tier by pre-approved
// limit, then affordability. The floor comes first so a sub-threshold
// applicant hears about the score, not about offer bands.
func (e *UnderwritingEngine) Decide(app model.Application, profile model.CreditProfile, offers []model.Offer) model.Decision {
	if profile.Score < e.policy.MinCreditScore {
		return reject(ReasonScoreBelowThreshold)
	}

	offer, ok := e.selectOffer(profile.Score, app.Amount, app.TenureMonths, offers)
	if !ok {
		return reject(ReasonNoMatchingOffer)
	}

	limit := profile.PreApprovedLimit
	stretched := limit.Mul(e.policy.LimitMultiplier)
	switch {
	case app.Amount.LessThanOrEqual(limit):
		// instant tier, fall through to affordability
	case app.Amount.LessThanOrEqual(stretched):
		if !app.SalarySlip {
			return model.Decision{
				Outcome: valueobject.OutcomeNeedsSalarySlip,
				Reason:  ReasonSalarySlipRequired,
			}
		}
	default:
		return reject(ReasonAmountExceedsMaximum)
	}

	emi := e.calc.ComputeEMI(app.Amount, offer.BaseRatePercent, app.TenureMonths)
	burden := emi.Add(profile.ExistingLoanEMITotal)
	if burden.GreaterThan(profile.MonthlySalary.Mul(e.policy.EMIIncomeCap)) {
		return reject(ReasonEMIExceedsIncomeShare)
	}

	return model.Decision{
		Outcome:       valueobject.OutcomeApproved,
		Reason:        ReasonApprovedWithinPolicy,
		Offer:         offer,
		OfferSelected: true,
		EMI:           emi,
		TotalPayable:  e.calc.ComputeTotalPayable(emi, app.TenureMonths),
		ProcessingFee: e.calc.ComputeProcessingFee(app.Amount, offer.ProcessingFeePct),
	}
}

// selectOffer returns the active offer whose score, amount, and tenure bands
// all contain the application, preferring the lowest base rate. Ties break
// on offer ID for determinism.
func (e *UnderwritingEngine) selectOffer(score int, amount decimal.Decimal, tenureMonths int, offers []model.Offer) (model.Offer, bool) {
	matched := make([]model.Offer, 0, len(offers))
	for _, o := range offers {
		if o.Matches(score, amount, tenureMonths) {
			matched = append(matched, o)
		}
	}
	if len(matched) == 0 {
		return model.Offer{}, false
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].BaseRatePercent.Equal(matched[j].BaseRatePercent) {
			return matched[i].BaseRatePercent.LessThan(matched[j].BaseRatePercent)
		}
		return matched[i].ID < matched[j].ID
	})
	return matched[0], true
}

func reject(reason string) model.Decision {
	return model.Decision{Outcome: valueobject.OutcomeRejected, Reason: reason}
}
