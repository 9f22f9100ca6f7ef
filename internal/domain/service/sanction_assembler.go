package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
)

// SanctionAssembler builds the immutable sanction record for an approved
// decision. It never recomputes figures: the decision's EMI, fee, and total
// are copied verbatim so the document always reflects what was approved.
type SanctionAssembler struct {
	policy          valueobject.Policy
	disbursementRef string
}

func NewSanctionAssembler(policy valueobject.Policy, disbursementRef string) *SanctionAssembler {
	return &SanctionAssembler{policy: policy, disbursementRef: disbursementRef}
}

// Assemble snapshots the verified identity, approved terms, and repayment
// figures into a sanction record. Calling it with a non-approved decision is
// a programming error and returns ErrDecisionNotApproved.
func (a *SanctionAssembler) Assemble(sessionID string, identity model.VerifiedIdentity, app model.Application, d model.Decision, now time.Time) (model.SanctionRecord, error) {
	if !d.Approved() {
		return model.SanctionRecord{}, valueobject.ErrDecisionNotApproved
	}

	validityDays := a.policy.DefaultValidityDays
	if d.Offer.ValidityDays > 0 {
		validityDays = d.Offer.ValidityDays
	}

	id := uuid.New().String()
	return model.SanctionRecord{
		ID:                     id,
		SessionID:              sessionID,
		Reference:              "SL/" + id,
		CustomerName:           identity.Name,
		Phone:                  identity.Phone,
		Address:                identity.Address,
		DateOfBirth:            identity.DateOfBirth,
		LoanAmount:             app.Amount,
		TenureMonths:           app.TenureMonths,
		InterestRatePercent:    d.Offer.BaseRatePercent,
		EMI:                    d.EMI,
		ProcessingFee:          d.ProcessingFee,
		TotalPayable:           d.TotalPayable,
		IssuedAt:               now,
		ValidityDays:           validityDays,
		DisbursementAccountRef: a.disbursementRef,
	}, nil
}
