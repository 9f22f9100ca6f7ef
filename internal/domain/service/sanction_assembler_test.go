package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/service"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
)

func approvedDecision() model.Decision {
	return model.Decision{
		Outcome: valueobject.OutcomeApproved,
		Offer: model.Offer{
			ID:              "prime",
			Name:            "Prime Personal Loan",
			BaseRatePercent: decimal.RequireFromString("10.5"),
		},
		OfferSelected: true,
		EMI:           decimal.RequireFromString("6956.41"),
		TotalPayable:  decimal.RequireFromString("166953.84"),
		ProcessingFee: decimal.RequireFromString("2250.00"),
	}
}

func TestAssemble(t *testing.T) {
	assembler := service.NewSanctionAssembler(valueobject.DefaultPolicy(), "VITTAM-DISB-001")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	identity := model.VerifiedIdentity{
		Name:        "Rahul Sharma",
		Phone:       "9876543210",
		Address:     "14 MG Road, Bengaluru",
		DateOfBirth: "1990-04-12",
		VerifiedAt:  now,
	}
	app := model.Application{
		Amount:       decimal.NewFromInt(150000),
		TenureMonths: 24,
	}

	t.Run("copies decision figures verbatim", func(t *testing.T) {
		rec, err := assembler.Assemble("sess-1", identity, app, approvedDecision(), now)

		require.NoError(t, err)
		assert.Equal(t, "sess-1", rec.SessionID)
		assert.True(t, strings.HasPrefix(rec.Reference, "SL/"))
		assert.Equal(t, "6956.41", rec.EMI.StringFixed(2))
		assert.Equal(t, "166953.84", rec.TotalPayable.StringFixed(2))
		assert.Equal(t, "2250.00", rec.ProcessingFee.StringFixed(2))
		assert.Equal(t, "10.5", rec.InterestRatePercent.String())
		assert.Equal(t, "Rahul Sharma", rec.CustomerName)
		assert.Equal(t, now, rec.IssuedAt)
		assert.Equal(t, 30, rec.ValidityDays)
		assert.Equal(t, "VITTAM-DISB-001", rec.DisbursementAccountRef)
		assert.Equal(t, now.AddDate(0, 0, 30), rec.ValidUntil())
	})

	t.Run("offer validity overrides the policy default", func(t *testing.T) {
		d := approvedDecision()
		d.Offer.ValidityDays = 45

		rec, err := assembler.Assemble("sess-1", identity, app, d, now)

		require.NoError(t, err)
		assert.Equal(t, 45, rec.ValidityDays)
	})

	t.Run("figures re-derive from the calculator", func(t *testing.T) {
		calc := service.NewFinanceCalculator()
		rec, err := assembler.Assemble("sess-1", identity, app, approvedDecision(), now)
		require.NoError(t, err)

		emi := calc.ComputeEMI(rec.LoanAmount, rec.InterestRatePercent, rec.TenureMonths)
		assert.True(t, emi.Equal(rec.EMI))
		assert.True(t, calc.ComputeTotalPayable(emi, rec.TenureMonths).Equal(rec.TotalPayable))
	})

	t.Run("refuses non-approved decisions", func(t *testing.T) {
		d := model.Decision{Outcome: valueobject.OutcomeRejected, Reason: "no matching offer"}

		_, err := assembler.Assemble("sess-1", identity, app, d, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, valueobject.ErrDecisionNotApproved)
	})
}
