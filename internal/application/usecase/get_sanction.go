package usecase

import (
	"context"
	"fmt"

	"github.com/vittamlabs/origination/internal/application/dto"
	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/port"
)

// GetSanctionUseCase returns the sanction record issued for a session.
type GetSanctionUseCase struct {
	sanctions port.SanctionRecordRepository
}

func NewGetSanctionUseCase(sanctions port.SanctionRecordRepository) *GetSanctionUseCase {
	return &GetSanctionUseCase{sanctions: sanctions}
}

func (uc *GetSanctionUseCase) Execute(ctx context.Context, sessionID string) (dto.SanctionRecordResponse, error) {
	rec, err := uc.sanctions.FindBySessionID(ctx, sessionID)
	if err != nil {
		return dto.SanctionRecordResponse{}, fmt.Errorf("load sanction record: %w", err)
	}
	return toSanctionResponse(rec), nil
}

func toSanctionResponse(rec model.SanctionRecord) dto.SanctionRecordResponse {
	return dto.SanctionRecordResponse{
		ID:                     rec.ID,
		SessionID:              rec.SessionID,
		Reference:              rec.Reference,
		CustomerName:           rec.CustomerName,
		Phone:                  rec.Phone,
		Address:                rec.Address,
		DateOfBirth:            rec.DateOfBirth,
		LoanAmount:             rec.LoanAmount.StringFixed(2),
		TenureMonths:           rec.TenureMonths,
		InterestRatePercent:    rec.InterestRatePercent.String(),
		EMI:                    rec.EMI.StringFixed(2),
		ProcessingFee:          rec.ProcessingFee.StringFixed(2),
		TotalPayable:           rec.TotalPayable.StringFixed(2),
		IssuedAt:               rec.IssuedAt,
		ValidUntil:             rec.ValidUntil(),
		DisbursementAccountRef: rec.DisbursementAccountRef,
	}
}
