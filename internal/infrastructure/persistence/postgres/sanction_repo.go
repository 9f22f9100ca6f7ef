package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vittamlabs/origination/internal/domain/model"
	pgdb "github.com/vittamlabs/origination/pkg/postgres"
)

// ErrSanctionNotFound is returned when no sanction record exists for a session.
var ErrSanctionNotFound = errors.New("sanction record not found")

// SanctionRepo implements port.SanctionRecordRepository. Records are
// append-only: there is no update path, the insert conflicts on re-issue.
type SanctionRepo struct {
	db pgdb.Querier
}

func NewSanctionRepo(db pgdb.Querier) *SanctionRepo {
	return &SanctionRepo{db: db}
}

func (r *SanctionRepo) Save(ctx context.Context, rec model.SanctionRecord) error {
	query := `
		INSERT INTO sanction_records (
			id, session_id, reference, customer_name, phone, address,
			date_of_birth, loan_amount, tenure_months, interest_rate_percent,
			emi, processing_fee, total_payable, issued_at, validity_days,
			disbursement_account_ref
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`
	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.SessionID, rec.Reference,
		rec.CustomerName, rec.Phone, rec.Address, rec.DateOfBirth,
		rec.LoanAmount, rec.TenureMonths, rec.InterestRatePercent,
		rec.EMI, rec.ProcessingFee, rec.TotalPayable,
		rec.IssuedAt, rec.ValidityDays, rec.DisbursementAccountRef,
	)
	if err != nil {
		return fmt.Errorf("save sanction record: %w", err)
	}
	return nil
}

func (r *SanctionRepo) FindBySessionID(ctx context.Context, sessionID string) (model.SanctionRecord, error) {
	query := `
		SELECT id, session_id, reference, customer_name, phone, address,
		       date_of_birth, loan_amount, tenure_months, interest_rate_percent,
		       emi, processing_fee, total_payable, issued_at, validity_days,
		       disbursement_account_ref
		FROM sanction_records
		WHERE session_id = $1
		ORDER BY issued_at DESC
		LIMIT 1
	`
	row := r.db.QueryRow(ctx, query, sessionID)

	var (
		rec          model.SanctionRecord
		loanAmount   decimal.Decimal
		rate         decimal.Decimal
		emi          decimal.Decimal
		fee          decimal.Decimal
		totalPayable decimal.Decimal
		issuedAt     time.Time
	)
	err := row.Scan(
		&rec.ID, &rec.SessionID, &rec.Reference,
		&rec.CustomerName, &rec.Phone, &rec.Address, &rec.DateOfBirth,
		&loanAmount, &rec.TenureMonths, &rate,
		&emi, &fee, &totalPayable,
		&issuedAt, &rec.ValidityDays, &rec.DisbursementAccountRef,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.SanctionRecord{}, ErrSanctionNotFound
	}
	if err != nil {
		return model.SanctionRecord{}, fmt.Errorf("scan sanction record: %w", err)
	}

	rec.LoanAmount = loanAmount
	rec.InterestRatePercent = rate
	rec.EMI = emi
	rec.ProcessingFee = fee
	rec.TotalPayable = totalPayable
	rec.IssuedAt = issuedAt
	return rec, nil
}
