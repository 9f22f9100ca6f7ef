package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vittamlabs/origination/internal/domain/model"
	pgdb "github.com/vittamlabs/origination/pkg/postgres"
)

// OfferRepo implements port.OfferCatalog over the offers table.
type OfferRepo struct {
	db pgdb.Querier
}

func NewOfferRepo(db pgdb.Querier) *OfferRepo {
	return &OfferRepo{db: db}
}

func (r *OfferRepo) ActiveOffers(ctx context.Context) ([]model.Offer, error) {
	query := `
		SELECT id, name, min_credit_score, max_credit_score,
		       min_amount, max_amount, min_tenure_months, max_tenure_months,
		       base_rate_percent, processing_fee_pct, validity_days, active
		FROM offers
		WHERE active
		ORDER BY base_rate_percent ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}
	defer rows.Close()

	var result []model.Offer
	for rows.Next() {
		var (
			o                    model.Offer
			minAmount, maxAmount decimal.Decimal
			rate, feePct         decimal.Decimal
		)
		err := rows.Scan(
			&o.ID, &o.Name, &o.MinCreditScore, &o.MaxCreditScore,
			&minAmount, &maxAmount, &o.MinTenureMonths, &o.MaxTenureMonths,
			&rate, &feePct, &o.ValidityDays, &o.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		o.MinAmount = minAmount
		o.MaxAmount = maxAmount
		o.BaseRatePercent = rate
		o.ProcessingFeePct = feePct
		result = append(result, o)
	}
	return result, rows.Err()
}
