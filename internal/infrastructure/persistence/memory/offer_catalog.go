package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vittamlabs/origination/internal/domain/model"
)

// OfferCatalog implements port.OfferCatalog over a fixed slice. The catalog
// is loaded once and treated as immutable for the process lifetime, so reads
// need no locking beyond the initial copy.
type OfferCatalog struct {
	offers []model.Offer
}

func NewOfferCatalog(offers []model.Offer) *OfferCatalog {
	return &OfferCatalog{offers: offers}
}

// NewSeededOfferCatalog returns the catalog with the banded product
// templates used by the default deployment.
func NewSeededOfferCatalog() *OfferCatalog {
	return NewOfferCatalog(SeedOffers())
}

func (c *OfferCatalog) ActiveOffers(_ context.Context) ([]model.Offer, error) {
	out := make([]model.Offer, 0, len(c.offers))
	for _, o := range c.offers {
		if o.Active {
			out = append(out, o)
		}
	}
	return out, nil
}

// SeedOffers returns the default lending product bands.
func SeedOffers() []model.Offer {
	return []model.Offer{
		{
			ID:               "offer-select",
			Name:             "Select Personal Loan",
			MinCreditScore:   775,
			MaxCreditScore:   900,
			MinAmount:        decimal.NewFromInt(100000),
			MaxAmount:        decimal.NewFromInt(5000000),
			MinTenureMonths:  12,
			MaxTenureMonths:  84,
			BaseRatePercent:  decimal.RequireFromString("9.99"),
			ProcessingFeePct: decimal.RequireFromString("1.0"),
			ValidityDays:     45,
			Active:           true,
		},
		{
			ID:               "offer-prime",
			Name:             "Prime Personal Loan",
			MinCreditScore:   740,
			MaxCreditScore:   900,
			MinAmount:        decimal.NewFromInt(50000),
			MaxAmount:        decimal.NewFromInt(5000000),
			MinTenureMonths:  6,
			MaxTenureMonths:  84,
			BaseRatePercent:  decimal.RequireFromString("10.5"),
			ProcessingFeePct: decimal.RequireFromString("1.5"),
			Active:           true,
		},
		{
			ID:               "offer-standard",
			Name:             "Standard Personal Loan",
			MinCreditScore:   700,
			MaxCreditScore:   900,
			MinAmount:        decimal.NewFromInt(50000),
			MaxAmount:        decimal.NewFromInt(2000000),
			MinTenureMonths:  6,
			MaxTenureMonths:  60,
			BaseRatePercent:  decimal.RequireFromString("13.25"),
			ProcessingFeePct: decimal.RequireFromString("2.0"),
			Active:           true,
		},
		{
			ID:               "offer-festive-2024",
			Name:             "Festive Personal Loan 2024",
			MinCreditScore:   700,
			MaxCreditScore:   900,
			MinAmount:        decimal.NewFromInt(50000),
			MaxAmount:        decimal.NewFromInt(1000000),
			MinTenureMonths:  6,
			MaxTenureMonths:  36,
			BaseRatePercent:  decimal.RequireFromString("9.5"),
			ProcessingFeePct: decimal.RequireFromString("0.5"),
			Active:           false, // retired campaign, retained for audit
		},
	}
}
