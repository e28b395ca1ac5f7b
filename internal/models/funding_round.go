package models

import (
	"time"

	"github.com/google/uuid"
)

// Round types recognised by validation and the cap table.
const (
	RoundTypeSAFE            = "SAFE"
	RoundTypePriced          = "Priced Round"
	RoundTypeConvertibleNote = "Convertible Note"
)

// FundingRound is the database shape of a funding round.
// Valuation is the pre-money valuation.
type FundingRound struct {
	ID                uuid.UUID `json:"id"`
	CompanyID         uuid.UUID `json:"company_id"`
	Name              string    `json:"name"`
	RoundType         string    `json:"round_type"`
	CapitalRaised     float64   `json:"capital_raised"`
	Valuation         float64   `json:"valuation"`
	SharesIssued      int64     `json:"shares_issued"`
	SharePrice        float64   `json:"price_per_share"`
	ValuationCap      float64   `json:"valuation_cap"`
	DiscountRate      float64   `json:"discount_rate"` // percent, e.g. 20 for 20%
	ConversionTrigger string    `json:"conversion_trigger"`
	Investors         []string  `json:"investors"`
	RoundDate         time.Time `json:"round_date"`
	Notes             string    `json:"notes"`
	Active            bool      `json:"active"`
	OrderNumber       int       `json:"order_number"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// PostMoney returns the post-money valuation.
func (r *FundingRound) PostMoney() float64 {
	return r.Valuation + r.CapitalRaised
}

// IsConvertible reports whether the round converts at a later priced round.
func (r *FundingRound) IsConvertible() bool {
	return r.RoundType == RoundTypeSAFE || r.RoundType == RoundTypeConvertibleNote
}

// FundingRoundInput is the application shape of a funding round as submitted
// by clients. Optional fields are pointers so absence can be told apart from zero.
type FundingRoundInput struct {
	Name              string    `json:"name" yaml:"name"`
	RoundType         string    `json:"roundType" yaml:"round_type"`
	CapitalRaised     float64   `json:"capitalRaised" yaml:"capital_raised"`
	Valuation         float64   `json:"valuation" yaml:"valuation"`
	SharesIssued      *int64    `json:"sharesIssued,omitempty" yaml:"shares_issued,omitempty"`
	SharePrice        *float64  `json:"sharePrice,omitempty" yaml:"share_price,omitempty"`
	ValuationCap      *float64  `json:"valuationCap,omitempty" yaml:"valuation_cap,omitempty"`
	DiscountRate      *float64  `json:"discountRate,omitempty" yaml:"discount_rate,omitempty"`
	ConversionTrigger string    `json:"conversionTrigger,omitempty" yaml:"conversion_trigger,omitempty"`
	Investors         []string  `json:"investors,omitempty" yaml:"investors,omitempty"`
	Date              time.Time `json:"date" yaml:"date"`
	Notes             *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	OrderNumber       int       `json:"orderNumber,omitempty" yaml:"order_number,omitempty"`
}

// ToRecord maps the input to its database shape. Numeric fields are copied
// exactly; absent optional fields become zero or empty values.
func (in *FundingRoundInput) ToRecord(companyID uuid.UUID) *FundingRound {
	now := time.Now().UTC()
	r := &FundingRound{
		ID:                uuid.Must(uuid.NewV7()),
		CompanyID:         companyID,
		Name:              in.Name,
		RoundType:         in.RoundType,
		CapitalRaised:     in.CapitalRaised,
		Valuation:         in.Valuation,
		ConversionTrigger: in.ConversionTrigger,
		Investors:         []string{},
		RoundDate:         in.Date,
		Active:            true,
		OrderNumber:       in.OrderNumber,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.SharesIssued != nil {
		r.SharesIssued = *in.SharesIssued
	}
	if in.SharePrice != nil {
		r.SharePrice = *in.SharePrice
	}
	if in.ValuationCap != nil {
		r.ValuationCap = *in.ValuationCap
	}
	if in.DiscountRate != nil {
		r.DiscountRate = *in.DiscountRate
	}
	if in.Notes != nil {
		r.Notes = *in.Notes
	}
	if len(in.Investors) > 0 {
		r.Investors = append(r.Investors, in.Investors...)
	}
	return r
}

// FundingRoundInputFromRecord maps a stored round back to the application shape.
func FundingRoundInputFromRecord(r *FundingRound) *FundingRoundInput {
	sharesIssued := r.SharesIssued
	sharePrice := r.SharePrice
	valuationCap := r.ValuationCap
	discountRate := r.DiscountRate
	notes := r.Notes
	return &FundingRoundInput{
		Name:              r.Name,
		RoundType:         r.RoundType,
		CapitalRaised:     r.CapitalRaised,
		Valuation:         r.Valuation,
		SharesIssued:      &sharesIssued,
		SharePrice:        &sharePrice,
		ValuationCap:      &valuationCap,
		DiscountRate:      &discountRate,
		ConversionTrigger: r.ConversionTrigger,
		Investors:         append([]string(nil), r.Investors...),
		Date:              r.RoundDate,
		Notes:             &notes,
		OrderNumber:       r.OrderNumber,
	}
}
