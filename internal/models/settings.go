package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTotalShares        int64   = 10_000_000
	DefaultEsopPoolPercentage float64 = 10
	DefaultLegalStructure             = "C-Corp"
)

// CompanySettings holds the company-wide knobs used by the cap table.
// There is at most one row per company; it is created lazily when missing.
type CompanySettings struct {
	CompanyID          uuid.UUID `json:"company_id"`
	CurrentValuation   float64   `json:"current_valuation"`
	EsopPoolPercentage float64   `json:"esop_pool_percentage"`
	TotalShares        int64     `json:"total_shares"`
	ExitValuation      float64   `json:"exit_valuation"`
	InitialValuation   float64   `json:"initial_valuation"`
	LegalStructure     string    `json:"legal_structure"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings created for a company that has none.
func DefaultSettings(companyID uuid.UUID) *CompanySettings {
	now := time.Now().UTC()
	return &CompanySettings{
		CompanyID:          companyID,
		EsopPoolPercentage: DefaultEsopPoolPercentage,
		TotalShares:        DefaultTotalShares,
		LegalStructure:     DefaultLegalStructure,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
