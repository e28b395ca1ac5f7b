package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// Scenario is a saved what-if exit for a company.
type Scenario struct {
	ID            uuid.UUID `json:"id"`
	CompanyID     uuid.UUID `json:"company_id"`
	Name          string    `json:"name"`
	ExitValuation float64   `json:"exit_valuation"`
	Notes         string    `json:"notes"`
	ShareCode     string    `json:"share_code"` // Base58-encoded scenario ID
	CreatedAt     time.Time `json:"created_at"`
}

// ShareCodeFor returns the public share code of a scenario ID.
func ShareCodeFor(id uuid.UUID) string {
	return base58.Encode(id[:])
}

// ParseShareCode reverses ShareCodeFor.
func ParseShareCode(code string) (uuid.UUID, error) {
	raw, err := base58.Decode(code)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.FromBytes(raw)
}

// NewScenario returns a scenario with a fresh ID and its share code derived from it.
func NewScenario(companyID uuid.UUID, name string, exitValuation float64, notes string) *Scenario {
	id := uuid.Must(uuid.NewV7())
	return &Scenario{
		ID:            id,
		CompanyID:     companyID,
		Name:          name,
		ExitValuation: exitValuation,
		Notes:         notes,
		ShareCode:     ShareCodeFor(id),
		CreatedAt:     time.Now().UTC(),
	}
}
