package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/models"
)

// FounderStore defines the storage operations for founders.
type FounderStore interface {
	// Create returns ErrInvalidReference if the company doesn't exist.
	Create(ctx context.Context, founder *models.Founder) error
	Get(ctx context.Context, id uuid.UUID) (*models.Founder, error)
	Update(ctx context.Context, founder *models.Founder) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Founder, error)
}

// FundingRoundStore defines the storage operations for funding rounds.
type FundingRoundStore interface {
	// Create returns ErrInvalidReference if the company doesn't exist.
	Create(ctx context.Context, round *models.FundingRound) error
	Get(ctx context.Context, id uuid.UUID) (*models.FundingRound, error)
	Update(ctx context.Context, round *models.FundingRound) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByCompany returns the company's rounds ordered by order_number,
	// then round_date.
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.FundingRound, error)
}

// EsopGrantStore defines the storage operations for ESOP grants.
type EsopGrantStore interface {
	// Create returns ErrInvalidReference if the company doesn't exist.
	Create(ctx context.Context, grant *models.EsopGrant) error
	Get(ctx context.Context, id uuid.UUID) (*models.EsopGrant, error)
	Update(ctx context.Context, grant *models.EsopGrant) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByCompany returns the company's grants ordered by grant_date.
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.EsopGrant, error)
}

// SettingsStore defines the storage operations for company settings.
// Settings are one-to-one with a company.
type SettingsStore interface {
	// Get returns ErrNotFound if the company has no settings row yet.
	Get(ctx context.Context, companyID uuid.UUID) (*models.CompanySettings, error)

	// Upsert creates or replaces the company's settings.
	// Returns ErrInvalidReference if the company doesn't exist.
	Upsert(ctx context.Context, settings *models.CompanySettings) error

	// ListCompanyIDsWithoutSettings returns the companies that have no
	// settings row.
	ListCompanyIDsWithoutSettings(ctx context.Context) ([]uuid.UUID, error)
}

// ScenarioStore defines the storage operations for saved exit scenarios.
type ScenarioStore interface {
	Create(ctx context.Context, scenario *models.Scenario) error
	Get(ctx context.Context, id uuid.UUID) (*models.Scenario, error)

	// GetByShareCode returns ErrNotFound for unknown or malformed codes.
	GetByShareCode(ctx context.Context, code string) (*models.Scenario, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Scenario, error)
}

// CommentStore defines the storage operations for company comments.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByCompany returns comments oldest first.
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Comment, error)
}
