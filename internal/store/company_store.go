package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/models"
)

// CompanyStore defines the storage operations for companies.
// Companies are the root of every cap table.
type CompanyStore interface {
	// Create creates a new company.
	// Returns ErrAlreadyExists if a company with the same ID already exists.
	Create(ctx context.Context, company *models.Company) error

	// Get retrieves a company by ID.
	// Returns ErrNotFound if the company doesn't exist.
	Get(ctx context.Context, id uuid.UUID) (*models.Company, error)

	// Update updates an existing company.
	// Returns ErrNotFound if the company doesn't exist.
	Update(ctx context.Context, company *models.Company) error

	// Delete deletes a company and every record that references it.
	// Returns ErrNotFound if the company doesn't exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all companies, oldest first.
	List(ctx context.Context) ([]*models.Company, error)
}
