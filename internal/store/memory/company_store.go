package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
)

// CompanyStore implements store.CompanyStore using in-memory storage.
type CompanyStore struct {
	db *DB
}

// NewCompanyStore creates a company store over its own database.
func NewCompanyStore() *CompanyStore {
	return &CompanyStore{db: NewDB()}
}

// Create creates a new company in memory.
func (s *CompanyStore) Create(ctx context.Context, company *models.Company) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.db.companyExists(company.ID) {
		return store.ErrAlreadyExists
	}

	// Clone to avoid external modifications
	s.db.companies[company.ID] = cloneOf(company)

	return nil
}

// Get retrieves a company by ID.
func (s *CompanyStore) Get(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	company, exists := s.db.companies[id]
	if !exists {
		return nil, store.ErrNotFound
	}

	return cloneOf(company), nil
}

// Update updates an existing company.
func (s *CompanyStore) Update(ctx context.Context, company *models.Company) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, exists := s.db.companies[company.ID]
	if !exists {
		return store.ErrNotFound
	}

	company.CreatedAt = existing.CreatedAt
	company.UpdatedAt = time.Now().UTC()
	s.db.companies[company.ID] = cloneOf(company)

	return nil
}

// Delete deletes a company and cascades to its children.
func (s *CompanyStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if !s.db.companyExists(id) {
		return store.ErrNotFound
	}

	s.db.deleteChildren(id)
	delete(s.db.companies, id)

	return nil
}

// List returns all companies, oldest first.
func (s *CompanyStore) List(ctx context.Context) ([]*models.Company, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return collect(s.db.companies,
		func(*models.Company) bool { return true },
		cloneOf[models.Company],
		func(a, b *models.Company) bool { return olderFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) }), nil
}
