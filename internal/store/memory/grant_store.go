package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
)

// EsopGrantStore implements store.EsopGrantStore using in-memory storage.
type EsopGrantStore struct {
	db *DB
}

func (s *EsopGrantStore) Create(ctx context.Context, grant *models.EsopGrant) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if !s.db.companyExists(grant.CompanyID) {
		return store.ErrInvalidReference
	}
	if _, exists := s.db.grants[grant.ID]; exists {
		return store.ErrAlreadyExists
	}

	s.db.grants[grant.ID] = cloneOf(grant)
	return nil
}

func (s *EsopGrantStore) Get(ctx context.Context, id uuid.UUID) (*models.EsopGrant, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	grant, exists := s.db.grants[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	return cloneOf(grant), nil
}

func (s *EsopGrantStore) Update(ctx context.Context, grant *models.EsopGrant) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, exists := s.db.grants[grant.ID]
	if !exists {
		return store.ErrNotFound
	}

	grant.CompanyID = existing.CompanyID
	grant.CreatedAt = existing.CreatedAt
	grant.UpdatedAt = time.Now().UTC()
	s.db.grants[grant.ID] = cloneOf(grant)
	return nil
}

func (s *EsopGrantStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.grants[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.db.grants, id)
	return nil
}

func (s *EsopGrantStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.EsopGrant, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return collect(s.db.grants,
		func(g *models.EsopGrant) bool { return g.CompanyID == companyID },
		cloneOf[models.EsopGrant],
		func(a, b *models.EsopGrant) bool { return olderFirst(a.GrantDate, b.GrantDate, a.ID, b.ID) }), nil
}
