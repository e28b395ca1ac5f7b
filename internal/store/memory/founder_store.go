package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
)

// FounderStore implements store.FounderStore using in-memory storage.
type FounderStore struct {
	db *DB
}

func (s *FounderStore) Create(ctx context.Context, founder *models.Founder) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if !s.db.companyExists(founder.CompanyID) {
		return store.ErrInvalidReference
	}
	if _, exists := s.db.founders[founder.ID]; exists {
		return store.ErrAlreadyExists
	}

	s.db.founders[founder.ID] = cloneOf(founder)
	return nil
}

func (s *FounderStore) Get(ctx context.Context, id uuid.UUID) (*models.Founder, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	founder, exists := s.db.founders[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	return cloneOf(founder), nil
}

func (s *FounderStore) Update(ctx context.Context, founder *models.Founder) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, exists := s.db.founders[founder.ID]
	if !exists {
		return store.ErrNotFound
	}

	founder.CompanyID = existing.CompanyID
	founder.CreatedAt = existing.CreatedAt
	founder.UpdatedAt = time.Now().UTC()
	s.db.founders[founder.ID] = cloneOf(founder)
	return nil
}

func (s *FounderStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.founders[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.db.founders, id)
	return nil
}

func (s *FounderStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Founder, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return collect(s.db.founders,
		func(f *models.Founder) bool { return f.CompanyID == companyID },
		cloneOf[models.Founder],
		func(a, b *models.Founder) bool { return olderFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) }), nil
}
