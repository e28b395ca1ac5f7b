package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
)

// FundingRoundStore implements store.FundingRoundStore using in-memory storage.
type FundingRoundStore struct {
	db *DB
}

func cloneRound(r *models.FundingRound) *models.FundingRound {
	c := *r
	c.Investors = append([]string{}, r.Investors...)
	return &c
}

func (s *FundingRoundStore) Create(ctx context.Context, round *models.FundingRound) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if !s.db.companyExists(round.CompanyID) {
		return store.ErrInvalidReference
	}
	if _, exists := s.db.rounds[round.ID]; exists {
		return store.ErrAlreadyExists
	}

	s.db.rounds[round.ID] = cloneRound(round)
	return nil
}

func (s *FundingRoundStore) Get(ctx context.Context, id uuid.UUID) (*models.FundingRound, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	round, exists := s.db.rounds[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	return cloneRound(round), nil
}

func (s *FundingRoundStore) Update(ctx context.Context, round *models.FundingRound) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, exists := s.db.rounds[round.ID]
	if !exists {
		return store.ErrNotFound
	}

	round.CompanyID = existing.CompanyID
	round.CreatedAt = existing.CreatedAt
	round.UpdatedAt = time.Now().UTC()
	s.db.rounds[round.ID] = cloneRound(round)
	return nil
}

func (s *FundingRoundStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.rounds[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.db.rounds, id)
	return nil
}

func (s *FundingRoundStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.FundingRound, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return collect(s.db.rounds,
		func(r *models.FundingRound) bool { return r.CompanyID == companyID },
		cloneRound,
		func(a, b *models.FundingRound) bool {
			if a.OrderNumber != b.OrderNumber {
				return a.OrderNumber < b.OrderNumber
			}
			return olderFirst(a.RoundDate, b.RoundDate, a.ID, b.ID)
		}), nil
}
