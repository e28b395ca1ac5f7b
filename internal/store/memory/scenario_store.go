package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
)

// ScenarioStore implements store.ScenarioStore using in-memory storage.
type ScenarioStore struct {
	db *DB
}

func (s *ScenarioStore) Create(ctx context.Context, scenario *models.Scenario) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if !s.db.companyExists(scenario.CompanyID) {
		return store.ErrInvalidReference
	}
	if _, exists := s.db.scenarios[scenario.ID]; exists {
		return store.ErrAlreadyExists
	}

	s.db.scenarios[scenario.ID] = cloneOf(scenario)
	return nil
}

func (s *ScenarioStore) Get(ctx context.Context, id uuid.UUID) (*models.Scenario, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	scenario, exists := s.db.scenarios[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	return cloneOf(scenario), nil
}

func (s *ScenarioStore) GetByShareCode(ctx context.Context, code string) (*models.Scenario, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, scenario := range s.db.scenarios {
		if scenario.ShareCode == code {
			return cloneOf(scenario), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *ScenarioStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.scenarios[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.db.scenarios, id)
	return nil
}

func (s *ScenarioStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Scenario, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return collect(s.db.scenarios,
		func(sc *models.Scenario) bool { return sc.CompanyID == companyID },
		cloneOf[models.Scenario],
		func(a, b *models.Scenario) bool { return olderFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) }), nil
}
