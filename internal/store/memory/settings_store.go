package memory

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
)

// SettingsStore implements store.SettingsStore using in-memory storage.
type SettingsStore struct {
	db *DB
}

func (s *SettingsStore) Get(ctx context.Context, companyID uuid.UUID) (*models.CompanySettings, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	settings, exists := s.db.settings[companyID]
	if !exists {
		return nil, store.ErrNotFound
	}
	return cloneOf(settings), nil
}

func (s *SettingsStore) Upsert(ctx context.Context, settings *models.CompanySettings) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if !s.db.companyExists(settings.CompanyID) {
		return store.ErrInvalidReference
	}

	now := time.Now().UTC()
	if existing, exists := s.db.settings[settings.CompanyID]; exists {
		settings.CreatedAt = existing.CreatedAt
	} else if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	s.db.settings[settings.CompanyID] = cloneOf(settings)
	return nil
}

func (s *SettingsStore) ListCompanyIDsWithoutSettings(ctx context.Context) ([]uuid.UUID, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	ids := []uuid.UUID{}
	for id := range s.db.companies {
		if _, ok := s.db.settings[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	return ids, nil
}
