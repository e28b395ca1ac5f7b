package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
)

// CommentStore implements store.CommentStore using in-memory storage.
type CommentStore struct {
	db *DB
}

func (s *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if !s.db.companyExists(comment.CompanyID) {
		return store.ErrInvalidReference
	}
	if _, exists := s.db.comments[comment.ID]; exists {
		return store.ErrAlreadyExists
	}

	s.db.comments[comment.ID] = cloneOf(comment)
	return nil
}

func (s *CommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.comments[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.db.comments, id)
	return nil
}

func (s *CommentStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Comment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	return collect(s.db.comments,
		func(c *models.Comment) bool { return c.CompanyID == companyID },
		cloneOf[models.Comment],
		func(a, b *models.Comment) bool { return olderFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) }), nil
}
