package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wolfeidau/valuesim/internal/models"
)

// CommentStore implements store.CommentStore using PostgreSQL.
type CommentStore struct {
	pool *pgxpool.Pool
}

// NewCommentStore creates a new PostgreSQL-backed comment store.
func NewCommentStore(pool *pgxpool.Pool) *CommentStore {
	return &CommentStore{pool: pool}
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	if err := row.Scan(&c.ID, &c.CompanyID, &c.Author, &c.Body, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO comments (id, company_id, author, body, created_at) VALUES ($1, $2, $3, $4, $5)`,
		comment.ID, comment.CompanyID, comment.Author, comment.Body, comment.CreatedAt)
	if err != nil {
		return mapPostgresError("create comment", err)
	}
	return nil
}

func (s *CommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, s.pool, "delete comment", `DELETE FROM comments WHERE id = $1`, id)
}

func (s *CommentStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Comment, error) {
	return queryAll(ctx, s.pool, "list comments", scanComment,
		`SELECT id, company_id, author, body, created_at FROM comments WHERE company_id = $1 ORDER BY created_at, id`, companyID)
}
