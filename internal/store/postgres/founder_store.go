package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/valuesim/internal/models"
)

// FounderStore implements store.FounderStore using PostgreSQL.
type FounderStore struct {
	pool *pgxpool.Pool
}

// NewFounderStore creates a new PostgreSQL-backed founder store.
func NewFounderStore(pool *pgxpool.Pool) *FounderStore {
	return &FounderStore{pool: pool}
}

const founderColumns = `id, company_id, name, role, equity_percentage, shares,
	initial_ownership, active, created_at, updated_at`

func scanFounder(row pgx.Row) (*models.Founder, error) {
	var f models.Founder
	err := row.Scan(
		&f.ID,
		&f.CompanyID,
		&f.Name,
		&f.Role,
		&f.EquityPercentage,
		&f.Shares,
		&f.InitialOwnership,
		&f.Active,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FounderStore) Create(ctx context.Context, founder *models.Founder) error {
	query := `
		INSERT INTO founders (` + founderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		founder.ID,
		founder.CompanyID,
		founder.Name,
		founder.Role,
		founder.EquityPercentage,
		founder.Shares,
		founder.InitialOwnership,
		founder.Active,
		founder.CreatedAt,
		founder.UpdatedAt,
	)
	if err != nil {
		return mapPostgresError("create founder", err)
	}

	log.Debug().
		Str("founder_id", founder.ID.String()).
		Str("company_id", founder.CompanyID.String()).
		Msg("Created founder")

	return nil
}

func (s *FounderStore) Get(ctx context.Context, id uuid.UUID) (*models.Founder, error) {
	founder, err := scanFounder(s.pool.QueryRow(ctx,
		`SELECT `+founderColumns+` FROM founders WHERE id = $1`, id))
	if err != nil {
		return nil, mapPostgresError("get founder", err)
	}
	return founder, nil
}

func (s *FounderStore) Update(ctx context.Context, founder *models.Founder) error {
	founder.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE founders SET
			name = $2,
			role = $3,
			equity_percentage = $4,
			shares = $5,
			initial_ownership = $6,
			active = $7,
			updated_at = $8
		WHERE id = $1
		RETURNING company_id, created_at
	`

	err := s.pool.QueryRow(ctx, query,
		founder.ID,
		founder.Name,
		founder.Role,
		founder.EquityPercentage,
		founder.Shares,
		founder.InitialOwnership,
		founder.Active,
		founder.UpdatedAt,
	).Scan(&founder.CompanyID, &founder.CreatedAt)
	if err != nil {
		return mapPostgresError("update founder", err)
	}

	return nil
}

func (s *FounderStore) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, s.pool, "delete founder", `DELETE FROM founders WHERE id = $1`, id)
}

func (s *FounderStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Founder, error) {
	return queryAll(ctx, s.pool, "list founders", scanFounder,
		`SELECT `+founderColumns+` FROM founders WHERE company_id = $1 ORDER BY created_at, id`, companyID)
}
