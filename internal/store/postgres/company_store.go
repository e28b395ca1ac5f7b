package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
)

// CompanyStore implements store.CompanyStore using PostgreSQL.
type CompanyStore struct {
	pool *pgxpool.Pool
}

// NewCompanyStore creates a new PostgreSQL-backed company store.
// It shares the connection pool with other stores.
func NewCompanyStore(pool *pgxpool.Pool) *CompanyStore {
	return &CompanyStore{
		pool: pool,
	}
}

const companyColumns = `id, name, industry, description, created_at, updated_at`

func scanCompany(row pgx.Row) (*models.Company, error) {
	var c models.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Industry,
		&c.Description,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new company in the database.
func (s *CompanyStore) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (
			id, name, industry, description, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := s.pool.Exec(ctx, query,
		company.ID,
		company.Name,
		company.Industry,
		company.Description,
		company.CreatedAt,
		company.UpdatedAt,
	)
	if err != nil {
		return mapPostgresError("create company", err)
	}

	log.Debug().
		Str("company_id", company.ID.String()).
		Str("name", company.Name).
		Msg("Created company")

	return nil
}

// Get retrieves a company by ID.
func (s *CompanyStore) Get(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	company, err := scanCompany(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapPostgresError("get company", err)
	}

	return company, nil
}

// Update updates an existing company.
func (s *CompanyStore) Update(ctx context.Context, company *models.Company) error {
	company.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE companies SET
			name = $2,
			industry = $3,
			description = $4,
			updated_at = $5
		WHERE id = $1
		RETURNING created_at
	`

	err := s.pool.QueryRow(ctx, query,
		company.ID,
		company.Name,
		company.Industry,
		company.Description,
		company.UpdatedAt,
	).Scan(&company.CreatedAt)
	if err != nil {
		return mapPostgresError("update company", err)
	}

	log.Debug().
		Str("company_id", company.ID.String()).
		Msg("Updated company")

	return nil
}

// Delete deletes a company by ID.
// Founders, rounds, grants, settings, scenarios and comments are removed via
// ON DELETE CASCADE.
func (s *CompanyStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return mapPostgresError("delete company", err)
	}

	if result.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	log.Info().
		Str("company_id", id.String()).
		Msg("Deleted company (and cascade-deleted all children)")

	return nil
}

// List returns all companies, oldest first.
func (s *CompanyStore) List(ctx context.Context) ([]*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, mapPostgresError("list companies", err)
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}

	return companies, nil
}
