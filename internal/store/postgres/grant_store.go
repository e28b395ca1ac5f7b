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

// EsopGrantStore implements store.EsopGrantStore using PostgreSQL.
type EsopGrantStore struct {
	pool *pgxpool.Pool
}

// NewEsopGrantStore creates a new PostgreSQL-backed ESOP grant store.
func NewEsopGrantStore(pool *pgxpool.Pool) *EsopGrantStore {
	return &EsopGrantStore{pool: pool}
}

const grantColumns = `id, company_id, employee_name, employee_id, position, department,
	grant_date, shares_granted, vesting_schedule, vesting_months, cliff_period,
	vesting_frequency, exercise_price, status, notes, active, created_at, updated_at`

func scanGrant(row pgx.Row) (*models.EsopGrant, error) {
	var g models.EsopGrant
	err := row.Scan(
		&g.ID,
		&g.CompanyID,
		&g.EmployeeName,
		&g.EmployeeID,
		&g.Position,
		&g.Department,
		&g.GrantDate,
		&g.SharesGranted,
		&g.VestingSchedule,
		&g.VestingMonths,
		&g.CliffMonths,
		&g.VestingFrequency,
		&g.ExercisePrice,
		&g.Status,
		&g.Notes,
		&g.Active,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *EsopGrantStore) Create(ctx context.Context, grant *models.EsopGrant) error {
	query := `
		INSERT INTO esop_grants (` + grantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := s.pool.Exec(ctx, query,
		grant.ID,
		grant.CompanyID,
		grant.EmployeeName,
		grant.EmployeeID,
		grant.Position,
		grant.Department,
		grant.GrantDate,
		grant.SharesGranted,
		grant.VestingSchedule,
		grant.VestingMonths,
		grant.CliffMonths,
		grant.VestingFrequency,
		grant.ExercisePrice,
		grant.Status,
		grant.Notes,
		grant.Active,
		grant.CreatedAt,
		grant.UpdatedAt,
	)
	if err != nil {
		return mapPostgresError("create esop grant", err)
	}

	log.Debug().
		Str("grant_id", grant.ID.String()).
		Str("company_id", grant.CompanyID.String()).
		Int64("shares", grant.SharesGranted).
		Msg("Created ESOP grant")

	return nil
}

func (s *EsopGrantStore) Get(ctx context.Context, id uuid.UUID) (*models.EsopGrant, error) {
	grant, err := scanGrant(s.pool.QueryRow(ctx,
		`SELECT `+grantColumns+` FROM esop_grants WHERE id = $1`, id))
	if err != nil {
		return nil, mapPostgresError("get esop grant", err)
	}
	return grant, nil
}

func (s *EsopGrantStore) Update(ctx context.Context, grant *models.EsopGrant) error {
	grant.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE esop_grants SET
			employee_name = $2,
			employee_id = $3,
			position = $4,
			department = $5,
			grant_date = $6,
			shares_granted = $7,
			vesting_schedule = $8,
			vesting_months = $9,
			cliff_period = $10,
			vesting_frequency = $11,
			exercise_price = $12,
			status = $13,
			notes = $14,
			active = $15,
			updated_at = $16
		WHERE id = $1
		RETURNING company_id, created_at
	`

	err := s.pool.QueryRow(ctx, query,
		grant.ID,
		grant.EmployeeName,
		grant.EmployeeID,
		grant.Position,
		grant.Department,
		grant.GrantDate,
		grant.SharesGranted,
		grant.VestingSchedule,
		grant.VestingMonths,
		grant.CliffMonths,
		grant.VestingFrequency,
		grant.ExercisePrice,
		grant.Status,
		grant.Notes,
		grant.Active,
		grant.UpdatedAt,
	).Scan(&grant.CompanyID, &grant.CreatedAt)
	if err != nil {
		return mapPostgresError("update esop grant", err)
	}

	return nil
}

func (s *EsopGrantStore) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, s.pool, "delete esop grant", `DELETE FROM esop_grants WHERE id = $1`, id)
}

func (s *EsopGrantStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.EsopGrant, error) {
	return queryAll(ctx, s.pool, "list esop grants", scanGrant,
		`SELECT `+grantColumns+` FROM esop_grants WHERE company_id = $1 ORDER BY grant_date, id`, companyID)
}
