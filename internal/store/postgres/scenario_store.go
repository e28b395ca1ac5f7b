package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wolfeidau/valuesim/internal/models"
)

// ScenarioStore implements store.ScenarioStore using PostgreSQL.
type ScenarioStore struct {
	pool *pgxpool.Pool
}

// NewScenarioStore creates a new PostgreSQL-backed scenario store.
func NewScenarioStore(pool *pgxpool.Pool) *ScenarioStore {
	return &ScenarioStore{pool: pool}
}

const scenarioColumns = `id, company_id, name, exit_valuation, notes, share_code, created_at`

func scanScenario(row pgx.Row) (*models.Scenario, error) {
	var sc models.Scenario
	err := row.Scan(
		&sc.ID,
		&sc.CompanyID,
		&sc.Name,
		&sc.ExitValuation,
		&sc.Notes,
		&sc.ShareCode,
		&sc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *ScenarioStore) Create(ctx context.Context, scenario *models.Scenario) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scenarios (`+scenarioColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		scenario.ID,
		scenario.CompanyID,
		scenario.Name,
		scenario.ExitValuation,
		scenario.Notes,
		scenario.ShareCode,
		scenario.CreatedAt,
	)
	if err != nil {
		return mapPostgresError("create scenario", err)
	}
	return nil
}

func (s *ScenarioStore) Get(ctx context.Context, id uuid.UUID) (*models.Scenario, error) {
	scenario, err := scanScenario(s.pool.QueryRow(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios WHERE id = $1`, id))
	if err != nil {
		return nil, mapPostgresError("get scenario", err)
	}
	return scenario, nil
}

func (s *ScenarioStore) GetByShareCode(ctx context.Context, code string) (*models.Scenario, error) {
	scenario, err := scanScenario(s.pool.QueryRow(ctx,
		`SELECT `+scenarioColumns+` FROM scenarios WHERE share_code = $1`, code))
	if err != nil {
		return nil, mapPostgresError("get scenario by share code", err)
	}
	return scenario, nil
}

func (s *ScenarioStore) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, s.pool, "delete scenario", `DELETE FROM scenarios WHERE id = $1`, id)
}

func (s *ScenarioStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Scenario, error) {
	return queryAll(ctx, s.pool, "list scenarios", scanScenario,
		`SELECT `+scenarioColumns+` FROM scenarios WHERE company_id = $1 ORDER BY created_at, id`, companyID)
}
