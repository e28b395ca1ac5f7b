package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/valuesim/internal/models"
)

// SettingsStore implements store.SettingsStore using PostgreSQL.
type SettingsStore struct {
	pool *pgxpool.Pool
}

// NewSettingsStore creates a new PostgreSQL-backed settings store.
func NewSettingsStore(pool *pgxpool.Pool) *SettingsStore {
	return &SettingsStore{pool: pool}
}

func (s *SettingsStore) Get(ctx context.Context, companyID uuid.UUID) (*models.CompanySettings, error) {
	query := `
		SELECT company_id, current_valuation, esop_pool_percentage, total_shares,
			exit_valuation, initial_valuation, legal_structure, created_at, updated_at
		FROM company_settings
		WHERE company_id = $1
	`

	var cs models.CompanySettings
	err := s.pool.QueryRow(ctx, query, companyID).Scan(
		&cs.CompanyID,
		&cs.CurrentValuation,
		&cs.EsopPoolPercentage,
		&cs.TotalShares,
		&cs.ExitValuation,
		&cs.InitialValuation,
		&cs.LegalStructure,
		&cs.CreatedAt,
		&cs.UpdatedAt,
	)
	if err != nil {
		return nil, mapPostgresError("get company settings", err)
	}

	return &cs, nil
}

func (s *SettingsStore) Upsert(ctx context.Context, settings *models.CompanySettings) error {
	query := `
		INSERT INTO company_settings (
			company_id, current_valuation, esop_pool_percentage, total_shares,
			exit_valuation, initial_valuation, legal_structure, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, now(), now()
		)
		ON CONFLICT (company_id) DO UPDATE SET
			current_valuation = EXCLUDED.current_valuation,
			esop_pool_percentage = EXCLUDED.esop_pool_percentage,
			total_shares = EXCLUDED.total_shares,
			exit_valuation = EXCLUDED.exit_valuation,
			initial_valuation = EXCLUDED.initial_valuation,
			legal_structure = EXCLUDED.legal_structure,
			updated_at = now()
		RETURNING created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		settings.CompanyID,
		settings.CurrentValuation,
		settings.EsopPoolPercentage,
		settings.TotalShares,
		settings.ExitValuation,
		settings.InitialValuation,
		settings.LegalStructure,
	).Scan(&settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		return mapPostgresError("upsert company settings", err)
	}

	log.Debug().
		Str("company_id", settings.CompanyID.String()).
		Msg("Upserted company settings")

	return nil
}

func (s *SettingsStore) ListCompanyIDsWithoutSettings(ctx context.Context) ([]uuid.UUID, error) {
	query := `
		SELECT c.id
		FROM companies c
		LEFT JOIN company_settings cs ON cs.company_id = c.id
		WHERE cs.company_id IS NULL
		ORDER BY c.id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, mapPostgresError("list companies without settings", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, mapPostgresError("list companies without settings", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}

	return ids, nil
}
