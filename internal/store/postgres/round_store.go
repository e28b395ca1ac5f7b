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

// FundingRoundStore implements store.FundingRoundStore using PostgreSQL.
type FundingRoundStore struct {
	pool *pgxpool.Pool
}

// NewFundingRoundStore creates a new PostgreSQL-backed funding round store.
func NewFundingRoundStore(pool *pgxpool.Pool) *FundingRoundStore {
	return &FundingRoundStore{pool: pool}
}

const roundColumns = `id, company_id, name, round_type, capital_raised, valuation,
	shares_issued, price_per_share, valuation_cap, discount_rate, conversion_trigger,
	investors, round_date, notes, active, order_number, created_at, updated_at`

func scanRound(row pgx.Row) (*models.FundingRound, error) {
	var r models.FundingRound
	err := row.Scan(
		&r.ID,
		&r.CompanyID,
		&r.Name,
		&r.RoundType,
		&r.CapitalRaised,
		&r.Valuation,
		&r.SharesIssued,
		&r.SharePrice,
		&r.ValuationCap,
		&r.DiscountRate,
		&r.ConversionTrigger,
		&r.Investors,
		&r.RoundDate,
		&r.Notes,
		&r.Active,
		&r.OrderNumber,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if r.Investors == nil {
		r.Investors = []string{}
	}
	return &r, nil
}

func (s *FundingRoundStore) Create(ctx context.Context, round *models.FundingRound) error {
	if round.Investors == nil {
		round.Investors = []string{}
	}

	query := `
		INSERT INTO funding_rounds (` + roundColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := s.pool.Exec(ctx, query,
		round.ID,
		round.CompanyID,
		round.Name,
		round.RoundType,
		round.CapitalRaised,
		round.Valuation,
		round.SharesIssued,
		round.SharePrice,
		round.ValuationCap,
		round.DiscountRate,
		round.ConversionTrigger,
		round.Investors,
		round.RoundDate,
		round.Notes,
		round.Active,
		round.OrderNumber,
		round.CreatedAt,
		round.UpdatedAt,
	)
	if err != nil {
		return mapPostgresError("create funding round", err)
	}

	log.Debug().
		Str("round_id", round.ID.String()).
		Str("company_id", round.CompanyID.String()).
		Str("round_type", round.RoundType).
		Msg("Created funding round")

	return nil
}

func (s *FundingRoundStore) Get(ctx context.Context, id uuid.UUID) (*models.FundingRound, error) {
	round, err := scanRound(s.pool.QueryRow(ctx,
		`SELECT `+roundColumns+` FROM funding_rounds WHERE id = $1`, id))
	if err != nil {
		return nil, mapPostgresError("get funding round", err)
	}
	return round, nil
}

func (s *FundingRoundStore) Update(ctx context.Context, round *models.FundingRound) error {
	round.UpdatedAt = time.Now().UTC()
	if round.Investors == nil {
		round.Investors = []string{}
	}

	query := `
		UPDATE funding_rounds SET
			name = $2,
			round_type = $3,
			capital_raised = $4,
			valuation = $5,
			shares_issued = $6,
			price_per_share = $7,
			valuation_cap = $8,
			discount_rate = $9,
			conversion_trigger = $10,
			investors = $11,
			round_date = $12,
			notes = $13,
			active = $14,
			order_number = $15,
			updated_at = $16
		WHERE id = $1
		RETURNING company_id, created_at
	`

	err := s.pool.QueryRow(ctx, query,
		round.ID,
		round.Name,
		round.RoundType,
		round.CapitalRaised,
		round.Valuation,
		round.SharesIssued,
		round.SharePrice,
		round.ValuationCap,
		round.DiscountRate,
		round.ConversionTrigger,
		round.Investors,
		round.RoundDate,
		round.Notes,
		round.Active,
		round.OrderNumber,
		round.UpdatedAt,
	).Scan(&round.CompanyID, &round.CreatedAt)
	if err != nil {
		return mapPostgresError("update funding round", err)
	}

	return nil
}

func (s *FundingRoundStore) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, s.pool, "delete funding round", `DELETE FROM funding_rounds WHERE id = $1`, id)
}

func (s *FundingRoundStore) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.FundingRound, error) {
	return queryAll(ctx, s.pool, "list funding rounds", scanRound,
		`SELECT `+roundColumns+` FROM funding_rounds
		WHERE company_id = $1
		ORDER BY order_number, round_date, id`, companyID)
}
