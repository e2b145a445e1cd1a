package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	portsrepo "github.com/fluxapps/fx_conversion_app/internal/core/ports/repositories"
	"github.com/fluxapps/fx_conversion_app/internal/models"
	"github.com/fluxapps/fx_conversion_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// PgxExchangeRateRepository implements the exchange-rate repository ports
// using pgxpool.
type PgxExchangeRateRepository struct {
	db *pgxpool.Pool
}

// NewExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewExchangeRateRepository(db *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{db: db}
}

// SaveExchangeRate inserts a new exchange rate into the database.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.StoredRate) error {
	model := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		model.ExchangeRateID, model.FromCurrencyCode, model.ToCurrencyCode, model.Rate, model.DateEffective,
		model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: exchange rate %s->%s effective %s",
				apperrors.ErrDuplicate, rate.FromCurrencyCode, rate.ToCurrencyCode, rate.DateEffective.Format(time.DateOnly))
		}
		return fmt.Errorf("error inserting exchange rate: %w", err)
	}
	return nil
}

const exchangeRateColumns = `
	exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective,
	created_at, created_by, last_updated_at, last_updated_by
`

// FindExchangeRate retrieves the latest stored rate for a currency pair.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.StoredRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY date_effective DESC
		LIMIT 1
	`
	return r.queryOne(ctx, query, fromCode, toCode)
}

// FindExchangeRateAsOf retrieves the stored rate effective at the given
// instant: the newest rate whose effective date does not exceed asOf.
func (r *PgxExchangeRateRepository) FindExchangeRateAsOf(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.StoredRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND date_effective <= $3
		ORDER BY date_effective DESC
		LIMIT 1
	`
	return r.queryOne(ctx, query, fromCode, toCode, asOf)
}

// ListExchangeRates retrieves all stored rates, newest first.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.StoredRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		ORDER BY date_effective DESC, from_currency_code, to_currency_code
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, scanExchangeRate)
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	return mapping.ToDomainExchangeRateSlice(rates), nil
}

func (r *PgxExchangeRateRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.StoredRate, error) {
	var model models.ExchangeRate
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&model.ExchangeRateID, &model.FromCurrencyCode, &model.ToCurrencyCode, &model.Rate, &model.DateEffective,
		&model.CreatedAt, &model.CreatedBy, &model.LastUpdatedAt, &model.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate: %w", err)
	}
	rate := mapping.ToDomainExchangeRate(model)
	return &rate, nil
}

func scanExchangeRate(row pgx.CollectableRow) (models.ExchangeRate, error) {
	var model models.ExchangeRate
	err := row.Scan(
		&model.ExchangeRateID, &model.FromCurrencyCode, &model.ToCurrencyCode, &model.Rate, &model.DateEffective,
		&model.CreatedAt, &model.CreatedBy, &model.LastUpdatedAt, &model.LastUpdatedBy,
	)
	return model, err
}
