package repositories

import (
	"context"
	"time"

	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for stored exchange-rate records
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the latest stored rate for a currency pair.
	FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.StoredRate, error)

	// FindExchangeRateAsOf retrieves the stored rate effective at the given instant.
	FindExchangeRateAsOf(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.StoredRate, error)

	// ListExchangeRates retrieves all stored rates, newest first.
	ListExchangeRates(ctx context.Context) ([]domain.StoredRate, error)
}

// ExchangeRateWriter defines write operations for stored exchange-rate records
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate record.
	SaveExchangeRate(ctx context.Context, rate domain.StoredRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository
// interfaces. This is a facade for clients that need access to all operations.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
