package providers

import (
	"context"

	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
)

// RateProvider supplies exchange rates on demand, keyed by currency pair and
// conversion context. Implementations may hit a database or an in-memory
// table; blocking is confined to FetchRate.
//
// FetchRate returns (nil, nil) when the provider was consulted successfully
// but has no rate for the pair — that is a valid, non-exceptional outcome. A
// non-nil error is reserved for lookups that themselves failed.
type RateProvider interface {
	// ProviderName identifies this data source in conversion contexts.
	ProviderName() string

	// FetchRate resolves the rate converting base into term under cc.
	FetchRate(ctx context.Context, baseCurrency, termCurrency string, cc domain.ConversionContext) (*domain.ExchangeRate, error)
}
