package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	portsprov "github.com/fluxapps/fx_conversion_app/internal/core/ports/providers"
	portsrepo "github.com/fluxapps/fx_conversion_app/internal/core/ports/repositories"
)

// StoredRateProvider serves exchange rates from the application's own rate
// store. When the context carries a validity start, the rate effective at that
// instant is used; otherwise the latest stored rate wins.
type StoredRateProvider struct {
	rateRepo portsrepo.ExchangeRateReader
}

// NewStoredRateProvider creates a provider backed by the given rate reader.
func NewStoredRateProvider(rateRepo portsrepo.ExchangeRateReader) *StoredRateProvider {
	return &StoredRateProvider{rateRepo: rateRepo}
}

var _ portsprov.RateProvider = (*StoredRateProvider)(nil)

// ProviderName identifies this data source in conversion contexts.
func (p *StoredRateProvider) ProviderName() string {
	return domain.StoredProviderName
}

// FetchRate resolves the stored rate converting baseCurrency into
// termCurrency. A missing record is reported as (nil, nil), not as an error.
func (p *StoredRateProvider) FetchRate(ctx context.Context, baseCurrency, termCurrency string, cc domain.ConversionContext) (*domain.ExchangeRate, error) {
	var (
		stored *domain.StoredRate
		err    error
	)
	if asOf := cc.ValidFrom(); asOf != nil {
		stored, err = p.rateRepo.FindExchangeRateAsOf(ctx, baseCurrency, termCurrency, *asOf)
	} else {
		stored, err = p.rateRepo.FindExchangeRate(ctx, baseCurrency, termCurrency)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("stored rate lookup %s->%s: %w", baseCurrency, termCurrency, err)
	}
	if stored == nil {
		return nil, nil
	}

	rateType := cc.RateType()
	if !rateType.IsValid() {
		rateType = domain.RateTypeAny
	}
	rate, err := stored.ToExchangeRate(rateType)
	if err != nil {
		return nil, fmt.Errorf("stored rate %s is not convertible: %w", stored.ExchangeRateID, err)
	}
	return &rate, nil
}
