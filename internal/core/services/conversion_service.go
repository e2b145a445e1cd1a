package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	portsprov "github.com/fluxapps/fx_conversion_app/internal/core/ports/providers"
	portssvc "github.com/fluxapps/fx_conversion_app/internal/core/ports/services"
	"github.com/fluxapps/fx_conversion_app/internal/dto"
)

// ConversionService converts monetary amounts between registered currencies.
// Rates come from the configured provider; when no direct rate exists and a
// pivot currency is configured, the service derives a rate through the pivot.
type ConversionService struct {
	BaseService
	currencyService portssvc.CurrencySvcFacade
	provider        portsprov.RateProvider
	pivotCurrency   string
}

// NewConversionService creates a ConversionService. pivotCurrency may be
// empty to disable triangulation.
func NewConversionService(currencyService portssvc.CurrencySvcFacade, provider portsprov.RateProvider, pivotCurrency string) *ConversionService {
	return &ConversionService{
		currencyService: currencyService,
		provider:        provider,
		pivotCurrency:   pivotCurrency,
	}
}

var _ portssvc.ConversionSvcFacade = (*ConversionService)(nil)

// Convert applies the best available exchange rate to the requested amount.
// Both currencies must be registered. The error wraps apperrors.ErrValidation
// for bad input and is a *apperrors.ConversionError when no usable rate
// exists for the pair.
func (s *ConversionService) Convert(ctx context.Context, req dto.ConvertRequest) (*domain.ConversionResult, error) {
	fromCurrency, err := s.lookupCurrency(ctx, req.FromCurrencyCode)
	if err != nil {
		return nil, err
	}
	toCurrency, err := s.lookupCurrency(ctx, req.ToCurrencyCode)
	if err != nil {
		return nil, err
	}

	amount, err := domain.NewMoneyWithExponent(req.Amount, fromCurrency.CurrencyCode, fromCurrency.Exponent)
	if err != nil {
		return nil, err
	}

	rateType := domain.RateType(req.RateType)
	if req.RateType == "" {
		rateType = domain.RateTypeAny
	}
	if !rateType.IsValid() {
		return nil, fmt.Errorf("%w: unknown rate type %q", apperrors.ErrValidation, req.RateType)
	}

	cc := domain.NewConversionContext(s.provider.ProviderName(), rateType)
	if req.AsOf != nil {
		cc = cc.WithValidFrom(*req.AsOf)
	}

	conv, err := s.newConversion(req.ToCurrencyCode, cc)
	if err != nil {
		return nil, err
	}

	result, err := domain.Convert(ctx, conv, amount)
	if err != nil {
		var convErr *apperrors.ConversionError
		if errors.As(err, &convErr) {
			s.LogInfo(ctx, "conversion not possible",
				"from", req.FromCurrencyCode, "to", req.ToCurrencyCode)
		}
		return nil, err
	}

	// The converted amount keeps the source currency's precision
	// configuration; retag it with the target currency's exponent.
	converted, err := domain.NewMoneyWithExponent(result.ConvertedAmount.Value(), toCurrency.CurrencyCode, toCurrency.Exponent)
	if err != nil {
		return nil, err
	}
	result.ConvertedAmount = converted

	return result, nil
}

// newConversion picks the rate-resolution strategy: triangulation through the
// pivot when one is configured, direct quotations only otherwise.
func (s *ConversionService) newConversion(termCurrency string, cc domain.ConversionContext) (domain.CurrencyConversion, error) {
	if s.pivotCurrency != "" {
		return NewTriangulatingConversion(s.provider, termCurrency, s.pivotCurrency, cc)
	}
	return NewProviderConversion(s.provider, termCurrency, cc)
}

func (s *ConversionService) lookupCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencyService.GetCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
		}
		return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
	}
	return currency, nil
}
