package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	portsrepo "github.com/fluxapps/fx_conversion_app/internal/core/ports/repositories"
	portssvc "github.com/fluxapps/fx_conversion_app/internal/core/ports/services"
	"github.com/fluxapps/fx_conversion_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRateService provides business logic for stored exchange rates.
type ExchangeRateService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencySvcFacade
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService portssvc.CurrencySvcFacade) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// GetCurrencyService exposes the currency service dependency.
func (s *ExchangeRateService) GetCurrencyService() portssvc.CurrencySvcFacade {
	return s.currencyService
}

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.StoredRate, error) {
	// Input validation (basic format) is handled by DTO binding tags.
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	// Check if currencies exist
	if _, err := s.currencyService.GetCurrencyByCode(ctx, req.FromCurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'from' currency code '%s' not found", apperrors.ErrValidation, req.FromCurrencyCode)
		}
		return nil, fmt.Errorf("failed to validate 'from' currency '%s': %w", req.FromCurrencyCode, err)
	}
	if _, err := s.currencyService.GetCurrencyByCode(ctx, req.ToCurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'to' currency code '%s' not found", apperrors.ErrValidation, req.ToCurrencyCode)
		}
		return nil, fmt.Errorf("failed to validate 'to' currency '%s': %w", req.ToCurrencyCode, err)
	}

	now := time.Now()
	rate := domain.StoredRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: exchange rate for %s->%s effective %s already exists",
				apperrors.ErrValidation, req.FromCurrencyCode, req.ToCurrencyCode, req.DateEffective.Format(time.DateOnly))
		}
		s.LogError(ctx, err, "failed to save exchange rate",
			"from", req.FromCurrencyCode, "to", req.ToCurrencyCode)
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	return &rate, nil
}

// GetExchangeRate retrieves the latest stored rate for a given currency pair.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.StoredRate, error) {
	// Basic validation for codes (length, case)
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if !domain.IsCurrencyCode(fromCode) || !domain.IsCurrencyCode(toCode) {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		// Repository layer handles ErrNotFound mapping
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// ListExchangeRates retrieves all stored rates.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context) ([]domain.StoredRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.StoredRate{}, nil
	}
	return rates, nil
}
