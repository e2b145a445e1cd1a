package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	portsprov "github.com/fluxapps/fx_conversion_app/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

// FixedRateProviderName is the default name for in-memory rate providers.
const FixedRateProviderName = "fixed"

// FixedRateProvider is an in-memory rate table. It is primarily useful for
// tests and for deployments that pin a handful of rates without a database.
// Safe for concurrent use.
type FixedRateProvider struct {
	name string

	mu    sync.RWMutex
	rates map[string]decimal.Decimal
}

// NewFixedRateProvider creates an empty in-memory provider. An empty name
// falls back to FixedRateProviderName.
func NewFixedRateProvider(name string) *FixedRateProvider {
	if name == "" {
		name = FixedRateProviderName
	}
	return &FixedRateProvider{
		name:  name,
		rates: make(map[string]decimal.Decimal),
	}
}

var _ portsprov.RateProvider = (*FixedRateProvider)(nil)

// ProviderName identifies this data source in conversion contexts.
func (p *FixedRateProvider) ProviderName() string {
	return p.name
}

// SetRate pins the factor converting baseCurrency into termCurrency,
// replacing any previous entry for the pair.
func (p *FixedRateProvider) SetRate(baseCurrency, termCurrency string, factor decimal.Decimal) error {
	if !domain.IsCurrencyCode(baseCurrency) || !domain.IsCurrencyCode(termCurrency) {
		return fmt.Errorf("%w: invalid currency pair %q->%q", apperrors.ErrValidation, baseCurrency, termCurrency)
	}
	if factor.IsNegative() {
		return fmt.Errorf("%w: conversion factor must not be negative", apperrors.ErrValidation)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rates[pairKey(baseCurrency, termCurrency)] = factor
	return nil
}

// RemoveRate deletes the pinned rate for the pair, if any.
func (p *FixedRateProvider) RemoveRate(baseCurrency, termCurrency string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.rates, pairKey(baseCurrency, termCurrency))
}

// FetchRate resolves a pinned rate for the pair, or (nil, nil) when none is
// pinned. The returned rate carries this provider's name and the requested
// rate type.
func (p *FixedRateProvider) FetchRate(_ context.Context, baseCurrency, termCurrency string, cc domain.ConversionContext) (*domain.ExchangeRate, error) {
	p.mu.RLock()
	factor, ok := p.rates[pairKey(baseCurrency, termCurrency)]
	p.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	rateType := cc.RateType()
	if !rateType.IsValid() {
		rateType = domain.RateTypeAny
	}
	rate, err := domain.NewExchangeRateBuilder(p.name, rateType).
		SetBase(baseCurrency).
		SetTerm(termCurrency).
		SetFactor(factor).
		Build()
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func pairKey(base, term string) string {
	return base + "/" + term
}
