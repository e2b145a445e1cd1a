package services

import (
	"context"
	"fmt"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	portsprov "github.com/fluxapps/fx_conversion_app/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

// ProviderConversion converts amounts into one term currency using direct
// quotations from a single rate provider. Amounts already in the term
// currency resolve to an identity rate without consulting the provider.
type ProviderConversion struct {
	provider     portsprov.RateProvider
	termCurrency string
	cc           domain.ConversionContext
}

// NewProviderConversion creates a conversion into termCurrency under the
// given context.
func NewProviderConversion(provider portsprov.RateProvider, termCurrency string, cc domain.ConversionContext) (*ProviderConversion, error) {
	if !domain.IsCurrencyCode(termCurrency) {
		return nil, fmt.Errorf("%w: invalid term currency %q", apperrors.ErrValidation, termCurrency)
	}
	if cc.IsZero() {
		return nil, fmt.Errorf("%w: conversion context must not be empty", apperrors.ErrValidation)
	}
	return &ProviderConversion{
		provider:     provider,
		termCurrency: termCurrency,
		cc:           cc,
	}, nil
}

var _ domain.CurrencyConversion = (*ProviderConversion)(nil)

// Currency returns the fixed term currency this conversion converts into.
func (c *ProviderConversion) Currency() string {
	return c.termCurrency
}

// ConversionContext returns the fixed context this conversion operates under.
func (c *ProviderConversion) ConversionContext() domain.ConversionContext {
	return c.cc
}

// ExchangeRate resolves a direct rate from the provider, or an identity rate
// when the amount is already in the term currency.
func (c *ProviderConversion) ExchangeRate(ctx context.Context, amount domain.Money) (*domain.ExchangeRate, error) {
	base := amount.CurrencyCode()
	if base == c.termCurrency {
		return identityRate(base, c.cc)
	}
	return c.provider.FetchRate(ctx, base, c.termCurrency, c.cc)
}

// With returns a new conversion for the same term currency and provider under
// a different context. The receiver is left unchanged.
func (c *ProviderConversion) With(cc domain.ConversionContext) (domain.CurrencyConversion, error) {
	return NewProviderConversion(c.provider, c.termCurrency, cc)
}

// Apply converts amount into the term currency.
func (c *ProviderConversion) Apply(ctx context.Context, amount domain.Money) (domain.Money, error) {
	return domain.ApplyConversion(ctx, c, amount)
}

// identityRate builds a factor-one rate from a currency to itself under cc.
func identityRate(currencyCode string, cc domain.ConversionContext) (*domain.ExchangeRate, error) {
	b, err := domain.NewExchangeRateBuilderFromContext(cc)
	if err != nil {
		return nil, err
	}
	rate, err := b.
		SetBase(currencyCode).
		SetTerm(currencyCode).
		SetFactor(decimal.NewFromInt(1)).
		Build()
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
