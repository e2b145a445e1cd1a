package services

import (
	"context"
	"fmt"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	portsprov "github.com/fluxapps/fx_conversion_app/internal/core/ports/providers"
)

// TriangulatingConversion converts amounts into one term currency, preferring
// a direct quotation from its provider and falling back to a two-leg route
// through a pivot currency when no direct rate exists. Derived rates carry
// both legs in their rate chain and a factor equal to the legs' product.
type TriangulatingConversion struct {
	provider      portsprov.RateProvider
	termCurrency  string
	pivotCurrency string
	cc            domain.ConversionContext
}

// NewTriangulatingConversion creates a conversion into termCurrency that may
// route through pivotCurrency.
func NewTriangulatingConversion(provider portsprov.RateProvider, termCurrency, pivotCurrency string, cc domain.ConversionContext) (*TriangulatingConversion, error) {
	if !domain.IsCurrencyCode(termCurrency) {
		return nil, fmt.Errorf("%w: invalid term currency %q", apperrors.ErrValidation, termCurrency)
	}
	if !domain.IsCurrencyCode(pivotCurrency) {
		return nil, fmt.Errorf("%w: invalid pivot currency %q", apperrors.ErrValidation, pivotCurrency)
	}
	if cc.IsZero() {
		return nil, fmt.Errorf("%w: conversion context must not be empty", apperrors.ErrValidation)
	}
	return &TriangulatingConversion{
		provider:      provider,
		termCurrency:  termCurrency,
		pivotCurrency: pivotCurrency,
		cc:            cc,
	}, nil
}

var _ domain.CurrencyConversion = (*TriangulatingConversion)(nil)

// Currency returns the fixed term currency this conversion converts into.
func (c *TriangulatingConversion) Currency() string {
	return c.termCurrency
}

// ConversionContext returns the fixed context this conversion operates under.
func (c *TriangulatingConversion) ConversionContext() domain.ConversionContext {
	return c.cc
}

// ExchangeRate resolves the rate for amount's currency: identity when already
// in the term currency, then a direct quotation, then a derived rate through
// the pivot. (nil, nil) means neither route produced a rate.
func (c *TriangulatingConversion) ExchangeRate(ctx context.Context, amount domain.Money) (*domain.ExchangeRate, error) {
	base := amount.CurrencyCode()
	if base == c.termCurrency {
		return identityRate(base, c.cc)
	}

	direct, err := c.provider.FetchRate(ctx, base, c.termCurrency, c.cc)
	if err != nil {
		return nil, err
	}
	if direct != nil {
		return direct, nil
	}

	// The pivot cannot add a route when it coincides with either endpoint.
	if c.pivotCurrency == base || c.pivotCurrency == c.termCurrency {
		return nil, nil
	}

	toPivot, err := c.provider.FetchRate(ctx, base, c.pivotCurrency, c.cc)
	if err != nil {
		return nil, err
	}
	if toPivot == nil {
		return nil, nil
	}
	fromPivot, err := c.provider.FetchRate(ctx, c.pivotCurrency, c.termCurrency, c.cc)
	if err != nil {
		return nil, err
	}
	if fromPivot == nil {
		return nil, nil
	}

	b, err := domain.NewExchangeRateBuilderFromContext(c.cc)
	if err != nil {
		return nil, err
	}
	derived, err := b.
		SetBase(base).
		SetTerm(c.termCurrency).
		SetFactor(toPivot.Factor().Mul(fromPivot.Factor())).
		SetRateChain(*toPivot, *fromPivot).
		Build()
	if err != nil {
		return nil, fmt.Errorf("deriving %s->%s via %s: %w", base, c.termCurrency, c.pivotCurrency, err)
	}
	return &derived, nil
}

// With returns a new conversion for the same route configuration under a
// different context. The receiver is left unchanged.
func (c *TriangulatingConversion) With(cc domain.ConversionContext) (domain.CurrencyConversion, error) {
	return NewTriangulatingConversion(c.provider, c.termCurrency, c.pivotCurrency, cc)
}

// Apply converts amount into the term currency.
func (c *TriangulatingConversion) Apply(ctx context.Context, amount domain.Money) (domain.Money, error) {
	return domain.ApplyConversion(ctx, c, amount)
}
