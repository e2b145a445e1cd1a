package domain

import (
	"fmt"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CompositionCheck controls how strictly Build verifies that a rate's factor
// equals the product of its chain's factors.
type CompositionCheck int

const (
	// CompositionExact requires the factor to equal the chain product exactly.
	CompositionExact CompositionCheck = iota
	// CompositionLenient tolerates small rounding drift between the stated
	// factor and the chain product, for providers that publish rounded rates.
	CompositionLenient
	// CompositionOff skips factor composition checking entirely; only
	// currency continuity is verified.
	CompositionOff
)

// compositionTolerance is the maximum relative drift CompositionLenient
// accepts between a stated factor and its chain product.
var compositionTolerance = decimal.New(1, -9)

// ExchangeRateBuilder accumulates the parts of an ExchangeRate and validates
// them on Build. A builder is a single-owner staging object: it is not safe
// for concurrent use. Build does not consume the builder; it can be mutated
// further and built again.
type ExchangeRateBuilder struct {
	context          ConversionContext
	base             string
	term             string
	factor           decimal.Decimal
	factorSet        bool
	rateChain        []ExchangeRate
	compositionCheck CompositionCheck
}

// NewExchangeRateBuilder creates a builder whose context identifies the given
// provider and rate type.
func NewExchangeRateBuilder(providerName string, rateType RateType) *ExchangeRateBuilder {
	return &ExchangeRateBuilder{
		context: NewConversionContext(providerName, rateType),
	}
}

// NewExchangeRateBuilderFromContext creates a builder seeded with the given
// context. A zero context is rejected.
func NewExchangeRateBuilderFromContext(cc ConversionContext) (*ExchangeRateBuilder, error) {
	b := &ExchangeRateBuilder{}
	if err := b.SetContext(cc); err != nil {
		return nil, err
	}
	return b, nil
}

// NewExchangeRateBuilderFromRate creates a builder seeded with all fields of
// an existing rate. Calling Build without further mutation yields a value
// equal to the seed rate.
func NewExchangeRateBuilderFromRate(rate ExchangeRate) *ExchangeRateBuilder {
	b := &ExchangeRateBuilder{}
	return b.SetRate(rate)
}

// SetBase sets the base (source) currency code.
func (b *ExchangeRateBuilder) SetBase(currencyCode string) *ExchangeRateBuilder {
	b.base = currencyCode
	return b
}

// SetTerm sets the term (target) currency code.
func (b *ExchangeRateBuilder) SetTerm(currencyCode string) *ExchangeRateBuilder {
	b.term = currencyCode
	return b
}

// SetFactor sets the conversion factor, such that base * factor = term.
func (b *ExchangeRateBuilder) SetFactor(factor decimal.Decimal) *ExchangeRateBuilder {
	b.factor = factor
	b.factorSet = true
	return b
}

// SetContext sets the conversion context. Unlike the other setters, the
// context is validated eagerly: a zero context is rejected here rather than
// at Build time, since a context is required and always meaningful.
func (b *ExchangeRateBuilder) SetContext(cc ConversionContext) error {
	if cc.IsZero() {
		return fmt.Errorf("%w: conversion context must not be empty", apperrors.ErrValidation)
	}
	b.context = cc
	return nil
}

// SetRateChain replaces the chain of constituent rates wholesale. The given
// rates are copied; later mutation of the caller's slice does not affect the
// builder. Passing no rates (or a nil slice) clears the chain.
func (b *ExchangeRateBuilder) SetRateChain(rates ...ExchangeRate) *ExchangeRateBuilder {
	if len(rates) == 0 {
		b.rateChain = nil
		return b
	}
	b.rateChain = make([]ExchangeRate, len(rates))
	copy(b.rateChain, rates)
	return b
}

// SetRate bulk-seeds base, term, factor, context and chain from an existing
// rate, as a convenience for deriving a new rate from an old one. The chain
// is copied, never aliased, so the seed rate stays untouched by later
// builder mutation.
func (b *ExchangeRateBuilder) SetRate(rate ExchangeRate) *ExchangeRateBuilder {
	b.base = rate.BaseCurrency()
	b.term = rate.TermCurrency()
	b.context = rate.ConversionContext()
	b.factor = rate.Factor()
	b.factorSet = true
	b.SetRateChain(rate.RateChain()...)
	return b
}

// SetCompositionCheck selects the factor-composition strictness applied at
// Build. The default is CompositionExact.
func (b *ExchangeRateBuilder) SetCompositionCheck(check CompositionCheck) *ExchangeRateBuilder {
	b.compositionCheck = check
	return b
}

// Build validates the accumulated state and returns an immutable
// ExchangeRate. It fails with an error wrapping apperrors.ErrValidation when
// base, term, factor or context is unset, when the factor is negative, or
// when a non-empty chain violates currency continuity or factor composition.
// Build leaves the builder usable for further mutation and build calls.
func (b *ExchangeRateBuilder) Build() (ExchangeRate, error) {
	if b.context.IsZero() {
		return ExchangeRate{}, fmt.Errorf("%w: conversion context is required", apperrors.ErrValidation)
	}
	if b.base == "" {
		return ExchangeRate{}, fmt.Errorf("%w: base currency is required", apperrors.ErrValidation)
	}
	if b.term == "" {
		return ExchangeRate{}, fmt.Errorf("%w: term currency is required", apperrors.ErrValidation)
	}
	if !b.factorSet {
		return ExchangeRate{}, fmt.Errorf("%w: conversion factor is required", apperrors.ErrValidation)
	}
	if b.factor.IsNegative() {
		return ExchangeRate{}, fmt.Errorf("%w: conversion factor must not be negative", apperrors.ErrValidation)
	}

	if len(b.rateChain) > 0 {
		if err := b.validateChain(); err != nil {
			return ExchangeRate{}, err
		}
	}

	rate := ExchangeRate{
		context: b.context,
		base:    b.base,
		term:    b.term,
		factor:  b.factor,
	}
	if len(b.rateChain) > 0 {
		rate.rateChain = make([]ExchangeRate, len(b.rateChain))
		copy(rate.rateChain, b.rateChain)
	}
	return rate, nil
}

// validateChain enforces currency continuity across the chain and, depending
// on the configured strictness, that the stated factor matches the product of
// the chain's factors.
func (b *ExchangeRateBuilder) validateChain() error {
	first := b.rateChain[0]
	if first.BaseCurrency() != b.base {
		return fmt.Errorf("%w: rate chain starts at %s, expected base %s",
			apperrors.ErrValidation, first.BaseCurrency(), b.base)
	}
	last := b.rateChain[len(b.rateChain)-1]
	if last.TermCurrency() != b.term {
		return fmt.Errorf("%w: rate chain ends at %s, expected term %s",
			apperrors.ErrValidation, last.TermCurrency(), b.term)
	}
	for i := 0; i < len(b.rateChain)-1; i++ {
		if b.rateChain[i].TermCurrency() != b.rateChain[i+1].BaseCurrency() {
			return fmt.Errorf("%w: rate chain broken between %s and %s at position %d",
				apperrors.ErrValidation, b.rateChain[i].TermCurrency(), b.rateChain[i+1].BaseCurrency(), i)
		}
	}

	if b.compositionCheck == CompositionOff {
		return nil
	}
	product := decimal.NewFromInt(1)
	for _, leg := range b.rateChain {
		product = product.Mul(leg.Factor())
	}
	switch b.compositionCheck {
	case CompositionExact:
		if !product.Equal(b.factor) {
			return fmt.Errorf("%w: factor %s does not equal chain product %s",
				apperrors.ErrValidation, b.factor, product)
		}
	case CompositionLenient:
		if !withinTolerance(b.factor, product) {
			return fmt.Errorf("%w: factor %s deviates from chain product %s beyond tolerance",
				apperrors.ErrValidation, b.factor, product)
		}
	}
	return nil
}

// withinTolerance reports whether got is within the relative composition
// tolerance of want. A zero want requires a zero got.
func withinTolerance(got, want decimal.Decimal) bool {
	diff := got.Sub(want).Abs()
	if want.IsZero() {
		return diff.IsZero()
	}
	return diff.Div(want.Abs()).LessThanOrEqual(compositionTolerance)
}
