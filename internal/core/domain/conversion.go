package domain

import (
	"context"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
)

// CurrencyConversion converts monetary amounts into one fixed term currency
// under one fixed conversion context. Implementations differ only in how they
// resolve the applicable rate for an amount (stored lookup, triangulation,
// fixed test doubles); the application of a resolved rate is identical for
// all of them and is provided by ApplyConversion.
//
// A conversion instance is immutable in its identity fields: With returns a
// new instance rather than mutating the receiver, so instances can be shared
// freely across goroutines. ExchangeRate may block on I/O in concrete
// variants; Apply adds no suspension points of its own.
type CurrencyConversion interface {
	// Currency returns the fixed term currency this conversion converts into.
	Currency() string

	// ConversionContext returns the fixed context this conversion operates
	// under.
	ConversionContext() ConversionContext

	// ExchangeRate resolves the rate applicable to converting amount into the
	// term currency. Returning (nil, nil) signals that no rate is available —
	// an unsupported conversion, not a lookup failure. A non-nil error means
	// the lookup itself failed.
	ExchangeRate(ctx context.Context, amount Money) (*ExchangeRate, error)

	// With returns a new conversion for the same term currency and resolution
	// strategy, reconfigured with a different context. The receiver is left
	// unchanged. A zero context is rejected.
	With(cc ConversionContext) (CurrencyConversion, error)

	// Apply converts amount into the term currency by resolving and applying
	// the exchange rate. It fails with *apperrors.ConversionError when no
	// rate is available or the resolved rate's base currency does not match
	// the amount's currency.
	Apply(ctx context.Context, amount Money) (Money, error)
}

// ConversionResult pairs a converted amount with the exchange rate that
// produced it.
type ConversionResult struct {
	ConvertedAmount Money
	AppliedRate     ExchangeRate
}

// Convert is the conversion algorithm shared by all CurrencyConversion
// implementations:
//
//  1. Resolve the rate via conv.ExchangeRate.
//  2. Fail with *apperrors.ConversionError when resolution errored, returned
//     no rate, or returned a rate whose base currency does not match the
//     amount (a mismatch indicates a resolution bug or an amount the
//     conversion cannot handle).
//  3. Multiply the amount's value by the rate's factor, exactly, and retag
//     the result with the rate's term currency. The amount's own precision
//     configuration is preserved; the rate contributes only the factor.
//
// The operation has no side effects beyond allocating the result.
func Convert(ctx context.Context, conv CurrencyConversion, amount Money) (*ConversionResult, error) {
	rate, err := conv.ExchangeRate(ctx, amount)
	if err != nil {
		return nil, apperrors.NewConversionError(amount.CurrencyCode(), conv.Currency(), err)
	}
	if rate == nil {
		return nil, apperrors.NewConversionError(amount.CurrencyCode(), "", nil)
	}
	if rate.BaseCurrency() != amount.CurrencyCode() {
		return nil, apperrors.NewConversionError(amount.CurrencyCode(), rate.TermCurrency(), nil)
	}
	converted, err := amount.Multiply(rate.Factor()).WithCurrency(rate.TermCurrency())
	if err != nil {
		return nil, err
	}
	return &ConversionResult{ConvertedAmount: converted, AppliedRate: *rate}, nil
}

// ApplyConversion runs Convert and discards the applied rate. It backs the
// Apply method of CurrencyConversion implementations.
func ApplyConversion(ctx context.Context, conv CurrencyConversion, amount Money) (Money, error) {
	result, err := Convert(ctx, conv, amount)
	if err != nil {
		return Money{}, err
	}
	return result.ConvertedAmount, nil
}
