package domain

import (
	"fmt"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DefaultExponent is the number of fraction digits assumed for currencies
// without an explicit exponent (the common ISO 4217 case).
const DefaultExponent = 2

// Money is a monetary amount: a precise decimal value tagged with a currency
// code, plus the exponent (fraction digits) used when the amount is rounded
// for presentation or settlement. Arithmetic keeps full precision; rounding
// only happens when Rounded is called, using banker's rounding.
type Money struct {
	value    decimal.Decimal
	currency string
	exponent int32
}

// NewMoney creates an amount in the given currency with the default exponent.
func NewMoney(value decimal.Decimal, currencyCode string) (Money, error) {
	return NewMoneyWithExponent(value, currencyCode, DefaultExponent)
}

// NewMoneyWithExponent creates an amount in the given currency, carrying the
// currency's fraction-digit configuration.
func NewMoneyWithExponent(value decimal.Decimal, currencyCode string, exponent int32) (Money, error) {
	if !IsCurrencyCode(currencyCode) {
		return Money{}, fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, currencyCode)
	}
	if exponent < 0 || exponent > 8 {
		return Money{}, fmt.Errorf("%w: currency exponent %d out of range", apperrors.ErrValidation, exponent)
	}
	return Money{value: value, currency: currencyCode, exponent: exponent}, nil
}

// Value returns the exact decimal value of the amount.
func (m Money) Value() decimal.Decimal {
	return m.value
}

// CurrencyCode returns the amount's currency code.
func (m Money) CurrencyCode() string {
	return m.currency
}

// Exponent returns the number of fraction digits configured for the amount.
func (m Money) Exponent() int32 {
	return m.exponent
}

// Multiply returns a new amount scaled by the given factor. The computation
// is exact; no rounding is applied and the amount's currency and exponent
// configuration are preserved.
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{
		value:    m.value.Mul(factor),
		currency: m.currency,
		exponent: m.exponent,
	}
}

// WithCurrency returns a copy of the amount retagged with another currency,
// keeping the numeric value and exponent configuration untouched.
func (m Money) WithCurrency(currencyCode string) (Money, error) {
	if !IsCurrencyCode(currencyCode) {
		return Money{}, fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, currencyCode)
	}
	return Money{value: m.value, currency: currencyCode, exponent: m.exponent}, nil
}

// Rounded returns the amount rounded to its configured exponent using
// banker's rounding.
func (m Money) Rounded() Money {
	return Money{
		value:    m.value.RoundBank(m.exponent),
		currency: m.currency,
		exponent: m.exponent,
	}
}

// Equal reports whether two amounts have the same currency and numeric value.
// Values are compared numerically, so 9.2 equals 9.20.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.value.Equal(other.value)
}

// IsZero reports whether the amount's value is zero.
func (m Money) IsZero() bool {
	return m.value.IsZero()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.value.StringFixed(m.exponent), m.currency)
}

// IsCurrencyCode reports whether code looks like an ISO 4217 currency code:
// exactly three uppercase ASCII letters.
func IsCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
