package domain_test

import (
	"testing"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney_Validation(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		exponent int32
		wantErr  bool
	}{
		{name: "valid", code: "USD", exponent: 2},
		{name: "zero exponent", code: "JPY", exponent: 0},
		{name: "lowercase code", code: "usd", exponent: 2, wantErr: true},
		{name: "too short", code: "US", exponent: 2, wantErr: true},
		{name: "too long", code: "USDX", exponent: 2, wantErr: true},
		{name: "negative exponent", code: "USD", exponent: -1, wantErr: true},
		{name: "oversized exponent", code: "USD", exponent: 9, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewMoneyWithExponent(decimal.NewFromInt(1), tt.code, tt.exponent)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMoney_MultiplyIsExact(t *testing.T) {
	amount := mustMoney(t, "10.01", "USD")

	got := amount.Multiply(decimal.RequireFromString("0.333"))

	// Full precision is kept; nothing is rounded away by the multiplication.
	assert.True(t, got.Value().Equal(decimal.RequireFromString("3.33333")), "got %s", got.Value())
	assert.Equal(t, "USD", got.CurrencyCode())
	assert.Equal(t, int32(2), got.Exponent())
}

func TestMoney_RoundedUsesBankersRounding(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "2.125", want: "2.12"}, // ties to even
		{value: "2.135", want: "2.14"},
		{value: "2.131", want: "2.13"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got := mustMoney(t, tt.value, "USD").Rounded()
			assert.True(t, got.Value().Equal(decimal.RequireFromString(tt.want)), "got %s", got.Value())
		})
	}
}

func TestMoney_WithCurrency(t *testing.T) {
	amount, err := domain.NewMoneyWithExponent(decimal.RequireFromString("9.2"), "USD", 3)
	require.NoError(t, err)

	retagged, err := amount.WithCurrency("EUR")
	require.NoError(t, err)
	assert.Equal(t, "EUR", retagged.CurrencyCode())
	assert.True(t, retagged.Value().Equal(amount.Value()))
	assert.Equal(t, int32(3), retagged.Exponent())

	_, err = amount.WithCurrency("eur")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMoney_Equal(t *testing.T) {
	a := mustMoney(t, "9.2", "EUR")
	b := mustMoney(t, "9.20", "EUR")
	c := mustMoney(t, "9.2", "USD")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
