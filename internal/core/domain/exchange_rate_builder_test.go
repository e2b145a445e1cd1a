package domain_test

import (
	"testing"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRate(t *testing.T, base, term string, factor string) domain.ExchangeRate {
	t.Helper()
	rate, err := domain.NewExchangeRateBuilder("test", domain.RateTypeCurrent).
		SetBase(base).
		SetTerm(term).
		SetFactor(decimal.RequireFromString(factor)).
		Build()
	require.NoError(t, err)
	return rate
}

func TestExchangeRateBuilder_Build_RequiredFields(t *testing.T) {
	factor := decimal.NewFromFloat(0.92)

	tests := []struct {
		name    string
		builder func() *domain.ExchangeRateBuilder
		wantErr bool
	}{
		{
			name: "all fields set",
			builder: func() *domain.ExchangeRateBuilder {
				return domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent).
					SetBase("USD").SetTerm("EUR").SetFactor(factor)
			},
			wantErr: false,
		},
		{
			name: "missing base",
			builder: func() *domain.ExchangeRateBuilder {
				return domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent).
					SetTerm("EUR").SetFactor(factor)
			},
			wantErr: true,
		},
		{
			name: "missing term",
			builder: func() *domain.ExchangeRateBuilder {
				return domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent).
					SetBase("USD").SetFactor(factor)
			},
			wantErr: true,
		},
		{
			name: "missing factor",
			builder: func() *domain.ExchangeRateBuilder {
				return domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent).
					SetBase("USD").SetTerm("EUR")
			},
			wantErr: true,
		},
		{
			name: "missing context",
			builder: func() *domain.ExchangeRateBuilder {
				b := &domain.ExchangeRateBuilder{}
				return b.SetBase("USD").SetTerm("EUR").SetFactor(factor)
			},
			wantErr: true,
		},
		{
			name: "zero factor is allowed",
			builder: func() *domain.ExchangeRateBuilder {
				return domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent).
					SetBase("USD").SetTerm("EUR").SetFactor(decimal.Zero)
			},
			wantErr: false,
		},
		{
			name: "negative factor is rejected",
			builder: func() *domain.ExchangeRateBuilder {
				return domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent).
					SetBase("USD").SetTerm("EUR").SetFactor(decimal.NewFromFloat(-0.5))
			},
			wantErr: true,
		},
		{
			name: "identity rate with equal base and term",
			builder: func() *domain.ExchangeRateBuilder {
				return domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent).
					SetBase("USD").SetTerm("USD").SetFactor(decimal.NewFromInt(1))
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder().Build()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExchangeRateBuilder_SetContext_RejectsZeroContext(t *testing.T) {
	b := domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent)
	err := b.SetContext(domain.ConversionContext{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewExchangeRateBuilderFromContext(domain.ConversionContext{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestExchangeRateBuilder_ChainContinuity(t *testing.T) {
	usdGbp := mustRate(t, "USD", "GBP", "0.80")
	gbpEur := mustRate(t, "GBP", "EUR", "1.15")
	chainProduct := decimal.RequireFromString("0.92") // 0.80 * 1.15

	tests := []struct {
		name    string
		base    string
		term    string
		chain   []domain.ExchangeRate
		wantErr bool
	}{
		{
			name:  "continuous chain",
			base:  "USD",
			term:  "EUR",
			chain: []domain.ExchangeRate{usdGbp, gbpEur},
		},
		{
			name:    "chain does not start at base",
			base:    "CHF",
			term:    "EUR",
			chain:   []domain.ExchangeRate{usdGbp, gbpEur},
			wantErr: true,
		},
		{
			name:    "chain does not end at term",
			base:    "USD",
			term:    "JPY",
			chain:   []domain.ExchangeRate{usdGbp, gbpEur},
			wantErr: true,
		},
		{
			name:    "broken adjacency",
			base:    "USD",
			term:    "EUR",
			chain:   []domain.ExchangeRate{mustRate(t, "USD", "CHF", "0.80"), gbpEur},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent).
				SetBase(tt.base).
				SetTerm(tt.term).
				SetFactor(chainProduct).
				SetRateChain(tt.chain...).
				Build()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExchangeRateBuilder_FactorComposition(t *testing.T) {
	usdGbp := mustRate(t, "USD", "GBP", "0.80")
	gbpEur := mustRate(t, "GBP", "EUR", "1.15")

	newBuilder := func(factor string) *domain.ExchangeRateBuilder {
		return domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent).
			SetBase("USD").
			SetTerm("EUR").
			SetFactor(decimal.RequireFromString(factor)).
			SetRateChain(usdGbp, gbpEur)
	}

	t.Run("exact accepts matching product", func(t *testing.T) {
		rate, err := newBuilder("0.92").Build()
		require.NoError(t, err)
		assert.True(t, rate.IsDerived())
		assert.Len(t, rate.RateChain(), 2)
	})

	t.Run("exact rejects mismatched factor", func(t *testing.T) {
		_, err := newBuilder("0.93").Build()
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("lenient tolerates rounding drift", func(t *testing.T) {
		_, err := newBuilder("0.9200000001").
			SetCompositionCheck(domain.CompositionLenient).
			Build()
		assert.NoError(t, err)
	})

	t.Run("lenient still rejects real mismatch", func(t *testing.T) {
		_, err := newBuilder("0.93").
			SetCompositionCheck(domain.CompositionLenient).
			Build()
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("off skips composition entirely", func(t *testing.T) {
		_, err := newBuilder("0.93").
			SetCompositionCheck(domain.CompositionOff).
			Build()
		assert.NoError(t, err)
	})
}

func TestExchangeRateBuilder_DefensiveChainCopy(t *testing.T) {
	usdGbp := mustRate(t, "USD", "GBP", "0.80")
	gbpEur := mustRate(t, "GBP", "EUR", "1.15")
	sneaky := mustRate(t, "JPY", "CHF", "0.0065")

	chain := []domain.ExchangeRate{usdGbp, gbpEur}
	b := domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent).
		SetBase("USD").
		SetTerm("EUR").
		SetFactor(decimal.RequireFromString("0.92")).
		SetRateChain(chain...)

	// Mutating the caller's slice after the setter must not leak into the builder.
	chain[0] = sneaky

	rate, err := b.Build()
	require.NoError(t, err)
	got := rate.RateChain()
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(usdGbp))

	// Mutating the accessor's result must not leak into the rate either.
	got[1] = sneaky
	assert.True(t, rate.RateChain()[1].Equal(gbpEur))
}

func TestExchangeRateBuilder_RoundTripFromRate(t *testing.T) {
	usdGbp := mustRate(t, "USD", "GBP", "0.80")
	gbpEur := mustRate(t, "GBP", "EUR", "1.15")

	original, err := domain.NewExchangeRateBuilder("ecb", domain.RateTypeHistoric).
		SetBase("USD").
		SetTerm("EUR").
		SetFactor(decimal.RequireFromString("0.92")).
		SetRateChain(usdGbp, gbpEur).
		Build()
	require.NoError(t, err)

	rebuilt, err := domain.NewExchangeRateBuilderFromRate(original).Build()
	require.NoError(t, err)
	assert.True(t, original.Equal(rebuilt))

	// SetRate seeding behaves the same as the constructor.
	seeded := &domain.ExchangeRateBuilder{}
	rebuilt2, err := seeded.SetRate(original).Build()
	require.NoError(t, err)
	assert.True(t, original.Equal(rebuilt2))
}

func TestExchangeRateBuilder_BuildIsRepeatable(t *testing.T) {
	b := domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent).
		SetBase("USD").
		SetTerm("EUR").
		SetFactor(decimal.RequireFromString("0.92"))

	first, err := b.Build()
	require.NoError(t, err)
	second, err := b.Build()
	require.NoError(t, err)
	assert.True(t, first.Equal(second))

	// The builder stays usable for further mutation after Build.
	third, err := b.SetTerm("GBP").SetFactor(decimal.RequireFromString("0.80")).Build()
	require.NoError(t, err)
	assert.Equal(t, "GBP", third.TermCurrency())
	assert.False(t, first.Equal(third))
}

func TestExchangeRateBuilder_SetRateChainNilClears(t *testing.T) {
	usdGbp := mustRate(t, "USD", "GBP", "0.80")
	gbpEur := mustRate(t, "GBP", "EUR", "1.15")

	rate, err := domain.NewExchangeRateBuilder("ecb", domain.RateTypeCurrent).
		SetBase("USD").
		SetTerm("EUR").
		SetFactor(decimal.RequireFromString("0.92")).
		SetRateChain(usdGbp, gbpEur).
		SetRateChain().
		Build()
	require.NoError(t, err)
	assert.False(t, rate.IsDerived())
	assert.Nil(t, rate.RateChain())
}
