package domain_test

import (
	"testing"
	"time"

	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestConversionContext_IsZero(t *testing.T) {
	assert.True(t, domain.ConversionContext{}.IsZero())
	assert.False(t, domain.NewConversionContext("ecb", domain.RateTypeCurrent).IsZero())
}

func TestConversionContext_WithMethodsReturnCopies(t *testing.T) {
	base := domain.NewConversionContext("ecb", domain.RateTypeCurrent)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	bounded := base.WithValidity(from, to).WithAttribute("feed", "daily")

	// The original context is untouched.
	assert.Nil(t, base.ValidFrom())
	_, ok := base.Attribute("feed")
	assert.False(t, ok)

	assert.Equal(t, from, *bounded.ValidFrom())
	assert.Equal(t, to, *bounded.ValidTo())
	v, ok := bounded.Attribute("feed")
	assert.True(t, ok)
	assert.Equal(t, "daily", v)

	// Mutating the attributes copy does not leak back.
	attrs := bounded.Attributes()
	attrs["feed"] = "tampered"
	v, _ = bounded.Attribute("feed")
	assert.Equal(t, "daily", v)
}

func TestConversionContext_Equal(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	a := domain.NewConversionContext("ecb", domain.RateTypeCurrent).WithValidFrom(from)
	b := domain.NewConversionContext("ecb", domain.RateTypeCurrent).WithValidFrom(from)
	assert.True(t, a.Equal(b))

	assert.False(t, a.Equal(domain.NewConversionContext("imf", domain.RateTypeCurrent)))
	assert.False(t, a.Equal(domain.NewConversionContext("ecb", domain.RateTypeHistoric)))
	assert.False(t, a.Equal(a.WithAttribute("feed", "daily")))
}

func TestRateType_IsValid(t *testing.T) {
	for _, rt := range []domain.RateType{
		domain.RateTypeAny, domain.RateTypeCurrent, domain.RateTypeHistoric,
		domain.RateTypeDeferred, domain.RateTypeOther,
	} {
		assert.True(t, rt.IsValid(), rt)
	}
	assert.False(t, domain.RateType("SPOT").IsValid())
	assert.False(t, domain.RateType("").IsValid())
}
