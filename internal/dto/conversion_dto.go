package dto

import (
	"time"

	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the structure for converting an amount between currencies.
type ConvertRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	RateType         string          `json:"rateType" binding:"omitempty,oneof=ANY CURRENT HISTORIC DEFERRED OTHER"`
	AsOf             *time.Time      `json:"asOf" binding:"omitempty"`
}

// AppliedRateResponse describes the exchange rate used for a conversion,
// including the constituent legs when the rate was derived by triangulation.
type AppliedRateResponse struct {
	BaseCurrencyCode string                `json:"baseCurrencyCode"`
	TermCurrencyCode string                `json:"termCurrencyCode"`
	Factor           decimal.Decimal       `json:"factor"`
	Provider         string                `json:"provider"`
	RateType         string                `json:"rateType"`
	ValidFrom        *time.Time            `json:"validFrom,omitempty"`
	RateChain        []AppliedRateResponse `json:"rateChain,omitempty"`
}

// ConvertResponse defines the structure returned for a successful conversion.
type ConvertResponse struct {
	FromAmount       decimal.Decimal     `json:"fromAmount"`
	FromCurrencyCode string              `json:"fromCurrencyCode"`
	ConvertedAmount  decimal.Decimal     `json:"convertedAmount"`
	ToCurrencyCode   string              `json:"toCurrencyCode"`
	AppliedRate      AppliedRateResponse `json:"appliedRate"`
}

// ToAppliedRateResponse converts a domain.ExchangeRate to its DTO form,
// recursively flattening the rate chain.
func ToAppliedRateResponse(rate domain.ExchangeRate) AppliedRateResponse {
	resp := AppliedRateResponse{
		BaseCurrencyCode: rate.BaseCurrency(),
		TermCurrencyCode: rate.TermCurrency(),
		Factor:           rate.Factor(),
		Provider:         rate.ConversionContext().ProviderName(),
		RateType:         rate.ConversionContext().RateType().String(),
		ValidFrom:        rate.ConversionContext().ValidFrom(),
	}
	for _, leg := range rate.RateChain() {
		resp.RateChain = append(resp.RateChain, ToAppliedRateResponse(leg))
	}
	return resp
}

// ToConvertResponse converts a domain.ConversionResult to ConvertResponse DTO.
// The converted amount is rounded to the term currency's exponent.
func ToConvertResponse(req ConvertRequest, result *domain.ConversionResult) ConvertResponse {
	rounded := result.ConvertedAmount.Rounded()
	return ConvertResponse{
		FromAmount:       req.Amount,
		FromCurrencyCode: req.FromCurrencyCode,
		ConvertedAmount:  rounded.Value(),
		ToCurrencyCode:   rounded.CurrencyCode(),
		AppliedRate:      ToAppliedRateResponse(result.AppliedRate),
	}
}
