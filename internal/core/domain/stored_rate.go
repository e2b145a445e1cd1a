package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoredProviderName identifies rates served from the application's own
// exchange-rate store.
const StoredProviderName = "stored"

// StoredRate is a persisted exchange-rate record for a currency pair: the
// administrative view of a rate, with identity and audit data. It is distinct
// from ExchangeRate, the immutable conversion value; ToExchangeRate bridges
// the two.
type StoredRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`   // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

// ToExchangeRate builds the immutable conversion value for this record. The
// resulting rate is a direct quotation from the stored provider, valid from
// the record's effective date, classified with the given rate type.
func (sr StoredRate) ToExchangeRate(rateType RateType) (ExchangeRate, error) {
	cc := NewConversionContext(StoredProviderName, rateType).
		WithValidFrom(sr.DateEffective)
	b, err := NewExchangeRateBuilderFromContext(cc)
	if err != nil {
		return ExchangeRate{}, err
	}
	return b.
		SetBase(sr.FromCurrencyCode).
		SetTerm(sr.ToCurrencyCode).
		SetFactor(sr.Rate).
		Build()
}
