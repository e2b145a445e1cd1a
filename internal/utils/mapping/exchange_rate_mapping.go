package mapping

import (
	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	"github.com/fluxapps/fx_conversion_app/internal/models"
)

// ToModelExchangeRate converts a domain StoredRate to a model ExchangeRate
func ToModelExchangeRate(d domain.StoredRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:   d.ExchangeRateID,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		Rate:             d.Rate,
		DateEffective:    d.DateEffective,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain StoredRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.StoredRate {
	return domain.StoredRate{
		ExchangeRateID:   m.ExchangeRateID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		DateEffective:    m.DateEffective,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExchangeRateSlice converts a slice of model ExchangeRates to domain StoredRates
func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.StoredRate {
	ds := make([]domain.StoredRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRate(m)
	}
	return ds
}
