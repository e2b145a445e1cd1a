package services

import (
	portsrepo "github.com/fluxapps/fx_conversion_app/internal/core/ports/repositories"
	portssvc "github.com/fluxapps/fx_conversion_app/internal/core/ports/services"
	"github.com/fluxapps/fx_conversion_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currency service first since rate and conversion services depend on it
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)

	// Conversions resolve rates from the stored-rate table, triangulating
	// through the configured base currency when no direct rate exists.
	storedProvider := NewStoredRateProvider(repos.ExchangeRateRepo)
	container.Conversion = NewConversionService(container.Currency, storedProvider, cfg.BaseCurrency)

	return container
}
