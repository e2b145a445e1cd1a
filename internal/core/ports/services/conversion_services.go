package services

import (
	"context"

	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	"github.com/fluxapps/fx_conversion_app/internal/dto"
)

// ConversionSvcFacade converts monetary amounts between currencies using the
// configured rate providers.
type ConversionSvcFacade interface {
	// Convert applies the best available exchange rate to the requested
	// amount and returns the converted amount together with the rate used.
	Convert(ctx context.Context, req dto.ConvertRequest) (*domain.ConversionResult, error)
}
