package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	portssvc "github.com/fluxapps/fx_conversion_app/internal/core/ports/services"
	"github.com/fluxapps/fx_conversion_app/internal/dto"
	"github.com/fluxapps/fx_conversion_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// convertHandler handles HTTP requests for currency conversions.
type convertHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

// newConvertHandler creates a new convertHandler.
func newConvertHandler(cs portssvc.ConversionSvcFacade) *convertHandler {
	return &convertHandler{
		conversionService: cs,
	}
}

// registerConvertRoutes registers the conversion route.
func registerConvertRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := newConvertHandler(conversionService)
	rg.POST("/convert", h.convert)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts an amount using the latest stored exchange rate, deriving a rate through the configured base currency when no direct rate exists
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion details"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 422 {object} map[string]string "No usable exchange rate for the pair"
// @Failure 500 {object} map[string]string "Failed to convert amount"
// @Router /convert [post]
func (h *convertHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: field '" + verrs[0].Field() + "' failed on '" + verrs[0].Tag() + "'"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("from", req.FromCurrencyCode),
		slog.String("to", req.ToCurrencyCode),
	)
	logger.Info("Received request to convert amount", slog.Any("amount", req.Amount))

	result, err := h.conversionService.Convert(c.Request.Context(), req)
	if err != nil {
		var convErr *apperrors.ConversionError
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error converting amount", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.As(err, &convErr) {
			logger.Warn("Conversion not possible", slog.String("error", convErr.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": convErr.Error()})
		} else {
			logger.Error("Failed to convert amount in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		}
		return
	}

	logger.Info("Amount converted successfully")
	c.JSON(http.StatusOK, dto.ToConvertResponse(req, result))
}
