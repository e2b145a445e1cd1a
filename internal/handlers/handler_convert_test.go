package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	portssvc "github.com/fluxapps/fx_conversion_app/internal/core/ports/services"
	"github.com/fluxapps/fx_conversion_app/internal/dto"
	"github.com/fluxapps/fx_conversion_app/internal/handlers"
	"github.com/fluxapps/fx_conversion_app/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, req dto.ConvertRequest) (*domain.ConversionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ConversionSvcFacade = (*MockConversionService)(nil)

// --- Test Suite ---
type ConvertHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockConversionService *MockConversionService
	mockCurrencyService   *MockCurrencyService
	mockRateService       *MockExchangeRateService
}

func (suite *ConvertHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockConversionService = new(MockConversionService)
	suite.mockCurrencyService = new(MockCurrencyService)
	suite.mockRateService = new(MockExchangeRateService)

	cfg := &config.Config{
		JWTSecret:    "test-secret-key-that-is-long-enough",
		JWTIssuer:    "fxc-test",
		IsProduction: true, // skip swagger route registration
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Currency:     suite.mockCurrencyService,
		ExchangeRate: suite.mockRateService,
		Conversion:   suite.mockConversionService,
	})
}

// postConvert sends a POST /api/v1/convert with the given body and returns the recorder.
func (suite *ConvertHandlerTestSuite) postConvert(body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/convert", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ConvertHandlerTestSuite) TestConvert_Success() {
	factor := decimal.RequireFromString("0.92")
	converted, err := domain.NewMoneyWithExponent(decimal.RequireFromString("9.2"), "EUR", 2)
	suite.Require().NoError(err)
	appliedRate, err := domain.NewExchangeRateBuilder("stored", domain.RateTypeCurrent).
		SetBase("USD").
		SetTerm("EUR").
		SetFactor(factor).
		Build()
	suite.Require().NoError(err)

	expectedResult := &domain.ConversionResult{
		ConvertedAmount: converted,
		AppliedRate:     appliedRate,
	}

	suite.mockConversionService.On("Convert",
		mock.Anything,
		mock.MatchedBy(func(req dto.ConvertRequest) bool {
			return req.FromCurrencyCode == "USD" &&
				req.ToCurrencyCode == "EUR" &&
				req.Amount.Equal(decimal.NewFromInt(10))
		}),
	).Return(expectedResult, nil).Once()

	body := []byte(`{"amount": 10, "fromCurrencyCode": "USD", "toCurrencyCode": "EUR"}`)
	w := suite.postConvert(body)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ConvertResponse
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal("USD", resp.FromCurrencyCode)
	suite.Equal("EUR", resp.ToCurrencyCode)
	suite.True(resp.FromAmount.Equal(decimal.NewFromInt(10)), "fromAmount mismatch: %s", resp.FromAmount)
	suite.True(resp.ConvertedAmount.Equal(decimal.RequireFromString("9.2")), "convertedAmount mismatch: %s", resp.ConvertedAmount)
	suite.Equal("stored", resp.AppliedRate.Provider)
	suite.Equal("CURRENT", resp.AppliedRate.RateType)
	suite.True(resp.AppliedRate.Factor.Equal(factor))
	suite.Empty(resp.AppliedRate.RateChain)

	suite.mockConversionService.AssertExpectations(suite.T())
}

func (suite *ConvertHandlerTestSuite) TestConvert_RoundsToTermExponent() {
	// 1546.125 JPY with exponent 0 rounds to 1546 in the response.
	converted, err := domain.NewMoneyWithExponent(decimal.RequireFromString("1546.125"), "JPY", 0)
	suite.Require().NoError(err)
	appliedRate, err := domain.NewExchangeRateBuilder("stored", domain.RateTypeAny).
		SetBase("USD").
		SetTerm("JPY").
		SetFactor(decimal.RequireFromString("154.6125")).
		Build()
	suite.Require().NoError(err)

	suite.mockConversionService.On("Convert", mock.Anything, mock.AnythingOfType("dto.ConvertRequest")).
		Return(&domain.ConversionResult{ConvertedAmount: converted, AppliedRate: appliedRate}, nil).Once()

	body := []byte(`{"amount": 10, "fromCurrencyCode": "USD", "toCurrencyCode": "JPY"}`)
	w := suite.postConvert(body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConvertResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.ConvertedAmount.Equal(decimal.NewFromInt(1546)), "expected rounded amount, got %s", resp.ConvertedAmount)
	suite.mockConversionService.AssertExpectations(suite.T())
}

func (suite *ConvertHandlerTestSuite) TestConvert_InvalidBody() {
	body := []byte(`{"amount": 10, "fromCurrencyCode": "usd", "toCurrencyCode": "EUR"}`) // lowercase code fails binding
	w := suite.postConvert(body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockConversionService.AssertNotCalled(suite.T(), "Convert")
}

func (suite *ConvertHandlerTestSuite) TestConvert_ValidationError() {
	suite.mockConversionService.On("Convert", mock.Anything, mock.AnythingOfType("dto.ConvertRequest")).
		Return(nil, fmt.Errorf("%w: currency code 'XXX' not found", apperrors.ErrValidation)).Once()

	body := []byte(`{"amount": 10, "fromCurrencyCode": "XXX", "toCurrencyCode": "EUR"}`)
	w := suite.postConvert(body)

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp["error"], "XXX")
	suite.mockConversionService.AssertExpectations(suite.T())
}

func (suite *ConvertHandlerTestSuite) TestConvert_NoRateAvailable() {
	suite.mockConversionService.On("Convert", mock.Anything, mock.AnythingOfType("dto.ConvertRequest")).
		Return(nil, apperrors.NewConversionError("CHF", "", nil)).Once()

	body := []byte(`{"amount": 25, "fromCurrencyCode": "CHF", "toCurrencyCode": "EUR"}`)
	w := suite.postConvert(body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var resp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp["error"], "CHF")
	suite.mockConversionService.AssertExpectations(suite.T())
}

func (suite *ConvertHandlerTestSuite) TestConvert_InternalError() {
	suite.mockConversionService.On("Convert", mock.Anything, mock.AnythingOfType("dto.ConvertRequest")).
		Return(nil, errors.New("connection refused")).Once()

	body := []byte(`{"amount": 10, "fromCurrencyCode": "USD", "toCurrencyCode": "EUR"}`)
	w := suite.postConvert(body)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.mockConversionService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestConvertHandler(t *testing.T) {
	suite.Run(t, new(ConvertHandlerTestSuite))
}
