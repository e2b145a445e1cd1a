package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fluxapps/fx_conversion_app/internal/apperrors"
	"github.com/fluxapps/fx_conversion_app/internal/core/domain"
	portssvc "github.com/fluxapps/fx_conversion_app/internal/core/ports/services"
	"github.com/fluxapps/fx_conversion_app/internal/core/services"
	"github.com/fluxapps/fx_conversion_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.StoredRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.StoredRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindExchangeRateAsOf(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.StoredRate, error) {
	args := m.Called(ctx, fromCode, toCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.StoredRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredRate), args.Error(1)
}

// MockCurrencyService implements the CurrencySvcFacade interface
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo    *MockExchangeRateRepository
	mockCurrencySvc *MockCurrencyService
	service         portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, suite.mockCurrencySvc)
}

// --- Test Cases ---

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	fromCode := "USD"
	toCode := "EUR"
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             decimal.NewFromFloat(0.85),
		DateEffective:    time.Now().Truncate(24 * time.Hour),
	}

	// Mock currency validation success
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, fromCode).Return(&domain.Currency{CurrencyCode: fromCode}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, toCode).Return(&domain.Currency{CurrencyCode: toCode}, nil).Once()

	// Mock rate save success
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.StoredRate")).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.Equal(req.FromCurrencyCode, rate.FromCurrencyCode)
	suite.Equal(req.ToCurrencyCode, rate.ToCurrencyCode)
	suite.True(req.Rate.Equal(rate.Rate))
	suite.Equal(req.DateEffective, rate.DateEffective)
	suite.Equal(creatorUserID, rate.CreatedBy)

	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_InvalidRate() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.Zero, // Invalid rate
		DateEffective:    time.Now(),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req, creatorUserID)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "must be positive")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SameCurrency() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "USD", // Same currency
		Rate:             decimal.NewFromInt(1),
		DateEffective:    time.Now(),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req, creatorUserID)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "cannot be the same")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_FromCurrencyNotFound() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	fromCode := "XXX"
	toCode := "EUR"
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: fromCode, ToCurrencyCode: toCode, Rate: decimal.NewFromFloat(1), DateEffective: time.Now()}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, fromCode).Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, creatorUserID)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "'from' currency code")
	suite.Contains(err.Error(), "not found")
	suite.mockCurrencySvc.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_ToCurrencyNotFound() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	fromCode := "USD"
	toCode := "XXX"
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: fromCode, ToCurrencyCode: toCode, Rate: decimal.NewFromFloat(1), DateEffective: time.Now()}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, fromCode).Return(&domain.Currency{CurrencyCode: fromCode}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, toCode).Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, creatorUserID)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "'to' currency code")
	suite.Contains(err.Error(), "not found")
	suite.mockCurrencySvc.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SaveDuplicate() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	fromCode := "USD"
	toCode := "EUR"
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: fromCode, ToCurrencyCode: toCode, Rate: decimal.NewFromFloat(1), DateEffective: time.Now()}
	duplicateErr := fmt.Errorf("%w: exchange rate exists", apperrors.ErrDuplicate)

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, fromCode).Return(&domain.Currency{CurrencyCode: fromCode}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, toCode).Return(&domain.Currency{CurrencyCode: toCode}, nil).Once()

	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.StoredRate")).Return(duplicateErr).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, creatorUserID)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation) // Service maps duplicate to validation

	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_Success() {
	ctx := context.Background()
	fromCode := "USD"
	toCode := "EUR"
	expectedRate := &domain.StoredRate{FromCurrencyCode: fromCode, ToCurrencyCode: toCode}

	suite.mockRateRepo.On("FindExchangeRate", ctx, fromCode, toCode).Return(expectedRate, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, fromCode, toCode)

	suite.Require().NoError(err)
	suite.Equal(expectedRate, rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_LowercaseNormalized() {
	ctx := context.Background()
	expectedRate := &domain.StoredRate{FromCurrencyCode: "USD", ToCurrencyCode: "EUR"}

	suite.mockRateRepo.On("FindExchangeRate", ctx, "USD", "EUR").Return(expectedRate, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "usd", "eur")

	suite.Require().NoError(err)
	suite.Equal(expectedRate, rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_InvalidCode() {
	ctx := context.Background()
	rate, err := suite.service.GetExchangeRate(ctx, "US", "EUR") // Invalid from code
	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)

	rate, err = suite.service.GetExchangeRate(ctx, "USD", "EU") // Invalid to code
	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_NotFound() {
	ctx := context.Background()
	fromCode := "USD"
	toCode := "XXX"

	suite.mockRateRepo.On("FindExchangeRate", ctx, fromCode, toCode).Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.GetExchangeRate(ctx, fromCode, toCode)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestListExchangeRates_Success() {
	ctx := context.Background()
	stored := []domain.StoredRate{
		{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.NewFromFloat(0.92)},
		{FromCurrencyCode: "USD", ToCurrencyCode: "GBP", Rate: decimal.NewFromFloat(0.80)},
	}

	suite.mockRateRepo.On("ListExchangeRates", ctx).Return(stored, nil).Once()

	rates, err := suite.service.ListExchangeRates(ctx)

	suite.Require().NoError(err)
	suite.Equal(stored, rates)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestListExchangeRates_EmptyNotNil() {
	ctx := context.Background()

	suite.mockRateRepo.On("ListExchangeRates", ctx).Return(nil, nil).Once()

	rates, err := suite.service.ListExchangeRates(ctx)

	suite.Require().NoError(err)
	suite.NotNil(rates)
	suite.Empty(rates)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func TestNewExchangeRateService(t *testing.T) {
	mockRateRepo := new(MockExchangeRateRepository)
	mockCurrencySvc := new(MockCurrencyService)

	service := services.NewExchangeRateService(mockRateRepo, mockCurrencySvc)

	assert.NotNil(t, service)
	var _ portssvc.ExchangeRateSvcFacade = service
}

// --- Run Suite ---
func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
