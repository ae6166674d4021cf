package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"freight-quote-service/internal/models"
	"freight-quote-service/internal/services"
)

// MockQuoteService is a mock implementation of services.QuoteService
type MockQuoteService struct {
	mock.Mock
}

var _ services.QuoteService = (*MockQuoteService)(nil)

func (m *MockQuoteService) GenerateQuote(ctx context.Context, req models.CreateQuoteRequest) (*models.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteService) UpdateQuote(ctx context.Context, id uuid.UUID, patch models.UpdateQuoteRequest) (*models.Quote, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteService) History(ctx context.Context, page, limit int) (*models.QuoteHistoryResponse, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuoteHistoryResponse), args.Error(1)
}

func setupQuoteRouter(svc services.QuoteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewQuoteHandler(svc)

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/quote", handler.CreateQuote)
		api.GET("/quote/:id", handler.GetQuote)
		api.PUT("/quote/:id", handler.UpdateQuote)
		api.GET("/quotes/history", handler.History)
	}
	return router
}

func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleQuote() *models.Quote {
	distance := 212.3
	return &models.Quote{
		ID:                 uuid.New(),
		Origin:             "Phnom Penh",
		Destination:        "Sihanoukville",
		Commodity:          "garments",
		Mode:               models.ModeRoad,
		Country:            "KH",
		DistanceKm:         &distance,
		ContainerMaxWeight: 24000,
		ContainerQuantity:  2,
		ChargeableWeight:   48000,
		Lines: models.QuoteLineMap{
			models.ServiceLocalCharge: {
				Price:    200.00,
				ETA:      "1 day",
				Currency: "USD",
			},
		},
		Version: 1,
	}
}

func TestCreateQuote_Success(t *testing.T) {
	svc := new(MockQuoteService)
	router := setupQuoteRouter(svc)

	quote := sampleQuote()
	svc.On("GenerateQuote", mock.Anything, mock.AnythingOfType("models.CreateQuoteRequest")).Return(quote, nil)

	w := performRequest(router, http.MethodPost, "/api/quote", gin.H{
		"origin":             "Phnom Penh",
		"destination":        "Sihanoukville",
		"containerMaxWeight": 24000,
		"containerQuantity":  2,
		"commodity":          "garments",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.CreateQuoteResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, quote.ID.String(), response.QuoteID)
	assert.Equal(t, 48000.0, response.ChargeableWeight)
	assert.Contains(t, response.Quotes, models.ServiceLocalCharge)
}

func TestCreateQuote_MissingFields(t *testing.T) {
	svc := new(MockQuoteService)
	router := setupQuoteRouter(svc)

	w := performRequest(router, http.MethodPost, "/api/quote", gin.H{
		"origin": "Phnom Penh",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GenerateQuote", mock.Anything, mock.Anything)
}

func TestCreateQuote_UnsupportedMode(t *testing.T) {
	svc := new(MockQuoteService)
	router := setupQuoteRouter(svc)

	svc.On("GenerateQuote", mock.Anything, mock.Anything).Return(nil, services.ErrUnsupportedMode)

	w := performRequest(router, http.MethodPost, "/api/quote", gin.H{
		"origin":             "Phnom Penh",
		"destination":        "Bangkok",
		"containerMaxWeight": 1000,
		"containerQuantity":  1,
		"commodity":          "electronics",
		"mode":               "air",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateQuote_NoAvailableRates(t *testing.T) {
	svc := new(MockQuoteService)
	router := setupQuoteRouter(svc)

	svc.On("GenerateQuote", mock.Anything, mock.Anything).Return(nil, services.ErrNoAvailableRates)

	w := performRequest(router, http.MethodPost, "/api/quote", gin.H{
		"origin":             "Phnom Penh",
		"destination":        "Kampot",
		"containerMaxWeight": 1000,
		"containerQuantity":  1,
		"commodity":          "rice",
		"country":            "LA",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetQuote_InvalidID(t *testing.T) {
	svc := new(MockQuoteService)
	router := setupQuoteRouter(svc)

	w := performRequest(router, http.MethodGet, "/api/quote/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetQuote", mock.Anything, mock.Anything)
}

func TestGetQuote_NotFound(t *testing.T) {
	svc := new(MockQuoteService)
	router := setupQuoteRouter(svc)

	id := uuid.New()
	svc.On("GetQuote", mock.Anything, id).Return(nil, services.ErrQuoteNotFound)

	w := performRequest(router, http.MethodGet, "/api/quote/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateQuote_Conflict(t *testing.T) {
	svc := new(MockQuoteService)
	router := setupQuoteRouter(svc)

	id := uuid.New()
	svc.On("UpdateQuote", mock.Anything, id, mock.Anything).Return(nil, services.ErrConflict)

	w := performRequest(router, http.MethodPut, "/api/quote/"+id.String(), gin.H{
		"containerQuantity": 3,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHistory_PassesPagination(t *testing.T) {
	svc := new(MockQuoteService)
	router := setupQuoteRouter(svc)

	svc.On("History", mock.Anything, 2, 10).Return(&models.QuoteHistoryResponse{
		Quotes: []*models.Quote{sampleQuote()},
		Total:  11,
		Page:   2,
		Pages:  2,
	}, nil)

	w := performRequest(router, http.MethodGet, "/api/quotes/history?page=2&limit=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.QuoteHistoryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(11), response.Total)
	assert.Equal(t, 2, response.Pages)
}
