package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"freight-quote-service/internal/geo"
	"freight-quote-service/internal/models"
	"freight-quote-service/internal/repository"
)

// MockPortRepository is a mock implementation of repository.PortRepository
type MockPortRepository struct {
	mock.Mock
}

var _ repository.PortRepository = (*MockPortRepository)(nil)

func (m *MockPortRepository) Search(ctx context.Context, query string, limit int) ([]*models.Port, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]*models.Port), args.Error(1)
}

func (m *MockPortRepository) List(ctx context.Context) ([]*models.Port, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Port), args.Error(1)
}

func (m *MockPortRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Port, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Port), args.Error(1)
}

func (m *MockPortRepository) Create(ctx context.Context, port *models.Port) error {
	args := m.Called(ctx, port)
	return args.Error(0)
}

func (m *MockPortRepository) Update(ctx context.Context, port *models.Port) error {
	args := m.Called(ctx, port)
	return args.Error(0)
}

func (m *MockPortRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGeocoder is a mock implementation of geo.Geocoder
type MockGeocoder struct {
	mock.Mock
}

var _ geo.Geocoder = (*MockGeocoder)(nil)

func (m *MockGeocoder) Geocode(ctx context.Context, query string, limit int) geo.Result {
	args := m.Called(ctx, query, limit)
	return args.Get(0).(geo.Result)
}

func (m *MockGeocoder) Resolve(ctx context.Context, place string) (geo.Candidate, geo.ResolveStatus) {
	args := m.Called(ctx, place)
	return args.Get(0).(geo.Candidate), args.Get(1).(geo.ResolveStatus)
}

func newTestPortService(ports *MockPortRepository, geocoder *MockGeocoder) PortService {
	return NewPortService(ports, geocoder, testLogger())
}

func TestPortSearch_ShortQueryReturnsEmpty(t *testing.T) {
	ports := new(MockPortRepository)
	geocoder := new(MockGeocoder)
	svc := newTestPortService(ports, geocoder)

	matches, err := svc.Search(context.Background(), " s ")

	assert.NoError(t, err)
	assert.Empty(t, matches)
	ports.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything, mock.Anything)
}

func TestPortSearch_MinLengthCountsRunes(t *testing.T) {
	ports := new(MockPortRepository)
	geocoder := new(MockGeocoder)
	svc := newTestPortService(ports, geocoder)

	// One multi-byte character is still one character
	matches, err := svc.Search(context.Background(), "漢")

	assert.NoError(t, err)
	assert.Empty(t, matches)
	ports.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)

	// Two multi-byte characters clear the minimum
	ports.On("Search", mock.Anything, "漢字", 10).Return([]*models.Port{}, nil)
	geocoder.On("Geocode", mock.Anything, "漢字 port", 5).Return(geo.Result{Status: geo.StatusNotFound})

	matches, err = svc.Search(context.Background(), "漢字")
	assert.NoError(t, err)
	assert.Empty(t, matches)
	ports.AssertExpectations(t)
}

func TestPortSearch_LocalMatch(t *testing.T) {
	ports := new(MockPortRepository)
	geocoder := new(MockGeocoder)
	svc := newTestPortService(ports, geocoder)

	stored := &models.Port{
		ID:      uuid.New(),
		Name:    "Sihanoukville Autonomous Port",
		Code:    "KHSHV",
		Country: "KH",
		City:    "Sihanoukville",
		Lat:     10.6407,
		Lon:     103.5092,
		Type:    models.PortTypeSea,
		Source:  models.PortSourceManual,
	}
	ports.On("Search", mock.Anything, "sihanouk", 10).Return([]*models.Port{stored}, nil)

	matches, err := svc.Search(context.Background(), "sihanouk")

	assert.NoError(t, err)
	if assert.Len(t, matches, 1) {
		assert.Equal(t, stored.ID.String(), matches[0].ID)
		assert.Equal(t, "KHSHV", matches[0].Code)
		assert.Equal(t, models.PortSourceManual, matches[0].Source)
	}
	geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything, mock.Anything)
}

func TestPortSearch_ExternalFallback(t *testing.T) {
	ports := new(MockPortRepository)
	geocoder := new(MockGeocoder)
	svc := newTestPortService(ports, geocoder)

	ports.On("Search", mock.Anything, "rotterdam", 10).Return([]*models.Port{}, nil)
	geocoder.On("Geocode", mock.Anything, "rotterdam port", 5).Return(geo.Result{
		Status: geo.StatusFound,
		Candidates: []geo.Candidate{
			{DisplayName: "Port of Rotterdam, Netherlands", Lat: 51.9496, Lon: 4.1453},
		},
	})

	matches, err := svc.Search(context.Background(), "rotterdam")

	assert.NoError(t, err)
	if assert.Len(t, matches, 1) {
		assert.Empty(t, matches[0].ID)
		assert.Equal(t, "Port of Rotterdam, Netherlands", matches[0].Name)
		assert.Equal(t, models.PortSourceExternal, matches[0].Source)
	}
	geocoder.AssertExpectations(t)
}

func TestPortSearch_ExternalUnavailableDegradesToEmpty(t *testing.T) {
	ports := new(MockPortRepository)
	geocoder := new(MockGeocoder)
	svc := newTestPortService(ports, geocoder)

	ports.On("Search", mock.Anything, "rotterdam", 10).Return([]*models.Port{}, nil)
	geocoder.On("Geocode", mock.Anything, "rotterdam port", 5).Return(geo.Result{
		Status: geo.StatusUnavailable,
	})

	matches, err := svc.Search(context.Background(), "rotterdam")

	assert.NoError(t, err)
	assert.Empty(t, matches)
}

func TestPortCreate_DefaultsType(t *testing.T) {
	ports := new(MockPortRepository)
	svc := newTestPortService(ports, new(MockGeocoder))

	ports.On("Create", mock.Anything, mock.AnythingOfType("*models.Port")).Return(nil)

	lat, lon := 10.6407, 103.5092
	port, err := svc.Create(context.Background(), models.CreatePortRequest{
		Name:    "Sihanoukville Autonomous Port",
		Country: "KH",
		Lat:     &lat,
		Lon:     &lon,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.PortTypeSea, port.Type)
	assert.Equal(t, models.PortSourceManual, port.Source)
}

func TestPortDeactivate_NotFound(t *testing.T) {
	ports := new(MockPortRepository)
	svc := newTestPortService(ports, new(MockGeocoder))

	id := uuid.New()
	ports.On("Deactivate", mock.Anything, id).Return(gorm.ErrRecordNotFound)

	err := svc.Deactivate(context.Background(), id)
	assert.ErrorIs(t, err, ErrPortNotFound)
}
