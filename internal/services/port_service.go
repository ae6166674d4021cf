package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"freight-quote-service/internal/geo"
	"freight-quote-service/internal/models"
	"freight-quote-service/internal/repository"
)

const (
	minSearchLength     = 2
	localSearchLimit    = 10
	externalSearchLimit = 5
)

// PortService provides port search with geocoder fallback plus admin CRUD
type PortService interface {
	Search(ctx context.Context, query string) ([]models.PortMatch, error)
	List(ctx context.Context) ([]*models.Port, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Port, error)
	Create(ctx context.Context, req models.CreatePortRequest) (*models.Port, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdatePortRequest) (*models.Port, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type portService struct {
	ports    repository.PortRepository
	geocoder geo.Geocoder
	logger   *logrus.Entry
}

// NewPortService creates a new port service
func NewPortService(ports repository.PortRepository, geocoder geo.Geocoder, logger *logrus.Logger) PortService {
	return &portService{
		ports:    ports,
		geocoder: geocoder,
		logger:   logger.WithField("component", "services.port"),
	}
}

// Search matches the local directory first; when it yields nothing, falls
// back to the external geocoder with "port" appended to the query. Queries
// below the minimum length return empty without touching either.
func (s *portService) Search(ctx context.Context, query string) ([]models.PortMatch, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchLength {
		return []models.PortMatch{}, nil
	}

	ports, err := s.ports.Search(ctx, query, localSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("port search failed: %w", err)
	}

	if len(ports) > 0 {
		matches := make([]models.PortMatch, 0, len(ports))
		for _, p := range ports {
			matches = append(matches, models.PortMatch{
				ID:      p.ID.String(),
				Name:    p.Name,
				Code:    p.Code,
				Country: p.Country,
				City:    p.City,
				Lat:     p.Lat,
				Lon:     p.Lon,
				Type:    p.Type,
				Source:  p.Source,
			})
		}
		return matches, nil
	}

	result := s.geocoder.Geocode(ctx, query+" port", externalSearchLimit)
	switch result.Status {
	case geo.StatusFound:
		matches := make([]models.PortMatch, 0, len(result.Candidates))
		for _, c := range result.Candidates {
			matches = append(matches, models.PortMatch{
				Name:   c.DisplayName,
				Lat:    c.Lat,
				Lon:    c.Lon,
				Source: models.PortSourceExternal,
			})
		}
		return matches, nil
	case geo.StatusUnavailable:
		s.logger.WithField("query", query).Warn("External port search unavailable")
	default:
		s.logger.WithField("query", query).Debug("External port search found nothing")
	}

	return []models.PortMatch{}, nil
}

// List returns all active ports
func (s *portService) List(ctx context.Context) ([]*models.Port, error) {
	ports, err := s.ports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}
	return ports, nil
}

// Get retrieves a port by id
func (s *portService) Get(ctx context.Context, id uuid.UUID) (*models.Port, error) {
	port, err := s.ports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortNotFound
		}
		return nil, fmt.Errorf("failed to load port: %w", err)
	}
	return port, nil
}

// Create registers a manually entered port
func (s *portService) Create(ctx context.Context, req models.CreatePortRequest) (*models.Port, error) {
	portType := req.Type
	if portType == "" {
		portType = models.PortTypeSea
	}

	port := &models.Port{
		Name:    req.Name,
		Code:    req.Code,
		Country: req.Country,
		City:    req.City,
		Type:    portType,
		Lat:     *req.Lat,
		Lon:     *req.Lon,
		Source:  models.PortSourceManual,
	}

	if err := s.ports.Create(ctx, port); err != nil {
		return nil, fmt.Errorf("failed to create port: %w", err)
	}
	return port, nil
}

// Update applies a partial update to a port
func (s *portService) Update(ctx context.Context, id uuid.UUID, req models.UpdatePortRequest) (*models.Port, error) {
	port, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		port.Name = *req.Name
	}
	if req.Code != nil {
		port.Code = *req.Code
	}
	if req.Country != nil {
		port.Country = *req.Country
	}
	if req.City != nil {
		port.City = *req.City
	}
	if req.Type != nil {
		port.Type = *req.Type
	}
	if req.Lat != nil {
		port.Lat = *req.Lat
	}
	if req.Lon != nil {
		port.Lon = *req.Lon
	}

	if err := s.ports.Update(ctx, port); err != nil {
		return nil, fmt.Errorf("failed to update port: %w", err)
	}
	return port, nil
}

// Deactivate soft-deletes a port
func (s *portService) Deactivate(ctx context.Context, id uuid.UUID) error {
	err := s.ports.Deactivate(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPortNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to deactivate port: %w", err)
	}
	return nil
}
