package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freight-quote-service/internal/models"
)

// PortRepository handles database operations for the port directory
type PortRepository interface {
	Search(ctx context.Context, query string, limit int) ([]*models.Port, error)
	List(ctx context.Context) ([]*models.Port, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Port, error)
	Create(ctx context.Context, port *models.Port) error
	Update(ctx context.Context, port *models.Port) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type portRepository struct {
	db *gorm.DB
}

// NewPortRepository creates a new port repository
func NewPortRepository(db *gorm.DB) PortRepository {
	return &portRepository{db: db}
}

// Search matches active ports whose name, city, code, or country contains
// the query, case-insensitively. Results keep the store's natural ordering.
func (r *portRepository) Search(ctx context.Context, query string, limit int) ([]*models.Port, error) {
	var ports []*models.Port
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("active = true").
		Where("name ILIKE ? OR city ILIKE ? OR code ILIKE ? OR country ILIKE ?", pattern, pattern, pattern, pattern).
		Limit(limit).
		Find(&ports).Error
	if err != nil {
		return nil, err
	}
	return ports, nil
}

// List returns all active ports
func (r *portRepository) List(ctx context.Context) ([]*models.Port, error) {
	var ports []*models.Port
	err := r.db.WithContext(ctx).
		Where("active = true").
		Order("name ASC").
		Find(&ports).Error
	if err != nil {
		return nil, err
	}
	return ports, nil
}

// GetByID retrieves a port by ID
func (r *portRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Port, error) {
	var port models.Port
	err := r.db.WithContext(ctx).First(&port, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &port, nil
}

// Create inserts a port
func (r *portRepository) Create(ctx context.Context, port *models.Port) error {
	if port.ID == uuid.Nil {
		port.ID = uuid.New()
	}
	port.Active = true
	return r.db.WithContext(ctx).Create(port).Error
}

// Update saves a port
func (r *portRepository) Update(ctx context.Context, port *models.Port) error {
	return r.db.WithContext(ctx).Save(port).Error
}

// Deactivate soft-deletes a port
func (r *portRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.Port{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":     false,
			"deleted_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
