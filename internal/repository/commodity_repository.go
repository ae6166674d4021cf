package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freight-quote-service/internal/models"
)

// CommodityRepository handles database operations for commodities
type CommodityRepository interface {
	List(ctx context.Context) ([]*models.Commodity, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Commodity, error)
	Create(ctx context.Context, commodity *models.Commodity) error
	Update(ctx context.Context, commodity *models.Commodity) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type commodityRepository struct {
	db *gorm.DB
}

// NewCommodityRepository creates a new commodity repository
func NewCommodityRepository(db *gorm.DB) CommodityRepository {
	return &commodityRepository{db: db}
}

func (r *commodityRepository) List(ctx context.Context) ([]*models.Commodity, error) {
	var commodities []*models.Commodity
	err := r.db.WithContext(ctx).
		Where("active = true").
		Order("name ASC").
		Find(&commodities).Error
	if err != nil {
		return nil, err
	}
	return commodities, nil
}

func (r *commodityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Commodity, error) {
	var commodity models.Commodity
	err := r.db.WithContext(ctx).First(&commodity, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &commodity, nil
}

func (r *commodityRepository) Create(ctx context.Context, commodity *models.Commodity) error {
	if commodity.ID == uuid.Nil {
		commodity.ID = uuid.New()
	}
	commodity.Active = true
	return r.db.WithContext(ctx).Create(commodity).Error
}

func (r *commodityRepository) Update(ctx context.Context, commodity *models.Commodity) error {
	return r.db.WithContext(ctx).Save(commodity).Error
}

func (r *commodityRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.Commodity{}).
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
