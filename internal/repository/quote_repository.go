package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freight-quote-service/internal/models"
)

// ErrVersionConflict means a concurrent writer updated the quote between
// the load and the compare-and-swap write
var ErrVersionConflict = errors.New("quote was modified concurrently")

// QuoteRepository handles database operations for quotes
type QuoteRepository interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	List(ctx context.Context, limit, offset int) ([]*models.Quote, int64, error)
	ReplaceSnapshot(ctx context.Context, quote *models.Quote, expectedVersion int64) error
}

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

// Create persists a newly generated quote
func (r *quoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	if quote.Version == 0 {
		quote.Version = 1
	}
	return r.db.WithContext(ctx).Create(quote).Error
}

// GetByID retrieves a quote by ID
func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// List retrieves quotes newest-first with pagination
func (r *quoteRepository) List(ctx context.Context, limit, offset int) ([]*models.Quote, int64, error) {
	var quotes []*models.Quote
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Quote{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&quotes).Error
	if err != nil {
		return nil, 0, err
	}

	return quotes, total, nil
}

// ReplaceSnapshot writes a fully recomputed quote with a compare-and-swap
// on the version column. The derived price fields are always written
// together, never patched piecemeal.
func (r *quoteRepository) ReplaceSnapshot(ctx context.Context, quote *models.Quote, expectedVersion int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ? AND version = ?", quote.ID, expectedVersion).
		Updates(map[string]interface{}{
			"origin":               quote.Origin,
			"destination":          quote.Destination,
			"commodity":            quote.Commodity,
			"mode":                 quote.Mode,
			"country":              quote.Country,
			"distance_km":          quote.DistanceKm,
			"container_max_weight": quote.ContainerMaxWeight,
			"container_quantity":   quote.ContainerQuantity,
			"chargeable_weight":    quote.ChargeableWeight,
			"quotes":               quote.Lines,
			"converted":            quote.Converted,
			"version":              expectedVersion + 1,
			"updated_at":           time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	quote.Version = expectedVersion + 1
	return nil
}
