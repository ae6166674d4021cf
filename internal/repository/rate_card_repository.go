package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"freight-quote-service/internal/models"
)

// ErrDuplicateRateCard means an active card already exists for the
// (country, mode, service) triple. Enforced at write time so lookups never
// see ambiguous duplicates.
var ErrDuplicateRateCard = errors.New("an active rate card already exists for this country/mode/service")

// RateCardRepository handles database operations for rate cards
type RateCardRepository interface {
	Lookup(ctx context.Context, country string, mode models.TransportMode, service models.ServiceType) (*models.RateCard, error)
	List(ctx context.Context) ([]*models.RateCard, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.RateCard, error)
	Create(ctx context.Context, card *models.RateCard) error
	Update(ctx context.Context, card *models.RateCard) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type rateCardRepository struct {
	db *gorm.DB
}

// NewRateCardRepository creates a new rate card repository
func NewRateCardRepository(db *gorm.DB) RateCardRepository {
	return &rateCardRepository{db: db}
}

// Lookup finds the active rate card for a triple. Oldest active card wins
// so pre-existing duplicates cannot make reads fail.
func (r *rateCardRepository) Lookup(ctx context.Context, country string, mode models.TransportMode, service models.ServiceType) (*models.RateCard, error) {
	var card models.RateCard
	err := r.db.WithContext(ctx).
		Where("country = ? AND mode = ? AND service = ? AND active = true", country, mode, service).
		Order("created_at ASC").
		First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// List returns all active rate cards
func (r *rateCardRepository) List(ctx context.Context) ([]*models.RateCard, error) {
	var cards []*models.RateCard
	err := r.db.WithContext(ctx).
		Where("active = true").
		Order("country ASC, mode ASC, service ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// GetByID retrieves a rate card by ID
func (r *rateCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RateCard, error) {
	var card models.RateCard
	err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Create inserts a rate card, rejecting a second active card per triple.
// The count check gives the friendly error on the common path; the partial
// unique index on (country, mode, service) WHERE active catches concurrent
// writers the count cannot see.
func (r *rateCardRepository) Create(ctx context.Context, card *models.RateCard) error {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	card.Active = true

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoActiveDuplicate(tx, card, uuid.Nil); err != nil {
			return err
		}
		if err := tx.Create(card).Error; err != nil {
			return translateDuplicate(err)
		}
		return nil
	})
}

// Update saves a rate card, re-checking the single-active invariant when
// the card stays (or becomes) active
func (r *rateCardRepository) Update(ctx context.Context, card *models.RateCard) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if card.Active {
			if err := assertNoActiveDuplicate(tx, card, card.ID); err != nil {
				return err
			}
		}
		if err := tx.Save(card).Error; err != nil {
			return translateDuplicate(err)
		}
		return nil
	})
}

// Deactivate soft-deletes a rate card; the row is never removed
func (r *rateCardRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.RateCard{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Postgres unique_violation
const pgUniqueViolation = "23505"

// translateDuplicate maps a unique-index violation from the active-triple
// index onto ErrDuplicateRateCard; anything else passes through unchanged.
func translateDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateRateCard
	}
	return err
}

func assertNoActiveDuplicate(tx *gorm.DB, card *models.RateCard, excludeID uuid.UUID) error {
	var count int64
	query := tx.Model(&models.RateCard{}).
		Where("country = ? AND mode = ? AND service = ? AND active = true", card.Country, card.Mode, card.Service)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateRateCard
	}
	return nil
}
