package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PriceBreakdown is the itemized result of pricing one service. Components
// holds the per-mode line items (trucking/docs/othc or freight_cost/othc).
type PriceBreakdown struct {
	Subtotal       float64            `json:"subtotal"`
	MinimumApplied bool               `json:"minimum_applied"`
	Total          float64            `json:"total"`
	Components     map[string]float64 `json:"breakdown"`
}

// QuoteLine is the priced outcome for a single service on a quote
type QuoteLine struct {
	Price     float64        `json:"price"`
	ETA       string         `json:"eta"`
	Currency  string         `json:"currency"`
	Breakdown PriceBreakdown `json:"breakdown"`
}

// QuoteLineMap maps service name to its priced line, stored as JSONB
type QuoteLineMap map[ServiceType]QuoteLine

func (m QuoteLineMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *QuoteLineMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(QuoteLineMap)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported quote line map source: %T", value)
	}
	return json.Unmarshal(bytes, m)
}

// Quote owns a snapshot of the pricing computed at creation or at the last
// recompute. Later rate-card changes never alter a persisted quote. Version
// backs the compare-and-swap write path.
type Quote struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Origin      string        `json:"origin" gorm:"type:varchar(255);not null"`
	Destination string        `json:"destination" gorm:"type:varchar(255);not null"`
	Commodity   string        `json:"commodity" gorm:"type:varchar(255);not null"`
	Mode        TransportMode `json:"mode" gorm:"type:varchar(20);not null"`
	Country     string        `json:"country" gorm:"type:varchar(10);not null"`

	// Absent when the mode does not require geo-distance (sea)
	DistanceKm *float64 `json:"distance_km" gorm:"type:decimal(10,2)"`

	ContainerMaxWeight float64 `json:"container_max_weight" gorm:"type:decimal(12,2);not null"`
	ContainerQuantity  int     `json:"container_quantity" gorm:"not null"`
	ChargeableWeight   float64 `json:"chargeable_weight" gorm:"type:decimal(12,2);not null"`

	Lines QuoteLineMap `json:"quotes" gorm:"type:jsonb;column:quotes"`

	Converted bool      `json:"converted" gorm:"not null;default:false"`
	Version   int64     `json:"version" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// CreateQuoteRequest represents a request to generate a quote
type CreateQuoteRequest struct {
	Origin             string  `json:"origin" binding:"required"`
	Destination        string  `json:"destination" binding:"required"`
	ContainerMaxWeight float64 `json:"containerMaxWeight" binding:"required,gt=0"`
	ContainerQuantity  int     `json:"containerQuantity" binding:"required,gt=0"`
	Commodity          string  `json:"commodity" binding:"required"`
	Country            string  `json:"country"`
	Mode               string  `json:"mode"`
}

// UpdateQuoteRequest merges into the stored quote before a full recompute.
// Price fields are never patched directly.
type UpdateQuoteRequest struct {
	Origin             *string  `json:"origin"`
	Destination        *string  `json:"destination"`
	ContainerMaxWeight *float64 `json:"containerMaxWeight" binding:"omitempty,gt=0"`
	ContainerQuantity  *int     `json:"containerQuantity" binding:"omitempty,gt=0"`
	Commodity          *string  `json:"commodity"`
	Country            *string  `json:"country"`
	Mode               *string  `json:"mode"`
	Converted          *bool    `json:"converted"`
}

// CreateQuoteResponse is the payload returned from quote generation
type CreateQuoteResponse struct {
	QuoteID          string       `json:"quote_id"`
	DistanceKm       *float64     `json:"distance_km"`
	ChargeableWeight float64      `json:"chargeable_weight"`
	Quotes           QuoteLineMap `json:"quotes"`
}

// QuoteHistoryResponse is a paginated quote listing
type QuoteHistoryResponse struct {
	Quotes []*Quote `json:"quotes"`
	Total  int64    `json:"total"`
	Page   int      `json:"page"`
	Pages  int      `json:"pages"`
}
