package models

import (
	"time"

	"github.com/google/uuid"
)

// TransportMode represents how cargo moves between origin and destination
type TransportMode string

const (
	ModeRoad TransportMode = "road"
	ModeSea  TransportMode = "sea"
)

// ServiceType represents a priced service on a rate card
type ServiceType string

const (
	ServiceLocalCharge ServiceType = "local_charge"
	ServiceFreight     ServiceType = "freight"
)

// TransitTime is an optional carrier-committed delivery window on a rate
// card. A zero Unit means no commitment and the ETA fallback table applies.
type TransitTime struct {
	Min  int    `json:"min"`
	Max  int    `json:"max"`
	Unit string `json:"unit"`
}

// Defined reports whether the rate card carries an explicit transit window.
func (t TransitTime) Defined() bool {
	return t.Unit != ""
}

// RateCard is a priced tariff template for a (country, mode, service)
// triple. At most one active card may exist per triple; deactivation is a
// soft flag so historical quotes keep their linkage.
type RateCard struct {
	ID      uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Country string        `json:"country" gorm:"type:varchar(10);not null;index:idx_rate_cards_triple"`
	Mode    TransportMode `json:"mode" gorm:"type:varchar(20);not null;index:idx_rate_cards_triple"`
	Service ServiceType   `json:"service" gorm:"type:varchar(50);not null;index:idx_rate_cards_triple"`

	// Tariff components, all non-negative
	Trucking      float64 `json:"trucking" gorm:"type:decimal(12,2);default:0"`
	Docs          float64 `json:"docs" gorm:"type:decimal(12,2);default:0"`
	Freight       float64 `json:"freight" gorm:"type:decimal(12,2);default:0"`
	OTHC          float64 `json:"othc" gorm:"type:decimal(12,2);default:0"`
	MinimumCharge float64 `json:"minimum_charge" gorm:"type:decimal(12,2);default:0"`

	Currency    string      `json:"currency" gorm:"type:varchar(10);default:'USD'"`
	TransitTime TransitTime `json:"transit_time" gorm:"embedded;embeddedPrefix:transit_"`

	Active    bool      `json:"active" gorm:"not null;default:true;index:idx_rate_cards_triple"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// CreateRateCardRequest represents a request to create a rate card
type CreateRateCardRequest struct {
	Country       string       `json:"country" binding:"required"`
	Mode          string       `json:"mode" binding:"required"`
	Service       string       `json:"service" binding:"required"`
	Trucking      float64      `json:"trucking" binding:"gte=0"`
	Docs          float64      `json:"docs" binding:"gte=0"`
	Freight       float64      `json:"freight" binding:"gte=0"`
	OTHC          float64      `json:"othc" binding:"gte=0"`
	MinimumCharge float64      `json:"minimum_charge" binding:"gte=0"`
	Currency      string       `json:"currency"`
	TransitTime   *TransitTime `json:"transit_time"`
}

// UpdateRateCardRequest represents a partial update to a rate card
type UpdateRateCardRequest struct {
	Country       *string      `json:"country"`
	Mode          *string      `json:"mode"`
	Service       *string      `json:"service"`
	Trucking      *float64     `json:"trucking" binding:"omitempty,gte=0"`
	Docs          *float64     `json:"docs" binding:"omitempty,gte=0"`
	Freight       *float64     `json:"freight" binding:"omitempty,gte=0"`
	OTHC          *float64     `json:"othc" binding:"omitempty,gte=0"`
	MinimumCharge *float64     `json:"minimum_charge" binding:"omitempty,gte=0"`
	Currency      *string      `json:"currency"`
	TransitTime   *TransitTime `json:"transit_time"`
	Active        *bool        `json:"active"`
}
