package models

import (
	"time"

	"github.com/google/uuid"
)

// Commodity is quoting reference data for the goods being shipped
type Commodity struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Code        string     `json:"code" gorm:"type:varchar(50)"`
	Description string     `json:"description" gorm:"type:text"`
	Active      bool       `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// CreateCommodityRequest represents a request to create a commodity
type CreateCommodityRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// UpdateCommodityRequest represents a partial update to a commodity
type UpdateCommodityRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}
