package models

import (
	"time"

	"github.com/google/uuid"
)

// PortType classifies a port/terminal location
type PortType string

const (
	PortTypeSea    PortType = "sea"
	PortTypeAir    PortType = "air"
	PortTypeInland PortType = "inland"
)

// PortSource records how a port entered the directory
type PortSource string

const (
	PortSourceManual   PortSource = "manual"
	PortSourceExternal PortSource = "external"
)

// Port is a named location in the searchable port directory. Ports are
// deactivated rather than deleted.
type Port struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string     `json:"name" gorm:"type:varchar(255);not null;index"`
	Code      string     `json:"code" gorm:"type:varchar(20);index"`
	Country   string     `json:"country" gorm:"type:varchar(100);not null"`
	City      string     `json:"city" gorm:"type:varchar(100)"`
	Type      PortType   `json:"type" gorm:"type:varchar(20);default:'sea'"`
	Lat       float64    `json:"lat" gorm:"type:decimal(10,6)"`
	Lon       float64    `json:"lon" gorm:"type:decimal(10,6)"`
	Source    PortSource `json:"source" gorm:"type:varchar(20);default:'manual'"`
	Active    bool       `json:"active" gorm:"not null;default:true;index"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// PortMatch is a single port search result. External candidates carry no id.
type PortMatch struct {
	ID      string     `json:"id,omitempty"`
	Name    string     `json:"name"`
	Code    string     `json:"code,omitempty"`
	Country string     `json:"country,omitempty"`
	City    string     `json:"city,omitempty"`
	Lat     float64    `json:"lat"`
	Lon     float64    `json:"lon"`
	Type    PortType   `json:"type,omitempty"`
	Source  PortSource `json:"source"`
}

// CreatePortRequest represents a request to create a port
type CreatePortRequest struct {
	Name    string   `json:"name" binding:"required"`
	Code    string   `json:"code"`
	Country string   `json:"country" binding:"required"`
	City    string   `json:"city"`
	Type    PortType `json:"type"`
	Lat     *float64 `json:"lat" binding:"required"`
	Lon     *float64 `json:"lon" binding:"required"`
}

// UpdatePortRequest represents a partial update to a port
type UpdatePortRequest struct {
	Name    *string   `json:"name"`
	Code    *string   `json:"code"`
	Country *string   `json:"country"`
	City    *string   `json:"city"`
	Type    *PortType `json:"type"`
	Lat     *float64  `json:"lat"`
	Lon     *float64  `json:"lon"`
}
