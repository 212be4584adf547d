// internal/models/vehicle.go
package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Vehicle categories offered in the catalog.
const (
	CategoryMinibus = "minibus"
	CategoryTruck   = "truck"
)

// Vehicle is a fleet catalog entry managed by administrators. It is a
// marketing/catalog record only and carries no relation to what an
// applicant asked for.
type Vehicle struct {
	gorm.Model
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Capacity    string         `json:"capacity"` // free text, e.g. "12 passengers"
	Category    string         `json:"category"` // "minibus" or "truck"
	ImageURLs   pq.StringArray `json:"image_urls" gorm:"type:text[]"`
}
