// internal/models/activity_log.go
package models

import "time"

// ActivityLog is an append-only audit entry. The application never updates
// or deletes rows; AdminID is nil for system-generated events such as
// self-service registrations.
type ActivityLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Action      string    `gorm:"size:64;not null" json:"action"`
	Description string    `gorm:"type:text" json:"description"`
	EntityType  string    `gorm:"size:64;not null" json:"entity_type"`
	EntityID    uint      `gorm:"index" json:"entity_id"`
	AdminID     *uint     `gorm:"index" json:"admin_id"`
	Admin       *Admin    `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
