// internal/models/admin.go
package models

import "gorm.io/gorm"

// Role variants for administrative accounts. "admin" is the primary role
// that can manage other administrators; "registrar" can only work with
// applicant records.
const (
	RoleAdmin     = "admin"
	RoleRegistrar = "registrar"
)

type Admin struct {
	gorm.Model
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" gorm:"unique;not null" binding:"required,email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // "admin" or "registrar"

	// The administrator who created this account, if any. The seeded
	// bootstrap admin has no registrar.
	RegisteredByID *uint  `json:"registered_by_id"`
	RegisteredBy   *Admin `gorm:"foreignKey:RegisteredByID" json:"registered_by,omitempty"`
}
