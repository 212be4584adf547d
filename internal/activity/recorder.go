// Package activity writes append-only audit entries.
package activity

import (
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_registry/internal/models"
)

// Write inserts an audit entry immediately.
func Write(db *gorm.DB, entry models.ActivityLog) error {
	return db.Create(&entry).Error
}

// Record writes an audit entry in the background. Failures are logged and
// swallowed: an audit write must never fail or delay the operation that
// triggered it. adminID is nil for system-generated events.
func Record(db *gorm.DB, adminID *uint, action, entityType string, entityID uint, description string) {
	entry := models.ActivityLog{
		Action:      action,
		Description: description,
		EntityType:  entityType,
		EntityID:    entityID,
		AdminID:     adminID,
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithField("panic", r).Error("activity log write panicked")
			}
		}()
		if err := Write(db, entry); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"action":      action,
				"entity_type": entityType,
				"entity_id":   entityID,
			}).Warn("activity log write failed")
		}
	}()
}
