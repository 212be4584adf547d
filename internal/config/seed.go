package config

import (
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fleet_registry/internal/models"
)

// EnsureDefaultAdmin guarantees at least one primary admin exists. The
// system requires a primary admin at all times (deletion of the last one is
// blocked), so a fresh database gets a bootstrap account from the seed
// config.
func EnsureDefaultAdmin(db *gorm.DB, cfg *Config) error {
	var count int64
	if err := db.Model(&models.Admin{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{
		FullName:     cfg.Seed.AdminName,
		Email:        cfg.Seed.AdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logrus.WithField("email", admin.Email).Warn("seeded default primary admin – change the password immediately")
	return nil
}
