package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_registry/internal/activity"
	"fleet_registry/internal/config"
	"fleet_registry/internal/middleware"
	"fleet_registry/internal/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// createAdminInput is the payload for creating an administrator account.
type createAdminInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// updateAdminInput lists the fields a primary admin may change on an
// account. Absent fields are left untouched.
type updateAdminInput struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// ListAdmins returns a page of administrator accounts, optionally filtered
// by a case-insensitive match on name or email. Page and count come from a
// single read transaction so they describe the same snapshot.
func ListAdmins(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	page := parsePositiveQuery(c, "page", 1)
	limit := parsePositiveQuery(c, "limit", defaultPageSize)
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var admins []models.Admin
	var total int64
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Admin{})
		if q != "" {
			like := "%" + q + "%"
			query = query.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
		}
		if err := query.Count(&total).Error; err != nil {
			return err
		}
		return query.Order("id").Offset((page - 1) * limit).Limit(limit).Find(&admins).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not list administrators"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": admins, "total": total, "page": page, "limit": limit})
}

// CreateAdmin registers a new administrator account and records who did it.
func CreateAdmin(c *gin.Context) {
	var input createAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	role, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not hash password"})
		return
	}

	performerID := middleware.CurrentAdminID(c)
	admin := models.Admin{
		FullName:       input.FullName,
		Email:          input.Email,
		PasswordHash:   hash,
		Role:           role,
		RegisteredByID: &performerID,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		if _, conflict := conflictField(err); conflict {
			c.JSON(http.StatusConflict, gin.H{"message": "email already in use"})
			return
		}
		logrus.WithError(err).Error("could not create administrator")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create administrator"})
		return
	}

	activity.Record(config.DB, &performerID, "admin_created", "admin", admin.ID,
		fmt.Sprintf("created %s account for %s", role, admin.Email))

	c.JSON(http.StatusCreated, gin.H{"admin": admin})
}

// GetAdmin fetches one administrator account.
func GetAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "administrator not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// UpdateAdmin applies a partial update to an administrator account.
// Changing the role of one's own account is rejected.
func UpdateAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "administrator not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		}
		return
	}

	var input updateAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	performerID := middleware.CurrentAdminID(c)
	if input.Role != nil {
		role, err := validateAndNormalizeRole(*input.Role)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if admin.ID == performerID && role != admin.Role {
			c.JSON(http.StatusForbidden, gin.H{"message": "administrators cannot change their own role"})
			return
		}
		admin.Role = role
	}
	if input.FullName != nil {
		admin.FullName = *input.FullName
	}
	if input.Email != nil {
		admin.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not hash password"})
			return
		}
		admin.PasswordHash = hash
	}

	if err := config.DB.Save(&admin).Error; err != nil {
		if _, conflict := conflictField(err); conflict {
			c.JSON(http.StatusConflict, gin.H{"message": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update administrator"})
		return
	}

	activity.Record(config.DB, &performerID, "admin_updated", "admin", admin.ID,
		fmt.Sprintf("updated account %s", admin.Email))

	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// DeleteAdmin removes an administrator account. Two guards apply: an admin
// never deletes their own account, and the last remaining primary admin
// cannot be deleted.
func DeleteAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	performerID := middleware.CurrentAdminID(c)
	if id == performerID {
		c.JSON(http.StatusForbidden, gin.H{"message": "administrators cannot delete their own account"})
		return
	}

	var admin models.Admin
	if err := config.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "administrator not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		}
		return
	}

	if admin.Role == models.RoleAdmin {
		var remaining int64
		if err := config.DB.Model(&models.Admin{}).
			Where("role = ? AND id <> ?", models.RoleAdmin, admin.ID).
			Count(&remaining).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
			return
		}
		if remaining == 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "cannot delete the last primary admin"})
			return
		}
	}

	if err := config.DB.Delete(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not delete administrator"})
		return
	}

	activity.Record(config.DB, &performerID, "admin_deleted", "admin", admin.ID,
		fmt.Sprintf("deleted %s account %s", admin.Role, admin.Email))

	c.JSON(http.StatusOK, gin.H{"message": "administrator deleted"})
}

// ListActivity returns recent audit entries, newest first.
func ListActivity(c *gin.Context) {
	limit := parsePositiveQuery(c, "limit", 50)
	if limit > 200 {
		limit = 200
	}

	var entries []models.ActivityLog
	if err := config.DB.Preload("Admin").Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not load activity log"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = models.RoleRegistrar
	}
	switch role {
	case models.RoleAdmin, models.RoleRegistrar:
		return role, nil
	default:
		return "", errors.New("invalid role")
	}
}

// parsePositiveQuery reads an integer query parameter, falling back to def
// for missing or non-positive values.
func parsePositiveQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}
