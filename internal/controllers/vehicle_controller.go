package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"fleet_registry/internal/config"
	"fleet_registry/internal/models"
)

// CreateVehicle adds a catalog entry. Any authenticated admin role may
// manage the vehicle catalog.
func CreateVehicle(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Capacity    string   `json:"capacity"`
		Category    string   `json:"category" binding:"required"`
		ImageURLs   []string `json:"imageUrls"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid vehicle input: " + err.Error()})
		return
	}

	category, err := validateCategory(input.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	vehicle := models.Vehicle{
		Name:        input.Name,
		Description: input.Description,
		Capacity:    input.Capacity,
		Category:    category,
		ImageURLs:   pq.StringArray(input.ImageURLs),
	}
	if err := config.DB.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create vehicle"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// ListVehicles returns the whole catalog.
func ListVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := config.DB.Order("id").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not list vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// GetVehicle fetches one catalog entry.
func GetVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// UpdateVehicle applies a partial update. Supplying imageUrls replaces the
// ordered list wholesale.
func UpdateVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		}
		return
	}

	var input struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		Capacity    *string   `json:"capacity"`
		Category    *string   `json:"category"`
		ImageURLs   *[]string `json:"imageUrls"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if input.Name != nil {
		vehicle.Name = *input.Name
	}
	if input.Description != nil {
		vehicle.Description = *input.Description
	}
	if input.Capacity != nil {
		vehicle.Capacity = *input.Capacity
	}
	if input.Category != nil {
		category, err := validateCategory(*input.Category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		vehicle.Category = category
	}
	if input.ImageURLs != nil {
		vehicle.ImageURLs = pq.StringArray(*input.ImageURLs)
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update vehicle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// DeleteVehicle removes a catalog entry.
func DeleteVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		}
		return
	}

	if err := config.DB.Delete(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not delete vehicle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}

func validateCategory(categoryInput string) (string, error) {
	category := strings.ToLower(strings.TrimSpace(categoryInput))
	switch category {
	case models.CategoryMinibus, models.CategoryTruck:
		return category, nil
	default:
		return "", errors.New("category must be minibus or truck")
	}
}
