package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet_registry/internal/config"
	"fleet_registry/internal/models"
)

// SubmitContactMessage persists a message from the public contact form.
func SubmitContactMessage(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"omitempty,email"`
		Subject string `json:"subject"`
		Body    string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	msg := models.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Body:    input.Body,
	}
	if err := config.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not save message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "thank you for reaching out", "contactMessage": msg})
}

// ListContactMessages returns contact form submissions, newest first.
func ListContactMessages(c *gin.Context) {
	var messages []models.ContactMessage
	if err := config.DB.Order("created_at DESC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not list messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": messages})
}
