package routes

import (
	"fleet_registry/internal/controllers"

	"github.com/gin-gonic/gin"
)

func ContactRoutes(r *gin.Engine) {
	r.POST("/api/contact", controllers.SubmitContactMessage)
}
