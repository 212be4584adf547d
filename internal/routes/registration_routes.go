package routes

import (
	"fleet_registry/internal/controllers"
	"fleet_registry/internal/registration"

	"github.com/gin-gonic/gin"
)

// RegistrationRoutes exposes the public two-step registration flow plus the
// one-shot submission and the advisory uniqueness probe.
func RegistrationRoutes(r *gin.Engine, store *registration.Store) {
	api := r.Group("/api")
	{
		api.POST("/register/step1", controllers.RegisterStep1(store))
		api.POST("/register/step2", controllers.RegisterStep2(store))
		api.POST("/register", controllers.Register)
		api.GET("/check-uniqueness", controllers.CheckUniqueness)
	}
}
