package routes

import (
	"fleet_registry/internal/controllers"
	"fleet_registry/internal/middleware"
	"fleet_registry/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminRoutes wires the role-gated management surface. Administrator
// management and the activity log are primary-admin only; applicant and
// vehicle management also admit the registrar role, except that applicant
// deletion stays with the primary admin.
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin")

	admins := admin.Group("/admins", middleware.RequireAuthWithRoles(models.RoleAdmin))
	{
		admins.GET("", controllers.ListAdmins)
		admins.POST("", controllers.CreateAdmin)
		admins.GET("/:id", controllers.GetAdmin)
		admins.PATCH("/:id", controllers.UpdateAdmin)
		admins.DELETE("/:id", controllers.DeleteAdmin)
	}

	users := admin.Group("/users", middleware.RequireAuthWithRoles(models.RoleAdmin, models.RoleRegistrar))
	{
		users.GET("", controllers.ListApplicants)
		users.POST("", controllers.CreateApplicant)
		users.GET("/:id", controllers.GetApplicant)
		users.PATCH("/:id", controllers.UpdateApplicant)
		users.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), controllers.DeleteApplicant)
	}

	vehicles := admin.Group("/vehicles", middleware.RequireAuthWithRoles(models.RoleAdmin, models.RoleRegistrar))
	{
		vehicles.GET("", controllers.ListVehicles)
		vehicles.POST("", controllers.CreateVehicle)
		vehicles.GET("/:id", controllers.GetVehicle)
		vehicles.PATCH("/:id", controllers.UpdateVehicle)
		vehicles.DELETE("/:id", controllers.DeleteVehicle)
	}

	activity := admin.Group("/activity", middleware.RequireAuthWithRoles(models.RoleAdmin))
	{
		activity.GET("", controllers.ListActivity)
	}

	contact := admin.Group("/contact-messages", middleware.RequireAuthWithRoles(models.RoleAdmin, models.RoleRegistrar))
	{
		contact.GET("", controllers.ListContactMessages)
	}
}
