package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"fleet_registry/internal/middleware"
	"fleet_registry/internal/registration"
)

// SetupRouter wires every route group onto a fresh engine. Middleware is
// installed before any route so the whole surface gets request logging,
// panic recovery and CORS.
func SetupRouter(store *registration.Store) *gin.Engine {
	r := gin.New()

	r.Use(ginlog.SetLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	AuthRoutes(r)
	RegistrationRoutes(r, store)
	ContactRoutes(r)
	AdminRoutes(r)

	return r
}
