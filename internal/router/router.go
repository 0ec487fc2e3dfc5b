package router

import (
	"github.com/gin-gonic/gin"

	"github.com/nutriday/backend/internal/api"
	"github.com/nutriday/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	recordHandler *api.RecordHandler,
	aiHandler *api.AIHandler,
	photoHandler *api.PhotoHandler,
	validator middleware.TokenValidator,
	aiLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()
	router.HandleMethodNotAllowed = true

	// CORS middleware
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	authHandler.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		recordHandler.RegisterRoutes(protected)
		photoHandler.RegisterRoutes(protected)

		// AI gateway routes, rate limited per user
		ai := protected.Group("")
		ai.Use(aiLimiter.RateLimitMiddleware())
		aiHandler.RegisterRoutes(ai)
	}

	return router
}
