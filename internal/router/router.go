package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pageza/forkcast/backend/internal/api"
	"github.com/pageza/forkcast/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	searchHandler *api.SearchHandler,
	recipeHandler *api.RecipeHandler,
	healthHandler *api.HealthHandler,
	searchLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://frontend:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	healthHandler.RegisterRoutes(router)

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Search is the expensive path; it carries the rate limit.
	search := v1.Group("")
	if searchLimiter != nil {
		search.Use(searchLimiter.RateLimitMiddleware())
	}
	searchHandler.RegisterRoutes(search)

	recipeHandler.RegisterRoutes(v1)

	return router
}
