// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pmb-ti/accountrenewal/controller"
	"github.com/pmb-ti/accountrenewal/middleware"
)

// SetupRouter builds the engine. rateLimitClient may be nil to serve without
// rate limiting.
func SetupRouter(
	controllers *controller.Controllers,
	rateLimitClient *redis.Client,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())

	controllers.Health.RegisterRoutes(router)

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimiter(rateLimitClient, rateLimitRequests, rateLimitDuration))

	controllers.Renewal.RegisterRoutes(api)

	return router
}
