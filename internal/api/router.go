package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/marginlab/ccpmargin/internal/middleware"
)

// requestTimeout bounds one simulation request end to end. Pricing a large
// book is CPU work, not I/O, so this is generous.
const requestTimeout = 30 * time.Second

// NewRouter builds the Gin engine with middlewares, swagger and the
// /api/v1 routes. Health probes are registered separately in app.InitializeApp.
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)

	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulations", handler.RunSimulation)
		v1.GET("/simulations", handler.ListSimulations)
		v1.GET("/simulations/:run_id", handler.GetSimulation)
	}

	return router
}
