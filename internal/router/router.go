package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailhub/retailhub-backend/config"
	"github.com/retailhub/retailhub-backend/internal/app/controller"
	"github.com/retailhub/retailhub-backend/internal/middleware"
	"github.com/retailhub/retailhub-backend/pkg/metrics"
)

type Router struct {
	retailerController *controller.RetailerController
	feedController     *controller.FeedController
	httpMetrics        *metrics.HTTPMetrics
	config             *config.Config
}

func NewRouter(
	retailerController *controller.RetailerController,
	feedController *controller.FeedController,
	cfg *config.Config,
) *Router {
	return &Router{
		retailerController: retailerController,
		feedController:     feedController,
		httpMetrics:        metrics.NewHTTPMetrics("retailhub"),
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(r.httpMetrics.Middleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "RetailHub API is running",
			"backend": r.config.Store.Backend,
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	retailers := router.Group("/retailers")
	{
		retailers.GET("", r.retailerController.ListRetailers)
		retailers.POST("", r.retailerController.CreateRetailer)
		retailers.DELETE("", r.retailerController.DeleteRetailer)
	}
	router.GET("/categories", r.retailerController.ListCategories)

	if r.feedController != nil {
		router.GET("/ws", r.feedController.Subscribe)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
