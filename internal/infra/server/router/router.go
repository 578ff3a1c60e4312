// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sales-dashboard/backend/internal/integration/entrypoint/controller"
	"github.com/sales-dashboard/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers served by the router.
// A nil controller leaves its routes unregistered.
type Controllers struct {
	Health    *controller.HealthController
	Auth      *controller.AuthController
	Upload    *controller.UploadController
	Dashboard *controller.DashboardController
	Report    *controller.ReportController
}

// Middlewares groups the middleware used by the router.
type Middlewares struct {
	Auth            *middleware.AuthMiddleware
	LoginRateLimit  *middleware.RateLimiter
	UploadRateLimit *middleware.RateLimiter
	// RequestObserver, when set, records request durations.
	RequestObserver middleware.RequestObserver
	// MetricsHandler, when set, is served on GET /metrics.
	MetricsHandler http.Handler
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine      *gin.Engine
	controllers Controllers
	middlewares Middlewares
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(controllers Controllers, middlewares Middlewares) *Router {
	return &Router{
		controllers: controllers,
		middlewares: middlewares,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	if r.middlewares.RequestObserver != nil {
		r.engine.Use(middleware.Metrics(r.middlewares.RequestObserver))
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	if r.controllers.Health != nil {
		r.engine.GET("/health", r.controllers.Health.Check)
	}
	if r.middlewares.MetricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.middlewares.MetricsHandler))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if c := r.controllers.Auth; c != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/register", c.Register)
			auth.POST("/login", withLimiter(r.middlewares.LoginRateLimit, c.Login)...)
			auth.POST("/refresh", c.RefreshToken)
			auth.POST("/logout", c.Logout)
		}
	}

	if r.middlewares.Auth == nil {
		return
	}

	protected := v1.Group("")
	protected.Use(r.middlewares.Auth.Authenticate())

	if c := r.controllers.Upload; c != nil {
		uploads := protected.Group("/uploads")
		{
			uploads.POST("", withLimiter(r.middlewares.UploadRateLimit, c.Upload)...)
			uploads.GET("", c.List)
			uploads.DELETE("/:id", c.Delete)
		}
	}

	if c := r.controllers.Dashboard; c != nil {
		protected.GET("/dashboard", c.Get)
	}

	if c := r.controllers.Report; c != nil {
		protected.GET("/reports/export", c.Export)
	}
}

// withLimiter prepends the limiter middleware when one is configured.
func withLimiter(limiter *middleware.RateLimiter, handler gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{limiter.Middleware(), handler}
}
