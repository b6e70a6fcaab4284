package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/stemsi/elearning-backend/docs" // registers the swagger document
	"github.com/stemsi/elearning-backend/internal/config"
	"github.com/stemsi/elearning-backend/internal/handler"
	"github.com/stemsi/elearning-backend/internal/middleware"
	"github.com/stemsi/elearning-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Course      *handler.CourseHandler
	Health      *handler.HealthHandler
	Diagnostics *handler.DiagnosticsHandler // nil when diagnostics are disabled
}

// SetupRouter configures the Gin engine, middleware chain and routes.
// limiter may be nil to leave writes unthrottled.
func SetupRouter(cfg *config.Config, handlers *Handlers, limiter *middleware.RateLimiter, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// ─── CORS ──────────────────────────────────────────────────────────
	// Credentials are allowed, so origins and headers must be listed
	// explicitly. Browsers read a "*" as a literal header name here.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", response.HeaderRequestID},
		ExposeHeaders:    []string{response.HeaderRequestID, "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.Brotli(middleware.DefaultBrotliMinLength))
	router.Use(middleware.ErrorHandler(log))

	api := router.Group("/api")

	api.GET("/health", handlers.Health.Health)

	// ─── Courses ───────────────────────────────────────────────────────
	courses := api.Group("/courses")
	courses.Use(middleware.NoStore())
	{
		courses.GET("", handlers.Course.ListCourses)
		courses.GET("/categories", handlers.Course.ListCategories)
		courses.GET("/category/:category", handlers.Course.ListByCategory)
		courses.GET("/published", handlers.Course.ListPublished)
		courses.GET("/:id", handlers.Course.GetCourse)

		writes := courses.Group("")
		if limiter != nil {
			writes.Use(limiter.Middleware())
		}
		writes.POST("", handlers.Course.CreateCourse)
		writes.PUT("/:id", handlers.Course.UpdateCourse)
		writes.DELETE("/:id", handlers.Course.DeleteCourse)
	}

	// ─── Diagnostics ───────────────────────────────────────────────────
	if cfg.DiagnosticsEnabled() && handlers.Diagnostics != nil {
		diag := api.Group("/test")
		diag.Use(middleware.NoStore())
		{
			diag.GET("/database-status", handlers.Diagnostics.DatabaseStatus)
			diag.GET("/sample-courses", handlers.Diagnostics.SampleCourses)
		}
	}

	// ─── API Docs ──────────────────────────────────────────────────────
	if cfg.SwaggerEnabled() {
		docs := router.Group("/swagger")
		docs.Use(middleware.CacheControl(3600))
		docs.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	return router
}
