package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nthumods/mods-backend/internal/config"
	"github.com/nthumods/mods-backend/internal/handler"
	"github.com/nthumods/mods-backend/internal/middleware"
	"github.com/nthumods/mods-backend/internal/response"
	"github.com/nthumods/mods-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Session   *handler.SessionHandler
	Course    *handler.CourseHandler
	Facet     *handler.FacetHandler
	Timetable *handler.TimetableHandler
	Export    *handler.ExportHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// searchLimiter may be nil to disable rate limiting.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	searchLimiter *middleware.RateLimiter,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// Restricted to AllowedOrigins when set, otherwise open for local dev.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", middleware.AdminKeyHeader}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "semester": cfg.CurrentSemester})
	})

	// ─── 0. Downloads (Public) ─────────────────────────────────────────
	// Link targets generated for shared timetables.
	downloads := router.Group("/timetable")
	downloads.Use(middleware.CacheControl(5 * time.Minute))
	{
		downloads.GET("/calendar.ics", handlers.Export.Calendar)
		downloads.GET("/export.xlsx", handlers.Export.Workbook)
	}

	// ─── 1. Catalog (Public) ───────────────────────────────────────────
	catalog := router.Group("/api/v1")
	{
		catalog.POST("/session", handlers.Session.Create)

		search := catalog.Group("/courses")
		if searchLimiter != nil {
			search.Use(searchLimiter.Middleware())
		}
		search.GET("/search", handlers.Course.Search)
		search.GET("/:raw_id", handlers.Course.Get)

		// Facets pick their own Cache-Control: failed lists must not be cached.
		catalog.GET("/facets", handlers.Facet.List)
		catalog.GET("/departments", middleware.CacheControl(cfg.FacetCacheTTL), handlers.Course.Departments)

		catalog.GET("/shared", handlers.Timetable.Shared)
	}

	// ─── 2. Client Group (Client JWT) ──────────────────────────────────
	client := router.Group("/api/v1")
	client.Use(middleware.RequireClientJWT(authService), middleware.NoStore())
	{
		timetableGroup := client.Group("/timetable/:semester")
		{
			timetableGroup.GET("", handlers.Timetable.View)
			timetableGroup.DELETE("", handlers.Timetable.Clear)
			timetableGroup.GET("/courses", handlers.Timetable.ListCourses)
			timetableGroup.POST("/courses", handlers.Timetable.AddCourse)
			timetableGroup.DELETE("/courses/:raw_id", handlers.Timetable.DeleteCourse)
			timetableGroup.POST("/import", handlers.Timetable.Import)
		}

		client.GET("/preferences", handlers.Timetable.GetPreferences)
		client.PUT("/preferences", handlers.Timetable.UpdatePreferences)
	}

	// ─── 3. Admin Group (Admin Key) ────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminKey(authService))
	{
		adminAPI.POST("/facets/refresh", handlers.Facet.Refresh)
	}

	return router
}
