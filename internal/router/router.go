package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/esatlab/insight-backend/internal/config"
	"github.com/esatlab/insight-backend/internal/handler"
	"github.com/esatlab/insight-backend/internal/middleware"
	"github.com/esatlab/insight-backend/internal/response"
	"github.com/esatlab/insight-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Session     *handler.SessionHandler
	Paper       *handler.PaperHandler
	Roadmap     *handler.RoadmapHandler
	Leaderboard *handler.LeaderboardHandler
	StudentMgmt *handler.StudentManagementHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/register", handlers.Auth.StudentRegister)
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.GetStudentProfile)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetAdminProfile)
	}

	// ─── 2. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		// Papers (read-only catalogue)
		studentAPI.GET("/papers", handlers.Paper.List)
		studentAPI.GET("/papers/:id", handlers.Paper.Get)
		studentAPI.GET("/papers/:id/conversion", handlers.Paper.GetConversionTable)
		studentAPI.GET("/tables/:exam/:section", middleware.CacheControl(300), handlers.Paper.GetPercentileTable)

		// Practice sessions
		studentAPI.POST("/sessions", handlers.Session.Create)
		studentAPI.GET("/sessions", handlers.Session.List)
		studentAPI.GET("/sessions/history", handlers.Session.History)
		studentAPI.GET("/sessions/:id", handlers.Session.Get)
		studentAPI.PUT("/sessions/:id/answers", handlers.Session.SaveAnswers)
		studentAPI.GET("/sessions/:id/report", handlers.Session.GetReport)
		studentAPI.POST("/sessions/:id/finalize", handlers.Session.Finalize)

		// Roadmap
		studentAPI.GET("/roadmap", handlers.Roadmap.View)
		studentAPI.GET("/roadmap/completion", handlers.Roadmap.Completion)
		studentAPI.POST("/roadmap/steps", handlers.Roadmap.AddStep)
		studentAPI.POST("/roadmap/steps/:id/toggle", handlers.Roadmap.ToggleStep)
		studentAPI.DELETE("/roadmap/steps/:id", handlers.Roadmap.DeleteStep)

		// Leaderboard
		studentAPI.GET("/leaderboard/:exam", middleware.CacheControl(60), handlers.Leaderboard.Top)
		studentAPI.GET("/leaderboard/:exam/me", handlers.Leaderboard.Me)
	}

	// ─── 3. WebSocket Group (Student WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireStudentWSAuth(authService))
	{
		ws.GET("/sessions/:id/stream", handlers.WS.SessionMarkingStream)
	}

	// ─── 4. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Student management
		adminAPI.GET("/students", handlers.StudentMgmt.List)
		adminAPI.GET("/students/:id", handlers.StudentMgmt.Get)
		adminAPI.POST("/students", handlers.StudentMgmt.Create)
		adminAPI.PUT("/students/:id", handlers.StudentMgmt.Update)
		adminAPI.DELETE("/students/:id", handlers.StudentMgmt.Delete)

		// Paper and table management
		adminAPI.POST("/papers", handlers.Paper.Create)
		adminAPI.DELETE("/papers/:id", handlers.Paper.Delete)
		adminAPI.PUT("/papers/:id/conversion", handlers.Paper.ReplaceConversionTable)
		adminAPI.PUT("/tables/:exam/:section", handlers.Paper.ReplacePercentileTable)
	}

	return router
}
