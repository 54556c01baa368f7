package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/masstest/masstest-backend/internal/authclient"
	"github.com/masstest/masstest-backend/internal/config"
	"github.com/masstest/masstest-backend/internal/handler"
	"github.com/masstest/masstest-backend/internal/middleware"
	"github.com/masstest/masstest-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	User     *handler.UserHandler
	Course   *handler.CourseHandler
	Question *handler.QuestionHandler
	Test     *handler.TestHandler
	Attempt  *handler.AttemptHandler
}

// SetupRouter configures the Gin engine. Claims resolution runs on every
// route; per-endpoint authorization lives in the handlers because each one
// pairs its own permission code with its own ownership facts.
func SetupRouter(resolver authclient.Resolver, handlers *Handlers, cfg *config.Config) *gin.Engine {
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Resolve claims once per request; handlers decide 401 vs 403.
	router.Use(middleware.ResolveClaims(resolver))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Users ─────────────────────────────────────────────────────────
	router.GET("/users", handlers.User.ListUsers)
	router.GET("/users/:id", handlers.User.GetUser)
	router.PUT("/users/:id", handlers.User.UpdateUser)

	// ─── Courses ───────────────────────────────────────────────────────
	router.GET("/courses", handlers.Course.ListCourses)
	router.POST("/courses", handlers.Course.CreateCourse)

	// ─── Questions ─────────────────────────────────────────────────────
	router.POST("/questions", handlers.Question.CreateQuestion)
	router.GET("/questions/:id", handlers.Question.GetQuestion)

	// ─── Tests ─────────────────────────────────────────────────────────
	router.GET("/tests", handlers.Test.ListTests)
	router.POST("/tests", handlers.Test.CreateTest)
	router.GET("/tests/:id", handlers.Test.GetTest)

	// ─── Attempts ──────────────────────────────────────────────────────
	router.POST("/tests/:id/attempts", handlers.Attempt.StartAttempt)
	router.GET("/attempts/:id", handlers.Attempt.GetAttempt)
	router.PUT("/attempts/:id/answer", handlers.Attempt.SubmitAnswer)
	router.POST("/attempts/:id/finish", handlers.Attempt.FinishAttempt)

	return router
}
