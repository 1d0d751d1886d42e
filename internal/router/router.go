package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/storyclass/storyclass-backend/internal/config"
	"github.com/storyclass/storyclass-backend/internal/handler"
	"github.com/storyclass/storyclass-backend/internal/middleware"
	"github.com/storyclass/storyclass-backend/internal/response"
	"github.com/storyclass/storyclass-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Example    *handler.ExampleHandler
	Material   *handler.MaterialHandler
	Evaluation *handler.EvaluationHandler
	Speech     *handler.SpeechHandler
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
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally.
	router.Use(response.RequestIDMiddleware())

	// Browser shell: forms, tabs, recorder and playback widgets.
	router.StaticFile("/", cfg.WebDir+"/index.html")
	router.Static("/static", cfg.WebDir+"/static")

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Auth (public login/register, validated session check) ─────────
	router.POST("/auth/login", handlers.Auth.Login)
	router.POST("/auth/register", handlers.Auth.Register)
	router.GET("/auth/me", middleware.RequireSession(authService), handlers.Auth.Me)

	// ─── Generation and media (opaque bearer) ──────────────────────────
	// These routes only require that some token is present; its raw value
	// becomes the owner key on persisted artifacts.
	protected := router.Group("/")
	protected.Use(middleware.RequireBearer())
	{
		protected.GET("/example", handlers.Example.GetExample)
		protected.POST("/generate", handlers.Material.Generate)
		protected.POST("/evaluate-answer", handlers.Evaluation.Evaluate)
		protected.POST("/transcribe", handlers.Speech.Transcribe)
		protected.POST("/tts", handlers.Speech.Synthesize)
		protected.GET("/tts", handlers.Speech.SynthesizeGET)
	}

	return router
}
