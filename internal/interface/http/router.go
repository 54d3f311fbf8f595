package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/style-ai/internal/domain/auth"
	"github.com/yanqian/style-ai/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
// uploadsDir, when non-empty, is served under /uploads for disk storage.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service, uploadsDir string) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	if uploadsDir != "" {
		router.Static("/uploads", uploadsDir)
	}

	api := router.Group("/api/v1")
	{
		api.GET("/health", handler.Health)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", handler.Register)
			authGroup.POST("/login", handler.Login)
			authGroup.GET("/profile", authMiddleware(authSvc), handler.Profile)
		}

		outfits := api.Group("/outfits", authMiddleware(authSvc))
		{
			outfits.POST("", handler.GenerateOutfit)
			outfits.POST("/preview", handler.PreviewWeather)
			outfits.GET("/history", handler.OutfitHistory)
		}

		wardrobeGroup := api.Group("/wardrobe", authMiddleware(authSvc))
		{
			wardrobeGroup.POST("", handler.UploadWardrobeItem)
			wardrobeGroup.GET("", handler.ListWardrobeItems)
			wardrobeGroup.DELETE("/:id", handler.DeleteWardrobeItem)
		}
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
