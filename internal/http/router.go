// Package http wires the gin router: public form endpoints, the admin
// session flow, and the protected inquiry console.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/adscalemedia/adsite-backend/internal/config"
	"github.com/adscalemedia/adsite-backend/internal/http/handlers"
	"github.com/adscalemedia/adsite-backend/internal/ratelimit"
	"github.com/adscalemedia/adsite-backend/internal/session"
	"github.com/adscalemedia/adsite-backend/internal/storage"
)

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(
	store storage.Storage,
	sessions session.Store,
	limiter *ratelimit.Limiter,
	cfg config.Config,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())
	r.Use(corsMiddleware(cfg.CORS.Origins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := handlers.NewAuthHandler(store, sessions, cfg.Session)
	inquiryHandler := handlers.NewInquiryHandler(store, limiter)
	requireAuth := RequireAuth(store, sessions, cfg.Session)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.GET("/can-register", authHandler.CanRegister)
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		inquiries := api.Group("/inquiries")
		{
			inquiries.POST("", inquiryHandler.Create)
			inquiries.GET("", requireAuth, inquiryHandler.List)
			inquiries.GET("/:platform", requireAuth, inquiryHandler.ListByPlatform)
			inquiries.PATCH("/:id/remark", requireAuth, inquiryHandler.UpdateRemark)
			inquiries.DELETE("/:id", requireAuth, inquiryHandler.Delete)
		}
	}

	return r
}

// corsMiddleware allows the configured origins. Credentials stay enabled
// unless the wildcard origin is in play, matching browser rules for
// credentialed fetches.
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	})
}
