package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartschedule/smartschedule/internal/container"
	handlers "github.com/smartschedule/smartschedule/internal/interface/http"
	"github.com/smartschedule/smartschedule/internal/interface/middleware"
	"github.com/smartschedule/smartschedule/pkg/helpers"
)

// AuthModule wires the credential endpoints.
// Public: POST /api/login, POST /api/signup
// Protected: POST /api/logout, GET /api/session
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get a tight per-IP limiter; a passthrough is
	// installed when redis is not configured.
	limiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())

	rg.POST("/login", limiter, m.Handler.Login)
	rg.POST("/signup", limiter, m.Handler.Signup)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetSessions(), m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/session", m.Handler.Session)
	}
}
