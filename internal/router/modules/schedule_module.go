package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartschedule/smartschedule/internal/container"
	handlers "github.com/smartschedule/smartschedule/internal/interface/http"
	"github.com/smartschedule/smartschedule/internal/interface/middleware"
	"github.com/smartschedule/smartschedule/pkg/helpers"
)

// ScheduleModule wires the event and calendar endpoints, all behind
// session auth.
type ScheduleModule struct {
	Handler *handlers.ScheduleHandler
	JWT     *helpers.JWTManager
}

func NewScheduleModule(h *handlers.ScheduleHandler, jwt *helpers.JWTManager) *ScheduleModule {
	return &ScheduleModule{Handler: h, JWT: jwt}
}

func (m *ScheduleModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetSessions(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("/schedule", m.Handler.Submit)
		auth.GET("/events", m.Handler.List)
		auth.DELETE("/events/:id", m.Handler.Delete)
		auth.GET("/calendar/:year/:month", m.Handler.Calendar)
		auth.POST("/calendar/prompt", m.Handler.DayPrompt)
		auth.GET("/calendar/export.ics", m.Handler.ExportICS)
	}
}
