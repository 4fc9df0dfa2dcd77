package router

import (
	"github.com/smartschedule/smartschedule/internal/application"
	"github.com/smartschedule/smartschedule/internal/container"
	"github.com/smartschedule/smartschedule/internal/extractor"
	handlers "github.com/smartschedule/smartschedule/internal/interface/http"
	"github.com/smartschedule/smartschedule/internal/router/modules"
)

func buildAuthModule() *modules.AuthModule {
	svc := application.NewAuthService(
		container.GetUsers(),
		container.GetSessions(),
		container.GetJWT(),
		container.GetLogger(),
	)
	handler := handlers.NewAuthHandler(
		svc,
		container.GetLogger(),
		container.GetConfig().CookieDomain,
		container.GetConfig().CookieSecure,
	)
	return modules.NewAuthModule(handler, container.GetJWT())
}

func buildScheduleModule() *modules.ScheduleModule {
	loc := container.GetConfig().DisplayLocation()
	svc := application.NewScheduleService(
		container.GetEvents(),
		extractor.New(container.GetChatModel()),
		container.GetLogger(),
		loc,
	)
	handler := handlers.NewScheduleHandler(svc, container.GetLogger(), loc)
	return modules.NewScheduleModule(handler, container.GetJWT())
}

// InitModules initializes all application modules and registers them
// with the router registry. Called once during startup.
func InitModules(r *Registry) {
	r.Add(buildAuthModule())
	r.Add(buildScheduleModule())
}
