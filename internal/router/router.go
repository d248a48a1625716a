package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/lumatask/core/api/handler"
)

type Handlers struct {
	State  *apiHandler.StateHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.POST("/api/v1/actions", handlers.State.SubmitAction)
	r.GET("/api/v1/state", handlers.State.GetState)
	r.GET("/api/v1/view", handlers.State.GetCurrentView)
	r.GET("/api/v1/views/{view}", handlers.State.GetView)
	r.GET("/api/v1/tags", handlers.State.GetTags)
	r.GET("/api/v1/notices", handlers.State.GetNotices)

	return r
}
