package sync

import (
	"go-lms-bridge/internal/common/api"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SyncApi struct {
	Controller *SyncController
	Config     *config.Config
}

func NewSyncApi(controller *SyncController, config *config.Config) api.Route {
	return &SyncApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *SyncApi) Setup(app *fiber.App) {
	group := app.Group("/api/sync", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Post("/entities/:id/resync", a.Controller.ResyncEntity)
	group.Get("/logs", a.Controller.ListLogs)
}
