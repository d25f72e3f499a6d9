package export

import (
	"go-lms-bridge/internal/common/api"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	Controller *ExportController
	Config     *config.Config
}

func NewExportApi(controller *ExportController, config *config.Config) api.Route {
	return &ExportApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *ExportApi) Setup(app *fiber.App) {
	group := app.Group("/api/export", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/settings", a.Controller.ExportSettings)
}
