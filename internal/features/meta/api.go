package meta

import (
	"go-lms-bridge/internal/common/api"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MetaApi struct {
	Controller *MetaController
	Config     *config.Config
}

func NewMetaApi(controller *MetaController, config *config.Config) api.Route {
	return &MetaApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *MetaApi) Setup(app *fiber.App) {
	group := app.Group("/api/meta", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/:entityId", a.Controller.GetAll)
	group.Get("/:entityId/:key", a.Controller.Get)
	group.Put("/:entityId/:key", a.Controller.Set)
	group.Delete("/:entityId/:key", a.Controller.Delete)
}
