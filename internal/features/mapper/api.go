package mapper

import (
	"go-lms-bridge/internal/common/api"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MapperApi struct {
	Controller *MapperController
	Config     *config.Config
}

func NewMapperApi(controller *MapperController, config *config.Config) api.Route {
	return &MapperApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *MapperApi) Setup(app *fiber.App) {
	group := app.Group("/api/mapper", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/mappings/:type", a.Controller.ListMappings)
	group.Get("/custom", a.Controller.ListCustomMappings)
	group.Post("/custom", a.Controller.CreateCustomMapping)
	group.Delete("/custom/:id", a.Controller.DeleteCustomMapping)
}
