package entity

import (
	"go-lms-bridge/internal/common/api"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type EntityApi struct {
	Controller *EntityController
	Config     *config.Config
}

func NewEntityApi(controller *EntityController, config *config.Config) api.Route {
	return &EntityApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *EntityApi) Setup(app *fiber.App) {
	group := app.Group("/api/entities", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Post("/", a.Controller.CreateEntity)
	group.Get("/", a.Controller.ListEntities)
	group.Get("/:id", a.Controller.GetEntity)
	group.Delete("/:id", a.Controller.DeleteEntity)
}
