package capability

import (
	"go-lms-bridge/internal/common/api"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CapabilityApi struct {
	Controller *CapabilityController
	Config     *config.Config
}

func NewCapabilityApi(controller *CapabilityController, config *config.Config) api.Route {
	return &CapabilityApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *CapabilityApi) Setup(app *fiber.App) {
	group := app.Group("/api/capabilities", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/", a.Controller.ListCapabilities)
	group.Put("/:name", a.Controller.SetCapability)
}
