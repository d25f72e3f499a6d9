package reconcile

import (
	"go-lms-bridge/internal/common/api"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReconcileApi struct {
	Controller *ReconcileController
	Config     *config.Config
}

func NewReconcileApi(controller *ReconcileController, config *config.Config) api.Route {
	return &ReconcileApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *ReconcileApi) Setup(app *fiber.App) {
	group := app.Group("/api/reconcile", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Post("/run", a.Controller.RunReconcile)
	group.Get("/runs", a.Controller.ListRuns)
}
