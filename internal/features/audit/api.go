package audit

import (
	"go-lms-bridge/internal/common/api"
	"go-lms-bridge/internal/config"
	"go-lms-bridge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	Controller *AuditController
	Config     *config.Config
}

func NewAuditApi(controller *AuditController, config *config.Config) api.Route {
	return &AuditApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *AuditApi) Setup(app *fiber.App) {
	group := app.Group("/api/audit", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/logs", a.Controller.ListLogs)
}
