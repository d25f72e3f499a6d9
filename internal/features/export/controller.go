package export

import (
	"fmt"

	common_models "go-lms-bridge/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	Service ExportService
}

func NewExportController(service ExportService) *ExportController {
	return &ExportController{
		Service: service,
	}
}

// ExportSettings godoc
func (ctrl *ExportController) ExportSettings(c *fiber.Ctx) error {
	entityType := common_models.EntityType(c.Query("type", string(common_models.EntityTypeCourse)))

	data, filename, err := ctrl.Service.ExportSettings(c.Context(), entityType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}
