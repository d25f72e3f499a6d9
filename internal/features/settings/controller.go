package settings

import (
	"github.com/gofiber/fiber/v2"
)

type SettingsController struct {
	Service SettingsService
}

func NewSettingsController(service SettingsService) *SettingsController {
	return &SettingsController{
		Service: service,
	}
}

// GetSettings godoc
func (ctrl *SettingsController) GetSettings(c *fiber.Ctx) error {
	entityID := c.Params("entityId")

	settings, err := ctrl.Service.GetSettings(c.Context(), entityID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": settings,
	})
}

// UpdateSettings godoc
func (ctrl *SettingsController) UpdateSettings(c *fiber.Ctx) error {
	entityID := c.Params("entityId")

	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := ctrl.Service.UpdateSettings(c.Context(), entityID, payload)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Settings updated",
		"data":    result,
	})
}
