package capability

import (
	"github.com/gofiber/fiber/v2"
)

type CapabilityController struct {
	Service CapabilityService
}

func NewCapabilityController(service CapabilityService) *CapabilityController {
	return &CapabilityController{
		Service: service,
	}
}

// ListCapabilities godoc
func (ctrl *CapabilityController) ListCapabilities(c *fiber.Ctx) error {
	capabilities, err := ctrl.Service.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": capabilities,
	})
}

// SetCapability godoc
func (ctrl *CapabilityController) SetCapability(c *fiber.Ctx) error {
	name := c.Params("name")

	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.SetEnabled(c.Context(), name, body.Enabled); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Capability updated successfully",
	})
}
