package meta

import (
	"github.com/gofiber/fiber/v2"
)

type MetaController struct {
	Service MetaService
}

func NewMetaController(service MetaService) *MetaController {
	return &MetaController{
		Service: service,
	}
}

// GetAll godoc
func (ctrl *MetaController) GetAll(c *fiber.Ctx) error {
	entityID := c.Params("entityId")

	values, err := ctrl.Service.GetAll(c.Context(), entityID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": values,
	})
}

// Get godoc
func (ctrl *MetaController) Get(c *fiber.Ctx) error {
	entityID := c.Params("entityId")
	key := c.Params("key")

	value, err := ctrl.Service.Get(c.Context(), entityID, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"key":   key,
		"value": value,
	})
}

// Set godoc
// This is the raw write surface legacy LMS code paths use; writes here
// drive reverse sync through the change notification.
func (ctrl *MetaController) Set(c *fiber.Ctx) error {
	entityID := c.Params("entityId")
	key := c.Params("key")

	var body struct {
		Value interface{} `json:"value"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := ctrl.Service.Set(c.Context(), entityID, key, body.Value)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Meta value updated successfully",
		"warnings": result.Warnings,
	})
}

// Delete godoc
func (ctrl *MetaController) Delete(c *fiber.Ctx) error {
	entityID := c.Params("entityId")
	key := c.Params("key")

	if err := ctrl.Service.Delete(c.Context(), entityID, key); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Meta value deleted successfully",
	})
}
