package entity

import (
	common_models "go-lms-bridge/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type EntityController struct {
	Service EntityService
}

func NewEntityController(service EntityService) *EntityController {
	return &EntityController{
		Service: service,
	}
}

// CreateEntity godoc
func (ctrl *EntityController) CreateEntity(c *fiber.Ctx) error {
	var e Entity
	if err := c.BodyParser(&e); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.CreateEntity(c.Context(), &e); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Entity created successfully",
		"data":    e,
	})
}

// GetEntity godoc
func (ctrl *EntityController) GetEntity(c *fiber.Ctx) error {
	id := c.Params("id")

	e, err := ctrl.Service.GetEntity(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(e)
}

// ListEntities godoc
func (ctrl *EntityController) ListEntities(c *fiber.Ctx) error {
	entityType := common_models.EntityType(c.Query("type"))
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 50))

	entities, err := ctrl.Service.ListEntities(c.Context(), entityType, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": entities,
	})
}

// DeleteEntity godoc
func (ctrl *EntityController) DeleteEntity(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := ctrl.Service.DeleteEntity(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Entity deleted successfully",
	})
}
