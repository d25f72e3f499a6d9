package mapper

import (
	common_models "go-lms-bridge/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type MapperController struct {
	Service MapperService
}

func NewMapperController(service MapperService) *MapperController {
	return &MapperController{
		Service: service,
	}
}

// ListMappings godoc
func (ctrl *MapperController) ListMappings(c *fiber.Ctx) error {
	entityType := common_models.EntityType(c.Params("type"))
	if !entityType.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid entity type",
		})
	}

	entries := ctrl.Service.Entries(entityType)
	out := make([]fiber.Map, 0, len(entries))
	for _, entry := range entries {
		targets := make([]string, 0, len(entry.Targets))
		for _, target := range entry.Targets {
			targets = append(targets, target.Name())
		}
		out = append(out, fiber.Map{
			"path":          entry.Path,
			"mode":          entry.Mode,
			"canonical_key": entry.CanonicalKey,
			"targets":       targets,
			"capability":    entry.Capability,
			"default":       entry.Default,
		})
	}

	return c.JSON(fiber.Map{
		"data": out,
	})
}

// ListCustomMappings godoc
func (ctrl *MapperController) ListCustomMappings(c *fiber.Ctx) error {
	entityType := common_models.EntityType(c.Query("type"))

	mappings, err := ctrl.Service.ListCustomMappings(c.Context(), entityType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": mappings,
	})
}

// CreateCustomMapping godoc
func (ctrl *MapperController) CreateCustomMapping(c *fiber.Ctx) error {
	var mapping CustomMapping
	if err := c.BodyParser(&mapping); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	created, err := ctrl.Service.CreateCustomMapping(c.Context(), &mapping)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Custom mapping created successfully",
		"data":    created,
	})
}

// DeleteCustomMapping godoc
func (ctrl *MapperController) DeleteCustomMapping(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := ctrl.Service.DeleteCustomMapping(c.Context(), id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Custom mapping deleted successfully",
	})
}
