package sync

import (
	"github.com/gofiber/fiber/v2"
)

type SyncController struct {
	Service SyncService
}

func NewSyncController(service SyncService) *SyncController {
	return &SyncController{
		Service: service,
	}
}

// ResyncEntity godoc
func (ctrl *SyncController) ResyncEntity(c *fiber.Ctx) error {
	entityID := c.Params("id")

	results, err := ctrl.Service.ResyncEntity(c.Context(), entityID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Entity resynced",
		"data":    results,
	})
}

// ListLogs godoc
func (ctrl *SyncController) ListLogs(c *fiber.Ctx) error {
	filters := make(map[string]interface{})
	if entityID := c.Query("entity_id"); entityID != "" {
		filters["entity_id"] = entityID
	}
	if direction := c.Query("direction"); direction != "" {
		filters["direction"] = direction
	}
	if outcome := c.Query("outcome"); outcome != "" {
		filters["outcome"] = outcome
	}

	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 20))

	logs, err := ctrl.Service.ListLogs(c.Context(), filters, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": logs,
	})
}
