package audit

import (
	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{
		Service: service,
	}
}

// ListLogs godoc
func (ctrl *AuditController) ListLogs(c *fiber.Ctx) error {
	filters := map[string]interface{}{}
	if action := c.Query("action"); action != "" {
		filters["action"] = action
	}
	if scope := c.Query("scope"); scope != "" {
		filters["scope"] = scope
	}
	if recordID := c.Query("record_id"); recordID != "" {
		filters["record_id"] = recordID
	}

	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 50))

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
