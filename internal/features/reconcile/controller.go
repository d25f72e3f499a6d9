package reconcile

import (
	"github.com/gofiber/fiber/v2"
)

type ReconcileController struct {
	Service ReconcileService
}

func NewReconcileController(service ReconcileService) *ReconcileController {
	return &ReconcileController{
		Service: service,
	}
}

// RunReconcile godoc
func (ctrl *ReconcileController) RunReconcile(c *fiber.Ctx) error {
	run, err := ctrl.Service.Run(c.Context(), TriggerManual)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Reconcile run finished",
		"data":    run,
	})
}

// ListRuns godoc
func (ctrl *ReconcileController) ListRuns(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 20))

	runs, err := ctrl.Service.ListRuns(c.Context(), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": runs,
	})
}
