package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by each feature's API registrar. Fx collects all
// registrars into a single group and mounts them on the Fiber app at startup.
type Route interface {
	Setup(app *fiber.App)
}
