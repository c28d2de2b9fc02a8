package routes

import (
	"github.com/anavidal/session_booking/handlers"
	"github.com/anavidal/session_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func AvailabilityRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/availability", handlers.ListAvailability)

	admin := api.Group("/admin/availability", middleware.Protected(), middleware.AdminRequired())
	admin.Get("", handlers.AdminListAvailability)
	admin.Post("/bulk", handlers.BulkCreateAvailability)
	admin.Put("/:slotId", handlers.UpdateSlot)
	admin.Delete("/:slotId", handlers.DeleteSlot)
}
