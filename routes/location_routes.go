package routes

import (
	"github.com/anavidal/session_booking/handlers"
	"github.com/anavidal/session_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func LocationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/locations", handlers.ListLocations)

	admin := api.Group("/admin/locations", middleware.Protected(), middleware.AdminRequired())
	admin.Get("", handlers.AdminListLocations)
	admin.Post("", handlers.CreateLocation)
	admin.Put("/:locationId", handlers.UpdateLocation)
	admin.Delete("/:locationId", handlers.DeleteLocation)
}
