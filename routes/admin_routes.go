package routes

import (
	"github.com/anavidal/session_booking/handlers"
	"github.com/anavidal/session_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/stats", handlers.GetDashboardStats)
	admin.Get("/bookings", handlers.AdminListBookings)
	admin.Get("/settings", handlers.GetSettings)
	admin.Post("/settings", handlers.UpdateSetting)
	admin.Get("/email-templates", handlers.ListEmailTemplates)
	admin.Post("/email-templates", handlers.UpsertEmailTemplate)
	admin.Post("/email-templates/test", handlers.SendTestEmail)
}
