package routes

import (
	"github.com/anavidal/session_booking/handlers"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings")
	booking.Post("", handlers.CreateBooking)
	booking.Get("", handlers.ListBookings)
	booking.Get("/:id", handlers.GetBooking)
	booking.Post("/:id/cancel", handlers.CancelBooking)
}
