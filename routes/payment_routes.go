package routes

import (
	"github.com/anavidal/session_booking/handlers"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payment := api.Group("/payments")
	payment.Post("/create-intent", handlers.CreatePaymentIntent)
	payment.Post("/confirm-mock", handlers.ConfirmMockPayment)

	// Authenticated by signature verification, not JWT.
	api.Post("/webhooks/stripe", handlers.HandleStripeWebhook)
}
