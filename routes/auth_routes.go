package routes

import (
	"github.com/anavidal/session_booking/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", handlers.Login)

	// Google OAuth stays public: the callback arrives from the browser
	// redirect without a bearer token.
	google := auth.Group("/google")
	google.Get("/authorize", handlers.GoogleAuthorize)
	google.Get("/callback", handlers.GoogleCallback)
}
