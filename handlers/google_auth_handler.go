package handlers

import (
	"log"

	"github.com/anavidal/session_booking/database"
	"github.com/anavidal/session_booking/meetings"
	"github.com/anavidal/session_booking/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// GoogleAuthorize redirects the admin's browser to the Google consent screen.
func GoogleAuthorize(c *fiber.Ctx) error {
	return c.Redirect(meetings.GenerateAuthURL(), fiber.StatusTemporaryRedirect)
}

// GoogleCallback receives the OAuth authorization code, exchanges it for a
// refresh token and persists it so meeting creation works across restarts.
func GoogleCallback(c *fiber.Ctx) error {
	if errParam := c.Query("error"); errParam != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Authorization was denied: " + errParam})
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing authorization code"})
	}

	refreshToken, err := meetings.ExchangeCode(code)
	if err != nil {
		log.Printf("🔥 Google token exchange failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to exchange authorization code"})
	}

	description := "OAuth refresh token for calendar access"
	setting := models.SystemSetting{
		Key:         "GOOGLE_REFRESH_TOKEN",
		Value:       refreshToken,
		Description: &description,
	}
	err = database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		log.Printf("🔥 Failed to store Google refresh token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store credentials"})
	}

	log.Println("✅ Google Calendar connected")
	return c.JSON(fiber.Map{"message": "Google Calendar connected successfully"})
}
