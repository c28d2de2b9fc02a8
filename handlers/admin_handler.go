package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/anavidal/session_booking/database"
	"github.com/anavidal/session_booking/models"
	"github.com/anavidal/session_booking/notifications"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// GetDashboardStats aggregates the numbers shown on the admin landing page.
func GetDashboardStats(c *fiber.Ctx) error {
	var totalBookings, confirmedBookings, pendingBookings, cancelledBookings int64
	database.DB.Model(&models.Booking{}).Count(&totalBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", "CONFIRMED").Count(&confirmedBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", "PENDING_PAYMENT").Count(&pendingBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", "CANCELLED").Count(&cancelledBookings)

	// Revenue counts money actually captured, not refunded or pending intents.
	var totalRevenue int64
	database.DB.Model(&models.Payment{}).
		Where("status = ?", "SUCCEEDED").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalRevenue)

	var upcomingSessions int64
	today := time.Now().Truncate(24 * time.Hour)
	database.DB.Model(&models.Booking{}).
		Joins("JOIN availability_slots ON availability_slots.id = bookings.availability_slot_id").
		Where("bookings.status = ? AND availability_slots.date >= ?", "CONFIRMED", today).
		Count(&upcomingSessions)

	var recentBookings []models.Booking
	database.DB.
		Preload("AvailabilitySlot.Location").
		Preload("Payment").
		Order("created_at desc").
		Limit(10).
		Find(&recentBookings)

	return c.JSON(fiber.Map{
		"total_bookings":     totalBookings,
		"confirmed_bookings": confirmedBookings,
		"pending_bookings":   pendingBookings,
		"cancelled_bookings": cancelledBookings,
		"total_revenue":      totalRevenue,
		"upcoming_sessions":  upcomingSessions,
		"recent_bookings":    recentBookings,
	})
}

func AdminListBookings(c *fiber.Ctx) error {
	query := database.DB.
		Preload("AvailabilitySlot.Location").
		Preload("Payment").
		Preload("GoogleMeetEvent").
		Order("created_at desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if email := c.Query("email"); email != "" {
		query = query.Where("email = ?", email)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}
	return c.JSON(bookings)
}

func GetSettings(c *fiber.Ctx) error {
	var settings []models.SystemSetting
	if err := database.DB.Order("key asc").Find(&settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}

	response := make(map[string]string, len(settings))
	for _, setting := range settings {
		response[setting.Key] = setting.Value
	}
	return c.JSON(response)
}

type UpdateSettingRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
}

func UpdateSetting(c *fiber.Ctx) error {
	var req UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	setting := models.SystemSetting{Key: req.Key, Value: req.Value}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		log.Printf("🔥 Failed to upsert setting %s: %v", req.Key, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save setting"})
	}

	return c.JSON(fiber.Map{"message": "Setting saved", "key": req.Key, "value": req.Value})
}

// ListEmailTemplates merges stored overrides over the built-in defaults so the
// editor always shows the full template set.
func ListEmailTemplates(c *fiber.Ctx) error {
	var stored []models.EmailTemplate
	if err := database.DB.Find(&stored).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch templates"})
	}

	byName := make(map[string]models.EmailTemplate, len(stored))
	for _, tmpl := range stored {
		byName[tmpl.Name] = tmpl
	}

	templates := notifications.DefaultTemplates()
	for i := range templates {
		if override, ok := byName[templates[i].Name]; ok {
			templates[i] = override
		}
	}
	return c.JSON(templates)
}

type UpsertEmailTemplateRequest struct {
	Name        string `json:"name" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	HTMLContent string `json:"html_content" validate:"required"`
	IsActive    *bool  `json:"is_active"`
}

func UpsertEmailTemplate(c *fiber.Ctx) error {
	var req UpsertEmailTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	known := false
	for _, name := range notifications.TemplateNames() {
		if name == req.Name {
			known = true
			break
		}
	}
	if !known {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown template name"})
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	template := models.EmailTemplate{
		Name:        req.Name,
		Subject:     req.Subject,
		HTMLContent: req.HTMLContent,
		IsActive:    isActive,
	}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"subject", "html_content", "is_active", "updated_at"}),
	}).Create(&template).Error
	if err != nil {
		log.Printf("🔥 Failed to upsert template %s: %v", req.Name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save template"})
	}

	return c.JSON(fiber.Map{"message": "Template saved", "name": req.Name})
}

type SendTestEmailRequest struct {
	Template string `json:"template" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Language string `json:"language"`
}

var sampleTemplateVars = map[string]string{
	"firstName":    "Maria",
	"lastName":     "Silva",
	"date":         "15/09/2026",
	"time":         "10:00",
	"duration":     "60",
	"type":         "ONLINE",
	"reference":    "SAMPLE01",
	"link":         "https://meet.google.com/sample-link",
	"meetingBlock": `Meeting link: <a href="https://meet.google.com/sample-link">https://meet.google.com/sample-link</a>`,
	"cancelUrl":    "https://example.com/booking/cancel/sample",
	"reason":       "Test cancellation reason",
	"refundBlock":  "A full refund of 49.99 EUR will be processed.",
}

// SendTestEmail renders templates with sample data so an admin can preview
// them in a real inbox. "ALL" sends every template.
func SendTestEmail(c *fiber.Ctx) error {
	var req SendTestEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	language := req.Language
	if language == "" {
		language = "pt"
	}

	var names []string
	if strings.EqualFold(req.Template, "ALL") {
		names = notifications.TemplateNames()
	} else {
		names = []string{req.Template}
	}

	sent := make([]string, 0, len(names))
	for _, name := range names {
		subject, html, ok := notifications.RenderTemplate(name, language, sampleTemplateVars)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown template name"})
		}
		if err := notifications.SendEmail("Test Recipient", req.Email, "[TEST] "+subject, html); err != nil {
			log.Printf("🔥 Failed to send test email %s: %v", name, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send test email"})
		}
		sent = append(sent, name)
	}

	return c.JSON(fiber.Map{
		"message":   "Test email sent",
		"templates": sent,
		"mock_mode": notifications.IsMockMode(),
	})
}
