package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/anavidal/session_booking/database"
	"github.com/anavidal/session_booking/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL and wipes
// the booking tables. Tests that need it are skipped when the variable is
// unset so the unit suite stays runnable without infrastructure.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Location{},
		&models.AvailabilitySlot{},
		&models.Booking{},
		&models.Payment{},
		&models.Coupon{},
		&models.GoogleMeetEvent{},
		&models.SystemSetting{},
	))

	db.Exec("TRUNCATE bookings, payments, google_meet_events, availability_slots, coupons CASCADE")
	database.DB = db
}

func bookingApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/v1/bookings", CreateBooking)
	return app
}

// Concurrent requests for the last seat of a slot must produce exactly one
// booking. The row lock in the creation transaction serializes the capacity
// check.
func TestCreateBookingCapacityUnderConcurrency(t *testing.T) {
	setupTestDB(t)
	app := bookingApp()

	slot := models.AvailabilitySlot{
		Date:          time.Now().AddDate(0, 0, 7),
		Time:          "10:00",
		Duration:      60,
		Type:          "ONLINE",
		SessionFormat: "INDIVIDUAL",
		Status:        "AVAILABLE",
		MaxCapacity:   1,
	}
	require.NoError(t, database.DB.Create(&slot).Error)

	const attempts = 8
	statuses := make([]int, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			body, _ := json.Marshal(map[string]interface{}{
				"slot_id":    slot.ID.String(),
				"type":       "ONLINE",
				"first_name": "Maria",
				"last_name":  "Silva",
				"email":      fmt.Sprintf("maria+%d@example.com", i),
				"phone":      "+351900000000",
				"language":   "pt",
			})
			req := httptest.NewRequest("POST", "/api/v1/bookings", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, 10000)
			if err != nil {
				return
			}
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	created := 0
	for _, status := range statuses {
		if status == fiber.StatusCreated {
			created++
		}
	}
	assert.Equal(t, 1, created, "exactly one booking should win the last seat")

	var count int64
	database.DB.Model(&models.Booking{}).
		Where("availability_slot_id = ? AND status <> ?", slot.ID, "CANCELLED").
		Count(&count)
	assert.Equal(t, int64(1), count)

	var updated models.AvailabilitySlot
	require.NoError(t, database.DB.First(&updated, "id = ?", slot.ID).Error)
	assert.Equal(t, "BOOKED", updated.Status)
}

func TestCreateBookingGroupSlotStaysOpen(t *testing.T) {
	setupTestDB(t)
	app := bookingApp()

	slot := models.AvailabilitySlot{
		Date:          time.Now().AddDate(0, 0, 7),
		Time:          "14:00",
		Duration:      90,
		Type:          "ONLINE",
		SessionFormat: "GROUP",
		Status:        "AVAILABLE",
		MaxCapacity:   3,
	}
	require.NoError(t, database.DB.Create(&slot).Error)

	body, _ := json.Marshal(map[string]interface{}{
		"slot_id":    slot.ID.String(),
		"type":       "ONLINE",
		"first_name": "Maria",
		"last_name":  "Silva",
		"email":      "maria@example.com",
		"phone":      "+351900000000",
		"language":   "pt",
	})
	req := httptest.NewRequest("POST", "/api/v1/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var updated models.AvailabilitySlot
	require.NoError(t, database.DB.First(&updated, "id = ?", slot.ID).Error)
	assert.Equal(t, "AVAILABLE", updated.Status, "group slot with spare seats stays bookable")
}

func TestCreateBookingRejectsTypeMismatch(t *testing.T) {
	setupTestDB(t)
	app := bookingApp()

	slot := models.AvailabilitySlot{
		Date:          time.Now().AddDate(0, 0, 7),
		Time:          "16:00",
		Duration:      60,
		Type:          "ONLINE",
		SessionFormat: "INDIVIDUAL",
		Status:        "AVAILABLE",
		MaxCapacity:   1,
	}
	require.NoError(t, database.DB.Create(&slot).Error)

	body, _ := json.Marshal(map[string]interface{}{
		"slot_id":    slot.ID.String(),
		"type":       "IN_PERSON",
		"first_name": "Maria",
		"last_name":  "Silva",
		"email":      "maria@example.com",
		"phone":      "+351900000000",
		"language":   "pt",
	})
	req := httptest.NewRequest("POST", "/api/v1/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
