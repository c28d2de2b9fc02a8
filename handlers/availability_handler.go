package handlers

import (
	"log"
	"time"

	"github.com/anavidal/session_booking/database"
	"github.com/anavidal/session_booking/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SlotResponse struct {
	ID              uuid.UUID        `json:"id"`
	LocationID      *uuid.UUID       `json:"location_id,omitempty"`
	Date            string           `json:"date"`
	Time            string           `json:"time"`
	Duration        int              `json:"duration"`
	Type            string           `json:"type"`
	SessionFormat   string           `json:"session_format"`
	Status          string           `json:"status"`
	Price           *int64           `json:"price,omitempty"`
	MaxCapacity     int              `json:"max_capacity"`
	CurrentBookings int              `json:"current_bookings"`
	Location        *models.Location `json:"location,omitempty"`
}

func slotResponse(slot *models.AvailabilitySlot) SlotResponse {
	return SlotResponse{
		ID:              slot.ID,
		LocationID:      slot.LocationID,
		Date:            slot.Date.Format("2006-01-02"),
		Time:            slot.Time,
		Duration:        slot.Duration,
		Type:            slot.Type,
		SessionFormat:   slot.SessionFormat,
		Status:          slot.Status,
		Price:           slot.Price,
		MaxCapacity:     slot.MaxCapacity,
		CurrentBookings: len(slot.Bookings),
		Location:        slot.Location,
	}
}

// ListAvailability returns bookable slots for the requested session type,
// filtered down to slots with spare capacity that are not in the past.
func ListAvailability(c *fiber.Ctx) error {
	sessionType := c.Query("type")
	if sessionType != "IN_PERSON" && sessionType != "ONLINE" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Session type is required (IN_PERSON or ONLINE)"})
	}

	query := database.DB.
		Preload("Bookings", "status <> ?", "CANCELLED").
		Where("status = ? AND type = ?", "AVAILABLE", sessionType).
		Order("date asc").Order("time asc")

	if sessionType == "IN_PERSON" {
		query = query.Preload("Location")
	}
	if locationID := c.Query("locationId"); locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	startParam := c.Query("startDate")
	endParam := c.Query("endDate")
	dateParam := c.Query("date")
	switch {
	case startParam != "" && endParam != "":
		start, err1 := time.Parse("2006-01-02", startParam)
		end, err2 := time.Parse("2006-01-02", endParam)
		if err1 != nil || err2 != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
		}
		query = query.Where("date BETWEEN ? AND ?", start, end)
	case dateParam != "":
		date, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format"})
		}
		query = query.Where("date = ?", date)
	default:
		query = query.Where("date >= ?", today)
	}

	var slots []models.AvailabilitySlot
	if err := query.Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch availability"})
	}

	response := make([]SlotResponse, 0, len(slots))
	for i := range slots {
		slot := &slots[i]
		if len(slot.Bookings) >= slot.MaxCapacity {
			continue
		}
		if slot.StartTime().Before(now) {
			continue
		}
		response = append(response, slotResponse(slot))
	}

	return c.JSON(response)
}

type BulkAvailabilityRequest struct {
	LocationID    *string  `json:"location_id"`
	SessionType   string   `json:"session_type" validate:"required,oneof=IN_PERSON ONLINE"`
	SessionFormat string   `json:"session_format" validate:"omitempty,oneof=GROUP INDIVIDUAL"`
	StartDate     string   `json:"start_date" validate:"required"`
	EndDate       string   `json:"end_date" validate:"required"`
	Times         []string `json:"times" validate:"required,min=1,dive,required"`
	Duration      int      `json:"duration" validate:"required,min=15"`
	DaysOfWeek    []int    `json:"days_of_week" validate:"required,min=1,dive,min=0,max=6"`
	MaxCapacity   int      `json:"max_capacity" validate:"omitempty,min=1"`
	Price         *int64   `json:"price" validate:"omitempty,min=0"`
}

// BulkCreateAvailability generates slots for every selected weekday and time
// across a date range. Slots that already exist are skipped, so re-running a
// generation is harmless.
func BulkCreateAvailability(c *fiber.Ctx) error {
	var req BulkAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start date format"})
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end date format"})
	}
	if end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End date must be after start date"})
	}

	var locationID *uuid.UUID
	if req.SessionType == "IN_PERSON" {
		if req.LocationID == nil || *req.LocationID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Location is required for in-person sessions"})
		}
		parsed, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid location ID format"})
		}
		var location models.Location
		if err := database.DB.First(&location, "id = ?", parsed).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location not found"})
		}
		if !location.IsActive {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Location is not active"})
		}
		locationID = &parsed
	}

	format := req.SessionFormat
	if format == "" {
		format = "INDIVIDUAL"
	}
	capacity := req.MaxCapacity
	if capacity < 1 {
		capacity = 1
	}

	wanted := make(map[int]bool, len(req.DaysOfWeek))
	for _, day := range req.DaysOfWeek {
		wanted[day] = true
	}

	createdCount := 0
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if !wanted[int(date.Weekday())] {
			continue
		}
		for _, slotTime := range req.Times {
			var count int64
			query := database.DB.Model(&models.AvailabilitySlot{}).
				Where("date = ? AND time = ? AND type = ?", date, slotTime, req.SessionType)
			if locationID != nil {
				query = query.Where("location_id = ?", *locationID)
			} else {
				query = query.Where("location_id IS NULL")
			}
			if err := query.Count(&count).Error; err != nil {
				log.Printf("🔥 Failed to check for existing slot: %v", err)
				continue
			}
			if count > 0 {
				continue
			}

			slot := models.AvailabilitySlot{
				LocationID:    locationID,
				Date:          date,
				Time:          slotTime,
				Duration:      req.Duration,
				Type:          req.SessionType,
				SessionFormat: format,
				Status:        "AVAILABLE",
				Price:         req.Price,
				MaxCapacity:   capacity,
			}
			if err := database.DB.Create(&slot).Error; err != nil {
				log.Printf("🔥 Failed to create slot %s %s: %v", req.StartDate, slotTime, err)
				continue
			}
			createdCount++
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Availability slots created successfully",
		"count":   createdCount,
	})
}

func AdminListAvailability(c *fiber.Ctx) error {
	query := database.DB.
		Preload("Location").
		Preload("Bookings", "status <> ?", "CANCELLED").
		Order("date asc").Order("time asc")

	if sessionType := c.Query("type"); sessionType != "" {
		query = query.Where("type = ?", sessionType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var slots []models.AvailabilitySlot
	if err := query.Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch slots"})
	}

	response := make([]SlotResponse, 0, len(slots))
	for i := range slots {
		response = append(response, slotResponse(&slots[i]))
	}
	return c.JSON(response)
}

type UpdateSlotRequest struct {
	Status      *string `json:"status" validate:"omitempty,oneof=AVAILABLE BOOKED BLOCKED"`
	Price       *int64  `json:"price" validate:"omitempty,min=0"`
	MaxCapacity *int    `json:"max_capacity" validate:"omitempty,min=1"`
	Duration    *int    `json:"duration" validate:"omitempty,min=15"`
}

func UpdateSlot(c *fiber.Ctx) error {
	slotID := c.Params("slotId")
	if _, err := uuid.Parse(slotID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot ID format"})
	}

	var req UpdateSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var slot models.AvailabilitySlot
	if err := database.DB.First(&slot, "id = ?", slotID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Slot not found"})
	}

	if req.Status != nil {
		slot.Status = *req.Status
	}
	if req.Price != nil {
		slot.Price = req.Price
	}
	if req.MaxCapacity != nil {
		slot.MaxCapacity = *req.MaxCapacity
	}
	if req.Duration != nil {
		slot.Duration = *req.Duration
	}

	if err := database.DB.Save(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update slot"})
	}
	return c.JSON(slot)
}

func DeleteSlot(c *fiber.Ctx) error {
	slotID := c.Params("slotId")
	if _, err := uuid.Parse(slotID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot ID format"})
	}

	var slot models.AvailabilitySlot
	if err := database.DB.First(&slot, "id = ?", slotID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Slot not found"})
	}

	var bookingCount int64
	if err := database.DB.Model(&models.Booking{}).
		Where("availability_slot_id = ?", slot.ID).
		Count(&bookingCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if bookingCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot delete a slot with bookings"})
	}

	if err := database.DB.Delete(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete slot"})
	}
	return c.JSON(fiber.Map{"message": "Slot deleted successfully"})
}
