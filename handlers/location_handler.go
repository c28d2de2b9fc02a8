package handlers

import (
	"log"

	"github.com/anavidal/session_booking/database"
	"github.com/anavidal/session_booking/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListLocations returns the active venues shown on the public booking page.
func ListLocations(c *fiber.Ctx) error {
	var locations []models.Location
	if err := database.DB.Where("is_active = ?", true).Order("name asc").Find(&locations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch locations"})
	}
	return c.JSON(locations)
}

func AdminListLocations(c *fiber.Ctx) error {
	var locations []models.Location
	if err := database.DB.Order("name asc").Find(&locations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch locations"})
	}
	return c.JSON(locations)
}

type LocationRequest struct {
	Name       string   `json:"name" validate:"required"`
	Address    string   `json:"address" validate:"required"`
	City       string   `json:"city" validate:"required"`
	Country    string   `json:"country" validate:"required"`
	PostalCode *string  `json:"postal_code"`
	Lat        *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng        *float64 `json:"lng" validate:"omitempty,longitude"`
	Capacity   int      `json:"capacity" validate:"omitempty,min=1"`
	IsActive   *bool    `json:"is_active"`
}

func CreateLocation(c *fiber.Ctx) error {
	var req LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	capacity := req.Capacity
	if capacity < 1 {
		capacity = 1
	}
	location := models.Location{
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		Lat:        req.Lat,
		Lng:        req.Lng,
		Capacity:   capacity,
		IsActive:   true,
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&location).Error; err != nil {
		log.Printf("🔥 Failed to create location %s: %v", req.Name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create location"})
	}
	return c.Status(fiber.StatusCreated).JSON(location)
}

func UpdateLocation(c *fiber.Ctx) error {
	locationID := c.Params("locationId")
	if _, err := uuid.Parse(locationID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid location ID format"})
	}

	var req LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var location models.Location
	if err := database.DB.First(&location, "id = ?", locationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location not found"})
	}

	location.Name = req.Name
	location.Address = req.Address
	location.City = req.City
	location.Country = req.Country
	location.PostalCode = req.PostalCode
	location.Lat = req.Lat
	location.Lng = req.Lng
	if req.Capacity >= 1 {
		location.Capacity = req.Capacity
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&location).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update location"})
	}
	return c.JSON(location)
}

// DeleteLocation refuses to remove a venue that slots still reference;
// deactivate it instead to hide it from the booking page.
func DeleteLocation(c *fiber.Ctx) error {
	locationID := c.Params("locationId")
	if _, err := uuid.Parse(locationID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid location ID format"})
	}

	var location models.Location
	if err := database.DB.First(&location, "id = ?", locationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location not found"})
	}

	var slotCount int64
	if err := database.DB.Model(&models.AvailabilitySlot{}).
		Where("location_id = ?", location.ID).
		Count(&slotCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if slotCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot delete a location with availability slots. Deactivate it instead."})
	}

	if err := database.DB.Delete(&location).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete location"})
	}
	return c.JSON(fiber.Map{"message": "Location deleted successfully"})
}
