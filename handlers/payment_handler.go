package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	config "github.com/anavidal/session_booking/configs"
	"github.com/anavidal/session_booking/database"
	"github.com/anavidal/session_booking/models"
	"github.com/anavidal/session_booking/payments"
	"github.com/anavidal/session_booking/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateIntentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

// CreatePaymentIntent ensures exactly one live payment record per booking:
// a succeeded payment is a conflict, a pending one is reused when the gateway
// still knows it, and a stale one is replaced.
func CreatePaymentIntent(c *fiber.Ctx) error {
	var req CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", req.BookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	var existing models.Payment
	err := database.DB.Where("booking_id = ?", booking.ID).First(&existing).Error
	if err == nil {
		if existing.Status == "SUCCEEDED" {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Booking already paid"})
		}
		if payments.IsMockIntentID(existing.StripePaymentIntent) {
			return c.JSON(fiber.Map{
				"client_secret":     payments.MockClientSecret(existing.StripePaymentIntent),
				"payment_intent_id": existing.StripePaymentIntent,
			})
		}
		intent, rerr := payments.RetrievePaymentIntent(existing.StripePaymentIntent)
		if rerr == nil {
			return c.JSON(fiber.Map{
				"client_secret":     intent.ClientSecret,
				"payment_intent_id": intent.ID,
			})
		}
		// Gateway no longer knows the intent; drop the stale local record.
		log.Printf("⚠️ Stale payment intent %s for booking %s: %v", existing.StripePaymentIntent, booking.ID, rerr)
		if derr := database.DB.Delete(&existing).Error; derr != nil {
			log.Printf("🔥 Failed to delete stale payment for booking %s: %v", booking.ID, derr)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reset payment record"})
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	if payments.IsMockMode() {
		log.Println("⚠️ Using mock payment intent")
		intentID := payments.NewMockIntentID()
		payment := models.Payment{
			BookingID:           booking.ID,
			StripePaymentIntent: intentID,
			Amount:              booking.FinalAmount,
			Currency:            booking.Currency,
			Status:              "PENDING",
		}
		if err := database.DB.Create(&payment).Error; err != nil {
			log.Printf("🔥 Failed to create mock payment record: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment record"})
		}
		return c.JSON(fiber.Map{
			"client_secret":     payments.MockClientSecret(intentID),
			"payment_intent_id": intentID,
		})
	}

	intent, err := payments.CreatePaymentIntent(booking.FinalAmount, booking.Currency, booking.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to create payment intent for booking %s: %v", booking.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment could not be initiated, please try again."})
	}

	payment := models.Payment{
		BookingID:           booking.ID,
		StripePaymentIntent: intent.ID,
		Amount:              booking.FinalAmount,
		Currency:            booking.Currency,
		Status:              "PENDING",
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		log.Printf("🔥 Failed to create payment record for booking %s: %v", booking.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment record"})
	}

	return c.JSON(fiber.Map{
		"client_secret":     intent.ClientSecret,
		"payment_intent_id": intent.ID,
	})
}

// HandleStripeWebhook verifies the event signature before trusting anything
// in the payload, then applies the payment state transition.
func HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	err := payments.VerifyWebhookSignature(payload, signature, config.Config("STRIPE_WEBHOOK_SECRET"), time.Now())
	if err != nil {
		log.Printf("🔥 Webhook signature verification failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid signature"})
	}

	var event payments.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse webhook payload"})
	}

	log.Printf("Received gateway event: %s", event.Type)

	switch event.Type {
	case "payment_intent.succeeded":
		return handlePaymentSucceeded(c, event.Data.Object)
	case "payment_intent.payment_failed":
		return handlePaymentFailed(c, event.Data.Object)
	default:
		// Acknowledged so the gateway does not retry delivery.
		return c.JSON(fiber.Map{"received": true, "message": "Event received but not processed"})
	}
}

func handlePaymentSucceeded(c *fiber.Ctx, intent payments.PaymentIntent) error {
	var payment models.Payment
	if err := database.DB.Where("stripe_payment_intent = ?", intent.ID).First(&payment).Error; err != nil {
		log.Printf("🔥 Payment record not found for intent %s", intent.ID)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
	}

	if payment.Status == "SUCCEEDED" {
		return c.JSON(fiber.Map{"received": true, "message": "Webhook already processed"})
	}

	var method *string
	if len(intent.PaymentMethodTypes) > 0 {
		method = &intent.PaymentMethodTypes[0]
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = "SUCCEEDED"
		payment.PaymentMethod = method
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Booking{}).Where("id = ?", payment.BookingID).
			Update("status", "CONFIRMED").Error
	})
	if err != nil {
		log.Printf("🔥 CRITICAL: Failed to process succeeded payment %s: %v", intent.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process webhook"})
	}

	services.ProcessBookingConfirmation(payment.BookingID)

	return c.JSON(fiber.Map{"received": true, "message": "Payment processed successfully"})
}

func handlePaymentFailed(c *fiber.Ctx, intent payments.PaymentIntent) error {
	var payment models.Payment
	if err := database.DB.Where("stripe_payment_intent = ?", intent.ID).First(&payment).Error; err == nil {
		// Booking stays PENDING_PAYMENT so the customer can retry.
		payment.Status = "FAILED"
		if err := database.DB.Save(&payment).Error; err != nil {
			log.Printf("🔥 Failed to record failed payment %s: %v", intent.ID, err)
		}
	}
	return c.JSON(fiber.Map{"received": true, "message": "Payment failure recorded"})
}

type ConfirmMockPaymentRequest struct {
	BookingID       string `json:"booking_id" validate:"required,uuid"`
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

// ConfirmMockPayment simulates what would otherwise arrive as a gateway
// webhook. Refusing to run outside mock mode is a security boundary: with
// real credentials configured this would confirm bookings without payment.
func ConfirmMockPayment(c *fiber.Ctx) error {
	if !payments.IsMockMode() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Mock confirmation is only available in mock mode"})
	}

	var req ConfirmMockPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var payment models.Payment
	err := database.DB.
		Where("stripe_payment_intent = ? AND booking_id = ?", req.PaymentIntentID, req.BookingID).
		First(&payment).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
	}

	if payment.Status == "SUCCEEDED" {
		return c.JSON(fiber.Map{"success": true, "message": "Payment already confirmed"})
	}

	method := "mock_card"
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = "SUCCEEDED"
		payment.PaymentMethod = &method
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Booking{}).Where("id = ?", payment.BookingID).
			Update("status", "CONFIRMED").Error
	})
	if err != nil {
		log.Printf("🔥 Failed to confirm mock payment %s: %v", req.PaymentIntentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to confirm mock payment"})
	}

	services.ProcessBookingConfirmation(payment.BookingID)

	return c.JSON(fiber.Map{"success": true})
}
