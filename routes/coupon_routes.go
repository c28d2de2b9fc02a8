package routes

import (
	"github.com/anavidal/session_booking/handlers"
	"github.com/anavidal/session_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func CouponRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/coupons/validate", handlers.ValidateCoupon)

	admin := api.Group("/admin/coupons", middleware.Protected(), middleware.AdminRequired())
	admin.Get("", handlers.ListCoupons)
	admin.Post("", handlers.CreateCoupon)
	admin.Patch("/:couponId", handlers.UpdateCouponStatus)
	admin.Delete("/:couponId", handlers.DeleteCoupon)
}
