package database

import (
	"fmt"
	"log"

	config "github.com/anavidal/session_booking/configs"
	"github.com/anavidal/session_booking/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.AvailabilitySlot{},
		&models.Booking{},
		&models.Payment{},
		&models.Coupon{},
		&models.GoogleMeetEvent{},
		&models.SystemSetting{},
		&models.EmailTemplate{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedDefaults inserts system settings the app expects at least one row for.
func SeedDefaults() {
	defaults := []models.SystemSetting{
		{Key: "SESSION_PRICE_CENTS", Value: "4999", Description: strPtr("Default session price in minor currency units")},
	}

	for _, setting := range defaults {
		var count int64
		if err := DB.Model(&models.SystemSetting{}).Where("key = ?", setting.Key).Count(&count).Error; err != nil {
			log.Printf("🔥 Failed to check system setting %s: %v", setting.Key, err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&setting).Error; err != nil {
			log.Printf("🔥 Failed to seed system setting %s: %v", setting.Key, err)
			continue
		}
		log.Printf("✅ Seeded system setting %s", setting.Key)
	}
}

func strPtr(s string) *string { return &s }
