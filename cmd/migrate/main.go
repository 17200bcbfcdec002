package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/model"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/database"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (AutoMigrate doesn't handle these)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Lead{},
		&model.DeliveryRecord{},
		&model.Merchant{},
		&model.CancellationReason{},
		&model.CancellationApplication{},
		&model.ExtensionApplication{},
		&model.Notification{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Seed reference data (idempotent upserts by code)
	log.Println("Step 3: Seeding cancellation reasons...")

	reasons := []model.CancellationReason{
		{Code: "no_contact", Label: "Customer unreachable", MinPhoneCount: 3, MinSMSCount: 1, Active: true},
		{Code: "invalid_number", Label: "Phone number invalid", MinPhoneCount: 2, MinSMSCount: 0, Active: true},
		{Code: "duplicate_lead", Label: "Duplicate of another lead", MinPhoneCount: 0, MinSMSCount: 0, Active: true},
		{Code: "out_of_area", Label: "Property outside service area", MinPhoneCount: 1, MinSMSCount: 0, Active: true},
		{Code: "customer_declined", Label: "Customer declined survey", MinPhoneCount: 1, MinSMSCount: 0, Active: true},
	}

	for _, r := range reasons {
		var existing model.CancellationReason
		err := db.Where("code = ?", r.Code).First(&existing).Error
		if err == nil {
			continue // already seeded, thresholds managed by operations from here
		}
		if err := db.Create(&r).Error; err != nil {
			log.Printf("Warn: Failed to seed reason %s: %v", r.Code, err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
