package main

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"estatedesk/internal/config"
	"estatedesk/internal/database"
	"estatedesk/internal/domain"
	"estatedesk/internal/util"
)

func main() {
	// Load configuration
	_, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	created, err := seedAdmin(database.GetDB(), email, password)
	if err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}
	if !created {
		fmt.Println("Admin account already exists!")
		return
	}

	fmt.Println("Admin account created successfully!")
	fmt.Printf("Email: %s\n", util.NormalizeEmail(email))
	fmt.Println("Please change the password after first login!")
}

// seedAdmin creates the admin account unless one already exists. The email
// is stored normalized, matching the login and reset lookups.
func seedAdmin(db *gorm.DB, email, password string) (bool, error) {
	email = util.NormalizeEmail(email)

	var existing domain.Admin
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return false, nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := domain.Admin{
		Email:        email,
		PasswordHash: hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, err
	}
	return true, nil
}
