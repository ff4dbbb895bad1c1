// Package main seeds the back-office accounts: one admin plus
// optional support and bank reviewer logins.
package main

import (
	"log"
	"os"

	"veridesk/internal/config"
	"veridesk/internal/models"
	"veridesk/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminPhone := os.Getenv("ADMIN_PHONE")

	if adminEmail == "" || adminPassword == "" || adminPhone == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD, and ADMIN_PHONE must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			sqlDB, err := repositories.DB.DB()
			if err != nil {
				log.Printf("⚠️ Failed to get SQL DB instance: %v", err)
			} else if err := sqlDB.Close(); err != nil {
				log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
			}
		}
	}()

	seedAccount(adminEmail, adminPassword, adminPhone, models.RoleAdmin)

	// Reviewer logins are optional
	if email := os.Getenv("SUPPORT_EMAIL"); email != "" {
		seedAccount(email, os.Getenv("SUPPORT_PASSWORD"), os.Getenv("SUPPORT_PHONE"), models.RoleSupport)
	}
	if email := os.Getenv("BANK_EMAIL"); email != "" {
		seedAccount(email, os.Getenv("BANK_PASSWORD"), os.Getenv("BANK_PHONE"), models.RoleBank)
	}
}

func seedAccount(email, password, phone, role string) {
	if password == "" {
		log.Printf("Skipping %s account %s: no password set", role, email)
		return
	}

	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("%s account %s already exists", role, email)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	account := models.User{
		Email:        email,
		Password:     string(hashedPassword),
		Phone:        phone,
		Role:         role,
		TokenVersion: 1,
	}

	if err := repositories.DB.Create(&account).Error; err != nil {
		log.Fatalf("Failed to create %s account: %v", role, err)
	}

	log.Printf("✅ %s account %s created successfully!", role, email)
}
