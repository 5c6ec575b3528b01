package main

import (
	"log"
	"os"

	"bizflow-backend/internal/config"
	"bizflow-backend/internal/model"
	"bizflow-backend/pkg/database"
	"bizflow-backend/pkg/password"

	"github.com/joho/godotenv"
)

// Resets (or creates) the admin account. Useful after a lockout.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.Load()

	db := database.Connect(cfg.DatabaseDSN)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	plaintext := os.Getenv("ADMIN_PASSWORD")
	if plaintext == "" {
		log.Fatal("ADMIN_PASSWORD must be set")
	}

	hash, err := password.NewHasher().Hash(plaintext)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		user = model.User{
			Email:        email,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		log.Printf("Admin user %s created", email)
		return
	}

	if err := db.Model(&user).Update("password_hash", hash).Error; err != nil {
		log.Fatalf("Failed to update password: %v", err)
	}
	log.Printf("Password for %s has been reset", email)
}
