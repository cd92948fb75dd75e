// Seed script to create the first admin account
// cmd/seed-admin/main.go
package main

import (
	"fire-department-api/config"
	"fire-department-api/models"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password (min 8 characters)")
	fname := flag.String("fname", "System", "first name")
	lname := flag.String("lname", "Administrator", "last name")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		log.Fatal("Usage: seed-admin -email admin@example.com -password <min 8 chars>")
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	var existing models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", *email).
		First(&existing).Error; err == nil {
		log.Fatalf("User %s already exists", *email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	now := time.Now()
	admin := models.User{
		UserFname: *fname,
		UserLname: *lname,
		Email:     *email,
		Password:  string(hashed),
		RoleID:    models.RoleAdmin,
		RankID:    1,
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	log.Printf("Admin account %s created (user_id=%d)", admin.Email, admin.UserID)
}
