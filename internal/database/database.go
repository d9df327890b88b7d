package database

import (
	"log"
	"os"

	"construction-planner-api/internal/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB initializes the database connection, runs migrations and seeds the
// default sign-in account.
func InitDB() {
	var err error

	// Open SQLite database file (will be created if it doesn't exist initially)
	// Using glebarez/sqlite which is a pure Go implementation (no CGO required)
	DB, err = gorm.Open(sqlite.Open("construction-planner.db"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Auto-migrate the schema (it will create tables if they don't exist)
	err = DB.AutoMigrate(
		&models.User{},
		&models.Task{},
	)

	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if err := SeedDefaultUser(DB); err != nil {
		log.Fatal("Failed to seed default user: ", err)
	}

	log.Println("Database connected and migrated successfully")
}

// SeedDefaultUser creates the initial account when the user table is empty.
// The password comes from PLANNER_PASSWORD, with an insecure development
// fallback.
func SeedDefaultUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("PLANNER_PASSWORD")
	if password == "" {
		password = "planner-dev-password"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{ID: "user-1", Username: "planner", Password: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	log.Println("Seeded default user 'planner'")
	return nil
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
