package database

import (
	"log"

	"gorm.io/gorm"

	"crimewatch/utils"
)

// RunMigrations brings the schema up to date. It runs once at startup,
// before the server accepts traffic. AutoMigrate adds tables and any
// optional columns introduced since the database was created; existing
// rows keep their defaults.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&User{},
		&CrimeReport{},
		&Audit{},
	); err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultAdmin creates an admin account if none exists.
func SeedDefaultAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin user %q created", username)
	return nil
}
