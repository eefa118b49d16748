// db.go database bootstrap and admin seeding
package main

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

func initDB(path string) error {
	var err error
	db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&AdminUser{}, &Category{}, &Settings{},
		&Project{}, &Skill{}, &Research{}, &Achievement{},
		&Blog{}, &Interest{}, &CurrentWork{},
	); err != nil {
		return err
	}

	return seedAdmin()
}

// seedAdmin creates the single admin account from the environment on first
// boot. Plaintext passwords are hashed immediately and never logged.
func seedAdmin() error {
	var count int64
	if err := db.Model(&AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Warn().Msg("no admin user exists and ADMIN_EMAIL/ADMIN_PASSWORD are unset; login will be impossible")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Name:         envOr("ADMIN_NAME", "Admin"),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Info().Str("email", email).Msg("seeded admin user")
	return nil
}
