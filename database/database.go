package database

import (
	"errors"
	"fmt"

	"github.com/anjiri1684/alx_travel/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	log.Info().Msg("database connected")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Location{},
		&models.Listing{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
		&models.BlacklistedToken{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Info().Msg("database migration successful")
	return nil
}

var defaultRoles = []models.Role{
	{Name: models.RoleHost, Description: "Publishes and manages listings"},
	{Name: models.RoleGuest, Description: "Books listings"},
}

// SeedRoles makes sure the HOST and GUEST roles exist.
func SeedRoles(db *gorm.DB) error {
	for _, role := range defaultRoles {
		var existing models.Role
		err := db.Where("name = ?", role.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check role %s: %w", role.Name, err)
		}

		r := role
		if err := db.Create(&r).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
		log.Info().Str("role", role.Name).Msg("role seeded")
	}
	return nil
}
