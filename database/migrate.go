package database

import (
	"log"

	"bora/internal/models"
)

func MigrateDatabase() error {
	log.Println("Running database migrations...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.ActivityType{},
		&models.Activity{},
		&models.ActivityAddress{},
		&models.ActivityParticipant{},
		&models.Preference{},
		&models.Achievement{},
		&models.UserAchievement{},
	)

	if err != nil {
		log.Printf("Error during migration: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
