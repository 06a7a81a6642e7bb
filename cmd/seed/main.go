package main

import (
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"bora/database"
	"bora/internal/models"
)

func init() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

var activityTypes = []models.ActivityType{
	{Name: "Esportes", Description: "Futebol, corrida, ciclismo e outras atividades físicas", Image: "default-type-sports.jpg"},
	{Name: "Gastronomia", Description: "Encontros para cozinhar ou comer em grupo", Image: "default-type-food.jpg"},
	{Name: "Jogos", Description: "Jogos de tabuleiro, cartas e videogames", Image: "default-type-games.jpg"},
	{Name: "Eventos", Description: "Shows, feiras, meetups e eventos culturais", Image: "default-type-events.jpg"},
}

var achievements = []models.Achievement{
	{Name: "Pioneiro", Criterion: "Confirmar presença na primeira atividade"},
	{Name: "Criador iniciante", Criterion: "Criar a primeira atividade"},
	{Name: "Ambicioso", Criterion: "Concluir a primeira atividade criada"},
	{Name: "Explorador", Criterion: "Alcançar o nível 5"},
}

func main() {
	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	for _, activityType := range activityTypes {
		if err := upsertActivityType(database.DB, activityType); err != nil {
			log.Fatalf("Failed to seed activity type %q: %v", activityType.Name, err)
		}
	}
	log.Printf("Seeded %d activity types", len(activityTypes))

	for _, achievement := range achievements {
		if err := upsertAchievement(database.DB, achievement); err != nil {
			log.Fatalf("Failed to seed achievement %q: %v", achievement.Name, err)
		}
	}
	log.Printf("Seeded %d achievements", len(achievements))
}

func upsertActivityType(db *gorm.DB, activityType models.ActivityType) error {
	var existing models.ActivityType
	err := db.Where("name = ?", activityType.Name).First(&existing).Error
	if err == nil {
		existing.Description = activityType.Description
		existing.Image = activityType.Image
		return db.Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(&activityType).Error
}

func upsertAchievement(db *gorm.DB, achievement models.Achievement) error {
	var existing models.Achievement
	err := db.Where("name = ?", achievement.Name).First(&existing).Error
	if err == nil {
		existing.Criterion = achievement.Criterion
		return db.Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(&achievement).Error
}
