package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bora/database"
	"bora/internal/cache"
	"bora/internal/controllers"
	"bora/internal/events"
	"bora/internal/repository"
	"bora/internal/services"
	"bora/internal/storage"
	"bora/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections()

	imageStorage, err := storage.NewS3Storage()
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	redisCache, err := cache.NewRedisClient()
	if err != nil {
		log.Printf("Warning: Redis unavailable, reads will skip the cache: %v", err)
		redisCache = nil
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		amqpPublisher, err := events.NewAMQPPublisher(url)
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, events will be dropped: %v", err)
		} else {
			publisher = amqpPublisher
			defer amqpPublisher.Close()
		}
	}

	store := repository.NewStore(database.DB)

	progressService := services.NewProgressService(store, publisher, services.LoadProgressConfig())
	participationService := services.NewParticipationService(store, progressService, imageStorage, publisher)
	var queryCache cache.Cache
	if redisCache != nil {
		queryCache = redisCache
	}
	queryService := services.NewActivityQueryService(store, queryCache)

	authController := controllers.NewAuthController(store, imageStorage)
	userController := controllers.NewUserController(store, imageStorage)
	activityController := controllers.NewActivityController(participationService, queryService)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Bora API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	routes.RegisterAuthRoutes(router, authController)
	routes.RegisterUserRoutes(router, userController)
	routes.RegisterActivityRoutes(router, activityController)
	routes.RegisterSwaggerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
