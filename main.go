package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	authControllers "github.com/1Garv23/share-smote/authentication/controllers"
	"github.com/1Garv23/share-smote/authentication/routes"
	"github.com/1Garv23/share-smote/database"
	"github.com/1Garv23/share-smote/engine"
	"github.com/1Garv23/share-smote/handlers"
	"github.com/1Garv23/share-smote/mailer"
	"github.com/1Garv23/share-smote/otp"
	"github.com/1Garv23/share-smote/repositories"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize the database connections on startup.
	database.Connect()
	database.ConnectRedis()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set in the environment")
	}

	users := repositories.NewGormUserStore(database.DB)

	// Pending codes live in Redis so every server process shares one view
	// of which code is currently in flight for an email.
	credentials := otp.NewRedisCredentialStore(database.Rdb)
	otpService := otp.NewService(credentials, users, mailer.NewFromEnv())

	auth := authControllers.NewAuthController(users, otpService, jwtSecret)
	process := handlers.NewProcessHandler(engine.NewFromEnv())

	app := fiber.New(fiber.Config{
		// Uploaded datasets are large; match the engine's upload ceiling.
		BodyLimit: 512 * 1024 * 1024,
	})

	routes.SetupRoutes(app, auth, process, jwtSecret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
