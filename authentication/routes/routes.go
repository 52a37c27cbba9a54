package routes

import (
	"github.com/gofiber/fiber/v2"

	authControllers "github.com/1Garv23/share-smote/authentication/controllers"
	"github.com/1Garv23/share-smote/authentication/middleware"
	"github.com/1Garv23/share-smote/handlers"
)

func SetupRoutes(app *fiber.App, auth *authControllers.AuthController, process *handlers.ProcessHandler, jwtSecret string) {
	app.Use(middleware.RequestID())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "app": "share-smote"})
	})

	app.Post("/api/register", auth.Register)
	app.Post("/api/login", auth.Login)
	app.Post("/api/otp/send", auth.SendOTP)
	app.Post("/api/otp/verify", auth.VerifyOTP)

	// Protect routes with middleware
	app.Get("/api/user", middleware.JwtAuthMiddleware(jwtSecret), auth.User)
	app.Post("/api/process", middleware.JwtAuthMiddleware(jwtSecret), process.Process)
}
