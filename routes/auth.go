package routes

import (
	"bodega-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes configura las rutas de autenticación
func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	auth := app.Group("/auth")

	auth.Post("/register", authController.Register) // POST /auth/register - registrar usuario
	auth.Post("/login", authController.Login)       // POST /auth/login - iniciar sesión
}
