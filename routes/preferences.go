package routes

import (
	"bodega-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupPreferencesRoutes configura las rutas de preferencias
func SetupPreferencesRoutes(app *fiber.App, preferencesController *controllers.PreferencesController) {
	api := app.Group("/api")

	preferences := api.Group("/preferencias")
	preferences.Get("/tema", preferencesController.GetTheme) // GET /api/preferencias/tema - tema guardado
	preferences.Put("/tema", preferencesController.SetTheme) // PUT /api/preferencias/tema - cambiar tema
}
