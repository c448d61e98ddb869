package routes

import (
	"bodega-backend/controllers"
	"bodega-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes configura las rutas de la vista de categorías
func SetupCategoryRoutes(app *fiber.App, categoryController *controllers.CategoryController) {
	api := app.Group("/api")

	categories := api.Group("/categorias", utils.AuthMiddleware)
	categories.Get("/", categoryController.GetSummaries)     // GET /api/categorias - resúmenes por categoría
	categories.Post("/", categoryController.CreateCategory)  // POST /api/categorias - registrar categoría
	categories.Post("/preset", categoryController.SetPreset) // POST /api/categorias/preset - preseleccionar categoría
}
