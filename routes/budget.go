package routes

import (
	"bodega-backend/controllers"
	"bodega-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupBudgetRoutes configura las rutas de la vista de presupuesto
func SetupBudgetRoutes(app *fiber.App, budgetController *controllers.BudgetController) {
	api := app.Group("/api")

	api.Get("/presupuesto", utils.AuthMiddleware, budgetController.GetReport) // GET /api/presupuesto - indicadores y gráficos
}
