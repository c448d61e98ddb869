package controllers

import (
	"bodega-backend/inventory"

	"github.com/gofiber/fiber/v2"
)

// BudgetController controlador de la vista de presupuesto
type BudgetController struct {
	Engine *inventory.Engine
}

// NewBudgetController crea una nueva instancia de BudgetController
func NewBudgetController(engine *inventory.Engine) *BudgetController {
	return &BudgetController{Engine: engine}
}

// BudgetResponse estructura de respuesta del presupuesto
type BudgetResponse struct {
	Success bool                   `json:"success"`
	Data    inventory.BudgetReport `json:"data"`
}

// GetReport devuelve los indicadores, la tabla por categoría y los
// datos de los gráficos de la vista de presupuesto
func (bc *BudgetController) GetReport(c *fiber.Ctx) error {
	report := inventory.BuildBudgetReport(bc.Engine.Records(), bc.Engine.Categories())
	return c.JSON(BudgetResponse{Success: true, Data: report})
}
