package controllers

import (
	"log"
	"strings"

	"bodega-backend/inventory"
	"bodega-backend/storage"

	"github.com/gofiber/fiber/v2"
)

// CategoryController controlador de la vista de categorías
type CategoryController struct {
	Engine *inventory.Engine
	Store  storage.Store
}

// NewCategoryController crea una nueva instancia de CategoryController
func NewCategoryController(engine *inventory.Engine, store storage.Store) *CategoryController {
	return &CategoryController{Engine: engine, Store: store}
}

// CategoryListResponse estructura de respuesta con los resúmenes
type CategoryListResponse struct {
	Success bool                         `json:"success"`
	Message string                       `json:"message,omitempty"`
	Data    []inventory.CategorySummary `json:"data"`
}

// PresetRequest estructura de la petición de preselección de categoría
type PresetRequest struct {
	Category string `json:"categoria"`
}

// CategoryRequest estructura de la petición de alta de categoría
type CategoryRequest struct {
	Name string `json:"categoria"`
}

// GetSummaries devuelve las tarjetas de resumen por categoría
func (cc *CategoryController) GetSummaries(c *fiber.Ctx) error {
	summaries := inventory.BuildCategorySummaries(cc.Engine.Records(), cc.Engine.Categories())
	return c.JSON(CategoryListResponse{Success: true, Data: summaries})
}

// CreateCategory da de alta una categoría en el registro. Una categoría
// puede existir sin recursos; aparece en las tarjetas con totales en cero.
func (cc *CategoryController) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(CategoryListResponse{
			Success: false,
			Message: "Formato de datos inválido",
		})
	}

	if strings.TrimSpace(req.Name) == "" {
		return c.Status(400).JSON(CategoryListResponse{
			Success: false,
			Message: "La categoría es obligatoria",
		})
	}

	if !cc.Engine.RegisterCategory(req.Name) {
		return c.Status(409).JSON(CategoryListResponse{
			Success: false,
			Message: "La categoría ya existe",
		})
	}

	return c.Status(201).JSON(CategoryListResponse{
		Success: true,
		Message: "Categoría registrada correctamente",
		Data:    inventory.BuildCategorySummaries(cc.Engine.Records(), cc.Engine.Categories()),
	})
}

// SetPreset deja la señal de categoría preseleccionada que la vista de
// inventario consumirá una sola vez antes de su próximo render. Es el
// mecanismo de navegación de las tarjetas de categoría.
func (cc *CategoryController) SetPreset(c *fiber.Ctx) error {
	var req PresetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(CategoryListResponse{
			Success: false,
			Message: "Formato de datos inválido",
		})
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		return c.Status(400).JSON(CategoryListResponse{
			Success: false,
			Message: "La categoría es obligatoria",
		})
	}

	if err := cc.Store.Set(inventory.CategoryPresetKey, category); err != nil {
		// Sin persistencia la navegación pierde el preset, pero no es fatal
		log.Printf("No se pudo guardar la categoría preseleccionada: %v", err)
	}

	return c.JSON(CategoryListResponse{Success: true})
}
