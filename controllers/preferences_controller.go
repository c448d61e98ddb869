package controllers

import (
	"log"

	"bodega-backend/inventory"
	"bodega-backend/storage"

	"github.com/gofiber/fiber/v2"
)

// PreferencesController controlador de preferencias del portal
type PreferencesController struct {
	Store storage.Store
}

// NewPreferencesController crea una nueva instancia de PreferencesController
func NewPreferencesController(store storage.Store) *PreferencesController {
	return &PreferencesController{Store: store}
}

// ThemeResponse estructura de respuesta del tema
type ThemeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Theme   string `json:"theme"`
}

// ThemeRequest estructura de la petición de cambio de tema
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// GetTheme devuelve el tema guardado; "light" cuando no hay preferencia
func (pc *PreferencesController) GetTheme(c *fiber.Ctx) error {
	theme, ok, err := pc.Store.Get(inventory.ThemeKey)
	if err != nil {
		log.Printf("No se pudo leer el tema: %v", err)
	}
	if !ok || theme != "dark" {
		theme = "light"
	}
	return c.JSON(ThemeResponse{Success: true, Theme: theme})
}

// SetTheme guarda la preferencia de tema. El cambio se difunde a las
// demás pestañas por la notificación de cambios del almacén.
func (pc *PreferencesController) SetTheme(c *fiber.Ctx) error {
	var req ThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(ThemeResponse{
			Success: false,
			Message: "Formato de datos inválido",
		})
	}

	if req.Theme != "light" && req.Theme != "dark" {
		return c.Status(400).JSON(ThemeResponse{
			Success: false,
			Message: "El tema debe ser light o dark",
		})
	}

	if err := pc.Store.Set(inventory.ThemeKey, req.Theme); err != nil {
		// La sesión actual sigue con el tema elegido aunque no persista
		log.Printf("No se pudo guardar el tema: %v", err)
	}

	return c.JSON(ThemeResponse{Success: true, Theme: req.Theme})
}
