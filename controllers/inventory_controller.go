package controllers

import (
	"errors"
	"strconv"

	"bodega-backend/inventory"

	"github.com/gofiber/fiber/v2"
)

// InventoryController controlador de la tabla de inventario
type InventoryController struct {
	Engine *inventory.Engine
}

// NewInventoryController crea una nueva instancia de InventoryController
func NewInventoryController(engine *inventory.Engine) *InventoryController {
	return &InventoryController{Engine: engine}
}

// ViewResponse estructura de respuesta con la vista de la tabla
type ViewResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    inventory.View `json:"data"`
}

// RecordResponse estructura de respuesta con un registro
type RecordResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    *inventory.Record `json:"data,omitempty"`
}

// FilterRequest estructura de la petición de filtrado
type FilterRequest struct {
	inventory.Filter
	KeepPage bool `json:"mantener_pagina"`
}

// SortRequest estructura de la petición de ordenamiento; el criterio usa
// los valores del selector del portal ("precio-desc", "recurso-asc", ...)
type SortRequest struct {
	Criteria string `json:"criterio"`
}

// PageRequest estructura de la petición de cambio de página
type PageRequest struct {
	Delta int `json:"delta"`
}

// SuggestionsResponse estructura de respuesta del autocompletado
type SuggestionsResponse struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
}

// GetView devuelve la ventana visible actual de la tabla. Antes de
// responder consume la categoría preseleccionada, si la hay.
func (ic *InventoryController) GetView(c *fiber.Ctx) error {
	ic.Engine.ApplyCategoryPreset()
	return c.JSON(ViewResponse{Success: true, Data: ic.Engine.View()})
}

// AddRecord da de alta un recurso
func (ic *InventoryController) AddRecord(c *fiber.Ctx) error {
	var draft inventory.Draft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(RecordResponse{
			Success: false,
			Message: "Formato de datos inválido",
		})
	}

	record, err := ic.Engine.Add(draft)
	if err != nil {
		if errors.Is(err, inventory.ErrMissingFields) {
			return c.Status(400).JSON(RecordResponse{
				Success: false,
				Message: "Recurso y categoría son obligatorios",
			})
		}
		return c.Status(500).JSON(RecordResponse{
			Success: false,
			Message: "Error al agregar el recurso",
		})
	}

	return c.Status(201).JSON(RecordResponse{
		Success: true,
		Message: "Recurso agregado correctamente",
		Data:    &record,
	})
}

// EditRecord sobreescribe los campos de un recurso existente
func (ic *InventoryController) EditRecord(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(RecordResponse{
			Success: false,
			Message: "ID de recurso inválido",
		})
	}

	var draft inventory.Draft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(400).JSON(RecordResponse{
			Success: false,
			Message: "Formato de datos inválido",
		})
	}

	record, err := ic.Engine.Edit(id, draft)
	if err != nil {
		if errors.Is(err, inventory.ErrRecordNotFound) {
			return c.Status(404).JSON(RecordResponse{
				Success: false,
				Message: "Recurso no encontrado",
			})
		}
		return c.Status(500).JSON(RecordResponse{
			Success: false,
			Message: "Error al guardar el recurso",
		})
	}

	return c.JSON(RecordResponse{
		Success: true,
		Message: "Recurso actualizado correctamente",
		Data:    &record,
	})
}

// DeleteRecord elimina un recurso. La eliminación es irreversible y
// exige confirmación explícita (?confirm=true); sin ella no se toca nada.
func (ic *InventoryController) DeleteRecord(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(RecordResponse{
			Success: false,
			Message: "ID de recurso inválido",
		})
	}

	confirmed := c.Query("confirm") == "true"
	if err := ic.Engine.Delete(id, confirmed); err != nil {
		switch {
		case errors.Is(err, inventory.ErrConfirmationRequired):
			return c.Status(409).JSON(RecordResponse{
				Success: false,
				Message: "¿Estás seguro de que deseas eliminar este recurso? Repite la petición con confirm=true",
			})
		case errors.Is(err, inventory.ErrRecordNotFound):
			return c.Status(404).JSON(RecordResponse{
				Success: false,
				Message: "Recurso no encontrado",
			})
		default:
			return c.Status(500).JSON(RecordResponse{
				Success: false,
				Message: "Error al eliminar el recurso",
			})
		}
	}

	return c.JSON(RecordResponse{
		Success: true,
		Message: "Recurso eliminado correctamente",
	})
}

// SetFilter aplica el criterio de visibilidad y devuelve la vista
// resultante. Por defecto vuelve a la página 1.
func (ic *InventoryController) SetFilter(c *fiber.Ctx) error {
	var req FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(ViewResponse{
			Success: false,
			Message: "Formato de datos inválido",
		})
	}

	ic.Engine.SetFilter(req.Filter, !req.KeepPage)
	return c.JSON(ViewResponse{Success: true, Data: ic.Engine.View()})
}

// SetSort aplica el criterio de ordenamiento y devuelve la vista
// resultante. Un criterio desconocido o vacío no reordena.
func (ic *InventoryController) SetSort(c *fiber.Ctx) error {
	var req SortRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(ViewResponse{
			Success: false,
			Message: "Formato de datos inválido",
		})
	}

	if key, ascending, ok := inventory.ParseSortCriteria(req.Criteria); ok {
		ic.Engine.SetSort(key, ascending)
	}
	return c.JSON(ViewResponse{Success: true, Data: ic.Engine.View()})
}

// ChangePage mueve el cursor de página y devuelve la vista resultante
func (ic *InventoryController) ChangePage(c *fiber.Ctx) error {
	var req PageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(ViewResponse{
			Success: false,
			Message: "Formato de datos inválido",
		})
	}

	ic.Engine.GotoPage(req.Delta)
	return c.JSON(ViewResponse{Success: true, Data: ic.Engine.View()})
}

// GetSuggestions devuelve las sugerencias de autocompletado del filtro
// de recurso
func (ic *InventoryController) GetSuggestions(c *fiber.Ctx) error {
	return c.JSON(SuggestionsResponse{
		Success: true,
		Data:    ic.Engine.Suggestions(c.Query("q")),
	})
}

// ExportRows descarga el inventario filtrado como archivo. El alcance
// es "visible" (página actual) o "todo" (conjunto filtrado completo);
// el formato es "csv" o "xlsx".
func (ic *InventoryController) ExportRows(c *fiber.Ctx) error {
	scope := inventory.Scope(c.Query("alcance", string(inventory.ScopeVisible)))
	if scope != inventory.ScopeVisible && scope != inventory.ScopeAll {
		return c.Status(400).JSON(RecordResponse{
			Success: false,
			Message: "Alcance de exportación inválido",
		})
	}

	switch c.Query("formato", "csv") {
	case "csv":
		file := ic.Engine.ExportCSV(scope)
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
		return c.Send(file.Content)

	case "xlsx":
		file, err := ic.Engine.ExportSheet(scope)
		if err != nil {
			return c.Status(500).JSON(RecordResponse{
				Success: false,
				Message: "Error al generar la hoja de cálculo",
			})
		}
		if file == nil {
			// Capacidad ausente: no es un error
			return c.SendStatus(204)
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
		return c.Send(file.Content)

	default:
		return c.Status(400).JSON(RecordResponse{
			Success: false,
			Message: "Formato de exportación inválido",
		})
	}
}
