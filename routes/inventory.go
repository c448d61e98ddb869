package routes

import (
	"bodega-backend/controllers"
	"bodega-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupInventoryRoutes configura las rutas de la tabla de inventario
func SetupInventoryRoutes(app *fiber.App, inventoryController *controllers.InventoryController) {
	api := app.Group("/api")

	inv := api.Group("/inventario", utils.AuthMiddleware)
	inv.Get("/", inventoryController.GetView)                  // GET /api/inventario - vista actual de la tabla
	inv.Post("/", inventoryController.AddRecord)               // POST /api/inventario - agregar recurso
	inv.Put("/:id", inventoryController.EditRecord)            // PUT /api/inventario/:id - editar recurso
	inv.Delete("/:id", inventoryController.DeleteRecord)       // DELETE /api/inventario/:id?confirm=true - eliminar recurso
	inv.Post("/filtros", inventoryController.SetFilter)        // POST /api/inventario/filtros - aplicar filtro
	inv.Post("/orden", inventoryController.SetSort)            // POST /api/inventario/orden - aplicar ordenamiento
	inv.Post("/pagina", inventoryController.ChangePage)        // POST /api/inventario/pagina - cambiar de página
	inv.Get("/sugerencias", inventoryController.GetSuggestions) // GET /api/inventario/sugerencias?q= - autocompletado
	inv.Get("/exportar", inventoryController.ExportRows)       // GET /api/inventario/exportar?alcance=&formato= - descargar archivo
}
