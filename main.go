package main

import (
	"log"
	"os"
	"time"

	"bodega-backend/controllers"
	"bodega-backend/export"
	"bodega-backend/inventory"
	"bodega-backend/models"
	"bodega-backend/routes"
	"bodega-backend/services"
	"bodega-backend/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/shopspring/decimal"
)

func main() {
	// Inicialización de la base de datos
	db, err := models.InitDB()
	if err != nil {
		log.Fatal("No se pudo conectar a la base de datos:", err)
	}

	// Automigración
	db.AutoMigrate(&models.User{}, &models.StorageEntry{})

	// Almacén durable clave/valor compartido por todas las pestañas
	store := storage.NewGormStore(db)

	// Motor de inventario con la capacidad de exportar a hoja de cálculo
	engine := inventory.New(store, export.NewExcelWriter())
	engine.Bootstrap(defaultInventory())

	// Creación de la aplicación Fiber
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // Las fotos viajan como data URI
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
				"code":    code,
			})
		},
	})

	// Middleware
	app.Use(logger.New())

	// Configuración de CORS
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Inicialización de controladores
	authController := controllers.NewAuthController(db)
	inventoryController := controllers.NewInventoryController(engine)
	categoryController := controllers.NewCategoryController(engine, store)
	budgetController := controllers.NewBudgetController(engine)
	preferencesController := controllers.NewPreferencesController(store)

	// Configuración de rutas
	routes.SetupAuthRoutes(app, authController)
	routes.SetupInventoryRoutes(app, inventoryController)
	routes.SetupCategoryRoutes(app, categoryController)
	routes.SetupBudgetRoutes(app, budgetController)
	routes.SetupPreferencesRoutes(app, preferencesController)

	// Hub de sincronización: cada cambio del almacén se difunde a las
	// pestañas conectadas, como el evento "storage" del navegador
	hub := services.NewHub()
	go hub.Run()
	store.Subscribe(hub.NotifyStorageChange)

	// Ruta WebSocket
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.HandleWebSocket(c)
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "Bodega Backend is running",
			"timestamp": time.Now().Unix(),
		})
	})

	// Arranque del servidor
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Servidor escuchando en el puerto %s", port)
	log.Fatal(app.Listen(":" + port))
}

// defaultInventory son los recursos semilla del portal; solo se adoptan
// cuando el almacén durable todavía no tiene un inventario guardado
func defaultInventory() []inventory.Record {
	price := func(value string) decimal.Decimal {
		d, _ := decimal.NewFromString(value)
		return d
	}

	return []inventory.Record{
		{ID: 1, Name: "Bombas sumergibles 1HP", Category: "Bombas de agua", Quantity: 5, Price: price("120000"), Note: "Equipo básico para faenas rurales"},
		{ID: 2, Name: "Kit reparación rodamientos", Category: "Repuestos", Quantity: 2, Price: price("45500"), Note: "Incluye grasa industrial premium"},
		{ID: 3, Name: "Manguera de descarga 2\"", Category: "Bombas de agua", Quantity: 12, Price: price("18900"), Note: "Rollo de 25 metros"},
		{ID: 4, Name: "Válvula de retención bronce", Category: "Repuestos", Quantity: 8, Price: price("23400"), Note: ""},
		{ID: 5, Name: "Panel de control trifásico", Category: "Materiales eléctricos", Quantity: 3, Price: price("189000"), Note: "Tablero listo para montaje en terreno"},
		{ID: 6, Name: "Cable sumergible 3x12 AWG", Category: "Materiales eléctricos", Quantity: 40, Price: price("2500"), Note: "Precio por metro"},
		{ID: 7, Name: "Juego de llaves Stillson", Category: "Herramientas", Quantity: 4, Price: price("32900"), Note: ""},
		{ID: 8, Name: "Teflón industrial", Category: "Herramientas", Quantity: 25, Price: price("1200"), Note: "Cinta de 20 metros"},
	}
}
