package main

import (
	"bodega-backend/controllers"
	"bodega-backend/inventory"
	"bodega-backend/models"
	"bodega-backend/routes"
	"bodega-backend/storage"
	"bodega-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB crea una base de datos de prueba en memoria
func setupTestDB() *gorm.DB {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(&models.User{}, &models.StorageEntry{})
	return db
}

// setupTestApp levanta la aplicación completa sobre un almacén en
// memoria, con el inventario semilla del portal
func setupTestApp() (*fiber.App, *inventory.Engine, storage.Store) {
	db := setupTestDB()
	store := storage.NewMemStore()

	engine := inventory.New(store, nil)
	engine.Bootstrap(defaultInventory())

	app := fiber.New()

	authController := controllers.NewAuthController(db)
	inventoryController := controllers.NewInventoryController(engine)
	categoryController := controllers.NewCategoryController(engine, store)
	budgetController := controllers.NewBudgetController(engine)
	preferencesController := controllers.NewPreferencesController(store)

	routes.SetupAuthRoutes(app, authController)
	routes.SetupInventoryRoutes(app, inventoryController)
	routes.SetupCategoryRoutes(app, categoryController)
	routes.SetupBudgetRoutes(app, budgetController)
	routes.SetupPreferencesRoutes(app, preferencesController)

	return app, engine, store
}

// authToken genera un token de sesión válido para las rutas protegidas
func authToken() string {
	token, _ := utils.GenerateJWT(1, "prueba@bodega.cl")
	return token
}
