package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bodega-backend/controllers"
	"bodega-backend/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authRequest arma una petición autenticada con cuerpo JSON opcional
func authRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+authToken())
	return req
}

func decodeView(t *testing.T, resp *http.Response) inventory.View {
	t.Helper()

	var response controllers.ViewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.True(t, response.Success)
	return response.Data
}

func TestInventarioExigeSesion(t *testing.T) {
	app, _, _ := setupTestApp()

	req := httptest.NewRequest("GET", "/api/inventario", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestVistaDeInventario(t *testing.T) {
	app, _, _ := setupTestApp()

	resp, err := app.Test(authRequest("GET", "/api/inventario", nil))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	view := decodeView(t, resp)
	assert.Len(t, view.Records, 8)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, 8, view.VisibleCount)
}

func TestAgregarRecursoPorAPI(t *testing.T) {
	app, engine, _ := setupTestApp()

	draft := inventory.Draft{
		Name:     "Abrazadera inoxidable",
		Category: "Repuestos",
		Quantity: "15",
		Price:    "890",
	}

	resp, err := app.Test(authRequest("POST", "/api/inventario", draft))
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var response controllers.RecordResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.True(t, response.Success)
	require.NotNil(t, response.Data)
	assert.Equal(t, 9, response.Data.ID)
	assert.Equal(t, 15, response.Data.Quantity)
	assert.Len(t, engine.Records(), 9)
}

func TestAgregarRecursoIncompletoPorAPI(t *testing.T) {
	app, _, _ := setupTestApp()

	draft := inventory.Draft{Name: "Sin categoría asignada"}

	resp, err := app.Test(authRequest("POST", "/api/inventario", draft))
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestFiltrarYOrdenarPorAPI(t *testing.T) {
	app, _, _ := setupTestApp()

	filterReq := controllers.FilterRequest{
		Filter: inventory.Filter{Category: "Bombas de agua"},
	}
	resp, err := app.Test(authRequest("POST", "/api/inventario/filtros", filterReq))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	view := decodeView(t, resp)
	assert.Equal(t, 2, view.VisibleCount)
	for _, record := range view.Records {
		assert.Equal(t, "Bombas de agua", record.Category)
	}

	sortReq := controllers.SortRequest{Criteria: "precio-desc"}
	resp, err = app.Test(authRequest("POST", "/api/inventario/orden", sortReq))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	view = decodeView(t, resp)
	require.Len(t, view.Records, 2)
	assert.Equal(t, "Bombas sumergibles 1HP", view.Records[0].Name)
}

func TestEliminarRecursoPorAPI(t *testing.T) {
	app, engine, _ := setupTestApp()

	// Sin confirmación no se toca nada
	resp, err := app.Test(authRequest("DELETE", "/api/inventario/3", nil))
	assert.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
	assert.Len(t, engine.Records(), 8)

	resp, err = app.Test(authRequest("DELETE", "/api/inventario/3?confirm=true", nil))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Len(t, engine.Records(), 7)

	resp, err = app.Test(authRequest("DELETE", "/api/inventario/999?confirm=true", nil))
	assert.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestExportarPorAPI(t *testing.T) {
	app, _, _ := setupTestApp()

	resp, err := app.Test(authRequest("GET", "/api/inventario/exportar?alcance=todo&formato=csv", nil))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	assert.Len(t, lines, 9) // encabezado más los ocho recursos semilla
	assert.True(t, strings.HasPrefix(lines[0], `"ID","Recurso"`))

	// La hoja de cálculo sin capacidad instalada responde sin contenido
	resp, err = app.Test(authRequest("GET", "/api/inventario/exportar?formato=xlsx", nil))
	assert.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	resp, err = app.Test(authRequest("GET", "/api/inventario/exportar?alcance=nada", nil))
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestSugerenciasPorAPI(t *testing.T) {
	app, _, _ := setupTestApp()

	resp, err := app.Test(authRequest("GET", "/api/inventario/sugerencias?q=bomba", nil))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response controllers.SuggestionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Contains(t, response.Data, "Bombas sumergibles 1HP")
}

func TestPresetDeCategoriaPorAPI(t *testing.T) {
	app, _, store := setupTestApp()

	presetReq := controllers.PresetRequest{Category: "Herramientas"}
	resp, err := app.Test(authRequest("POST", "/api/categorias/preset", presetReq))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// La próxima vista lo consume y filtra por la categoría elegida
	resp, err = app.Test(authRequest("GET", "/api/inventario", nil))
	assert.NoError(t, err)

	view := decodeView(t, resp)
	assert.Equal(t, "Herramientas", view.Filter.Category)
	assert.Equal(t, 2, view.VisibleCount)

	_, ok, err := store.Get(inventory.CategoryPresetKey)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCrearCategoriaPorAPI(t *testing.T) {
	app, engine, _ := setupTestApp()

	createReq := controllers.CategoryRequest{Name: "Lubricantes"}
	resp, err := app.Test(authRequest("POST", "/api/categorias", createReq))
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	// La categoría existe sin recursos y aparece en las tarjetas
	var response controllers.CategoryListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Len(t, response.Data, 5)
	assert.Contains(t, engine.Categories(), "Lubricantes")

	// El registro ignora mayúsculas: la repetida se rechaza
	resp, err = app.Test(authRequest("POST", "/api/categorias", controllers.CategoryRequest{Name: "lubricantes"}))
	assert.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	resp, err = app.Test(authRequest("POST", "/api/categorias", controllers.CategoryRequest{Name: "   "}))
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestResumenesDeCategoriaPorAPI(t *testing.T) {
	app, _, _ := setupTestApp()

	resp, err := app.Test(authRequest("GET", "/api/categorias", nil))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response controllers.CategoryListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Len(t, response.Data, 4)
}

func TestPresupuestoPorAPI(t *testing.T) {
	app, _, _ := setupTestApp()

	resp, err := app.Test(authRequest("GET", "/api/presupuesto", nil))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response controllers.BudgetResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Equal(t, 8, response.Data.ResourceCount)
	require.NotNil(t, response.Data.LeadingCategory)
	assert.False(t, response.Data.TotalValue.IsZero())
}

func TestTemaPorAPI(t *testing.T) {
	app, _, _ := setupTestApp()

	// Sin preferencia guardada rige el tema claro
	resp, err := app.Test(httptest.NewRequest("GET", "/api/preferencias/tema", nil))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response controllers.ThemeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.Equal(t, "light", response.Theme)

	themeReq := controllers.ThemeRequest{Theme: "dark"}
	jsonData, _ := json.Marshal(themeReq)
	req := httptest.NewRequest("PUT", "/api/preferencias/tema", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/preferencias/tema", nil))
	assert.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.Equal(t, "dark", response.Theme)

	// Solo se aceptan light y dark
	jsonData, _ = json.Marshal(controllers.ThemeRequest{Theme: "sepia"})
	req = httptest.NewRequest("PUT", "/api/preferencias/tema", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
