package inventory

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Claves del almacén durable. Se conservan las claves y los nombres de
// campo del portal original para que un snapshot existente siga siendo
// legible tal cual.
const (
	InventoryKey      = "inventarioData"
	CategoriesKey     = "categoriasInventario"
	ThemeKey          = "theme"
	CategoryPresetKey = "presetCategoria"
)

// PageSize es el tamaño fijo de página de la tabla de inventario
const PageSize = 10

func init() {
	// Los precios se serializan como números JSON planos, igual que el
	// snapshot original
	decimal.MarshalJSONWithoutQuotes = true
}

// Record representa un recurso del inventario. Matches es la marca
// derivada "pasa el filtro actual"; se persiste junto con el registro
// para que exportar lo visible y la paginación coincidan entre vistas.
type Record struct {
	ID       int             `json:"id"`
	Name     string          `json:"recurso"`
	Category string          `json:"categoria"`
	Quantity int             `json:"cantidad"`
	Price    decimal.Decimal `json:"precio"`
	Photo    string          `json:"foto"`
	Note     string          `json:"info"`
	Matches  bool            `json:"match"`
}

// Draft es la entrada cruda de un alta o edición. Cantidad y precio
// llegan como texto y se coaccionan a 0 cuando no parsean; nunca se
// rechazan por formato.
type Draft struct {
	Name     string `json:"recurso"`
	Category string `json:"categoria"`
	Quantity string `json:"cantidad"`
	Price    string `json:"precio"`
	Photo    string `json:"foto"`
	Note     string `json:"info"`
}

// parseQuantity coacciona la cantidad a un entero no negativo
func parseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parsePrice coacciona el precio a un decimal no negativo
func parsePrice(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
