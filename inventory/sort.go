package inventory

import (
	"sort"
	"strings"
)

// SortKey identifica la columna por la que se ordena la tabla
type SortKey string

// Claves de ordenamiento disponibles. SortNone es el modo por defecto:
// no reordena y conserva el orden vigente de la colección.
const (
	SortNone     SortKey = ""
	SortID       SortKey = "id"
	SortName     SortKey = "recurso"
	SortCategory SortKey = "categoria"
	SortQuantity SortKey = "cantidad"
	SortPrice    SortKey = "precio"
)

// ParseSortCriteria interpreta un criterio del selector del portal
// ("precio-desc", "recurso-asc", ...). Devuelve ok=false para el modo
// por defecto o un criterio desconocido.
func ParseSortCriteria(criteria string) (key SortKey, ascending bool, ok bool) {
	base, dir, found := strings.Cut(strings.TrimSpace(criteria), "-")
	if !found || (dir != "asc" && dir != "desc") {
		return SortNone, false, false
	}

	switch SortKey(base) {
	case SortID, SortName, SortCategory, SortQuantity, SortPrice:
		return SortKey(base), dir == "asc", true
	}
	return SortNone, false, false
}

// applySortLocked reordena la colección según la clave vigente. El orden
// es estable: registros con claves iguales conservan su orden relativo.
// Requiere el mutex del motor.
func (e *Engine) applySortLocked() {
	if e.sortKey == SortNone {
		return
	}

	key, asc := e.sortKey, e.sortAsc
	sort.SliceStable(e.records, func(i, j int) bool {
		a, b := e.records[i], e.records[j]
		if !asc {
			a, b = b, a
		}

		switch key {
		case SortID:
			return a.ID < b.ID
		case SortQuantity:
			return a.Quantity < b.Quantity
		case SortPrice:
			return a.Price.LessThan(b.Price)
		case SortCategory:
			return e.collator.CompareString(a.Category, b.Category) < 0
		default:
			return e.collator.CompareString(a.Name, b.Name) < 0
		}
	})
}
