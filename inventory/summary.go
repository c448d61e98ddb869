package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategorySummary agrega los totales de una categoría para las vistas
// de categorías y presupuesto. Una categoría puede existir sin
// registros: aparece con totales en cero.
type CategorySummary struct {
	Name          string          `json:"nombre"`
	ResourceCount int             `json:"recursos"`
	TotalQuantity int             `json:"unidades"`
	TotalValue    decimal.Decimal `json:"valor"`
	TopResource   string          `json:"recurso_destacado,omitempty"`
}

// BuildCategorySummaries construye el resumen por categoría a partir de
// la unión del registro de categorías y las categorías presentes en los
// registros. La identidad de categoría ignora mayúsculas y conserva la
// grafía de la primera aparición; el resultado queda ordenado según la
// colación española.
func BuildCategorySummaries(records []Record, categories []string) []CategorySummary {
	collator := collate.New(language.Spanish, collate.IgnoreCase)

	byKey := make(map[string]string)
	var names []string
	add := func(raw string) {
		name := strings.TrimSpace(raw)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, dup := byKey[key]; dup {
			return
		}
		byKey[key] = name
		names = append(names, name)
	}

	for _, name := range categories {
		add(name)
	}
	for _, record := range records {
		add(record.Category)
	}
	collator.SortStrings(names)

	summaries := make([]CategorySummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, summarizeCategory(name, records))
	}
	return summaries
}

func summarizeCategory(name string, records []Record) CategorySummary {
	normalized := strings.ToLower(strings.TrimSpace(name))

	summary := CategorySummary{Name: name, TotalValue: decimal.Zero}
	topQuantity := -1
	for _, record := range records {
		if strings.ToLower(strings.TrimSpace(record.Category)) != normalized {
			continue
		}

		summary.ResourceCount++
		summary.TotalQuantity += record.Quantity
		summary.TotalValue = summary.TotalValue.Add(
			record.Price.Mul(decimal.NewFromInt(int64(record.Quantity))))

		if record.Quantity > topQuantity {
			topQuantity = record.Quantity
			summary.TopResource = record.Name
		}
	}
	return summary
}
