package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func budgetRecords() []Record {
	return []Record{
		{ID: 1, Name: "Bomba sumergible", Category: "Bombas de agua", Quantity: 5, Price: decimal.NewFromInt(120)},
		{ID: 2, Name: "Kit rodamientos", Category: "Repuestos", Quantity: 2, Price: decimal.RequireFromString("45.5")},
		{ID: 3, Name: "Bomba periférica", Category: "Bombas de agua", Quantity: 8, Price: decimal.NewFromInt(80)},
		{ID: 4, Name: "Retén", Category: "repuestos", Quantity: 10, Price: decimal.NewFromInt(3)},
	}
}

func TestResumenesPorCategoria(t *testing.T) {
	summaries := BuildCategorySummaries(budgetRecords(), []string{"Herramientas"})

	// Unión de registro de categorías y categorías presentes, ordenada
	// por colación; "repuestos" se funde con "Repuestos"
	require.Len(t, summaries, 3)
	assert.Equal(t, "Bombas de agua", summaries[0].Name)
	assert.Equal(t, "Herramientas", summaries[1].Name)
	assert.Equal(t, "Repuestos", summaries[2].Name)

	bombas := summaries[0]
	assert.Equal(t, 2, bombas.ResourceCount)
	assert.Equal(t, 13, bombas.TotalQuantity)
	assert.True(t, bombas.TotalValue.Equal(decimal.NewFromInt(1240))) // 5*120 + 8*80
	assert.Equal(t, "Bomba periférica", bombas.TopResource)           // mayor cantidad

	// Una categoría sin registros existe con totales en cero
	herramientas := summaries[1]
	assert.Equal(t, 0, herramientas.ResourceCount)
	assert.True(t, herramientas.TotalValue.IsZero())
	assert.Empty(t, herramientas.TopResource)

	repuestos := summaries[2]
	assert.Equal(t, 2, repuestos.ResourceCount)
	assert.Equal(t, 12, repuestos.TotalQuantity)
	assert.True(t, repuestos.TotalValue.Equal(decimal.NewFromInt(121))) // 2*45.5 + 10*3
}

func TestReportePresupuesto(t *testing.T) {
	report := BuildBudgetReport(budgetRecords(), nil)

	assert.Equal(t, 4, report.ResourceCount)
	assert.Equal(t, 25, report.TotalUnits)
	assert.True(t, report.TotalValue.Equal(decimal.NewFromInt(1361)))
	assert.True(t, report.AverageTicket.Equal(decimal.RequireFromString("340.25")))

	// Categorías ordenadas por inversión descendente
	require.Len(t, report.Categories, 2)
	assert.Equal(t, "Bombas de agua", report.Categories[0].Name)
	assert.Equal(t, "Repuestos", report.Categories[1].Name)

	require.NotNil(t, report.LeadingCategory)
	assert.Equal(t, "Bombas de agua", report.LeadingCategory.Name)
	assert.True(t, report.LeadingCategory.TotalValue.Equal(decimal.NewFromInt(1240)))

	// Datos de gráficos alineados con sus paletas
	assert.Equal(t, []string{"Bombas de agua", "Repuestos"}, report.Doughnut.Labels)
	assert.Len(t, report.Doughnut.Colors, 2)
	assert.Len(t, report.Bar.Labels, 4)
	assert.Equal(t, "Bomba periférica", report.Bar.Labels[0]) // 8*80 = 640 encabeza
}

func TestReportePresupuestoVacio(t *testing.T) {
	report := BuildBudgetReport(nil, nil)

	assert.Equal(t, 0, report.ResourceCount)
	assert.True(t, report.TotalValue.IsZero())
	assert.True(t, report.AverageTicket.IsZero())
	assert.Nil(t, report.LeadingCategory)
	assert.Empty(t, report.Categories)
}

func TestPresupuestoAgrupaSinCategoria(t *testing.T) {
	records := []Record{
		{ID: 1, Name: "Suelto", Category: "", Quantity: 2, Price: decimal.NewFromInt(10)},
		{ID: 2, Name: "Bomba", Category: "Bombas de agua", Quantity: 1, Price: decimal.NewFromInt(5)},
	}

	report := BuildBudgetReport(records, nil)
	require.Len(t, report.Categories, 2)
	assert.Equal(t, UncategorizedLabel, report.Categories[0].Name) // 20 > 5
	assert.True(t, report.Categories[0].TotalValue.Equal(decimal.NewFromInt(20)))
}

func TestPaletaCiclica(t *testing.T) {
	assert.Len(t, palette(3), 3)

	colors := palette(15)
	require.Len(t, colors, 15)
	// Pasado el tamaño base la paleta se repite cíclicamente
	assert.Equal(t, colors[0], colors[12])
}
