package inventory

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// UncategorizedLabel agrupa en el presupuesto los registros sin categoría
const UncategorizedLabel = "Sin categoría"

// ResourceValue es la valuación de un recurso individual (cantidad por
// precio unitario), usada en el gráfico de barras
type ResourceValue struct {
	Label string          `json:"etiqueta"`
	Value decimal.Decimal `json:"valor"`
}

// ChartDataset es un conjunto de datos listo para graficar
type ChartDataset struct {
	Labels []string          `json:"etiquetas"`
	Values []decimal.Decimal `json:"valores"`
	Colors []string          `json:"colores"`
}

// BudgetReport es la vista de presupuesto: indicadores, tabla de
// categorías ordenada por inversión y los datos de los gráficos
type BudgetReport struct {
	TotalValue      decimal.Decimal   `json:"valor_total"`
	ResourceCount   int               `json:"recursos_registrados"`
	TotalUnits      int               `json:"unidades_totales"`
	AverageTicket   decimal.Decimal   `json:"ticket_promedio"`
	LeadingCategory *CategorySummary  `json:"categoria_lider,omitempty"`
	Categories      []CategorySummary `json:"categorias"`
	Doughnut        ChartDataset      `json:"grafico_dona"`
	Bar             ChartDataset      `json:"grafico_barras"`
}

// BuildBudgetReport calcula la vista de presupuesto sobre la colección
// actual. Los registros sin categoría se agrupan bajo "Sin categoría".
func BuildBudgetReport(records []Record, categories []string) BudgetReport {
	grouped := make([]Record, len(records))
	copy(grouped, records)
	for i := range grouped {
		if grouped[i].Category == "" {
			grouped[i].Category = UncategorizedLabel
		}
	}

	summaries := BuildCategorySummaries(grouped, categories)

	// Mayor inversión primero; a igual valor decide la colación del nombre
	collator := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(summaries, func(i, j int) bool {
		if !summaries[i].TotalValue.Equal(summaries[j].TotalValue) {
			return summaries[i].TotalValue.GreaterThan(summaries[j].TotalValue)
		}
		return collator.CompareString(summaries[i].Name, summaries[j].Name) < 0
	})

	report := BudgetReport{
		TotalValue:    decimal.Zero,
		ResourceCount: len(records),
		AverageTicket: decimal.Zero,
		Categories:    summaries,
	}
	for _, record := range records {
		report.TotalUnits += record.Quantity
		report.TotalValue = report.TotalValue.Add(
			record.Price.Mul(decimal.NewFromInt(int64(record.Quantity))))
	}
	if len(records) > 0 {
		report.AverageTicket = report.TotalValue.
			Div(decimal.NewFromInt(int64(len(records)))).Round(2)
	}
	if len(summaries) > 0 {
		leader := summaries[0]
		report.LeadingCategory = &leader
	}

	report.Doughnut = buildDoughnutDataset(summaries)
	report.Bar = buildBarDataset(grouped)
	return report
}

func buildDoughnutDataset(summaries []CategorySummary) ChartDataset {
	dataset := ChartDataset{Colors: palette(len(summaries))}
	for _, summary := range summaries {
		dataset.Labels = append(dataset.Labels, summary.Name)
		dataset.Values = append(dataset.Values, summary.TotalValue)
	}
	return dataset
}

// buildBarDataset toma los diez recursos de mayor valuación total
func buildBarDataset(records []Record) ChartDataset {
	values := make([]ResourceValue, 0, len(records))
	for _, record := range records {
		label := record.Name
		if label == "" {
			label = "Recurso " + strconv.Itoa(record.ID)
		}
		values = append(values, ResourceValue{
			Label: label,
			Value: record.Price.Mul(decimal.NewFromInt(int64(record.Quantity))),
		})
	}

	sort.SliceStable(values, func(i, j int) bool {
		return values[i].Value.GreaterThan(values[j].Value)
	})
	if len(values) > 10 {
		values = values[:10]
	}

	dataset := ChartDataset{Colors: palette(len(values))}
	for _, value := range values {
		dataset.Labels = append(dataset.Labels, value.Label)
		dataset.Values = append(dataset.Values, value.Value)
	}
	return dataset
}

var basePalette = []string{
	"#6d78ff", "#2ad1ff", "#55efc4", "#ffeaa7", "#a29bfe", "#ff7675",
	"#74b9ff", "#81ecec", "#fab1a0", "#fd79a8", "#fdcb6e", "#00cec9",
}

func palette(count int) []string {
	colors := make([]string, 0, count)
	for i := 0; i < count; i++ {
		colors = append(colors, basePalette[i%len(basePalette)])
	}
	return colors
}
