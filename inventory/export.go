package inventory

import (
	"log"
	"strconv"
	"strings"
)

// Scope delimita qué filas se exportan: la página visible o todo el
// conjunto filtrado
type Scope string

// Alcances de exportación
const (
	ScopeVisible Scope = "visible"
	ScopeAll     Scope = "todo"
)

// SheetWriter es la capacidad opcional de exportar a hoja de cálculo.
// Su ausencia es un estado normal, no un error: sin escritor la
// exportación a hoja simplemente no hace nada.
type SheetWriter interface {
	Write(rows [][]string, sheetName string) ([]byte, error)
}

// ExportFile es un artefacto descargable producido por una exportación
type ExportFile struct {
	Name    string
	Content []byte
}

var exportHeader = []string{"ID", "Recurso", "Categoría", "Cantidad", "Precio", "Foto", "Información"}

// ExportCSV produce el archivo de texto delimitado con las filas del
// alcance pedido, en el orden de presentación actual. Todos los campos
// van entre comillas y las comillas internas se duplican.
func (e *Engine) ExportCSV(scope Scope) *ExportFile {
	e.mutex.Lock()
	rows := e.exportRowsLocked(scope)
	e.mutex.Unlock()

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		quoted := make([]string, len(row))
		for i, field := range row {
			quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		}
		lines = append(lines, strings.Join(quoted, ","))
	}

	return &ExportFile{
		Name:    "inventario_" + string(scope) + ".csv",
		Content: []byte(strings.Join(lines, "\n")),
	}
}

// ExportSheet delega en el escritor de hojas de cálculo. Devuelve nil
// sin error cuando la capacidad no está disponible.
func (e *Engine) ExportSheet(scope Scope) (*ExportFile, error) {
	e.mutex.Lock()
	sheets := e.sheets
	rows := e.exportRowsLocked(scope)
	e.mutex.Unlock()

	if sheets == nil {
		log.Println("Biblioteca de hojas de cálculo no disponible")
		return nil, nil
	}

	content, err := sheets.Write(rows, "Inventario")
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Name:    "inventario_" + string(scope) + ".xlsx",
		Content: content,
	}, nil
}

// exportRowsLocked arma encabezado más una fila por registro del
// alcance. La foto se exporta como sí/no, nunca el payload de imagen.
func (e *Engine) exportRowsLocked(scope Scope) [][]string {
	records := e.visibleLocked()
	if scope == ScopeVisible {
		records = e.pageSliceLocked(records)
	}

	rows := [][]string{exportHeader}
	for _, record := range records {
		hasPhoto := "no"
		if record.Photo != "" {
			hasPhoto = "sí"
		}
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Name,
			record.Category,
			strconv.Itoa(record.Quantity),
			record.Price.StringFixed(2),
			hasPhoto,
			record.Note,
		})
	}
	return rows
}
