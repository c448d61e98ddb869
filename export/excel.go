// Package export implementa el sumidero de exportación a hoja de
// cálculo del portal. Es la capacidad opcional que el motor de
// inventario recibe inyectada: si no se inyecta, exportar a hoja de
// cálculo no hace nada.
package export

import "github.com/xuri/excelize/v2"

// ExcelWriter produce libros XLSX a partir de una matriz de
// encabezado más filas
type ExcelWriter struct{}

// NewExcelWriter crea el escritor de hojas de cálculo
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// Write vuelca las filas en una hoja con el nombre dado y devuelve el
// contenido del libro
func (w *ExcelWriter) Write(rows [][]string, sheetName string) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, field := range row {
			values[j] = field
		}
		if err := file.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
