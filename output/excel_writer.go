package output

import (
	"fmt"
	"io"

	"ojtlog/ojt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Time Logs"

var columnWidths = []float64{15, 12, 35, 10, 10, 15, 20, 40, 20}

type ExcelWriter struct{}

func (w *ExcelWriter) Extension() string { return "xlsx" }
func (w *ExcelWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (w *ExcelWriter) Write(out io.Writer, entries []ojt.Entry) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename excel sheet: %w", err)
	}

	for col, width := range columnWidths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := file.SetColWidth(sheetName, name, name, width); err != nil {
			return fmt.Errorf("set excel column width %s: %w", name, err)
		}
	}

	for col, header := range Headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, row := range BuildRows(entries) {
		if row.Kind == RowSpacer {
			continue
		}
		for col, value := range row.Values() {
			if value == "" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := file.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if _, err := file.WriteTo(out); err != nil {
		return fmt.Errorf("write excel output: %w", err)
	}
	return nil
}
