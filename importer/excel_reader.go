package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// preferredSheet is the sheet written by the export command.
const preferredSheet = "Time Logs"

type ExcelReader struct{}

func (r *ExcelReader) Read(path string) ([]Record, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if index, err := file.GetSheetIndex(preferredSheet); err == nil && index >= 0 {
		sheetName = preferredSheet
	}
	if sheetName == "" {
		return nil, fmt.Errorf("excel file has no sheets: %s", path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheetName)
	}

	headers := normalizeHeaders(rows[0])
	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		records = append(records, recordFromRow(i+2, headers, row))
	}

	return records, nil
}
