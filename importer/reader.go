package importer

import "fmt"

type Reader interface {
	Read(path string) ([]Record, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch normalizeHeader(format) {
	case "csv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// recordFromRow pairs a data row with normalized headers. Missing trailing
// cells read as empty.
func recordFromRow(rowNumber int, headers, row []string) Record {
	values := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(row) {
			values[header] = row[i]
		} else {
			values[header] = ""
		}
	}
	return Record{RowNumber: rowNumber, Values: values}
}

func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, header := range headers {
		out[i] = normalizeHeader(header)
	}
	return out
}
