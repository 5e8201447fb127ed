package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"ojtlog/internal/timeutil"
	"ojtlog/ojt"
)

type Result struct {
	FilesProcessed int
	RowsRead       int
	RowsMapped     int
	RowsSkipped    int
	Entries        []ojt.Entry
}

type RunOptions struct {
	Format            string
	DefaultSupervisor string
}

// Run reads every file and groups its task rows into one entry per day,
// supervisor and learning outcome, in order of first appearance.
func Run(paths []string, options RunOptions) (*Result, error) {
	result := &Result{Entries: make([]ojt.Entry, 0, 64)}
	mapper := &Mapper{DefaultSupervisor: options.DefaultSupervisor}

	type groupKey struct {
		day        string
		supervisor string
		outcome    string
	}
	index := make(map[groupKey]int)

	for _, path := range paths {
		sourceFormat, err := inferFormat(path, options.Format)
		if err != nil {
			return nil, err
		}
		reader, err := ReaderForFormat(sourceFormat)
		if err != nil {
			return nil, err
		}

		records, err := reader.Read(path)
		if err != nil {
			return nil, err
		}

		result.FilesProcessed++
		result.RowsRead += len(records)
		for _, record := range records {
			row, ok, err := mapper.Map(record)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			if !ok {
				result.RowsSkipped++
				continue
			}
			if row.Supervisor == "" {
				return nil, fmt.Errorf("%s: row %d: supervisor is required (add a Supervisor column or pass a default)", path, record.RowNumber)
			}

			result.RowsMapped++
			key := groupKey{day: timeutil.DayKey(row.Date), supervisor: row.Supervisor, outcome: row.LearningOutcome}
			i, seen := index[key]
			if !seen {
				i = len(result.Entries)
				index[key] = i
				result.Entries = append(result.Entries, ojt.Entry{
					Date:       timeutil.StartOfDay(row.Date),
					Supervisor: row.Supervisor,
					Notes:      row.LearningOutcome,
				})
			}
			result.Entries[i].Tasks = append(result.Entries[i].Tasks, row.Task)
		}
	}

	return result, nil
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}
