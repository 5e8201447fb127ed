package output

import (
	"fmt"
	"io"
	"strings"

	"ojtlog/ojt"
)

type CSVWriter struct{}

func (w *CSVWriter) Extension() string   { return "csv" }
func (w *CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }

// Write renders entries as CSV with every field quoted. Commas in task names
// and learning outcomes become semicolons. Spacer rows are empty lines.
func (w *CSVWriter) Write(out io.Writer, entries []ojt.Entry) error {
	lines := make([]string, 0)
	lines = append(lines, csvLine(Headers))

	for _, row := range BuildRows(entries) {
		if row.Kind == RowSpacer {
			lines = append(lines, "")
			continue
		}
		if row.Kind == RowTask {
			row.Task = strings.ReplaceAll(row.Task, ",", ";")
			row.LearningOutcome = strings.ReplaceAll(row.LearningOutcome, ",", ";")
		}
		lines = append(lines, csvLine(row.Values()))
	}

	if _, err := io.WriteString(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("write csv output: %w", err)
	}
	return nil
}

func csvLine(fields []string) string {
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	return b.String()
}
