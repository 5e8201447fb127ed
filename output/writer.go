package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ojtlog/ojt"
)

// DefaultFilenamePrefix names export files when no prefix is configured.
const DefaultFilenamePrefix = "OJT_Time_Logs"

type Writer interface {
	Write(w io.Writer, entries []ojt.Entry) error
	Extension() string
	ContentType() string
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Filename returns "<prefix>_YYYY-MM-DD.<ext>" for the day of now.
func Filename(prefix, ext string, now time.Time) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultFilenamePrefix
	}
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("2006-01-02"), strings.TrimPrefix(ext, "."))
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
