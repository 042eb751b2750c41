package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/drawsim/retirement-survival/internal/domain"
)

// Formatter defines a pluggable output formatter that renders a simulation
// report to bytes. Implementations should be pure (no side effects besides
// deterministic formatting).
type Formatter interface {
	Format(report *domain.Report) ([]byte, error)
	// Name returns a short identifier for lookup and logging.
	Name() string
	// Ext returns the file extension used by WriteFormatted.
	Ext() string
}

// builtInFormatters stores available formatters (extended incrementally).
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":        "console",
	"table":       "console",
	"json-pretty": "json",
	"csv-grid":    "csv",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliasMap[n]; ok {
		return canonical
	}
	return n
}

// GetFormatterByName fetches a registered formatter, or nil when unknown.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// WriteFormatted runs a formatter and writes its output to a timestamped
// file, returning the filename.
func WriteFormatted(f Formatter, report *domain.Report) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("survival_report_%s.%s", time.Now().Format("20060102_150405"), f.Ext())
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
