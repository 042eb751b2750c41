package output

import (
	"encoding/json"
	"fmt"

	"github.com/drawsim/retirement-survival/internal/domain"
)

// JSONFormatter renders the whole report as indented JSON, the shape the
// dashboard layer consumes.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }
func (JSONFormatter) Ext() string  { return "json" }

func (JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}
