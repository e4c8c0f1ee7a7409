package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hpcops/availspect/internal/models"
	"github.com/hpcops/availspect/pkg/config"
)

type jsonReporter struct {
	config *config.Config
	out    io.Writer
}

// Generate writes the report as indented JSON to the configured output file,
// or to stdout when no path is set.
func (r *jsonReporter) Generate(report *models.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	data = append(data, '\n')

	if r.config.OutputPath != "" {
		if err := os.WriteFile(r.config.OutputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
		slog.Debug("report written", slog.String("path", r.config.OutputPath))
		return nil
	}

	if _, err := r.out.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}
