package reporter

import (
	"os"

	"github.com/hpcops/availspect/internal/models"
	"github.com/hpcops/availspect/pkg/config"
)

// Reporter interface for rendering the availability report
type Reporter interface {
	Generate(report *models.Report) error
}

// New creates a reporter for the configured format. Unknown formats fall
// back to text.
func New(cfg *config.Config) Reporter {
	switch cfg.Format {
	case "json":
		return &jsonReporter{config: cfg, out: os.Stdout}
	default:
		return &textReporter{config: cfg, out: os.Stdout}
	}
}
