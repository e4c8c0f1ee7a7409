package reporter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hpcops/availspect/internal/models"
	"github.com/hpcops/availspect/pkg/config"
)

// Flag labels in the rendered report. Kept byte-for-byte compatible with the
// legacy report consumers.
const (
	labelUndefined = "N/A"
	labelNegative  = "Error (Negative Available Time)"
)

type textReporter struct {
	config *config.Config
	out    io.Writer
}

// Generate renders the report to stdout and, when an output path is
// configured, to that file as well.
func (r *textReporter) Generate(report *models.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	rendered := renderText(report)

	if r.config.OutputPath != "" {
		if err := os.WriteFile(r.config.OutputPath, []byte(rendered), 0644); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
	}
	if _, err := io.WriteString(r.out, rendered); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}

func renderText(report *models.Report) string {
	var b strings.Builder

	cluster := report.Metadata.Cluster
	if cluster == "" {
		cluster = "(default)"
	}

	fmt.Fprintf(&b, "Cluster availability: %s\n", cluster)
	fmt.Fprintf(&b, "Period: %s - %s\n", report.Metadata.PeriodStart, report.Metadata.PeriodEnd)
	b.WriteString("\n")

	m := report.Metrics
	a := report.Availability
	fmt.Fprintf(&b, "Reported time:              %s min\n", formatMinutes(m.Reported))
	fmt.Fprintf(&b, "Unplanned down time:        %s min\n", formatMinutes(m.Down))
	fmt.Fprintf(&b, "Planned down time:          %s min\n", formatMinutes(m.PlannedDown))
	fmt.Fprintf(&b, "Unavailable time:           %s min\n", formatMinutes(a.UnavailableTotal))
	fmt.Fprintf(&b, "Available time:             %s min\n", formatMinutes(a.AvailableTotal))
	fmt.Fprintf(&b, "Available excl planned:     %s min\n", formatMinutes(a.AvailableExclPlanned))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Availability:               %s\n", FormatPercent(a.PercentTotal))
	fmt.Fprintf(&b, "Availability excl planned:  %s\n", FormatPercent(a.PercentExclPlanned))

	return b.String()
}

// FormatPercent renders a percentage per the legacy contract: two decimals,
// comma as the decimal separator, trailing % only for numeric values. Flagged
// states render their label instead.
func FormatPercent(p models.Percentage) string {
	switch p.Flag {
	case models.PercentUndefined:
		return labelUndefined
	case models.PercentNegative:
		return labelNegative
	}
	return strings.Replace(fmt.Sprintf("%.2f", p.Value), ".", ",", 1) + "%"
}

// formatMinutes prints minute figures without a forced decimal tail, so
// whole-minute values stay integral in the report.
func formatMinutes(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
