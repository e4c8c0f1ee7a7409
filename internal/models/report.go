package models

import "time"

// Report is the complete output structure
type Report struct {
	Tool         string             `json:"tool"`
	Version      string             `json:"version"`
	Timestamp    string             `json:"timestamp"`
	Metadata     Metadata           `json:"metadata"`
	Metrics      MetricTriple       `json:"metrics"`
	Availability AvailabilityResult `json:"availability"`
}

// Metadata contains report generation info
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Cluster     string    `json:"cluster"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	ReportMode  string    `json:"report_mode"` // "pipe" or "whitespace"
	RunDuration string    `json:"run_duration"`
	Version     string    `json:"version"`
}
