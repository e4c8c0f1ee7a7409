package config

import "time"

// Config holds all runtime configuration
type Config struct {
	// Cluster / sreport settings
	Cluster    string
	SreportBin string
	Timeout    time.Duration

	// Reporting period
	Period Period

	// Output settings
	Format     string
	OutputPath string

	// Operational flags
	Verbose bool
	DryRun  bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		SreportBin: "sreport",
		Timeout:    time.Minute,
		Period:     PreviousMonth(time.Now()),
		Format:     "text",
		OutputPath: "",
		Verbose:    false,
		DryRun:     false,
	}
}
