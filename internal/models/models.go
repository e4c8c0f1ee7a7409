package models

// MetricTriple holds the three quantities extracted from one utilization
// report, all in minutes. The pipeline either produces all three or fails;
// a partial triple is never constructed.
type MetricTriple struct {
	Reported    float64 `json:"reported_minutes"`
	Down        float64 `json:"down_minutes"`
	PlannedDown float64 `json:"planned_down_minutes"`
}

// PercentFlag marks whether a percentage is a usable number or a flagged
// anomaly state. Anomalies are valid results, not errors: the raw time
// figures still matter even when the ratio does not.
type PercentFlag string

const (
	PercentOK        PercentFlag = "ok"
	PercentUndefined PercentFlag = "undefined"             // reported time was zero
	PercentNegative  PercentFlag = "negative_availability" // downtime exceeded reported time
)

// Percentage is a two-decimal availability ratio. Value is meaningful only
// when Flag is PercentOK.
type Percentage struct {
	Value float64     `json:"value"`
	Flag  PercentFlag `json:"flag"`
}

// AvailabilityResult holds the derived figures for one period. Computed once
// from a MetricTriple and never mutated.
type AvailabilityResult struct {
	UnavailableTotal     float64    `json:"unavailable_minutes"`
	AvailableTotal       float64    `json:"available_minutes"`
	AvailableExclPlanned float64    `json:"available_excl_planned_minutes"`
	PercentTotal         Percentage `json:"percent_available"`
	PercentExclPlanned   Percentage `json:"percent_available_excl_planned"`
}
