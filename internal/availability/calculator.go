// Package availability derives availability figures and percentages from the
// three time quantities reported for a cluster period.
package availability

import (
	"math"

	"github.com/hpcops/availspect/internal/models"
)

// Compute derives the availability result from one metric triple:
//
//	UnavailableTotal     = Down + PlannedDown
//	AvailableTotal       = Reported - UnavailableTotal
//	AvailableExclPlanned = Reported - Down
//
// Each percentage is flagged independently: Undefined when reported time is
// zero (which suppresses any further checks for that run), NegativeAvailability
// when its numerator is below zero, otherwise a value rounded to two decimals.
// Pure computation; anomalies become flags, never errors.
func Compute(m models.MetricTriple) models.AvailabilityResult {
	result := models.AvailabilityResult{
		UnavailableTotal: m.Down + m.PlannedDown,
	}
	result.AvailableTotal = m.Reported - result.UnavailableTotal
	result.AvailableExclPlanned = m.Reported - m.Down

	result.PercentTotal = percentage(result.AvailableTotal, m.Reported)
	result.PercentExclPlanned = percentage(result.AvailableExclPlanned, m.Reported)
	return result
}

func percentage(numerator, reported float64) models.Percentage {
	if reported == 0 {
		return models.Percentage{Flag: models.PercentUndefined}
	}
	if numerator < 0 {
		return models.Percentage{Flag: models.PercentNegative}
	}
	return models.Percentage{
		Value: round2(numerator / reported * 100),
		Flag:  models.PercentOK,
	}
}

// round2 rounds to two decimals, half away from zero. math.Round pins the
// rule explicitly rather than inheriting whatever %.2f would do.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
