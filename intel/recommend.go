// ABOUTME: Rule-based recommendation synthesis
// ABOUTME: Maps computed metrics to ordered, deterministic recommendation strings
package intel

import (
	"fmt"
)

// Recommendations maps the computed metrics to advice strings. The same
// inputs always yield the same recommendations in the same order; there is
// no randomness here.
func Recommendations(bottlenecks []Bottleneck, forecast RevenueForecast, dealVelocity DealVelocity, risk RiskAssessment) []string {
	var recs []string

	if forecast.HistoricalConversionRate*100 < recommendConversionPct {
		recs = append(recs, "Win rate is below 25%: tighten qualification criteria before deals enter the pipeline")
	}

	if forecast.WeightedForecast < recommendPipelineFloor {
		recs = append(recs, "Weighted pipeline is thin: increase prospecting activity to rebuild forecast coverage")
	}

	for _, b := range bottlenecks {
		recs = append(recs, fmt.Sprintf("Clear the %s bottleneck (%s impact): %s", b.Stage, b.Impact, b.Actions[0]))
	}

	switch risk.RiskLevel {
	case RiskCritical:
		recs = append(recs, "Pipeline risk is critical: work the overdue list and re-qualify at-risk deals this week")
	case RiskHigh:
		recs = append(recs, "Pipeline risk is high: prioritize overdue follow-ups and review flagged opportunities")
	}

	if len(risk.HighRiskContacts) > 0 {
		recs = append(recs, fmt.Sprintf("Re-engage %d dormant low-score contacts before they go cold", len(risk.HighRiskContacts)))
	}

	recs = append(recs, dealVelocity.Warnings...)

	return recs
}
