// ABOUTME: Probabilistic revenue forecasting with scenario bands
// ABOUTME: Stage-weighted projections, calendar figures, and month-over-month anomaly alerts
package intel

import (
	"math"
	"sort"
	"time"

	"github.com/harperreed/dealscope/models"
)

// Rand supplies the variance term for monthly projections. Tests substitute a
// fixed source; *math/rand.Rand satisfies the interface.
type Rand interface {
	Float64() float64
}

// Forecast confidence levels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Anomaly severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// stageProbabilities is the forecasting table, distinct from any stored
// per-deal probability override.
var stageProbabilities = map[string]float64{
	models.StageProspecting:      0.1,
	models.StageQualification:    0.2,
	models.StageProposal:         0.4,
	models.StageNegotiation:      0.6,
	models.StageFinalApproval:    0.8,
	models.StageOnHold:           0.1,
	models.StageClosedWon:        1.0,
	models.StageClosedLost:       0,
	models.StageCancelled:        0,
	models.StageLostToCompetitor: 0,
}

// StageProbability returns the forecasting weight for a stage. Unknown stages
// forecast at zero.
func StageProbability(stage string) float64 {
	return stageProbabilities[stage]
}

// MonthlyProjection is one month of the rolling six-month projection.
type MonthlyProjection struct {
	Month      string  `json:"month"` // YYYY-MM
	Projected  float64 `json:"projected"`
	Confidence float64 `json:"confidence"` // 0-1
}

// RevenueAnomaly flags an unusual month-over-month swing in won revenue.
type RevenueAnomaly struct {
	Month         string  `json:"month"`
	PreviousMonth string  `json:"previous_month"`
	ChangePct     float64 `json:"change_pct"`
	Severity      string  `json:"severity"`
}

// RevenueForecast is the forecaster's full output.
type RevenueForecast struct {
	WeightedForecast         float64             `json:"weighted_forecast"`
	OptimisticForecast       float64             `json:"optimistic_forecast"`
	PessimisticForecast      float64             `json:"pessimistic_forecast"`
	HistoricalConversionRate float64             `json:"historical_conversion_rate"` // 0-1
	CurrentMonth             float64             `json:"current_month"`
	NextMonth                float64             `json:"next_month"`
	Quarter                  float64             `json:"quarter"`
	Year                     float64             `json:"year"`
	ConfidenceLevel          string              `json:"confidence_level"`
	Projections              []MonthlyProjection `json:"projections"`
	Anomalies                []RevenueAnomaly    `json:"anomalies,omitempty"`
}

// ForecastRevenue projects revenue from the opportunity set. The rng feeds
// only the bounded variance term of the monthly projections; everything else
// is deterministic.
func ForecastRevenue(opps []models.Opportunity, now time.Time, rng Rand) RevenueForecast {
	var f RevenueForecast

	var wonCount, closedCount int
	for _, o := range opps {
		if models.IsClosedStage(o.Stage) {
			closedCount++
			if o.Stage == models.StageClosedWon {
				wonCount++
			}
			continue
		}

		prob := StageProbability(o.Stage)
		f.WeightedForecast += o.DealSize * prob
		f.OptimisticForecast += o.DealSize * math.Min(prob*optimisticMultiplier, 1.0)
		f.PessimisticForecast += o.DealSize * prob * pessimisticMultiplier
	}

	if closedCount > 0 {
		f.HistoricalConversionRate = float64(wonCount) / float64(closedCount)
	} else {
		f.HistoricalConversionRate = defaultConversionRate
	}

	f.ConfidenceLevel = confidenceLevel(opps)
	calendarFigures(&f, opps, now)
	f.Projections = monthlyProjections(f.WeightedForecast, now, rng)
	f.Anomalies = revenueAnomalies(opps)

	return f
}

func confidenceLevel(opps []models.Opportunity) string {
	highProb := 0
	for _, o := range opps {
		if o.Probability > highProbabilityPct {
			highProb++
		}
	}

	switch {
	case highProb > confidenceHighMinDeals:
		return ConfidenceHigh
	case highProb < confidenceLowMaxDeals:
		return ConfidenceLow
	}
	return ConfidenceMedium
}

// calendarFigures fills the calendar-aligned revenue estimates: won revenue
// booked this month plus near-term open deals at full stage weight, a 30%
// tranche of qualified pipeline for the quarter, and year = quarter × 4.
func calendarFigures(f *RevenueForecast, opps []models.Opportunity, now time.Time) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var wonThisMonth, nearTerm, qualifiedTranche float64
	for _, o := range opps {
		if o.Stage == models.StageClosedWon {
			if !o.UpdatedAt.Before(monthStart) && !o.UpdatedAt.After(now) {
				wonThisMonth += o.DealSize
			}
			continue
		}
		if models.IsClosedStage(o.Stage) {
			continue
		}

		switch o.Stage {
		case models.StageNegotiation, models.StageProposal:
			nearTerm += o.DealSize * StageProbability(o.Stage)
		}
		switch o.Stage {
		case models.StageQualification, models.StageProposal:
			qualifiedTranche += o.DealSize * qualifiedQuarterWeight
		}
	}

	f.CurrentMonth = wonThisMonth + nearTerm
	f.NextMonth = nearTerm
	f.Quarter = f.CurrentMonth + f.NextMonth + qualifiedTranche
	f.Year = f.Quarter * 4
}

func monthlyProjections(weightedForecast float64, now time.Time, rng Rand) []MonthlyProjection {
	projections := make([]MonthlyProjection, 0, projectionMonths)
	base := weightedForecast / 3

	for i := 1; i <= projectionMonths; i++ {
		variance := rng.Float64()*2*projectionVarianceBound - projectionVarianceBound
		projected := base * (1 + variance) * (1 + float64(i)*projectionMonthlyGrowth)
		confidence := math.Max(projectionConfidenceFloor, projectionBaseConfidence-float64(i)*projectionConfidenceDecay)

		projections = append(projections, MonthlyProjection{
			Month:      now.AddDate(0, i, 0).Format("2006-01"),
			Projected:  projected,
			Confidence: confidence,
		})
	}

	return projections
}

// revenueAnomalies groups won revenue by the calendar month it closed in and
// alerts on large swings between consecutive recorded months. A zero-revenue
// previous month yields no ratio, so no alert.
func revenueAnomalies(opps []models.Opportunity) []RevenueAnomaly {
	byMonth := make(map[string]float64)
	for _, o := range opps {
		if o.Stage != models.StageClosedWon {
			continue
		}
		byMonth[o.UpdatedAt.Format("2006-01")] += o.DealSize
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	var anomalies []RevenueAnomaly
	for i := 1; i < len(months); i++ {
		prev := byMonth[months[i-1]]
		cur := byMonth[months[i]]
		if prev == 0 {
			continue
		}

		change := (cur - prev) / prev * 100
		if math.Abs(change) <= anomalyChangePct {
			continue
		}

		severity := SeverityMedium
		if math.Abs(change) > anomalyHighChangePct {
			severity = SeverityHigh
		}

		anomalies = append(anomalies, RevenueAnomaly{
			Month:         months[i],
			PreviousMonth: months[i-1],
			ChangePct:     change,
			Severity:      severity,
		})
	}

	return anomalies
}
