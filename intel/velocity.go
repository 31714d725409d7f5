// ABOUTME: Sales velocity calculations over opportunities and pipeline deals
// ABOUTME: Covers cycle length, stage transition speed, and deal-flow warnings
package intel

import (
	"math"
	"time"

	"github.com/harperreed/dealscope/models"
)

// VelocityMetrics describes how fast deals move through the pipeline.
type VelocityMetrics struct {
	AvgTimeToClose       float64            `json:"avg_time_to_close"`   // days, closed deals only
	AvgTimeInPipeline    float64            `json:"avg_time_in_pipeline"` // days, all deals
	StageTransitionSpeed map[string]float64 `json:"stage_transition_speed"`
	Bottlenecks          []string           `json:"bottlenecks,omitempty"`
}

// CalculateVelocity derives cycle metrics from the opportunity set and the
// already-scored stage metrics.
func CalculateVelocity(opps []models.Opportunity, metrics []StageMetric, now time.Time) VelocityMetrics {
	v := VelocityMetrics{
		StageTransitionSpeed: make(map[string]float64, len(metrics)),
	}

	var closedTotal float64
	var closedCount int
	var allTotal float64

	for _, o := range opps {
		days := pipelineDays(o, now)
		allTotal += days

		if o.Stage == models.StageClosedWon || o.Stage == models.StageClosedLost {
			closedTotal += days
			closedCount++
		}
	}

	if closedCount > 0 {
		v.AvgTimeToClose = closedTotal / float64(closedCount)
	} else {
		v.AvgTimeToClose = timeToCloseFallbackDays
	}

	if len(opps) > 0 {
		v.AvgTimeInPipeline = allTotal / float64(len(opps))
	}

	for _, m := range metrics {
		v.StageTransitionSpeed[m.Stage] = m.AvgTimeInStage
		if m.BottleneckRisk > velocityRiskFloor {
			v.Bottlenecks = append(v.Bottlenecks, m.Stage)
		}
	}

	return v
}

// pipelineDays is the opportunity's total time in the pipeline: creation to
// last update for closed deals, creation to now for open ones. Dirty records
// with a non-positive span fall back to the cycle-length default.
func pipelineDays(o models.Opportunity, now time.Time) float64 {
	end := now
	if models.IsClosedStage(o.Stage) {
		end = o.UpdatedAt
	}

	days := end.Sub(o.CreatedAt).Hours() / 24
	if days <= 0 {
		return timeToCloseFallbackDays
	}
	return days
}

// PipelineDeal is the deal-level view used for velocity and forecast math.
type PipelineDeal struct {
	ID              string     `json:"id"`
	Value           float64    `json:"value"`
	Stage           string     `json:"stage"`
	Probability     float64    `json:"probability"` // 0-1, clamped
	WeightedValue   float64    `json:"weighted_value"`
	OrderDate       time.Time  `json:"order_date"`
	ClosedDate      *time.Time `json:"closed_date,omitempty"`
	PipelineAgeDays float64    `json:"pipeline_age_days"`
	SalesCycleDays  *float64   `json:"sales_cycle_days,omitempty"`
}

// MapPipelineDeals converts opportunities into the deal-level view.
func MapPipelineDeals(opps []models.Opportunity, now time.Time) []PipelineDeal {
	deals := make([]PipelineDeal, 0, len(opps))

	for _, o := range opps {
		prob := math.Min(math.Max(o.Probability/100, dealProbabilityFloor), dealProbabilityCeil)

		d := PipelineDeal{
			ID:              o.ID.String(),
			Value:           o.DealSize,
			Stage:           o.Stage,
			Probability:     prob,
			WeightedValue:   o.DealSize * prob,
			OrderDate:       o.CreatedAt,
			PipelineAgeDays: daysSince(o.CreatedAt, now),
		}

		if o.Stage == models.StageClosedWon {
			closed := o.UpdatedAt
			d.ClosedDate = &closed
			cycle := daysSince(o.CreatedAt, closed)
			d.SalesCycleDays = &cycle
		}

		deals = append(deals, d)
	}

	return deals
}

// VelocityStats is the contract returned by the deal-statistics collaborator.
type VelocityStats struct {
	DealsPerMonth    float64 `json:"deals_per_month"`
	VelocityPerMonth float64 `json:"velocity_per_month"`
	AverageDealSize  float64 `json:"average_deal_size"`
}

// DealStats computes velocity statistics over pipeline deals. The engine only
// consumes the output contract, so tests and callers can substitute their own.
type DealStats interface {
	CalculateVelocityMetrics(deals []PipelineDeal, now time.Time) VelocityStats
}

// SimpleDealStats derives deal flow from closed-won deals spread over the
// months the pipeline spans.
type SimpleDealStats struct{}

func (SimpleDealStats) CalculateVelocityMetrics(deals []PipelineDeal, now time.Time) VelocityStats {
	var stats VelocityStats
	if len(deals) == 0 {
		return stats
	}

	earliest := deals[0].OrderDate
	var totalValue float64
	var wonCount int
	var wonValue float64

	for _, d := range deals {
		if d.OrderDate.Before(earliest) {
			earliest = d.OrderDate
		}
		totalValue += d.Value
		if d.ClosedDate != nil {
			wonCount++
			wonValue += d.Value
		}
	}

	months := math.Max(daysSince(earliest, now)/30, 1)
	stats.DealsPerMonth = float64(wonCount) / months
	stats.VelocityPerMonth = wonValue / months
	stats.AverageDealSize = totalValue / float64(len(deals))

	return stats
}

// DealVelocity pairs the collaborator's statistics with the engine's warnings.
type DealVelocity struct {
	VelocityStats
	Warnings []string `json:"warnings,omitempty"`
}

// AssessDealVelocity flags critically slow deal flow from the collaborator's
// numbers.
func AssessDealVelocity(stats VelocityStats) DealVelocity {
	dv := DealVelocity{VelocityStats: stats}

	if stats.DealsPerMonth < dealsPerMonthCritical {
		dv.Warnings = append(dv.Warnings, "deal flow is critically low: less than one deal closes per month")
	} else if stats.DealsPerMonth < dealsPerMonthLow {
		dv.Warnings = append(dv.Warnings, "pipeline momentum is low: fewer than three deals close per month")
	}

	if stats.VelocityPerMonth < stats.AverageDealSize {
		dv.Warnings = append(dv.Warnings, "sales cycle is too slow: monthly revenue runs below the average deal size")
	}

	return dv
}
