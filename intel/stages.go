// ABOUTME: Stage aggregation across the canonical sales funnel
// ABOUTME: Computes per-stage counts, value, conversion rate, and dwell time
package intel

import (
	"math"
	"time"

	"github.com/harperreed/dealscope/models"
)

// StageMetric is the derived per-stage view of the pipeline. BottleneckRisk
// is zero until the bottleneck scorer has run over the metric set.
type StageMetric struct {
	Stage          string  `json:"stage"`
	Count          int     `json:"count"`
	Value          float64 `json:"value"`
	AvgDealSize    float64 `json:"avg_deal_size"`
	ConversionRate float64 `json:"conversion_rate"` // 0-100
	AvgTimeInStage float64 `json:"avg_time_in_stage"` // days
	BottleneckRisk float64 `json:"bottleneck_risk"` // 0-100
}

// AggregateStages buckets opportunities into the canonical six-stage funnel.
// Opportunities in extended statuses (on_hold, cancelled, ...) and records
// with a missing stage are excluded from the breakdown.
//
// Conversion rate compares the stage field on both sides: count in the next
// canonical stage over count in this stage.
func AggregateStages(opps []models.Opportunity, now time.Time) []StageMetric {
	buckets := make(map[string][]models.Opportunity, len(models.CanonicalStages))
	for _, o := range opps {
		if !models.IsCanonicalStage(o.Stage) {
			continue
		}
		buckets[o.Stage] = append(buckets[o.Stage], o)
	}

	metrics := make([]StageMetric, 0, len(models.CanonicalStages))
	for i, stage := range models.CanonicalStages {
		inStage := buckets[stage]
		m := StageMetric{Stage: stage, Count: len(inStage)}

		for _, o := range inStage {
			m.Value += o.DealSize
		}
		if m.Count > 0 {
			m.AvgDealSize = m.Value / float64(m.Count)
		}

		m.ConversionRate = conversionRate(stage, i, buckets)
		m.AvgTimeInStage = avgTimeInStage(inStage, now)

		metrics = append(metrics, m)
	}

	return metrics
}

func conversionRate(stage string, index int, buckets map[string][]models.Opportunity) float64 {
	count := len(buckets[stage])
	if count == 0 {
		return 0
	}

	switch stage {
	case models.StageClosedWon:
		return 100
	case models.StageClosedLost:
		return 0
	}

	next := models.CanonicalStages[index+1]
	rate := math.Round(float64(len(buckets[next])) / float64(count) * 100)
	return clampScore(rate)
}

func avgTimeInStage(opps []models.Opportunity, now time.Time) float64 {
	if len(opps) == 0 {
		return 0
	}

	var total float64
	for _, o := range opps {
		if o.StageVelocity != nil {
			total += *o.StageVelocity
			continue
		}
		total += math.Min(daysSince(o.CreatedAt, now), stageEstimateCapDays)
	}

	return total / float64(len(opps))
}
