// ABOUTME: Tests for bottleneck scoring
// ABOUTME: Covers risk accumulation, impact bands, monotonicity, and action lists
package intel

import (
	"testing"

	"github.com/harperreed/dealscope/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreBottlenecksStalledProspecting(t *testing.T) {
	// 35-day dwell (+30), 15% conversion (+40), prospecting add-on (+15).
	metrics := []StageMetric{
		{Stage: models.StageProspecting, Count: 5, AvgTimeInStage: 35, ConversionRate: 15},
	}

	bottlenecks := ScoreBottlenecks(metrics)

	assert.GreaterOrEqual(t, metrics[0].BottleneckRisk, 85.0)
	require.Len(t, bottlenecks, 1)
	assert.Equal(t, ImpactHigh, bottlenecks[0].Impact)
	assert.Equal(t, []string{
		"Improve lead qualification criteria",
		"Enhance lead nurturing",
		"Increase prospecting activities",
	}, bottlenecks[0].Actions)
}

func TestScoreBottlenecksNegotiationAddOn(t *testing.T) {
	metrics := []StageMetric{
		{Stage: models.StageNegotiation, Count: 3, AvgTimeInStage: 20, ConversionRate: 30},
	}

	bottlenecks := ScoreBottlenecks(metrics)

	// 20 dwell (+20), 30% conversion (+20), negotiation under 50% (+25).
	assert.Equal(t, 65.0, metrics[0].BottleneckRisk)
	require.Len(t, bottlenecks, 1)
	assert.Equal(t, ImpactMedium, bottlenecks[0].Impact)
}

func TestScoreBottlenecksHealthyStageNotReported(t *testing.T) {
	metrics := []StageMetric{
		{Stage: models.StageProposal, Count: 4, AvgTimeInStage: 5, ConversionRate: 80},
	}

	bottlenecks := ScoreBottlenecks(metrics)

	assert.Zero(t, metrics[0].BottleneckRisk)
	assert.Empty(t, bottlenecks)
}

func TestScoreBottlenecksRiskWithinBounds(t *testing.T) {
	metrics := []StageMetric{
		{Stage: models.StageProspecting, AvgTimeInStage: 500, ConversionRate: 0},
		{Stage: models.StageNegotiation, AvgTimeInStage: 500, ConversionRate: 0},
		{Stage: models.StageQualification},
	}

	ScoreBottlenecks(metrics)

	for _, m := range metrics {
		assert.GreaterOrEqual(t, m.BottleneckRisk, 0.0)
		assert.LessOrEqual(t, m.BottleneckRisk, 100.0)
	}
}

func TestBottleneckRiskMonotonicInDwellTime(t *testing.T) {
	previous := -1.0
	for _, dwell := range []float64{0, 5, 8, 10, 15, 20, 31, 50, 90} {
		metrics := []StageMetric{
			{Stage: models.StageQualification, Count: 2, AvgTimeInStage: dwell, ConversionRate: 35},
		}
		ScoreBottlenecks(metrics)

		assert.GreaterOrEqual(t, metrics[0].BottleneckRisk, previous,
			"risk dropped when dwell time rose to %.0f days", dwell)
		previous = metrics[0].BottleneckRisk
	}
}

func TestScoreBottlenecksGenericActionsFallback(t *testing.T) {
	metrics := []StageMetric{
		{Stage: models.StageProposal, Count: 2, AvgTimeInStage: 35, ConversionRate: 15},
	}

	bottlenecks := ScoreBottlenecks(metrics)

	require.Len(t, bottlenecks, 1)
	assert.Len(t, bottlenecks[0].Actions, 3)
	assert.NotEmpty(t, bottlenecks[0].Issue)
}

func TestScoreBottlenecksOnlyCanonicalStages(t *testing.T) {
	opps := []models.Opportunity{
		opp(models.StageProspecting, 1000, 50),
		opp(models.StageNegotiation, 9000, 80),
	}

	metrics := AggregateStages(opps, testNow)
	bottlenecks := ScoreBottlenecks(metrics)

	for _, b := range bottlenecks {
		assert.True(t, models.IsCanonicalStage(b.Stage), "bottleneck stage %q outside the funnel", b.Stage)
	}
}
