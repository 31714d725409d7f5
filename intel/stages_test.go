// ABOUTME: Tests for stage aggregation
// ABOUTME: Covers count/value conservation, conversion rates, and dwell estimates
package intel

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealscope/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

func opp(stage string, dealSize float64, ageDays int) models.Opportunity {
	created := testNow.AddDate(0, 0, -ageDays)
	return models.Opportunity{
		ID:        uuid.New(),
		Name:      "deal",
		Stage:     stage,
		DealSize:  dealSize,
		OwnerID:   "alice",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestAggregateStagesConservation(t *testing.T) {
	opps := []models.Opportunity{
		opp(models.StageProspecting, 10000, 5),
		opp(models.StageProspecting, 20000, 10),
		opp(models.StageQualification, 15000, 20),
		opp(models.StageProposal, 40000, 30),
		opp(models.StageNegotiation, 80000, 40),
		opp(models.StageClosedWon, 50000, 60),
		opp(models.StageClosedLost, 25000, 60),
	}

	metrics := AggregateStages(opps, testNow)
	require.Len(t, metrics, len(models.CanonicalStages))

	totalCount := 0
	totalValue := 0.0
	for _, m := range metrics {
		totalCount += m.Count
		totalValue += m.Value
	}

	assert.Equal(t, len(opps), totalCount)
	assert.InDelta(t, 240000, totalValue, 0.001)
}

func TestAggregateStagesStageOrder(t *testing.T) {
	metrics := AggregateStages(nil, testNow)
	require.Len(t, metrics, 6)
	for i, m := range metrics {
		assert.Equal(t, models.CanonicalStages[i], m.Stage)
	}
}

func TestAggregateStagesEmptyInput(t *testing.T) {
	metrics := AggregateStages(nil, testNow)

	for _, m := range metrics {
		assert.Zero(t, m.Count)
		assert.Zero(t, m.Value)
		assert.Zero(t, m.AvgDealSize)
		assert.Zero(t, m.ConversionRate)
		assert.Zero(t, m.AvgTimeInStage)
	}
}

func TestAggregateStagesConversionRate(t *testing.T) {
	opps := []models.Opportunity{
		opp(models.StageProspecting, 1000, 5),
		opp(models.StageProspecting, 1000, 5),
		opp(models.StageProspecting, 1000, 5),
		opp(models.StageProspecting, 1000, 5),
		opp(models.StageQualification, 1000, 5),
		opp(models.StageClosedWon, 1000, 5),
		opp(models.StageClosedLost, 1000, 5),
	}

	metrics := AggregateStages(opps, testNow)
	byStage := stageIndex(metrics)

	// 1 qualification / 4 prospecting = 25%
	assert.Equal(t, 25.0, byStage[models.StageProspecting].ConversionRate)
	assert.Equal(t, 100.0, byStage[models.StageClosedWon].ConversionRate)
	assert.Equal(t, 0.0, byStage[models.StageClosedLost].ConversionRate)
}

func TestAggregateStagesConversionRateClamped(t *testing.T) {
	// More deals downstream than upstream must not push the rate above 100.
	opps := []models.Opportunity{
		opp(models.StageProposal, 1000, 5),
		opp(models.StageNegotiation, 1000, 5),
		opp(models.StageNegotiation, 1000, 5),
		opp(models.StageNegotiation, 1000, 5),
	}

	metrics := AggregateStages(opps, testNow)
	for _, m := range metrics {
		assert.GreaterOrEqual(t, m.ConversionRate, 0.0)
		assert.LessOrEqual(t, m.ConversionRate, 100.0)
	}
}

func TestAggregateStagesDwellEstimateCapped(t *testing.T) {
	opps := []models.Opportunity{
		opp(models.StageProspecting, 1000, 400),
	}

	metrics := AggregateStages(opps, testNow)
	byStage := stageIndex(metrics)

	assert.Equal(t, 90.0, byStage[models.StageProspecting].AvgTimeInStage)
}

func TestAggregateStagesExplicitVelocityWins(t *testing.T) {
	velocity := 12.5
	o := opp(models.StageProposal, 1000, 400)
	o.StageVelocity = &velocity

	metrics := AggregateStages([]models.Opportunity{o}, testNow)
	byStage := stageIndex(metrics)

	assert.Equal(t, 12.5, byStage[models.StageProposal].AvgTimeInStage)
}

func TestAggregateStagesIgnoresExtendedStatuses(t *testing.T) {
	opps := []models.Opportunity{
		opp(models.StageOnHold, 5000, 10),
		opp(models.StageCancelled, 5000, 10),
		opp("", 5000, 10),
		opp(models.StageProposal, 7000, 10),
	}

	metrics := AggregateStages(opps, testNow)

	totalCount := 0
	for _, m := range metrics {
		totalCount += m.Count
	}
	assert.Equal(t, 1, totalCount)
}

func stageIndex(metrics []StageMetric) map[string]StageMetric {
	byStage := make(map[string]StageMetric, len(metrics))
	for _, m := range metrics {
		byStage[m.Stage] = m
	}
	return byStage
}
