// ABOUTME: Tests for performer ranking
// ABOUTME: Covers win rates, tier assignment, ordering, and truncation
package intel

import (
	"fmt"
	"testing"

	"github.com/harperreed/dealscope/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownedOpp(owner, stage string, dealSize float64) models.Opportunity {
	o := opp(stage, dealSize, 30)
	o.OwnerID = owner
	return o
}

func TestRankPerformersWinRateAndValue(t *testing.T) {
	opps := []models.Opportunity{
		ownedOpp("alice", models.StageClosedWon, 120000),
		ownedOpp("alice", models.StageClosedWon, 150000),
		ownedOpp("alice", models.StageClosedLost, 130000),
		ownedOpp("bob", models.StageClosedWon, 10000),
		ownedOpp("bob", models.StageProposal, 5000),
	}

	performers := RankPerformers(opps)
	require.Len(t, performers, 2)

	alice := performers[0]
	assert.Equal(t, "alice", alice.OwnerID)
	assert.Equal(t, 3, alice.Deals)
	assert.Equal(t, 2, alice.Won)
	assert.Equal(t, 1, alice.Lost)
	assert.InDelta(t, 66.67, alice.WinRate, 0.01)
	assert.InDelta(t, 400000, alice.Value, 0.001)
}

func TestRankPerformersTiers(t *testing.T) {
	tests := []struct {
		name string
		opps []models.Opportunity
		tier string
	}{
		{
			// 100% win rate, 150k average.
			name: "excellent",
			opps: []models.Opportunity{
				ownedOpp("x", models.StageClosedWon, 150000),
				ownedOpp("x", models.StageClosedWon, 150000),
			},
			tier: TierExcellent,
		},
		{
			// 50% win rate, small deals.
			name: "good by win rate",
			opps: []models.Opportunity{
				ownedOpp("x", models.StageClosedWon, 1000),
				ownedOpp("x", models.StageClosedLost, 1000),
			},
			tier: TierGood,
		},
		{
			// 0% win rate but 60k average deal size still reads as good.
			name: "good by deal size",
			opps: []models.Opportunity{
				ownedOpp("x", models.StageClosedLost, 60000),
			},
			tier: TierGood,
		},
		{
			// 0% win rate, small deals.
			name: "needs improvement",
			opps: []models.Opportunity{
				ownedOpp("x", models.StageClosedLost, 1000),
				ownedOpp("x", models.StageClosedLost, 1000),
			},
			tier: TierNeedsImprovement,
		},
		{
			// 25% win rate, modest deals.
			name: "average",
			opps: []models.Opportunity{
				ownedOpp("x", models.StageClosedWon, 10000),
				ownedOpp("x", models.StageClosedLost, 10000),
				ownedOpp("x", models.StageClosedLost, 10000),
				ownedOpp("x", models.StageClosedLost, 10000),
			},
			tier: TierAverage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			performers := RankPerformers(tc.opps)
			require.Len(t, performers, 1)
			assert.Equal(t, tc.tier, performers[0].Tier)
		})
	}
}

func TestRankPerformersTopFive(t *testing.T) {
	var opps []models.Opportunity
	for i := 0; i < 8; i++ {
		opps = append(opps, ownedOpp(fmt.Sprintf("owner-%d", i), models.StageProposal, float64((i+1)*1000)))
	}

	performers := RankPerformers(opps)
	require.Len(t, performers, 5)

	// Sorted by value, largest book first.
	assert.Equal(t, "owner-7", performers[0].OwnerID)
	for i := 1; i < len(performers); i++ {
		assert.GreaterOrEqual(t, performers[i-1].Value, performers[i].Value)
	}
}

func TestRankPerformersEmpty(t *testing.T) {
	assert.Empty(t, RankPerformers(nil))
}

func TestRankPerformersWinRateBounds(t *testing.T) {
	opps := []models.Opportunity{
		ownedOpp("a", models.StageClosedWon, 0),
		ownedOpp("b", models.StageProspecting, 0),
	}

	for _, p := range RankPerformers(opps) {
		assert.GreaterOrEqual(t, p.WinRate, 0.0)
		assert.LessOrEqual(t, p.WinRate, 100.0)
	}
}
