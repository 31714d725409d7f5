// ABOUTME: Performer ranking by opportunity owner
// ABOUTME: Computes win rates, deal sizes, and qualitative tiers per owner
package intel

import (
	"sort"

	"github.com/harperreed/dealscope/models"
)

// Performance tier constants.
const (
	TierExcellent        = "excellent"
	TierGood             = "good"
	TierAverage          = "average"
	TierNeedsImprovement = "needs_improvement"
)

const topPerformerCount = 5

// PerformerMetric aggregates one owner's book of business.
type PerformerMetric struct {
	OwnerID     string  `json:"owner_id"`
	Deals       int     `json:"deals"`
	Won         int     `json:"won"`
	Lost        int     `json:"lost"`
	Value       float64 `json:"value"`
	WinRate     float64 `json:"win_rate"` // 0-100
	AvgDealSize float64 `json:"avg_deal_size"`
	Tier        string  `json:"tier"`
}

// RankPerformers groups opportunities by owner and returns the top owners
// by total value. Ties break on owner ID so identical snapshots always rank
// identically.
func RankPerformers(opps []models.Opportunity) []PerformerMetric {
	byOwner := make(map[string]*PerformerMetric)

	for _, o := range opps {
		p, ok := byOwner[o.OwnerID]
		if !ok {
			p = &PerformerMetric{OwnerID: o.OwnerID}
			byOwner[o.OwnerID] = p
		}

		p.Deals++
		p.Value += o.DealSize

		switch o.Stage {
		case models.StageClosedWon:
			p.Won++
		case models.StageClosedLost:
			p.Lost++
		}
	}

	performers := make([]PerformerMetric, 0, len(byOwner))
	for _, p := range byOwner {
		if p.Deals > 0 {
			p.WinRate = float64(p.Won) / float64(p.Deals) * 100
			p.AvgDealSize = p.Value / float64(p.Deals)
		}
		p.Tier = tierFor(p.WinRate, p.AvgDealSize)
		performers = append(performers, *p)
	}

	sort.Slice(performers, func(i, j int) bool {
		if performers[i].Value != performers[j].Value {
			return performers[i].Value > performers[j].Value
		}
		return performers[i].OwnerID < performers[j].OwnerID
	})

	if len(performers) > topPerformerCount {
		performers = performers[:topPerformerCount]
	}

	return performers
}

func tierFor(winRate, avgDealSize float64) string {
	switch {
	case winRate >= excellentWinRatePct && avgDealSize > excellentAvgDealSize:
		return TierExcellent
	case winRate >= goodWinRatePct || avgDealSize > goodAvgDealSize:
		return TierGood
	case winRate < poorWinRatePct:
		return TierNeedsImprovement
	}
	return TierAverage
}
