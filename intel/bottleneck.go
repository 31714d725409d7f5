// ABOUTME: Bottleneck scoring over stage metrics
// ABOUTME: Converts dwell time and conversion rate into risk scores with diagnosed issues
package intel

import (
	"fmt"

	"github.com/harperreed/dealscope/models"
)

// Impact levels for a diagnosed bottleneck.
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

// Bottleneck describes a stage whose risk score crossed the reporting floor.
type Bottleneck struct {
	Stage   string   `json:"stage"`
	Risk    float64  `json:"risk"`
	Impact  string   `json:"impact"`
	Issue   string   `json:"issue"`
	Actions []string `json:"actions"`
}

// ScoreBottlenecks fills in BottleneckRisk on every metric and returns the
// stages risky enough to report, in canonical stage order.
func ScoreBottlenecks(metrics []StageMetric) []Bottleneck {
	var bottlenecks []Bottleneck

	for i := range metrics {
		m := &metrics[i]
		m.BottleneckRisk = bottleneckRisk(m)

		if m.BottleneckRisk <= bottleneckRiskFloor {
			continue
		}

		bottlenecks = append(bottlenecks, Bottleneck{
			Stage:   m.Stage,
			Risk:    m.BottleneckRisk,
			Impact:  impactFor(m.BottleneckRisk),
			Issue:   issueFor(m),
			Actions: actionsFor(m),
		})
	}

	return bottlenecks
}

func bottleneckRisk(m *StageMetric) float64 {
	risk := 0.0

	switch {
	case m.AvgTimeInStage > dwellSevereDays:
		risk += dwellSevereWeight
	case m.AvgTimeInStage > dwellHighDays:
		risk += dwellHighWeight
	case m.AvgTimeInStage > dwellModerateDays:
		risk += dwellModerateWeight
	}

	switch {
	case m.ConversionRate < convCriticalPct:
		risk += convCriticalWeight
	case m.ConversionRate < convLowPct:
		risk += convLowWeight
	}

	if m.Stage == models.StageProspecting && m.AvgTimeInStage > prospectingDwellDays {
		risk += prospectingDwellWeight
	}
	if m.Stage == models.StageNegotiation && m.ConversionRate < negotiationConvPct {
		risk += negotiationConvWeight
	}

	return clampScore(risk)
}

func impactFor(risk float64) string {
	switch {
	case risk > impactHighThreshold:
		return ImpactHigh
	case risk > impactMedThreshold:
		return ImpactMedium
	}
	return ImpactLow
}

func issueFor(m *StageMetric) string {
	switch m.Stage {
	case models.StageProspecting:
		return fmt.Sprintf("leads linger %.0f days in prospecting with only %.0f%% advancing", m.AvgTimeInStage, m.ConversionRate)
	case models.StageQualification:
		return fmt.Sprintf("qualification takes %.0f days on average and converts at %.0f%%", m.AvgTimeInStage, m.ConversionRate)
	case models.StageProposal:
		return fmt.Sprintf("proposals sit %.0f days before a decision, %.0f%% move forward", m.AvgTimeInStage, m.ConversionRate)
	case models.StageNegotiation:
		return fmt.Sprintf("negotiations stall for %.0f days and close at %.0f%%", m.AvgTimeInStage, m.ConversionRate)
	}
	return fmt.Sprintf("%s holds deals %.0f days with a %.0f%% conversion rate", m.Stage, m.AvgTimeInStage, m.ConversionRate)
}

func actionsFor(m *StageMetric) []string {
	if m.Stage == models.StageProspecting && m.BottleneckRisk > stageActionRiskFloor {
		return []string{
			"Improve lead qualification criteria",
			"Enhance lead nurturing",
			"Increase prospecting activities",
		}
	}

	if m.Stage == models.StageNegotiation && m.BottleneckRisk > negotiationIssueRisk {
		return []string{
			"Review pricing strategy against recent losses",
			"Coach reps on negotiation tactics",
			"Reinforce the value proposition earlier in the cycle",
		}
	}

	return []string{
		"Review exit criteria for this stage",
		"Increase follow-up frequency on stalled deals",
		"Escalate deals idle beyond the stage average",
	}
}
