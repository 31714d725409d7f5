// ABOUTME: Aggregate risk assessment across opportunities, follow-ups, and contacts
// ABOUTME: Produces an overall risk score, categorized risk lists, and overdue items
package intel

import (
	"sort"

	"github.com/harperreed/dealscope/models"
)

// Risk levels.
const (
	RiskCritical = "critical"
	RiskHigh     = "high"
	RiskMedium   = "medium"
	RiskLow      = "low"
)

// Overdue item types and priorities.
const (
	OverdueFollowUp    = "follow_up"
	OverdueOpportunity = "opportunity"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// RiskFlag names a record that tripped the high-risk rules.
type RiskFlag struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Reasons []string `json:"reasons"`
}

// OverdueItem is a follow-up or opportunity past its due date.
type OverdueItem struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	DaysOverdue int    `json:"days_overdue"`
	Priority    string `json:"priority"`
}

// RiskAssessment is the risk assessor's full output.
type RiskAssessment struct {
	OverallRiskScore      float64       `json:"overall_risk_score"` // 0-100
	RiskLevel             string        `json:"risk_level"`
	HighRiskOpportunities []RiskFlag    `json:"high_risk_opportunities,omitempty"`
	HighRiskContacts      []RiskFlag    `json:"high_risk_contacts,omitempty"`
	OverdueItems          []OverdueItem `json:"overdue_items,omitempty"`
	HealthScore           float64       `json:"health_score"` // 0-100
}

// AssessRisk combines opportunity, follow-up, and contact signals into one
// assessment for the snapshot.
func AssessRisk(snap *Snapshot) RiskAssessment {
	var a RiskAssessment
	score := 0.0

	for _, o := range snap.Opportunities {
		if o.DealSize > largeDealSize {
			score += largeDealRisk
		}
		if pastCloseDate(o, snap) {
			score += pastCloseDateRisk
		}

		if reasons := highRiskReasons(o, snap); len(reasons) >= highRiskSignalsNeeded {
			a.HighRiskOpportunities = append(a.HighRiskOpportunities, RiskFlag{
				ID:      o.ID.String(),
				Name:    o.Name,
				Reasons: reasons,
			})
		}
	}

	for _, f := range snap.FollowUps {
		if f.IsOverdue(snap.Now) {
			score += overdueFollowUpRisk
		}
	}

	for _, c := range snap.Contacts {
		inactive := c.LastInteraction == nil || daysSince(*c.LastInteraction, snap.Now) > staleContactDays
		if inactive {
			score += staleContactRisk
		}
		if inactive && c.ContactScore < lowContactScore {
			a.HighRiskContacts = append(a.HighRiskContacts, RiskFlag{
				ID:      c.ID.String(),
				Name:    c.Name,
				Reasons: []string{"no interaction in over 90 days", "contact score below 30"},
			})
		}
	}

	a.OverallRiskScore = clampScore(score)
	a.RiskLevel = riskLevel(a.OverallRiskScore)
	a.OverdueItems = overdueItems(snap)
	a.HealthScore = healthScore(snap.Opportunities, snap)

	return a
}

func riskLevel(score float64) string {
	switch {
	case score >= riskCriticalScore:
		return RiskCritical
	case score >= riskHighScore:
		return RiskHigh
	case score >= riskMediumScore:
		return RiskMedium
	}
	return RiskLow
}

func pastCloseDate(o models.Opportunity, snap *Snapshot) bool {
	return !models.IsClosedStage(o.Stage) &&
		o.ExpectedCloseDate != nil &&
		o.ExpectedCloseDate.Before(snap.Now)
}

// highRiskReasons collects the individual signals behind the two-of-three
// high-risk rule.
func highRiskReasons(o models.Opportunity, snap *Snapshot) []string {
	if models.IsClosedStage(o.Stage) {
		return nil
	}

	var reasons []string
	if o.Probability < lowProbabilityPct {
		reasons = append(reasons, "close probability below 30%")
	}
	if o.DealSize > jumboDealSize {
		reasons = append(reasons, "deal size above 200k")
	}
	if o.Stage == models.StageProspecting && daysSince(o.CreatedAt, snap.Now) > stalledPipelineDays {
		reasons = append(reasons, "stuck in prospecting for over 60 days")
	}

	return reasons
}

// overdueItems merges overdue follow-ups and opportunities past their
// expected close date, most overdue first.
func overdueItems(snap *Snapshot) []OverdueItem {
	var items []OverdueItem

	for _, f := range snap.FollowUps {
		if !f.IsOverdue(snap.Now) {
			continue
		}

		priority := PriorityMedium
		if f.PriorityScore >= 4 {
			priority = PriorityHigh
		}

		items = append(items, OverdueItem{
			Type:        OverdueFollowUp,
			ID:          f.ID.String(),
			Name:        f.Notes,
			DaysOverdue: daysBetween(f.FollowUpDate, snap.Now),
			Priority:    priority,
		})
	}

	for _, o := range snap.Opportunities {
		if !pastCloseDate(o, snap) {
			continue
		}

		items = append(items, OverdueItem{
			Type:        OverdueOpportunity,
			ID:          o.ID.String(),
			Name:        o.Name,
			DaysOverdue: daysBetween(*o.ExpectedCloseDate, snap.Now),
			Priority:    PriorityHigh,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DaysOverdue > items[j].DaysOverdue
	})

	return items
}

// healthScore is the share of opportunities that look healthy: past
// prospecting, at decent probability, and not crowding their close date.
func healthScore(opps []models.Opportunity, snap *Snapshot) float64 {
	if len(opps) == 0 {
		return 0
	}

	healthy := 0
	for _, o := range opps {
		if o.Stage == models.StageProspecting {
			continue
		}
		if o.Probability < healthyProbabilityPct {
			continue
		}
		if o.ExpectedCloseDate != nil {
			daysOut := o.ExpectedCloseDate.Sub(snap.Now).Hours() / 24
			if daysOut <= healthyCloseBufferDays {
				continue
			}
		}
		healthy++
	}

	return clampScore(float64(healthy) / float64(len(opps)) * 100)
}
