// ABOUTME: Tests for the risk assessor
// ABOUTME: Covers score accumulation, risk levels, overdue items, and health score
package intel

import (
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/dealscope/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapWith(opps []models.Opportunity, followUps []models.FollowUp, contacts []models.Contact) *Snapshot {
	return &Snapshot{
		Opportunities: opps,
		FollowUps:     followUps,
		Contacts:      contacts,
		Now:           testNow,
	}
}

func TestAssessRiskEmptySnapshot(t *testing.T) {
	a := AssessRisk(snapWith(nil, nil, nil))

	assert.Zero(t, a.OverallRiskScore)
	assert.Equal(t, RiskLow, a.RiskLevel)
	assert.Empty(t, a.OverdueItems)
	assert.Zero(t, a.HealthScore)
}

func TestAssessRiskAccumulators(t *testing.T) {
	pastClose := testNow.AddDate(0, 0, -5)
	big := opp(models.StageNegotiation, 150000, 10) // +10 large deal
	late := opp(models.StageProposal, 1000, 10)
	late.ExpectedCloseDate = &pastClose // +15 past close

	overdue := models.FollowUp{
		ID:           uuid.New(),
		Status:       models.FollowUpPending,
		FollowUpDate: testNow.AddDate(0, 0, -3),
	} // +5

	staleTime := testNow.AddDate(0, 0, -120)
	stale := models.Contact{
		ID:              uuid.New(),
		Name:            "Dormant Dan",
		ContactScore:    80,
		LastInteraction: &staleTime,
	} // +2

	a := AssessRisk(snapWith(
		[]models.Opportunity{big, late},
		[]models.FollowUp{overdue},
		[]models.Contact{stale},
	))

	assert.Equal(t, 32.0, a.OverallRiskScore)
	assert.Equal(t, RiskMedium, a.RiskLevel)
}

func TestAssessRiskScoreClamped(t *testing.T) {
	var opps []models.Opportunity
	for i := 0; i < 30; i++ {
		opps = append(opps, opp(models.StageNegotiation, 500000, 10))
	}

	a := AssessRisk(snapWith(opps, nil, nil))

	assert.Equal(t, 100.0, a.OverallRiskScore)
	assert.Equal(t, RiskCritical, a.RiskLevel)
}

func TestAssessRiskHighRiskOpportunityNeedsTwoSignals(t *testing.T) {
	// Only one signal: low probability.
	oneSignal := opp(models.StageNegotiation, 1000, 10)
	oneSignal.Probability = 10

	// Two signals: low probability and jumbo deal size.
	twoSignals := opp(models.StageNegotiation, 250000, 10)
	twoSignals.Probability = 10
	twoSignals.Name = "Megadeal"

	a := AssessRisk(snapWith([]models.Opportunity{oneSignal, twoSignals}, nil, nil))

	require.Len(t, a.HighRiskOpportunities, 1)
	assert.Equal(t, "Megadeal", a.HighRiskOpportunities[0].Name)
	assert.Len(t, a.HighRiskOpportunities[0].Reasons, 2)
}

func TestAssessRiskStalledProspectingSignal(t *testing.T) {
	o := opp(models.StageProspecting, 1000, 90) // stalled beyond 60 days
	o.Probability = 10                          // plus low probability

	a := AssessRisk(snapWith([]models.Opportunity{o}, nil, nil))
	require.Len(t, a.HighRiskOpportunities, 1)
}

func TestAssessRiskHighRiskContacts(t *testing.T) {
	staleTime := testNow.AddDate(0, 0, -120)
	cold := models.Contact{ID: uuid.New(), Name: "Cold Carol", ContactScore: 10, LastInteraction: &staleTime}
	warm := models.Contact{ID: uuid.New(), Name: "Warm Walt", ContactScore: 10, LastInteraction: &testNow}

	a := AssessRisk(snapWith(nil, nil, []models.Contact{cold, warm}))

	require.Len(t, a.HighRiskContacts, 1)
	assert.Equal(t, "Cold Carol", a.HighRiskContacts[0].Name)
}

func TestAssessRiskOverdueFollowUpTenDays(t *testing.T) {
	f := models.FollowUp{
		ID:            uuid.New(),
		Status:        models.FollowUpPending,
		FollowUpDate:  testNow.AddDate(0, 0, -10),
		PriorityScore: 4,
		Notes:         "call back about renewal",
	}

	a := AssessRisk(snapWith(nil, []models.FollowUp{f}, nil))

	require.Len(t, a.OverdueItems, 1)
	item := a.OverdueItems[0]
	assert.Equal(t, OverdueFollowUp, item.Type)
	assert.Equal(t, 10, item.DaysOverdue)
	assert.Equal(t, PriorityHigh, item.Priority)
}

func TestAssessRiskOverdueFollowUpMediumPriority(t *testing.T) {
	f := models.FollowUp{
		ID:            uuid.New(),
		Status:        models.FollowUpPending,
		FollowUpDate:  testNow.AddDate(0, 0, -2),
		PriorityScore: 2,
	}

	a := AssessRisk(snapWith(nil, []models.FollowUp{f}, nil))

	require.Len(t, a.OverdueItems, 1)
	assert.Equal(t, PriorityMedium, a.OverdueItems[0].Priority)
}

func TestAssessRiskCompletedFollowUpNotOverdue(t *testing.T) {
	f := models.FollowUp{
		ID:           uuid.New(),
		Status:       models.FollowUpCompleted,
		FollowUpDate: testNow.AddDate(0, 0, -10),
	}

	a := AssessRisk(snapWith(nil, []models.FollowUp{f}, nil))
	assert.Empty(t, a.OverdueItems)
	assert.Zero(t, a.OverallRiskScore)
}

func TestAssessRiskOverdueItemsMergedAndSorted(t *testing.T) {
	pastClose := testNow.AddDate(0, 0, -20)
	late := opp(models.StageProposal, 1000, 30)
	late.ExpectedCloseDate = &pastClose
	late.Name = "Slipping deal"

	f := models.FollowUp{
		ID:           uuid.New(),
		Status:       models.FollowUpPending,
		FollowUpDate: testNow.AddDate(0, 0, -5),
	}

	a := AssessRisk(snapWith([]models.Opportunity{late}, []models.FollowUp{f}, nil))

	require.Len(t, a.OverdueItems, 2)
	assert.Equal(t, OverdueOpportunity, a.OverdueItems[0].Type)
	assert.Equal(t, 20, a.OverdueItems[0].DaysOverdue)
	assert.Equal(t, PriorityHigh, a.OverdueItems[0].Priority)
	assert.Equal(t, OverdueFollowUp, a.OverdueItems[1].Type)
}

func TestHealthScore(t *testing.T) {
	future := testNow.AddDate(0, 0, 60)
	soon := testNow.AddDate(0, 0, 10)

	healthy := opp(models.StageNegotiation, 1000, 10)
	healthy.Probability = 75
	healthy.ExpectedCloseDate = &future

	noCloseDate := opp(models.StageProposal, 1000, 10)
	noCloseDate.Probability = 60

	crowded := opp(models.StageNegotiation, 1000, 10)
	crowded.Probability = 90
	crowded.ExpectedCloseDate = &soon // close date too near

	prospect := opp(models.StageProspecting, 1000, 10)
	prospect.Probability = 90

	a := AssessRisk(snapWith([]models.Opportunity{healthy, noCloseDate, crowded, prospect}, nil, nil))

	assert.InDelta(t, 50, a.HealthScore, 0.001) // 2 of 4
}

func TestHealthScoreBounds(t *testing.T) {
	opps := []models.Opportunity{opp(models.StageNegotiation, 1000, 5)}
	opps[0].Probability = 100

	a := AssessRisk(snapWith(opps, nil, nil))
	assert.GreaterOrEqual(t, a.HealthScore, 0.0)
	assert.LessOrEqual(t, a.HealthScore, 100.0)
}

func TestAssessRiskContactNeverContacted(t *testing.T) {
	// Missing last interaction counts as inactive.
	c := models.Contact{ID: uuid.New(), Name: "Ghost", ContactScore: 50}

	a := AssessRisk(snapWith(nil, nil, []models.Contact{c}))
	assert.Equal(t, 2.0, a.OverallRiskScore)
}
