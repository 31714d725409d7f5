// ABOUTME: Tests for the generate_report MCP tool
// ABOUTME: Runs the engine end-to-end over a seeded SQLite database
package handlers

import (
	"context"
	"testing"

	"github.com/harperreed/dealscope/db"
	"github.com/harperreed/dealscope/intel"
	"github.com/harperreed/dealscope/models"
)

func reportHandler(t *testing.T) (*ReportHandlers, *OpportunityHandlers) {
	t.Helper()

	database := setupTestDB(t)
	t.Cleanup(func() { _ = database.Close() })

	store := db.NewStore(database)
	engine := intel.NewEngine(intel.Repositories{
		Opportunities: store,
		FollowUps:     store,
		Activities:    store,
		Contacts:      store,
		Quotations:    store,
	})

	return NewReportHandlers(engine), NewOpportunityHandlers(database)
}

func TestGenerateReportTool(t *testing.T) {
	reports, opps := reportHandler(t)

	seed := []CreateOpportunityInput{
		{Name: "A", OwnerID: "alice", Stage: models.StageProposal, DealSize: 40000, Probability: 50},
		{Name: "B", OwnerID: "alice", Stage: models.StageNegotiation, DealSize: 90000, Probability: 70},
		{Name: "C", OwnerID: "bob", Stage: models.StageClosedWon, DealSize: 30000, Probability: 100},
	}
	for _, input := range seed {
		if _, _, err := opps.CreateOpportunity(context.Background(), nil, input); err != nil {
			t.Fatalf("CreateOpportunity failed: %v", err)
		}
	}

	_, report, err := reports.GenerateReport(context.Background(), nil, GenerateReportInput{
		Kind:    "sales",
		Period:  "month",
		IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	if report.TotalOpportunities != 3 {
		t.Errorf("Expected 3 opportunities, got %d", report.TotalOpportunities)
	}
	if report.TotalValue != 160000 {
		t.Errorf("Expected total value 160000, got %f", report.TotalValue)
	}
	if report.Forecast == nil || report.Risk == nil || report.Velocity == nil {
		t.Error("Expected all analytic sections to be present")
	}
}

func TestGenerateReportToolDefaultsPeriod(t *testing.T) {
	reports, _ := reportHandler(t)

	_, report, err := reports.GenerateReport(context.Background(), nil, GenerateReportInput{
		Kind:    "pipeline",
		IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	if report.Period != intel.PeriodMonth {
		t.Errorf("Expected default period month, got %s", report.Period)
	}
}

func TestGenerateReportToolValidation(t *testing.T) {
	reports, _ := reportHandler(t)

	if _, _, err := reports.GenerateReport(context.Background(), nil, GenerateReportInput{}); err == nil {
		t.Error("Expected error for missing kind")
	}

	if _, _, err := reports.GenerateReport(context.Background(), nil, GenerateReportInput{Kind: "attendance"}); err == nil {
		t.Error("Expected error for attendance report")
	}
}

func TestGenerateReportToolScoping(t *testing.T) {
	reports, opps := reportHandler(t)

	for _, input := range []CreateOpportunityInput{
		{Name: "Mine", OwnerID: "alice", DealSize: 1000},
		{Name: "Theirs", OwnerID: "bob", DealSize: 2000},
	} {
		if _, _, err := opps.CreateOpportunity(context.Background(), nil, input); err != nil {
			t.Fatalf("CreateOpportunity failed: %v", err)
		}
	}

	_, report, err := reports.GenerateReport(context.Background(), nil, GenerateReportInput{
		Kind:   "sales",
		UserID: "alice",
	})
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}
	if report.TotalOpportunities != 1 {
		t.Errorf("Expected 1 scoped opportunity, got %d", report.TotalOpportunities)
	}
}
