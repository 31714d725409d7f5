// ABOUTME: Tests for follow-up MCP tool handlers
// ABOUTME: Validates scheduling, completion, and overdue listing
package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/harperreed/dealscope/models"
)

func TestScheduleFollowUpTool(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	handler := NewFollowUpHandlers(database)

	_, output, err := handler.ScheduleFollowUp(context.Background(), nil, ScheduleFollowUpInput{
		FollowUpDate:  time.Now().AddDate(0, 0, 3).Format(time.RFC3339),
		PriorityScore: 4,
		AssignedTo:    "alice",
		Notes:         "send revised proposal",
	})
	if err != nil {
		t.Fatalf("ScheduleFollowUp failed: %v", err)
	}

	if output.ID == "" {
		t.Error("ID was not set")
	}
	if output.Status != models.FollowUpPending {
		t.Errorf("Expected status %s, got %s", models.FollowUpPending, output.Status)
	}
	if output.PriorityScore != 4 {
		t.Errorf("Expected priority 4, got %d", output.PriorityScore)
	}
}

func TestScheduleFollowUpValidation(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	handler := NewFollowUpHandlers(database)

	tests := []struct {
		name  string
		input ScheduleFollowUpInput
	}{
		{"missing date", ScheduleFollowUpInput{AssignedTo: "alice"}},
		{"missing assignee", ScheduleFollowUpInput{FollowUpDate: time.Now().Format(time.RFC3339)}},
		{"bad date format", ScheduleFollowUpInput{FollowUpDate: "tomorrow", AssignedTo: "alice"}},
		{"priority out of range", ScheduleFollowUpInput{FollowUpDate: time.Now().Format(time.RFC3339), AssignedTo: "alice", PriorityScore: 9}},
		{"unknown opportunity", ScheduleFollowUpInput{FollowUpDate: time.Now().Format(time.RFC3339), AssignedTo: "alice", OpportunityID: "4cf47a60-11dd-4f7a-bbc3-8a50ffd6f30a"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := handler.ScheduleFollowUp(context.Background(), nil, tc.input); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestCompleteFollowUpTool(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	handler := NewFollowUpHandlers(database)

	_, created, err := handler.ScheduleFollowUp(context.Background(), nil, ScheduleFollowUpInput{
		FollowUpDate: time.Now().Format(time.RFC3339),
		AssignedTo:   "alice",
	})
	if err != nil {
		t.Fatalf("ScheduleFollowUp failed: %v", err)
	}

	_, completed, err := handler.CompleteFollowUp(context.Background(), nil, CompleteFollowUpInput{ID: created.ID})
	if err != nil {
		t.Fatalf("CompleteFollowUp failed: %v", err)
	}
	if !completed.Success {
		t.Error("Expected success")
	}
}

func TestListOverdueFollowUpsTool(t *testing.T) {
	database := setupTestDB(t)
	defer func() { _ = database.Close() }()

	handler := NewFollowUpHandlers(database)

	_, _, err := handler.ScheduleFollowUp(context.Background(), nil, ScheduleFollowUpInput{
		FollowUpDate: time.Now().AddDate(0, 0, -2).Format(time.RFC3339),
		AssignedTo:   "alice",
	})
	if err != nil {
		t.Fatalf("ScheduleFollowUp failed: %v", err)
	}
	_, _, err = handler.ScheduleFollowUp(context.Background(), nil, ScheduleFollowUpInput{
		FollowUpDate: time.Now().AddDate(0, 0, 2).Format(time.RFC3339),
		AssignedTo:   "alice",
	})
	if err != nil {
		t.Fatalf("ScheduleFollowUp failed: %v", err)
	}

	_, output, err := handler.ListOverdueFollowUps(context.Background(), nil, ListOverdueFollowUpsInput{})
	if err != nil {
		t.Fatalf("ListOverdueFollowUps failed: %v", err)
	}
	if output.Count != 1 {
		t.Errorf("Expected 1 overdue follow-up, got %d", output.Count)
	}
}
