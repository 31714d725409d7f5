// ABOUTME: Follow-up MCP tool handlers
// ABOUTME: Implements schedule_follow_up, complete_follow_up, and list_overdue_follow_ups tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealscope/db"
	"github.com/harperreed/dealscope/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type FollowUpHandlers struct {
	db *sql.DB
}

func NewFollowUpHandlers(database *sql.DB) *FollowUpHandlers {
	return &FollowUpHandlers{db: database}
}

type ScheduleFollowUpInput struct {
	OpportunityID string `json:"opportunity_id,omitempty" jsonschema:"Related opportunity ID"`
	ContactID     string `json:"contact_id,omitempty" jsonschema:"Related contact ID"`
	FollowUpDate  string `json:"follow_up_date" jsonschema:"Due date in ISO 8601 format (required)"`
	PriorityScore int    `json:"priority_score,omitempty" jsonschema:"Priority from 1 (low) to 5 (urgent), default 3"`
	AssignedTo    string `json:"assigned_to" jsonschema:"Assignee user ID (required)"`
	Notes         string `json:"notes,omitempty" jsonschema:"What the follow-up is about"`
}

type FollowUpOutput struct {
	ID            string `json:"id"`
	OpportunityID string `json:"opportunity_id,omitempty"`
	ContactID     string `json:"contact_id,omitempty"`
	Status        string `json:"status"`
	FollowUpDate  string `json:"follow_up_date"`
	PriorityScore int    `json:"priority_score"`
	AssignedTo    string `json:"assigned_to"`
	Notes         string `json:"notes,omitempty"`
}

func (h *FollowUpHandlers) ScheduleFollowUp(_ context.Context, request *mcp.CallToolRequest, input ScheduleFollowUpInput) (*mcp.CallToolResult, FollowUpOutput, error) {
	if input.FollowUpDate == "" {
		return nil, FollowUpOutput{}, fmt.Errorf("follow_up_date is required")
	}
	if input.AssignedTo == "" {
		return nil, FollowUpOutput{}, fmt.Errorf("assigned_to is required")
	}
	if input.PriorityScore < 0 || input.PriorityScore > 5 {
		return nil, FollowUpOutput{}, fmt.Errorf("priority_score must be between 1 and 5")
	}

	dueDate, err := time.Parse(time.RFC3339, input.FollowUpDate)
	if err != nil {
		return nil, FollowUpOutput{}, fmt.Errorf("invalid follow_up_date format (use ISO 8601/RFC3339): %w", err)
	}

	f := &models.FollowUp{
		FollowUpDate:  dueDate,
		PriorityScore: input.PriorityScore,
		AssignedTo:    input.AssignedTo,
		Notes:         input.Notes,
	}

	if input.OpportunityID != "" {
		oppID, err := uuid.Parse(input.OpportunityID)
		if err != nil {
			return nil, FollowUpOutput{}, fmt.Errorf("invalid opportunity_id: %w", err)
		}
		opp, err := db.GetOpportunity(h.db, oppID)
		if err != nil {
			return nil, FollowUpOutput{}, fmt.Errorf("failed to get opportunity: %w", err)
		}
		if opp == nil {
			return nil, FollowUpOutput{}, fmt.Errorf("opportunity not found")
		}
		f.OpportunityID = &oppID
	}

	if input.ContactID != "" {
		contactID, err := uuid.Parse(input.ContactID)
		if err != nil {
			return nil, FollowUpOutput{}, fmt.Errorf("invalid contact_id: %w", err)
		}
		f.ContactID = &contactID
	}

	if err := db.CreateFollowUp(h.db, f); err != nil {
		return nil, FollowUpOutput{}, fmt.Errorf("failed to schedule follow-up: %w", err)
	}

	return nil, followUpToOutput(f), nil
}

type CompleteFollowUpInput struct {
	ID string `json:"id" jsonschema:"Follow-up ID (required)"`
}

type CompleteFollowUpOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *FollowUpHandlers) CompleteFollowUp(_ context.Context, request *mcp.CallToolRequest, input CompleteFollowUpInput) (*mcp.CallToolResult, CompleteFollowUpOutput, error) {
	if input.ID == "" {
		return nil, CompleteFollowUpOutput{}, fmt.Errorf("id is required")
	}

	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, CompleteFollowUpOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	if err := db.CompleteFollowUp(h.db, id); err != nil {
		return nil, CompleteFollowUpOutput{}, fmt.Errorf("failed to complete follow-up: %w", err)
	}

	return nil, CompleteFollowUpOutput{
		Success: true,
		Message: fmt.Sprintf("Follow-up %s completed", id),
	}, nil
}

type ListOverdueFollowUpsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of results"`
}

type ListOverdueFollowUpsOutput struct {
	FollowUps []FollowUpOutput `json:"follow_ups"`
	Count     int              `json:"count"`
}

func (h *FollowUpHandlers) ListOverdueFollowUps(_ context.Context, request *mcp.CallToolRequest, input ListOverdueFollowUpsInput) (*mcp.CallToolResult, ListOverdueFollowUpsOutput, error) {
	followUps, err := db.ListOverdueFollowUps(h.db, time.Now(), input.Limit)
	if err != nil {
		return nil, ListOverdueFollowUpsOutput{}, fmt.Errorf("failed to list overdue follow-ups: %w", err)
	}

	output := ListOverdueFollowUpsOutput{Count: len(followUps)}
	for _, f := range followUps {
		output.FollowUps = append(output.FollowUps, followUpToOutput(&f))
	}

	return nil, output, nil
}

func followUpToOutput(f *models.FollowUp) FollowUpOutput {
	output := FollowUpOutput{
		ID:            f.ID.String(),
		Status:        f.Status,
		FollowUpDate:  f.FollowUpDate.Format(time.RFC3339),
		PriorityScore: f.PriorityScore,
		AssignedTo:    f.AssignedTo,
		Notes:         f.Notes,
	}

	if f.OpportunityID != nil {
		output.OpportunityID = f.OpportunityID.String()
	}
	if f.ContactID != nil {
		output.ContactID = f.ContactID.String()
	}

	return output
}
