// ABOUTME: Opportunity MCP tool handlers
// ABOUTME: Implements create_opportunity, update_opportunity, and delete_opportunity tools
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

type OpportunityHandlers struct {
	db *sql.DB
}

func NewOpportunityHandlers(database *sql.DB) *OpportunityHandlers {
	return &OpportunityHandlers{db: database}
}

type CreateOpportunityInput struct {
	Name              string  `json:"name" jsonschema:"Opportunity name (required)"`
	DealSize          float64 `json:"deal_size,omitempty" jsonschema:"Deal size in currency units"`
	Probability       float64 `json:"probability,omitempty" jsonschema:"Close probability, 0-100"`
	Stage             string  `json:"stage,omitempty" jsonschema:"Pipeline stage: prospecting, qualification, proposal, negotiation, closed_won, closed_lost"`
	OwnerID           string  `json:"owner_id" jsonschema:"Owner user ID (required)"`
	CompanyName       string  `json:"company_name,omitempty" jsonschema:"Company name (created if not found)"`
	ContactName       string  `json:"contact_name,omitempty" jsonschema:"Contact name (optional)"`
	ExpectedCloseDate string  `json:"expected_close_date,omitempty" jsonschema:"Expected close date in ISO 8601 format"`
}

type OpportunityOutput struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Stage             string  `json:"stage"`
	DealSize          float64 `json:"deal_size"`
	Probability       float64 `json:"probability"`
	OwnerID           string  `json:"owner_id"`
	CompanyID         *string `json:"company_id,omitempty"`
	ContactID         *string `json:"contact_id,omitempty"`
	ExpectedCloseDate *string `json:"expected_close_date,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

func (h *OpportunityHandlers) CreateOpportunity(_ context.Context, request *mcp.CallToolRequest, input CreateOpportunityInput) (*mcp.CallToolResult, OpportunityOutput, error) {
	if input.Name == "" {
		return nil, OpportunityOutput{}, fmt.Errorf("name is required")
	}
	if input.OwnerID == "" {
		return nil, OpportunityOutput{}, fmt.Errorf("owner_id is required")
	}

	stage := input.Stage
	if stage == "" {
		stage = models.StageProspecting
	}
	if !models.IsCanonicalStage(stage) {
		return nil, OpportunityOutput{}, fmt.Errorf("invalid stage: %s (valid: prospecting, qualification, proposal, negotiation, closed_won, closed_lost)", stage)
	}
	if input.Probability < 0 || input.Probability > 100 {
		return nil, OpportunityOutput{}, fmt.Errorf("probability must be between 0 and 100")
	}

	opp := &models.Opportunity{
		Name:        input.Name,
		Stage:       stage,
		DealSize:    input.DealSize,
		Probability: input.Probability,
		OwnerID:     input.OwnerID,
	}

	if input.CompanyName != "" {
		company, err := db.FindCompanyByName(h.db, input.CompanyName)
		if err != nil {
			return nil, OpportunityOutput{}, fmt.Errorf("failed to lookup company: %w", err)
		}
		if company == nil {
			company = &models.Company{Name: input.CompanyName}
			if err := db.CreateCompany(h.db, company); err != nil {
				return nil, OpportunityOutput{}, fmt.Errorf("failed to create company: %w", err)
			}
		}
		opp.CompanyID = &company.ID
	}

	if input.ContactName != "" {
		contacts, err := db.FindContacts(h.db, input.ContactName, nil, 1)
		if err != nil {
			return nil, OpportunityOutput{}, fmt.Errorf("failed to lookup contact: %w", err)
		}
		if len(contacts) > 0 {
			opp.ContactID = &contacts[0].ID
		}
	}

	if input.ExpectedCloseDate != "" {
		parsedTime, err := time.Parse(time.RFC3339, input.ExpectedCloseDate)
		if err != nil {
			return nil, OpportunityOutput{}, fmt.Errorf("invalid expected_close_date format (use ISO 8601/RFC3339): %w", err)
		}
		opp.ExpectedCloseDate = &parsedTime
	}

	if err := db.CreateOpportunity(h.db, opp); err != nil {
		return nil, OpportunityOutput{}, fmt.Errorf("failed to create opportunity: %w", err)
	}

	return nil, opportunityToOutput(opp), nil
}

type UpdateOpportunityInput struct {
	ID                string   `json:"id" jsonschema:"Opportunity ID (required)"`
	Name              string   `json:"name,omitempty" jsonschema:"Updated name"`
	Stage             string   `json:"stage,omitempty" jsonschema:"Updated pipeline stage"`
	DealSize          *float64 `json:"deal_size,omitempty" jsonschema:"Updated deal size"`
	Probability       *float64 `json:"probability,omitempty" jsonschema:"Updated close probability, 0-100"`
	ExpectedCloseDate string   `json:"expected_close_date,omitempty" jsonschema:"Updated expected close date in ISO 8601 format"`
}

func (h *OpportunityHandlers) UpdateOpportunity(_ context.Context, request *mcp.CallToolRequest, input UpdateOpportunityInput) (*mcp.CallToolResult, OpportunityOutput, error) {
	if input.ID == "" {
		return nil, OpportunityOutput{}, fmt.Errorf("id is required")
	}

	oppID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, OpportunityOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	opp, err := db.GetOpportunity(h.db, oppID)
	if err != nil {
		return nil, OpportunityOutput{}, fmt.Errorf("failed to get opportunity: %w", err)
	}
	if opp == nil {
		return nil, OpportunityOutput{}, fmt.Errorf("opportunity not found")
	}

	if input.Name != "" {
		opp.Name = input.Name
	}
	if input.Stage != "" {
		if !models.IsCanonicalStage(input.Stage) {
			return nil, OpportunityOutput{}, fmt.Errorf("invalid stage: %s (valid: prospecting, qualification, proposal, negotiation, closed_won, closed_lost)", input.Stage)
		}
		opp.Stage = input.Stage
	}
	if input.DealSize != nil {
		opp.DealSize = *input.DealSize
	}
	if input.Probability != nil {
		if *input.Probability < 0 || *input.Probability > 100 {
			return nil, OpportunityOutput{}, fmt.Errorf("probability must be between 0 and 100")
		}
		opp.Probability = *input.Probability
	}
	if input.ExpectedCloseDate != "" {
		parsedTime, err := time.Parse(time.RFC3339, input.ExpectedCloseDate)
		if err != nil {
			return nil, OpportunityOutput{}, fmt.Errorf("invalid expected_close_date format (use ISO 8601/RFC3339): %w", err)
		}
		opp.ExpectedCloseDate = &parsedTime
	}

	if err := db.UpdateOpportunity(h.db, opp); err != nil {
		return nil, OpportunityOutput{}, fmt.Errorf("failed to update opportunity: %w", err)
	}

	return nil, opportunityToOutput(opp), nil
}

type DeleteOpportunityInput struct {
	ID string `json:"id" jsonschema:"Opportunity ID (required)"`
}

type DeleteOpportunityOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *OpportunityHandlers) DeleteOpportunity(_ context.Context, request *mcp.CallToolRequest, input DeleteOpportunityInput) (*mcp.CallToolResult, DeleteOpportunityOutput, error) {
	if input.ID == "" {
		return nil, DeleteOpportunityOutput{}, fmt.Errorf("id is required")
	}

	oppID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DeleteOpportunityOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	if err := db.DeleteOpportunity(h.db, oppID); err != nil {
		return nil, DeleteOpportunityOutput{}, fmt.Errorf("failed to delete opportunity: %w", err)
	}

	return nil, DeleteOpportunityOutput{
		Success: true,
		Message: fmt.Sprintf("Opportunity %s deleted successfully", oppID),
	}, nil
}

func opportunityToOutput(opp *models.Opportunity) OpportunityOutput {
	output := OpportunityOutput{
		ID:          opp.ID.String(),
		Name:        opp.Name,
		Stage:       opp.Stage,
		DealSize:    opp.DealSize,
		Probability: opp.Probability,
		OwnerID:     opp.OwnerID,
		CreatedAt:   opp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   opp.UpdatedAt.Format(time.RFC3339),
	}

	if opp.CompanyID != nil {
		cid := opp.CompanyID.String()
		output.CompanyID = &cid
	}
	if opp.ContactID != nil {
		cid := opp.ContactID.String()
		output.ContactID = &cid
	}
	if opp.ExpectedCloseDate != nil {
		ecd := opp.ExpectedCloseDate.Format(time.RFC3339)
		output.ExpectedCloseDate = &ecd
	}

	return output
}
