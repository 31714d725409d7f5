// ABOUTME: Quotation MCP tool handlers
// ABOUTME: Implements create_quotation and update_quotation_status tools
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

type QuotationHandlers struct {
	db *sql.DB
}

func NewQuotationHandlers(database *sql.DB) *QuotationHandlers {
	return &QuotationHandlers{db: database}
}

type CreateQuotationInput struct {
	OpportunityID string  `json:"opportunity_id,omitempty" jsonschema:"Related opportunity ID"`
	OwnerID       string  `json:"owner_id" jsonschema:"Owner user ID (required)"`
	Amount        float64 `json:"amount" jsonschema:"Quoted amount (required)"`
	ValidUntil    string  `json:"valid_until,omitempty" jsonschema:"Expiry date in ISO 8601 format"`
}

type QuotationOutput struct {
	ID            string  `json:"id"`
	Number        string  `json:"number"`
	OpportunityID string  `json:"opportunity_id,omitempty"`
	OwnerID       string  `json:"owner_id"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	ValidUntil    *string `json:"valid_until,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func (h *QuotationHandlers) CreateQuotation(_ context.Context, request *mcp.CallToolRequest, input CreateQuotationInput) (*mcp.CallToolResult, QuotationOutput, error) {
	if input.OwnerID == "" {
		return nil, QuotationOutput{}, fmt.Errorf("owner_id is required")
	}
	if input.Amount <= 0 {
		return nil, QuotationOutput{}, fmt.Errorf("amount must be positive")
	}

	q := &models.Quotation{
		OwnerID: input.OwnerID,
		Amount:  input.Amount,
	}

	if input.OpportunityID != "" {
		oppID, err := uuid.Parse(input.OpportunityID)
		if err != nil {
			return nil, QuotationOutput{}, fmt.Errorf("invalid opportunity_id: %w", err)
		}
		opp, err := db.GetOpportunity(h.db, oppID)
		if err != nil {
			return nil, QuotationOutput{}, fmt.Errorf("failed to get opportunity: %w", err)
		}
		if opp == nil {
			return nil, QuotationOutput{}, fmt.Errorf("opportunity not found")
		}
		q.OpportunityID = &oppID
	}

	if input.ValidUntil != "" {
		validUntil, err := time.Parse(time.RFC3339, input.ValidUntil)
		if err != nil {
			return nil, QuotationOutput{}, fmt.Errorf("invalid valid_until format (use ISO 8601/RFC3339): %w", err)
		}
		q.ValidUntil = &validUntil
	}

	if err := db.CreateQuotation(h.db, q); err != nil {
		return nil, QuotationOutput{}, fmt.Errorf("failed to create quotation: %w", err)
	}

	return nil, quotationToOutput(q), nil
}

type UpdateQuotationStatusInput struct {
	ID     string `json:"id" jsonschema:"Quotation ID (required)"`
	Status string `json:"status" jsonschema:"New status: draft, sent, accepted, rejected, expired (required)"`
}

func (h *QuotationHandlers) UpdateQuotationStatus(_ context.Context, request *mcp.CallToolRequest, input UpdateQuotationStatusInput) (*mcp.CallToolResult, QuotationOutput, error) {
	if input.ID == "" {
		return nil, QuotationOutput{}, fmt.Errorf("id is required")
	}
	if !isValidQuotationStatus(input.Status) {
		return nil, QuotationOutput{}, fmt.Errorf("invalid status: %s (valid: draft, sent, accepted, rejected, expired)", input.Status)
	}

	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, QuotationOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	if err := db.UpdateQuotationStatus(h.db, id, input.Status); err != nil {
		return nil, QuotationOutput{}, fmt.Errorf("failed to update quotation status: %w", err)
	}

	q, err := db.GetQuotation(h.db, id)
	if err != nil {
		return nil, QuotationOutput{}, fmt.Errorf("failed to reload quotation: %w", err)
	}

	return nil, quotationToOutput(q), nil
}

func quotationToOutput(q *models.Quotation) QuotationOutput {
	output := QuotationOutput{
		ID:        q.ID.String(),
		Number:    q.Number,
		OwnerID:   q.OwnerID,
		Amount:    q.Amount,
		Status:    q.Status,
		CreatedAt: q.CreatedAt.Format(time.RFC3339),
	}

	if q.OpportunityID != nil {
		output.OpportunityID = q.OpportunityID.String()
	}
	if q.ValidUntil != nil {
		vu := q.ValidUntil.Format(time.RFC3339)
		output.ValidUntil = &vu
	}

	return output
}

func isValidQuotationStatus(status string) bool {
	switch status {
	case models.QuotationDraft, models.QuotationSent, models.QuotationAccepted, models.QuotationRejected, models.QuotationExpired:
		return true
	}
	return false
}
