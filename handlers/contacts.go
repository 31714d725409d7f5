// ABOUTME: Contact and activity MCP tool handlers
// ABOUTME: Implements add_contact, find_contacts, and log_activity tools
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

type ContactHandlers struct {
	db *sql.DB
}

func NewContactHandlers(database *sql.DB) *ContactHandlers {
	return &ContactHandlers{db: database}
}

type AddContactInput struct {
	Name            string  `json:"name" jsonschema:"Contact name (required)"`
	Email           string  `json:"email,omitempty" jsonschema:"Email address"`
	Phone           string  `json:"phone,omitempty" jsonschema:"Phone number"`
	CompanyName     string  `json:"company_name,omitempty" jsonschema:"Company name (created if not found)"`
	InfluenceLevel  string  `json:"influence_level,omitempty" jsonschema:"Buying influence: decision_maker, influencer, gatekeeper, end_user"`
	EngagementLevel string  `json:"engagement_level,omitempty" jsonschema:"Engagement level: high, medium, low"`
	ContactScore    float64 `json:"contact_score,omitempty" jsonschema:"Relationship score, 0-100"`
}

type ContactOutput struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	CompanyID       *string `json:"company_id,omitempty"`
	InfluenceLevel  string  `json:"influence_level,omitempty"`
	EngagementLevel string  `json:"engagement_level,omitempty"`
	ContactScore    float64 `json:"contact_score"`
	LastInteraction *string `json:"last_interaction,omitempty"`
}

func (h *ContactHandlers) AddContact(_ context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.Name == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}

	contact := &models.Contact{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		InfluenceLevel:  input.InfluenceLevel,
		EngagementLevel: input.EngagementLevel,
		ContactScore:    input.ContactScore,
	}

	if input.CompanyName != "" {
		company, err := db.FindCompanyByName(h.db, input.CompanyName)
		if err != nil {
			return nil, ContactOutput{}, fmt.Errorf("failed to lookup company: %w", err)
		}
		if company == nil {
			company = &models.Company{Name: input.CompanyName}
			if err := db.CreateCompany(h.db, company); err != nil {
				return nil, ContactOutput{}, fmt.Errorf("failed to create company: %w", err)
			}
		}
		contact.CompanyID = &company.ID
	}

	if err := db.CreateContact(h.db, contact); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}

	return nil, contactToOutput(contact), nil
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Name or email fragment to search for"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 50)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Count    int             `json:"count"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, request *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	contacts, err := db.FindContacts(h.db, input.Query, nil, input.Limit)
	if err != nil {
		return nil, FindContactsOutput{}, fmt.Errorf("failed to find contacts: %w", err)
	}

	output := FindContactsOutput{Count: len(contacts)}
	for _, c := range contacts {
		output.Contacts = append(output.Contacts, contactToOutput(&c))
	}

	return nil, output, nil
}

type LogActivityInput struct {
	ContactID        string `json:"contact_id,omitempty" jsonschema:"Contact the activity involved"`
	OwnerID          string `json:"owner_id" jsonschema:"User who performed the activity (required)"`
	Channel          string `json:"channel" jsonschema:"Channel: meeting, call, email, message, event (required)"`
	Effectiveness    string `json:"effectiveness,omitempty" jsonschema:"How effective it was: high, medium, low"`
	Sentiment        string `json:"sentiment,omitempty" jsonschema:"Tone of the interaction: positive, neutral, negative"`
	ResponseReceived bool   `json:"response_received,omitempty" jsonschema:"Whether the other side responded"`
	Notes            string `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

type LogActivityOutput struct {
	ID         string `json:"id"`
	Channel    string `json:"channel"`
	OccurredAt string `json:"occurred_at"`
}

func (h *ContactHandlers) LogActivity(_ context.Context, request *mcp.CallToolRequest, input LogActivityInput) (*mcp.CallToolResult, LogActivityOutput, error) {
	if input.OwnerID == "" {
		return nil, LogActivityOutput{}, fmt.Errorf("owner_id is required")
	}
	if !isValidChannel(input.Channel) {
		return nil, LogActivityOutput{}, fmt.Errorf("invalid channel: %s (valid: meeting, call, email, message, event)", input.Channel)
	}

	activity := &models.Activity{
		OwnerID:          input.OwnerID,
		Channel:          input.Channel,
		Effectiveness:    input.Effectiveness,
		Sentiment:        input.Sentiment,
		ResponseReceived: input.ResponseReceived,
		Notes:            input.Notes,
	}

	if input.ContactID != "" {
		contactID, err := uuid.Parse(input.ContactID)
		if err != nil {
			return nil, LogActivityOutput{}, fmt.Errorf("invalid contact_id: %w", err)
		}
		contact, err := db.GetContact(h.db, contactID)
		if err != nil {
			return nil, LogActivityOutput{}, fmt.Errorf("failed to get contact: %w", err)
		}
		if contact == nil {
			return nil, LogActivityOutput{}, fmt.Errorf("contact not found")
		}
		activity.ContactID = &contactID
	}

	if err := db.LogActivity(h.db, activity); err != nil {
		return nil, LogActivityOutput{}, fmt.Errorf("failed to log activity: %w", err)
	}

	return nil, LogActivityOutput{
		ID:         activity.ID.String(),
		Channel:    activity.Channel,
		OccurredAt: activity.OccurredAt.Format(time.RFC3339),
	}, nil
}

func contactToOutput(c *models.Contact) ContactOutput {
	output := ContactOutput{
		ID:              c.ID.String(),
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		InfluenceLevel:  c.InfluenceLevel,
		EngagementLevel: c.EngagementLevel,
		ContactScore:    c.ContactScore,
	}

	if c.CompanyID != nil {
		cid := c.CompanyID.String()
		output.CompanyID = &cid
	}
	if c.LastInteraction != nil {
		li := c.LastInteraction.Format(time.RFC3339)
		output.LastInteraction = &li
	}

	return output
}

func isValidChannel(channel string) bool {
	switch channel {
	case models.ChannelMeeting, models.ChannelCall, models.ChannelEmail, models.ChannelMessage, models.ChannelEvent:
		return true
	}
	return false
}
