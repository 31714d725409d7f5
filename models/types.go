// ABOUTME: Data models for CRM entities
// ABOUTME: Defines Opportunity, FollowUp, Activity, Contact, Company, and Quotation structs
package models

import (
	"time"

	"github.com/google/uuid"
)

// Pipeline stage constants. The first six are the canonical funnel;
// the rest are extended statuses carried by imported pipeline deals.
const (
	StageProspecting      = "prospecting"
	StageQualification    = "qualification"
	StageProposal         = "proposal"
	StageNegotiation      = "negotiation"
	StageClosedWon        = "closed_won"
	StageClosedLost       = "closed_lost"
	StageFinalApproval    = "final_approval"
	StageOnHold           = "on_hold"
	StageCancelled        = "cancelled"
	StageLostToCompetitor = "lost_to_competitor"
)

// CanonicalStages is the ordered six-stage funnel used for stage breakdowns.
var CanonicalStages = []string{
	StageProspecting,
	StageQualification,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// IsCanonicalStage reports whether stage is one of the six funnel stages.
func IsCanonicalStage(stage string) bool {
	for _, s := range CanonicalStages {
		if s == stage {
			return true
		}
	}
	return false
}

// IsClosedStage reports whether stage is a terminal outcome.
func IsClosedStage(stage string) bool {
	switch stage {
	case StageClosedWon, StageClosedLost, StageCancelled, StageLostToCompetitor:
		return true
	}
	return false
}

type Opportunity struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Stage             string     `json:"stage"`
	DealSize          float64    `json:"deal_size"`
	Probability       float64    `json:"probability"` // 0-100, stored override
	OwnerID           string     `json:"owner_id"`
	CompanyID         *uuid.UUID `json:"company_id,omitempty"`
	ContactID         *uuid.UUID `json:"contact_id,omitempty"`
	StageVelocity     *float64   `json:"stage_velocity,omitempty"` // avg days in current stage, when tracked
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	LastActivityDate  *time.Time `json:"last_activity_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Follow-up status constants.
const (
	FollowUpPending   = "pending"
	FollowUpCompleted = "completed"
	FollowUpCancelled = "cancelled"
)

type FollowUp struct {
	ID            uuid.UUID  `json:"id"`
	OpportunityID *uuid.UUID `json:"opportunity_id,omitempty"`
	ContactID     *uuid.UUID `json:"contact_id,omitempty"`
	Status        string     `json:"status"`
	FollowUpDate  time.Time  `json:"follow_up_date"`
	PriorityScore int        `json:"priority_score"` // 1-5
	AssignedTo    string     `json:"assigned_to"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// IsOverdue reports whether the follow-up is past due and not completed.
func (f *FollowUp) IsOverdue(now time.Time) bool {
	return f.Status != FollowUpCompleted && f.FollowUpDate.Before(now)
}

// Activity channel constants.
const (
	ChannelMeeting = "meeting"
	ChannelCall    = "call"
	ChannelEmail   = "email"
	ChannelMessage = "message"
	ChannelEvent   = "event"
)

// Sentiment constants.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Effectiveness constants.
const (
	EffectivenessHigh   = "high"
	EffectivenessMedium = "medium"
	EffectivenessLow    = "low"
)

type Activity struct {
	ID               uuid.UUID  `json:"id"`
	ContactID        *uuid.UUID `json:"contact_id,omitempty"`
	OwnerID          string     `json:"owner_id"`
	Channel          string     `json:"channel"`
	Effectiveness    string     `json:"effectiveness,omitempty"`
	Sentiment        string     `json:"sentiment,omitempty"`
	ResponseReceived bool       `json:"response_received"`
	Notes            string     `json:"notes,omitempty"`
	OccurredAt       time.Time  `json:"occurred_at"`
}

// Influence level constants.
const (
	InfluenceDecisionMaker = "decision_maker"
	InfluenceInfluencer    = "influencer"
	InfluenceGatekeeper    = "gatekeeper"
	InfluenceEndUser       = "end_user"
)

// Engagement level constants.
const (
	EngagementHigh   = "high"
	EngagementMedium = "medium"
	EngagementLow    = "low"
)

type Contact struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	CompanyID       *uuid.UUID `json:"company_id,omitempty"`
	InfluenceLevel  string     `json:"influence_level,omitempty"`
	EngagementLevel string     `json:"engagement_level,omitempty"`
	ContactScore    float64    `json:"contact_score"` // 0-100
	LastInteraction *time.Time `json:"last_interaction,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Quotation status constants.
const (
	QuotationDraft    = "draft"
	QuotationSent     = "sent"
	QuotationAccepted = "accepted"
	QuotationRejected = "rejected"
	QuotationExpired  = "expired"
)

type Quotation struct {
	ID            uuid.UUID  `json:"id"`
	Number        string     `json:"number"`
	OpportunityID *uuid.UUID `json:"opportunity_id,omitempty"`
	OwnerID       string     `json:"owner_id"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	ValidUntil    *time.Time `json:"valid_until,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
