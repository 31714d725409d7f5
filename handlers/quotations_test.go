// ABOUTME: Tests for quotation MCP tool handlers
// ABOUTME: Covers creation, validation, and status transitions
package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/harperreed/dealscope/models"
)

func TestCreateQuotation(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	h := NewQuotationHandlers(database)
	_, output, err := h.CreateQuotation(context.Background(), nil, CreateQuotationInput{
		OwnerID: "user-1",
		Amount:  25000,
	})
	if err != nil {
		t.Fatalf("CreateQuotation failed: %v", err)
	}

	if output.Status != models.QuotationDraft {
		t.Errorf("Expected status %s, got %s", models.QuotationDraft, output.Status)
	}
	if !strings.HasPrefix(output.Number, "Q-") {
		t.Errorf("Expected generated Q- number, got %s", output.Number)
	}
	if output.Amount != 25000 {
		t.Errorf("Expected amount 25000, got %f", output.Amount)
	}
}

func TestCreateQuotationRequiresPositiveAmount(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	h := NewQuotationHandlers(database)
	_, _, err := h.CreateQuotation(context.Background(), nil, CreateQuotationInput{
		OwnerID: "user-1",
		Amount:  0,
	})
	if err == nil {
		t.Fatal("Expected error for zero amount")
	}
}

func TestCreateQuotationRejectsMissingOpportunity(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	h := NewQuotationHandlers(database)
	_, _, err := h.CreateQuotation(context.Background(), nil, CreateQuotationInput{
		OpportunityID: "4a3c1b6e-0000-0000-0000-000000000000",
		OwnerID:       "user-1",
		Amount:        100,
	})
	if err == nil || !strings.Contains(err.Error(), "opportunity not found") {
		t.Fatalf("Expected opportunity not found error, got %v", err)
	}
}

func TestUpdateQuotationStatus(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	h := NewQuotationHandlers(database)
	_, created, err := h.CreateQuotation(context.Background(), nil, CreateQuotationInput{
		OwnerID: "user-1",
		Amount:  5000,
	})
	if err != nil {
		t.Fatalf("CreateQuotation failed: %v", err)
	}

	_, updated, err := h.UpdateQuotationStatus(context.Background(), nil, UpdateQuotationStatusInput{
		ID:     created.ID,
		Status: models.QuotationAccepted,
	})
	if err != nil {
		t.Fatalf("UpdateQuotationStatus failed: %v", err)
	}

	if updated.Status != models.QuotationAccepted {
		t.Errorf("Expected status %s, got %s", models.QuotationAccepted, updated.Status)
	}
}

func TestUpdateQuotationStatusRejectsInvalidStatus(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	h := NewQuotationHandlers(database)
	_, _, err := h.UpdateQuotationStatus(context.Background(), nil, UpdateQuotationStatusInput{
		ID:     "4a3c1b6e-0000-0000-0000-000000000000",
		Status: "approved",
	})
	if err == nil || !strings.Contains(err.Error(), "invalid status") {
		t.Fatalf("Expected invalid status error, got %v", err)
	}
}
