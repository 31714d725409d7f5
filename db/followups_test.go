// ABOUTME: Tests for follow-up database operations
// ABOUTME: Covers creation defaults, completion, and overdue queries
package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealscope/models"
)

func TestCreateFollowUpDefaults(t *testing.T) {
	db := setupTestDB(t)
	defer func() { _ = db.Close() }()

	f := &models.FollowUp{
		FollowUpDate: time.Now().AddDate(0, 0, 3),
		AssignedTo:   "alice",
	}

	if err := CreateFollowUp(db, f); err != nil {
		t.Fatalf("CreateFollowUp failed: %v", err)
	}

	if f.ID == uuid.Nil {
		t.Error("FollowUp ID was not set")
	}
	if f.Status != models.FollowUpPending {
		t.Errorf("Expected default status %s, got %s", models.FollowUpPending, f.Status)
	}
	if f.PriorityScore != 3 {
		t.Errorf("Expected default priority 3, got %d", f.PriorityScore)
	}
}

func TestCompleteFollowUp(t *testing.T) {
	db := setupTestDB(t)
	defer func() { _ = db.Close() }()

	f := &models.FollowUp{FollowUpDate: time.Now(), AssignedTo: "alice"}
	if err := CreateFollowUp(db, f); err != nil {
		t.Fatalf("CreateFollowUp failed: %v", err)
	}

	if err := CompleteFollowUp(db, f.ID); err != nil {
		t.Fatalf("CompleteFollowUp failed: %v", err)
	}

	found, err := GetFollowUp(db, f.ID)
	if err != nil {
		t.Fatalf("GetFollowUp failed: %v", err)
	}
	if found.Status != models.FollowUpCompleted {
		t.Errorf("Expected status %s, got %s", models.FollowUpCompleted, found.Status)
	}
}

func TestCompleteFollowUpNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer func() { _ = db.Close() }()

	if err := CompleteFollowUp(db, uuid.New()); err == nil {
		t.Error("Expected error for missing follow-up")
	}
}

func TestListOverdueFollowUps(t *testing.T) {
	db := setupTestDB(t)
	defer func() { _ = db.Close() }()

	now := time.Now()

	overdue := &models.FollowUp{FollowUpDate: now.AddDate(0, 0, -2), AssignedTo: "alice"}
	upcoming := &models.FollowUp{FollowUpDate: now.AddDate(0, 0, 2), AssignedTo: "alice"}
	done := &models.FollowUp{FollowUpDate: now.AddDate(0, 0, -5), Status: models.FollowUpCompleted, AssignedTo: "alice"}

	for _, f := range []*models.FollowUp{overdue, upcoming, done} {
		if err := CreateFollowUp(db, f); err != nil {
			t.Fatalf("CreateFollowUp failed: %v", err)
		}
	}

	found, err := ListOverdueFollowUps(db, now, 0)
	if err != nil {
		t.Fatalf("ListOverdueFollowUps failed: %v", err)
	}

	if len(found) != 1 {
		t.Fatalf("Expected 1 overdue follow-up, got %d", len(found))
	}
	if found[0].ID != overdue.ID {
		t.Error("Wrong follow-up returned")
	}
}

func TestListFollowUpsByAssignee(t *testing.T) {
	db := setupTestDB(t)
	defer func() { _ = db.Close() }()

	mine := &models.FollowUp{FollowUpDate: time.Now(), AssignedTo: "alice"}
	theirs := &models.FollowUp{FollowUpDate: time.Now(), AssignedTo: "bob"}
	for _, f := range []*models.FollowUp{mine, theirs} {
		if err := CreateFollowUp(db, f); err != nil {
			t.Fatalf("CreateFollowUp failed: %v", err)
		}
	}

	found, err := ListFollowUps(db, "", "alice", 0)
	if err != nil {
		t.Fatalf("ListFollowUps failed: %v", err)
	}
	if len(found) != 1 || found[0].AssignedTo != "alice" {
		t.Errorf("Expected only alice's follow-ups, got %d", len(found))
	}
}
