// ABOUTME: Database operations for follow-up tracking
// ABOUTME: Handles scheduling, completion, and overdue follow-up queries
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealscope/models"
)

func CreateFollowUp(db *sql.DB, f *models.FollowUp) error {
	f.ID = uuid.New()
	f.CreatedAt = time.Now()

	if f.Status == "" {
		f.Status = models.FollowUpPending
	}
	if f.PriorityScore == 0 {
		f.PriorityScore = 3
	}

	var oppID, contactID *string
	if f.OpportunityID != nil {
		s := f.OpportunityID.String()
		oppID = &s
	}
	if f.ContactID != nil {
		s := f.ContactID.String()
		contactID = &s
	}

	_, err := db.Exec(`
		INSERT INTO follow_ups (id, opportunity_id, contact_id, status, follow_up_date, priority_score, assigned_to, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, f.ID.String(), oppID, contactID, f.Status, f.FollowUpDate, f.PriorityScore, f.AssignedTo, f.Notes, f.CreatedAt)

	return err
}

func GetFollowUp(db *sql.DB, id uuid.UUID) (*models.FollowUp, error) {
	f := &models.FollowUp{}
	var oppID, contactID sql.NullString

	err := db.QueryRow(`
		SELECT id, opportunity_id, contact_id, status, follow_up_date, priority_score, assigned_to, notes, created_at
		FROM follow_ups WHERE id = ?
	`, id.String()).Scan(&f.ID, &oppID, &contactID, &f.Status, &f.FollowUpDate, &f.PriorityScore, &f.AssignedTo, &f.Notes, &f.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if oppID.Valid {
		oid, err := uuid.Parse(oppID.String)
		if err == nil {
			f.OpportunityID = &oid
		}
	}
	if contactID.Valid {
		cid, err := uuid.Parse(contactID.String)
		if err == nil {
			f.ContactID = &cid
		}
	}

	return f, nil
}

// CompleteFollowUp marks a follow-up as completed.
func CompleteFollowUp(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`
		UPDATE follow_ups SET status = ? WHERE id = ?
	`, models.FollowUpCompleted, id.String())
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("follow-up not found: %s", id)
	}

	return nil
}

// ListFollowUps returns follow-ups, optionally filtered by status and assignee.
func ListFollowUps(db *sql.DB, status, assignedTo string, limit int) ([]models.FollowUp, error) {
	if limit <= 0 {
		limit = 10000
	}

	query := `
		SELECT id, opportunity_id, contact_id, status, follow_up_date, priority_score, assigned_to, notes, created_at
		FROM follow_ups
	`
	var conditions []string
	var args []interface{}

	if status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, status)
	}
	if assignedTo != "" {
		conditions = append(conditions, "assigned_to = ?")
		args = append(args, assignedTo)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY follow_up_date ASC LIMIT ?"
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanFollowUps(rows)
}

// ListOverdueFollowUps returns pending follow-ups whose date has passed.
func ListOverdueFollowUps(db *sql.DB, now time.Time, limit int) ([]models.FollowUp, error) {
	if limit <= 0 {
		limit = 10000
	}

	rows, err := db.Query(`
		SELECT id, opportunity_id, contact_id, status, follow_up_date, priority_score, assigned_to, notes, created_at
		FROM follow_ups
		WHERE status != ? AND follow_up_date < ?
		ORDER BY follow_up_date ASC
		LIMIT ?
	`, models.FollowUpCompleted, now, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanFollowUps(rows)
}

func scanFollowUps(rows *sql.Rows) ([]models.FollowUp, error) {
	var followUps []models.FollowUp
	for rows.Next() {
		var f models.FollowUp
		var oppID, contactID sql.NullString

		if err := rows.Scan(&f.ID, &oppID, &contactID, &f.Status, &f.FollowUpDate, &f.PriorityScore, &f.AssignedTo, &f.Notes, &f.CreatedAt); err != nil {
			return nil, err
		}

		if oppID.Valid {
			oid, err := uuid.Parse(oppID.String)
			if err == nil {
				f.OpportunityID = &oid
			}
		}
		if contactID.Valid {
			cid, err := uuid.Parse(contactID.String)
			if err == nil {
				f.ContactID = &cid
			}
		}

		followUps = append(followUps, f)
	}

	return followUps, rows.Err()
}
