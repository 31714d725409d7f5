// ABOUTME: Activity database operations
// ABOUTME: Handles logging interactions and updating contact engagement timestamps
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealscope/models"
)

// LogActivity records a new activity and updates the contact's last interaction.
func LogActivity(db *sql.DB, a *models.Activity) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now()
	}

	var contactID *string
	if a.ContactID != nil {
		s := a.ContactID.String()
		contactID = &s
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO activities (id, contact_id, owner_id, channel, effectiveness, sentiment, response_received, notes, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID.String(), contactID, a.OwnerID, a.Channel, a.Effectiveness, a.Sentiment, a.ResponseReceived, a.Notes, a.OccurredAt)
	if err != nil {
		return err
	}

	if a.ContactID != nil {
		_, err = tx.Exec(`
			UPDATE contacts SET last_interaction = ?, updated_at = ? WHERE id = ?
		`, a.OccurredAt, a.OccurredAt, a.ContactID.String())
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListActivities returns activities, newest first, optionally filtered by contact.
func ListActivities(db *sql.DB, contactID *uuid.UUID, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 10000
	}

	var rows *sql.Rows
	var err error

	if contactID != nil {
		rows, err = db.Query(`
			SELECT id, contact_id, owner_id, channel, effectiveness, sentiment, response_received, notes, occurred_at
			FROM activities
			WHERE contact_id = ?
			ORDER BY occurred_at DESC
			LIMIT ?
		`, contactID.String(), limit)
	} else {
		rows, err = db.Query(`
			SELECT id, contact_id, owner_id, channel, effectiveness, sentiment, response_received, notes, occurred_at
			FROM activities
			ORDER BY occurred_at DESC
			LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		var cid sql.NullString

		if err := rows.Scan(&a.ID, &cid, &a.OwnerID, &a.Channel, &a.Effectiveness, &a.Sentiment, &a.ResponseReceived, &a.Notes, &a.OccurredAt); err != nil {
			return nil, err
		}

		if cid.Valid {
			parsed, err := uuid.Parse(cid.String)
			if err == nil {
				a.ContactID = &parsed
			}
		}

		activities = append(activities, a)
	}

	return activities, rows.Err()
}
