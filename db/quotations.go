// ABOUTME: Quotation database operations
// ABOUTME: Handles quotation lifecycle and status transitions
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealscope/models"
)

func CreateQuotation(db *sql.DB, q *models.Quotation) error {
	q.ID = uuid.New()
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now

	if q.Status == "" {
		q.Status = models.QuotationDraft
	}
	if q.Number == "" {
		q.Number = fmt.Sprintf("Q-%s", q.ID.String()[:8])
	}

	var oppID *string
	if q.OpportunityID != nil {
		s := q.OpportunityID.String()
		oppID = &s
	}

	_, err := db.Exec(`
		INSERT INTO quotations (id, number, opportunity_id, owner_id, amount, status, valid_until, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID.String(), q.Number, oppID, q.OwnerID, q.Amount, q.Status, q.ValidUntil, q.CreatedAt, q.UpdatedAt)

	return err
}

func GetQuotation(db *sql.DB, id uuid.UUID) (*models.Quotation, error) {
	q := &models.Quotation{}
	var oppID sql.NullString

	err := db.QueryRow(`
		SELECT id, number, opportunity_id, owner_id, amount, status, valid_until, created_at, updated_at
		FROM quotations WHERE id = ?
	`, id.String()).Scan(&q.ID, &q.Number, &oppID, &q.OwnerID, &q.Amount, &q.Status, &q.ValidUntil, &q.CreatedAt, &q.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if oppID.Valid {
		oid, err := uuid.Parse(oppID.String)
		if err == nil {
			q.OpportunityID = &oid
		}
	}

	return q, nil
}

// UpdateQuotationStatus transitions a quotation to a new status.
func UpdateQuotationStatus(db *sql.DB, id uuid.UUID, status string) error {
	result, err := db.Exec(`
		UPDATE quotations SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now(), id.String())
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("quotation not found: %s", id)
	}

	return nil
}

// ListQuotations returns quotations, optionally filtered by status.
func ListQuotations(db *sql.DB, status string, limit int) ([]models.Quotation, error) {
	if limit <= 0 {
		limit = 10000
	}

	var rows *sql.Rows
	var err error

	if status != "" {
		rows, err = db.Query(`
			SELECT id, number, opportunity_id, owner_id, amount, status, valid_until, created_at, updated_at
			FROM quotations
			WHERE status = ?
			ORDER BY created_at DESC
			LIMIT ?
		`, status, limit)
	} else {
		rows, err = db.Query(`
			SELECT id, number, opportunity_id, owner_id, amount, status, valid_until, created_at, updated_at
			FROM quotations
			ORDER BY created_at DESC
			LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var quotations []models.Quotation
	for rows.Next() {
		var q models.Quotation
		var oppID sql.NullString

		if err := rows.Scan(&q.ID, &q.Number, &oppID, &q.OwnerID, &q.Amount, &q.Status, &q.ValidUntil, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}

		if oppID.Valid {
			oid, err := uuid.Parse(oppID.String)
			if err == nil {
				q.OpportunityID = &oid
			}
		}

		quotations = append(quotations, q)
	}

	return quotations, rows.Err()
}
