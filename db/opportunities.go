// ABOUTME: Opportunity database operations
// ABOUTME: Handles opportunity lifecycle, stage changes, and listing for analysis
package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealscope/models"
)

func CreateOpportunity(db *sql.DB, opp *models.Opportunity) error {
	opp.ID = uuid.New()
	now := time.Now()
	opp.CreatedAt = now
	opp.UpdatedAt = now

	if opp.Stage == "" {
		opp.Stage = models.StageProspecting
	}

	var companyID, contactID *string
	if opp.CompanyID != nil {
		s := opp.CompanyID.String()
		companyID = &s
	}
	if opp.ContactID != nil {
		s := opp.ContactID.String()
		contactID = &s
	}

	_, err := db.Exec(`
		INSERT INTO opportunities (id, name, stage, deal_size, probability, owner_id, company_id, contact_id, stage_velocity, expected_close_date, last_activity_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, opp.ID.String(), opp.Name, opp.Stage, opp.DealSize, opp.Probability, opp.OwnerID, companyID, contactID, opp.StageVelocity, opp.ExpectedCloseDate, opp.LastActivityDate, opp.CreatedAt, opp.UpdatedAt)

	return err
}

func GetOpportunity(db *sql.DB, id uuid.UUID) (*models.Opportunity, error) {
	opp := &models.Opportunity{}
	var companyID, contactID sql.NullString

	err := db.QueryRow(`
		SELECT id, name, stage, deal_size, probability, owner_id, company_id, contact_id, stage_velocity, expected_close_date, last_activity_date, created_at, updated_at
		FROM opportunities WHERE id = ?
	`, id.String()).Scan(
		&opp.ID,
		&opp.Name,
		&opp.Stage,
		&opp.DealSize,
		&opp.Probability,
		&opp.OwnerID,
		&companyID,
		&contactID,
		&opp.StageVelocity,
		&opp.ExpectedCloseDate,
		&opp.LastActivityDate,
		&opp.CreatedAt,
		&opp.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if companyID.Valid {
		cid, err := uuid.Parse(companyID.String)
		if err == nil {
			opp.CompanyID = &cid
		}
	}
	if contactID.Valid {
		cid, err := uuid.Parse(contactID.String)
		if err == nil {
			opp.ContactID = &cid
		}
	}

	return opp, nil
}

func UpdateOpportunity(db *sql.DB, opp *models.Opportunity) error {
	opp.UpdatedAt = time.Now()

	var companyID, contactID *string
	if opp.CompanyID != nil {
		s := opp.CompanyID.String()
		companyID = &s
	}
	if opp.ContactID != nil {
		s := opp.ContactID.String()
		contactID = &s
	}

	_, err := db.Exec(`
		UPDATE opportunities
		SET name = ?, stage = ?, deal_size = ?, probability = ?, owner_id = ?, company_id = ?, contact_id = ?, stage_velocity = ?, expected_close_date = ?, last_activity_date = ?, updated_at = ?
		WHERE id = ?
	`, opp.Name, opp.Stage, opp.DealSize, opp.Probability, opp.OwnerID, companyID, contactID, opp.StageVelocity, opp.ExpectedCloseDate, opp.LastActivityDate, opp.UpdatedAt, opp.ID.String())

	return err
}

func DeleteOpportunity(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`DELETE FROM opportunities WHERE id = ?`, id.String())
	return err
}

// ListOpportunities returns opportunities, optionally filtered by stage and owner.
func ListOpportunities(db *sql.DB, stage, ownerID string, limit int) ([]models.Opportunity, error) {
	if limit <= 0 {
		limit = 10000
	}

	query := `
		SELECT id, name, stage, deal_size, probability, owner_id, company_id, contact_id, stage_velocity, expected_close_date, last_activity_date, created_at, updated_at
		FROM opportunities
	`
	var conditions []string
	var args []interface{}

	if stage != "" {
		conditions = append(conditions, "stage = ?")
		args = append(args, stage)
	}
	if ownerID != "" {
		conditions = append(conditions, "owner_id = ?")
		args = append(args, ownerID)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY updated_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var opps []models.Opportunity
	for rows.Next() {
		var o models.Opportunity
		var companyID, contactID sql.NullString

		if err := rows.Scan(&o.ID, &o.Name, &o.Stage, &o.DealSize, &o.Probability, &o.OwnerID, &companyID, &contactID, &o.StageVelocity, &o.ExpectedCloseDate, &o.LastActivityDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}

		if companyID.Valid {
			cid, err := uuid.Parse(companyID.String)
			if err == nil {
				o.CompanyID = &cid
			}
		}
		if contactID.Valid {
			cid, err := uuid.Parse(contactID.String)
			if err == nil {
				o.ContactID = &cid
			}
		}

		opps = append(opps, o)
	}

	return opps, rows.Err()
}
