// ABOUTME: Contact database operations
// ABOUTME: Handles CRUD operations, contact lookups, and engagement scoring fields
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealscope/models"
)

func CreateContact(db *sql.DB, contact *models.Contact) error {
	contact.ID = uuid.New()
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	var companyID *string
	if contact.CompanyID != nil {
		s := contact.CompanyID.String()
		companyID = &s
	}

	_, err := db.Exec(`
		INSERT INTO contacts (id, name, email, phone, company_id, influence_level, engagement_level, contact_score, last_interaction, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contact.ID.String(), contact.Name, contact.Email, contact.Phone, companyID, contact.InfluenceLevel, contact.EngagementLevel, contact.ContactScore, contact.LastInteraction, contact.Notes, contact.CreatedAt, contact.UpdatedAt)

	return err
}

func GetContact(db *sql.DB, id uuid.UUID) (*models.Contact, error) {
	contact := &models.Contact{}
	var companyID sql.NullString

	err := db.QueryRow(`
		SELECT id, name, email, phone, company_id, influence_level, engagement_level, contact_score, last_interaction, notes, created_at, updated_at
		FROM contacts WHERE id = ?
	`, id.String()).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Email,
		&contact.Phone,
		&companyID,
		&contact.InfluenceLevel,
		&contact.EngagementLevel,
		&contact.ContactScore,
		&contact.LastInteraction,
		&contact.Notes,
		&contact.CreatedAt,
		&contact.UpdatedAt,
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
			contact.CompanyID = &cid
		}
	}

	return contact, nil
}

func UpdateContact(db *sql.DB, contact *models.Contact) error {
	contact.UpdatedAt = time.Now()

	var companyID *string
	if contact.CompanyID != nil {
		s := contact.CompanyID.String()
		companyID = &s
	}

	_, err := db.Exec(`
		UPDATE contacts
		SET name = ?, email = ?, phone = ?, company_id = ?, influence_level = ?, engagement_level = ?, contact_score = ?, last_interaction = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, contact.Name, contact.Email, contact.Phone, companyID, contact.InfluenceLevel, contact.EngagementLevel, contact.ContactScore, contact.LastInteraction, contact.Notes, contact.UpdatedAt, contact.ID.String())

	return err
}

func DeleteContact(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`DELETE FROM contacts WHERE id = ?`, id.String())
	return err
}

// FindContacts searches contacts by name or email, optionally scoped to a company.
func FindContacts(db *sql.DB, query string, companyID *uuid.UUID, limit int) ([]models.Contact, error) {
	if limit <= 0 {
		limit = 50
	}

	var conditions []string
	var args []interface{}

	if query != "" {
		conditions = append(conditions, "(name LIKE ? OR email LIKE ?)")
		pattern := "%" + query + "%"
		args = append(args, pattern, pattern)
	}
	if companyID != nil {
		conditions = append(conditions, "company_id = ?")
		args = append(args, companyID.String())
	}

	sqlQuery := `
		SELECT id, name, email, phone, company_id, influence_level, engagement_level, contact_score, last_interaction, notes, created_at, updated_at
		FROM contacts
	`
	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY name ASC LIMIT ?"
	args = append(args, limit)

	rows, err := db.Query(sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		var cid sql.NullString

		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &cid, &c.InfluenceLevel, &c.EngagementLevel, &c.ContactScore, &c.LastInteraction, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}

		if cid.Valid {
			parsed, err := uuid.Parse(cid.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse company ID: %w", err)
			}
			c.CompanyID = &parsed
		}

		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}
