// ABOUTME: Company database operations
// ABOUTME: Handles CRUD operations and company lookups
package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealscope/models"
)

func CreateCompany(db *sql.DB, company *models.Company) error {
	company.ID = uuid.New()
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO companies (id, name, domain, industry, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, company.ID.String(), company.Name, company.Domain, company.Industry, company.Notes, company.CreatedAt, company.UpdatedAt)

	return err
}

func GetCompany(db *sql.DB, id uuid.UUID) (*models.Company, error) {
	company := &models.Company{}
	err := db.QueryRow(`
		SELECT id, name, domain, industry, notes, created_at, updated_at
		FROM companies WHERE id = ?
	`, id.String()).Scan(
		&company.ID,
		&company.Name,
		&company.Domain,
		&company.Industry,
		&company.Notes,
		&company.CreatedAt,
		&company.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return company, nil
}

// FindCompanyByName returns the first company matching name exactly, or nil.
func FindCompanyByName(db *sql.DB, name string) (*models.Company, error) {
	company := &models.Company{}
	err := db.QueryRow(`
		SELECT id, name, domain, industry, notes, created_at, updated_at
		FROM companies WHERE name = ? LIMIT 1
	`, name).Scan(
		&company.ID,
		&company.Name,
		&company.Domain,
		&company.Industry,
		&company.Notes,
		&company.CreatedAt,
		&company.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return company, nil
}

func ListCompanies(db *sql.DB, query string, limit int) ([]models.Company, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error

	if query != "" {
		pattern := "%" + query + "%"
		rows, err = db.Query(`
			SELECT id, name, domain, industry, notes, created_at, updated_at
			FROM companies
			WHERE name LIKE ? OR domain LIKE ?
			ORDER BY name ASC
			LIMIT ?
		`, pattern, pattern, limit)
	} else {
		rows, err = db.Query(`
			SELECT id, name, domain, industry, notes, created_at, updated_at
			FROM companies
			ORDER BY name ASC
			LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var companies []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Domain, &c.Industry, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}

	return companies, rows.Err()
}
