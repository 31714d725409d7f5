// ABOUTME: Read-only snapshot adapter for the intelligence engine
// ABOUTME: Satisfies the intel repository interfaces over the SQLite database
package db

import (
	"context"
	"database/sql"

	"github.com/harperreed/dealscope/models"
)

// Store adapts the SQLite database to the engine's repository interfaces.
// Every method returns the full collection; the engine applies its own
// period and scope filters.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) *Store {
	return &Store{db: database}
}

func (s *Store) ListOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ListOpportunities(s.db, "", "", 0)
}

func (s *Store) ListFollowUps(ctx context.Context) ([]models.FollowUp, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ListFollowUps(s.db, "", "", 0)
}

func (s *Store) ListActivities(ctx context.Context) ([]models.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ListActivities(s.db, nil, 0)
}

func (s *Store) ListContacts(ctx context.Context) ([]models.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return FindContacts(s.db, "", nil, 100000)
}

func (s *Store) ListCompanies(ctx context.Context) ([]models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ListCompanies(s.db, "", 100000)
}

func (s *Store) ListQuotations(ctx context.Context) ([]models.Quotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ListQuotations(s.db, "", 0)
}
