// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	domain TEXT,
	industry TEXT,
	notes TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);

CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	company_id TEXT,
	influence_level TEXT CHECK(influence_level IN ('decision_maker', 'influencer', 'gatekeeper', 'end_user') OR influence_level = ''),
	engagement_level TEXT CHECK(engagement_level IN ('high', 'medium', 'low') OR engagement_level = ''),
	contact_score REAL NOT NULL DEFAULT 0,
	last_interaction DATETIME,
	notes TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (company_id) REFERENCES companies(id)
);

CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email);
CREATE INDEX IF NOT EXISTS idx_contacts_company_id ON contacts(company_id);

CREATE TABLE IF NOT EXISTS opportunities (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	stage TEXT NOT NULL,
	deal_size REAL NOT NULL DEFAULT 0,
	probability REAL NOT NULL DEFAULT 0,
	owner_id TEXT NOT NULL DEFAULT '',
	company_id TEXT,
	contact_id TEXT,
	stage_velocity REAL,
	expected_close_date DATE,
	last_activity_date DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (company_id) REFERENCES companies(id),
	FOREIGN KEY (contact_id) REFERENCES contacts(id)
);

CREATE INDEX IF NOT EXISTS idx_opportunities_stage ON opportunities(stage);
CREATE INDEX IF NOT EXISTS idx_opportunities_owner ON opportunities(owner_id);
CREATE INDEX IF NOT EXISTS idx_opportunities_company_id ON opportunities(company_id);

CREATE TABLE IF NOT EXISTS follow_ups (
	id TEXT PRIMARY KEY,
	opportunity_id TEXT,
	contact_id TEXT,
	status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'completed', 'cancelled')),
	follow_up_date DATETIME NOT NULL,
	priority_score INTEGER NOT NULL DEFAULT 3 CHECK(priority_score BETWEEN 1 AND 5),
	assigned_to TEXT NOT NULL DEFAULT '',
	notes TEXT,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (opportunity_id) REFERENCES opportunities(id) ON DELETE CASCADE,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_follow_ups_status ON follow_ups(status);
CREATE INDEX IF NOT EXISTS idx_follow_ups_date ON follow_ups(follow_up_date);

CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	contact_id TEXT,
	owner_id TEXT NOT NULL DEFAULT '',
	channel TEXT NOT NULL CHECK(channel IN ('meeting', 'call', 'email', 'message', 'event')),
	effectiveness TEXT CHECK(effectiveness IN ('high', 'medium', 'low') OR effectiveness = ''),
	sentiment TEXT CHECK(sentiment IN ('positive', 'neutral', 'negative') OR sentiment = ''),
	response_received INTEGER NOT NULL DEFAULT 0,
	notes TEXT,
	occurred_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_activities_contact ON activities(contact_id);
CREATE INDEX IF NOT EXISTS idx_activities_occurred ON activities(occurred_at DESC);

CREATE TABLE IF NOT EXISTS quotations (
	id TEXT PRIMARY KEY,
	number TEXT NOT NULL,
	opportunity_id TEXT,
	owner_id TEXT NOT NULL DEFAULT '',
	amount REAL NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'draft' CHECK(status IN ('draft', 'sent', 'accepted', 'rejected', 'expired')),
	valid_until DATE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (opportunity_id) REFERENCES opportunities(id)
);

CREATE INDEX IF NOT EXISTS idx_quotations_status ON quotations(status);
CREATE UNIQUE INDEX IF NOT EXISTS idx_quotations_number ON quotations(number);
`

// InitSchema creates all tables if they don't exist.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
