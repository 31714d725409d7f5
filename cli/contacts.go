// ABOUTME: Contact CLI commands
// ABOUTME: Adding, listing, and logging interactions with contacts
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/harperreed/dealscope/db"
	"github.com/harperreed/dealscope/models"
)

// AddContactCommand adds a new contact.
func AddContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	name := fs.String("name", "", "Contact name (required)")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	company := fs.String("company", "", "Company name")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	contact := &models.Contact{
		Name:  *name,
		Email: *email,
		Phone: *phone,
	}

	if *company != "" {
		existingCompany, err := db.FindCompanyByName(database, *company)
		if err != nil {
			return fmt.Errorf("failed to lookup company: %w", err)
		}
		if existingCompany == nil {
			existingCompany = &models.Company{Name: *company}
			if err := db.CreateCompany(database, existingCompany); err != nil {
				return fmt.Errorf("failed to create company: %w", err)
			}
		}
		contact.CompanyID = &existingCompany.ID
	}

	if err := db.CreateContact(database, contact); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	fmt.Printf("✓ Contact created: %s (ID: %s)\n", contact.Name, contact.ID)
	return nil
}

// ListContactsCommand lists contacts matching an optional query.
func ListContactsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	query := fs.String("query", "", "Search by name or email")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	contacts, err := db.FindContacts(database, *query, nil, *limit)
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSCORE\tLAST INTERACTION")
	for _, c := range contacts {
		last := "never"
		if c.LastInteraction != nil {
			last = c.LastInteraction.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%s\n", c.ID, c.Name, c.Email, c.ContactScore, last)
	}
	return w.Flush()
}

// LogActivityCommand records an interaction with a contact.
func LogActivityCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("log-activity", flag.ExitOnError)
	contact := fs.String("contact", "", "Contact ID")
	owner := fs.String("owner", "", "User who performed the activity (required)")
	channel := fs.String("channel", models.ChannelCall, "Channel (meeting, call, email, message, event)")
	notes := fs.String("notes", "", "Free-form notes")
	_ = fs.Parse(args)

	if *owner == "" {
		return fmt.Errorf("--owner is required")
	}

	activity := &models.Activity{
		OwnerID: *owner,
		Channel: *channel,
		Notes:   *notes,
	}

	if *contact != "" {
		contactID, err := uuid.Parse(*contact)
		if err != nil {
			return fmt.Errorf("invalid contact ID: %w", err)
		}
		activity.ContactID = &contactID
	}

	if err := db.LogActivity(database, activity); err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	fmt.Printf("✓ Activity logged (ID: %s)\n", activity.ID)
	return nil
}
