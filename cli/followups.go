// ABOUTME: Follow-up CLI commands
// ABOUTME: Scheduling, completing, and reviewing follow-ups from the terminal
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealscope/db"
	"github.com/harperreed/dealscope/models"
)

// AddFollowUpCommand schedules a follow-up.
func AddFollowUpCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-followup", flag.ExitOnError)
	date := fs.String("date", "", "Due date in YYYY-MM-DD format (required)")
	assignee := fs.String("assignee", "", "Assignee user ID (required)")
	priority := fs.Int("priority", 3, "Priority from 1 (low) to 5 (urgent)")
	opportunity := fs.String("opportunity", "", "Related opportunity ID")
	notes := fs.String("notes", "", "What the follow-up is about")
	_ = fs.Parse(args)

	if *date == "" {
		return fmt.Errorf("--date is required")
	}
	if *assignee == "" {
		return fmt.Errorf("--assignee is required")
	}

	dueDate, err := time.Parse("2006-01-02", *date)
	if err != nil {
		return fmt.Errorf("invalid date (use YYYY-MM-DD): %w", err)
	}

	f := &models.FollowUp{
		FollowUpDate:  dueDate,
		PriorityScore: *priority,
		AssignedTo:    *assignee,
		Notes:         *notes,
	}

	if *opportunity != "" {
		oppID, err := uuid.Parse(*opportunity)
		if err != nil {
			return fmt.Errorf("invalid opportunity ID: %w", err)
		}
		f.OpportunityID = &oppID
	}

	if err := db.CreateFollowUp(database, f); err != nil {
		return fmt.Errorf("failed to schedule follow-up: %w", err)
	}

	fmt.Printf("✓ Follow-up scheduled for %s (ID: %s)\n", dueDate.Format("2006-01-02"), f.ID)
	return nil
}

// ListFollowUpsCommand lists follow-ups, optionally only overdue ones.
func ListFollowUpsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-followups", flag.ExitOnError)
	overdue := fs.Bool("overdue", false, "Only show overdue follow-ups")
	assignee := fs.String("assignee", "", "Filter by assignee")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	var followUps []models.FollowUp
	var err error

	if *overdue {
		followUps, err = db.ListOverdueFollowUps(database, time.Now(), *limit)
	} else {
		followUps, err = db.ListFollowUps(database, "", *assignee, *limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list follow-ups: %w", err)
	}

	if len(followUps) == 0 {
		fmt.Println("No follow-ups found")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDUE\tPRIORITY\tSTATUS\tASSIGNEE\tNOTES")
	for _, f := range followUps {
		due := f.FollowUpDate.Format("2006-01-02")
		if f.IsOverdue(now) {
			due += " (overdue)"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			f.ID, due, f.PriorityScore, f.Status, f.AssignedTo, f.Notes)
	}
	return w.Flush()
}

// CompleteFollowUpCommand marks a follow-up as done.
func CompleteFollowUpCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("complete-followup", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("follow-up ID required")
	}

	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid follow-up ID: %w", err)
	}

	if err := db.CompleteFollowUp(database, id); err != nil {
		return fmt.Errorf("failed to complete follow-up: %w", err)
	}

	fmt.Printf("✓ Follow-up %s completed\n", id)
	return nil
}
