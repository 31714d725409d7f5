// ABOUTME: Opportunity CLI commands
// ABOUTME: Human-friendly commands for managing the sales pipeline
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

// AddOpportunityCommand adds a new opportunity.
func AddOpportunityCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-opportunity", flag.ExitOnError)
	name := fs.String("name", "", "Opportunity name (required)")
	owner := fs.String("owner", "", "Owner user ID (required)")
	company := fs.String("company", "", "Company name")
	size := fs.Float64("size", 0, "Deal size")
	probability := fs.Float64("probability", 0, "Close probability (0-100)")
	stage := fs.String("stage", models.StageProspecting, "Stage (prospecting, qualification, proposal, negotiation, closed_won, closed_lost)")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	if *owner == "" {
		return fmt.Errorf("--owner is required")
	}
	if !models.IsCanonicalStage(*stage) {
		return fmt.Errorf("invalid stage: %s", *stage)
	}

	opp := &models.Opportunity{
		Name:        *name,
		Stage:       *stage,
		DealSize:    *size,
		Probability: *probability,
		OwnerID:     *owner,
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
		opp.CompanyID = &existingCompany.ID
	}

	if err := db.CreateOpportunity(database, opp); err != nil {
		return fmt.Errorf("failed to create opportunity: %w", err)
	}

	fmt.Printf("✓ Opportunity created: %s (ID: %s)\n", opp.Name, opp.ID)
	fmt.Printf("  Stage: %s\n", opp.Stage)
	fmt.Printf("  Size: $%.2f at %.0f%%\n", opp.DealSize, opp.Probability)

	return nil
}

// ListOpportunitiesCommand lists opportunities with optional filters.
func ListOpportunitiesCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-opportunities", flag.ExitOnError)
	stage := fs.String("stage", "", "Filter by stage")
	owner := fs.String("owner", "", "Filter by owner")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	opportunities, err := db.ListOpportunities(database, *stage, *owner, *limit)
	if err != nil {
		return fmt.Errorf("failed to list opportunities: %w", err)
	}

	if len(opportunities) == 0 {
		fmt.Println("No opportunities found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTAGE\tSIZE\tPROB\tOWNER")
	for _, o := range opportunities {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.0f\t%.0f%%\t%s\n",
			o.ID, o.Name, o.Stage, o.DealSize, o.Probability, o.OwnerID)
	}
	return w.Flush()
}

// DeleteOpportunityCommand removes an opportunity by ID.
func DeleteOpportunityCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-opportunity", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("opportunity ID required")
	}

	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid opportunity ID: %w", err)
	}

	if err := db.DeleteOpportunity(database, id); err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}

	fmt.Printf("✓ Opportunity %s deleted\n", id)
	return nil
}
