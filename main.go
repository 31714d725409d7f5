// ABOUTME: Entry point for the dealscope MCP server and CLI
// ABOUTME: Routes to the MCP server, CRM commands, or report generation
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/harperreed/dealscope/cli"
	"github.com/harperreed/dealscope/db"
	"github.com/joho/godotenv"
)

const version = "0.1.0"

func main() {
	// A .env beside the binary can set DEALSCOPE_DB_PATH and friends.
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/dealscope/dealscope.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("dealscope version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		database, err := db.OpenDatabase(getDatabasePath(*dbPath))
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		if err := cli.MCPCommand(database); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "crm":
		finalDBPath := getDatabasePath(*dbPath)
		database, err := db.OpenDatabase(finalDBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		log.Printf("CRM database: %s", finalDBPath)

		if *initOnly {
			log.Println("Database initialized successfully")
			os.Exit(0)
		}

		if len(commandArgs) == 0 {
			fmt.Println("Error: crm requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		crmCommand := commandArgs[0]
		crmArgs := commandArgs[1:]

		switch crmCommand {
		case "add-opportunity":
			if err := cli.AddOpportunityCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "list-opportunities":
			if err := cli.ListOpportunitiesCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "delete-opportunity":
			if err := cli.DeleteOpportunityCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}

		case "add-followup":
			if err := cli.AddFollowUpCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "list-followups":
			if err := cli.ListFollowUpsCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "complete-followup":
			if err := cli.CompleteFollowUpCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}

		case "add-contact":
			if err := cli.AddContactCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "list-contacts":
			if err := cli.ListContactsCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "log-activity":
			if err := cli.LogActivityCommand(database, crmArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}

		default:
			fmt.Printf("Unknown crm command: %s\n\n", crmCommand)
			printUsage()
			os.Exit(1)
		}

	case "report":
		database, err := db.OpenDatabase(getDatabasePath(*dbPath))
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		if len(commandArgs) > 0 && commandArgs[0] == "funnel" {
			if err := cli.ReportFunnelCommand(database, commandArgs[1:]); err != nil {
				log.Fatalf("Error: %v", err)
			}
			return
		}

		if err := cli.ReportCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("DEALSCOPE_DB_PATH"); env != "" {
		return env
	}
	return filepath.Join(xdg.DataHome, "dealscope", "dealscope.db")
}

func printUsage() {
	fmt.Printf(`dealscope v%s - Sales pipeline intelligence

USAGE:
  dealscope [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/dealscope/dealscope.db)
  --init                 Initialize database and exit (use with 'crm')

COMMANDS:
  mcp                    Start MCP server for Claude Desktop
  crm                    CRM management commands
  report                 Generate pipeline intelligence reports

CRM COMMANDS:
  dealscope crm add-opportunity     Add an opportunity
    --name <name>                      Opportunity name (required)
    --owner <id>                       Owner user ID (required)
    --company <company>                Company name
    --size <amount>                    Deal size
    --probability <pct>                Close probability (0-100)
    --stage <stage>                    Pipeline stage

  dealscope crm list-opportunities  List opportunities
    --stage <stage>                    Filter by stage
    --owner <id>                       Filter by owner
    --limit <n>                        Max results (default: 50)

  dealscope crm delete-opportunity <id>

  dealscope crm add-followup        Schedule a follow-up
    --date <YYYY-MM-DD>                Due date (required)
    --assignee <id>                    Assignee (required)
    --priority <1-5>                   Priority (default: 3)
    --opportunity <id>                 Related opportunity
    --notes <text>                     Notes

  dealscope crm list-followups      List follow-ups
    --overdue                          Only overdue follow-ups
    --assignee <id>                    Filter by assignee

  dealscope crm complete-followup <id>

  dealscope crm add-contact         Add a contact
    --name <name>                      Contact name (required)
    --email <email>                    Email address
    --company <company>                Company name

  dealscope crm list-contacts       List contacts
    --query <text>                     Search by name or email

  dealscope crm log-activity        Log an interaction
    --owner <id>                       Who performed it (required)
    --contact <id>                     Contact involved
    --channel <channel>                meeting, call, email, message, event

REPORTS:
  dealscope report                  Generate a report
    --kind <kind>                      sales, pipeline, forecast, quotation (default: sales)
    --period <period>                  week, month, quarter, year (default: month)
    --user <id>                        Restrict to one owner
    --admin                            See all records
    --json                             Emit JSON
    --tui                              Interactive viewer

  dealscope report funnel           Render the pipeline funnel as Graphviz
    --period <period>                  Reporting window
    --output <file>                    Write DOT to a file
`, version)
}
