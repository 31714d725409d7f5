// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server exposing CRM and report tools on stdio
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/harperreed/dealscope/db"
	"github.com/harperreed/dealscope/handlers"
	"github.com/harperreed/dealscope/intel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(database *sql.DB) error {
	log.Println("Starting dealscope MCP server...")

	store := db.NewStore(database)
	engine := intel.NewEngine(intel.Repositories{
		Opportunities: store,
		FollowUps:     store,
		Activities:    store,
		Contacts:      store,
		Quotations:    store,
	})

	opportunityHandlers := handlers.NewOpportunityHandlers(database)
	followUpHandlers := handlers.NewFollowUpHandlers(database)
	quotationHandlers := handlers.NewQuotationHandlers(database)
	contactHandlers := handlers.NewContactHandlers(database)
	reportHandlers := handlers.NewReportHandlers(engine)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "dealscope",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_opportunity",
		Description: "Create a new sales opportunity with optional company and contact",
	}, opportunityHandlers.CreateOpportunity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_opportunity",
		Description: "Update an opportunity's stage, size, probability, or close date",
	}, opportunityHandlers.UpdateOpportunity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_opportunity",
		Description: "Delete an opportunity",
	}, opportunityHandlers.DeleteOpportunity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "schedule_follow_up",
		Description: "Schedule a follow-up against an opportunity or contact",
	}, followUpHandlers.ScheduleFollowUp)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_follow_up",
		Description: "Mark a follow-up as completed",
	}, followUpHandlers.CompleteFollowUp)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_overdue_follow_ups",
		Description: "List pending follow-ups that are past due",
	}, followUpHandlers.ListOverdueFollowUps)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_quotation",
		Description: "Create a quotation, optionally linked to an opportunity",
	}, quotationHandlers.CreateQuotation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_quotation_status",
		Description: "Transition a quotation to sent, accepted, rejected, or expired",
	}, quotationHandlers.UpdateQuotationStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact with optional company and engagement scoring",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search for contacts by name or email",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_activity",
		Description: "Log an interaction with a contact and update the last interaction timestamp",
	}, contactHandlers.LogActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_report",
		Description: "Generate a sales, pipeline, forecast, or quotation intelligence report",
	}, reportHandlers.GenerateReport)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
