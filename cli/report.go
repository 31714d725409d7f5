// ABOUTME: Report CLI commands
// ABOUTME: Generates intelligence reports as dashboards, JSON, or an interactive viewer
package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/dealscope/db"
	"github.com/harperreed/dealscope/intel"
	"github.com/harperreed/dealscope/tui"
	"github.com/harperreed/dealscope/viz"
)

func newEngine(database *sql.DB) *intel.Engine {
	store := db.NewStore(database)
	return intel.NewEngine(intel.Repositories{
		Opportunities: store,
		FollowUps:     store,
		Activities:    store,
		Contacts:      store,
		Quotations:    store,
	})
}

// ReportCommand generates a pipeline intelligence report.
func ReportCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	kind := fs.String("kind", "sales", "Report kind (sales, pipeline, forecast, quotation)")
	period := fs.String("period", "month", "Reporting window (week, month, quarter, year)")
	user := fs.String("user", "", "Restrict to records owned by this user")
	admin := fs.Bool("admin", false, "See all records regardless of --user")
	asJSON := fs.Bool("json", false, "Emit the report as JSON")
	interactive := fs.Bool("tui", false, "Open the interactive report viewer")
	_ = fs.Parse(args)

	engine := newEngine(database)
	scope := intel.Scope{IsAdmin: *admin, UserID: *user}
	if *user == "" && !*admin {
		// No user context means the caller wants everything.
		scope.IsAdmin = true
	}

	if *interactive {
		return tui.Run(engine, intel.ReportKind(*kind), intel.Period(*period), scope)
	}

	report, err := engine.GenerateReport(context.Background(), intel.ReportKind(*kind), intel.Period(*period), scope)
	if err != nil {
		return err
	}

	if *asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	fmt.Print(viz.RenderReport(report))
	return nil
}

// ReportFunnelCommand renders the pipeline funnel as a Graphviz graph.
func ReportFunnelCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("report funnel", flag.ExitOnError)
	period := fs.String("period", "month", "Reporting window (week, month, quarter, year)")
	output := fs.String("output", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	engine := newEngine(database)
	report, err := engine.GenerateReport(context.Background(), intel.ReportPipeline, intel.Period(*period), intel.Scope{IsAdmin: true})
	if err != nil {
		return err
	}

	dot, err := viz.GenerateFunnelGraph(report.Stages)
	if err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(dot), 0644)
	}

	fmt.Println(dot)
	return nil
}
