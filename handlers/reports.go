// ABOUTME: Report MCP tool handler
// ABOUTME: Exposes the pipeline intelligence engine as the generate_report tool
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/dealscope/intel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ReportHandlers struct {
	engine *intel.Engine
}

func NewReportHandlers(engine *intel.Engine) *ReportHandlers {
	return &ReportHandlers{engine: engine}
}

type GenerateReportInput struct {
	Kind    string `json:"kind" jsonschema:"Report kind: sales, pipeline, forecast, quotation (required)"`
	Period  string `json:"period,omitempty" jsonschema:"Reporting window: week, month, quarter, year (default month)"`
	UserID  string `json:"user_id,omitempty" jsonschema:"Restrict to records owned by this user"`
	IsAdmin bool   `json:"is_admin,omitempty" jsonschema:"Admins see all records regardless of user_id"`
}

func (h *ReportHandlers) GenerateReport(ctx context.Context, request *mcp.CallToolRequest, input GenerateReportInput) (*mcp.CallToolResult, *intel.Report, error) {
	if input.Kind == "" {
		return nil, nil, fmt.Errorf("kind is required")
	}

	period := intel.Period(input.Period)
	if input.Period == "" {
		period = intel.PeriodMonth
	}

	scope := intel.Scope{IsAdmin: input.IsAdmin, UserID: input.UserID}

	report, err := h.engine.GenerateReport(ctx, intel.ReportKind(input.Kind), period, scope)
	if err != nil {
		return nil, nil, err
	}

	return nil, report, nil
}
