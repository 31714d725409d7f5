// ABOUTME: Terminal dashboard rendering for pipeline reports
// ABOUTME: Provides an ASCII overview of stages, forecast, risk, and recommendations
package viz

import (
	"fmt"
	"strings"

	"github.com/harperreed/dealscope/intel"
)

// RenderReport renders a report as an ASCII dashboard for the terminal.
func RenderReport(report *intel.Report) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString(fmt.Sprintf("  PIPELINE REPORT (%s, %s)\n", report.Kind, report.Period))
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString(fmt.Sprintf("  💼 %d opportunities  💰 $%.0fK total\n\n",
		report.TotalOpportunities, report.TotalValue/1000))

	if len(report.Stages) > 0 {
		out.WriteString("PIPELINE OVERVIEW\n")
		renderStages(&out, report.Stages)
		out.WriteString("\n")
	}

	if len(report.Bottlenecks) > 0 {
		out.WriteString("BOTTLENECKS\n")
		for _, b := range report.Bottlenecks {
			out.WriteString(fmt.Sprintf("  ⚠️  %s (%s impact): %s\n", b.Stage, b.Impact, b.Issue))
		}
		out.WriteString("\n")
	}

	if report.Forecast != nil {
		f := report.Forecast
		out.WriteString("FORECAST\n")
		out.WriteString(fmt.Sprintf("  Weighted $%.0fK  Optimistic $%.0fK  Pessimistic $%.0fK  (%s confidence)\n\n",
			f.WeightedForecast/1000, f.OptimisticForecast/1000, f.PessimisticForecast/1000, f.ConfidenceLevel))
	}

	if report.Risk != nil {
		r := report.Risk
		out.WriteString("RISK\n")
		out.WriteString(fmt.Sprintf("  Level %s (score %.0f)  Health %.0f%%  %d overdue items\n\n",
			r.RiskLevel, r.OverallRiskScore, r.HealthScore, len(r.OverdueItems)))
	}

	if report.Quotations != nil {
		q := report.Quotations
		out.WriteString("QUOTATIONS\n")
		out.WriteString(fmt.Sprintf("  %d quotations  $%.0fK quoted  %.0f%% acceptance\n\n",
			q.Total, q.TotalValue/1000, q.AcceptanceRate))
	}

	if len(report.TopPerformers) > 0 {
		out.WriteString("TOP PERFORMERS\n")
		for i, p := range report.TopPerformers {
			out.WriteString(fmt.Sprintf("  %d. %-12s $%.0fK  %.0f%% win rate  (%s)\n",
				i+1, p.OwnerID, p.Value/1000, p.WinRate, p.Tier))
		}
		out.WriteString("\n")
	}

	if len(report.Recommendations) > 0 {
		out.WriteString("RECOMMENDATIONS\n")
		for _, rec := range report.Recommendations {
			out.WriteString(fmt.Sprintf("  • %s\n", rec))
		}
	}

	return out.String()
}

func renderStages(out *strings.Builder, stages []intel.StageMetric) {
	maxCount := 0
	for _, m := range stages {
		if m.Count > maxCount {
			maxCount = m.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, m := range stages {
		barLength := (m.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		marker := " "
		if m.BottleneckRisk > 40 {
			marker = "!"
		}

		out.WriteString(fmt.Sprintf("  %-13s %s %s %2d ($%.0fK, %.0f%% conv)\n",
			m.Stage, bar, marker, m.Count, m.Value/1000, m.ConversionRate))
	}
}
