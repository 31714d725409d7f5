// ABOUTME: Pipeline funnel graph generation
// ABOUTME: Renders the stage funnel as Graphviz DOT, colored by bottleneck risk
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/harperreed/dealscope/intel"
	"github.com/harperreed/dealscope/models"
)

// GenerateFunnelGraph renders the stage metrics as a left-to-right funnel.
// Nodes are colored by bottleneck risk; edges carry conversion rates.
func GenerateFunnelGraph(stages []intel.StageMetric) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetRankDir(cgraph.LRRank)

	var prev *cgraph.Node
	var prevMetric intel.StageMetric
	for _, m := range stages {
		if models.IsClosedStage(m.Stage) {
			continue
		}

		node, err := graph.CreateNodeByName(m.Stage)
		if err != nil {
			return "", fmt.Errorf("failed to create node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%d deals / $%.0fK", m.Stage, m.Count, m.Value/1000))
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor(riskColor(m.BottleneckRisk))

		if prev != nil {
			edge, err := graph.CreateEdgeByName("", prev, node)
			if err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetLabel(fmt.Sprintf("%.0f%%", prevMetric.ConversionRate))
		}

		prev = node
		prevMetric = m
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}

func riskColor(risk float64) string {
	switch {
	case risk > 70:
		return "#f28b82" // red
	case risk > 40:
		return "#fbbc04" // amber
	}
	return "#ccff90" // green
}
