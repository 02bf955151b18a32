package decisionserver

import "github.com/nlhe/decisionengine/internal/trace"

// traceNodeFromNode converts a trace.Node tree into its wire shape.
func traceNodeFromNode(n trace.Node) TraceNodeData {
	data := TraceNodeData{
		Name:        n.Name,
		Description: n.Description,
		Result:      n.Result,
		ElapsedSecs: n.Elapsed,
	}
	for _, child := range n.Children {
		data.Children = append(data.Children, traceNodeFromNode(child))
	}
	return data
}
