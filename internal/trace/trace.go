// Package trace implements DecisionTrace: the optional, purely
// informational nested record the policy engine emits describing how it
// reached a decision (spec.md §6). Never consumed by the engine itself;
// collaborators (logger, visualizer, CLI) read it at their discretion.
// Timing uses an injected github.com/coder/quartz clock so traces are
// reproducible in tests, following the teacher's use of quartz.Clock in
// internal/testing/test_infrastructure.go.
package trace

import (
	"github.com/coder/quartz"
)

// Node is one entry in the trace tree: strictly parent-owns-children,
// emitted by value (spec.md §9 "no cyclic data").
type Node struct {
	Name        string
	Description string
	Result      string
	Children    []Node
	Elapsed     float64 // seconds
}

// Builder accumulates a Node tree while the policy engine runs, using clock
// to stamp elapsed time for each span.
type Builder struct {
	clock quartz.Clock
	stack []*Node
	root  *Node
}

// NewBuilder starts a trace rooted at name/description, using clock for
// timing. Pass quartz.NewReal() in production, a quartz.Mock in tests.
func NewBuilder(clock quartz.Clock, name, description string) *Builder {
	root := &Node{Name: name, Description: description}
	return &Builder{clock: clock, stack: []*Node{root}, root: root}
}

// Enter pushes a new child span under the current node, returning a closer
// that records elapsed time and the span's result when called.
func (b *Builder) Enter(name, description string) func(result string) {
	start := b.clock.Now()
	parent := b.stack[len(b.stack)-1]
	child := Node{Name: name, Description: description}
	parent.Children = append(parent.Children, child)
	idx := len(parent.Children) - 1
	b.stack = append(b.stack, &parent.Children[idx])

	return func(result string) {
		node := b.stack[len(b.stack)-1]
		node.Result = result
		node.Elapsed = b.clock.Since(start).Seconds()
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// Finish stamps the root's result and returns the completed tree.
func (b *Builder) Finish(result string) Node {
	b.root.Result = result
	return *b.root
}
