// Package tracetui is an optional interactive viewer for a DecisionTrace
// tree (spec.md §6). It is never consulted by the policy engine itself —
// collaborators such as cmd/decide opt into it to inspect a single
// decision's span tree, following the teacher's pattern of a standalone
// Bubble Tea model driven by a viewport (internal/tui/tui.go).
package tracetui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nlhe/decisionengine/internal/trace"
)

var (
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// row is one flattened, depth-annotated line of the trace tree, kept in
// display order so cursor movement is a plain slice index.
type row struct {
	node  trace.Node
	depth int
}

// Model is a Bubble Tea model that renders a trace.Node tree with a
// scrollable viewport and a movable cursor for inspecting each span's
// description and elapsed time.
type Model struct {
	rows     []row
	cursor   int
	viewport viewport.Model
	width    int
	height   int
	quitting bool
}

// New flattens root into a Model ready to run under tea.NewProgram.
func New(root trace.Node) Model {
	vp := viewport.New(0, 0)
	m := Model{rows: flatten(root, 0), viewport: vp}
	m.refresh()
	return m
}

func flatten(n trace.Node, depth int) []row {
	rows := []row{{node: n, depth: depth}}
	for _, child := range n.Children {
		rows = append(rows, flatten(child, depth+1)...)
	}
	return rows
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update satisfies tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2 // leave room for the help line
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.refresh()
			}
		case "home", "g":
			m.cursor = 0
			m.refresh()
		case "end", "G":
			m.cursor = len(m.rows) - 1
			m.refresh()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View satisfies tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	help := helpStyle.Render("↑↓/jk move · g/G top/bottom · q to quit")
	return m.viewport.View() + "\n" + help
}

// refresh re-renders the tree into the viewport, keeping the cursor row
// visible, and syncs the viewport's scroll position to the cursor.
func (m *Model) refresh() {
	var b strings.Builder
	for i, r := range m.rows {
		line := renderRow(r, i == m.cursor)
		b.WriteString(line)
		if i < len(m.rows)-1 {
			b.WriteString("\n")
		}
	}
	m.viewport.SetContent(b.String())
	if m.viewport.Height > 0 {
		m.viewport.YOffset = clamp(m.cursor-m.viewport.Height/2, 0, maxInt(0, len(m.rows)-m.viewport.Height))
	}
}

func renderRow(r row, selected bool) string {
	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("> ")
	}
	indent := strings.Repeat("  ", r.depth)
	line := prefix + indent + nameStyle.Render(r.node.Name)
	if r.node.Result != "" {
		line += " " + resultStyle.Render("-> "+r.node.Result)
	}
	if r.node.Description != "" {
		line += " " + descStyle.Render("("+r.node.Description+")")
	}
	if r.node.Elapsed > 0 {
		line += " " + descStyle.Render(fmt.Sprintf("[%.2fms]", r.node.Elapsed*1000))
	}
	return line
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
