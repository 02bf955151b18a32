// Command decide is a thin CLI collaborator over the decision engine
// (spec.md §1: the CLI is explicitly out of core scope). It parses a hand
// description from flags, builds a TableState, calls PolicyEngine.Decide,
// and prints the chosen action — optionally with its DecisionTrace tree.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/nlhe/decisionengine/internal/card"
	"github.com/nlhe/decisionengine/internal/config"
	"github.com/nlhe/decisionengine/internal/policy"
	"github.com/nlhe/decisionengine/internal/street"
	"github.com/nlhe/decisionengine/internal/tablestate"
	"github.com/nlhe/decisionengine/internal/trace"
	"github.com/nlhe/decisionengine/internal/tracetui"
)

type CLI struct {
	Hero   string `arg:"" help:"hero's two hole cards, e.g. 'As Ah'"`
	Board  string `short:"b" help:"community cards so far, e.g. 'Kd 7c 2s'"`
	Street string `short:"s" help:"preflop, flop, turn, or river" default:"preflop"`

	Pot        int `help:"current pot size" default:"0"`
	CurrentBet int `short:"c" help:"amount hero must call" default:"0"`
	MinRaise   int `help:"minimum legal raise size" default:"0"`
	BigBlind   int `help:"big blind size" default:"20"`

	HeroStack int `help:"hero's stack" default:"1000"`
	OppStack  int `help:"the (single, heads-up) opponent's stack" default:"1000"`
	Players   int `short:"p" help:"total players dealt into the hand" default:"2"`
	Button    bool `help:"hero is on the button" default:"true"`

	Config      string `help:"optional .hcl file overriding engine tunables"`
	Trace       bool   `short:"t" help:"print the decision trace tree"`
	Interactive bool   `short:"i" help:"open the decision trace in an interactive viewer"`
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	actionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	amountStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	traceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	// termenv detects the terminal's color profile so lipgloss degrades
	// gracefully when stdout isn't a TrueColor terminal (e.g. piped output).
	lipgloss.SetColorProfile(termenv.ColorProfile())

	hole, err := card.ParseAll(cli.Hero)
	if err != nil || len(hole) != 2 {
		fmt.Fprintf(os.Stderr, "invalid hero cards %q: %v\n", cli.Hero, err)
		ctx.Exit(1)
	}

	var communityCards []card.Card
	if cli.Board != "" {
		communityCards, err = card.ParseAll(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid board %q: %v\n", cli.Board, err)
			ctx.Exit(1)
		}
	}

	st, err := parseStreet(cli.Street)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		ctx.Exit(1)
	}

	ts, err := buildTableState(cli, hole, communityCards, st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		ctx.Exit(1)
	}

	cfg := config.Default()
	if cli.Config != "" {
		cfg, err = config.Load(cli.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			ctx.Exit(1)
		}
	}

	engine := policy.NewEngine(cfg)

	if cli.Interactive {
		decision, root := engine.DecideWithTrace(ts, quartz.NewReal())
		printDecision(decision)
		program := tea.NewProgram(tracetui.New(root), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "running trace viewer: %v\n", err)
			ctx.Exit(1)
		}
		return
	}

	if cli.Trace {
		decision, root := engine.DecideWithTrace(ts, quartz.NewReal())
		printDecision(decision)
		fmt.Println()
		printTrace(root, 0)
		return
	}

	printDecision(engine.Decide(ts))
}

func parseStreet(s string) (street.Street, error) {
	switch strings.ToLower(s) {
	case "preflop":
		return street.Preflop, nil
	case "flop":
		return street.Flop, nil
	case "turn":
		return street.Turn, nil
	case "river":
		return street.River, nil
	default:
		return 0, fmt.Errorf("unknown street %q: want preflop, flop, turn, or river", s)
	}
}

func buildTableState(cli CLI, hole, communityCards []card.Card, st street.Street) (*tablestate.TableState, error) {
	const heroSeat, oppSeat = 1, 2

	ts := tablestate.New()
	ts.NewHand()

	heroPos := street.BigBlind
	if cli.Button {
		heroPos = street.Button
	}
	ts.SetHero(heroSeat, cli.HeroStack, heroPos)
	if cli.Button {
		ts.SetButton(heroSeat)
		ts.SetPlayer(oppSeat, cli.OppStack, street.BigBlind)
	} else {
		ts.SetButton(oppSeat)
		ts.SetPlayer(oppSeat, cli.OppStack, street.Button)
	}
	ts.SetTotalPlayers(cli.Players)
	ts.SetBigBlind(cli.BigBlind)

	if err := ts.DealHeroCards(hole[0], hole[1]); err != nil {
		return nil, fmt.Errorf("dealing hero cards: %w", err)
	}

	if st != street.Preflop {
		for s := street.Flop; s <= st; s++ {
			if err := ts.NewStreet(s); err != nil {
				return nil, fmt.Errorf("advancing to %s: %w", s, err)
			}
		}
		if err := ts.SetCommunityCards(communityCards); err != nil {
			return nil, fmt.Errorf("setting community cards: %w", err)
		}
	}

	ts.UpdatePot(cli.Pot)
	ts.SetCurrentBet(cli.CurrentBet)
	ts.SetMinRaise(cli.MinRaise)
	return ts, nil
}

func printDecision(d policy.Decision) {
	fmt.Printf("%s %s\n", headerStyle.Render("decision:"), actionStyle.Render(d.Action.String()))
	if d.Amount > 0 {
		fmt.Printf("%s %s\n", headerStyle.Render("amount:"), amountStyle.Render(fmt.Sprintf("%d", d.Amount)))
	}
}

func printTrace(n trace.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%s", indent, traceStyle.Render(n.Name))
	if n.Result != "" {
		line += " -> " + resultStyle.Render(n.Result)
	}
	fmt.Println(line)
	for _, child := range n.Children {
		printTrace(child, depth+1)
	}
}
