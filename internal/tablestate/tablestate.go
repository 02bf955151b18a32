// Package tablestate implements TableState (spec.md §3): the aggregate of
// players, pot, betting state, and the embedded HistoryTracker that the
// policy engine reads. Board texture and outs are not held here; they are
// computed from CommunityCards by internal/board when needed. Composition,
// not inheritance, per
// spec.md §9 — TableState owns its subsystems; they never reach back.
// Grounded on the teacher's Player/Table value-type shape in
// internal/game/player.go and internal/game/table.go.
package tablestate

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/nlhe/decisionengine/internal/card"
	"github.com/nlhe/decisionengine/internal/history"
	"github.com/nlhe/decisionengine/internal/street"
)

// ErrInconsistentState is returned by the state-update API when a caller
// passes data that violates TableState's invariants (spec.md §7).
var ErrInconsistentState = errors.New("inconsistent table state")

// Player mirrors spec.md §3's Player record.
type Player struct {
	Seat          int
	Stack         int
	Position      street.Position
	InHand        bool
	LastAction    street.Action
	LastBetSize   int
}

// TableState is the aggregate the policy engine reads (spec.md §3).
type TableState struct {
	Players map[int]*Player

	HeroSeat      int
	ButtonSeat    int
	TotalPlayers  int
	BigBlindSize  int

	PotSize       int
	CurrentBet    int
	MinRaise      int
	CurrentStreet street.Street

	CommunityCards []card.Card
	HeroCards      []card.Card

	LastAggressorSeat int
	hasLastAggressor  bool

	History *history.Tracker
	logger  *log.Logger

	equityCache equityCacheEntry
}

// equityCacheEntry holds the last Monte Carlo equity estimate computed for
// this hand, keyed by the street, community-card count, and opponent count
// it was computed against (original_source/table_state.py's get_equity_from_outs is a
// TableState-owned equity accessor; this adapts that shape to the real
// Monte Carlo estimator instead of the outs-derived approximation, so a
// single decide() call never reruns the simulation for the same board).
type equityCacheEntry struct {
	valid          bool
	street         street.Street
	communityCount int
	opponentCount  int
	value          float64
}

// New builds an empty TableState with a fresh HistoryTracker and a
// warn-level logger for state-update diagnostics; attach a different
// logger via WithLogger.
func New() *TableState {
	logger := log.Default()
	logger.SetLevel(log.WarnLevel)
	return &TableState{
		Players: map[int]*Player{},
		History: history.NewTracker(),
		logger:  logger,
	}
}

// WithLogger attaches a structured logger to the state-update API.
func (ts *TableState) WithLogger(logger *log.Logger) *TableState {
	ts.logger = logger
	return ts
}

// warn logs at warn level if a logger is attached, tolerating zero-valued
// TableState instances built without New() (e.g. in tests).
func (ts *TableState) warn(msg string, keyvals ...interface{}) {
	if ts.logger != nil {
		ts.logger.Warn(msg, keyvals...)
	}
}

// NewHand begins a hand: resets pot, community cards, hero cards, history,
// and per-player last_action/in_hand (spec.md §6 new_hand).
func (ts *TableState) NewHand() {
	ts.PotSize = 0
	ts.CurrentBet = 0
	ts.MinRaise = 0
	ts.CurrentStreet = street.Preflop
	ts.CommunityCards = nil
	ts.HeroCards = nil
	ts.hasLastAggressor = false
	ts.LastAggressorSeat = 0
	ts.equityCache = equityCacheEntry{}
	for _, p := range ts.Players {
		p.InHand = true
		p.LastAction = street.Check
		p.LastBetSize = 0
	}
	ts.History.NewHand()
	if ts.logger != nil {
		ts.logger.Debug("new hand")
	}
}

// SetHero registers hero's seat, stack, and position.
func (ts *TableState) SetHero(seat, stack int, pos street.Position) {
	ts.HeroSeat = seat
	ts.ensurePlayer(seat).Stack = stack
	ts.ensurePlayer(seat).Position = pos
}

// SetPlayer registers (or updates) an opponent's seat, stack, and position,
// so EffectiveStack/InHandCount see every player still in the hand rather
// than just hero (spec.md §3's Player record applies uniformly to hero and
// opponents alike).
func (ts *TableState) SetPlayer(seat, stack int, pos street.Position) {
	ts.ensurePlayer(seat).Stack = stack
	ts.ensurePlayer(seat).Position = pos
}

// SetButton records the button seat.
func (ts *TableState) SetButton(seat int) { ts.ButtonSeat = seat }

// SetTotalPlayers records the number of players dealt into the hand.
func (ts *TableState) SetTotalPlayers(n int) { ts.TotalPlayers = n }

// SetBigBlind records the big blind size.
func (ts *TableState) SetBigBlind(amount int) { ts.BigBlindSize = amount }

func (ts *TableState) ensurePlayer(seat int) *Player {
	p, ok := ts.Players[seat]
	if !ok {
		p = &Player{Seat: seat, InHand: true}
		ts.Players[seat] = p
	}
	return p
}

// DealHeroCards sets hero's two hole cards (invariant I2).
func (ts *TableState) DealHeroCards(a, b card.Card) error {
	if a == b {
		return ErrInconsistentState
	}
	ts.HeroCards = []card.Card{a, b}
	return nil
}

// NewStreet advances the street, clearing current_bet and min_raise for the
// new round without resetting history (spec.md §3 Lifecycle).
func (ts *TableState) NewStreet(s street.Street) error {
	if int(s) < int(ts.CurrentStreet) {
		ts.warn("street went backwards", "from", ts.CurrentStreet, "to", s)
		return ErrInconsistentState
	}
	ts.CurrentStreet = s
	ts.CurrentBet = 0
	ts.MinRaise = 0
	ts.equityCache = equityCacheEntry{}
	ts.History.NewStreet(s)
	return nil
}

// SetCommunityCards sets the community cards, validating invariant I1 (the
// count must match the current street).
func (ts *TableState) SetCommunityCards(cards []card.Card) error {
	if len(cards) != ts.CurrentStreet.CommunityCardCount() {
		ts.warn("community card count mismatch", "street", ts.CurrentStreet, "got", len(cards))
		return ErrInconsistentState
	}
	ts.CommunityCards = cards
	ts.equityCache = equityCacheEntry{}
	return nil
}

// CachedEquity returns the Monte Carlo equity estimate already computed this
// street against the current community cards and opponent count, if any.
func (ts *TableState) CachedEquity(opponentCount int) (float64, bool) {
	c := ts.equityCache
	if !c.valid || c.street != ts.CurrentStreet || c.communityCount != len(ts.CommunityCards) || c.opponentCount != opponentCount {
		return 0, false
	}
	return c.value, true
}

// SetCachedEquity stores an equity estimate for the current street,
// community-card count, and opponent count, so repeated rule evaluations
// within the same decide() call reuse one Monte Carlo run.
func (ts *TableState) SetCachedEquity(opponentCount int, value float64) {
	ts.equityCache = equityCacheEntry{
		valid:          true,
		street:         ts.CurrentStreet,
		communityCount: len(ts.CommunityCards),
		opponentCount:  opponentCount,
		value:          value,
	}
}

// RecordAction records a player action in betting order, updating pot,
// last_aggressor, per-player state, and the HistoryTracker (spec.md I3-I5).
func (ts *TableState) RecordAction(seat int, action street.Action, amount int) error {
	p, ok := ts.Players[seat]
	if !ok {
		return ErrInconsistentState
	}

	isHero := seat == ts.HeroSeat
	ts.History.RecordAction(ts.CurrentStreet, seat, action, amount, isHero)

	switch action {
	case street.Fold:
		p.InHand = false
	case street.Raise, street.AllIn:
		ts.LastAggressorSeat = seat
		ts.hasLastAggressor = true
		if amount > ts.CurrentBet {
			ts.PotSize += amount - p.LastBetSize
			ts.CurrentBet = amount
		}
		p.LastBetSize = amount
	case street.Call:
		callAmount := ts.CurrentBet - p.LastBetSize
		if callAmount > 0 {
			ts.PotSize += callAmount
		}
		p.LastBetSize = ts.CurrentBet
	case street.Check:
	}
	p.LastAction = action
	return nil
}

// UpdatePot adds amount to the pot directly, for callers that compute pot
// deltas themselves rather than relying on RecordAction's derivation.
func (ts *TableState) UpdatePot(amount int) { ts.PotSize += amount }

// SetCurrentBet overrides the derived current bet.
func (ts *TableState) SetCurrentBet(amount int) { ts.CurrentBet = amount }

// SetMinRaise overrides the derived minimum raise.
func (ts *TableState) SetMinRaise(amount int) { ts.MinRaise = amount }

// LastAggressor returns the seat of the most recent Raise/AllIn action this
// hand (invariant I5: cleared only at hand end).
func (ts *TableState) LastAggressor() (int, bool) {
	return ts.LastAggressorSeat, ts.hasLastAggressor
}

// EffectiveStack returns the smallest stack among in-hand players.
func (ts *TableState) EffectiveStack() int {
	min := -1
	for _, p := range ts.Players {
		if !p.InHand {
			continue
		}
		if min < 0 || p.Stack < min {
			min = p.Stack
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// HeroPlayer returns hero's Player record.
func (ts *TableState) HeroPlayer() *Player {
	return ts.Players[ts.HeroSeat]
}

// InHandCount returns the number of players still in the hand.
func (ts *TableState) InHandCount() int {
	n := 0
	for _, p := range ts.Players {
		if p.InHand {
			n++
		}
	}
	return n
}

// AssignPositions assigns each seat a Position based on its offset from the
// button. 3-handed tables only have {Button, SmallBlind, BigBlind}
// (spec.md §3), following original_source/position_manager.py's seat-offset
// table rather than generalizing the 6-max table down to 3 seats.
func AssignPositions(seats []int, buttonSeat int) map[int]street.Position {
	n := len(seats)
	result := make(map[int]street.Position, n)
	if n == 0 {
		return result
	}

	buttonIdx := 0
	for i, s := range seats {
		if s == buttonSeat {
			buttonIdx = i
			break
		}
	}

	offsetOrder := func() []street.Position {
		switch n {
		case 2:
			return []street.Position{street.Button, street.BigBlind}
		case 3:
			return []street.Position{street.Button, street.SmallBlind, street.BigBlind}
		case 4:
			return []street.Position{street.Button, street.SmallBlind, street.BigBlind, street.UnderTheGun}
		case 5:
			return []street.Position{street.Button, street.SmallBlind, street.BigBlind, street.UnderTheGun, street.Cutoff}
		default:
			order := []street.Position{street.Button, street.SmallBlind, street.BigBlind, street.UnderTheGun}
			for len(order) < n-1 {
				order = append(order, street.MiddlePosition)
			}
			order = append(order, street.Cutoff)
			return order
		}
	}()

	for i := 0; i < n; i++ {
		seat := seats[(buttonIdx+i)%n]
		if i < len(offsetOrder) {
			result[seat] = offsetOrder[i]
		} else {
			result[seat] = street.MiddlePosition
		}
	}
	return result
}
