package policy

import (
	"github.com/coder/quartz"

	"github.com/nlhe/decisionengine/internal/board"
	"github.com/nlhe/decisionengine/internal/evalengine"
	"github.com/nlhe/decisionengine/internal/street"
	"github.com/nlhe/decisionengine/internal/tablestate"
	"github.com/nlhe/decisionengine/internal/trace"
)

// Decide implements decide(TableState) -> (Action, amount) (spec.md §4.5
// / §6). It never surfaces errors: on internally detectable inconsistency
// it returns Fold with amount 0 (spec.md §7 "a decision engine embedded in
// a live game must always return a legal action").
func (e *Engine) Decide(ts *tablestate.TableState) Decision {
	if !e.consistent(ts) {
		e.logger.Warn("inconsistent table state, folding")
		return Decision{Action: street.Fold, Amount: 0}
	}

	var d Decision
	switch ts.CurrentStreet {
	case street.Preflop:
		d = e.decidePreflop(ts)
	case street.Flop, street.Turn, street.River:
		d = e.decidePostflop(ts)
	default:
		return Decision{Action: street.Fold, Amount: 0}
	}

	d = e.enforceLegal(ts, d)
	e.logger.Debug("decision", "street", ts.CurrentStreet, "action", d.Action, "amount", d.Amount)
	return d
}

// DecideWithTrace mirrors Decide but also returns a DecisionTrace describing
// the phases it went through (spec.md §6): classification, board texture
// (postflop only), the street-specific ladder, and legality enforcement.
// clock drives span timing — pass quartz.NewReal() in production, a
// quartz.Mock in tests.
func (e *Engine) DecideWithTrace(ts *tablestate.TableState, clock quartz.Clock) (Decision, trace.Node) {
	b := trace.NewBuilder(clock, "decide", "street="+ts.CurrentStreet.String())

	if !e.consistent(ts) {
		e.logger.Warn("inconsistent table state, folding")
		d := Decision{Action: street.Fold, Amount: 0}
		return d, b.Finish(d.Action.String())
	}

	var d Decision
	switch ts.CurrentStreet {
	case street.Preflop:
		hs := evalengine.PreflopStrength(ts.HeroCards)
		closeClassify := b.Enter("classify_preflop", "hole-card coarse table lookup")
		closeClassify(hs.String())

		closeDecide := b.Enter("decide_preflop", "premium/strong/medium/speculative/trash ladder")
		d = e.decidePreflop(ts)
		closeDecide(d.Action.String())
	case street.Flop, street.Turn, street.River:
		result := evalengine.Classify(ts.HeroCards, ts.CommunityCards, ts.CurrentStreet)
		closeClassify := b.Enter("classify_hand", "best-of-seven strength and draws")
		closeClassify(result.Strength.String())

		texture := board.New(ts.CommunityCards).Classify()
		closeTexture := b.Enter("classify_board", "danger-level board texture")
		closeTexture(texture.String())

		closeDecide := b.Enter("decide_postflop", "facing-bet/donk/cbet/generic ladder")
		d = e.decidePostflop(ts)
		closeDecide(d.Action.String())
	default:
		d = Decision{Action: street.Fold, Amount: 0}
	}

	closeLegal := b.Enter("enforce_legal", "clamp to a legal action and amount")
	d = e.enforceLegal(ts, d)
	closeLegal(d.Action.String())

	return d, b.Finish(d.Action.String())
}

// consistent checks the invariants spec.md §7 calls out as
// InconsistentState triggers: community card count must match street, and
// hero's seat/cards must be set.
func (e *Engine) consistent(ts *tablestate.TableState) bool {
	if ts == nil || ts.History == nil {
		return false
	}
	if len(ts.CommunityCards) != ts.CurrentStreet.CommunityCardCount() {
		return false
	}
	if len(ts.HeroCards) != 2 {
		return false
	}
	if ts.HeroPlayer() == nil {
		return false
	}
	return true
}

// enforceLegal clamps the chosen decision to spec.md P6's legal-action
// invariant: Check only if current_bet is 0, Raise amount >= min_raise,
// AllIn amount = hero stack.
func (e *Engine) enforceLegal(ts *tablestate.TableState, d Decision) Decision {
	effStack := ts.EffectiveStack()
	heroStack := effStack
	if hero := ts.HeroPlayer(); hero != nil {
		heroStack = hero.Stack
	}
	switch d.Action {
	case street.Check:
		if ts.CurrentBet > 0 {
			callAmount := ts.CurrentBet - heroLastBet(ts)
			return Decision{Action: street.Call, Amount: callAmount}
		}
		return d
	case street.Raise:
		if d.Amount < ts.MinRaise {
			d.Amount = ts.MinRaise
		}
		if d.Amount >= effStack {
			return Decision{Action: street.AllIn, Amount: heroStack}
		}
		return d
	case street.AllIn:
		return Decision{Action: street.AllIn, Amount: heroStack}
	case street.Call:
		if d.Amount < 0 {
			d.Amount = 0
		}
		if d.Amount >= effStack {
			return Decision{Action: street.AllIn, Amount: heroStack}
		}
		return d
	default:
		return Decision{Action: street.Fold, Amount: 0}
	}
}
