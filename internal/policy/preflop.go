package policy

import (
	"github.com/nlhe/decisionengine/internal/board"
	"github.com/nlhe/decisionengine/internal/card"
	"github.com/nlhe/decisionengine/internal/evalengine"
	"github.com/nlhe/decisionengine/internal/street"
	"github.com/nlhe/decisionengine/internal/tablestate"
)

// speculativePercentileFloor is the starting-hand percentile (card.
// StartingHandPercentile) at or above which an otherwise-uncategorized hand (no
// pocket pair, no suited ace, no broadway-pair kicker, no rank/gap-based
// draw) still gets opened as speculative instead of folded as trash --
// e.g. K9o/A9o sit above the median of the 169-hand chart despite
// matching none of PreflopStrength's categorical rules.
const speculativePercentileFloor = 0.5

// preflopClass is spec.md §4.5's preflop hand classification.
type preflopClass int

const (
	classTrash preflopClass = iota
	classSpeculative
	classMedium
	classStrong
	classPremium
)

func classifyPreflop(hs evalengine.HandStrength, hole []card.Card) preflopClass {
	switch {
	case hs == evalengine.OverpairStrong:
		return classPremium
	case hs == evalengine.OverpairWeak || hs == evalengine.PairTopGoodKicker:
		return classStrong
	case hs == evalengine.PairTopBadKicker || hs == evalengine.PairMiddleGoodKicker:
		return classMedium
	case hs.IsDraw():
		return classSpeculative
	case card.StartingHandPercentile(hole[0], hole[1]) >= speculativePercentileFloor:
		return classSpeculative
	default:
		return classTrash
	}
}

func (e *Engine) decidePreflop(ts *tablestate.TableState) Decision {
	hs := evalengine.PreflopStrength(ts.HeroCards)
	class := classifyPreflop(hs, ts.HeroCards)

	hero := ts.HeroPlayer()
	latePos := street.IsLatePosition(hero.Position, ts.TotalPlayers)
	deep := sprValue(ts) < 0 || sprValue(ts) > 15
	short := sprValue(ts) >= 0 && sprValue(ts) <= 3

	open := !facingRaise(ts)
	vsN := multipleRaisers(ts)
	vs1 := !open && !vsN

	callAmount := ts.CurrentBet - heroLastBet(ts)

	switch class {
	case classPremium:
		switch {
		case open:
			if short {
				return allIn(ts)
			}
			if deep {
				return raiseSize(ts, 2.0)
			}
			return raiseSize(ts, 2.5)
		case vs1:
			return raiseSize(ts, 3.0)
		default:
			return raiseSize(ts, 4.0)
		}
	case classStrong:
		switch {
		case open:
			return raiseSize(ts, 2.5)
		case vs1:
			return raiseSize(ts, 3.0)
		default:
			if goodOdds(callAmount, ts, false, 0) {
				return Decision{Action: street.Call, Amount: callAmount}
			}
			return Decision{Action: street.Fold}
		}
	case classMedium:
		if open && (latePos || lastToAct(ts)) {
			return raiseSize(ts, 2.5)
		}
		return Decision{Action: street.Fold}
	case classSpeculative:
		switch {
		case open:
			if latePos {
				return raiseSize(ts, 2.5)
			}
			if facingBet(ts) {
				return Decision{Action: street.Call, Amount: callAmount}
			}
			return Decision{Action: street.Check}
		case vs1:
			outsEquity := board.CalculateOuts(ts.HeroCards, ts.CommunityCards, ts.CurrentStreet, ts.TotalPlayers-1).Equity
			if goodOdds(callAmount, ts, true, outsEquity) && e.goodImpliedOdds(ts) && !vsN {
				return Decision{Action: street.Call, Amount: callAmount}
			}
			return Decision{Action: street.Fold}
		default:
			return Decision{Action: street.Fold}
		}
	default: // trash
		if facingBet(ts) {
			return Decision{Action: street.Fold}
		}
		return Decision{Action: street.Fold}
	}
}

func heroLastBet(ts *tablestate.TableState) int {
	hero := ts.HeroPlayer()
	if hero == nil {
		return 0
	}
	return hero.LastBetSize
}

func allIn(ts *tablestate.TableState) Decision {
	return Decision{Action: street.AllIn, Amount: ts.EffectiveStack()}
}

// lastToAct reports whether hero is last to act preflop: nobody has
// volunteered an action after hero's seat this street yet, approximated
// here via hero occupying the button (the de-facto last-to-act seat in
// every table size once blinds have acted).
func lastToAct(ts *tablestate.TableState) bool {
	return ts.HeroSeat == ts.ButtonSeat
}
