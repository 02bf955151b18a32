package policy

import (
	"github.com/nlhe/decisionengine/internal/board"
	"github.com/nlhe/decisionengine/internal/evalengine"
	"github.com/nlhe/decisionengine/internal/street"
	"github.com/nlhe/decisionengine/internal/tablestate"
)

// decidePostflop implements the shared flop/turn/river shape from
// spec.md §4.5: compute HandStrength + BoardTexture, then dispatch on
// facing_bet, facing donk-bet, facing cbet, or the generic ladder. River
// has no draws: strongDraw is never set there, and a river bet is answered
// by riverFacingBet.
func (e *Engine) decidePostflop(ts *tablestate.TableState) Decision {
	result := evalengine.Classify(ts.HeroCards, ts.CommunityCards, ts.CurrentStreet)
	hs := result.Strength
	analyzer := board.New(ts.CommunityCards)
	texture := analyzer.Classify()

	hero := ts.HeroPlayer()
	inPosition := lastToAct(ts) || street.IsLatePosition(hero.Position, ts.TotalPlayers)

	isRiver := ts.CurrentStreet == street.River
	strongMade := hs.IsStrongMadeHand()
	mediumMade := hs.IsMediumMadeHand()
	strongDraw := !isRiver && hs.IsStrongDraw()

	callAmount := ts.CurrentBet - heroLastBet(ts)
	outsEstimate := board.CalculateOuts(ts.HeroCards, ts.CommunityCards, ts.CurrentStreet, ts.TotalPlayers-1)

	if !facingBet(ts) {
		switch {
		case strongMade:
			return e.betStrongMadeUnfaced(ts, texture)
		case mediumMade:
			if inPosition || texture == board.Dry {
				return betFractionToDecision(ts, 0.66)
			}
			return Decision{Action: street.Check}
		case strongDraw:
			if inPosition && texture != board.Dry {
				return betFractionToDecision(ts, 0.5)
			}
			return Decision{Action: street.Check}
		default:
			return Decision{Action: street.Check}
		}
	}

	// facing_bet branches.
	if isRiver {
		return e.riverFacingBet(ts, hs, texture, callAmount)
	}

	donkBet := ts.History.IsDonkBetSituation()
	cbet := ts.History.IsContinuationBetSituation()

	switch {
	case donkBet:
		switch {
		case strongMade:
			return raiseSize(ts, 3.0)
		case mediumMade:
			if texture == board.Dry {
				return Decision{Action: street.Call, Amount: callAmount}
			}
			if inPosition {
				return raiseSize(ts, 2.5)
			}
			return Decision{Action: street.Call, Amount: callAmount}
		case strongDraw && goodOdds(callAmount, ts, true, outsEstimate.Equity):
			return Decision{Action: street.Call, Amount: callAmount}
		default:
			return Decision{Action: street.Fold}
		}
	case cbet:
		switch {
		case strongMade:
			return raiseSize(ts, 3.0)
		case mediumMade:
			return Decision{Action: street.Call, Amount: callAmount}
		case strongDraw:
			if texture != board.Dry {
				return raiseSize(ts, 2.5)
			}
			if goodOdds(callAmount, ts, true, outsEstimate.Equity) {
				return Decision{Action: street.Call, Amount: callAmount}
			}
			return Decision{Action: street.Fold}
		default:
			return Decision{Action: street.Fold}
		}
	default:
		switch {
		case strongMade:
			if texture == board.Dry {
				return raiseSize(ts, 2.5)
			}
			return raiseSize(ts, 3.0)
		case mediumMade:
			if inPosition {
				return raiseSize(ts, 2.5)
			}
			return Decision{Action: street.Call, Amount: callAmount}
		case strongDraw:
			if goodOdds(callAmount, ts, true, outsEstimate.Equity) && inPosition {
				return Decision{Action: street.Call, Amount: callAmount}
			}
			if texture != board.Dry {
				return raiseSize(ts, 2.5)
			}
			return Decision{Action: street.Fold}
		default:
			return Decision{Action: street.Fold}
		}
	}
}

// betStrongMadeUnfaced sizes a value bet via calculate_optimal_bet_size,
// adjusts +-20% for Dry/Wet texture, and amplifies if committed or short.
func (e *Engine) betStrongMadeUnfaced(ts *tablestate.TableState, texture board.Texture) Decision {
	cat := sprCategory(sprValue(ts))
	fraction := calculateOptimalBetSize(cat, 0.8)
	fraction = textureAdjust(fraction, texture)

	short := sprValue(ts) >= 0 && sprValue(ts) <= 3
	if short || e.committed(int(float64(ts.PotSize)*fraction), ts) {
		fraction *= 1.25
		if fraction > 1.0 {
			fraction = 1.0
		}
	}
	return betFractionToDecision(ts, fraction)
}

// riverFacingBet implements spec.md §4.5's river-specific rule: no more
// draws exist, classify strictly by made-hand rank, and river value bets
// scale to 0.75-1.0 pot for strong hands. equity_from_outs is 0 on the
// river (spec.md P4), so a marginal made hand's call/fold decision is
// instead judged against the Monte Carlo win probability rather than
// outs-derived equity.
func (e *Engine) riverFacingBet(ts *tablestate.TableState, hs evalengine.HandStrength, texture board.Texture, callAmount int) Decision {
	switch {
	case hs.IsStrongMadeHand():
		fraction := 0.75
		if texture != board.Dry {
			fraction = 1.0
		}
		return betFractionToDecision(ts, fraction)
	case hs.IsMediumMadeHand():
		opponentCount := ts.TotalPlayers - 1
		equity := e.equityEstimate(ts, opponentCount)
		if potOdds(callAmount, ts.PotSize) <= equity {
			return Decision{Action: street.Call, Amount: callAmount}
		}
		return Decision{Action: street.Fold}
	default:
		return Decision{Action: street.Fold}
	}
}
