// Package policy implements PolicyEngine: decide(TableState) -> (Action,
// amount), dispatching on current_street to one of four routines
// (spec.md §4.5). Grounded on the teacher's rule-ladder idiom in
// internal/bot/situation_recognition.go and internal/game/ai.go, adapted
// from heuristic bot play to the spec's precise decision tables.
package policy

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/nlhe/decisionengine/internal/board"
	"github.com/nlhe/decisionengine/internal/card"
	"github.com/nlhe/decisionengine/internal/config"
	"github.com/nlhe/decisionengine/internal/equity"
	"github.com/nlhe/decisionengine/internal/street"
	"github.com/nlhe/decisionengine/internal/tablestate"
)

// equityFunc matches internal/equity.Estimate's signature; swappable in
// tests so they never pay for a real Monte Carlo run.
type equityFunc func(hole, board []card.Card, opponentCount, numSamples int, seed int64) float64

// SPRCategory is the stack-to-pot-ratio bucket spec.md §4.5 dispatches
// sizing and commitment rules on.
type SPRCategory int

const (
	SPRVeryLow SPRCategory = iota
	SPRLow
	SPRMedium
	SPRHigh
	SPRVeryHigh
)

// Decision is the (Action, amount) pair decide() returns.
type Decision struct {
	Action street.Action
	Amount int
}

// Engine is the PolicyEngine: stateless aside from its config, constructed
// once and reused across hands (spec.md §9 "no global mutable state" — the
// caller owns the Engine instance and every TableState it decides over).
type Engine struct {
	cfg    *config.EngineConfig
	logger *log.Logger
	equity equityFunc
}

// NewEngine builds a PolicyEngine with the given config (use
// config.Default() for spec-mandated defaults). Decision logging defaults
// to a warn-level logger over stderr; attach a different one via WithLogger.
// Equity estimation defaults to internal/equity.Estimate; swap it via
// WithEquityFunc for deterministic or cheaper tests.
func NewEngine(cfg *config.EngineConfig) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := log.New(os.Stderr)
	logger.SetLevel(log.WarnLevel)
	return &Engine{cfg: cfg, logger: logger, equity: equity.Estimate}
}

// WithLogger attaches a structured logger the engine uses to report each
// decide() call's chosen action (spec.md §6's decision API is otherwise
// silent; this is purely diagnostic, never consulted by the engine itself).
func (e *Engine) WithLogger(logger *log.Logger) *Engine {
	e.logger = logger
	return e
}

// WithEquityFunc replaces the engine's Monte Carlo equity estimator.
func (e *Engine) WithEquityFunc(fn equityFunc) *Engine {
	e.equity = fn
	return e
}

// equityEstimate returns hero's Monte Carlo win probability against
// opponentCount random hands, reusing TableState's cached value when one
// exists for the current street/board/opponent count
// (SUPPLEMENTED FEATURES #1: opponent-count-aware equity caching).
func (e *Engine) equityEstimate(ts *tablestate.TableState, opponentCount int) float64 {
	if opponentCount < 1 {
		opponentCount = 1
	}
	if cached, ok := ts.CachedEquity(opponentCount); ok {
		return cached
	}
	value := e.equity(ts.HeroCards, ts.CommunityCards, opponentCount, e.cfg.Engine.EquitySimulationCount, e.cfg.Engine.EquitySeed)
	ts.SetCachedEquity(opponentCount, value)
	return value
}

func facingBet(ts *tablestate.TableState) bool {
	return ts.CurrentBet > 0
}

func facingRaise(ts *tablestate.TableState) bool {
	return ts.History.RaisesThisStreet(ts.CurrentStreet) > 0
}

func multipleRaisers(ts *tablestate.TableState) bool {
	return ts.History.RaisesThisStreet(ts.CurrentStreet) >= 2
}

func potOdds(callAmount, potSize int) float64 {
	if potSize+callAmount <= 0 {
		return 0
	}
	return float64(callAmount) / float64(potSize+callAmount)
}

func sprValue(ts *tablestate.TableState) float64 {
	if ts.PotSize <= 0 {
		return -1 // represents +Inf
	}
	return float64(ts.EffectiveStack()) / float64(ts.PotSize)
}

func sprCategory(spr float64) SPRCategory {
	if spr < 0 {
		return SPRVeryHigh
	}
	switch {
	case spr <= 3:
		return SPRVeryLow
	case spr <= 6:
		return SPRLow
	case spr <= 10:
		return SPRMedium
	case spr <= 15:
		return SPRHigh
	default:
		return SPRVeryHigh
	}
}

func (e *Engine) commitmentThreshold(cat SPRCategory) float64 {
	s := e.cfg.Engine
	switch cat {
	case SPRVeryLow:
		return s.CommitmentThresholdVeryLow
	case SPRLow:
		return s.CommitmentThresholdLow
	case SPRMedium:
		return s.CommitmentThresholdMedium
	case SPRHigh:
		return s.CommitmentThresholdHigh
	default:
		return s.CommitmentThresholdVeryHigh
	}
}

func (e *Engine) committed(bet int, ts *tablestate.TableState) bool {
	if ts.PotSize <= 0 {
		return false
	}
	cat := sprCategory(sprValue(ts))
	return float64(bet)/float64(ts.PotSize) >= e.commitmentThreshold(cat)
}

// sizingMultiplier adjusts a base multiplier by SPR per spec.md §4.5's
// raise_size rule: x1.5 capped at 1.0 if very_low; x1.2 capped at 0.75 if
// low; unchanged at medium; x0.8 if high; x0.6 if very_high.
func sizingMultiplier(base float64, cat SPRCategory) float64 {
	switch cat {
	case SPRVeryLow:
		m := base * 1.5
		if m > 1.0 {
			m = 1.0
		}
		return m
	case SPRLow:
		m := base * 1.2
		if m > 0.75 {
			m = 0.75
		}
		return m
	case SPRHigh:
		return base * 0.8
	case SPRVeryHigh:
		return base * 0.6
	default:
		return base
	}
}

// raiseSize implements spec.md §4.5's raise_size(multiplier) helper.
func raiseSize(ts *tablestate.TableState, multiplier float64) Decision {
	cat := sprCategory(sprValue(ts))
	adjusted := sizingMultiplier(multiplier, cat)
	effStack := ts.EffectiveStack()
	amount := int(float64(ts.PotSize) * adjusted)
	if amount > effStack {
		amount = effStack
	}
	if amount < ts.MinRaise {
		amount = ts.MinRaise
	}
	if amount > effStack {
		amount = effStack
	}
	return Decision{Action: street.Raise, Amount: amount}
}

func (e *Engine) goodImpliedOdds(ts *tablestate.TableState) bool {
	if ts.CurrentBet <= 0 {
		return false
	}
	return ts.EffectiveStack() >= e.cfg.Engine.GoodImpliedOddsMultiplier*ts.CurrentBet
}

// goodOdds implements spec.md §4.5's "good_odds": pot_odds >=
// equity_from_outs if drawing, else pot_odds >= 0.25.
func goodOdds(callAmount int, ts *tablestate.TableState, drawing bool, equityFromOuts float64) bool {
	odds := potOdds(callAmount, ts.PotSize)
	if drawing {
		return odds >= equityFromOuts
	}
	return odds >= 0.25
}

// calculateOptimalBetSize implements spec.md §4.5's
// calculate_optimal_bet_size(SPR, strength) table, returning a pot
// fraction.
func calculateOptimalBetSize(cat SPRCategory, strength float64) float64 {
	switch cat {
	case SPRVeryLow:
		switch {
		case strength >= 0.8:
			return 1.0
		case strength >= 0.6:
			return 0.75
		case strength >= 0.4:
			return 0.5
		default:
			return 0
		}
	case SPRLow:
		switch {
		case strength >= 0.8:
			return 0.75
		case strength >= 0.6:
			return 0.66
		case strength >= 0.4:
			return 0.5
		default:
			return 0
		}
	case SPRMedium:
		switch {
		case strength >= 0.8:
			return 0.66
		case strength >= 0.6:
			return 0.5
		case strength >= 0.4:
			return 0.33
		default:
			return 0
		}
	case SPRHigh:
		switch {
		case strength >= 0.8:
			return 0.5
		case strength >= 0.6:
			return 0.33
		case strength >= 0.4:
			return 0.25
		default:
			return 0
		}
	default: // very_high
		switch {
		case strength >= 0.8:
			return 0.33
		case strength >= 0.6:
			return 0.25
		case strength >= 0.4:
			return 0.25
		default:
			return 0
		}
	}
}

func textureAdjust(base float64, texture board.Texture) float64 {
	switch texture {
	case board.Dry:
		return base * 1.2
	case board.Wet, board.VeryWet:
		return base * 0.8
	default:
		return base
	}
}

func betFractionToDecision(ts *tablestate.TableState, fraction float64) Decision {
	if fraction <= 0 {
		return Decision{Action: street.Check, Amount: 0}
	}
	effStack := ts.EffectiveStack()
	amount := int(float64(ts.PotSize) * fraction)
	if amount < ts.MinRaise {
		amount = ts.MinRaise
	}
	if amount > effStack {
		amount = effStack
	}
	return Decision{Action: street.Raise, Amount: amount}
}
