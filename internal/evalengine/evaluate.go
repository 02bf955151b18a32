package evalengine

import (
	"github.com/nlhe/decisionengine/internal/card"
	"github.com/nlhe/decisionengine/internal/street"
)

// Result bundles everything the policy engine needs from one evaluation:
// the decision label, the showdown-comparable numeric score, and the
// coarse category the score belongs to.
type Result struct {
	Strength HandStrength
	Score    int
	Category Category
}

// Classify evaluates hero's two hole cards against the community cards at
// the given street and returns the most decision-relevant HandStrength
// label plus the showdown-comparable score, per spec.md §4.1.
func Classify(hole, board []card.Card, st street.Street) Result {
	if st == street.Preflop || len(board) == 0 {
		return Result{Strength: PreflopStrength(hole), Score: 0, Category: CategoryHighCard}
	}

	all := append(append([]card.Card{}, hole...), board...)
	cat, score := Score(all)

	made := madeHandLabel(hole, board, cat, score)

	if st != street.River {
		da := analyzeDraws(hole, board, st)
		if draw, ok := da.drawLabel(); ok && drawWeight(draw) > madeHandWeight(made) {
			return Result{Strength: draw, Score: score, Category: cat}
		}
	}

	return Result{Strength: made, Score: score, Category: cat}
}

// kickerQuality classifies a kicker rank as good/medium/bad per spec.md's
// top-pair-kicker rule (good = A/K/Q, medium = J/T, else bad), reused for
// bottom/middle pair kickers since the spec defines no separate thresholds
// for those.
type kickerTier int

const (
	kickerBad kickerTier = iota
	kickerMedium
	kickerGood
)

func kickerQuality(r card.Rank) kickerTier {
	switch {
	case r == card.Ace || r == card.King || r == card.Queen:
		return kickerGood
	case r == card.Jack || r == card.Ten:
		return kickerMedium
	default:
		return kickerBad
	}
}

// madeHandLabel applies spec.md §4.1's refinement predicates on top of the
// coarse numeric Category to pick the specific made-hand HandStrength.
func madeHandLabel(hole, board []card.Card, cat Category, score int) HandStrength {
	boardRanksDesc := distinctRanksDesc(board)
	maxBoard := card.Rank(0)
	secondBoard := card.Rank(0)
	if len(boardRanksDesc) > 0 {
		maxBoard = boardRanksDesc[0]
	}
	if len(boardRanksDesc) > 1 {
		secondBoard = boardRanksDesc[1]
	}

	holePair := hole[0].Rank == hole[1].Rank

	switch cat {
	case CategoryStraightFlush:
		return StraightFlush
	case CategoryQuads:
		return Quads
	case CategoryFullHouse:
		return FullHouse
	case CategoryFlush:
		return Flush
	case CategoryStraight:
		return Straight
	case CategoryTrips:
		if holePair {
			if hole[0].Rank == maxBoard {
				return SetTop
			}
			return Set
		}
		return Trips
	case CategoryTwoPair:
		holeRanks := map[card.Rank]bool{hole[0].Rank: true, hole[1].Rank: true}
		if holeRanks[maxBoard] && holeRanks[secondBoard] && !holePair {
			return TwoPairTopAndBottom
		}
		// distinguish top+middle vs plain bottom two pair using which
		// hole card paired which board rank.
		pairedWithTop, pairedWithSecond := false, false
		for _, c := range hole {
			if c.Rank == maxBoard {
				pairedWithTop = true
			}
			if c.Rank == secondBoard && secondBoard != 0 {
				pairedWithSecond = true
			}
		}
		switch {
		case pairedWithTop && pairedWithSecond:
			return TwoPairTopAndMiddle
		case pairedWithTop:
			return TwoPairTop
		default:
			return TwoPairBottom
		}
	case CategoryOnePair:
		if holePair {
			if hole[0].Rank > maxBoard {
				if hole[0].Rank >= card.Queen {
					return OverpairStrong
				}
				return OverpairWeak
			}
			if hole[0].Rank == maxBoard {
				return SetTop // pocket pair matching the top board card with exactly one on board is trips, handled above; a pair here means board itself paired alongside
			}
			return bottomOrMiddlePairLabel(hole[0].Rank, maxBoard, secondBoard, kickerGood)
		}
		// unpaired hole cards, one of which pairs the board.
		pairedRank := card.Rank(0)
		kicker := card.Rank(0)
		for _, c := range hole {
			if c.Rank == maxBoard || c.Rank == secondBoard || boardContainsRank(board, c.Rank) {
				pairedRank = c.Rank
			} else {
				kicker = c.Rank
			}
		}
		if pairedRank == 0 {
			return HighCard
		}
		tier := kickerQuality(kicker)
		return bottomOrMiddlePairLabel(pairedRank, maxBoard, secondBoard, tier)
	default:
		return HighCard
	}
}

func boardContainsRank(board []card.Card, r card.Rank) bool {
	for _, c := range board {
		if c.Rank == r {
			return true
		}
	}
	return false
}

// bottomOrMiddlePairLabel classifies a pair by whether it hits the top,
// middle, or bottom board rank, combined with kicker tier.
func bottomOrMiddlePairLabel(pairedRank, maxBoard, secondBoard card.Rank, tier kickerTier) HandStrength {
	switch {
	case pairedRank == maxBoard:
		switch tier {
		case kickerGood:
			return PairTopGoodKicker
		case kickerMedium:
			return PairTopMediumKicker
		default:
			return PairTopBadKicker
		}
	case pairedRank == secondBoard:
		switch tier {
		case kickerGood:
			return PairMiddleGoodKicker
		case kickerMedium:
			return PairMiddleMediumKicker
		default:
			return PairMiddleBadKicker
		}
	default:
		switch tier {
		case kickerGood:
			return PairBottomGoodKicker
		case kickerMedium:
			return PairBottomMediumKicker
		default:
			return PairBottomBadKicker
		}
	}
}
