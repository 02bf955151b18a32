package board

import (
	"github.com/nlhe/decisionengine/internal/card"
	"github.com/nlhe/decisionengine/internal/street"
)

// straightDrawOuts' both-ends-extensible check is grounded on the same
// _have_oesd in original_source/hand_evaluator.py (~L807-819) that
// board.go's OpenEndedStraightDrawPossible and evalengine's
// straightDrawFromBits follow.

// OutsEstimate bundles the fractional out-count and the equity-from-outs
// figure spec.md §4.3 derives from it via the 2-and-4 rule.
type OutsEstimate struct {
	Outs   float64
	Equity float64
}

// CalculateOuts implements spec.md §4.3's additive-then-discount outs
// composition over hero's hole cards, the board, and the street, returning
// the out count and its 2-and-4-rule equity estimate (flop:
// min(outs*0.04, 0.95); turn: min(outs*0.02, 0.95); preflop/river: 0).
func CalculateOuts(hole, communityBoard []card.Card, st street.Street, opponentCount int) OutsEstimate {
	if st == street.Preflop || st == street.River || len(communityBoard) < 3 {
		return OutsEstimate{Outs: 0, Equity: 0}
	}

	a := New(communityBoard)
	outs := madeHandImprovementOuts(hole, communityBoard)

	suitCounts, holeContrib, hasAceOfSuit := suitInfo(hole, communityBoard)
	flushDraw, nutFlushDraw := false, false
	for s := card.Clubs; s <= card.Spades; s++ {
		if suitCounts[s] == 4 && holeContrib[s] {
			flushDraw = true
			if hasAceOfSuit[s] {
				nutFlushDraw = true
			}
		}
	}
	if flushDraw {
		if nutFlushDraw {
			outs += 9
		} else {
			outs += 8
		}
	}

	oesd, gutshot, doubleGutshot, wheelOESD := straightDrawOuts(hole, communityBoard)
	switch {
	case wheelOESD:
		outs += 9
	case oesd, doubleGutshot:
		outs += 8
	case gutshot:
		outs += 4
	}

	overcardCount := 0
	maxBoard := maxBoardRank(communityBoard)
	for _, c := range hole {
		if c.Rank > maxBoard {
			overcardCount++
		}
	}
	if overcardCount > 0 {
		wet := a.Classify() == Wet || a.Classify() == VeryWet
		var perCard float64
		if opponentCount > 1 {
			perCard = 2
		} else {
			perCard = 3
		}
		if wet {
			perCard /= 2
		}
		outs += float64(overcardCount) * perCard
	}

	if st == street.Flop {
		if backdoorFlush, aceOfSuit := backdoorFlushDraw(hole, communityBoard); backdoorFlush {
			if aceOfSuit {
				outs += 1.5
			} else {
				outs += 1.0
			}
		}
		if backdoorStraightWithHighCards(hole, communityBoard) {
			outs += 1.5
		} else if backdoorStraightAny(hole, communityBoard) {
			outs += 1.0
		}
	}

	pairs := 0
	for _, n := range a.rankCounts() {
		if n == 2 {
			pairs++
		}
	}
	if pairs >= 2 {
		outs -= 10
	} else if a.IsPaired() {
		outs -= 3.5
	}

	if a.FlushPossible() && !flushDraw {
		outs -= 2
	}
	if a.StraightPossible() && !(oesd || gutshot || doubleGutshot || wheelOESD) {
		outs -= 2
	}

	if outs < 0 {
		outs = 0
	}

	var equity float64
	switch st {
	case street.Flop:
		equity = outs * 0.04
		if equity > 0.95 {
			equity = 0.95
		}
	case street.Turn:
		equity = outs * 0.02
		if equity > 0.95 {
			equity = 0.95
		}
	}

	return OutsEstimate{Outs: outs, Equity: equity}
}

func maxBoardRank(board []card.Card) card.Rank {
	m := card.Rank(0)
	for _, c := range board {
		if c.Rank > m {
			m = c.Rank
		}
	}
	return m
}

// madeHandImprovementOuts covers the three made-hand-improvement rules:
// pocket pair to set, one pair to trips, and kicker-pair outs.
func madeHandImprovementOuts(hole, board []card.Card) float64 {
	outs := 0.0
	rankCounts := map[card.Rank]int{}
	for _, c := range board {
		rankCounts[c.Rank]++
	}

	if hole[0].Rank == hole[1].Rank {
		if rankCounts[hole[0].Rank] == 0 {
			outs += 2.0
		}
		return outs
	}

	pairedRank := card.Rank(0)
	kicker := card.Rank(0)
	for _, c := range hole {
		if rankCounts[c.Rank] >= 1 {
			pairedRank = c.Rank
		} else {
			kicker = c.Rank
		}
	}
	if pairedRank != 0 {
		outs += 2.0
		if kicker != 0 {
			maxBoard := maxBoardRank(board)
			ranks := distinctRanksAscList(board)
			secondBoard := card.Rank(0)
			if len(ranks) >= 2 {
				secondBoard = ranks[len(ranks)-2]
			}
			if pairedRank == maxBoard || pairedRank == secondBoard {
				outs += 3.0
			}
		}
	}
	return outs
}

func distinctRanksAscList(cards []card.Card) []card.Rank {
	seen := map[card.Rank]bool{}
	var ranks []card.Rank
	for _, c := range cards {
		if !seen[c.Rank] {
			seen[c.Rank] = true
			ranks = append(ranks, c.Rank)
		}
	}
	for i := 1; i < len(ranks); i++ {
		for j := i; j > 0 && ranks[j-1] > ranks[j]; j-- {
			ranks[j-1], ranks[j] = ranks[j], ranks[j-1]
		}
	}
	return ranks
}

func suitInfo(hole, board []card.Card) (counts [4]int, holeContributes [4]bool, hasAce [4]bool) {
	for _, c := range hole {
		counts[c.Suit]++
		holeContributes[c.Suit] = true
		if c.Rank == card.Ace {
			hasAce[c.Suit] = true
		}
	}
	for _, c := range board {
		counts[c.Suit]++
	}
	return
}

func rankBitsWithAceLow(cards []card.Card) uint32 {
	var bits uint32
	for _, c := range cards {
		bits |= 1 << uint(c.Rank)
	}
	if bits&(1<<14) != 0 {
		bits |= 1 << 1
	}
	return bits
}

func straightDrawOuts(hole, board []card.Card) (oesd, gutshot, doubleGutshot, wheelOESD bool) {
	all := append(append([]card.Card{}, hole...), board...)
	bits := rankBitsWithAceLow(all)

	gutshotWindows := 0
	for low := 1; low <= 10; low++ {
		window := uint32(0)
		for r := low; r < low+5; r++ {
			window |= 1 << uint(r)
		}
		present := bits & window
		missing := window &^ present
		if popcount(present) != 4 {
			continue
		}
		lowMissing := missing&(1<<uint(low)) != 0
		highMissing := missing&(1<<uint(low+4)) != 0
		switch {
		case lowMissing && low+5 <= 14:
			if low == 1 {
				wheelOESD = true
			} else {
				oesd = true
			}
		case highMissing && low-1 >= 1:
			oesd = true
		case !lowMissing && !highMissing:
			gutshotWindows++
		}
	}
	if gutshotWindows >= 2 {
		doubleGutshot = true
		gutshotWindows = 0
	}
	gutshot = gutshotWindows > 0 && !oesd && !wheelOESD
	return
}

func backdoorFlushDraw(hole, board []card.Card) (has bool, aceOfSuit bool) {
	counts, holeContrib, hasAce := suitInfo(hole, board)
	for s := card.Clubs; s <= card.Spades; s++ {
		if counts[s] == 3 && holeContrib[s] {
			return true, hasAce[s]
		}
	}
	return false, false
}

func backdoorStraightAny(hole, board []card.Card) bool {
	all := append(append([]card.Card{}, hole...), board...)
	bits := rankBitsWithAceLow(all)
	for low := 1; low <= 10; low++ {
		window := uint32(0)
		for r := low; r < low+5; r++ {
			window |= 1 << uint(r)
		}
		if popcount(bits&window) == 3 {
			return true
		}
	}
	return false
}

func backdoorStraightWithHighCards(hole, board []card.Card) bool {
	all := append(append([]card.Card{}, hole...), board...)
	bits := rankBitsWithAceLow(all)
	for low := 1; low <= 10; low++ {
		window := uint32(0)
		for r := low; r < low+5; r++ {
			window |= 1 << uint(r)
		}
		if popcount(bits&window) == 3 && low+4 >= int(card.Ten) {
			return true
		}
	}
	return false
}
