// Package evalengine implements 5-of-7 best-hand scoring and the
// categorical HandStrength labels the policy engine consults. The numeric
// score (Score) totally orders any two 5-to-7 card holdings for showdown;
// the categorical label (Classify) is the label most specific for
// decision-making, which may surface a draw even where a weak made hand
// also exists.
package evalengine

import "github.com/nlhe/decisionengine/internal/card"

// Category is the coarse numeric hand category used by Score's base values.
// Unlike HandStrength, Category values ARE totally ordered (higher beats
// lower), because Score is a showdown comparator. HandStrength is not: it is
// a decision label, and the policy must consult its classifier methods
// rather than compare label ordinals (see design note in DESIGN.md).
type Category int

const (
	CategoryHighCard Category = iota
	CategoryOnePair
	CategoryTwoPair
	CategoryTrips
	CategoryStraight
	CategoryFlush
	CategoryFullHouse
	CategoryQuads
	CategoryStraightFlush
)

const (
	baseHighCard      = 0
	baseOnePair       = 1_000_000
	baseTwoPair       = 2_000_000
	baseTrips         = 3_000_000
	baseStraight      = 4_000_000
	baseFlush         = 5_000_000
	baseFullHouse     = 6_000_000
	baseQuads         = 7_000_000
	baseStraightFlush = 8_000_000
)

// Score5 scores an exact 5-card hand per spec.md §4.1's category base
// values, returning the coarse Category alongside the integer score so
// callers that need both (e.g. the classifier) don't re-derive the category
// from the score.
func Score5(hand [5]card.Card) (Category, int) {
	var rankCounts [15]int
	var suitCounts [4]int
	var rankBits uint32
	for _, c := range hand {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
		rankBits |= 1 << uint(c.Rank)
	}

	flush := suitCounts[0] == 5 || suitCounts[1] == 5 || suitCounts[2] == 5 || suitCounts[3] == 5
	straightHigh := straightHighFromBits(rankBits)

	if flush && straightHigh > 0 {
		return CategoryStraightFlush, baseStraightFlush + straightHigh
	}

	var fours, threes, pairs, kickers []int
	for r := 14; r >= 2; r-- {
		switch rankCounts[r] {
		case 4:
			fours = append(fours, r)
		case 3:
			threes = append(threes, r)
		case 2:
			pairs = append(pairs, r)
		case 1:
			kickers = append(kickers, r)
		}
	}

	if len(fours) == 1 {
		kicker := 0
		if len(kickers) > 0 {
			kicker = kickers[0]
		}
		return CategoryQuads, baseQuads + 13*fours[0] + kicker
	}

	if len(threes) == 1 && (len(pairs) >= 1 || len(threes) > 1) {
		pairRank := 0
		if len(pairs) > 0 {
			pairRank = pairs[0]
		}
		return CategoryFullHouse, baseFullHouse + 13*threes[0] + pairRank
	}
	if len(threes) == 2 {
		// two triplets: higher is the set, lower serves as the pair
		return CategoryFullHouse, baseFullHouse + 13*threes[0] + threes[1]
	}

	if flush {
		sum := 0
		for _, c := range hand {
			sum += int(c.Rank)
		}
		return CategoryFlush, baseFlush + sum
	}

	if straightHigh > 0 {
		return CategoryStraight, baseStraight + straightHigh
	}

	if len(threes) == 1 {
		k1, k2 := 0, 0
		if len(kickers) > 0 {
			k1 = kickers[0]
		}
		if len(kickers) > 1 {
			k2 = kickers[1]
		}
		return CategoryTrips, baseTrips + 169*threes[0] + 13*k1 + k2
	}

	if len(pairs) >= 2 {
		kicker := 0
		if len(kickers) > 0 {
			kicker = kickers[0]
		} else if len(pairs) > 2 {
			kicker = pairs[2]
		}
		return CategoryTwoPair, baseTwoPair + 169*pairs[0] + 13*pairs[1] + kicker
	}

	if len(pairs) == 1 {
		k1, k2, k3 := 0, 0, 0
		if len(kickers) > 0 {
			k1 = kickers[0]
		}
		if len(kickers) > 1 {
			k2 = kickers[1]
		}
		if len(kickers) > 2 {
			k3 = kickers[2]
		}
		return CategoryOnePair, baseOnePair + 2197*pairs[0] + 169*k1 + 13*k2 + k3
	}

	// Base 15 keeps every rank digit (2..14) distinct while holding the
	// largest high-card hand below baseOnePair.
	sum := 0
	weight := 1
	for i := len(kickers) - 1; i >= 0 && i >= len(kickers)-5; i-- {
		sum += kickers[i] * weight
		weight *= 15
	}
	return CategoryHighCard, baseHighCard + sum
}

// straightHighFromBits returns the high card of a 5-consecutive-rank run in
// rankBits, treating the wheel (A-2-3-4-5) as 5-high, or 0 if none exists.
func straightHighFromBits(rankBits uint32) int {
	wheel := uint32(1<<14 | 1<<2 | 1<<3 | 1<<4 | 1<<5)
	if rankBits&wheel == wheel {
		return 5
	}
	for high := 14; high >= 6; high-- {
		mask := uint32(0x1F) << uint(high-4)
		if rankBits&mask == mask {
			return high
		}
	}
	return 0
}

// Score evaluates the best 5-card hand out of 2..7 cards (hole ∪ community),
// returning the maximum Score5 over every C(n,5) combination.
func Score(cards []card.Card) (Category, int) {
	if len(cards) < 5 {
		return scorePartial(cards)
	}
	bestCat := CategoryHighCard
	bestScore := -1
	combinations(cards, 5, func(combo []card.Card) {
		var hand [5]card.Card
		copy(hand[:], combo)
		cat, score := Score5(hand)
		if score > bestScore {
			bestScore = score
			bestCat = cat
		}
	})
	return bestCat, bestScore
}

// scorePartial handles the degenerate 2..4 card case (no community cards
// yet, or only some dealt) by padding conceptually: a made-hand category is
// only meaningful at 5+ cards, so fewer cards score purely on high-card
// kicker value for relative ordering in tests and tooling.
func scorePartial(cards []card.Card) (Category, int) {
	if len(cards) == 0 {
		return CategoryHighCard, 0
	}
	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = int(c.Rank)
	}
	// simple insertion sort descending, len <= 4
	for i := 1; i < len(ranks); i++ {
		v := ranks[i]
		j := i - 1
		for j >= 0 && ranks[j] < v {
			ranks[j+1] = ranks[j]
			j--
		}
		ranks[j+1] = v
	}
	sum := 0
	weight := 1
	for i := len(ranks) - 1; i >= 0; i-- {
		sum += ranks[i] * weight
		weight *= 20
	}
	return CategoryHighCard, sum
}

// combinations calls fn with every k-length combination of cards.
func combinations(cards []card.Card, k int, fn func([]card.Card)) {
	n := len(cards)
	if k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	combo := make([]card.Card, k)
	for {
		for i, v := range idx {
			combo[i] = cards[v]
		}
		fn(combo)

		i := k - 1
		for i >= 0 && idx[i] == i+n-k {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
