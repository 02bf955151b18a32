package evalengine

import "github.com/nlhe/decisionengine/internal/card"

// PreflopStrength implements spec.md §4.1's preflop coarse table: a
// categorical HandStrength derived from rank, pairing, suitedness, and gap
// alone (no community cards exist yet). The labels reused here are chosen
// so the policy engine's premium/strong/medium/speculative/trash preflop
// classification (spec.md §4.5) falls directly out of the existing
// classifier methods: OverpairStrong/Weak for pocket pairs, PairTop*Kicker
// for unpaired broadway holdings (kicker quality keyed off the second
// card), and draw labels for suited/connected speculative hands.
func PreflopStrength(hole []card.Card) HandStrength {
	a, b := hole[0], hole[1]
	hi, lo := a.Rank, b.Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	suited := a.Suit == b.Suit
	gap := int(hi) - int(lo) - 1

	if hi == lo {
		if hi >= card.Queen {
			return OverpairStrong
		}
		return OverpairWeak
	}

	if lo >= card.Ten {
		// both cards broadway: treat hi as "top pair" and lo as its kicker.
		switch kickerQuality(lo) {
		case kickerGood:
			return PairTopGoodKicker
		case kickerMedium:
			return PairTopMediumKicker
		default:
			return PairTopBadKicker
		}
	}

	if hi == card.Ace && suited {
		return NutFlushDraw
	}

	switch {
	case suited && gap <= 1:
		return FlushDrawWithStraightDraw
	case suited && gap == 2:
		return FlushDraw
	case !suited && gap <= 1 && lo >= card.Five:
		return OpenEndedStraightDraw
	case !suited && gap == 2 && lo >= card.Five:
		return Gutshot
	}

	return HighCard
}
