package evalengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlhe/decisionengine/internal/card"
	"github.com/nlhe/decisionengine/internal/street"
)

func hand5(t *testing.T, s string) [5]card.Card {
	t.Helper()
	cards, err := card.ParseAll(s)
	require.NoError(t, err)
	require.Len(t, cards, 5)
	var out [5]card.Card
	copy(out[:], cards)
	return out
}

func TestScore5Categories(t *testing.T) {
	tests := []struct {
		name string
		hand string
		want Category
	}{
		{"royal straight flush", "As Ks Qs Js Ts", CategoryStraightFlush},
		{"wheel straight flush", "5h 4h 3h 2h Ah", CategoryStraightFlush},
		{"quads", "As Ah Ad Ac Ks", CategoryQuads},
		{"full house", "Ks Kh Kd Qc Qs", CategoryFullHouse},
		{"flush", "Ac Jc 9c 7c 5c", CategoryFlush},
		{"straight", "Ts 9h 8d 7c 6s", CategoryStraight},
		{"wheel straight", "As 5h 4d 3c 2s", CategoryStraight},
		{"trips", "7s 7h 7d Kc 2s", CategoryTrips},
		{"two pair", "Ks Kh Qd Qc 2s", CategoryTwoPair},
		{"one pair", "As Ah Kd Qc 2s", CategoryOnePair},
		{"high card", "As Kh Qd 9c 2s", CategoryHighCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, _ := Score5(hand5(t, tt.hand))
			assert.Equal(t, tt.want, cat)
		})
	}
}

func TestScore5OrdersCategories(t *testing.T) {
	_, straightFlush := Score5(hand5(t, "9h 8h 7h 6h 5h"))
	_, quads := Score5(hand5(t, "As Ah Ad Ac Ks"))
	_, fullHouse := Score5(hand5(t, "Ks Kh Kd Qc Qs"))
	_, flush := Score5(hand5(t, "Ac Jc 9c 7c 5c"))
	_, straight := Score5(hand5(t, "Ts 9h 8d 7c 6s"))
	_, trips := Score5(hand5(t, "7s 7h 7d Kc 2s"))
	_, twoPair := Score5(hand5(t, "Ks Kh Qd Qc 2s"))
	_, onePair := Score5(hand5(t, "As Ah Kd Qc 2s"))
	_, highCard := Score5(hand5(t, "As Kh Qd 9c 2s"))

	assert.Greater(t, straightFlush, quads)
	assert.Greater(t, quads, fullHouse)
	assert.Greater(t, fullHouse, flush)
	assert.Greater(t, flush, straight)
	assert.Greater(t, straight, trips)
	assert.Greater(t, trips, twoPair)
	assert.Greater(t, twoPair, onePair)
	assert.Greater(t, onePair, highCard)
}

func TestScorePicksBestOfSeven(t *testing.T) {
	hole, err := card.ParseAll("As Ah")
	require.NoError(t, err)
	board, err := card.ParseAll("Ad Ks Kh 7c 2d")
	require.NoError(t, err)
	cat, _ := Score(append(append([]card.Card{}, hole...), board...))
	assert.Equal(t, CategoryFullHouse, cat)
}

func TestClassifyOverpairStrong(t *testing.T) {
	hole, _ := card.ParseAll("As Ah")
	board, _ := card.ParseAll("Kd 7c 2s")
	result := Classify(hole, board, street.Flop)
	assert.Equal(t, OverpairStrong, result.Strength)
}

func TestClassifyOverpairWeak(t *testing.T) {
	hole, _ := card.ParseAll("Ts Th")
	board, _ := card.ParseAll("9c 7d 2s")
	result := Classify(hole, board, street.Flop)
	assert.Equal(t, OverpairWeak, result.Strength)
}

func TestClassifyTopPairGoodKicker(t *testing.T) {
	hole, _ := card.ParseAll("As Kh")
	board, _ := card.ParseAll("Kd 7c 2s")
	result := Classify(hole, board, street.Flop)
	assert.Equal(t, PairTopGoodKicker, result.Strength)
	assert.True(t, result.Strength.IsStrongMadeHand())
}

func TestClassifyPairMiddleBadKicker(t *testing.T) {
	hole, _ := card.ParseAll("9h 4c")
	board, _ := card.ParseAll("Ks 9d 3c")
	result := Classify(hole, board, street.Flop)
	assert.Equal(t, PairMiddleBadKicker, result.Strength)
}

func TestClassifyPairBottomGoodKicker(t *testing.T) {
	hole, _ := card.ParseAll("3h Ac")
	board, _ := card.ParseAll("Ks 9d 3c")
	result := Classify(hole, board, street.Flop)
	assert.Equal(t, PairBottomGoodKicker, result.Strength)
}

func TestClassifySetTop(t *testing.T) {
	hole, _ := card.ParseAll("Ks Kh")
	board, _ := card.ParseAll("Kd 7c 2s")
	result := Classify(hole, board, street.Flop)
	assert.Equal(t, SetTop, result.Strength)
}

func TestClassifySetNonTop(t *testing.T) {
	hole, _ := card.ParseAll("7s 7h")
	board, _ := card.ParseAll("Kd 7c 2s")
	result := Classify(hole, board, street.Flop)
	assert.Equal(t, Set, result.Strength)
}

func TestClassifyTripsUnpaired(t *testing.T) {
	hole, _ := card.ParseAll("Ah 7s")
	board, _ := card.ParseAll("7d 7c 2s")
	result := Classify(hole, board, street.Flop)
	assert.Equal(t, Trips, result.Strength)
}

func TestClassifyTwoPairBottom(t *testing.T) {
	hole, _ := card.ParseAll("7s 2h")
	board, _ := card.ParseAll("Kd 7c 2s")
	result := Classify(hole, board, street.Flop)
	assert.Equal(t, TwoPairBottom, result.Strength)
}

func TestClassifyNutFlushDrawOnFlop(t *testing.T) {
	hole, _ := card.ParseAll("Ah Kh")
	board, _ := card.ParseAll("2h 7h 9c")
	result := Classify(hole, board, street.Flop)
	assert.Equal(t, NutFlushDraw, result.Strength)
	assert.True(t, result.Strength.IsStrongDraw())
}

func TestClassifyOpenEndedStraightDraw(t *testing.T) {
	hole, _ := card.ParseAll("9s 8d")
	board, _ := card.ParseAll("7c 6h 2s")
	result := Classify(hole, board, street.Flop)
	assert.Equal(t, OpenEndedStraightDraw, result.Strength)
}

func TestClassifyGutshot(t *testing.T) {
	hole, _ := card.ParseAll("Jc 9d")
	board, _ := card.ParseAll("Qc 8h 2s")
	result := Classify(hole, board, street.Flop)
	assert.Equal(t, Gutshot, result.Strength)
}

func TestClassifyRiverNeverReturnsDraw(t *testing.T) {
	hole, _ := card.ParseAll("Ah Kh")
	board, _ := card.ParseAll("2h 7h 9c 3d 5s")
	result := Classify(hole, board, street.River)
	assert.False(t, result.Strength.IsDraw())
}
