package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlhe/decisionengine/internal/card"
)

func cards(t *testing.T, s string) []card.Card {
	t.Helper()
	c, err := card.ParseAll(s)
	require.NoError(t, err)
	return c
}

func TestDangerLevelDryBoard(t *testing.T) {
	a := New(cards(t, "Kc 7d 2s"))
	// Only the connectedness term fires: ranks 2,7,13 give gaps of 4 and 4
	// (both capped), so connectedness = 1 - 8/24 = 2/3, contributing 0.1333.
	assert.InDelta(t, 2.0/3.0*0.2, a.DangerLevel(), 1e-9)
	assert.Equal(t, Dry, a.Classify())
}

func TestDangerLevelPairedBoardIsSemiWet(t *testing.T) {
	a := New(cards(t, "Kc Kh 7d"))
	// Paired (+0.2) plus connectedness over raw ranks 7,13,13: gaps of 4
	// (capped) and -1, giving connectedness = 1 - 3/24 = 0.875 (*0.2 = 0.175).
	assert.InDelta(t, 0.375, a.DangerLevel(), 1e-9)
	assert.Equal(t, SemiWet, a.Classify())
}

func TestDangerLevelPairedAndConnectedIsSemiWet(t *testing.T) {
	a := New(cards(t, "Kc Kh Qd"))
	// Paired (+0.2) plus connectedness over raw ranks 12,13,13: gaps of 0
	// and -1, giving connectedness = 1 - (-1)/24 = 1.041666... (*0.2 = 0.2083).
	assert.InDelta(t, 0.2+1.0416666666666667*0.2, a.DangerLevel(), 1e-9)
	assert.Equal(t, SemiWet, a.Classify())
}

func TestDangerLevelMonotoneConnectedIsVeryWet(t *testing.T) {
	a := New(cards(t, "9h 8h 7h"))
	assert.InDelta(t, 0.8, a.DangerLevel(), 1e-9)
	assert.Equal(t, VeryWet, a.Classify())
}

func TestDangerLevelCapsAtOne(t *testing.T) {
	a := New(cards(t, "9h 8h 7h 6h"))
	assert.LessOrEqual(t, a.DangerLevel(), 1.0)
}

func TestSuitPredicates(t *testing.T) {
	assert.True(t, New(cards(t, "Ah Kh Qh")).IsMonotone())
	assert.True(t, New(cards(t, "Ah Kh Qd")).IsTwoTone())
	assert.True(t, New(cards(t, "Ah Kd Qc")).IsRainbow())
	assert.False(t, New(cards(t, "Ah Kh Qh")).IsRainbow())
}

func TestBoardOnlyCategoryPredicates(t *testing.T) {
	assert.True(t, New(cards(t, "7s 7h 7d Kc 2s")).IsTripsOnBoard())
	assert.True(t, New(cards(t, "Ks Kh Qd Qc 2s")).IsTwoPairOnBoard())
	assert.True(t, New(cards(t, "7s 7h 7d Qc Qs")).IsFullHouseOnBoard())
	assert.True(t, New(cards(t, "7s 7h 7d 7c Qs")).IsQuadsOnBoard())
	assert.False(t, New(cards(t, "Kc 7d 2s")).IsTripsOnBoard())
}

func TestOpenEndedStraightDrawPossibleNeedsFourthCard(t *testing.T) {
	a := New(cards(t, "9s 8d 7c 6h"))
	assert.True(t, a.OpenEndedStraightDrawPossible())
	assert.False(t, a.GutShotStraightDrawPossible())
}

func TestGutShotStraightDrawPossible(t *testing.T) {
	a := New(cards(t, "Qs Jd 9c 8h"))
	assert.True(t, a.GutShotStraightDrawPossible())
	assert.False(t, a.OpenEndedStraightDrawPossible())
}

func TestNumberOfStraightPossibilitiesOnWetBoard(t *testing.T) {
	a := New(cards(t, "9h 8h 7h"))
	assert.GreaterOrEqual(t, a.NumberOfStraightPossibilities(), 2)
}

func TestTextureChangePairing(t *testing.T) {
	before := cards(t, "Kc 7d 2s")
	after := cards(t, "Kc 7d 2s Kh")
	assert.True(t, TextureChange(before, after))
}

func TestTextureChangeCompletesFlush(t *testing.T) {
	before := cards(t, "9h 8h 2c")
	after := cards(t, "9h 8h 2c 7h")
	assert.True(t, TextureChange(before, after))
}

func TestTextureChangeAddsStraightPossibility(t *testing.T) {
	before := cards(t, "9h 8c 2s")
	after := cards(t, "9h 8c 2s 7d")
	assert.True(t, TextureChange(before, after))
}

func TestTextureChangeNoneWhenNothingShifts(t *testing.T) {
	before := cards(t, "Kc 7d 2s")
	after := cards(t, "Kc 7d 2s Qh")
	assert.False(t, TextureChange(before, after))
}
