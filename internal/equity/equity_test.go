package equity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlhe/decisionengine/internal/card"
)

func TestEstimateDeterministic(t *testing.T) {
	hole, err := card.ParseAll("As Ah")
	require.NoError(t, err)
	board, err := card.ParseAll("Kd 7c 2s")
	require.NoError(t, err)

	a := Estimate(hole, board, 1, 500, 42)
	b := Estimate(hole, board, 1, 500, 42)
	assert.Equal(t, a, b, "same seed must reproduce the same equity estimate")
}

func TestEstimateDiffersAcrossSeeds(t *testing.T) {
	hole, err := card.ParseAll("7s 2h")
	require.NoError(t, err)
	board, err := card.ParseAll("Kd 9c 3s")
	require.NoError(t, err)

	a := Estimate(hole, board, 1, 300, 1)
	b := Estimate(hole, board, 1, 300, 2)
	assert.NotEqual(t, a, b, "different seeds should practically never land on the exact same ratio")
}

func TestEstimateIsWithinUnitRange(t *testing.T) {
	hole, err := card.ParseAll("As Ks")
	require.NoError(t, err)
	board, err := card.ParseAll("Qs Js 2d")
	require.NoError(t, err)

	eq := Estimate(hole, board, 2, 500, 7)
	assert.GreaterOrEqual(t, eq, 0.0)
	assert.LessOrEqual(t, eq, 1.0)
}

func TestEstimatePremiumBeatsTrash(t *testing.T) {
	premiumHole, err := card.ParseAll("As Ah")
	require.NoError(t, err)
	trashHole, err := card.ParseAll("7s 2h")
	require.NoError(t, err)
	board, err := card.ParseAll("Kd 9c 3s")
	require.NoError(t, err)

	premiumEquity := Estimate(premiumHole, board, 1, 2000, 99)
	trashEquity := Estimate(trashHole, board, 1, 2000, 99)
	assert.Greater(t, premiumEquity, trashEquity)
}

func TestEstimateClampsOutOfRangeParameters(t *testing.T) {
	// spec.md §7: OutOfRangeParameter violations (N <= 0, opponent_count
	// outside [1,8]) clamp to defaults (N -> 1, opponent_count -> 1) rather
	// than aborting, so these still produce a valid in-range estimate.
	hole, err := card.ParseAll("As Ah")
	require.NoError(t, err)
	board, err := card.ParseAll("Kd 7c 2s")
	require.NoError(t, err)

	eq := Estimate(hole, board, 0, 500, 1)
	assert.GreaterOrEqual(t, eq, 0.0)
	assert.LessOrEqual(t, eq, 1.0)

	eq = Estimate(hole, board, 9, 500, 1)
	assert.GreaterOrEqual(t, eq, 0.0)
	assert.LessOrEqual(t, eq, 1.0)

	eq = Estimate(hole, board, 1, 0, 1)
	assert.GreaterOrEqual(t, eq, 0.0)
	assert.LessOrEqual(t, eq, 1.0)
}

func TestEstimateMalformedHoleReturnsZero(t *testing.T) {
	assert.Equal(t, 0.0, Estimate([]card.Card{{Rank: card.Ace, Suit: card.Spades}}, nil, 1, 500, 1), "malformed hole")
}
