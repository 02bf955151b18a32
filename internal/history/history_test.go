package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nlhe/decisionengine/internal/street"
)

func TestNewHandResetsEverything(t *testing.T) {
	tr := NewTracker()
	tr.RecordAction(street.Preflop, 1, street.Raise, 30, true)
	tr.NewHand()
	assert.Equal(t, 0, tr.NumberOfRaisesBeforeFlop())
	assert.False(t, tr.IsContinuationBetSituation())
}

func TestContinuationBetSituation(t *testing.T) {
	tr := NewTracker()
	tr.RecordAction(street.Preflop, 1, street.Raise, 30, true)
	tr.RecordAction(street.Preflop, 2, street.Call, 30, false)
	tr.RecordAction(street.Flop, 1, street.Raise, 40, true)
	assert.True(t, tr.IsContinuationBetSituation())
}

func TestNoContinuationBetWhenHeroDidNotRaisePreflop(t *testing.T) {
	tr := NewTracker()
	tr.RecordAction(street.Preflop, 2, street.Raise, 30, false)
	tr.RecordAction(street.Preflop, 1, street.Call, 30, true)
	tr.RecordAction(street.Flop, 1, street.Raise, 40, true)
	assert.False(t, tr.IsContinuationBetSituation())
}

func TestCheckRaiseSituation(t *testing.T) {
	tr := NewTracker()
	tr.RecordAction(street.Flop, 1, street.Check, 0, true)
	tr.RecordAction(street.Flop, 2, street.Raise, 20, false)
	tr.RecordAction(street.Flop, 1, street.Raise, 60, true)
	assert.True(t, tr.IsCheckRaiseSituation())
}

func TestThreeBetAndFourBetSituations(t *testing.T) {
	tr := NewTracker()
	tr.RecordAction(street.Preflop, 1, street.Raise, 10, true)
	assert.False(t, tr.IsThreeBetSituation())

	tr.RecordAction(street.Preflop, 2, street.Raise, 30, false)
	assert.True(t, tr.IsThreeBetSituation())
	assert.False(t, tr.IsFourBetSituation())

	tr.RecordAction(street.Preflop, 1, street.Raise, 90, true)
	assert.True(t, tr.IsFourBetSituation())
}

func TestDonkBetSituation(t *testing.T) {
	tr := NewTracker()
	tr.RecordAction(street.Preflop, 1, street.Raise, 10, true)
	tr.RecordAction(street.Preflop, 2, street.Call, 10, false)
	tr.RecordAction(street.Flop, 2, street.Raise, 20, false)
	assert.True(t, tr.IsDonkBetSituation())
}

func TestProbeBetSituation(t *testing.T) {
	tr := NewTracker()
	tr.RecordAction(street.Turn, 2, street.Check, 0, false)
	tr.RecordAction(street.Turn, 1, street.Raise, 15, true)
	assert.True(t, tr.IsProbeBetSituation())
}

func TestFloatBetSituation(t *testing.T) {
	tr := NewTracker()
	tr.RecordAction(street.Flop, 2, street.Raise, 20, false)
	tr.RecordAction(street.Flop, 1, street.Call, 20, true)
	tr.RecordAction(street.Turn, 2, street.Check, 0, false)
	tr.RecordAction(street.Turn, 1, street.Raise, 30, true)
	assert.True(t, tr.IsFloatBetSituation())
}

func TestRaiseCallCheckCounters(t *testing.T) {
	tr := NewTracker()
	tr.RecordAction(street.Flop, 1, street.Raise, 10, true)
	tr.RecordAction(street.Flop, 2, street.Call, 10, false)
	tr.RecordAction(street.Flop, 3, street.Check, 0, false)
	assert.Equal(t, 1, tr.RaisesThisStreet(street.Flop))
	assert.Equal(t, 1, tr.CallsThisStreet(street.Flop))
	assert.Equal(t, 1, tr.ChecksThisStreet(street.Flop))
}

func TestLastAggressor(t *testing.T) {
	tr := NewTracker()
	tr.RecordAction(street.Flop, 2, street.Raise, 10, false)
	seat, ok := tr.LastAggressor(street.Flop)
	assert.True(t, ok)
	assert.Equal(t, 2, seat)

	_, ok = tr.LastAggressor(street.Turn)
	assert.False(t, ok)
}

func TestOpponentStats(t *testing.T) {
	tr := NewTracker()
	tr.RecordAction(street.Preflop, 2, street.Raise, 30, false)
	tr.RecordAction(street.Preflop, 1, street.Call, 30, true)
	tr.RecordAction(street.Flop, 2, street.Check, 0, false)
	tr.RecordAction(street.Flop, 1, street.Raise, 40, true)
	tr.RecordAction(street.Turn, 2, street.Call, 40, false)

	raises, calls, checks := tr.OpponentStats(2)
	assert.Equal(t, 1, raises)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, checks)

	raises, calls, checks = tr.OpponentStats(1)
	assert.Equal(t, 1, raises)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, checks)

	raises, calls, checks = tr.OpponentStats(99)
	assert.Equal(t, 0, raises)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, checks)
}

func TestActionsSinceLastHeroPlay(t *testing.T) {
	tr := NewTracker()
	tr.RecordAction(street.Flop, 1, street.Raise, 10, true)
	tr.RecordAction(street.Flop, 2, street.Call, 10, false)
	tr.RecordAction(street.Flop, 3, street.Raise, 30, false)
	assert.Equal(t, 1, tr.RaisesSinceLastHeroPlay(street.Flop))
	assert.Equal(t, 1, tr.CallsSinceLastHeroPlay(street.Flop))
}
