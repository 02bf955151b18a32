package decisionserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlhe/decisionengine/internal/street"
	"github.com/nlhe/decisionengine/internal/trace"
)

func TestBuildTableStatePreflopHeadsUp(t *testing.T) {
	ts, err := buildTableState(StateUpdateData{
		Hero:       "As Ah",
		Street:     "preflop",
		Pot:        100,
		CurrentBet: 0,
		MinRaise:   20,
		BigBlind:   20,
		HeroStack:  2000,
		OppStack:   2000,
		Players:    2,
		Button:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, street.Preflop, ts.CurrentStreet)
	assert.Equal(t, 100, ts.PotSize)
	assert.Equal(t, 20, ts.MinRaise)
	assert.Len(t, ts.HeroCards, 2)
	assert.Empty(t, ts.CommunityCards)
}

func TestBuildTableStateAdvancesToRequestedStreet(t *testing.T) {
	ts, err := buildTableState(StateUpdateData{
		Hero:      "As Ah",
		Board:     "Kd 7c 2s",
		Street:    "flop",
		HeroStack: 2000,
		OppStack:  2000,
		Players:   2,
		Button:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, street.Flop, ts.CurrentStreet)
	assert.Len(t, ts.CommunityCards, 3)
}

func TestBuildTableStateRejectsUnknownStreet(t *testing.T) {
	_, err := buildTableState(StateUpdateData{Hero: "As Ah", Street: "turnip"})
	assert.Error(t, err)
}

func TestBuildTableStateRejectsMalformedHero(t *testing.T) {
	_, err := buildTableState(StateUpdateData{Hero: "Zz", Street: "preflop"})
	assert.Error(t, err)
}

func TestBuildTableStateNonButtonHeroIsBigBlind(t *testing.T) {
	ts, err := buildTableState(StateUpdateData{
		Hero:      "As Ah",
		Street:    "preflop",
		HeroStack: 2000,
		OppStack:  2000,
		Players:   2,
		Button:    false,
	})
	require.NoError(t, err)
	hero := ts.HeroPlayer()
	require.NotNil(t, hero)
	assert.Equal(t, street.BigBlind, hero.Position)
}

func TestTraceNodeFromNodeConvertsChildrenRecursively(t *testing.T) {
	root := trace.Node{
		Name:   "decide",
		Result: "raise",
		Children: []trace.Node{
			{Name: "classify_preflop", Result: "premium", Elapsed: 0.001},
		},
	}
	data := traceNodeFromNode(root)
	assert.Equal(t, "decide", data.Name)
	assert.Equal(t, "raise", data.Result)
	require.Len(t, data.Children, 1)
	assert.Equal(t, "classify_preflop", data.Children[0].Name)
	assert.Equal(t, 0.001, data.Children[0].ElapsedSecs)
}

func TestNewMessageRoundTripsDecisionData(t *testing.T) {
	msg, err := NewMessage(MessageTypeDecision, DecisionData{Action: "raise", Amount: 120})
	require.NoError(t, err)
	assert.Equal(t, MessageTypeDecision, msg.Type)
	assert.Contains(t, string(msg.Data), `"action":"raise"`)
	assert.Contains(t, string(msg.Data), `"amount":120`)
}
