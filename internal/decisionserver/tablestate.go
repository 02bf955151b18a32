package decisionserver

import (
	"fmt"
	"strings"

	"github.com/nlhe/decisionengine/internal/card"
	"github.com/nlhe/decisionengine/internal/street"
	"github.com/nlhe/decisionengine/internal/tablestate"
)

// parseStreet maps the wire street name to street.Street, the same four
// names cmd/decide accepts on its --street flag.
func parseStreet(s string) (street.Street, error) {
	switch strings.ToLower(s) {
	case "preflop":
		return street.Preflop, nil
	case "flop":
		return street.Flop, nil
	case "turn":
		return street.Turn, nil
	case "river":
		return street.River, nil
	default:
		return 0, fmt.Errorf("unknown street %q: want preflop, flop, turn, or river", s)
	}
}

// buildTableState turns one StateUpdateData frame into a fresh heads-up
// TableState ready for PolicyEngine.Decide, the same two-seat shape
// cmd/decide's CLI builds from flags.
func buildTableState(data StateUpdateData) (*tablestate.TableState, error) {
	const heroSeat, oppSeat = 1, 2

	hole, err := card.ParseAll(data.Hero)
	if err != nil || len(hole) != 2 {
		return nil, fmt.Errorf("invalid hero cards %q: %w", data.Hero, err)
	}

	var communityCards []card.Card
	if data.Board != "" {
		communityCards, err = card.ParseAll(data.Board)
		if err != nil {
			return nil, fmt.Errorf("invalid board %q: %w", data.Board, err)
		}
	}

	st, err := parseStreet(data.Street)
	if err != nil {
		return nil, err
	}

	ts := tablestate.New()
	ts.NewHand()

	heroPos := street.BigBlind
	if data.Button {
		heroPos = street.Button
	}
	ts.SetHero(heroSeat, data.HeroStack, heroPos)
	if data.Button {
		ts.SetButton(heroSeat)
		ts.SetPlayer(oppSeat, data.OppStack, street.BigBlind)
	} else {
		ts.SetButton(oppSeat)
		ts.SetPlayer(oppSeat, data.OppStack, street.Button)
	}
	ts.SetTotalPlayers(data.Players)
	ts.SetBigBlind(data.BigBlind)

	if err := ts.DealHeroCards(hole[0], hole[1]); err != nil {
		return nil, fmt.Errorf("dealing hero cards: %w", err)
	}

	if st != street.Preflop {
		for s := street.Flop; s <= st; s++ {
			if err := ts.NewStreet(s); err != nil {
				return nil, fmt.Errorf("advancing to %s: %w", s, err)
			}
		}
		if err := ts.SetCommunityCards(communityCards); err != nil {
			return nil, fmt.Errorf("setting community cards: %w", err)
		}
	}

	ts.UpdatePot(data.Pot)
	ts.SetCurrentBet(data.CurrentBet)
	ts.SetMinRaise(data.MinRaise)
	return ts, nil
}
