package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func propose(offer TradeOffer) Action {
	return NewAction(ActionProposeTrade, offer)
}

func respond(accepted bool) Action {
	return NewAction(ActionRespondToTrade, RespondPayload{Accepted: accepted})
}

func TestTradeAccepted(t *testing.T) {
	e, s, _ := newTestGame(t, 2, 0)
	own(s, "g1-0", 1)

	e.Apply(s, propose(TradeOffer{
		FromPlayerID:      "g1-0",
		ToPlayerID:        "g1-1",
		PropertiesOffered: []int{1},
		MoneyOffered:      100,
		MoneyRequested:    50,
	}))
	require.NotNil(t, s.ActiveTrade)
	assert.Equal(t, "A proposed a trade to B.", lastLog(s))

	e.Apply(s, respond(true))

	assert.Nil(t, s.ActiveTrade)
	assert.Equal(t, 1450, s.Players[0].Money)
	assert.Equal(t, 1550, s.Players[1].Money)
	assert.Equal(t, "g1-1", s.Board[1].Deed().OwnerID)
	assert.Equal(t, "Trade between A and B was accepted.", lastLog(s))
}

func TestTradeSwapsBothWays(t *testing.T) {
	e, s, _ := newTestGame(t, 2, 0)
	own(s, "g1-0", 1)
	own(s, "g1-1", 3, 5)

	e.Apply(s, propose(TradeOffer{
		FromPlayerID:        "g1-0",
		ToPlayerID:          "g1-1",
		PropertiesOffered:   []int{1},
		PropertiesRequested: []int{3, 5},
	}))
	e.Apply(s, respond(true))

	assert.Equal(t, "g1-1", s.Board[1].Deed().OwnerID)
	assert.Equal(t, "g1-0", s.Board[3].Deed().OwnerID)
	assert.Equal(t, "g1-0", s.Board[5].Deed().OwnerID)
	assert.Equal(t, 1500, s.Players[0].Money)
}

func TestTradeRejected(t *testing.T) {
	e, s, _ := newTestGame(t, 2, 0)
	own(s, "g1-0", 1)

	e.Apply(s, propose(TradeOffer{FromPlayerID: "g1-0", ToPlayerID: "g1-1", PropertiesOffered: []int{1}}))
	e.Apply(s, respond(false))

	assert.Nil(t, s.ActiveTrade)
	assert.Equal(t, "g1-0", s.Board[1].Deed().OwnerID)
	assert.Equal(t, 1500, s.Players[0].Money)
	assert.Equal(t, "Trade was rejected.", lastLog(s))
}

func TestNewProposalReplacesPending(t *testing.T) {
	e, s, _ := newTestGame(t, 3, 0)

	e.Apply(s, propose(TradeOffer{FromPlayerID: "g1-0", ToPlayerID: "g1-1", MoneyOffered: 10}))
	e.Apply(s, propose(TradeOffer{FromPlayerID: "g1-2", ToPlayerID: "g1-0", MoneyOffered: 20}))

	require.NotNil(t, s.ActiveTrade)
	assert.Equal(t, "g1-2", s.ActiveTrade.FromPlayerID)

	e.Apply(s, respond(true))
	assert.Equal(t, 1520, s.Players[0].Money)
	assert.Equal(t, 1500, s.Players[1].Money)
	assert.Equal(t, 1480, s.Players[2].Money)
}

func TestTradeSkipsStaleTiles(t *testing.T) {
	e, s, _ := newTestGame(t, 2, 0)
	own(s, "g1-0", 1)
	own(s, "g1-1", 5)

	e.Apply(s, propose(TradeOffer{
		FromPlayerID:        "g1-0",
		ToPlayerID:          "g1-1",
		PropertiesOffered:   []int{1, 3, 5, 99, -1, 4},
		PropertiesRequested: []int{6},
	}))
	// ownership changes before the answer
	own(s, "g1-1", 1)
	e.Apply(s, respond(true))

	assert.Equal(t, "g1-1", s.Board[1].Deed().OwnerID)
	assert.False(t, s.Board[3].Deed().Owned())
	assert.Equal(t, "g1-1", s.Board[5].Deed().OwnerID)
	assert.False(t, s.Board[6].Deed().Owned())
}

func TestTradeProposalRejected(t *testing.T) {
	cases := map[string]struct {
		offer TradeOffer
		log   string
	}{
		"unknown counterpart": {
			offer: TradeOffer{FromPlayerID: "g1-0", ToPlayerID: "nobody"},
			log:   "Trade proposal names an unknown player.",
		},
		"self trade": {
			offer: TradeOffer{FromPlayerID: "g1-0", ToPlayerID: "g1-0"},
			log:   "A cannot trade with themselves.",
		},
		"negative cash": {
			offer: TradeOffer{FromPlayerID: "g1-0", ToPlayerID: "g1-1", MoneyRequested: -100},
			log:   "Trade amounts cannot be negative.",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e, s, _ := newTestGame(t, 2, 0)

			e.Apply(s, propose(tc.offer))

			assert.Nil(t, s.ActiveTrade)
			assert.Equal(t, tc.log, lastLog(s))
		})
	}
}

func TestRespondWithoutTrade(t *testing.T) {
	e, s, _ := newTestGame(t, 2, 0)

	e.Apply(s, respond(true))

	assert.Equal(t, "There is no trade to respond to.", lastLog(s))
	assert.Equal(t, 1500, s.Players[0].Money)
}

func TestBankruptcyCancelsPendingTrade(t *testing.T) {
	e, s, src := newTestGame(t, 3, 0)
	s.Players[0].Money = 100

	e.Apply(s, propose(TradeOffer{FromPlayerID: "g1-1", ToPlayerID: "g1-0", MoneyOffered: 500}))
	src.push(1, 3) // Income Tax
	e.Apply(s, NewAction(ActionRollDice, nil))

	assert.Nil(t, s.ActiveTrade)
	assert.Equal(t, 1, countLog(s, "The pending trade with A was cancelled."))

	e.Apply(s, respond(true))
	assert.Equal(t, 1500, s.Players[1].Money)
}

func TestTradeOfDevelopedGroupRejected(t *testing.T) {
	e, s, _ := newTestGame(t, 2, 0)
	own(s, "g1-0", 1, 3)
	s.Board[1].Property.Houses = 1

	// the undeveloped sibling would split the group too
	e.Apply(s, propose(TradeOffer{FromPlayerID: "g1-0", ToPlayerID: "g1-1", PropertiesOffered: []int{3}}))

	assert.Nil(t, s.ActiveTrade)
	assert.Equal(t, "Sell all buildings in the brown group before trading its properties.", lastLog(s))
	assert.Equal(t, "g1-0", s.Board[3].Deed().OwnerID)
}

func TestTradeRequestingDevelopedGroupRejected(t *testing.T) {
	e, s, _ := newTestGame(t, 2, 0)
	own(s, "g1-1", 1, 3)
	s.Board[3].Property.Houses = 2
	s.Board[1].Property.Houses = 2

	e.Apply(s, propose(TradeOffer{FromPlayerID: "g1-0", ToPlayerID: "g1-1", MoneyOffered: 900, PropertiesRequested: []int{1}}))

	assert.Nil(t, s.ActiveTrade)
	assert.Equal(t, 1500, s.Players[0].Money)
}

func TestTradeCancelledWhenGroupDevelopedAfterProposal(t *testing.T) {
	e, s, _ := newTestGame(t, 2, 0)
	own(s, "g1-0", 1, 3)

	e.Apply(s, propose(TradeOffer{FromPlayerID: "g1-0", ToPlayerID: "g1-1", PropertiesOffered: []int{1}, MoneyRequested: 100}))
	require.NotNil(t, s.ActiveTrade)
	e.Apply(s, NewAction(ActionManageProperty, ManagePayload{TileIndex: 3, Action: ManageBuild}))
	require.Equal(t, 1, s.Board[3].Houses())

	e.Apply(s, respond(true))

	assert.Nil(t, s.ActiveTrade)
	assert.Equal(t, "Trade cancelled: the brown group has buildings.", lastLog(s))
	assert.Equal(t, "g1-0", s.Board[1].Deed().OwnerID)
	assert.Equal(t, 1500, s.Players[1].Money)
}
