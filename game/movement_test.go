package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/monopoly/board"
	"github.com/wfunc/monopoly/cards"
)

func TestRollMovesAndLogs(t *testing.T) {
	e, s, src := newTestGame(t, 2, 0)
	src.push(2, 3)

	e.Apply(s, NewAction(ActionRollDice, nil))

	p := s.Players[0]
	assert.Equal(t, [2]int{2, 3}, s.Dice)
	assert.Equal(t, 5, p.Position)
	assert.Equal(t, 1, countLog(s, "A rolled a 2 and a 3."))
	assert.Equal(t, "A moved to Reading Railroad.", lastLog(s))
}

func TestRollTwiceRejected(t *testing.T) {
	e, s, src := newTestGame(t, 2, 0)
	src.push(2, 3, 4, 4)

	e.Apply(s, NewAction(ActionRollDice, nil))
	e.Apply(s, NewAction(ActionRollDice, nil))

	assert.Equal(t, 5, s.Players[0].Position)
	assert.Equal(t, "A has already rolled this turn.", lastLog(s))
}

func TestPassingGoPaysBonus(t *testing.T) {
	e, s, src := newTestGame(t, 2, 0)
	s.Players[0].Position = 38
	src.push(1, 2)

	e.Apply(s, NewAction(ActionRollDice, nil))

	assert.Equal(t, 1, s.Players[0].Position)
	assert.Equal(t, 1700, s.Players[0].Money)
	assert.Equal(t, 1, countLog(s, "A passed GO and collected $200."))
}

func TestTaxTile(t *testing.T) {
	e, s, src := newTestGame(t, 2, 0)
	src.push(1, 3)

	e.Apply(s, NewAction(ActionRollDice, nil))

	assert.Equal(t, 1300, s.Players[0].Money)
	assert.Equal(t, "A paid $200 in Income Tax.", lastLog(s))
}

func TestGoToJailTile(t *testing.T) {
	e, s, src := newTestGame(t, 2, 0)
	s.Players[0].Position = 25
	src.push(2, 3)

	e.Apply(s, NewAction(ActionRollDice, nil))

	p := s.Players[0]
	assert.Equal(t, board.JailPosition, p.Position)
	assert.True(t, p.InJail)
	assert.Equal(t, 1500, p.Money)
	assert.Equal(t, "A went to jail!", lastLog(s))
}

func TestJailExit(t *testing.T) {
	t.Run("card", func(t *testing.T) {
		e, s, src := newTestGame(t, 2, 0)
		p := &s.Players[0]
		p.Position, p.InJail, p.GetOutOfJailFreeCards = board.JailPosition, true, 1
		src.push(1, 2)

		e.Apply(s, NewAction(ActionRollDice, nil))

		assert.False(t, p.InJail)
		assert.Zero(t, p.GetOutOfJailFreeCards)
		assert.Equal(t, 1500, p.Money)
		assert.Equal(t, 13, p.Position)
		assert.Equal(t, 1, countLog(s, "A used a Get Out of Jail Free card."))
	})

	t.Run("bail", func(t *testing.T) {
		e, s, src := newTestGame(t, 2, 0)
		p := &s.Players[0]
		p.Position, p.InJail = board.JailPosition, true
		src.push(1, 2)

		e.Apply(s, NewAction(ActionRollDice, nil))

		assert.False(t, p.InJail)
		assert.Equal(t, 1450, p.Money)
		assert.Equal(t, 13, p.Position)
		assert.Equal(t, 1, countLog(s, "A paid $50 to get out of jail."))
	})

	t.Run("stuck", func(t *testing.T) {
		e, s, src := newTestGame(t, 2, 0)
		p := &s.Players[0]
		p.Position, p.InJail, p.Money = board.JailPosition, true, 40
		src.push(1, 2)

		e.Apply(s, NewAction(ActionRollDice, nil))

		assert.True(t, p.InJail)
		assert.Equal(t, 1, p.JailTurns)
		assert.Equal(t, board.JailPosition, p.Position)
		assert.Equal(t, 40, p.Money)
		assert.Equal(t, 1, s.CurrentPlayerIndex)
		assert.Equal(t, [2]int{0, 0}, s.Dice)
		assert.Equal(t, 1, countLog(s, "A is stuck in jail!"))
		assert.Equal(t, "It's now B's turn.", lastLog(s))
	})
}

func TestCardDrawCyclesDeck(t *testing.T) {
	e, s, src := newTestGame(t, 2, 0)
	s.ChanceDeck = cards.Deck{
		{Text: "first", Effect: cards.EffectMoney, Amount: -15},
		{Text: "second", Effect: cards.EffectMoney, Amount: 10},
		{Text: "third", Effect: cards.EffectMoney, Amount: 20},
	}
	s.Players[0].Position = 3
	src.push(2, 2) // Chance at 7

	e.Apply(s, NewAction(ActionRollDice, nil))

	require.Len(t, s.ChanceDeck, 3)
	assert.Equal(t, "second", s.ChanceDeck[0].Text)
	assert.Equal(t, "first", s.ChanceDeck[2].Text)
	assert.Equal(t, 1485, s.Players[0].Money)
	assert.Equal(t, 1, countLog(s, "A drew a Chance card: first"))
	assert.Equal(t, "A paid $15.", lastLog(s))
	require.NotNil(t, s.LastCard)
	assert.Equal(t, "first", s.LastCard.Text)
}

func TestCardMoveRecursesIntoLanding(t *testing.T) {
	e, s, src := newTestGame(t, 2, 0)
	s.ChanceDeck = cards.Deck{{Text: "Go back 3 spaces.", Effect: cards.EffectMove, Amount: -3}}
	s.Players[0].Position = 3
	src.push(2, 2)

	e.Apply(s, NewAction(ActionRollDice, nil))

	assert.Equal(t, 4, s.Players[0].Position)
	assert.Equal(t, 1300, s.Players[0].Money)
	assert.Equal(t, "A paid $200 in Income Tax.", lastLog(s))
}

func TestBackwardWrapPaysNoBonus(t *testing.T) {
	e, s, src := newTestGame(t, 2, 0)
	s.CommunityChestDeck = cards.Deck{{Text: "Back.", Effect: cards.EffectMove, Amount: -3}}
	src.push(1, 1) // Community Chest at 2

	e.Apply(s, NewAction(ActionRollDice, nil))

	assert.Equal(t, 39, s.Players[0].Position)
	assert.Equal(t, 1500, s.Players[0].Money)
	assert.Zero(t, countLog(s, "passed GO"))
}

func TestTeleportPaysNoBonus(t *testing.T) {
	e, s, src := newTestGame(t, 2, 0)
	s.ChanceDeck = cards.Deck{{Text: "Advance to Go.", Effect: cards.EffectGoTo, Position: 0}}
	s.Players[0].Position = 3
	src.push(2, 2)

	e.Apply(s, NewAction(ActionRollDice, nil))

	assert.Equal(t, 0, s.Players[0].Position)
	assert.Equal(t, 1500, s.Players[0].Money)
	assert.Equal(t, "A moved to Go.", lastLog(s))
}

func TestJailAndGetOutCards(t *testing.T) {
	e, s, src := newTestGame(t, 2, 0)
	s.CommunityChestDeck = cards.Deck{
		{Text: "Keep this.", Effect: cards.EffectGetOutOfJail},
		{Text: "Go to Jail.", Effect: cards.EffectJail},
	}
	src.push(1, 1)
	e.Apply(s, NewAction(ActionRollDice, nil))
	assert.Equal(t, 1, s.Players[0].GetOutOfJailFreeCards)
	e.Apply(s, NewAction(ActionEndTurn, nil))

	src.push(1, 1)
	e.Apply(s, NewAction(ActionRollDice, nil))
	b := s.Players[1]
	assert.True(t, b.InJail)
	assert.Equal(t, board.JailPosition, b.Position)
}

func TestDeckSizeNeverChanges(t *testing.T) {
	e, s, src := newTestGame(t, 2, 0)
	want := len(s.CommunityChestDeck)
	for i := 0; i < 40; i++ {
		// bounce between Go and Community Chest
		s.CurrentPlayer().Position = 0
		s.CurrentPlayer().InJail = false
		s.CurrentPlayer().Money = 1500
		src.push(1, 1)
		e.Apply(s, NewAction(ActionRollDice, nil))
		require.Len(t, s.CommunityChestDeck, want)
		if s.HasRolled() {
			e.Apply(s, NewAction(ActionEndTurn, nil))
		}
	}
}
