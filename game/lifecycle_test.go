package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndTurnRequiresRoll(t *testing.T) {
	e, s, src := newTestGame(t, 2, 0)

	e.Apply(s, NewAction(ActionEndTurn, nil))
	assert.Equal(t, 0, s.CurrentPlayerIndex)
	assert.Equal(t, "A must roll before ending the turn.", lastLog(s))

	src.push(1, 2)
	e.Apply(s, NewAction(ActionRollDice, nil))
	e.Apply(s, NewAction(ActionEndTurn, nil))
	assert.Equal(t, 1, s.CurrentPlayerIndex)
	assert.Equal(t, [2]int{0, 0}, s.Dice)
	assert.Equal(t, "It's now B's turn.", lastLog(s))
}

func TestEndTurnWrapsAndSkipsBankrupt(t *testing.T) {
	e, s, src := newTestGame(t, 3, 0)
	s.Players[1].Money = -5
	s.BankruptPlayerIDs = []string{"g1-1"}

	src.push(1, 2)
	e.Apply(s, NewAction(ActionRollDice, nil))
	e.Apply(s, NewAction(ActionEndTurn, nil))
	assert.Equal(t, 2, s.CurrentPlayerIndex)

	src.push(1, 2)
	e.Apply(s, NewAction(ActionRollDice, nil))
	e.Apply(s, NewAction(ActionEndTurn, nil))
	assert.Equal(t, 0, s.CurrentPlayerIndex)
	assert.Equal(t, "It's now A's turn.", lastLog(s))
}

func TestBankruptcyReleasesTilesOnce(t *testing.T) {
	e, s, src := newTestGame(t, 3, 0)
	own(s, "g1-1", 1, 3)
	s.Board[3].Property.Houses = 5 // rent 450
	own(s, "g1-0", 5, 12, 6)
	s.Board[5].Deed().Mortgaged = true
	s.Players[0].Money = 440

	src.push(1, 2)
	e.Apply(s, NewAction(ActionRollDice, nil))

	require.Equal(t, -10, s.Players[0].Money)
	assert.Equal(t, 1950, s.Players[1].Money)
	assert.Equal(t, []string{"g1-0"}, s.BankruptPlayerIDs)
	for _, i := range []int{5, 6, 12} {
		d := s.Board[i].Deed()
		assert.False(t, d.Owned(), s.Board[i].Name)
		assert.False(t, d.Mortgaged, s.Board[i].Name)
	}
	assert.Equal(t, 5, s.Board[3].Houses(), "creditor keeps their houses")
	assert.Equal(t, 1, s.CurrentPlayerIndex, "turn moves off the bankrupt player")
	assert.Equal(t, StatusPlaying, s.Status)

	src.push(2, 2)
	e.Apply(s, NewAction(ActionRollDice, nil))
	e.Apply(s, NewAction(ActionEndTurn, nil))
	e.Apply(s, NewAction("dance", nil))

	assert.Equal(t, 1, countLog(s, "A has gone bankrupt!"))
	assert.Equal(t, []string{"g1-0"}, s.BankruptPlayerIDs)
	assert.Equal(t, 2, s.CurrentPlayerIndex)
}

func TestBankruptcyStripsDevelopedMonopoly(t *testing.T) {
	e, s, src := newTestGame(t, 3, 0)
	own(s, "g1-0", 1, 3)
	s.Board[1].Property.Houses = 3
	s.Board[3].Property.Houses = 3
	s.Players[0].Money = 100
	src.push(1, 3) // Income Tax

	e.Apply(s, NewAction(ActionRollDice, nil))

	assert.Zero(t, s.Board[1].Houses())
	assert.Zero(t, s.Board[3].Houses())
	assert.Empty(t, s.Board.OwnedBy("g1-0"))
}

func TestLastSolventPlayerWins(t *testing.T) {
	e, s, src := newTestGame(t, 3, 0)
	s.Players[1].Money = -1
	s.BankruptPlayerIDs = []string{"g1-1"}
	s.Players[0].Money = 150
	src.push(1, 3)

	e.Apply(s, NewAction(ActionRollDice, nil))

	require.Equal(t, StatusEnded, s.Status)
	require.NotNil(t, s.Winner)
	assert.Equal(t, "C", s.Winner.Name)
	assert.Equal(t, 1, countLog(s, "C has won the game!"))
}

func TestSinglePlayerGameNeverWins(t *testing.T) {
	e, s, src := newTestGame(t, 1, 0)
	src.push(1, 2)

	e.Apply(s, NewAction(ActionRollDice, nil))

	assert.Equal(t, StatusPlaying, s.Status)
	assert.Nil(t, s.Winner)
}
