package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/monopoly/board"
)

func TestCPUPlaysAfterHuman(t *testing.T) {
	e, s, src := newTestGame(t, 1, 1)
	src.push(1, 2, 2, 3)

	e.Apply(s, NewAction(ActionRollDice, nil))
	e.Apply(s, NewAction(ActionEndTurn, nil))

	cpu := s.Players[1]
	assert.Equal(t, 0, s.CurrentPlayerIndex)
	assert.Equal(t, [2]int{0, 0}, s.Dice)
	assert.Equal(t, 5, cpu.Position)
	assert.Equal(t, 1300, cpu.Money)
	assert.Equal(t, cpu.ID, s.Board[5].Deed().OwnerID)
	assert.Equal(t, 1, countLog(s, "CPU 1 is thinking..."))
	assert.Equal(t, 1, countLog(s, "CPU 1 bought Reading Railroad for $200."))
	assert.Equal(t, "It's now A's turn.", lastLog(s))
}

func TestCPUKeepsReserve(t *testing.T) {
	e, s, src := newTestGame(t, 1, 1)
	s.Players[1].Money = 700 // price + reserve, not above it
	src.push(1, 2, 2, 3)

	e.Apply(s, NewAction(ActionRollDice, nil))
	e.Apply(s, NewAction(ActionEndTurn, nil))

	assert.False(t, s.Board[5].Deed().Owned())
	assert.Equal(t, 700, s.Players[1].Money)
}

func TestCPUBuildsEvenly(t *testing.T) {
	e, s, src := newTestGame(t, 1, 1)
	own(s, "g1-cpu-0", 1, 3)
	src.push(2, 2, 6, 6) // CPU lands on Electric Company

	e.Apply(s, NewAction(ActionRollDice, nil))
	e.Apply(s, NewAction(ActionEndTurn, nil))

	assert.Equal(t, "g1-cpu-0", s.Board[12].Deed().OwnerID)
	assert.Equal(t, 1, s.Board[1].Houses())
	assert.Equal(t, 1, s.Board[3].Houses())
	assert.Equal(t, 1500-150-50-50, s.Players[1].Money)
}

func TestCPUDoesNotBuyFromJail(t *testing.T) {
	e, s, src := newTestGame(t, 1, 1)
	s.Players[1].Position = 25
	src.push(1, 2, 2, 3) // CPU lands on Go To Jail

	e.Apply(s, NewAction(ActionRollDice, nil))
	e.Apply(s, NewAction(ActionEndTurn, nil))

	cpu := s.Players[1]
	assert.True(t, cpu.InJail)
	assert.Equal(t, board.JailPosition, cpu.Position)
	assert.Empty(t, s.Board.OwnedBy(cpu.ID))
	assert.Equal(t, 0, s.CurrentPlayerIndex)
}

func TestCPUStuckInJailPassesOnce(t *testing.T) {
	e, s, src := newTestGame(t, 1, 1)
	cpu := &s.Players[1]
	cpu.Position, cpu.InJail, cpu.Money = board.JailPosition, true, 10
	src.push(1, 2)

	e.Apply(s, NewAction(ActionRollDice, nil))
	e.Apply(s, NewAction(ActionEndTurn, nil))

	assert.Equal(t, 0, s.CurrentPlayerIndex)
	assert.Equal(t, 1, cpu.JailTurns)
	assert.Equal(t, 1, countLog(s, "CPU 1 is stuck in jail!"))
	assert.Equal(t, 1, countLog(s, "It's now A's turn."))
}

func TestCPUBankruptcyEndsGame(t *testing.T) {
	e, s, src := newTestGame(t, 1, 1)
	own(s, "g1-0", 1, 3)
	s.Board[3].Property.Houses = 5
	s.Players[1].Money = 100
	src.push(2, 2, 1, 2)

	e.Apply(s, NewAction(ActionRollDice, nil))
	e.Apply(s, NewAction(ActionEndTurn, nil))

	require.Equal(t, StatusEnded, s.Status)
	assert.Equal(t, "A", s.Winner.Name)
	assert.Equal(t, -350, s.Players[1].Money)
	assert.Equal(t, 1, countLog(s, "CPU 1 has gone bankrupt!"))
}

func TestAllCPUTableReturnsAfterOneRound(t *testing.T) {
	e := NewEngine(WithSource(&scriptedSource{}))
	s := e.NewGame("bots", nil, 3)

	e.Apply(s, NewAction("dance", nil))

	assert.Equal(t, StatusPlaying, s.Status)
	assert.Equal(t, 3, countLog(s, "is thinking..."))
	assert.Equal(t, 0, s.CurrentPlayerIndex)
}
