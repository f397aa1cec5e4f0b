package state

import (
	"encoding/json"
	"errors"

	"github.com/wfunc/monopoly/game"
	"github.com/wfunc/monopoly/logger"
	"github.com/wfunc/monopoly/network"
)

var (
	PlayingID = string(game.StatusPlaying)
	EndedID   = string(game.StatusEnded)
)

var ErrNoGame = errors.New("no game snapshot")

// PlayingState feeds every action through the engine.
type PlayingState struct {
	GameStateBase
}

func NewPlayingState(room GameContext) *PlayingState {
	return &PlayingState{GameStateBase{ID: PlayingID, Room: room}}
}

func (s *PlayingState) OnEnter() {
	logger.Log.Debugf("Game %s entered playing state", s.Room.GetID())
}

func (s *PlayingState) HandleAction(g *game.State, a game.Action) (*game.State, error) {
	if g == nil {
		return nil, ErrNoGame
	}
	return s.Room.Engine().Apply(g, a), nil
}

// EndedState is terminal. Entering it sends the final snapshot and then
// announces the winner, once; actions return the snapshot unchanged.
type EndedState struct {
	GameStateBase
	silent bool
}

func NewEndedState(room GameContext) *EndedState {
	return &EndedState{GameStateBase: GameStateBase{ID: EndedID, Room: room}}
}

func (s *EndedState) OnEnter() {
	g := s.Room.Current()
	if s.silent || g == nil || g.Winner == nil {
		return
	}
	logger.Log.Infof("Game %s ended, winner %s", g.GameID, g.Winner.ID)

	final, err := json.Marshal(g)
	if err != nil {
		logger.Log.Errorf("Error marshalling final state for %s: %v", g.GameID, err)
		return
	}
	if err := s.Room.Broadcast(network.MsgTypeGameSync, final); err != nil {
		logger.Log.Warnf("Broadcast final state for %s failed: %v", g.GameID, err)
	}

	data, err := json.Marshal(network.GameEnd{
		GameID:     g.GameID,
		WinnerID:   g.Winner.ID,
		WinnerName: g.Winner.Name,
	})
	if err != nil {
		logger.Log.Errorf("Error marshalling game end for %s: %v", g.GameID, err)
		return
	}
	if err := s.Room.Broadcast(network.MsgTypeGameEnd, data); err != nil {
		logger.Log.Warnf("Broadcast game end for %s failed: %v", g.GameID, err)
	}
}

// GameMachine is the lifecycle of one game: playing, then ended for good.
type GameMachine struct {
	*BaseStateMachine
	Playing *PlayingState
	Ended   *EndedState
}

// NewGameMachine starts in the state matching the room's snapshot. A game
// loaded already finished does not announce its winner again.
func NewGameMachine(room GameContext) *GameMachine {
	m := &GameMachine{
		Playing: NewPlayingState(room),
		Ended:   NewEndedState(room),
	}

	var initial State = m.Playing
	if g := room.Current(); g != nil && g.Status == game.StatusEnded {
		initial = m.Ended
		m.Ended.silent = true
	}
	m.BaseStateMachine = NewBaseStateMachine(initial)
	m.Ended.silent = false

	m.AddTransition(m.Playing, m.Ended, func() bool {
		g := room.Current()
		return g != nil && g.Status == game.StatusEnded
	})
	m.AddTransition(m.Ended, m.Playing, func() bool { return false })
	return m
}

// Finish moves to the ended state if the committed snapshot has ended.
func (m *GameMachine) Finish() error {
	if m.GetCurrentState().GetID() == EndedID {
		return nil
	}
	return m.ChangeState(m.Ended)
}
