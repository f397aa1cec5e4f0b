// state/interfaces.go
package state

import "github.com/wfunc/monopoly/game"

// GameContext is the room side of the state machine: the engine, the
// committed snapshot and the broadcast channel. It breaks the import cycle
// between room and state.
type GameContext interface {
	GetID() string
	Engine() *game.Engine
	// Current returns the committed snapshot. Callers must hold the room lock.
	Current() *game.State
	ChangeState(newState State) error
	Broadcast(msgID uint16, data []byte) error
}
