// broadcast/broadcast.go
package broadcast

import (
	"go.uber.org/zap"

	"github.com/wfunc/monopoly/logger"
	"github.com/wfunc/monopoly/session"
)

// 广播接口
type Broadcaster interface {
	BroadcastToGame(gameID string, msgID uint16, data []byte) error
	BroadcastToAll(msgID uint16, data []byte) error
}

// GameBroadcaster fans messages out to every session watching a game.
// Sessions outlive rooms, so watchers keep receiving updates after a room
// is evicted and reloaded.
type GameBroadcaster struct {
	sessionManager *session.Manager
}

func NewGameBroadcaster(sessionManager *session.Manager) *GameBroadcaster {
	return &GameBroadcaster{
		sessionManager: sessionManager,
	}
}

func (b *GameBroadcaster) BroadcastToGame(gameID string, msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.GetByGameID(gameID) {
		if err := s.Send(msgID, data); err != nil {
			// a dead connection is cleaned up by its read loop
			logger.Log.Debugw("broadcast send failed", "session", s.GetID(), "game", gameID, zap.Error(err))
			continue
		}
	}
	return nil
}

func (b *GameBroadcaster) BroadcastToAll(msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.All() {
		if err := s.Send(msgID, data); err != nil {
			logger.Log.Debugw("broadcast send failed", "session", s.GetID(), zap.Error(err))
		}
	}
	return nil
}
