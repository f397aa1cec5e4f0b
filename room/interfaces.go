package room

// Broadcaster defines the interface for pushing messages to everyone
// watching a game. It is defined here to break the import cycle between
// room and broadcast.
type Broadcaster interface {
	BroadcastToGame(gameID string, msgID uint16, data []byte) error
}
