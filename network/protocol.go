package network

import "encoding/json"

const (
	MsgTypeHeartbeat  = 1
	MsgTypeWatchGame  = 101
	MsgTypeLeaveGame  = 102
	MsgTypeCreateGame = 103
	MsgTypeGameAction = 201
	MsgTypeGameSync   = 304
	MsgTypeGameEnd    = 305
	MsgTypeError      = 400
)

// WatchRequest subscribes a connection to a game. PlayerID is optional and
// only labels the session.
type WatchRequest struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId,omitempty"`
}

type CreateRequest struct {
	GameID      string   `json:"gameId,omitempty"`
	PlayerNames []string `json:"playerNames"`
	CPUCount    int      `json:"cpuCount"`
}

// ActionRequest targets the watched game unless GameID is set.
type ActionRequest struct {
	GameID  string          `json:"gameId,omitempty"`
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type GameEnd struct {
	GameID     string `json:"gameId"`
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`
}

type ErrorMessage struct {
	Error string `json:"error"`
}
