// models/models.go
package models

import (
	"time"

	"github.com/wfunc/monopoly/game"
)

// Outcomes recorded per player when a game finishes.
const (
	OutcomeWin      = "win"
	OutcomeBankrupt = "bankrupt"
)

// GameRecord 游戏记录模型
type GameRecord struct {
	GameID     string       `json:"game_id"`
	WinnerID   string       `json:"winner_id"`
	WinnerName string       `json:"winner_name"`
	Players    []PlayerInfo `json:"players"`
	Turns      int          `json:"log_length"`
	FinishedAt time.Time    `json:"finished_at"`
}

// PlayerInfo 玩家信息（用于游戏记录）
type PlayerInfo struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Money    int    `json:"money"`
	IsCPU    bool   `json:"is_cpu"`
	Outcome  string `json:"outcome"`
}

// NewGameRecord summarizes a finished game.
func NewGameRecord(g *game.State, at time.Time) *GameRecord {
	record := &GameRecord{
		GameID:     g.GameID,
		Turns:      len(g.GameLog),
		FinishedAt: at,
		Players:    make([]PlayerInfo, 0, len(g.Players)),
	}
	if g.Winner != nil {
		record.WinnerID = g.Winner.ID
		record.WinnerName = g.Winner.Name
	}
	for _, p := range g.Players {
		outcome := OutcomeBankrupt
		if p.ID == record.WinnerID {
			outcome = OutcomeWin
		}
		record.Players = append(record.Players, PlayerInfo{
			PlayerID: p.ID,
			Name:     p.Name,
			Money:    p.Money,
			IsCPU:    p.IsCPU,
			Outcome:  outcome,
		})
	}
	return record
}
