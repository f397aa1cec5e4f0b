// models/gorm_models.go
package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/wfunc/monopoly/game"
)

// GormGameSnapshot holds the latest snapshot of one game.
type GormGameSnapshot struct {
	GameID     string         `gorm:"primaryKey;size:255"`
	Status     string         `gorm:"index;not null"`
	State      datatypes.JSON `gorm:"type:jsonb;not null"`
	LastUpdate int64          `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (GormGameSnapshot) TableName() string { return "game_snapshots" }

// GormGameRecord 游戏记录模型
type GormGameRecord struct {
	ID         uint           `gorm:"primaryKey"`
	GameID     string         `gorm:"index;not null"`
	WinnerID   string         `gorm:"not null"`
	WinnerName string         `gorm:"not null"`
	Players    datatypes.JSON `gorm:"type:jsonb;not null"`
	Turns      int            `gorm:"default:0"`
	FinishedAt time.Time      `gorm:"index"`
}

func (GormGameRecord) TableName() string { return "game_records" }

func NewGormGameSnapshot(g *game.State) (*GormGameSnapshot, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return &GormGameSnapshot{
		GameID:     g.GameID,
		Status:     string(g.Status),
		State:      datatypes.JSON(data),
		LastUpdate: g.LastUpdate,
	}, nil
}

func (m *GormGameSnapshot) Game() (*game.State, error) {
	var g game.State
	if err := json.Unmarshal(m.State, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func NewGormGameRecord(r *GameRecord) (*GormGameRecord, error) {
	players, err := json.Marshal(r.Players)
	if err != nil {
		return nil, err
	}
	return &GormGameRecord{
		GameID:     r.GameID,
		WinnerID:   r.WinnerID,
		WinnerName: r.WinnerName,
		Players:    datatypes.JSON(players),
		Turns:      r.Turns,
		FinishedAt: r.FinishedAt,
	}, nil
}

func (m *GormGameRecord) Record() (*GameRecord, error) {
	r := &GameRecord{
		GameID:     m.GameID,
		WinnerID:   m.WinnerID,
		WinnerName: m.WinnerName,
		Turns:      m.Turns,
		FinishedAt: m.FinishedAt,
	}
	if err := json.Unmarshal(m.Players, &r.Players); err != nil {
		return nil, err
	}
	return r, nil
}
