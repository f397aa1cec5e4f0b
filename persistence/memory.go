package persistence

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/wfunc/monopoly/game"
	"github.com/wfunc/monopoly/models"
)

// Memory keeps snapshots as encoded JSON so callers never share state with
// the store.
type Memory struct {
	games   map[string][]byte
	records []*models.GameRecord
	mutex   sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{games: make(map[string][]byte)}
}

func (m *Memory) SaveGame(ctx context.Context, g *game.State) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.games[g.GameID] = data
	return nil
}

func (m *Memory) LoadGame(ctx context.Context, gameID string) (*game.State, error) {
	m.mutex.RLock()
	data, ok := m.games[gameID]
	m.mutex.RUnlock()
	if !ok {
		return nil, ErrRecordNotFound
	}

	var g game.State
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (m *Memory) SaveGameRecord(ctx context.Context, record *models.GameRecord) error {
	r := *record
	r.Players = append([]models.PlayerInfo(nil), record.Players...)

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.records = append(m.records, &r)
	return nil
}

// ListGameRecords returns the newest records first.
func (m *Memory) ListGameRecords(ctx context.Context, limit int) ([]*models.GameRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make([]*models.GameRecord, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		r := *m.records[i]
		out = append(out, &r)
	}
	return out, nil
}

func (m *Memory) Close() error {
	return nil
}
