package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/monopoly/config"
	"github.com/wfunc/monopoly/game"
	"github.com/wfunc/monopoly/models"
)

func newGame(id string) *game.State {
	e := game.NewEngine(game.WithSource(game.NewSource(11)))
	return e.NewGame(id, []string{"A", "B"}, 0)
}

func TestMemorySaveLoad(t *testing.T) {
	ctx := context.Background()
	db := NewMemory()
	g := newGame("g1")

	require.NoError(t, db.SaveGame(ctx, g))
	g.Players[0].Money = 1 // the store holds its own copy

	loaded, err := db.LoadGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 1500, loaded.Players[0].Money)
	assert.Equal(t, g.LastUpdate, loaded.LastUpdate)
	assert.Equal(t, g.ChanceDeck, loaded.ChanceDeck)
	assert.Equal(t, g.Board, loaded.Board)
}

func TestMemorySaveReplaces(t *testing.T) {
	ctx := context.Background()
	db := NewMemory()
	g := newGame("g1")
	require.NoError(t, db.SaveGame(ctx, g))

	g.GameLog = append(g.GameLog, "later")
	require.NoError(t, db.SaveGame(ctx, g))

	loaded, err := db.LoadGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "later", loaded.GameLog[len(loaded.GameLog)-1])
}

func TestMemoryLoadMissing(t *testing.T) {
	_, err := NewMemory().LoadGame(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMemoryRecordsNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := NewMemory()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, db.SaveGameRecord(ctx, &models.GameRecord{GameID: id, FinishedAt: time.Now()}))
	}

	all, err := db.ListGameRecords(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].GameID)
	assert.Equal(t, "a", all[2].GameID)

	two, err := db.ListGameRecords(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, "b", two[1].GameID)
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "monopoly:game:abc", gameKey("monopoly:", "abc"))
	assert.Equal(t, "game:abc", gameKey("", "abc"))
	assert.Equal(t, "monopoly:records", recordsKey("monopoly:"))
}

func TestNewSelectsDriver(t *testing.T) {
	db, err := New(config.DatabaseConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, db)

	db, err = New(config.DatabaseConfig{Driver: "redis", Redis: config.RedisConfig{Address: "localhost:0"}})
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, db)
	assert.NoError(t, db.Close())

	_, err = New(config.DatabaseConfig{Driver: "cassandra"})
	assert.Error(t, err)
}
