// persistence/interface.go
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/wfunc/monopoly/config"
	"github.com/wfunc/monopoly/game"
	"github.com/wfunc/monopoly/models"
)

// Database 数据库接口
//
// SaveGame stores the whole snapshot under its game id, replacing any
// previous one. LoadGame returns ErrRecordNotFound for unknown ids.
type Database interface {
	SaveGame(ctx context.Context, g *game.State) error
	LoadGame(ctx context.Context, gameID string) (*game.State, error)
	SaveGameRecord(ctx context.Context, record *models.GameRecord) error
	ListGameRecords(ctx context.Context, limit int) ([]*models.GameRecord, error)
	Close() error
}

// 错误定义
var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)

const queryTimeout = 5 * time.Second

// New opens the backend named by cfg.Driver.
func New(cfg config.DatabaseConfig) (Database, error) {
	pg := cfg.Postgres
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "postgres":
		return NewPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	case "gorm":
		return NewGormPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	case "redis":
		return NewRedis(cfg.Redis), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
