// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// PostgreSQL 驱动
	_ "github.com/lib/pq" // PostgreSQL 驱动

	"github.com/wfunc/monopoly/game"
	"github.com/wfunc/monopoly/models"
)

// PostgreSQL 数据库实现
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	// 设置连接池参数
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(ctx, db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

// initTables 初始化数据库表结构
func initTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS game_snapshots (
            game_id VARCHAR(255) PRIMARY KEY,
            status VARCHAR(20) NOT NULL,
            state JSONB NOT NULL,
            last_update BIGINT NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            game_id VARCHAR(255) NOT NULL,
            winner_id VARCHAR(255) NOT NULL,
            winner_name VARCHAR(255) NOT NULL,
            players JSONB NOT NULL,
            turns INTEGER NOT NULL DEFAULT 0,
            finished_at TIMESTAMP NOT NULL
        )
    `)
	if err != nil {
		return err
	}

	// 创建索引以提高查询性能
	_, err = db.ExecContext(ctx, `
        CREATE INDEX IF NOT EXISTS idx_game_snapshots_status ON game_snapshots(status);
        CREATE INDEX IF NOT EXISTS idx_game_records_game_id ON game_records(game_id);
        CREATE INDEX IF NOT EXISTS idx_game_records_finished_at ON game_records(finished_at);
    `)

	return err
}

// SaveGame upserts the snapshot.
func (p *PostgreSQL) SaveGame(ctx context.Context, g *game.State) error {
	jsonData, err := json.Marshal(g)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
        INSERT INTO game_snapshots (game_id, status, state, last_update)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (game_id)
        DO UPDATE SET status = $2, state = $3, last_update = $4, updated_at = CURRENT_TIMESTAMP
    `

	_, err = p.db.ExecContext(ctx, query, g.GameID, string(g.Status), jsonData, g.LastUpdate)
	return err
}

func (p *PostgreSQL) LoadGame(ctx context.Context, gameID string) (*game.State, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var data []byte
	query := `SELECT state FROM game_snapshots WHERE game_id = $1`
	err := p.db.QueryRowContext(ctx, query, gameID).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	var g game.State
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// SaveGameRecord 保存游戏记录
func (p *PostgreSQL) SaveGameRecord(ctx context.Context, record *models.GameRecord) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
        INSERT INTO game_records (game_id, winner_id, winner_name, players, turns, finished_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err = p.db.ExecContext(ctx, query,
		record.GameID,
		record.WinnerID,
		record.WinnerName,
		players,
		record.Turns,
		record.FinishedAt)

	return err
}

func (p *PostgreSQL) ListGameRecords(ctx context.Context, limit int) ([]*models.GameRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
        SELECT game_id, winner_id, winner_name, players, turns, finished_at
        FROM game_records ORDER BY finished_at DESC, id DESC
    `
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.GameRecord
	for rows.Next() {
		var r models.GameRecord
		var players []byte
		if err := rows.Scan(&r.GameID, &r.WinnerID, &r.WinnerName, &players, &r.Turns, &r.FinishedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(players, &r.Players); err != nil {
			return nil, err
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}

// Close 关闭数据库连接
func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
