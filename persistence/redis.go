package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gomodule/redigo/redis"

	"github.com/wfunc/monopoly/config"
	"github.com/wfunc/monopoly/game"
	"github.com/wfunc/monopoly/models"
)

// maxRecords caps the finished-game list kept in redis.
const maxRecords = 1000

// Redis stores each snapshot as a JSON string and finished games in a
// capped list, newest first.
type Redis struct {
	pool   *redis.Pool
	prefix string
}

func NewRedis(cfg config.RedisConfig) *Redis {
	return &Redis{
		prefix: cfg.KeyPrefix,
		pool: &redis.Pool{
			MaxIdle:     cfg.MaxIdle,
			IdleTimeout: cfg.IdleTimeout,
			Dial: func() (redis.Conn, error) {
				return redis.Dial("tcp", cfg.Address,
					redis.DialPassword(cfg.Password),
					redis.DialDatabase(cfg.DB),
					redis.DialConnectTimeout(queryTimeout),
				)
			},
		},
	}
}

func gameKey(prefix, gameID string) string {
	return prefix + "game:" + gameID
}

func recordsKey(prefix string) string {
	return prefix + "records"
}

func (r *Redis) SaveGame(ctx context.Context, g *game.State) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}

	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Do("SET", gameKey(r.prefix, g.GameID), data)
	return err
}

func (r *Redis) LoadGame(ctx context.Context, gameID string) (*game.State, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", gameKey(r.prefix, gameID)))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
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

func (r *Redis) SaveGameRecord(ctx context.Context, record *models.GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	key := recordsKey(r.prefix)
	if err := conn.Send("MULTI"); err != nil {
		return err
	}
	if err := conn.Send("LPUSH", key, data); err != nil {
		return err
	}
	if err := conn.Send("LTRIM", key, 0, maxRecords-1); err != nil {
		return err
	}
	_, err = conn.Do("EXEC")
	return err
}

func (r *Redis) ListGameRecords(ctx context.Context, limit int) ([]*models.GameRecord, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	stop := -1
	if limit > 0 {
		stop = limit - 1
	}
	values, err := redis.ByteSlices(conn.Do("LRANGE", recordsKey(r.prefix), 0, stop))
	if err != nil {
		return nil, err
	}

	records := make([]*models.GameRecord, 0, len(values))
	for _, v := range values {
		var rec models.GameRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, nil
}

func (r *Redis) Close() error {
	return r.pool.Close()
}
