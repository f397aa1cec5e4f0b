// services/game_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wfunc/monopoly/game"
	"github.com/wfunc/monopoly/logger"
	"github.com/wfunc/monopoly/models"
	"github.com/wfunc/monopoly/network"
	"github.com/wfunc/monopoly/persistence"
	"github.com/wfunc/monopoly/room"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidGame  = errors.New("a game needs at least two players")
	ErrGameExists   = errors.New("game already exists")
)

// Metrics is the slice of monitor.Monitor the service reports to.
type Metrics interface {
	ObserveAction(action string, duration time.Duration)
	AddBankruptcies(n int)
	IncGamesFinished()
	SetActiveGames(count int)
}

type CreateGameRequest struct {
	GameID      string
	PlayerNames []string
	CPUCount    int
}

// GameService hosts the engine. It loads snapshots into rooms on demand,
// persists every action before it becomes visible and pushes the result to
// watchers.
type GameService struct {
	db          persistence.Database
	engine      *game.Engine
	rooms       *room.Manager
	broadcaster room.Broadcaster
	metrics     Metrics
	loadMutex   sync.Mutex // a snapshot is loaded and registered as one step
}

func NewGameService(db persistence.Database, engine *game.Engine, rooms *room.Manager, broadcaster room.Broadcaster, metrics Metrics) *GameService {
	return &GameService{
		db:          db,
		engine:      engine,
		rooms:       rooms,
		broadcaster: broadcaster,
		metrics:     metrics,
	}
}

// CreateGame seats the players, shuffles the decks and stores the opening
// snapshot. An empty id gets a random one.
func (s *GameService) CreateGame(ctx context.Context, req CreateGameRequest) (*game.State, error) {
	if req.CPUCount < 0 || len(req.PlayerNames)+req.CPUCount < 2 {
		return nil, ErrInvalidGame
	}
	gameID := strings.TrimSpace(req.GameID)
	if gameID == "" {
		gameID = uuid.NewString()
	}

	s.loadMutex.Lock()
	defer s.loadMutex.Unlock()
	if _, ok := s.rooms.GetRoom(gameID); ok {
		return nil, ErrGameExists
	}
	if _, err := s.db.LoadGame(ctx, gameID); err == nil {
		return nil, ErrGameExists
	} else if !errors.Is(err, persistence.ErrRecordNotFound) {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}

	// stored before any action can reach it
	g := s.engine.NewGame(gameID, req.PlayerNames, req.CPUCount)
	if err := s.db.SaveGame(ctx, g); err != nil {
		return nil, fmt.Errorf("save game %s: %w", gameID, err)
	}
	s.rooms.CreateRoom(g, s.engine, s.broadcaster)
	s.setActiveGames()

	logger.Log.Infow("game created", "game", gameID, "players", len(g.Players))
	return g, nil
}

// GetGameState returns the current snapshot.
func (s *GameService) GetGameState(ctx context.Context, gameID string) (*game.State, error) {
	if r, ok := s.rooms.GetRoom(gameID); ok {
		return r.Snapshot(), nil
	}
	g, err := s.db.LoadGame(ctx, gameID)
	if errors.Is(err, persistence.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	return g, err
}

// ExecuteAction applies one action plus any CPU turns it triggers. The new
// snapshot is saved before any caller can observe it; a failed save leaves
// the game as it was.
func (s *GameService) ExecuteAction(ctx context.Context, gameID string, a game.Action) (*game.State, error) {
	start := time.Now()
	var (
		next       *game.State
		finished   bool
		bankrupted int
	)
	for {
		r, err := s.room(ctx, gameID)
		if err != nil {
			return nil, err
		}
		next, finished, err = r.Execute(a, func(prev, next *game.State) error {
			bankrupted = len(next.BankruptPlayerIDs) - len(prev.BankruptPlayerIDs)
			return s.db.SaveGame(ctx, next)
		})
		if errors.Is(err, room.ErrRoomEvicted) {
			// evicted between lookup and lock; reload from storage
			logger.Log.Debugw("room evicted mid-action, reloading", "game", gameID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("execute %s on %s: %w", a.Name, gameID, err)
		}
		break
	}

	if s.metrics != nil {
		s.metrics.ObserveAction(string(a.Name), time.Since(start))
		s.metrics.AddBankruptcies(bankrupted)
	}
	if finished {
		// the room already sent the final snapshot ahead of the game end
		s.recordFinish(ctx, next)
		return next, nil
	}
	s.sync(next)
	return next, nil
}

// ListRecords returns finished games, newest first.
func (s *GameService) ListRecords(ctx context.Context, limit int) ([]*models.GameRecord, error) {
	return s.db.ListGameRecords(ctx, limit)
}

// EvictIdle unloads rooms without recent actions. Their snapshots stay in
// storage.
func (s *GameService) EvictIdle(ttl time.Duration) []string {
	evicted := s.rooms.EvictIdle(ttl)
	if len(evicted) > 0 {
		logger.Log.Infow("evicted idle games", "games", evicted)
		s.setActiveGames()
	}
	return evicted
}

func (s *GameService) room(ctx context.Context, gameID string) (*room.Room, error) {
	if r, ok := s.rooms.GetRoom(gameID); ok {
		return r, nil
	}

	s.loadMutex.Lock()
	defer s.loadMutex.Unlock()
	if r, ok := s.rooms.GetRoom(gameID); ok {
		return r, nil
	}
	g, err := s.db.LoadGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, persistence.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	r, created := s.rooms.CreateRoom(g, s.engine, s.broadcaster)
	if created {
		logger.Log.Debugw("game loaded", "game", gameID, "status", g.Status)
		s.setActiveGames()
	}
	return r, nil
}

func (s *GameService) recordFinish(ctx context.Context, g *game.State) {
	if s.metrics != nil {
		s.metrics.IncGamesFinished()
	}
	// the ended snapshot is already stored; a lost record is only logged
	if err := s.db.SaveGameRecord(ctx, models.NewGameRecord(g, time.Now())); err != nil {
		logger.Log.Errorw("save game record failed", "game", g.GameID, zap.Error(err))
	}
}

func (s *GameService) sync(g *game.State) {
	if s.broadcaster == nil {
		return
	}
	data, err := json.Marshal(g)
	if err != nil {
		logger.Log.Errorw("marshal game sync failed", "game", g.GameID, zap.Error(err))
		return
	}
	if err := s.broadcaster.BroadcastToGame(g.GameID, network.MsgTypeGameSync, data); err != nil {
		logger.Log.Warnw("broadcast game sync failed", "game", g.GameID, zap.Error(err))
	}
}

func (s *GameService) setActiveGames() {
	if s.metrics != nil {
		s.metrics.SetActiveGames(s.rooms.Count())
	}
}
