package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wfunc/monopoly/broadcast"
	"github.com/wfunc/monopoly/cards"
	"github.com/wfunc/monopoly/config"
	"github.com/wfunc/monopoly/game"
	"github.com/wfunc/monopoly/logger"
	"github.com/wfunc/monopoly/monitor"
	"github.com/wfunc/monopoly/network"
	"github.com/wfunc/monopoly/persistence"
	"github.com/wfunc/monopoly/room"
	"github.com/wfunc/monopoly/rpc"
	"github.com/wfunc/monopoly/server"
	"github.com/wfunc/monopoly/services"
	"github.com/wfunc/monopoly/session"
	"github.com/wfunc/monopoly/timer"
)

func main() {
	configPath := flag.String("config", ".", "directory holding config.yaml and .env")
	flag.Parse()

	logger.Init("info", false)

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Development)
	defer logger.Sync()

	engine, err := newEngine(cfg.Game)
	if err != nil {
		logger.Log.Fatalf("Failed to build game engine: %v", err)
	}
	logger.Log.Infow("Game engine ready", "rules", engine.Rules())

	// Initialize Database
	db, err := persistence.New(cfg.Database)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Log.Infof("Using %s game storage.", cfg.Database.Driver)

	mon := monitor.NewMonitor(cfg.Metrics.Namespace)
	sessions := session.NewManager()
	broadcaster := broadcast.NewGameBroadcaster(sessions)
	games := services.NewGameService(db, engine, room.NewRoomManager(), broadcaster, mon)

	rpcServer, err := rpc.NewServer(cfg.Server.RPCAddress, games)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	if err := rpcServer.Listen(); err != nil {
		logger.Log.Fatalf("Failed to listen for RPC: %v", err)
	}
	go rpcServer.Start()

	health := rpc.NewHealthServer(cfg.Server.GRPCAddress)
	go func() {
		if err := health.ListenAndServe(); err != nil {
			logger.Log.Errorf("gRPC health server stopped: %v", err)
		}
	}()

	timers := timer.NewTimerManager()
	if ttl := cfg.Server.IdleRoomTimeout; ttl > 0 {
		timers.AddTimer(ttl, ttl/2, func() { games.EvictIdle(ttl) })
	}

	gameServer := server.NewGameServer(cfg.Server, games, sessions, mon)
	go func() {
		if err := gameServer.Start(); err != nil {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Log.Info("Shutting down.")

	notice, _ := json.Marshal(network.ErrorMessage{Error: "server shutting down"})
	if err := broadcaster.BroadcastToAll(network.MsgTypeError, notice); err != nil {
		logger.Log.Warnf("Shutdown notice: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := gameServer.Shutdown(ctx); err != nil {
		logger.Log.Warnf("HTTP shutdown: %v", err)
	}
	timers.Stop()
	health.Stop()
	rpcServer.Stop()
}

func newEngine(cfg config.GameConfig) (*game.Engine, error) {
	opts := []game.Option{
		game.WithRules(cfg.Rules),
		game.WithLogger(logger.Log),
	}
	if cfg.Seed != 0 {
		opts = append(opts, game.WithSource(game.NewSource(cfg.Seed)))
	}
	if cfg.DeckFile != "" {
		chance, communityChest, err := cards.LoadDecks(cfg.DeckFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithDecks(chance, communityChest))
	}
	return game.NewEngine(opts...), nil
}
