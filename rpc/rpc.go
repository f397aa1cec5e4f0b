package rpc

import (
	"context"
	"io"
	"net"
	"net/rpc"

	"github.com/wfunc/monopoly/game"
	"github.com/wfunc/monopoly/logger"
	"github.com/wfunc/monopoly/services"
)

// ServiceName is the net/rpc name the game methods are registered under.
const ServiceName = "Game"

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
	server   *rpc.Server
}

// NewServer registers games on a private rpc.Server. Call Listen before
// Start, or feed connections straight to ServeConn.
func NewServer(addr string, games *services.GameService) (*Server, error) {
	server := rpc.NewServer()
	if err := server.RegisterName(ServiceName, NewGameRPC(games)); err != nil {
		return nil, err
	}
	return &Server{address: addr, server: server}, nil
}

func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	s.listener = listener
	return nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if the error is due to the listener being closed.
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go s.ServeConn(conn)
	}
}

func (s *Server) ServeConn(conn io.ReadWriteCloser) {
	s.server.ServeConn(conn)
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// GameRPC is the struct that exposes RPC methods. Every method follows the
// net/rpc signature: exported arguments, pointer reply, error return.
type GameRPC struct {
	games *services.GameService
}

func NewGameRPC(games *services.GameService) *GameRPC {
	return &GameRPC{games: games}
}

type CreateGameArgs struct {
	GameID      string
	PlayerNames []string
	CPUCount    int
}

type GetGameArgs struct {
	GameID string
}

type ExecuteArgs struct {
	GameID  string
	Action  string
	Payload []byte
}

type GameReply struct {
	State *game.State
}

func (g *GameRPC) CreateGame(args *CreateGameArgs, reply *GameReply) error {
	state, err := g.games.CreateGame(context.Background(), services.CreateGameRequest{
		GameID:      args.GameID,
		PlayerNames: args.PlayerNames,
		CPUCount:    args.CPUCount,
	})
	if err != nil {
		return err
	}
	reply.State = state
	return nil
}

func (g *GameRPC) GetGame(args *GetGameArgs, reply *GameReply) error {
	state, err := g.games.GetGameState(context.Background(), args.GameID)
	if err != nil {
		return err
	}
	reply.State = state
	return nil
}

func (g *GameRPC) Execute(args *ExecuteArgs, reply *GameReply) error {
	action := game.Action{Name: game.ActionName(args.Action), Payload: args.Payload}
	state, err := g.games.ExecuteAction(context.Background(), args.GameID, action)
	if err != nil {
		return err
	}
	reply.State = state
	return nil
}
