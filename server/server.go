package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/wfunc/monopoly/config"
	"github.com/wfunc/monopoly/game"
	"github.com/wfunc/monopoly/logger"
	"github.com/wfunc/monopoly/monitor"
	"github.com/wfunc/monopoly/network"
	"github.com/wfunc/monopoly/services"
	"github.com/wfunc/monopoly/session"
)

const (
	heartbeatInterval   = 30 * time.Second
	defaultRecordsLimit = 20
)

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	games          *services.GameService
	sessionManager *session.Manager
	monitor        *monitor.Monitor
	allowedOrigins []string
	httpServer     *http.Server
	shutdownChan   chan struct{}
	shutdownOnce   sync.Once
}

func NewGameServer(cfg config.ServerConfig, games *services.GameService, sessions *session.Manager, mon *monitor.Monitor) *GameServer {
	s := &GameServer{
		addr:           cfg.HTTPAddress,
		games:          games,
		sessionManager: sessions,
		monitor:        mon,
		allowedOrigins: cfg.AllowedOrigins,
		shutdownChan:   make(chan struct{}),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler wires every route behind the CORS middleware.
func (s *GameServer) Handler() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/game", s.handleCreateGame).Methods(http.MethodPost)
	api.HandleFunc("/game/{id}", s.handleGetGame).Methods(http.MethodGet)
	api.HandleFunc("/game/{id}/action", s.handleGameAction).Methods(http.MethodPost)
	api.HandleFunc("/records", s.handleListRecords).Methods(http.MethodGet)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	if s.monitor != nil {
		r.Handle("/metrics", s.monitor.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/ws", s.handleWebSocket)

	return cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(r)
}

func (s *GameServer) Start() error {
	logger.Log.Infof("Game server listening on %s", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and closes every websocket.
func (s *GameServer) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() { close(s.shutdownChan) })
	for _, sess := range s.sessionManager.All() {
		sess.Close()
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// --- REST ---

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		logger.Log.Warnf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Error: msg})
}

// errorStatus maps service errors onto HTTP codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidGame):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrGameExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *GameServer) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req network.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := s.games.CreateGame(r.Context(), services.CreateGameRequest{
		GameID:      req.GameID,
		PlayerNames: req.PlayerNames,
		CPUCount:    req.CPUCount,
	})
	if err != nil {
		s.fail(w, "create game", err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *GameServer) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.GetGameState(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, "get game", err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *GameServer) handleGameAction(w http.ResponseWriter, r *http.Request) {
	var req network.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Action == "" {
		writeError(w, http.StatusBadRequest, "missing action")
		return
	}

	action := game.Action{Name: game.ActionName(req.Action), Payload: req.Payload}
	g, err := s.games.ExecuteAction(r.Context(), mux.Vars(r)["id"], action)
	if err != nil {
		s.fail(w, "execute action", err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *GameServer) handleListRecords(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecordsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.games.ListRecords(r.Context(), limit)
	if err != nil {
		s.fail(w, "list records", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *GameServer) fail(w http.ResponseWriter, op string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Log.Errorf("%s failed: %v", op, err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

// --- WebSocket ---

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	wsConn.SetHeartbeat(heartbeatInterval)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	if s.monitor != nil {
		s.monitor.IncOnlineSessions()
	}

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		if s.monitor != nil {
			s.monitor.DecOnlineSessions()
		}
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	sess.Touch()
	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.Send(network.MsgTypeHeartbeat, nil)
	case network.MsgTypeWatchGame:
		s.handleWatch(sess, packet)
	case network.MsgTypeLeaveGame:
		sess.Watch("", "")
	case network.MsgTypeCreateGame:
		s.handleWSCreate(sess, packet)
	case network.MsgTypeGameAction:
		s.handleWSAction(sess, packet)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
		sendError(sess, "unknown message type")
	}
}

func (s *GameServer) handleWatch(sess *session.Session, packet *network.Packet) {
	var req network.WatchRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil || req.GameID == "" {
		sendError(sess, "invalid watch request")
		return
	}

	g, err := s.games.GetGameState(context.Background(), req.GameID)
	if err != nil {
		sendError(sess, err.Error())
		return
	}
	sess.Watch(req.GameID, req.PlayerID)
	logger.Log.Infof("Session %s watching game %s", sess.GetID(), req.GameID)
	sendState(sess, g)
}

func (s *GameServer) handleWSCreate(sess *session.Session, packet *network.Packet) {
	var req network.CreateRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		sendError(sess, "invalid create request")
		return
	}

	g, err := s.games.CreateGame(context.Background(), services.CreateGameRequest{
		GameID:      req.GameID,
		PlayerNames: req.PlayerNames,
		CPUCount:    req.CPUCount,
	})
	if err != nil {
		sendError(sess, err.Error())
		return
	}
	sess.Watch(g.GameID, "")
	logger.Log.Infof("Session %s created game %s", sess.GetID(), g.GameID)
	sendState(sess, g)
}

func (s *GameServer) handleWSAction(sess *session.Session, packet *network.Packet) {
	var req network.ActionRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil || req.Action == "" {
		sendError(sess, "invalid action request")
		return
	}
	gameID := req.GameID
	if gameID == "" {
		gameID = sess.GameID()
	}
	if gameID == "" {
		logger.Log.Warnf("Session %s sent game action but is not watching a game", sess.GetID())
		sendError(sess, "not watching a game")
		return
	}

	logger.Log.Debugf("Session %s (player %q) sent %s to game %s", sess.GetID(), sess.PlayerID(), req.Action, gameID)
	action := game.Action{Name: game.ActionName(req.Action), Payload: req.Payload}
	g, err := s.games.ExecuteAction(context.Background(), gameID, action)
	if err != nil {
		logger.Log.Errorf("Error handling action in game %s: %v", gameID, err)
		sendError(sess, err.Error())
		return
	}
	// watchers already got the result as a sync broadcast
	if sess.GameID() != gameID {
		sendState(sess, g)
	}
}

func sendState(sess *session.Session, g *game.State) {
	data, err := json.Marshal(g)
	if err != nil {
		logger.Log.Errorf("Error marshalling game %s: %v", g.GameID, err)
		return
	}
	sess.Send(network.MsgTypeGameSync, data)
}

func sendError(sess *session.Session, msg string) {
	data, _ := json.Marshal(network.ErrorMessage{Error: msg})
	sess.Send(network.MsgTypeError, data)
}
