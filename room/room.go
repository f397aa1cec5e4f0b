// room/room.go
package room

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/monopoly/game"
	"github.com/wfunc/monopoly/state"
)

// Room is the single writer of one game. Every action for the game runs
// under its lock, so actions never interleave.
type Room struct {
	ID          string
	CreatedAt   time.Time
	engine      *game.Engine
	game        *game.State
	machine     *state.GameMachine
	broadcaster Broadcaster
	lastActive  time.Time
	evicted     bool
	mutex       sync.Mutex
}

// NewRoom wraps a snapshot. The room keeps its own copy.
func NewRoom(g *game.State, engine *game.Engine, broadcaster Broadcaster) *Room {
	now := time.Now()
	r := &Room{
		ID:          g.GameID,
		CreatedAt:   now,
		engine:      engine,
		game:        g.Clone(),
		broadcaster: broadcaster,
		lastActive:  now,
	}
	r.machine = state.NewGameMachine(r)
	return r
}

// --- 实现 state.GameContext 接口 ---

func (r *Room) GetID() string {
	return r.ID
}

func (r *Room) Engine() *game.Engine {
	return r.engine
}

func (r *Room) Current() *game.State {
	return r.game
}

func (r *Room) ChangeState(newState state.State) error {
	return r.machine.ChangeState(newState)
}

func (r *Room) Broadcast(msgID uint16, data []byte) error {
	if r.broadcaster == nil {
		return nil
	}
	return r.broadcaster.BroadcastToGame(r.ID, msgID, data)
}

// --- 房间核心逻辑 ---

// CommitFunc persists next before it replaces prev. Both are read-only.
type CommitFunc func(prev, next *game.State) error

// Execute applies one action to a working copy of the snapshot. commit runs
// before the copy becomes current; if it fails the room keeps the previous
// snapshot. finished is true only for the action that ended the game.
// An evicted room returns ErrRoomEvicted and the caller must look the game
// up again.
func (r *Room) Execute(a game.Action, commit CommitFunc) (next *game.State, finished bool, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.evicted {
		return nil, false, ErrRoomEvicted
	}
	r.lastActive = time.Now()

	current := r.machine.GetCurrentState()
	if current.GetID() == state.EndedID {
		return r.game.Clone(), false, nil
	}

	work, err := current.HandleAction(r.game.Clone(), a)
	if err != nil {
		return nil, false, err
	}
	if commit != nil {
		if err := commit(r.game, work); err != nil {
			return nil, false, err
		}
	}
	r.game = work

	if work.Status == game.StatusEnded {
		if err := r.machine.Finish(); err != nil {
			return nil, false, err
		}
		finished = true
	}
	return work.Clone(), finished, nil
}

// Snapshot returns a copy of the committed state.
func (r *Room) Snapshot() *game.State {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.game.Clone()
}

// StateID names the lifecycle state, playing or ended.
func (r *Room) StateID() string {
	return r.machine.GetCurrentState().GetID()
}

func (r *Room) LastActive() time.Time {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.lastActive
}

// --- 房间管理器 ---

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomEvicted  = errors.New("room evicted")
)

// Manager 管理所有房间
type Manager struct {
	rooms map[string]*Room
	mutex sync.RWMutex
}

// NewRoomManager 创建一个新的房间管理器
func NewRoomManager() *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom registers a room for g. If a room for the same game already
// exists it is returned instead and created is false.
func (m *Manager) CreateRoom(g *game.State, engine *game.Engine, broadcaster Broadcaster) (room *Room, created bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if existing, ok := m.rooms[g.GameID]; ok {
		return existing, false
	}
	room = NewRoom(g, engine, broadcaster)
	m.rooms[g.GameID] = room
	return room, true
}

// RemoveRoom unregisters and retires the room for id.
func (m *Manager) RemoveRoom(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if r, ok := m.rooms[id]; ok {
		r.mutex.Lock()
		r.evicted = true
		r.mutex.Unlock()
		delete(m.rooms, id)
	}
}

func (m *Manager) GetRoom(id string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	room, exists := m.rooms[id]
	return room, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// EvictIdle drops rooms with no action for ttl and returns their ids. The
// snapshots stay in storage and are reloaded on the next action.
func (m *Manager) EvictIdle(ttl time.Duration) []string {
	cutoff := time.Now().Add(-ttl)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	var evicted []string
	for id, room := range m.rooms {
		if room.evictIfIdle(cutoff) {
			delete(m.rooms, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

// evictIfIdle retires the room when its last action is before cutoff. It
// waits for a running action, so a retired room never commits again.
func (r *Room) evictIfIdle(cutoff time.Time) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if !r.lastActive.Before(cutoff) {
		return false
	}
	r.evicted = true
	return true
}
