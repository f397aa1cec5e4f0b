// game/engine.go
package game

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wfunc/monopoly/board"
	"github.com/wfunc/monopoly/cards"
)

// Engine applies actions to game snapshots. It keeps no per-game state, so
// one Engine serves every game; callers must not apply two actions to the
// same State concurrently.
type Engine struct {
	rules          Rules
	rng            Source
	chance         []cards.Card
	communityChest []cards.Card
	now            func() time.Time
	log            *zap.SugaredLogger
}

type Option func(*Engine)

func WithRules(r Rules) Option {
	return func(e *Engine) { e.rules = r }
}

func WithSource(src Source) Option {
	return func(e *Engine) { e.rng = src }
}

// WithDecks replaces the card decks dealt to new games.
func WithDecks(chance, communityChest []cards.Card) Option {
	return func(e *Engine) {
		if len(chance) > 0 {
			e.chance = chance
		}
		if len(communityChest) > 0 {
			e.communityChest = communityChest
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = log }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rules:          DefaultRules(),
		chance:         cards.DefaultChance(),
		communityChest: cards.DefaultCommunityChest(),
		now:            time.Now,
		log:            zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewSource(time.Now().UnixNano())
	}
	return e
}

func (e *Engine) Rules() Rules {
	return e.rules
}

// NewGame seats humans first, then CPUs, resets the board and shuffles both
// decks. Player count policy is left to the caller.
func (e *Engine) NewGame(gameID string, playerNames []string, cpuCount int) *State {
	players := make([]Player, 0, len(playerNames)+cpuCount)
	for i, name := range playerNames {
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		players = append(players, Player{ID: fmt.Sprintf("%s-%d", gameID, i), Name: name})
	}
	for i := 0; i < cpuCount; i++ {
		players = append(players, Player{
			ID:    fmt.Sprintf("%s-cpu-%d", gameID, i),
			Name:  fmt.Sprintf("CPU %d", i+1),
			IsCPU: true,
		})
	}
	for i := range players {
		players[i].Money = e.rules.StartingMoney
		players[i].Color = PlayerColors[i%len(PlayerColors)]
	}

	s := &State{
		GameID:             gameID,
		Players:            players,
		Board:              board.Classic(),
		Status:             StatusPlaying,
		ChanceDeck:         cards.Shuffled(e.chance, e.rng),
		CommunityChestDeck: cards.Shuffled(e.communityChest, e.rng),
		GameLog:            []string{fmt.Sprintf("Game started with %d players!", len(players))},
		BankruptPlayerIDs:  []string{},
	}
	e.stamp(s)
	return s
}

// Apply runs one top-level action followed by bankruptcy and win checks and
// any CPU turns that follow. The state is mutated in place and returned.
// Illegal actions only append to the game log. A finished game is returned
// untouched.
func (e *Engine) Apply(s *State, a Action) *State {
	switch s.Status {
	case StatusEnded:
		return s
	case StatusLobby:
		e.reject(s, "The game has not started yet.")
		e.stamp(s)
		return s
	case StatusPlaying:
	}
	if s.CurrentPlayer() == nil {
		e.log.Warnw("game has no current player", "game", s.GameID, "index", s.CurrentPlayerIndex)
		return s
	}

	s.LastCard = nil
	switch a.Name {
	case ActionRollDice:
		e.rollDice(s)
	case ActionBuyProperty:
		e.buyProperty(s)
	case ActionManageProperty:
		var p ManagePayload
		if err := decode(a.Payload, &p); err != nil {
			e.reject(s, "Invalid property management request.")
			break
		}
		e.manageProperty(s, p)
	case ActionProposeTrade:
		var offer TradeOffer
		if err := decode(a.Payload, &offer); err != nil {
			e.reject(s, "Invalid trade proposal.")
			break
		}
		e.proposeTrade(s, offer)
	case ActionRespondToTrade:
		var r RespondPayload
		if err := decode(a.Payload, &r); err != nil {
			e.reject(s, "Invalid trade response.")
			break
		}
		e.respondToTrade(s, r.Accepted)
	case ActionEndTurn:
		e.endTurnAction(s)
	default:
		e.log.Debugw("ignoring unknown action", "game", s.GameID, "action", a.Name)
	}

	e.settle(s)
	e.runCPUTurns(s)
	e.stamp(s)
	return s
}

func decode(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("empty payload")
	}
	return json.Unmarshal(raw, v)
}

// reject records a policy violation. The state is otherwise left alone.
func (e *Engine) reject(s *State, format string, args ...interface{}) {
	s.logf(format, args...)
	e.log.Debugw("action rejected", "game", s.GameID, "reason", s.GameLog[len(s.GameLog)-1])
}

// stamp advances LastUpdate, strictly increasing even if the clock is not.
func (e *Engine) stamp(s *State) {
	now := e.now().UnixMilli()
	if now <= s.LastUpdate {
		now = s.LastUpdate + 1
	}
	s.LastUpdate = now
}

func (e *Engine) rollDie() int {
	return e.rng.Intn(6) + 1
}
