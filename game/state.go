// game/state.go
package game

import (
	"fmt"

	"github.com/wfunc/monopoly/board"
	"github.com/wfunc/monopoly/cards"
)

// Status is the lifecycle stage of a game.
type Status string

const (
	StatusLobby   Status = "lobby"
	StatusPlaying Status = "playing"
	StatusEnded   Status = "ended"
)

// PlayerColors are handed out by seat.
var PlayerColors = []string{
	"#FF00FF", "#00FFFF", "#FFFF00", "#39FF14",
	"#FF5F1F", "#BC13FE", "#FF3131", "#1F51FF",
}

type Player struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Money                 int    `json:"money"`
	Position              int    `json:"position"`
	Color                 string `json:"color"`
	InJail                bool   `json:"isInJail"`
	JailTurns             int    `json:"jailTurns"`
	GetOutOfJailFreeCards int    `json:"getOutOfJailFreeCards"`
	IsCPU                 bool   `json:"isCpu"`
}

// Bankrupt reports the negative-money marker.
func (p *Player) Bankrupt() bool {
	return p.Money < 0
}

// TradeOffer is a pending asset swap between two players. Tile indices
// address the board.
type TradeOffer struct {
	FromPlayerID        string `json:"fromPlayerId"`
	ToPlayerID          string `json:"toPlayerId"`
	PropertiesOffered   []int  `json:"propertiesOffered"`
	PropertiesRequested []int  `json:"propertiesRequested"`
	MoneyOffered        int    `json:"moneyOffered"`
	MoneyRequested      int    `json:"moneyRequested"`
}

func (t *TradeOffer) clone() *TradeOffer {
	if t == nil {
		return nil
	}
	c := *t
	c.PropertiesOffered = append([]int(nil), t.PropertiesOffered...)
	c.PropertiesRequested = append([]int(nil), t.PropertiesRequested...)
	return &c
}

// State is the whole authoritative snapshot of one game. It is owned by a
// single writer at a time and is persisted as-is.
type State struct {
	GameID             string      `json:"gameId"`
	Players            []Player    `json:"players"`
	Board              board.Board `json:"board"`
	CurrentPlayerIndex int         `json:"currentPlayerIndex"`
	Dice               [2]int      `json:"dice"`
	Status             Status      `json:"gameStatus"`
	ChanceDeck         cards.Deck  `json:"chanceDeck"`
	CommunityChestDeck cards.Deck  `json:"communityChestDeck"`
	ActiveTrade        *TradeOffer `json:"activeTrade"`
	GameLog            []string    `json:"gameLog"`
	LastCard           *cards.Card `json:"lastCard,omitempty"`
	Winner             *Player     `json:"winner,omitempty"`
	BankruptPlayerIDs  []string    `json:"bankruptPlayerIds"`
	LastUpdate         int64       `json:"lastUpdate"`
}

// Clone returns a deep copy of the snapshot.
func (s *State) Clone() *State {
	c := *s
	c.Players = append([]Player(nil), s.Players...)
	c.Board = s.Board.Clone()
	c.ChanceDeck = s.ChanceDeck.Clone()
	c.CommunityChestDeck = s.CommunityChestDeck.Clone()
	c.ActiveTrade = s.ActiveTrade.clone()
	c.GameLog = append([]string(nil), s.GameLog...)
	c.BankruptPlayerIDs = append([]string(nil), s.BankruptPlayerIDs...)
	if s.LastCard != nil {
		card := *s.LastCard
		c.LastCard = &card
	}
	if s.Winner != nil {
		w := *s.Winner
		c.Winner = &w
	}
	return &c
}

// CurrentPlayer returns the player on turn.
func (s *State) CurrentPlayer() *Player {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return nil
	}
	return &s.Players[s.CurrentPlayerIndex]
}

// Player looks a player up by id.
func (s *State) Player(id string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// Solvent returns the players with non-negative money.
func (s *State) Solvent() []*Player {
	var out []*Player
	for i := range s.Players {
		if !s.Players[i].Bankrupt() {
			out = append(out, &s.Players[i])
		}
	}
	return out
}

// HasRolled reports whether the current player already rolled this turn.
func (s *State) HasRolled() bool {
	return s.Dice != [2]int{0, 0}
}

func (s *State) logf(format string, args ...interface{}) {
	s.GameLog = append(s.GameLog, fmt.Sprintf(format, args...))
}

func (s *State) bankruptcyProcessed(id string) bool {
	for _, b := range s.BankruptPlayerIDs {
		if b == id {
			return true
		}
	}
	return false
}
