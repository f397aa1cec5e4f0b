// cards/cards.go
package cards

import (
	"fmt"
	"os"

	"github.com/wfunc/monopoly/board"
	"gopkg.in/yaml.v3"
)

// Effect is what a card does when drawn.
type Effect string

const (
	EffectMove         Effect = "move"            // relative move by Amount
	EffectMoney        Effect = "money"           // cash delta of Amount
	EffectGoTo         Effect = "goto"            // teleport to Position, no GO bonus
	EffectJail         Effect = "jail"            // straight to jail
	EffectGetOutOfJail Effect = "get_out_of_jail" // keep a get-out-of-jail-free card
)

// DeckKind names the two event decks.
type DeckKind string

const (
	Chance         DeckKind = "chance"
	CommunityChest DeckKind = "community-chest"
)

type Card struct {
	Text     string   `json:"text" yaml:"text"`
	Effect   Effect   `json:"type" yaml:"type"`
	Amount   int      `json:"amount,omitempty" yaml:"amount,omitempty"`
	Position int      `json:"position,omitempty" yaml:"position,omitempty"`
	Deck     DeckKind `json:"cardType,omitempty" yaml:"-"`
}

func (c Card) validate() error {
	switch c.Effect {
	case EffectMove, EffectMoney, EffectJail, EffectGetOutOfJail:
		return nil
	case EffectGoTo:
		if c.Position < 0 || c.Position >= board.Size {
			return fmt.Errorf("card %q: position %d off the board", c.Text, c.Position)
		}
		return nil
	}
	return fmt.Errorf("card %q: unknown effect %q", c.Text, c.Effect)
}

// Deck is a cyclic sequence of cards.
type Deck []Card

// Draw removes the front card and re-appends it at the back, so the deck
// never changes size. ok is false only for an empty deck.
func (d *Deck) Draw() (card Card, ok bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	card = (*d)[0]
	*d = append((*d)[1:], card)
	return card, true
}

// Clone returns an independent copy of the deck.
func (d Deck) Clone() Deck {
	if d == nil {
		return nil
	}
	return append(Deck(nil), d...)
}

// Shuffler is satisfied by *rand.Rand.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Shuffled returns a shuffled copy of cards.
func Shuffled(cards []Card, r Shuffler) Deck {
	d := append(Deck(nil), cards...)
	r.Shuffle(len(d), func(i, j int) { d[i], d[j] = d[j], d[i] })
	return d
}

type deckFile struct {
	Chance         []Card `yaml:"chance"`
	CommunityChest []Card `yaml:"community_chest"`
}

// LoadDecks reads both decks from a YAML file. A deck left empty in the file
// falls back to the built-in one.
func LoadDecks(path string) (chance, communityChest []Card, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var f deckFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parse deck file %s: %w", path, err)
	}
	for _, c := range append(append([]Card(nil), f.Chance...), f.CommunityChest...) {
		if err := c.validate(); err != nil {
			return nil, nil, err
		}
	}
	chance, communityChest = f.Chance, f.CommunityChest
	if len(chance) == 0 {
		chance = DefaultChance()
	}
	if len(communityChest) == 0 {
		communityChest = DefaultCommunityChest()
	}
	return chance, communityChest, nil
}
