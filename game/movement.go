package game

import (
	"github.com/wfunc/monopoly/board"
	"github.com/wfunc/monopoly/cards"
)

// rollDice resolves jail first, then rolls two dice and moves.
func (e *Engine) rollDice(s *State) {
	p := s.CurrentPlayer()
	if s.HasRolled() {
		e.reject(s, "%s has already rolled this turn.", p.Name)
		return
	}

	if p.InJail {
		switch {
		case p.GetOutOfJailFreeCards > 0:
			p.GetOutOfJailFreeCards--
			releaseFromJail(p)
			s.logf("%s used a Get Out of Jail Free card.", p.Name)
		case p.Money >= e.rules.Bail:
			p.Money -= e.rules.Bail
			releaseFromJail(p)
			s.logf("%s paid $%d to get out of jail.", p.Name, e.rules.Bail)
		default:
			p.JailTurns++
			s.logf("%s is stuck in jail!", p.Name)
			e.endTurn(s)
			return
		}
	}

	d1, d2 := e.rollDie(), e.rollDie()
	s.Dice = [2]int{d1, d2}
	s.logf("%s rolled a %d and a %d.", p.Name, d1, d2)
	e.movePlayer(s, d1+d2, false)
}

// movePlayer moves the current player by amount, or to amount when absolute.
// Only a forward relative move that wraps the board pays the GO bonus.
func (e *Engine) movePlayer(s *State, amount int, absolute bool) {
	p := s.CurrentPlayer()
	size := len(s.Board)

	var next int
	if absolute {
		if !s.Board.Valid(amount) {
			e.log.Warnw("teleport target off the board", "game", s.GameID, "target", amount)
			return
		}
		next = amount
	} else {
		next = ((p.Position+amount)%size + size) % size
		if amount > 0 && next < p.Position {
			p.Money += e.rules.GoBonus
			s.logf("%s passed GO and collected $%d.", p.Name, e.rules.GoBonus)
		}
	}

	p.Position = next
	s.logf("%s moved to %s.", p.Name, s.Board[next].Name)
	e.land(s)
}

// land dispatches on the kind of tile under the current player.
func (e *Engine) land(s *State) {
	p := s.CurrentPlayer()
	tile := &s.Board[p.Position]

	switch tile.Kind {
	case board.KindProperty, board.KindStation, board.KindUtility:
		e.settleRent(s, p.Position)
	case board.KindTax:
		p.Money -= tile.Tax.Amount
		s.logf("%s paid $%d in %s.", p.Name, tile.Tax.Amount, tile.Name)
	case board.KindSpecial:
		if tile.Special == board.SpecialGoToJail {
			sendToJail(p)
			s.logf("%s went to jail!", p.Name)
		}
	case board.KindChance:
		e.drawCard(s, cards.Chance)
	case board.KindCommunityChest:
		e.drawCard(s, cards.CommunityChest)
	}
}

func (e *Engine) drawCard(s *State, kind cards.DeckKind) {
	deck := &s.ChanceDeck
	label := "Chance"
	if kind == cards.CommunityChest {
		deck = &s.CommunityChestDeck
		label = "Community Chest"
	}

	card, ok := deck.Draw()
	if !ok {
		return
	}
	card.Deck = kind
	s.LastCard = &card

	p := s.CurrentPlayer()
	s.logf("%s drew a %s card: %s", p.Name, label, card.Text)

	switch card.Effect {
	case cards.EffectMoney:
		p.Money += card.Amount
		if card.Amount >= 0 {
			s.logf("%s collected $%d.", p.Name, card.Amount)
		} else {
			s.logf("%s paid $%d.", p.Name, -card.Amount)
		}
	case cards.EffectMove:
		e.movePlayer(s, card.Amount, false)
	case cards.EffectGoTo:
		e.movePlayer(s, card.Position, true)
	case cards.EffectJail:
		sendToJail(p)
		s.logf("%s went to jail!", p.Name)
	case cards.EffectGetOutOfJail:
		p.GetOutOfJailFreeCards++
	default:
		e.log.Warnw("unknown card effect", "game", s.GameID, "effect", card.Effect)
	}
}

func sendToJail(p *Player) {
	p.Position = board.JailPosition
	p.InJail = true
	p.JailTurns = 0
}

func releaseFromJail(p *Player) {
	p.InJail = false
	p.JailTurns = 0
}
