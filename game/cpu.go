package game

import "github.com/wfunc/monopoly/board"

// runCPUTurns plays CPU seats until a human is on turn or the game ends.
// One pass per seat at most, so a table of CPUs hands control back to the
// caller after each full round.
func (e *Engine) runCPUTurns(s *State) {
	for i := 0; i < len(s.Players); i++ {
		p := s.CurrentPlayer()
		if s.Status != StatusPlaying || p == nil || !p.IsCPU || p.Bankrupt() {
			return
		}
		e.cpuTurn(s)
		e.settle(s)
	}
}

// cpuTurn rolls, buys when comfortably affordable, builds evenly on complete
// groups, then ends the turn.
func (e *Engine) cpuTurn(s *State) {
	seat := s.CurrentPlayerIndex
	p := s.CurrentPlayer()
	s.logf("%s is thinking...", p.Name)

	if !s.HasRolled() {
		e.rollDice(s)
	}
	// stuck in jail: rollDice already passed the turn
	if s.CurrentPlayerIndex != seat {
		return
	}
	p = s.CurrentPlayer()

	if !p.InJail {
		if d := s.Board[p.Position].Deed(); d != nil && !d.Owned() && p.Money > d.Price+e.rules.CPUBuyReserve {
			e.buyProperty(s)
		}
	}

	for i := range s.Board {
		tile := &s.Board[i]
		if tile.Kind != board.KindProperty {
			continue
		}
		prop := tile.Property
		if prop.OwnerID != p.ID || prop.Mortgaged || prop.Houses >= board.MaxHouses {
			continue
		}
		if p.Money <= prop.HouseCost+e.rules.CPUBuildReserve || !s.Board.HasMonopoly(p.ID, prop.Color) {
			continue
		}
		if min, _ := s.Board.HouseRange(prop.Color); prop.Houses != min {
			continue
		}
		e.build(s, p, i)
	}

	e.endTurn(s)
}
