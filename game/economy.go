package game

import "github.com/wfunc/monopoly/board"

// rentFor computes what a visitor owes on an owned tile.
func (s *State) rentFor(idx int) int {
	tile := &s.Board[idx]
	switch tile.Kind {
	case board.KindProperty:
		p := tile.Property
		h := p.Houses
		if h >= len(p.Rent) {
			h = len(p.Rent) - 1
		}
		if h < 0 {
			return 0
		}
		return p.Rent[h]
	case board.KindStation:
		st := tile.Station
		n := s.Board.CountOwned(board.KindStation, st.OwnerID)
		if n > len(st.Rent) {
			n = len(st.Rent)
		}
		if n < 1 {
			return 0
		}
		return st.Rent[n-1]
	case board.KindUtility:
		mult := 4
		if s.Board.CountOwned(board.KindUtility, tile.Utility.OwnerID) >= 2 {
			mult = 10
		}
		return (s.Dice[0] + s.Dice[1]) * mult
	}
	return 0
}

// settleRent charges the current player for landing on idx. Unowned,
// self-owned and mortgaged tiles cost nothing.
func (e *Engine) settleRent(s *State, idx int) {
	deed := s.Board[idx].Deed()
	p := s.CurrentPlayer()
	if deed == nil || !deed.Owned() || deed.OwnerID == p.ID || deed.Mortgaged {
		return
	}
	owner := s.Player(deed.OwnerID)
	if owner == nil {
		e.log.Warnw("tile owned by unknown player", "game", s.GameID, "tile", idx, "owner", deed.OwnerID)
		return
	}
	rent := s.rentFor(idx)
	p.Money -= rent
	owner.Money += rent
	s.logf("%s paid $%d rent to %s.", p.Name, rent, owner.Name)
}

func (e *Engine) buyProperty(s *State) {
	p := s.CurrentPlayer()
	tile := &s.Board[p.Position]
	deed := tile.Deed()
	switch {
	case deed == nil:
		e.reject(s, "%s cannot be bought.", tile.Name)
	case deed.Owned():
		e.reject(s, "%s is already owned.", tile.Name)
	case p.Money < deed.Price:
		e.reject(s, "%s cannot afford %s.", p.Name, tile.Name)
	default:
		p.Money -= deed.Price
		deed.OwnerID = p.ID
		s.logf("%s bought %s for $%d.", p.Name, tile.Name, deed.Price)
	}
}

// manageProperty builds, sells, mortgages or unmortgages a tile the current
// player owns.
func (e *Engine) manageProperty(s *State, req ManagePayload) {
	p := s.CurrentPlayer()
	if !s.Board.Valid(req.TileIndex) {
		e.reject(s, "There is no tile %d.", req.TileIndex)
		return
	}
	tile := &s.Board[req.TileIndex]
	deed := tile.Deed()
	if deed == nil || deed.OwnerID != p.ID {
		e.reject(s, "%s does not own %s.", p.Name, tile.Name)
		return
	}

	switch req.Action {
	case ManageBuild:
		e.build(s, p, req.TileIndex)
	case ManageSell:
		e.sell(s, p, req.TileIndex)
	case ManageMortgage:
		if deed.Mortgaged {
			e.reject(s, "%s is already mortgaged.", tile.Name)
			return
		}
		if tile.Houses() > 0 {
			e.reject(s, "Sell the houses on %s before mortgaging it.", tile.Name)
			return
		}
		deed.Mortgaged = true
		p.Money += deed.MortgageValue()
		s.logf("%s mortgaged %s.", p.Name, tile.Name)
	case ManageUnmortgage:
		if !deed.Mortgaged {
			e.reject(s, "%s is not mortgaged.", tile.Name)
			return
		}
		cost := deed.UnmortgageCost()
		if p.Money < cost {
			e.reject(s, "%s cannot afford to unmortgage %s.", p.Name, tile.Name)
			return
		}
		deed.Mortgaged = false
		p.Money -= cost
		s.logf("%s unmortgaged %s.", p.Name, tile.Name)
	default:
		e.reject(s, "Unknown property action %q.", req.Action)
	}
}

// canDevelop checks the rules shared by building and selling: a colored
// property in a complete, unmortgaged-at-target group.
func (e *Engine) canDevelop(s *State, p *Player, idx int) (*board.Property, bool) {
	tile := &s.Board[idx]
	if tile.Kind != board.KindProperty {
		e.reject(s, "Houses can only be placed on colored properties.")
		return nil, false
	}
	prop := tile.Property
	if !s.Board.HasMonopoly(p.ID, prop.Color) {
		e.reject(s, "%s must own every %s property first.", p.Name, prop.Color)
		return nil, false
	}
	if prop.Mortgaged {
		e.reject(s, "%s is mortgaged.", tile.Name)
		return nil, false
	}
	return prop, true
}

func (e *Engine) build(s *State, p *Player, idx int) {
	prop, ok := e.canDevelop(s, p, idx)
	if !ok {
		return
	}
	name := s.Board[idx].Name
	if prop.Houses >= board.MaxHouses {
		e.reject(s, "%s already has a hotel.", name)
		return
	}
	if p.Money < prop.HouseCost {
		e.reject(s, "%s cannot afford a house on %s.", p.Name, name)
		return
	}
	if min, _ := s.Board.HouseRange(prop.Color); prop.Houses != min {
		e.reject(s, "Cannot build on %s. Must build evenly.", name)
		return
	}
	p.Money -= prop.HouseCost
	prop.Houses++
	s.logf("%s built a house on %s.", p.Name, name)
}

func (e *Engine) sell(s *State, p *Player, idx int) {
	prop, ok := e.canDevelop(s, p, idx)
	if !ok {
		return
	}
	name := s.Board[idx].Name
	if prop.Houses == 0 {
		e.reject(s, "There are no houses on %s.", name)
		return
	}
	if _, max := s.Board.HouseRange(prop.Color); prop.Houses != max {
		e.reject(s, "Cannot sell from %s. Must sell evenly.", name)
		return
	}
	prop.Houses--
	p.Money += prop.HouseCost / 2
	s.logf("%s sold a house on %s.", p.Name, name)
}
