package game

import "github.com/wfunc/monopoly/board"

// proposeTrade records offer as the single pending trade, replacing any
// earlier one.
func (e *Engine) proposeTrade(s *State, offer TradeOffer) {
	from, to := s.Player(offer.FromPlayerID), s.Player(offer.ToPlayerID)
	switch {
	case from == nil || to == nil:
		e.reject(s, "Trade proposal names an unknown player.")
		return
	case from.ID == to.ID:
		e.reject(s, "%s cannot trade with themselves.", from.Name)
		return
	case from.Bankrupt() || to.Bankrupt():
		e.reject(s, "Bankrupt players cannot trade.")
		return
	case offer.MoneyOffered < 0 || offer.MoneyRequested < 0:
		e.reject(s, "Trade amounts cannot be negative.")
		return
	}
	if color, ok := developedGroup(s.Board, offer); ok {
		e.reject(s, "Sell all buildings in the %s group before trading its properties.", color)
		return
	}
	if s.ActiveTrade != nil {
		e.log.Debugw("replacing pending trade", "game", s.GameID,
			"from", s.ActiveTrade.FromPlayerID, "to", s.ActiveTrade.ToPlayerID)
	}
	s.ActiveTrade = offer.clone()
	s.logf("%s proposed a trade to %s.", from.Name, to.Name)
}

// respondToTrade settles or discards the pending trade. Tiles the giving side
// no longer owns are skipped; money moves even into the negative.
func (e *Engine) respondToTrade(s *State, accepted bool) {
	t := s.ActiveTrade
	if t == nil {
		e.reject(s, "There is no trade to respond to.")
		return
	}
	s.ActiveTrade = nil

	from, to := s.Player(t.FromPlayerID), s.Player(t.ToPlayerID)
	if !accepted || from == nil || to == nil {
		s.logf("Trade was rejected.")
		return
	}
	// houses may have gone up since the proposal
	if color, ok := developedGroup(s.Board, *t); ok {
		e.reject(s, "Trade cancelled: the %s group has buildings.", color)
		return
	}

	from.Money += t.MoneyRequested - t.MoneyOffered
	to.Money += t.MoneyOffered - t.MoneyRequested
	transferTiles(s.Board, t.PropertiesOffered, from.ID, to.ID)
	transferTiles(s.Board, t.PropertiesRequested, to.ID, from.ID)
	s.logf("Trade between %s and %s was accepted.", from.Name, to.Name)
}

func transferTiles(b board.Board, tiles []int, fromID, toID string) {
	for _, idx := range tiles {
		if !b.Valid(idx) {
			continue
		}
		if d := b[idx].Deed(); d != nil && d.OwnerID == fromID {
			d.OwnerID = toID
		}
	}
}

// developedGroup returns the color of the first traded property whose group
// has houses. Houses stay level only while a group never splits.
func developedGroup(b board.Board, offer TradeOffer) (string, bool) {
	for _, tiles := range [][]int{offer.PropertiesOffered, offer.PropertiesRequested} {
		for _, idx := range tiles {
			if !b.Valid(idx) || b[idx].Kind != board.KindProperty {
				continue
			}
			if color := b[idx].Property.Color; b.Developed(color) {
				return color, true
			}
		}
	}
	return "", false
}
