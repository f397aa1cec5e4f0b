package game

// endTurnAction is the player-facing endTurn: the current player must have
// rolled first.
func (e *Engine) endTurnAction(s *State) {
	if !s.HasRolled() {
		e.reject(s, "%s must roll before ending the turn.", s.CurrentPlayer().Name)
		return
	}
	e.endTurn(s)
}

// endTurn passes the turn to the next solvent player and clears the dice.
func (e *Engine) endTurn(s *State) {
	n := len(s.Players)
	if n == 0 {
		return
	}
	next := s.CurrentPlayerIndex
	for i := 0; i < n; i++ {
		next = (next + 1) % n
		if !s.Players[next].Bankrupt() {
			break
		}
	}
	s.CurrentPlayerIndex = next
	s.Dice = [2]int{}
	s.logf("It's now %s's turn.", s.Players[next].Name)
}

// settle runs after every resolver: bankruptcies, then the win check, then
// moves the turn off a player who just went bankrupt.
func (e *Engine) settle(s *State) {
	e.checkBankruptcy(s)
	e.checkForWinner(s)
	if s.Status == StatusPlaying {
		if p := s.CurrentPlayer(); p != nil && p.Bankrupt() {
			e.endTurn(s)
		}
	}
}

// checkBankruptcy releases the tiles of every newly bankrupt player. Each
// player is processed once.
func (e *Engine) checkBankruptcy(s *State) {
	for i := range s.Players {
		p := &s.Players[i]
		if !p.Bankrupt() || s.bankruptcyProcessed(p.ID) {
			continue
		}
		s.BankruptPlayerIDs = append(s.BankruptPlayerIDs, p.ID)
		released := s.Board.Release(p.ID)
		s.logf("%s has gone bankrupt!", p.Name)
		if t := s.ActiveTrade; t != nil && (t.FromPlayerID == p.ID || t.ToPlayerID == p.ID) {
			s.ActiveTrade = nil
			s.logf("The pending trade with %s was cancelled.", p.Name)
		}
		e.log.Infow("player bankrupt", "game", s.GameID, "player", p.ID, "released", released)
	}
}

// checkForWinner ends the game once a single solvent player remains.
func (e *Engine) checkForWinner(s *State) {
	if s.Status != StatusPlaying || len(s.Players) < 2 {
		return
	}
	solvent := s.Solvent()
	if len(solvent) != 1 {
		return
	}
	w := *solvent[0]
	s.Winner = &w
	s.Status = StatusEnded
	s.logf("%s has won the game!", w.Name)
	e.log.Infow("game ended", "game", s.GameID, "winner", w.ID)
}
