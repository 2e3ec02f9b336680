package game

import (
	"fmt"
	"strings"
)

// contenders returns the players still holding cards this hand.
func (g *Game) contenders() []*Player {
	var out []*Player
	for _, p := range g.players {
		if p.Status != StatusOut && p.Status != StatusFolded {
			out = append(out, p)
		}
	}
	return out
}

// actors returns the contenders who can still take voluntary actions.
func (g *Game) actors() []*Player {
	var out []*Player
	for _, p := range g.players {
		if p.Status == StatusActive || p.Status == StatusWaiting {
			out = append(out, p)
		}
	}
	return out
}

// nextIndexWhere returns the index of the next player clockwise from `from`
// satisfying ok, or -1 if none does. from may be -1 to start at seat 0.
func (g *Game) nextIndexWhere(from int, ok func(*Player) bool) int {
	n := len(g.players)
	idx := from
	for i := 0; i < n; i++ {
		idx = (idx + 1) % n
		if ok(g.players[idx]) {
			return idx
		}
	}
	return -1
}

// moveToNextPlayer advances the turn after an accepted action, ending the
// hand or the betting round when appropriate. Callers hold the lock.
func (g *Game) moveToNextPlayer() {
	inHand := g.contenders()
	if len(inHand) <= 1 {
		g.log.add("Only one player remaining in the hand.")
		g.awardToSoleSurvivor(inHand)
		return
	}

	if g.bettingRoundOver() {
		g.endBettingRound()
		return
	}

	idx := g.nextIndexWhere(g.currentIdx, func(p *Player) bool {
		return p.Status == StatusActive || p.Status == StatusWaiting
	})
	if idx == -1 {
		g.endBettingRound()
		return
	}

	g.currentIdx = idx
	p := g.players[idx]
	if p.Status == StatusWaiting {
		p.Status = StatusActive
	}
	g.log.add(fmt.Sprintf("Turn: %s", p.Name))
	g.promptCurrent()
}

// bettingRoundOver reports whether the current betting round is complete:
// every player who can act has acted and matched the current bet. Preflop the
// big blind keeps the option to act even when all bets are matched.
func (g *Game) bettingRoundOver() bool {
	actors := g.actors()
	if len(actors) < 2 {
		return true
	}

	for _, p := range actors {
		if !p.HasActed || p.RoundBet != g.currentBet {
			return false
		}
	}

	if g.phase == PhasePreflop && !g.bbActed {
		for _, p := range actors {
			if p.ID == g.bbID {
				return false
			}
		}
	}

	return true
}

// endBettingRound collects the round and moves to the next street, runs the
// board out when too few players can still bet, or goes to showdown.
// Callers hold the lock.
func (g *Game) endBettingRound() {
	g.log.add(fmt.Sprintf("--- Betting round over (%s). Pot: %d ---", g.phase, g.pot.Total()))

	g.currentBet = 0
	g.minRaise = g.cfg.Game.BigBlind
	g.lastAggressorID = -1
	for _, p := range g.players {
		p.CurrentBet = 0
		p.HasActed = false
		p.LastAggressor = false
	}

	var next Phase
	switch g.phase {
	case PhasePreflop:
		next = PhaseFlop
	case PhaseFlop:
		next = PhaseTurn
	case PhaseTurn:
		next = PhaseRiver
	case PhaseRiver:
		next = PhaseShowdown
	default:
		next = PhaseIdle
	}

	if next == PhaseShowdown {
		g.showdown()
		return
	}

	if len(g.actors()) >= 2 {
		g.dealCommunity(next, true)
		return
	}

	// Remaining players are all-in (or only one can still bet): run the
	// board out with no further betting.
	g.log.add("Players all-in, running out the board...")
	for g.phase != PhaseRiver {
		var street Phase
		switch g.phase {
		case PhasePreflop:
			street = PhaseFlop
		case PhaseFlop:
			street = PhaseTurn
		case PhaseTurn:
			street = PhaseRiver
		default:
			g.showdown()
			return
		}
		if !g.dealCommunity(street, false) {
			return
		}
	}
	g.showdown()
}

// dealCommunity burns a card and deals the given street, optionally opening
// a new betting round. It returns false when the hand ended instead.
// Callers hold the lock.
func (g *Game) dealCommunity(phase Phase, startBetting bool) bool {
	if inHand := g.contenders(); len(inHand) <= 1 {
		g.awardToSoleSurvivor(inHand)
		return false
	}

	if g.deck.Remaining() > 0 {
		g.deck.Draw() // burn
	}

	var cardsToDeal int
	switch phase {
	case PhaseFlop:
		cardsToDeal = 3
	case PhaseTurn, PhaseRiver:
		cardsToDeal = 1
	default:
		g.logger.Error("cannot deal community cards", "phase", phase)
		g.showdown()
		return false
	}

	g.phase = phase
	for i := 0; i < cardsToDeal; i++ {
		card, err := g.deck.Draw()
		if err != nil {
			// A short deck cannot happen with 4 seats; if it does, settle
			// the hand on whatever board exists instead of crashing.
			g.log.add(fmt.Sprintf("Deck exhausted, %s incomplete.", phase))
			g.logger.Error("deck exhausted dealing street", "phase", phase, "err", err)
			g.showdown()
			return false
		}
		g.community = append(g.community, card)
	}
	g.log.add(fmt.Sprintf("--- %s --- Community cards: %s", strings.ToUpper(phase.String()), cardStrings(g.community)))

	if startBetting {
		for _, p := range g.players {
			p.RoundBet = 0
			p.HasActed = false
			p.LastAggressor = false
		}
		g.lastAggressorID = -1

		idx := g.nextIndexWhere(g.dealerIdx, func(p *Player) bool {
			return p.Status == StatusActive || p.Status == StatusWaiting
		})
		if idx == -1 {
			g.showdown()
			return false
		}
		g.currentIdx = idx
		p := g.players[idx]
		if p.Status == StatusWaiting {
			p.Status = StatusActive
		}
		g.log.add(fmt.Sprintf("Turn: %s", p.Name))
		g.promptCurrent()
	}

	return true
}
