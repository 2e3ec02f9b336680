package game

import (
	"fmt"
	"strings"
)

// Action is a betting action
type Action int

const (
	ActionFold Action = iota
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionBet:
		return "bet"
	case ActionRaise:
		return "raise"
	default:
		return "unknown"
	}
}

// ParseAction parses an action name such as "fold" or "raise".
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold":
		return ActionFold, nil
	case "check":
		return ActionCheck, nil
	case "call":
		return ActionCall, nil
	case "bet":
		return ActionBet, nil
	case "raise":
		return ActionRaise, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// SubmitAction applies an action for the given seat. It returns false when
// the action was rejected, in which case the table state is unchanged.
func (g *Game) SubmitAction(playerID int, action Action, amount int) bool {
	g.mu.Lock()
	ok := g.handleAction(playerID, action, amount)
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
	return ok
}

// SubmitHumanAction applies an action for the human seat.
func (g *Game) SubmitHumanAction(action Action, amount int) bool {
	for _, p := range g.players {
		if p.Human {
			return g.SubmitAction(p.ID, action, amount)
		}
	}
	return false
}

// handleAction validates and applies a single action. Callers hold the lock.
//
// Amount semantics follow the table rules: for a bet it is the chips to
// commit, for a raise it is the desired round total. A raise therefore costs
// amountToCall plus the raise increment on top of what the seat already has
// in. Bets and raises below the minimum are allowed only when they put the
// seat all-in.
func (g *Game) handleAction(playerID int, action Action, amount int) bool {
	var player *Player
	for _, p := range g.players {
		if p.ID == playerID {
			player = p
			break
		}
	}

	var current *Player
	if g.currentIdx >= 0 && g.currentIdx < len(g.players) {
		current = g.players[g.currentIdx]
	}

	if player == nil || current == nil || player.ID != current.ID {
		name := "unknown"
		if player != nil {
			name = player.Name
		}
		g.log.add(fmt.Sprintf("Invalid action: it is not %s's turn.", name))
		g.logger.Debug("action rejected", "player_id", playerID, "reason", ErrIllegalTurn)
		return false
	}
	if player.Status != StatusActive {
		g.log.add(fmt.Sprintf("Invalid action: %s cannot act (status: %s).", player.Name, player.Status))
		g.logger.Debug("action rejected", "player", player.Name, "reason", ErrNotActive)
		return false
	}

	toCall := g.currentBet - player.RoundBet
	accepted := false

	// Only an aggressive action re-establishes the flag.
	player.LastAggressor = false

	switch action {
	case ActionFold:
		player.Status = StatusFolded
		g.log.add(fmt.Sprintf("%s folds.", player.Name))
		accepted = true

	case ActionCheck:
		if toCall > 0 {
			g.log.add(fmt.Sprintf("Invalid action: %s cannot check, %d to call.", player.Name, toCall))
		} else {
			g.log.add(fmt.Sprintf("%s checks.", player.Name))
			accepted = true
		}

	case ActionCall:
		if toCall <= 0 {
			// Nothing owed; treat the call as a check.
			g.log.add(fmt.Sprintf("%s checks (no bet to call).", player.Name))
			accepted = true
		} else {
			callAmount := toCall
			if callAmount > player.Chips {
				callAmount = player.Chips
			}
			player.removeChips(callAmount)
			player.CurrentBet = callAmount
			player.RoundBet += callAmount
			g.pot.Add(callAmount)
			msg := fmt.Sprintf("%s calls %d.", player.Name, callAmount)
			if player.Chips == 0 {
				player.Status = StatusAllIn
				msg += " All-in."
			}
			g.log.add(msg)
			accepted = true
		}

	case ActionBet:
		switch {
		case toCall > 0:
			g.log.add(fmt.Sprintf("Invalid action: %s cannot bet, use call or raise.", player.Name))
		case amount <= 0:
			g.log.add(fmt.Sprintf("Invalid action: %s must bet a positive amount.", player.Name))
		case amount < g.minRaise && player.Chips > amount:
			g.log.add(fmt.Sprintf("Invalid action: %s minimum bet is %d.", player.Name, g.minRaise))
		case amount > player.Chips:
			g.log.add(fmt.Sprintf("Invalid action: %s cannot afford a bet of %d.", player.Name, amount))
		default:
			bet := player.removeChips(amount)
			player.CurrentBet = bet
			player.RoundBet = bet
			g.pot.Add(bet)
			g.currentBet = player.RoundBet
			g.minRaise = bet
			g.setAggressor(player)
			msg := fmt.Sprintf("%s bets %d.", player.Name, bet)
			if player.Chips == 0 {
				player.Status = StatusAllIn
				msg += " All-in."
			}
			g.log.add(msg)
			accepted = true
		}

	case ActionRaise:
		raiseAmount := amount - player.RoundBet
		needed := toCall + raiseAmount
		switch {
		case toCall <= 0:
			g.log.add(fmt.Sprintf("Invalid action: %s cannot raise, use bet.", player.Name))
		case raiseAmount <= 0:
			g.log.add(fmt.Sprintf("Invalid action: %s raise total %d must exceed the %d already in.", player.Name, amount, player.RoundBet))
		case raiseAmount < g.minRaise && player.Chips > needed:
			g.log.add(fmt.Sprintf("Invalid action: %s minimum raise is %d more (to %d total).", player.Name, g.minRaise, g.currentBet+g.minRaise))
		case needed > player.Chips:
			g.log.add(fmt.Sprintf("Invalid action: %s needs %d chips to raise to %d, has %d.", player.Name, needed, amount, player.Chips))
		default:
			player.removeChips(needed)
			player.CurrentBet = needed
			player.RoundBet = amount
			g.pot.Add(needed)
			g.currentBet = player.RoundBet
			g.minRaise = raiseAmount
			g.setAggressor(player)
			msg := fmt.Sprintf("%s raises to %d.", player.Name, amount)
			if player.Chips == 0 {
				player.Status = StatusAllIn
				msg += " All-in."
			}
			g.log.add(msg)
			accepted = true
		}
	}

	if !accepted {
		return false
	}

	player.HasActed = true
	if g.phase == PhasePreflop && player.ID == g.bbID {
		g.bbActed = true
	}
	g.actionCount++
	g.seq++
	g.logger.Debug("action applied", "player", player.Name, "action", action, "amount", amount, "pot", g.pot.Total())
	g.moveToNextPlayer()
	return true
}

func (g *Game) setAggressor(player *Player) {
	g.lastAggressorID = player.ID
	for _, p := range g.players {
		p.LastAggressor = p.ID == player.ID
	}
}
