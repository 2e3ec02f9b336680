package game

import (
	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
)

// Status is a player's state within the current hand
type Status int

const (
	StatusWaiting Status = iota
	StatusActive
	StatusFolded
	StatusAllIn
	StatusOut
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusActive:
		return "active"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "all-in"
	case StatusOut:
		return "out"
	default:
		return "unknown"
	}
}

// Player is a seat at the table. CurrentBet is the amount committed since the
// last street change display-wise, RoundBet the total committed in the current
// betting round and the basis for call/raise arithmetic.
type Player struct {
	ID            int
	Name          string
	Human         bool
	Chips         int
	Hand          []deck.Card
	CurrentBet    int
	RoundBet      int
	Status        Status
	HasActed      bool
	LastAggressor bool
	Result        *evaluator.Result
}

// ResetForHand clears per-hand state. Players without chips are marked out
// and take no further part.
func (p *Player) ResetForHand() {
	p.Hand = p.Hand[:0]
	p.CurrentBet = 0
	p.RoundBet = 0
	p.HasActed = false
	p.LastAggressor = false
	p.Result = nil
	if p.Chips <= 0 {
		p.Status = StatusOut
	} else {
		p.Status = StatusWaiting
	}
}

// removeChips deducts up to amount from the stack and returns what was
// actually taken.
func (p *Player) removeChips(amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	if amount < 0 {
		amount = 0
	}
	p.Chips -= amount
	return amount
}

func (p *Player) addChips(amount int) {
	p.Chips += amount
}

// InHand reports whether the player still holds cards this hand.
func (p *Player) InHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn || p.Status == StatusWaiting
}

// CanAct reports whether the player can still take voluntary actions.
func (p *Player) CanAct() bool {
	return (p.Status == StatusActive || p.Status == StatusWaiting) && p.Chips > 0
}
