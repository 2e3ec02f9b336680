package game

import rand "math/rand/v2"

// PolicyContext is the view of the table an opponent policy decides from.
// ToCall is the amount owed to continue, RoundBet the chips the seat has
// already committed this round.
type PolicyContext struct {
	ToCall     int
	Chips      int
	RoundBet   int
	Pot        int
	CurrentBet int
	MinRaise   int
	BigBlind   int
	Phase      Phase
}

// OpponentPolicy chooses an action for a non-human seat. The returned amount
// is only meaningful for ActionBet (chips to commit) and ActionRaise (desired
// round total).
type OpponentPolicy interface {
	Decide(ctx PolicyContext) (Action, int)
}

// RulePolicy is a probabilistic threshold policy driven by pot odds. It never
// inspects hole cards.
type RulePolicy struct {
	rng *rand.Rand
}

// NewRulePolicy returns a RulePolicy using the supplied RNG.
func NewRulePolicy(rng *rand.Rand) *RulePolicy {
	return &RulePolicy{rng: rng}
}

// Decide implements OpponentPolicy.
func (p *RulePolicy) Decide(ctx PolicyContext) (Action, int) {
	if ctx.ToCall <= 0 {
		if ctx.Chips > ctx.BigBlind && p.rng.Float64() < 0.25 {
			bet := ctx.Pot / 2
			if bet < ctx.BigBlind {
				bet = ctx.BigBlind
			}
			if bet > ctx.Chips {
				bet = ctx.Chips
			}
			return ActionBet, bet
		}
		return ActionCheck, 0
	}

	if ctx.ToCall >= ctx.Chips {
		// Calling puts the whole stack in.
		if p.rng.Float64() < 0.5 {
			return ActionCall, 0
		}
		return ActionFold, 0
	}

	costPct := 100.0
	if ctx.Chips > 0 {
		costPct = float64(ctx.ToCall) / float64(ctx.Chips+ctx.RoundBet) * 100
	}
	canRaise := ctx.Chips >= ctx.ToCall+ctx.MinRaise

	switch {
	case costPct > 40:
		if p.rng.Float64() < 0.7 {
			return ActionFold, 0
		}
		return ActionCall, 0
	case costPct > 15:
		r := p.rng.Float64()
		switch {
		case r < 0.3:
			return ActionFold, 0
		case r < 0.85 && canRaise:
			return ActionCall, 0
		case canRaise:
			return ActionRaise, ctx.CurrentBet + ctx.MinRaise
		default:
			return ActionCall, 0
		}
	default:
		if canRaise && p.rng.Float64() < 0.15 {
			return ActionRaise, ctx.CurrentBet + ctx.MinRaise
		}
		return ActionCall, 0
	}
}
