package game

import (
	"testing"

	"github.com/lox/holdem-table/internal/randutil"
)

func TestRulePolicyChecksOrBetsWhenNothingOwed(t *testing.T) {
	policy := NewRulePolicy(randutil.New(1))
	ctx := PolicyContext{ToCall: 0, Chips: 500, Pot: 100, BigBlind: 20, MinRaise: 20}

	bets, checks := 0, 0
	for i := 0; i < 1000; i++ {
		action, amount := policy.Decide(ctx)
		switch action {
		case ActionBet:
			bets++
			// Half the pot, floored at the big blind.
			if amount != 50 {
				t.Fatalf("expected bet of 50, got %d", amount)
			}
		case ActionCheck:
			checks++
		default:
			t.Fatalf("unexpected action %s with nothing owed", action)
		}
	}

	if bets < 150 || bets > 350 {
		t.Errorf("expected roughly 25%% bets, got %d/1000", bets)
	}
	if bets+checks != 1000 {
		t.Errorf("unaccounted decisions")
	}
}

func TestRulePolicyBetFloorsAtBigBlind(t *testing.T) {
	policy := NewRulePolicy(randutil.New(3))
	ctx := PolicyContext{ToCall: 0, Chips: 500, Pot: 10, BigBlind: 20, MinRaise: 20}

	for i := 0; i < 1000; i++ {
		action, amount := policy.Decide(ctx)
		if action == ActionBet && amount != 20 {
			t.Fatalf("small-pot bet should floor at the big blind, got %d", amount)
		}
	}
}

func TestRulePolicyOnlyChecksWhenShortStacked(t *testing.T) {
	policy := NewRulePolicy(randutil.New(1))
	// Stack at or below the big blind never open-bets.
	ctx := PolicyContext{ToCall: 0, Chips: 20, Pot: 100, BigBlind: 20, MinRaise: 20}

	for i := 0; i < 200; i++ {
		action, _ := policy.Decide(ctx)
		if action != ActionCheck {
			t.Fatalf("expected check, got %s", action)
		}
	}
}

func TestRulePolicyAllInCallIsCoinFlip(t *testing.T) {
	policy := NewRulePolicy(randutil.New(2))
	ctx := PolicyContext{ToCall: 500, Chips: 300, Pot: 700, BigBlind: 20, MinRaise: 20}

	calls, folds := 0, 0
	for i := 0; i < 1000; i++ {
		action, _ := policy.Decide(ctx)
		switch action {
		case ActionCall:
			calls++
		case ActionFold:
			folds++
		default:
			t.Fatalf("unexpected action %s facing an all-in call", action)
		}
	}

	if calls < 400 || calls > 600 {
		t.Errorf("expected roughly even call/fold split, got %d calls", calls)
	}
}

func TestRulePolicyHighCostMostlyFolds(t *testing.T) {
	policy := NewRulePolicy(randutil.New(4))
	// 50 to call with 60 behind: over the 40% cost threshold.
	ctx := PolicyContext{ToCall: 50, Chips: 60, RoundBet: 0, Pot: 200, BigBlind: 20, MinRaise: 20, CurrentBet: 50}

	folds := 0
	for i := 0; i < 1000; i++ {
		action, _ := policy.Decide(ctx)
		switch action {
		case ActionFold:
			folds++
		case ActionCall:
		default:
			t.Fatalf("unexpected action %s at high cost", action)
		}
	}

	if folds < 600 || folds > 800 {
		t.Errorf("expected roughly 70%% folds, got %d/1000", folds)
	}
}

func TestRulePolicyMediumCostMixesActions(t *testing.T) {
	policy := NewRulePolicy(randutil.New(5))
	// 20 to call with 80 behind: 25% cost, the medium band.
	ctx := PolicyContext{ToCall: 20, Chips: 80, RoundBet: 0, Pot: 100, BigBlind: 20, MinRaise: 20, CurrentBet: 20}

	folds, calls, raises := 0, 0, 0
	for i := 0; i < 1000; i++ {
		action, amount := policy.Decide(ctx)
		switch action {
		case ActionFold:
			folds++
		case ActionCall:
			calls++
		case ActionRaise:
			raises++
			if amount != 40 {
				t.Fatalf("expected min-raise to 40, got %d", amount)
			}
		}
	}

	if folds == 0 || calls == 0 || raises == 0 {
		t.Errorf("expected a mix of actions, got folds=%d calls=%d raises=%d", folds, calls, raises)
	}
	if calls < folds {
		t.Errorf("calls should dominate folds at medium cost: folds=%d calls=%d", folds, calls)
	}
}

func TestRulePolicyLowCostNeverFolds(t *testing.T) {
	policy := NewRulePolicy(randutil.New(6))
	// 10 to call with 200 behind: 5% cost.
	ctx := PolicyContext{ToCall: 10, Chips: 200, RoundBet: 0, Pot: 60, BigBlind: 20, MinRaise: 20, CurrentBet: 20}

	raises := 0
	for i := 0; i < 1000; i++ {
		action, _ := policy.Decide(ctx)
		switch action {
		case ActionFold:
			t.Fatalf("policy should never fold at low cost")
		case ActionRaise:
			raises++
		case ActionCall:
		}
	}

	if raises < 80 || raises > 250 {
		t.Errorf("expected roughly 15%% raises, got %d/1000", raises)
	}
}

func TestRulePolicyCannotRaiseWithoutChips(t *testing.T) {
	policy := NewRulePolicy(randutil.New(7))
	// Low cost but the stack cannot cover call plus a min-raise.
	ctx := PolicyContext{ToCall: 10, Chips: 250, RoundBet: 0, Pot: 60, BigBlind: 20, MinRaise: 300, CurrentBet: 20}

	for i := 0; i < 500; i++ {
		action, _ := policy.Decide(ctx)
		if action == ActionRaise {
			t.Fatalf("policy raised without enough chips for a min-raise")
		}
	}
}
