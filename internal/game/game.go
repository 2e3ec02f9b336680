// Package game implements a four-seat no-limit Texas Hold'em table with one
// human seat and three rule-driven opponents. All state lives behind a single
// mutex; timed events (opponent thinking, the pause between hands) are
// scheduled on an injectable clock and carry a generation counter so that a
// stale callback can never act on a table that has moved on.
package game

import (
	"fmt"
	rand "math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
	"github.com/lox/holdem-table/internal/randutil"
)

// Phase is the table's position within a hand
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreflop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhaseGameOver
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreflop:
		return "preflop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	case PhaseGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Game is the table controller.
type Game struct {
	mu     sync.Mutex
	cfg    *Config
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand
	policy OpponentPolicy

	players   []*Player
	deck      *deck.Deck
	community []deck.Card
	pot       PotManager

	currentBet      int
	minRaise        int
	dealerIdx       int
	currentIdx      int
	phase           Phase
	lastAggressorID int
	bbID            int
	bbActed         bool
	actionCount     int
	handID          string

	log      *eventLog
	observer func(Snapshot)

	// seq is bumped whenever the table advances (accepted action, new
	// street, new hand). Timer callbacks capture it at schedule time and
	// bail out if it has moved.
	seq uint64

	aiTimer   *quartz.Timer
	handTimer *quartz.Timer
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the structured logger.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithClock sets the clock used for scheduled events.
func WithClock(clock quartz.Clock) Option {
	return func(g *Game) { g.clock = clock }
}

// WithRand sets the RNG used for shuffling and opponent decisions.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithPolicy sets the decision policy for non-human seats.
func WithPolicy(policy OpponentPolicy) Option {
	return func(g *Game) { g.policy = policy }
}

// WithObserver registers a callback invoked with a fresh snapshot after every
// state transition. It is called outside the table lock.
func WithObserver(fn func(Snapshot)) Option {
	return func(g *Game) { g.observer = fn }
}

// New creates a table from the supplied configuration.
func New(cfg *Config, opts ...Option) *Game {
	g := &Game{
		cfg:             cfg,
		dealerIdx:       -1,
		currentIdx:      -1,
		lastAggressorID: -1,
		bbID:            -1,
		minRaise:        cfg.Game.BigBlind,
		phase:           PhaseIdle,
		log:             newEventLog(200),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "table"})
	}
	if g.clock == nil {
		g.clock = quartz.NewReal()
	}
	if g.rng == nil {
		g.rng = randutil.New(time.Now().UnixNano())
	}
	if g.policy == nil {
		g.policy = NewRulePolicy(g.rng)
	}

	for i, seat := range cfg.Seats {
		g.players = append(g.players, &Player{
			ID:     i,
			Name:   seat.Name,
			Human:  seat.Human,
			Chips:  cfg.Game.StartingChips,
			Status: StatusWaiting,
		})
	}
	g.deck = deck.New(g.rng)

	return g
}

// Start begins the first hand.
func (g *Game) Start() {
	g.mu.Lock()
	g.startNewHand()
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
}

// Snapshot returns a point-in-time copy of the table state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) notify(snap Snapshot) {
	if g.observer != nil {
		g.observer(snap)
	}
}

func (g *Game) stopTimers() {
	if g.aiTimer != nil {
		g.aiTimer.Stop()
		g.aiTimer = nil
	}
	if g.handTimer != nil {
		g.handTimer.Stop()
		g.handTimer = nil
	}
}

// startNewHand resets the table, moves the button, posts blinds and deals.
// Callers hold the lock.
func (g *Game) startNewHand() {
	g.stopTimers()
	g.seq++

	funded := 0
	for _, p := range g.players {
		if p.Chips > 0 {
			funded++
		}
	}
	if funded < 2 {
		g.phase = PhaseGameOver
		g.currentIdx = -1
		g.log.add("Not enough players with chips to continue.")
		g.logger.Info("game over", "funded_seats", funded)
		return
	}

	g.handID = uuid.NewString()
	g.community = g.community[:0]
	g.pot = PotManager{}
	g.currentBet = 0
	g.minRaise = g.cfg.Game.BigBlind
	g.lastAggressorID = -1
	g.bbID = -1
	g.bbActed = false
	g.actionCount = 0
	g.deck.Reset()
	g.deck.Shuffle()

	for _, p := range g.players {
		p.ResetForHand()
	}

	g.log.add("--- Starting New Hand ---")

	inGame := func(p *Player) bool { return p.Status != StatusOut }
	g.dealerIdx = g.nextIndexWhere(g.dealerIdx, inGame)
	sbIdx := g.nextIndexWhere(g.dealerIdx, inGame)
	bbIdx := g.nextIndexWhere(sbIdx, inGame)

	g.postBlind(sbIdx, g.cfg.Game.SmallBlind, "Small Blind")
	g.postBlind(bbIdx, g.cfg.Game.BigBlind, "Big Blind")

	g.bbID = g.players[bbIdx].ID
	g.lastAggressorID = g.bbID
	for _, p := range g.players {
		p.LastAggressor = p.ID == g.bbID
	}
	g.currentBet = g.cfg.Game.BigBlind

	g.dealHoleCards()

	for _, p := range g.players {
		if p.Status == StatusWaiting {
			p.Status = StatusActive
		}
		if p.Status != StatusOut {
			p.HasActed = p.ID == g.players[sbIdx].ID || p.ID == g.players[bbIdx].ID
		}
	}

	g.phase = PhasePreflop
	g.log.add(fmt.Sprintf("Phase: Preflop. Dealer is %s. %s posts SB(%d). %s posts BB(%d).",
		g.players[g.dealerIdx].Name, g.players[sbIdx].Name, g.cfg.Game.SmallBlind,
		g.players[bbIdx].Name, g.cfg.Game.BigBlind))
	g.logger.Debug("hand started", "hand_id", g.handID, "dealer", g.players[g.dealerIdx].Name)

	idx := g.nextIndexWhere(bbIdx, func(p *Player) bool { return p.Status == StatusActive })
	if idx == -1 {
		// Blinds put everyone all-in.
		g.endBettingRound()
		return
	}
	g.currentIdx = idx
	g.log.add(fmt.Sprintf("Turn: %s", g.players[idx].Name))
	g.promptCurrent()
}

func (g *Game) postBlind(idx, amount int, name string) {
	p := g.players[idx]
	if p == nil || p.Status == StatusOut {
		return
	}
	posted := p.removeChips(amount)
	p.CurrentBet = posted
	p.RoundBet = posted
	g.pot.Add(posted)
	g.log.add(fmt.Sprintf("%s posts %s of %d", p.Name, name, posted))
	if p.Chips == 0 {
		p.Status = StatusAllIn
		g.log.add(fmt.Sprintf("%s is all-in from the blind.", p.Name))
	}
}

// dealHoleCards gives two cards to every seated player, one at a time,
// starting left of the button.
func (g *Game) dealHoleCards() {
	g.log.add("Dealing cards...")
	inGame := func(p *Player) bool { return p.Status != StatusOut }
	seated := 0
	for _, p := range g.players {
		if inGame(p) {
			seated++
		}
	}
	idx := g.nextIndexWhere(g.dealerIdx, inGame)
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < seated; i++ {
			card, err := g.deck.Draw()
			if err != nil {
				g.logger.Error("deck exhausted while dealing", "err", err)
				return
			}
			g.players[idx].Hand = append(g.players[idx].Hand, card)
			idx = g.nextIndexWhere(idx, inGame)
		}
	}
}

// promptCurrent schedules a decision for the current seat if it is not human.
// Callers hold the lock.
func (g *Game) promptCurrent() {
	if g.currentIdx < 0 {
		return
	}
	p := g.players[g.currentIdx]
	if p.Human || p.Status != StatusActive {
		return
	}
	if g.phase < PhasePreflop || g.phase > PhaseRiver {
		return
	}

	g.log.add(fmt.Sprintf("%s is thinking...", p.Name))
	delay := g.cfg.ThinkDelay() + time.Duration(g.rng.Float64()*float64(g.cfg.ThinkJitter()))
	seq := g.seq
	id := p.ID
	g.aiTimer = g.clock.AfterFunc(delay, func() {
		g.opponentAct(seq, id)
	})
}

// opponentAct runs the decision policy for a non-human seat. The seq check
// drops callbacks that outlived the turn they were scheduled for.
func (g *Game) opponentAct(seq uint64, playerID int) {
	g.mu.Lock()
	if g.seq != seq || g.currentIdx < 0 {
		g.mu.Unlock()
		return
	}
	p := g.players[g.currentIdx]
	if p.ID != playerID || p.Status != StatusActive {
		g.mu.Unlock()
		return
	}

	action, amount := g.policy.Decide(PolicyContext{
		ToCall:     g.currentBet - p.RoundBet,
		Chips:      p.Chips,
		RoundBet:   p.RoundBet,
		Pot:        g.pot.Total(),
		CurrentBet: g.currentBet,
		MinRaise:   g.minRaise,
		BigBlind:   g.cfg.Game.BigBlind,
		Phase:      g.phase,
	})

	if !g.handleAction(playerID, action, amount) {
		g.log.add(fmt.Sprintf("%s chose an invalid action, falling back.", p.Name))
		g.applyFallback(p)
	}

	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
}

// applyFallback substitutes the safest legal action: check when nothing is
// owed, otherwise call, otherwise fold. None of these can be rejected.
func (g *Game) applyFallback(p *Player) {
	toCall := g.currentBet - p.RoundBet
	switch {
	case toCall <= 0:
		g.handleAction(p.ID, ActionCheck, 0)
	case p.Chips > 0:
		g.handleAction(p.ID, ActionCall, 0)
	default:
		g.handleAction(p.ID, ActionFold, 0)
	}
}

// showdown evaluates the remaining hands and pays the pot.
// Callers hold the lock.
func (g *Game) showdown() {
	g.seq++
	g.phase = PhaseShowdown
	g.currentIdx = -1
	g.log.add("--- SHOWDOWN ---")

	contenders := g.contenders()
	if len(contenders) == 0 {
		g.log.add("Hand ended with no contenders, pot cleared.")
		g.logger.Warn("showdown reached with no contenders", "hand_id", g.handID)
		g.pot.SplitAmongWinners(nil)
		g.scheduleNextHand(g.cfg.ShowdownDelay())
		return
	}
	if len(contenders) == 1 {
		g.awardToSoleSurvivor(contenders)
		return
	}

	best := -1
	for i, p := range contenders {
		cards := append(append([]deck.Card{}, p.Hand...), g.community...)
		res, err := evaluator.EvaluateBest(cards)
		if err != nil {
			g.logger.Error("hand evaluation failed", "player", p.Name, "err", err)
			continue
		}
		p.Result = &res
		g.log.add(fmt.Sprintf("%s: [%s] -> %s", p.Name, cardStrings(p.Hand), res.Description))
		if best == -1 || evaluator.Compare(res, *contenders[best].Result) > 0 {
			best = i
		}
	}

	if best == -1 {
		g.log.add("Hand ended with no winner, pot cleared.")
		g.pot.SplitAmongWinners(nil)
		g.scheduleNextHand(g.cfg.ShowdownDelay())
		return
	}

	var winners []*Player
	for _, p := range contenders {
		if p.Result != nil && evaluator.Compare(*p.Result, *contenders[best].Result) == 0 {
			winners = append(winners, p)
		}
	}

	potSize := g.pot.Total()
	amounts := g.pot.SplitAmongWinners(winners)
	g.log.add(fmt.Sprintf("Pot of %d split between %d winner(s):", potSize, len(winners)))
	for i, w := range winners {
		g.log.add(fmt.Sprintf("- %s (%s) wins %d", w.Name, w.Result.Description, amounts[i]))
	}
	g.logger.Info("showdown complete", "hand_id", g.handID, "winners", len(winners), "pot", potSize)

	g.scheduleNextHand(g.cfg.ShowdownDelay())
}

// awardToSoleSurvivor ends the hand early when only one player remains.
// Callers hold the lock.
func (g *Game) awardToSoleSurvivor(winners []*Player) {
	g.seq++
	g.currentIdx = -1
	if len(winners) > 0 {
		amount := g.pot.AwardSoleSurvivor(winners[0])
		g.log.add(fmt.Sprintf("%s wins the pot of %d, all others folded.", winners[0].Name, amount))
		g.logger.Info("hand won uncontested", "hand_id", g.handID, "winner", winners[0].Name, "pot", amount)
	} else {
		g.log.add("Hand ended with no winner, pot cleared.")
		g.logger.Warn("hand ended with no winner", "hand_id", g.handID)
		g.pot.SplitAmongWinners(nil)
	}
	g.scheduleNextHand(g.cfg.FoldWinDelay())
}

// scheduleNextHand queues the next hand after a pause. Callers hold the lock.
func (g *Game) scheduleNextHand(d time.Duration) {
	g.log.add(fmt.Sprintf("Next hand in %s...", d))
	seq := g.seq
	g.handTimer = g.clock.AfterFunc(d, func() {
		g.mu.Lock()
		if g.seq != seq {
			g.mu.Unlock()
			return
		}
		g.startNewHand()
		snap := g.snapshotLocked()
		g.mu.Unlock()
		g.notify(snap)
	})
}

func cardStrings(cards []deck.Card) string {
	s := ""
	for i, c := range cards {
		if i > 0 {
			s += ", "
		}
		s += c.String()
	}
	return s
}
