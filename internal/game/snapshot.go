package game

// SeatSnapshot is the public view of one seat. Hole cards of non-human seats
// are masked with "?" until showdown.
type SeatSnapshot struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Human      bool     `json:"isHuman"`
	Chips      int      `json:"chips"`
	Hand       []string `json:"hand"`
	CurrentBet int      `json:"currentBet"`
	RoundBet   int      `json:"totalBetInRound"`
	Status     string   `json:"status"`
	Dealer     bool     `json:"isDealer"`
	Turn       bool     `json:"isTurn"`
	BestHand   string   `json:"bestHandDescription,omitempty"`
}

// Snapshot is a point-in-time copy of the table. It shares no memory with
// the live game, so callers may hold it indefinitely.
type Snapshot struct {
	HandID     string         `json:"handId"`
	Seats      []SeatSnapshot `json:"players"`
	Community  []string       `json:"communityCards"`
	Pot        int            `json:"pot"`
	CurrentBet int            `json:"currentBet"`
	MinRaise   int            `json:"minRaise"`
	BigBlind   int            `json:"bigBlindAmount"`
	Phase      string         `json:"currentPhase"`
	Log        []string       `json:"log"`
}

// snapshotLocked builds a snapshot. Callers hold the lock.
func (g *Game) snapshotLocked() Snapshot {
	snap := Snapshot{
		HandID:     g.handID,
		Pot:        g.pot.Total(),
		CurrentBet: g.currentBet,
		MinRaise:   g.minRaise,
		BigBlind:   g.cfg.Game.BigBlind,
		Phase:      g.phase.String(),
		Log:        g.log.tail(g.cfg.Game.LogLines),
	}

	for _, c := range g.community {
		snap.Community = append(snap.Community, c.String())
	}

	for i, p := range g.players {
		seat := SeatSnapshot{
			ID:         p.ID,
			Name:       p.Name,
			Human:      p.Human,
			Chips:      p.Chips,
			CurrentBet: p.CurrentBet,
			RoundBet:   p.RoundBet,
			Status:     p.Status.String(),
			Dealer:     g.dealerIdx == i,
			Turn:       g.currentIdx == i && p.Status == StatusActive,
		}

		revealed := p.Human || g.phase == PhaseShowdown || p.Status == StatusOut
		for _, c := range p.Hand {
			if revealed {
				seat.Hand = append(seat.Hand, c.String())
			} else {
				seat.Hand = append(seat.Hand, "?")
			}
		}

		if g.phase == PhaseShowdown && p.Status != StatusFolded && p.Status != StatusOut && p.Result != nil {
			seat.BestHand = p.Result.Description
		}

		snap.Seats = append(snap.Seats, seat)
	}

	return snap
}
