package game

// PotManager tracks the single main pot. Side pots are not modelled: an
// all-in player remains eligible for the whole pot.
type PotManager struct {
	total int
}

// Add moves chips into the pot.
func (pm *PotManager) Add(amount int) {
	pm.total += amount
}

// Total returns the chips currently in the pot.
func (pm *PotManager) Total() int {
	return pm.total
}

// AwardSoleSurvivor pays the entire pot to a single winner and returns the
// amount paid.
func (pm *PotManager) AwardSoleSurvivor(p *Player) int {
	amount := pm.total
	p.addChips(amount)
	pm.total = 0
	return amount
}

// SplitAmongWinners divides the pot evenly among winners, giving any
// remainder away one chip at a time in winner order. Returned amounts are
// parallel to winners.
func (pm *PotManager) SplitAmongWinners(winners []*Player) []int {
	if len(winners) == 0 {
		pm.total = 0
		return nil
	}
	share := pm.total / len(winners)
	remainder := pm.total % len(winners)
	amounts := make([]int, len(winners))
	for i, w := range winners {
		amount := share
		if remainder > 0 {
			amount++
			remainder--
		}
		w.addChips(amount)
		amounts[i] = amount
	}
	pm.total = 0
	return amounts
}
