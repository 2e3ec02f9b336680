// Package evaluator ranks poker hands. EvaluateBest exhaustively scores every
// five-card subset of the supplied cards and keeps the strongest, so it stays
// correct for any input size from five to seven cards.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-table/internal/deck"
)

// Category is the class of a five-card poker hand, ordered weakest to
// strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Result describes an evaluated five-card hand. Ranks is the tie-break key:
// comparing two results of the same Category element-wise over Ranks decides
// the winner, with equal keys meaning a genuine tie.
type Result struct {
	Category    Category
	Cards       []deck.Card
	Ranks       []int
	Description string
}

// EvaluateFive scores exactly five cards.
func EvaluateFive(cards []deck.Card) Result {
	if len(cards) != 5 {
		panic(fmt.Sprintf("evaluator: EvaluateFive called with %d cards", len(cards)))
	}

	sorted := make([]deck.Card, 5)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value() > sorted[j].Value() })

	ranks := make([]int, 5)
	for i, c := range sorted {
		ranks[i] = c.Value()
	}

	flush := true
	for _, c := range sorted {
		if c.Suit != sorted[0].Suit {
			flush = false
			break
		}
	}

	counts := map[int]int{}
	for _, r := range ranks {
		counts[r]++
	}

	unique := make([]int, 0, 5)
	for r := range counts {
		unique = append(unique, r)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(unique)))

	straight := false
	straightHigh := 0
	if len(unique) == 5 {
		if unique[0]-unique[4] == 4 {
			straight = true
			straightHigh = unique[0]
		} else if unique[0] == 14 && unique[1] == 5 && unique[2] == 4 && unique[3] == 3 && unique[4] == 2 {
			// Wheel: the ace plays low and the straight is five-high.
			straight = true
			straightHigh = 5
		}
	}

	res := Result{Cards: sorted}

	switch {
	case straight && flush:
		if straightHigh == 14 {
			res.Category = RoyalFlush
			res.Ranks = []int{14}
			res.Description = "Royal Flush"
		} else {
			res.Category = StraightFlush
			res.Ranks = []int{straightHigh}
			res.Description = fmt.Sprintf("Straight Flush (%s high)", rankName(straightHigh))
		}
	case hasCount(counts, 4):
		quad := rankWithCount(counts, 4)
		res.Category = FourOfAKind
		res.Ranks = []int{quad, rankExcluding(ranks, quad)}
		res.Description = fmt.Sprintf("Four of a Kind (%ss)", rankName(quad))
	case hasCount(counts, 3) && hasCount(counts, 2):
		trips := rankWithCount(counts, 3)
		pair := rankWithCount(counts, 2)
		res.Category = FullHouse
		res.Ranks = []int{trips, pair}
		res.Description = fmt.Sprintf("Full House (%ss over %ss)", rankName(trips), rankName(pair))
	case flush:
		res.Category = Flush
		res.Ranks = ranks
		res.Description = fmt.Sprintf("Flush (%s high)", rankName(ranks[0]))
	case straight:
		res.Category = Straight
		res.Ranks = []int{straightHigh}
		res.Description = fmt.Sprintf("Straight (%s high)", rankName(straightHigh))
	case hasCount(counts, 3):
		trips := rankWithCount(counts, 3)
		res.Category = ThreeOfAKind
		res.Ranks = append([]int{trips}, ranksExcluding(ranks, trips)...)
		res.Description = fmt.Sprintf("Three of a Kind (%ss)", rankName(trips))
	case pairCount(counts) == 2:
		pairs := pairRanks(counts)
		kicker := rankWithCount(counts, 1)
		res.Category = TwoPair
		res.Ranks = []int{pairs[0], pairs[1], kicker}
		res.Description = fmt.Sprintf("Two Pair (%ss and %ss)", rankName(pairs[0]), rankName(pairs[1]))
	case hasCount(counts, 2):
		pair := rankWithCount(counts, 2)
		res.Category = OnePair
		res.Ranks = append([]int{pair}, ranksExcluding(ranks, pair)...)
		res.Description = fmt.Sprintf("One Pair (%ss)", rankName(pair))
	default:
		res.Category = HighCard
		res.Ranks = ranks
		res.Description = fmt.Sprintf("High Card (%s)", rankName(ranks[0]))
	}

	return res
}

// EvaluateBest scores the best five-card hand drawable from the supplied
// cards. At least five cards are required.
func EvaluateBest(cards []deck.Card) (Result, error) {
	if len(cards) < 5 {
		return Result{}, fmt.Errorf("evaluator: need at least 5 cards, got %d", len(cards))
	}
	if len(cards) == 5 {
		return EvaluateFive(cards), nil
	}

	var best Result
	first := true
	for _, combo := range combinations(cards, 5) {
		r := EvaluateFive(combo)
		if first || Compare(r, best) > 0 {
			best = r
			first = false
		}
	}
	return best, nil
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 on a genuine tie.
func Compare(a, b Result) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	n := len(a.Ranks)
	if len(b.Ranks) < n {
		n = len(b.Ranks)
	}
	for i := 0; i < n; i++ {
		if a.Ranks[i] > b.Ranks[i] {
			return 1
		}
		if a.Ranks[i] < b.Ranks[i] {
			return -1
		}
	}
	return 0
}

func combinations(cards []deck.Card, k int) [][]deck.Card {
	var out [][]deck.Card
	combo := make([]deck.Card, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			c := make([]deck.Card, k)
			copy(c, combo)
			out = append(out, c)
			return
		}
		for i := start; i <= len(cards)-(k-depth); i++ {
			combo[depth] = cards[i]
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
	return out
}

func hasCount(counts map[int]int, n int) bool {
	for _, c := range counts {
		if c == n {
			return true
		}
	}
	return false
}

// rankWithCount returns the highest rank appearing exactly n times.
func rankWithCount(counts map[int]int, n int) int {
	best := 0
	for r, c := range counts {
		if c == n && r > best {
			best = r
		}
	}
	return best
}

func rankExcluding(ranks []int, exclude int) int {
	for _, r := range ranks {
		if r != exclude {
			return r
		}
	}
	return 0
}

func ranksExcluding(ranks []int, exclude int) []int {
	out := make([]int, 0, len(ranks))
	for _, r := range ranks {
		if r != exclude {
			out = append(out, r)
		}
	}
	return out
}

func pairCount(counts map[int]int) int {
	n := 0
	for _, c := range counts {
		if c == 2 {
			n++
		}
	}
	return n
}

func pairRanks(counts map[int]int) []int {
	out := make([]int, 0, 2)
	for r, c := range counts {
		if c == 2 {
			out = append(out, r)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func rankName(value int) string {
	if value >= 2 && value <= 9 {
		return fmt.Sprintf("%d", value)
	}
	switch value {
	case 10:
		return "T"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	case 14:
		return "A"
	}
	return "?"
}
