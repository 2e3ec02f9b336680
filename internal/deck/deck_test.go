package deck

import (
	"errors"
	"testing"

	"github.com/lox/holdem-table/internal/randutil"
)

func TestDeckHas52DistinctCards(t *testing.T) {
	d := New(randutil.New(1))

	seen := make(map[Card]bool)
	for i := 0; i < 52; i++ {
		card, err := d.Draw()
		if err != nil {
			t.Fatalf("unexpected error drawing card %d: %v", i, err)
		}
		if seen[card] {
			t.Errorf("duplicate card drawn: %s", card)
		}
		seen[card] = true
	}

	if len(seen) != 52 {
		t.Errorf("expected 52 distinct cards, got %d", len(seen))
	}
}

func TestDeckResetRestoresAllCards(t *testing.T) {
	d := New(randutil.New(1))
	d.Shuffle()
	for i := 0; i < 20; i++ {
		if _, err := d.Draw(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	d.Reset()
	if d.Remaining() != 52 {
		t.Errorf("expected 52 cards after reset, got %d", d.Remaining())
	}

	seen := make(map[Card]bool)
	for d.Remaining() > 0 {
		card, _ := d.Draw()
		seen[card] = true
	}
	if len(seen) != 52 {
		t.Errorf("expected 52 distinct cards after reset, got %d", len(seen))
	}
}

func TestDrawFromEmptyDeck(t *testing.T) {
	d := New(randutil.New(1))
	for i := 0; i < 52; i++ {
		if _, err := d.Draw(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	_, err := d.Draw()
	if !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("expected ErrEmptyDeck, got %v", err)
	}
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	d1 := New(randutil.New(42))
	d2 := New(randutil.New(42))
	d1.Shuffle()
	d2.Shuffle()

	for d1.Remaining() > 0 {
		c1, _ := d1.Draw()
		c2, _ := d2.Draw()
		if c1 != c2 {
			t.Fatalf("decks with the same seed diverged: %s vs %s", c1, c2)
		}
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		want Card
	}{
		{"AH", Card{Hearts, Ace}},
		{"TD", Card{Diamonds, Ten}},
		{"2C", Card{Clubs, Two}},
		{"KS", Card{Spades, King}},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.in)
		if err != nil {
			t.Errorf("ParseCard(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCard(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("round trip of %q gave %q", tt.in, got.String())
		}
	}

	for _, bad := range []string{"", "A", "1H", "AX", "AHH"} {
		if _, err := ParseCard(bad); err == nil {
			t.Errorf("ParseCard(%q): expected error", bad)
		}
	}
}
