package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeck(t *testing.T) {
	deck := New()

	assert.Equal(t, 52, deck.CardsLeft())

	assert.Equal(t, Card{Suit: Spades, Rank: 1}, *deck.Cards[0])
	assert.Equal(t, Card{Suit: Diamonds, Rank: 13}, *deck.Cards[51])

	seen := make(map[Card]bool)
	for _, card := range deck.Cards {
		seen[*card] = true
	}
	assert.Equal(t, 52, len(seen))
}

func TestDeck_Shuffle(t *testing.T) {
	a := assert.New(t)

	deck := New()
	deck.Shuffle(1)
	a.Equal(int64(1), deck.GetSeed())

	// same seed, same order
	deck2 := New()
	deck2.Shuffle(1)
	for i := range deck.Cards {
		a.True(deck.Cards[i].Equal(deck2.Cards[i]))
	}

	// a shuffle never loses or duplicates a card
	seen := make(map[Card]bool)
	for _, card := range deck.Cards {
		seen[*card] = true
	}
	a.Equal(52, len(seen))

	// reshuffling rebuilds the full deck
	_, _ = deck.Draw()
	_, _ = deck.Draw()
	deck.Shuffle(2)
	a.Equal(52, deck.CardsLeft())

	a.Panics(func() {
		deck.Shuffle(-1)
	})
}

func TestDeck_Draw(t *testing.T) {
	deck := New()

	if !deck.CanDraw(52) {
		t.Errorf("expected CanDraw(52) to be true")
	}

	if deck.CanDraw(53) {
		t.Errorf("expected CanDraw(53) to be false")
	}

	for i := 0; i < 52; i++ {
		card, err := deck.Draw()
		if card == nil {
			t.Error("expected card, got nil")
		}

		if err != nil {
			t.Errorf("expected err to be nil, got %v", err)
		}
	}

	if deck.CanDraw(1) {
		t.Errorf("expected CanDraw(1) to be false")
	}

	card, err := deck.Draw()
	if card != nil {
		t.Errorf("expected card to be nil, got %#v", card)
	}

	if err != ErrEndOfDeck {
		t.Errorf("expected err to be ErrEndOfDeck, got %#v", err)
	}

	deck.Shuffle(0)
	if !deck.CanDraw(52) {
		t.Errorf("expected Shuffle() to reshuffle the deck")
	}
}

func TestDeck_dealingIsWithoutReplacement(t *testing.T) {
	a := assert.New(t)

	deck := New()
	deck.Shuffle(42)

	seen := make(map[Card]bool)
	for player := 0; player < 10; player++ {
		for i := 0; i < 5; i++ {
			card, err := deck.Draw()
			a.NoError(err)
			a.False(seen[*card], "card %s dealt twice", card)
			seen[*card] = true
		}
	}

	a.Equal(50, len(seen))
	a.Equal(2, deck.CardsLeft())
}
