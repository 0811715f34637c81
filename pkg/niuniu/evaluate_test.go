package niuniu

import (
	"testing"

	"niuniu-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestClassify_specials(t *testing.T) {
	a := assert.New(t)

	// ranks 1,1,2,2,3: all below five, values sum to 9
	a.Equal(FiveSmall, Classify(deck.HandFromString("1s,1h,2s,2h,3s"), AllEnabled()))

	a.Equal(Bomb, Classify(deck.HandFromString("7s,7h,7c,7d,2s"), AllEnabled()))

	a.Equal(FiveFace, Classify(deck.HandFromString("11s,11h,12s,12h,13s"), AllEnabled()))

	a.Equal(Straight, Classify(deck.HandFromString("3s,4h,5c,6d,7s"), AllEnabled()))

	// five-small outranks bomb: four aces plus a deuce qualifies for both
	a.Equal(FiveSmall, Classify(deck.HandFromString("1s,1h,1c,1d,2s"), AllEnabled()))
	a.Equal(Bomb, Classify(deck.HandFromString("1s,1h,1c,1d,2s"), Enabled{Bomb: true}))
}

func TestClassify_bulls(t *testing.T) {
	a := assert.New(t)

	// K,K,10 sums to 30; remainder 5+5 = 10 → bull bull
	a.Equal(BullBull, Classify(deck.HandFromString("13s,13h,10s,5h,5c"), AllEnabled()))

	// K,K,10 sums to 30; remainder 5+3 = 8 → bull 8
	a.Equal(Bull8, Classify(deck.HandFromString("13s,13h,10s,5h,3c"), AllEnabled()))

	// 2,3,5 sums to 10; remainder 9+8 = 17 → bull 7
	a.Equal(Bull7, Classify(deck.HandFromString("2s,3h,5c,9d,8s"), AllEnabled()))

	// 4,6,Q sums to 20; remainder 1+2 = 3 → bull 3
	a.Equal(Bull3, Classify(deck.HandFromString("1s,2h,4c,6d,12s"), AllEnabled()))

	// no three cards total a multiple of ten
	a.Equal(NoBull, Classify(deck.HandFromString("1s,2h,4c,6d,9s"), AllEnabled()))
}

func TestClassify_disabledCategoriesNeverProduced(t *testing.T) {
	a := assert.New(t)

	none := Enabled{}

	// a straight that also forms a bull drops to the bull when straights
	// are off: 2+3+5 = 10, remainder 1+4 = 5
	hand := deck.HandFromString("1s,2h,3c,4d,5s")
	a.Equal(Straight, Classify(hand, AllEnabled()))
	a.Equal(Bull5, Classify(hand, Enabled{FiveSmall: true}))

	// five faces always form a bull bull when the category is disabled
	a.Equal(BullBull, Classify(deck.HandFromString("11s,11h,12s,12h,13s"), none))

	// bomb of sevens: 7+7+... no triple sums to a multiple of ten → no bull
	a.Equal(NoBull, Classify(deck.HandFromString("7s,7h,7c,7d,2s"), none))
}

func TestClassify_disabledStraightFallsToBull(t *testing.T) {
	// 2+3+5 = 10, remainder 1+4 = 5 → bull 5
	assert.Equal(t, Bull5, Classify(deck.HandFromString("1s,2h,3c,4d,5s"), Enabled{}))
}

func TestClassify_closedSet(t *testing.T) {
	a := assert.New(t)

	d := deck.New()
	d.Shuffle(99)

	for d.CanDraw(HandSize) {
		hand := make(deck.Hand, 0, HandSize)
		for i := 0; i < HandSize; i++ {
			card, err := d.Draw()
			a.NoError(err)
			hand.AddCard(card)
		}

		c := Classify(hand, AllEnabled())
		a.True(c >= NoBull && c <= FiveSmall, "category out of range: %d", int(c))
		a.NotEmpty(c.Name())
		a.True(c.Multiplier() >= 1 && c.Multiplier() <= 5)
	}
}

func TestClassify_wrongSize(t *testing.T) {
	assert.Equal(t, NoBull, Classify(deck.HandFromString("1s,2h"), AllEnabled()))
	assert.Equal(t, NoBull, Classify(nil, AllEnabled()))
}

func TestGroups(t *testing.T) {
	a := assert.New(t)

	bull, rest := Groups(deck.HandFromString("13s,13h,10s,5h,5c"))
	a.Equal(3, len(bull))
	a.Equal(2, len(rest))

	sum := 0
	for _, c := range bull {
		sum += c.Value()
	}
	a.Equal(0, sum%10)

	// no bull: single group of all five cards
	bull, rest = Groups(deck.HandFromString("1s,2h,4c,6d,9s"))
	a.Equal(5, len(bull))
	a.Nil(rest)
}

func TestBull(t *testing.T) {
	a := assert.New(t)
	a.Equal(BullBull, Bull(0))
	a.Equal(Bull1, Bull(1))
	a.Equal(Bull9, Bull(9))
	a.Panics(func() { Bull(10) })
	a.Panics(func() { Bull(-1) })
}

func TestCategory_table(t *testing.T) {
	a := assert.New(t)

	a.Equal(5, FiveSmall.Multiplier())
	a.Equal(4, Bomb.Multiplier())
	a.Equal(4, FiveFace.Multiplier())
	a.Equal(4, Straight.Multiplier())
	a.Equal(3, BullBull.Multiplier())
	a.Equal(2, Bull9.Multiplier())
	a.Equal(2, Bull8.Multiplier())
	a.Equal(1, Bull7.Multiplier())
	a.Equal(1, NoBull.Multiplier())

	a.Equal(TierHigh, BullBull.Tier())
	a.Equal(TierMid, Bull9.Tier())
	a.Equal(TierMid, Bull8.Tier())
	a.Equal(TierLow, Bull7.Tier())
	a.Equal(TierLow, NoBull.Tier())

	a.Equal("bull bull", BullBull.String())
	a.Panics(func() { Category(99).Name() })
}
