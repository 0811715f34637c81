package niuniu

import (
	"testing"

	"niuniu-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestCompare_tiers(t *testing.T) {
	a := assert.New(t)

	// any high-tier category beats any mid-tier one
	a.True(Compare(BullBull, nil, Bull9, nil) > 0)
	a.True(Compare(Straight, nil, Bull9, nil) > 0)

	// any mid-tier category beats any low-tier one
	a.True(Compare(Bull8, nil, Bull7, nil) > 0)
	a.True(Compare(Bull9, nil, NoBull, nil) > 0)

	a.True(Compare(NoBull, nil, FiveSmall, nil) < 0)
}

func TestCompare_withinTier(t *testing.T) {
	a := assert.New(t)

	a.True(Compare(FiveSmall, nil, Bomb, nil) > 0)
	a.True(Compare(Bomb, nil, FiveFace, nil) > 0)
	a.True(Compare(FiveFace, nil, Straight, nil) > 0)
	a.True(Compare(Straight, nil, BullBull, nil) > 0)
	a.True(Compare(Bull9, nil, Bull8, nil) > 0)
	a.True(Compare(Bull3, nil, Bull2, nil) > 0)
	a.True(Compare(Bull1, nil, NoBull, nil) > 0)
}

func TestCompare_highCardTiebreak(t *testing.T) {
	a := assert.New(t)

	// identical categories, higher rank wins
	h1 := deck.HandFromString("13s,13h,10s,5h,5c") // bull bull, high K♠
	h2 := deck.HandFromString("12s,12h,10h,5s,5d") // bull bull, high Q♠
	a.True(Compare(BullBull, h1, BullBull, h2) > 0)
	a.True(Compare(BullBull, h2, BullBull, h1) < 0)

	// equal high rank: ♠K beats ♡K
	h2 = deck.HandFromString("13h,13c,10h,5s,5d") // bull bull, high K♡
	a.True(Compare(BullBull, h1, BullBull, h2) > 0)
	a.True(Compare(BullBull, h2, BullBull, h1) < 0)
}

func TestCompare_reflexive(t *testing.T) {
	hand := deck.HandFromString("13s,13h,10s,5h,5c")
	assert.Equal(t, 0, Compare(BullBull, hand, BullBull, hand))
}

func TestCompare_strictTotalOrder(t *testing.T) {
	a := assert.New(t)

	// two hands drawn from one deck can never tie: even with the same
	// category, the highest cards differ in rank or suit
	d := deck.New()
	d.Shuffle(7)

	hands := make([]deck.Hand, 0, 10)
	cats := make([]Category, 0, 10)
	for i := 0; i < 10; i++ {
		hand := make(deck.Hand, 0, HandSize)
		for j := 0; j < HandSize; j++ {
			card, err := d.Draw()
			a.NoError(err)
			hand.AddCard(card)
		}

		hands = append(hands, hand)
		cats = append(cats, Classify(hand, AllEnabled()))
	}

	for i := range hands {
		for j := range hands {
			if i == j {
				continue
			}

			cmp := Compare(cats[i], hands[i], cats[j], hands[j])
			rev := Compare(cats[j], hands[j], cats[i], hands[i])
			a.NotEqual(0, cmp, "hands %d and %d tied", i, j)
			a.True((cmp > 0) == (rev < 0), "comparison is not antisymmetric")
		}
	}
}
