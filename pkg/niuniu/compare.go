package niuniu

import "niuniu-server/pkg/deck"

// Compare compares two classified hands and returns a positive number if the
// first is stronger, a negative number if the second is stronger, and zero
// only when the categories match and the highest cards are literally
// identical (impossible for hands drawn from a single deck).
//
// Comparison is tier first, then the category's fixed total order, then the
// single highest card by rank and suit.
func Compare(c1 Category, h1 deck.Hand, c2 Category, h2 deck.Hand) int {
	if t1, t2 := c1.Tier(), c2.Tier(); t1 != t2 {
		return int(t1) - int(t2)
	}

	if s1, s2 := c1.strength(), c2.strength(); s1 != s2 {
		return s1 - s2
	}

	max1, max2 := h1.HighCard(), h2.HighCard()
	if max1 == nil || max2 == nil {
		return 0
	}

	if max1.Rank != max2.Rank {
		return max1.Rank - max2.Rank
	}

	// lower suit value is the stronger suit
	return int(max2.Suit) - int(max1.Suit)
}
