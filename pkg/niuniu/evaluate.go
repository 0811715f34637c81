package niuniu

import (
	"sort"

	"niuniu-server/pkg/deck"
)

// HandSize is the number of cards in a niu niu hand
const HandSize = 5

// Classify returns the category for a five-card hand. Special categories are
// checked in priority order and only when enabled; the numeric bull search is
// the fallback and is always available.
func Classify(cards deck.Hand, enabled Enabled) Category {
	if len(cards) != HandSize {
		return NoBull
	}

	if enabled.FiveSmall && isFiveSmall(cards) {
		return FiveSmall
	}

	if enabled.Bomb && isBomb(cards) {
		return Bomb
	}

	if enabled.FiveFace && isFiveFace(cards) {
		return FiveFace
	}

	if enabled.Straight && isStraight(cards) {
		return Straight
	}

	if n, ok := bullValue(cards); ok {
		return Bull(n)
	}

	return NoBull
}

// isFiveSmall is true when every rank is below five and the point total is
// at most ten.
func isFiveSmall(cards deck.Hand) bool {
	sum := 0
	for _, c := range cards {
		if c.Rank >= 5 {
			return false
		}

		sum += c.Value()
	}

	return sum <= 10
}

// isBomb is true when at least four cards share a rank
func isBomb(cards deck.Hand) bool {
	counts := make(map[int]int)
	for _, c := range cards {
		counts[c.Rank]++
		if counts[c.Rank] >= 4 {
			return true
		}
	}

	return false
}

// isFiveFace is true when every card is a jack, queen, or king
func isFiveFace(cards deck.Hand) bool {
	for _, c := range cards {
		if c.Rank < deck.Jack {
			return false
		}
	}

	return true
}

// isStraight is true when the sorted ranks are consecutive integers
func isStraight(cards deck.Hand) bool {
	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	sort.Ints(ranks)

	for i := 1; i < len(ranks); i++ {
		if ranks[i]-ranks[i-1] != 1 {
			return false
		}
	}

	return true
}

// bullValue searches the C(5,3) three-card subsets for one whose point total
// is a multiple of ten. If found, the remaining two cards' total mod ten is
// the bull value (0 meaning bull-bull).
func bullValue(cards deck.Hand) (int, bool) {
	values := make([]int, len(cards))
	total := 0
	for n, c := range cards {
		values[n] = c.Value()
		total += values[n]
	}

	for i := 0; i < HandSize; i++ {
		for j := i + 1; j < HandSize; j++ {
			for k := j + 1; k < HandSize; k++ {
				sum := values[i] + values[j] + values[k]
				if sum%10 == 0 {
					return (total - sum) % 10, true
				}
			}
		}
	}

	return 0, false
}

// Groups splits a hand into the three-card subset that forms the bull and
// the two remaining cards, for client display. If the hand has no bull, all
// five cards are returned as the first group and the second is nil.
func Groups(cards deck.Hand) (deck.Hand, deck.Hand) {
	if len(cards) != HandSize {
		return cards.Clone(), nil
	}

	values := make([]int, len(cards))
	for n, c := range cards {
		values[n] = c.Value()
	}

	for i := 0; i < HandSize; i++ {
		for j := i + 1; j < HandSize; j++ {
			for k := j + 1; k < HandSize; k++ {
				if (values[i]+values[j]+values[k])%10 != 0 {
					continue
				}

				bull := deck.Hand{cards[i], cards[j], cards[k]}
				rest := make(deck.Hand, 0, 2)
				for m := 0; m < HandSize; m++ {
					if m != i && m != j && m != k {
						rest = append(rest, cards[m])
					}
				}

				return bull, rest
			}
		}
	}

	return cards.Clone(), nil
}
