// Package niuniu classifies and compares five-card bull-fight (niu niu)
// hands. It is pure: no state, no I/O.
package niuniu

import "fmt"

// Category is the classification of a five-card hand
type Category int

// Category constants, weakest first. The comparison order and the payout
// multipliers live in the categoryInfo table, not in the declaration order.
const (
	NoBull Category = iota
	Bull1
	Bull2
	Bull3
	Bull4
	Bull5
	Bull6
	Bull7
	Bull8
	Bull9
	BullBull
	Straight
	FiveFace
	Bomb
	FiveSmall
)

// Tier is the coarse strength grouping used for comparison. A higher tier
// always beats a lower tier regardless of category detail.
type Tier int

// tier constants
const (
	TierLow Tier = iota + 1
	TierMid
	TierHigh
)

type categoryInfo struct {
	name       string
	multiplier int
	tier       Tier
	strength   int
}

// strength is a dense total order across all categories; larger is stronger.
var categoryTable = map[Category]categoryInfo{
	FiveSmall: {"five small", 5, TierHigh, 15},
	Bomb:      {"bomb", 4, TierHigh, 14},
	FiveFace:  {"five face", 4, TierHigh, 13},
	Straight:  {"straight", 4, TierHigh, 12},
	BullBull:  {"bull bull", 3, TierHigh, 11},
	Bull9:     {"bull 9", 2, TierMid, 10},
	Bull8:     {"bull 8", 2, TierMid, 9},
	Bull7:     {"bull 7", 1, TierLow, 8},
	Bull6:     {"bull 6", 1, TierLow, 7},
	Bull5:     {"bull 5", 1, TierLow, 6},
	Bull4:     {"bull 4", 1, TierLow, 5},
	Bull3:     {"bull 3", 1, TierLow, 4},
	Bull2:     {"bull 2", 1, TierLow, 3},
	Bull1:     {"bull 1", 1, TierLow, 2},
	NoBull:    {"no bull", 1, TierLow, 1},
}

func (c Category) info() categoryInfo {
	info, ok := categoryTable[c]
	if !ok {
		panic(fmt.Sprintf("unknown category: %d", int(c)))
	}

	return info
}

// Name returns a human-readable name for the category
func (c Category) Name() string {
	return c.info().name
}

// Multiplier returns the payout multiplier for the category
func (c Category) Multiplier() int {
	return c.info().multiplier
}

// Tier returns the comparison tier for the category
func (c Category) Tier() Tier {
	return c.info().tier
}

// strength returns the category's position in the fixed total order
func (c Category) strength() int {
	return c.info().strength
}

func (c Category) String() string {
	return c.Name()
}

// Bull returns the category for a numeric bull value, where 0 is bull-bull
// and 1 through 9 are bull-1 through bull-9.
func Bull(n int) Category {
	if n == 0 {
		return BullBull
	}

	if n < 1 || n > 9 {
		panic(fmt.Sprintf("invalid bull value: %d", n))
	}

	return Category(int(Bull1) + n - 1)
}

// Enabled is the set of optional special categories a room allows. The
// numeric bull categories are always available and cannot be disabled.
type Enabled struct {
	FiveSmall bool `json:"fiveSmall"`
	Bomb      bool `json:"bomb"`
	FiveFace  bool `json:"fiveFace"`
	Straight  bool `json:"straight"`
}

// AllEnabled returns an Enabled with every special category switched on
func AllEnabled() Enabled {
	return Enabled{FiveSmall: true, Bomb: true, FiveFace: true, Straight: true}
}
