package deck

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestHand(t *testing.T) {
	hand := HandFromString("1s,13d")
	assert.Equal(t, 2, len(hand))

	hand.AddCard(CardFromString("7c"))
	assert.Equal(t, 3, len(hand))
	assert.Equal(t, true, hand.HasCard(CardFromString("7c")))
	assert.Equal(t, false, hand.HasCard(CardFromString("7d")))

	assert.Equal(t, "1s,13d,7c", hand.String())

	clone := hand.Clone()
	clone.AddCard(CardFromString("2h"))
	assert.Equal(t, 3, len(hand))
	assert.Equal(t, 4, len(clone))
}

func TestHand_HighCard(t *testing.T) {
	assert.Equal(t, (*Card)(nil), Hand{}.HighCard())

	hand := HandFromString("13d,13h,10s,5h,5c")
	assert.Equal(t, "13h", CardToString(hand.HighCard()))

	hand = HandFromString("13d,13s,10s,5h,5c")
	assert.Equal(t, "13s", CardToString(hand.HighCard()))
}
