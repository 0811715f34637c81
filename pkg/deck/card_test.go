package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_Value(t *testing.T) {
	a := assert.New(t)
	a.Equal(1, CardFromString("1s").Value())
	a.Equal(9, CardFromString("9d").Value())
	a.Equal(10, CardFromString("10c").Value())
	a.Equal(10, CardFromString("11h").Value())
	a.Equal(10, CardFromString("12s").Value())
	a.Equal(10, CardFromString("13d").Value())
}

func TestCard_Beats(t *testing.T) {
	a := assert.New(t)

	a.True(CardFromString("13d").Beats(CardFromString("12s")))
	a.False(CardFromString("12s").Beats(CardFromString("13d")))

	// equal rank falls through to suit order: spades > hearts > clubs > diamonds
	a.True(CardFromString("13s").Beats(CardFromString("13h")))
	a.True(CardFromString("13h").Beats(CardFromString("13c")))
	a.True(CardFromString("13c").Beats(CardFromString("13d")))
	a.False(CardFromString("13d").Beats(CardFromString("13s")))

	a.False(CardFromString("7h").Beats(CardFromString("7h")))
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card := CardFromString("13s")
	a.Equal(King, card.Rank)
	a.Equal(Spades, card.Suit)

	card = CardFromString("1d")
	a.Equal(Ace, card.Rank)
	a.Equal(Diamonds, card.Suit)

	a.Nil(CardFromString(""))

	a.PanicsWithValue("could not parse card: 14s", func() {
		CardFromString("14s")
	})

	a.PanicsWithValue("could not parse card: 0h", func() {
		CardFromString("0h")
	})
}

func TestCard_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("A♠", CardFromString("1s").String())
	a.Equal("J♣", CardFromString("11c").String())
	a.Equal("Q♡", CardFromString("12h").String())
	a.Equal("K♢", CardFromString("13d").String())
	a.Equal("7♠", CardFromString("7s").String())
}

func TestCardToString(t *testing.T) {
	a := assert.New(t)
	a.Equal("", CardToString(nil))
	a.Equal("10h", CardToString(&Card{Suit: Hearts, Rank: 10}))
	a.Equal("1s,13d", CardsToString(CardsFromString("1s,13d")))
}
