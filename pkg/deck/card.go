package deck

import (
	"fmt"
	"regexp"
	"strconv"
)

// Suit represents a card suit. Lower values outrank higher ones when
// breaking ties: spades beat hearts beat clubs beat diamonds.
type Suit int

// suit constants
const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

// face cards
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// Card is an individual playing card
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"`
}

// Value returns the card's point value. Face cards all count ten.
func (c *Card) Value() int {
	if c.Rank >= Jack {
		return 10
	}

	return c.Rank
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// Beats returns true if the card beats the other card outright.
// Ranks compare first; on equal ranks the stronger suit wins.
func (c *Card) Beats(card *Card) bool {
	if c.Rank != card.Rank {
		return c.Rank > card.Rank
	}

	return c.Suit < card.Suit
}

func (c *Card) String() string {
	var rank string
	switch c.Rank {
	case Ace:
		rank = "A"
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	var suit string
	switch c.Suit {
	case Spades:
		suit = "♠"
	case Hearts:
		suit = "♡"
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	default:
		panic("unknown suit")
	}

	return fmt.Sprintf("%s%s", rank, suit)
}

var cardRx = regexp.MustCompile(`(?i)^([1-9]|1[0-3])([shcd])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank is between 1
// and 13 and suit is one of [shcd].
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch match[2] {
	case "s", "S":
		suit = Spades
	case "h", "H":
		suit = Hearts
	case "c", "C":
		suit = Clubs
	case "d", "D":
		suit = Diamonds
	default:
		// should never be hit due to the regexp
		panic("unknown suit")
	}

	return &Card{
		Suit: suit,
		Rank: rank,
	}
}

// CardToString converts a card (Ace of Spades) to a string (1s)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	var suit string
	switch card.Suit {
	case Spades:
		suit = "s"
	case Hearts:
		suit = "h"
	case Clubs:
		suit = "c"
	case Diamonds:
		suit = "d"
	}

	return fmt.Sprintf("%d%s", card.Rank, suit)
}
