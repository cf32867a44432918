package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"

	// Bulls is reserved for the special edition wildcards
	Bulls Suit = "bulls"
)

// Suits are the ordinary suits, weakest first
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Weight is the tiebreak value added to the rank weight
// Every ordinary suit has a distinct weight strictly between 0 and 1.
func (s Suit) Weight() float64 {
	switch s {
	case Clubs:
		return 0.025
	case Diamonds:
		return 0.5
	case Hearts:
		return 0.75
	case Spades:
		return 0.99
	}

	return 0
}

// Rank is the rank of a card
type Rank int

// face cards
const (
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// wildcard ranks, the values are jersey numbers and never compared
const (
	// Bonus starts the bonus mini-game
	Bonus Rank = 23

	// Forgiveness banks a second chance
	Forgiveness Rank = 91
)

// MinRank and MaxRank bound the ordinary ranks
const (
	MinRank Rank = 2
	MaxRank Rank = Ace
)

// Weight returns the comparison weight of the rank, or zero for a wildcard
func (r Rank) Weight() int {
	if r.IsWild() {
		return 0
	}

	return int(r)
}

// IsWild returns true if the rank belongs to a special edition wildcard
func (r Rank) IsWild() bool {
	return r == Bonus || r == Forgiveness
}

func (r Rank) String() string {
	switch r {
	case Jack:
		return "jack"
	case Queen:
		return "queen"
	case King:
		return "king"
	case Ace:
		return "ace"
	case Bonus:
		return "mj"
	case Forgiveness:
		return "rodman"
	}

	if r >= MinRank && r <= MaxRank {
		return strconv.Itoa(int(r))
	}

	panic(fmt.Sprintf("unknown rank: %d", int(r)))
}

// Card is an individual playing card
// Count identifies wildcards of the same rank (1..N). It is zero for ordinary cards.
type Card struct {
	Rank  Rank `json:"rank"`
	Suit  Suit `json:"suit"`
	Count int  `json:"count,omitempty"`
}

// NewWildcard returns the nth wildcard of the rank
func NewWildcard(rank Rank, count int) *Card {
	if !rank.IsWild() {
		panic(fmt.Sprintf("rank %s is not a wildcard", rank))
	}

	return &Card{
		Rank:  rank,
		Suit:  Bulls,
		Count: count,
	}
}

// Value is the rank weight plus the suit weight
func (c *Card) Value() float64 {
	return float64(c.Rank.Weight()) + c.Suit.Weight()
}

// IsWild returns true if the card is a wildcard
func (c *Card) IsWild() bool {
	return c.Rank.IsWild()
}

// Higher returns true if c is strictly higher than card
// Wildcards cannot be compared.
func (c *Card) Higher(card *Card) bool {
	if c.IsWild() || card.IsWild() {
		panic("wildcards cannot be compared")
	}

	return c.Value() > card.Value()
}

// Equal returns true if the cards are equal (matches suit, rank and count)
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank && c.Count == card.Count
}

// Name is the key used to look up the card art, i.e., 7_of_diamonds or mj_of_bulls_2
func (c *Card) Name() string {
	if c.IsWild() {
		return fmt.Sprintf("%s_of_%s_%d", c.Rank, c.Suit, c.Count)
	}

	return fmt.Sprintf("%s_of_%s", c.Rank, c.Suit)
}

// Description explains what a wildcard does
func (c *Card) Description() string {
	switch c.Rank {
	case Bonus:
		return "Guess the next 8 cards in the sequence (W, W, W, L, L, W, W, W) to win 10 bonus points!"
	case Forgiveness:
		return "Get a 2nd chance on the next card you get wrong, then win double points!"
	}

	return ""
}

func (c *Card) String() string {
	switch c.Rank {
	case Bonus:
		return fmt.Sprintf("MJ#%d", c.Count)
	case Forgiveness:
		return fmt.Sprintf("Rodman#%d", c.Count)
	}

	var rank string
	switch c.Rank {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(int(c.Rank))
	}

	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return fmt.Sprintf("%s%s", rank, suit)
}

var cardRx = regexp.MustCompile(`(?i)^(?:([2-9]|1[0-4])([cdhs])|(mj|rodman)([0-9]+))\z`)

// CardFromString returns a Card from the string.
// Ordinary cards are <rank><suit> where rank >= 2 and <= 14 and suit in [cdhs].
// Wildcards are mj<count> or rodman<count>.
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	if match[3] != "" {
		count, err := strconv.Atoi(match[4])
		if err != nil {
			panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
		}

		if strings.ToLower(match[3]) == "mj" {
			return NewWildcard(Bonus, count)
		}

		return NewWildcard(Forgiveness, count)
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	default:
		// should never be hit due to the regexp
		panic("unknown suit")
	}

	return &Card{
		Rank: Rank(rank),
		Suit: suit,
	}
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(strings.TrimSpace(card))
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	switch card.Rank {
	case Bonus:
		return fmt.Sprintf("mj%d", card.Count)
	case Forgiveness:
		return fmt.Sprintf("rodman%d", card.Count)
	}

	var suit string
	switch card.Suit {
	case Clubs:
		suit = "c"
	case Hearts:
		suit = "h"
	case Diamonds:
		suit = "d"
	case Spades:
		suit = "s"
	}

	return fmt.Sprintf("%d%s", card.Rank, suit)
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,mj1,...
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
