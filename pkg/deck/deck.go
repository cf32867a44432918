package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"

	"higherlower-server/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// special edition composition
const (
	// ForgivenessCards is how many forgiveness wildcards are shuffled into the deck
	ForgivenessCards = 4

	// BonusCards is how many bonus wildcards are placed into the deck
	BonusCards = 2
)

// BonusPositions are the 1-indexed draw positions, counted from the start of the game, of the bonus wildcards
var BonusPositions = [BonusCards]int{5, 20}

// Deck represents a playing deck
// Cards[0] is the top of the deck and will be the next card drawn.
type Deck struct {
	Cards []*Card `json:"cards"`

	startingNormalCount int
}

// New returns a new shuffled deck.
// If specialEdition is true, the forgiveness wildcards are shuffled in, the deck is reshuffled
// until the top card is an ordinary card, and the bonus wildcards are placed at BonusPositions.
func New(specialEdition bool, gen rng.Generator) *Deck {
	cards := standardCards()
	if specialEdition {
		for i := 1; i <= ForgivenessCards; i++ {
			cards = append(cards, NewWildcard(Forgiveness, i))
		}
	}

	d := &Deck{
		Cards:               cards,
		startingNormalCount: len(standardCards()),
	}

	d.Shuffle(gen)
	if !specialEdition {
		return d
	}

	for d.Cards[0].IsWild() {
		d.Shuffle(gen)
	}

	d.placeBonusCards()
	return d
}

// NewFromCards returns a deck with the cards in draw order
// This is useful for tests and replays. The starting normal count is the number of ordinary cards.
// A card that appears twice will panic.
func NewFromCards(cards []*Card) *Deck {
	seen := make(Hand, 0, len(cards))
	for _, card := range cards {
		if seen.HasCard(card) {
			panic(fmt.Sprintf("duplicate card: %s", card))
		}

		seen.AddCard(card)
	}

	return &Deck{
		Cards:               seen,
		startingNormalCount: len(cards) - seen.Count(func(c *Card) bool { return c.IsWild() }),
	}
}

func standardCards() []*Card {
	cards := make([]*Card, 0, 52+ForgivenessCards+BonusCards)
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	return cards
}

// placeBonusCards assigns the bonus wildcards to their absolute draw positions and fills
// every other position with the shuffled cards, in order
func (d *Deck) placeBonusCards() {
	total := len(d.Cards) + BonusCards
	if total < BonusPositions[BonusCards-1] {
		panic("deck is too small for the bonus cards")
	}

	cards := make([]*Card, total)
	for i, pos := range BonusPositions {
		cards[pos-1] = NewWildcard(Bonus, i+1)
	}

	next := 0
	for i := range cards {
		if cards[i] != nil {
			continue
		}

		cards[i] = d.Cards[next]
		next++
	}

	d.Cards = cards
}

// Shuffle will shuffle the remaining cards in the deck
func (d *Deck) Shuffle(gen rng.Generator) {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// StartingNormalCount is the number of ordinary cards in the deck when it was built
// It never changes, regardless of how many cards are drawn.
func (d *Deck) StartingNormalCount() int {
	return d.startingNormalCount
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	if len(d.Cards) <= 0 {
		return nil, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// PeekTop returns the next card without drawing it, or nil if the deck is empty
func (d *Deck) PeekTop() *Card {
	if len(d.Cards) == 0 {
		return nil
	}

	return d.Cards[0]
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
