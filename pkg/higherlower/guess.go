package higherlower

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Guess is the player's prediction for the next card
type Guess int

// Guess constants
// The zero value is not a valid guess.
const (
	GuessHigher Guess = iota + 1
	GuessLower
)

// IsValid returns true if the guess is higher or lower
func (g Guess) IsValid() bool {
	return g == GuessHigher || g == GuessLower
}

func (g Guess) String() string {
	switch g {
	case GuessHigher:
		return "higher"
	case GuessLower:
		return "lower"
	}

	panic(fmt.Sprintf("invalid guess: %d", g))
}

// MarshalJSON encodes the guess as a string
func (g Guess) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON decodes the guess from a string
func (g *Guess) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	guess, err := GuessFromString(s)
	if err != nil {
		return err
	}

	*g = guess
	return nil
}

// GuessFromString parses raw player input
// It accepts h, higher, l or lower in any case. Anything else is an ErrInvalidGuess.
func GuessFromString(s string) (Guess, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "higher":
		return GuessHigher, nil
	case "l", "lower":
		return GuessLower, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidGuess, s)
}

// Outcome is whether the game continues after a round
type Outcome string

// Outcome constants
const (
	OutcomeContinue Outcome = "continue"
	OutcomeGameOver Outcome = "game-over"
)
