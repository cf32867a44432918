package higherlower

import (
	"higherlower-server/pkg/deck"
)

// GuessSource provides the player's guess
// Raw input must be validated by the source, i.e., with GuessFromString.
type GuessSource interface {
	NextGuess(state *State) (Guess, error)
}

// Renderer displays the state after each round
// Renderers must not modify the session.
type Renderer interface {
	Render(state *State, result *Result)
}

// SpecialCardNotifier is informed when a wildcard is drawn
type SpecialCardNotifier interface {
	SpecialCardDrawn(card *deck.Card)
}

// Play runs a started game to the end and returns the final score
func (s *Session) Play(source GuessSource, renderer Renderer) (int, error) {
	if s.round == nil {
		return 0, ErrNotConfigured
	}

	if !s.round.IsStarted() {
		return 0, ErrNotStarted
	}

	for !s.round.IsGameOver() {
		guess, err := source.NextGuess(s.State())
		if err != nil {
			return s.Score(), err
		}

		res, err := s.Guess(guess)
		if err != nil {
			return s.Score(), err
		}

		renderer.Render(s.State(), res)
	}

	return s.Score(), nil
}
