package higherlower

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"higherlower-server/internal/rng"
	"higherlower-server/pkg/deck"
)

// Options contains options for creating a new session
type Options struct {
	// TrueSight allows the player to preview the next card
	TrueSight bool

	// Generator shuffles the deck. If nil, rng.Crypto is used.
	Generator rng.Generator

	// Name is the display name of the session
	Name string
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		TrueSight: false,
		Generator: rng.Crypto{},
	}
}

// Session coordinates a deck and a round engine for a single player
// The lifecycle is NewSession, Configure, Start, then Guess until the game is over.
// Configure may be called again at any time to play a fresh game.
type Session struct {
	UUID string
	Name string

	options     Options
	logger      logrus.FieldLogger
	round       *Round
	logMessages []*LogMessage
	notifier    SpecialCardNotifier
}

// NewSession returns a new, unconfigured session
func NewSession(logger logrus.FieldLogger, options Options) *Session {
	if options.Generator == nil {
		options.Generator = rng.Crypto{}
	}

	id := uuid.New().String()
	return &Session{
		UUID:    id,
		Name:    options.Name,
		options: options,
		logger:  logger.WithField("session", id),
	}
}

// SetNotifier sets the collaborator informed of every wildcard drawn
func (s *Session) SetNotifier(notifier SpecialCardNotifier) {
	s.notifier = notifier
}

// Configure builds a new deck and resets the game state
func (s *Session) Configure(specialEdition bool) {
	d := deck.New(specialEdition, s.options.Generator)
	s.configureDeck(d, specialEdition)
}

// configureDeck resets the game to play the provided deck
func (s *Session) configureDeck(d *deck.Deck, specialEdition bool) {
	s.round = NewRound(s.logger, d, specialEdition)
	s.logMessages = nil

	s.logger.WithFields(logrus.Fields{
		"specialEdition": specialEdition,
		"cards":          d.CardsLeft(),
		"deck":           d.HashCode(),
	}).Info("game configured")
}

// Start draws the first reference card
func (s *Session) Start() error {
	if s.round == nil {
		return ErrNotConfigured
	}

	if err := s.round.Start(); err != nil {
		return err
	}

	card := s.round.ReferenceCard()
	s.addLogMessage(newLogMessage(card, "The first card is %s", card))
	return nil
}

// Guess resolves the next round
func (s *Session) Guess(guess Guess) (*Result, error) {
	if s.round == nil {
		return nil, ErrNotConfigured
	}

	res, err := s.round.Resolve(guess)
	if err != nil {
		return nil, err
	}

	if res.Card != nil && res.Card.IsWild() && s.notifier != nil {
		s.notifier.SpecialCardDrawn(res.Card)
	}

	s.addLogMessage(logMessageForResult(res, s.round.Score()))
	if res.IsGameOver() {
		s.logger.WithFields(logrus.Fields{
			"score":  s.round.Score(),
			"reason": res.Reason,
		}).Info("game over")
	}

	return res, nil
}

// Score returns the current score
func (s *Session) Score() int {
	if s.round == nil {
		return 0
	}

	return s.round.Score()
}

// CardsRemaining returns the number of ordinary cards left to play
func (s *Session) CardsRemaining() int {
	if s.round == nil {
		return 0
	}

	return s.round.CardsRemaining()
}

// Charges returns the number of banked forgiveness charges
func (s *Session) Charges() int {
	if s.round == nil {
		return 0
	}

	return s.round.Charges()
}

// BonusActive returns true while a bonus attempt is in progress
func (s *Session) BonusActive() bool {
	return s.round != nil && s.round.BonusActive()
}

// BonusRound returns the position within the bonus pattern
func (s *Session) BonusRound() int {
	if s.round == nil {
		return 0
	}

	return s.round.BonusRound()
}

// CurrentCard returns the reference card
func (s *Session) CurrentCard() *deck.Card {
	if s.round == nil {
		return nil
	}

	return s.round.ReferenceCard()
}

// LastDrawn returns the most recently drawn card
func (s *Session) LastDrawn() *deck.Card {
	if s.round == nil {
		return nil
	}

	return s.round.LastDrawn()
}

// PeekTop returns the next card if TrueSight is enabled, otherwise nil
func (s *Session) PeekTop() *deck.Card {
	if s.round == nil || !s.options.TrueSight {
		return nil
	}

	return s.round.PeekTop()
}

// IsSpecialEdition returns true if wildcards are enabled
func (s *Session) IsSpecialEdition() bool {
	return s.round != nil && s.round.IsSpecialEdition()
}

// IsGameOver returns true if the game has ended
func (s *Session) IsGameOver() bool {
	return s.round != nil && s.round.IsGameOver()
}

// Log returns the most recent log messages, oldest first
func (s *Session) Log() []*LogMessage {
	m := make([]*LogMessage, len(s.logMessages))
	copy(m, s.logMessages)
	return m
}

// String returns a traceable identifier for the session
func (s *Session) String() string {
	if s.Name == "" {
		return s.UUID
	}

	return fmt.Sprintf("%s (%s)", s.Name, s.UUID)
}
