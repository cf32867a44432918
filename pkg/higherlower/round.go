package higherlower

import (
	"higherlower-server/pkg/deck"

	"github.com/sirupsen/logrus"
)

// BonusPattern is the sequence of outcomes a bonus attempt must match, true being a correct guess
var BonusPattern = [...]bool{true, true, true, false, false, true, true, true}

// scoring constants
const (
	// BonusPoints are awarded on top of the per-round points when the pattern is matched
	BonusPoints = 10

	// ForgivenessPoints are awarded for a correct guess after a forgiven wrong guess
	ForgivenessPoints = 2
)

// Event describes what happened in a round
type Event string

// Event constants
const (
	EventBonusCard         Event = "bonus-card"
	EventForgivenessCard   Event = "forgiveness-card"
	EventCorrect           Event = "correct"
	EventWrong             Event = "wrong"
	EventForgiven          Event = "forgiven"
	EventForgivenessPayout Event = "forgiveness-payout"
	EventBonusStep         Event = "bonus-step"
	EventBonusComplete     Event = "bonus-complete"
	EventBonusForfeit      Event = "bonus-forfeit"
	EventDeckExhausted     Event = "deck-exhausted"
)

// GameOverReason explains why a game ended
type GameOverReason string

// GameOverReason constants
const (
	ReasonWrongGuess     GameOverReason = "wrong-guess"
	ReasonAllCardsPlayed GameOverReason = "all-cards-played"
	ReasonDeckExhausted  GameOverReason = "deck-exhausted"
)

// Result is the result of resolving a single guess
type Result struct {
	Outcome    Outcome        `json:"outcome"`
	Guess      Guess          `json:"guess"`
	Card       *deck.Card     `json:"card"`
	ScoreDelta int            `json:"scoreDelta"`
	Event      Event          `json:"event"`
	Reason     GameOverReason `json:"reason,omitempty"`
}

// IsGameOver returns true if the round ended the game
func (r *Result) IsGameOver() bool {
	return r.Outcome == OutcomeGameOver
}

// Round holds the state of a single game and resolves one guess at a time
// A Round is not safe for concurrent use.
type Round struct {
	deck           *deck.Deck
	specialEdition bool
	logger         logrus.FieldLogger

	referenceCard    *deck.Card
	normalCardsDrawn int
	score            int
	charges          int
	mode             Mode
	drawn            deck.Hand

	started  bool
	gameOver bool
}

// NewRound returns a new round engine that will play the deck
func NewRound(logger logrus.FieldLogger, d *deck.Deck, specialEdition bool) *Round {
	return &Round{
		deck:           d,
		specialEdition: specialEdition,
		logger:         logger,
		mode:           PlainMode{},
		drawn:          make(deck.Hand, 0, d.CardsLeft()),
	}
}

// Start draws the first reference card
func (r *Round) Start() error {
	if r.started {
		return ErrAlreadyStarted
	}

	if top := r.deck.PeekTop(); top == nil || top.IsWild() {
		return ErrNoNormalCard
	}

	card, _ := r.deck.Draw()
	r.drawn.AddCard(card)
	r.referenceCard = card
	r.normalCardsDrawn++
	r.started = true

	r.logger.WithField("card", card.String()).Debug("game started")
	return nil
}

// Resolve draws the next card and scores the guess against the reference card
func (r *Round) Resolve(guess Guess) (*Result, error) {
	if !guess.IsValid() {
		return nil, ErrInvalidGuess
	}

	if !r.started {
		return nil, ErrNotStarted
	}

	if r.gameOver {
		return nil, ErrGameIsOver
	}

	if !r.deck.CanDraw(1) {
		r.logger.WithField("score", r.score).Warn("deck ran out before every ordinary card was played")
		r.gameOver = true
		return &Result{
			Outcome: OutcomeGameOver,
			Guess:   guess,
			Event:   EventDeckExhausted,
			Reason:  ReasonDeckExhausted,
		}, nil
	}

	card, _ := r.deck.Draw()
	r.drawn.AddCard(card)

	// wildcards never consume the guess and never replace the reference card
	switch card.Rank {
	case deck.Bonus:
		if _, isBonus := r.mode.(*BonusMode); !isBonus {
			r.mode = newBonusMode(r.mode)
		}

		r.logger.WithField("card", card.String()).Debug("bonus attempt started")
		return r.result(OutcomeContinue, guess, card, 0, EventBonusCard), nil
	case deck.Forgiveness:
		r.charges++

		r.logger.WithFields(logrus.Fields{
			"card":    card.String(),
			"charges": r.charges,
		}).Debug("forgiveness charge banked")
		return r.result(OutcomeContinue, guess, card, 0, EventForgivenessCard), nil
	}

	isCorrect := card.Higher(r.referenceCard) == (guess == GuessHigher)
	r.normalCardsDrawn++

	var delta int
	var event Event
	if bonus, isBonus := r.mode.(*BonusMode); isBonus {
		delta, event = r.resolveBonus(bonus, isCorrect)
	} else if isCorrect {
		if _, isForgiveness := r.mode.(ForgivenessMode); isForgiveness {
			delta, event = ForgivenessPoints, EventForgivenessPayout
			r.mode = PlainMode{}
		} else {
			delta, event = 1, EventCorrect
		}
	} else if r.canForgive() {
		r.charges--
		r.mode = ForgivenessMode{}
		event = EventForgiven
	} else {
		r.gameOver = true

		r.logger.WithFields(logrus.Fields{
			"card":      card.String(),
			"reference": r.referenceCard.String(),
			"score":     r.score,
		}).Debug("wrong guess, game over")

		res := r.result(OutcomeGameOver, guess, card, 0, EventWrong)
		res.Reason = ReasonWrongGuess
		return res, nil
	}

	r.score += delta

	r.logger.WithFields(logrus.Fields{
		"card":      card.String(),
		"reference": r.referenceCard.String(),
		"event":     event,
		"score":     r.score,
	}).Debug("round resolved")

	if r.normalCardsDrawn == r.deck.StartingNormalCount() {
		r.gameOver = true

		res := r.result(OutcomeGameOver, guess, card, delta, event)
		res.Reason = ReasonAllCardsPlayed
		return res, nil
	}

	r.referenceCard = card
	return r.result(OutcomeContinue, guess, card, delta, event), nil
}

// resolveBonus scores an ordinary card while a bonus attempt is active
// Any exit from the attempt returns to the mode that was active before it started.
func (r *Round) resolveBonus(bonus *BonusMode, isCorrect bool) (int, Event) {
	required := BonusPattern[bonus.RoundIndex]
	if isCorrect != required {
		r.mode = bonus.resume
		return 0, EventBonusForfeit
	}

	bonus.Record = append(bonus.Record, required)
	if len(bonus.Record) == len(BonusPattern) {
		r.mode = bonus.resume
		return 1 + BonusPoints, EventBonusComplete
	}

	bonus.RoundIndex++
	return 1, EventBonusStep
}

// canForgive returns true if a charge can save a wrong guess
// A charge is never spent on the last ordinary card.
func (r *Round) canForgive() bool {
	return r.specialEdition && r.charges > 0 && r.normalCardsDrawn < r.deck.StartingNormalCount()
}

func (r *Round) result(outcome Outcome, guess Guess, card *deck.Card, delta int, event Event) *Result {
	return &Result{
		Outcome:    outcome,
		Guess:      guess,
		Card:       card,
		ScoreDelta: delta,
		Event:      event,
	}
}

// Score returns the current score
func (r *Round) Score() int {
	return r.score
}

// NormalCardsDrawn returns the number of ordinary cards drawn, including the first reference card
func (r *Round) NormalCardsDrawn() int {
	return r.normalCardsDrawn
}

// CardsRemaining returns the number of ordinary cards that have not been drawn
func (r *Round) CardsRemaining() int {
	return r.deck.StartingNormalCount() - r.normalCardsDrawn
}

// Charges returns the number of banked forgiveness charges
func (r *Round) Charges() int {
	return r.charges
}

// Mode returns the active scoring mode
func (r *Round) Mode() Mode {
	return r.mode
}

// ReferenceCard returns the card the next guess is compared against
func (r *Round) ReferenceCard() *deck.Card {
	return r.referenceCard
}

// LastDrawn returns the most recently drawn card, wildcards included
func (r *Round) LastDrawn() *deck.Card {
	return r.drawn.LastCard()
}

// Drawn returns every card drawn so far, in order
func (r *Round) Drawn() deck.Hand {
	return r.drawn.Clone()
}

// BonusActive returns true while a bonus attempt is in progress
func (r *Round) BonusActive() bool {
	_, isBonus := r.mode.(*BonusMode)
	return isBonus
}

// BonusRound returns the position within the bonus pattern, or 0 if no attempt is active
func (r *Round) BonusRound() int {
	if bonus, isBonus := r.mode.(*BonusMode); isBonus {
		return bonus.RoundIndex
	}

	return 0
}

// BonusRecord returns a copy of the outcomes matched in the active bonus attempt
func (r *Round) BonusRecord() []bool {
	bonus, isBonus := r.mode.(*BonusMode)
	if !isBonus {
		return nil
	}

	record := make([]bool, len(bonus.Record))
	copy(record, bonus.Record)
	return record
}

// ForgivenessPending returns true if the next correct guess earns ForgivenessPoints
// This is also true while a bonus attempt started from a pending forgiveness is running.
func (r *Round) ForgivenessPending() bool {
	switch mode := r.mode.(type) {
	case ForgivenessMode:
		return true
	case *BonusMode:
		_, ok := mode.resume.(ForgivenessMode)
		return ok
	}

	return false
}

// PeekTop returns the next card without drawing it
func (r *Round) PeekTop() *deck.Card {
	return r.deck.PeekTop()
}

// IsSpecialEdition returns true if wildcards are enabled
func (r *Round) IsSpecialEdition() bool {
	return r.specialEdition
}

// IsStarted returns true once the first reference card is drawn
func (r *Round) IsStarted() bool {
	return r.started
}

// IsGameOver returns true when no further guesses will be accepted
func (r *Round) IsGameOver() bool {
	return r.gameOver
}
