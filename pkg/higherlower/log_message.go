package higherlower

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"higherlower-server/pkg/deck"
)

const logMessageLimit = 25

// LogMessage is an entry in the game log
type LogMessage struct {
	UUID    string       `json:"uuid"`
	Cards   []*deck.Card `json:"cards"`
	Message string       `json:"message"`
	Time    time.Time    `json:"time"`
}

func newLogMessage(card *deck.Card, format string, a ...interface{}) *LogMessage {
	var cards []*deck.Card
	if card != nil {
		cards = []*deck.Card{card}
	}

	return &LogMessage{
		UUID:    uuid.New().String(),
		Cards:   cards,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// logMessageForResult describes a resolved round
func logMessageForResult(res *Result, score int) *LogMessage {
	switch res.Event {
	case EventBonusCard:
		return newLogMessage(res.Card, "Drew %s, the bonus round is on", res.Card)
	case EventForgivenessCard:
		return newLogMessage(res.Card, "Drew %s, a second chance is banked", res.Card)
	case EventCorrect:
		return newLogMessage(res.Card, "Guessed %s and drew %s (+1)", res.Guess, res.Card)
	case EventForgivenessPayout:
		return newLogMessage(res.Card, "Guessed %s and drew %s, second chance paid double (+%d)", res.Guess, res.Card, res.ScoreDelta)
	case EventForgiven:
		return newLogMessage(res.Card, "Guessed %s and drew %s, a second chance was used", res.Guess, res.Card)
	case EventBonusStep:
		return newLogMessage(res.Card, "Guessed %s and drew %s, bonus pattern still matches (+1)", res.Guess, res.Card)
	case EventBonusComplete:
		return newLogMessage(res.Card, "Guessed %s and drew %s, bonus pattern complete (+%d)", res.Guess, res.Card, res.ScoreDelta)
	case EventBonusForfeit:
		return newLogMessage(res.Card, "Guessed %s and drew %s, bonus pattern broken", res.Guess, res.Card)
	case EventWrong:
		return newLogMessage(res.Card, "Guessed %s and drew %s, game over with a score of %d", res.Guess, res.Card, score)
	case EventDeckExhausted:
		return newLogMessage(nil, "The deck is empty, game over with a score of %d", score)
	}

	panic(fmt.Sprintf("unknown event: %s", res.Event))
}

// addLogMessage adds a log message, keeping only the most recent logMessageLimit
func (s *Session) addLogMessage(message *LogMessage) {
	m := append(s.logMessages, message)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	s.logMessages = m
}
