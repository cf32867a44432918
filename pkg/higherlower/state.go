package higherlower

import (
	"higherlower-server/pkg/deck"
)

// State is a read-only view of the session for renderers
type State struct {
	UUID           string     `json:"uuid"`
	Name           string     `json:"name"`
	Configured     bool       `json:"configured"`
	Started        bool       `json:"started"`
	GameOver       bool       `json:"gameOver"`
	SpecialEdition bool       `json:"specialEdition"`
	Score          int        `json:"score"`
	CardsRemaining int        `json:"cardsRemaining"`
	Charges        int        `json:"charges"`
	CardsDrawn     int        `json:"cardsDrawn"`
	WildcardsDrawn int        `json:"wildcardsDrawn"`
	Mode           string     `json:"mode"`
	Bonus          BonusState `json:"bonus"`
	CurrentCard    *deck.Card `json:"currentCard"`
	LastDrawn      *deck.Card `json:"lastDrawn"`
	LastDrawnName  string     `json:"lastDrawnName"`
	Preview        *deck.Card `json:"preview,omitempty"`
}

// BonusState is the progress of the bonus attempt
type BonusState struct {
	Active bool   `json:"active"`
	Round  int    `json:"round"`
	Rounds int    `json:"rounds"`
	Record []bool `json:"record"`
}

// State returns a snapshot of the session
func (s *Session) State() *State {
	state := &State{
		UUID: s.UUID,
		Name: s.Name,
		Mode: PlainMode{}.String(),
		Bonus: BonusState{
			Rounds: len(BonusPattern),
			Record: []bool{},
		},
	}

	r := s.round
	if r == nil {
		return state
	}

	state.Configured = true
	state.Started = r.IsStarted()
	state.GameOver = r.IsGameOver()
	state.SpecialEdition = r.IsSpecialEdition()
	state.Score = r.Score()
	state.CardsRemaining = r.CardsRemaining()
	state.Charges = r.Charges()

	drawn := r.Drawn()
	state.CardsDrawn = len(drawn)
	state.WildcardsDrawn = drawn.Count(func(c *deck.Card) bool {
		return c.IsWild()
	})

	state.Mode = r.Mode().String()
	state.CurrentCard = r.ReferenceCard()
	state.LastDrawn = r.LastDrawn()
	if state.LastDrawn != nil {
		state.LastDrawnName = state.LastDrawn.Name()
	}

	if r.BonusActive() {
		state.Bonus.Active = true
		state.Bonus.Round = r.BonusRound()
		state.Bonus.Record = r.BonusRecord()
	}

	if !state.GameOver {
		state.Preview = s.PeekTop()
	}

	return state
}
