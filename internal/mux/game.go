package mux

import (
	"fmt"
	"net/http"
	"strconv"

	"higherlower-server/internal/rng"
	"higherlower-server/pkg/deck"
	"higherlower-server/pkg/higherlower"
)

type rulesResponse struct {
	SpecialEdition bool     `json:"specialEdition"`
	Rules          []string `json:"rules"`
}

func (m *Mux) getRules() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		special := m.options.SpecialEdition
		if val := r.FormValue("special"); val != "" {
			b, err := strconv.ParseBool(val)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, fmt.Errorf("special must be a boolean: %q", val))
				return
			}

			special = b
		}

		writeJSON(w, http.StatusOK, rulesResponse{
			SpecialEdition: special,
			Rules:          higherlower.Rules(special),
		})
	}
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusOK, m.lobby.List(offset, limit))
	}
}

type postGamePayload struct {
	Name           string `json:"name"`
	SpecialEdition *bool  `json:"specialEdition"`
	TrueSight      *bool  `json:"trueSight"`
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGamePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if len(pp.Name) > 40 {
			writeJSONError(w, http.StatusBadRequest, fmt.Errorf("name cannot be longer than 40 characters"))
			return
		}

		opts := higherlower.Options{
			Name:      pp.Name,
			TrueSight: m.options.TrueSight,
			Generator: m.generator(),
		}

		if pp.TrueSight != nil {
			opts.TrueSight = *pp.TrueSight
		}

		special := m.options.SpecialEdition
		if pp.SpecialEdition != nil {
			special = *pp.SpecialEdition
		}

		state, err := m.lobby.Create(opts, special)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, state)
	}
}

func (m *Mux) generator() rng.Generator {
	return rng.New(m.options.Seed)
}

func (m *Mux) getGameUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := m.lobby.Get(sessionID(r))
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func (m *Mux) deleteGameUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.lobby.Remove(sessionID(r)); err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (m *Mux) getGameUUIDLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var log []*higherlower.LogMessage
		err := m.lobby.Do(sessionID(r), func(s *higherlower.Session) error {
			log = s.Log()
			return nil
		})

		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, log)
	}
}

// specialCard is sent whenever a wildcard is drawn
type specialCard struct {
	Card        *deck.Card `json:"card"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

func newSpecialCard(card *deck.Card) specialCard {
	return specialCard{
		Card:        card,
		Name:        card.Name(),
		Description: card.Description(),
	}
}

// specialCards collects the wildcards drawn during a request
type specialCards []specialCard

func (s *specialCards) SpecialCardDrawn(card *deck.Card) {
	*s = append(*s, newSpecialCard(card))
}

// GuessResponse is the result of a guess and the state after it
type GuessResponse struct {
	Result  *higherlower.Result `json:"result"`
	State   *higherlower.State  `json:"state"`
	Special []specialCard       `json:"special,omitempty"`
	Message string              `json:"message,omitempty"`
}

// guess resolves a guess inside the session's lock
// The notifier is only attached for the duration of the guess.
func (m *Mux) guess(id string, guess higherlower.Guess, notifier higherlower.SpecialCardNotifier) (*GuessResponse, error) {
	var resp *GuessResponse
	err := m.lobby.Do(id, func(s *higherlower.Session) error {
		s.SetNotifier(notifier)
		defer s.SetNotifier(nil)

		res, err := s.Guess(guess)
		if err != nil {
			return err
		}

		resp = &GuessResponse{
			Result: res,
			State:  s.State(),
		}

		if res.IsGameOver() {
			resp.Message = fmt.Sprintf("Game over! Your final score is %d", s.Score())
		}

		return nil
	})

	return resp, err
}

type postGameUUIDGuessPayload struct {
	Guess string `json:"guess"`
}

func (m *Mux) postGameUUIDGuess() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGameUUIDGuessPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		guess, err := higherlower.GuessFromString(pp.Guess)
		if err != nil {
			writeGameError(w, err)
			return
		}

		var special specialCards
		resp, err := m.guess(sessionID(r), guess, &special)
		if err != nil {
			writeGameError(w, err)
			return
		}

		resp.Special = special
		writeJSON(w, http.StatusOK, resp)
	}
}

type postGameUUIDRestartPayload struct {
	SpecialEdition *bool `json:"specialEdition"`
}

// restart deals a new game in the existing session
func (m *Mux) restart(id string, specialEdition *bool) (*higherlower.State, error) {
	var state *higherlower.State
	err := m.lobby.Do(id, func(s *higherlower.Session) error {
		special := s.IsSpecialEdition()
		if specialEdition != nil {
			special = *specialEdition
		}

		s.Configure(special)
		if err := s.Start(); err != nil {
			return err
		}

		state = s.State()
		return nil
	})

	return state, err
}

func (m *Mux) postGameUUIDRestart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGameUUIDRestartPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		state, err := m.restart(sessionID(r), pp.SpecialEdition)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}
