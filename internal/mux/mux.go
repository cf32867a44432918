package mux

import (
	"context"
	"net/http"

	gmux "github.com/gorilla/mux"
	"higherlower-server/pkg/lobby"
)

type ctxKey int

const (
	ctxSessionKey ctxKey = iota
)

// Options are the defaults for games created through the mux
type Options struct {
	SpecialEdition bool
	TrueSight      bool

	// Seed deals every game from the same deck when non-zero
	Seed int64
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	options Options
	version string
	lobby   *lobby.Lobby
}

// NewMux returns a new HTTP mux
func NewMux(version string, l *lobby.Lobby, options Options) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		options: options,
		version: version,
		lobby:   l,
	}

	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/rules").Handler(this.getRules())
		r.Methods(http.MethodGet).Path("/game").Handler(this.getGame())
		r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())
	}

	// requires an active session
	{
		gr := this.Router.PathPrefix("/game/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		gr.Use(this.sessionMiddleware)

		gr.Methods(http.MethodGet).Path("").Handler(this.getGameUUID())
		gr.Methods(http.MethodDelete).Path("").Handler(this.deleteGameUUID())
		gr.Methods(http.MethodGet).Path("/log").Handler(this.getGameUUIDLog())
		gr.Methods(http.MethodGet).Path("/ws").Handler(this.getGameUUIDWS())
		gr.Methods(http.MethodPost).Path("/guess").Handler(this.postGameUUIDGuess())
		gr.Methods(http.MethodPost).Path("/restart").Handler(this.postGameUUIDRestart())
	}

	return this
}

func (m *Mux) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := gmux.Vars(r)["uuid"]
		state, err := m.lobby.Get(id)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxSessionKey, state.UUID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func sessionID(r *http.Request) string {
	return r.Context().Value(ctxSessionKey).(string)
}
