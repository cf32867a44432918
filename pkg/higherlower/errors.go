package higherlower

import "errors"

// ErrInvalidGuess is returned when the guess is neither higher nor lower
var ErrInvalidGuess = errors.New("guess must be higher or lower")

// ErrNotConfigured is returned when the session is used before Configure()
var ErrNotConfigured = errors.New("game has not been configured")

// ErrNotStarted is returned when a guess is made before Start()
var ErrNotStarted = errors.New("game has not been started")

// ErrAlreadyStarted is returned when Start() is called twice
var ErrAlreadyStarted = errors.New("game has already been started")

// ErrGameIsOver is returned when a guess is made on an ended game
var ErrGameIsOver = errors.New("game is over")

// ErrNoNormalCard is returned when the game cannot start because the top card is a wildcard
var ErrNoNormalCard = errors.New("the first card must be an ordinary card")
