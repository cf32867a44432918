package mux

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"higherlower-server/pkg/higherlower"
	"higherlower-server/pkg/lobby"
)

func newTestMux(opts Options) *Mux {
	return NewMux("v1.2.3", lobby.New(logrus.StandardLogger(), lobby.DefaultOptions()), opts)
}

func Test_remoteAddr(t *testing.T) {
	r := &http.Request{RemoteAddr: "127.0.0.1:5000"}
	assert.Equal(t, "127.0.0.1", remoteAddr(r))

	r.RemoteAddr = "[::1]:5000"
	assert.Equal(t, "[::1]", remoteAddr(r))
}

func Test_parsePaginationOptions(t *testing.T) {
	req := func(queryString string) *http.Request {
		req, _ := http.NewRequest(http.MethodGet, "https://example.domain/"+queryString, nil)
		return req
	}

	start, rows, err := parsePaginationOptions(req(""))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), start)
	assert.Equal(t, defaultRows, rows)

	start, rows, err = parsePaginationOptions(req("?start=10&rows=25"))
	assert.NoError(t, err)
	assert.Equal(t, int64(10), start)
	assert.Equal(t, 25, rows)

	start, rows, err = parsePaginationOptions(req("?start=-1&rows=25"))
	assert.EqualError(t, err, "start cannot be less than zero")
	assert.Equal(t, int64(0), start)
	assert.Equal(t, 0, rows)

	start, rows, err = parsePaginationOptions(req("?start=0&rows=0"))
	assert.EqualError(t, err, "rows must be greater than zero")
	assert.Equal(t, int64(0), start)
	assert.Equal(t, 0, rows)

	start, rows, err = parsePaginationOptions(req(fmt.Sprintf("?start=0&rows=%d", maxRows+1)))
	assert.EqualError(t, err, fmt.Sprintf("rows cannot be greater than %d", maxRows))
	assert.Equal(t, int64(0), start)
	assert.Equal(t, 0, rows)
}

func Test_writeGameError(t *testing.T) {
	tests := []struct {
		err        error
		statusCode int
	}{
		{fmt.Errorf("%w: %q", higherlower.ErrInvalidGuess, "x"), http.StatusBadRequest},
		{higherlower.ErrGameIsOver, http.StatusConflict},
		{higherlower.ErrNotStarted, http.StatusConflict},
		{lobby.ErrSessionNotFound, http.StatusNotFound},
		{lobby.ErrLobbyFull, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, test := range tests {
		w := httptest.NewRecorder()
		writeGameError(w, test.err)
		assert.Equal(t, test.statusCode, w.Code, test.err.Error())
	}
}
