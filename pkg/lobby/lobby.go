package lobby

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"higherlower-server/internal/util"
	"higherlower-server/pkg/higherlower"
)

// ErrSessionNotFound is returned when the session does not exist or has been evicted
var ErrSessionNotFound = errors.New("session not found")

// ErrLobbyFull is returned when no more sessions can be created
var ErrLobbyFull = errors.New("too many active sessions")

// Options contains options for the lobby
type Options struct {
	// MaxIdle is how long a session may go unused before it is evicted
	MaxIdle time.Duration

	// MaxSessions is the maximum number of sessions. Zero means unlimited.
	MaxSessions int

	// SweepInterval is how often idle sessions are evicted
	SweepInterval time.Duration
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		MaxIdle:       time.Minute * 30,
		MaxSessions:   1000,
		SweepInterval: time.Minute,
	}
}

// Entry is a single session in the lobby
type Entry struct {
	Session *higherlower.Session

	lock       sync.Mutex
	lastActive time.Time
	seq        int64
}

// Lobby keeps every active session in memory
type Lobby struct {
	options Options
	logger  logrus.FieldLogger
	entries map[string]*Entry
	lock    sync.RWMutex
	seq     int64
	now     func() time.Time
}

// New returns a new lobby
func New(logger logrus.FieldLogger, options Options) *Lobby {
	return &Lobby{
		options: options,
		logger:  logger,
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

// Create starts a new game and returns its initial state
func (l *Lobby) Create(opts higherlower.Options, specialEdition bool) (*higherlower.State, error) {
	if opts.Name == "" {
		opts.Name = util.GetRandomName()
	}

	s := higherlower.NewSession(l.logger, opts)
	s.Configure(specialEdition)
	if err := s.Start(); err != nil {
		return nil, err
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if l.options.MaxSessions > 0 && len(l.entries) >= l.options.MaxSessions {
		return nil, ErrLobbyFull
	}

	l.seq++
	l.entries[s.UUID] = &Entry{
		Session:    s,
		lastActive: l.now(),
		seq:        l.seq,
	}

	l.logger.WithFields(logrus.Fields{
		"session": s.UUID,
		"name":    s.Name,
	}).Debug("session created")

	return s.State(), nil
}

// Do runs fn with exclusive access to the session
func (l *Lobby) Do(id string, fn func(s *higherlower.Session) error) error {
	l.lock.RLock()
	entry, found := l.entries[id]
	l.lock.RUnlock()

	if !found {
		return ErrSessionNotFound
	}

	entry.lock.Lock()
	defer entry.lock.Unlock()

	entry.lastActive = l.now()
	return fn(entry.Session)
}

// Get returns the state of the session
func (l *Lobby) Get(id string) (*higherlower.State, error) {
	var state *higherlower.State
	err := l.Do(id, func(s *higherlower.Session) error {
		state = s.State()
		return nil
	})

	return state, err
}

// Remove removes the session from the lobby
func (l *Lobby) Remove(id string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if _, found := l.entries[id]; !found {
		return ErrSessionNotFound
	}

	delete(l.entries, id)
	l.logger.WithField("session", id).Debug("session removed")
	return nil
}

// List returns the state of the sessions, newest first
func (l *Lobby) List(offset int64, limit int) []*higherlower.State {
	l.lock.RLock()
	entries := make([]*Entry, 0, len(l.entries))
	for _, entry := range l.entries {
		entries = append(entries, entry)
	}
	l.lock.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq > entries[j].seq
	})

	if offset >= int64(len(entries)) {
		return []*higherlower.State{}
	}

	entries = entries[offset:]
	if limit < len(entries) {
		entries = entries[:limit]
	}

	states := make([]*higherlower.State, len(entries))
	for i, entry := range entries {
		entry.lock.Lock()
		states[i] = entry.Session.State()
		entry.lock.Unlock()
	}

	return states
}

// Len returns the number of sessions
func (l *Lobby) Len() int {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return len(l.entries)
}

// Sweep evicts every session that has been idle longer than MaxIdle and returns the number evicted
func (l *Lobby) Sweep() int {
	if l.options.MaxIdle <= 0 {
		return 0
	}

	cutoff := l.now().Add(-l.options.MaxIdle)

	l.lock.Lock()
	defer l.lock.Unlock()

	evicted := 0
	for id, entry := range l.entries {
		entry.lock.Lock()
		idle := entry.lastActive.Before(cutoff)
		entry.lock.Unlock()

		if idle {
			delete(l.entries, id)
			evicted++
		}
	}

	if evicted > 0 {
		l.logger.WithFields(logrus.Fields{
			"evicted":   evicted,
			"remaining": len(l.entries),
		}).Info("evicted idle sessions")
	}

	return evicted
}

// StartShift starts the run loop that evicts idle sessions
// The loop stops when ctx is done.
func (l *Lobby) StartShift(ctx context.Context) {
	interval := l.options.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	go l.runLoop(ctx, interval)
}

func (l *Lobby) runLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.logger.Debug("creating lobby run loop")
	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-ctx.Done():
			l.logger.Debug("terminating lobby run loop")
			return
		}
	}
}
