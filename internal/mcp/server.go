package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/mamaar/deskcalc/internal/history"
	"github.com/mamaar/deskcalc/pkg/calc"
)

// DefaultSession names the session used when a tool call gives none.
const DefaultSession = "default"

// SessionInfo summarizes one live calculator session.
type SessionInfo struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

// CalcServer holds the shared state for the MCP tool handlers: named
// calculator sessions and an optional history store that records their
// evaluations.
type CalcServer struct {
	mu       sync.Mutex
	sessions map[string]*calc.Session
	store    *history.Store // nil when history is disabled
	logger   *slog.Logger
}

// NewCalcServer creates a CalcServer. store may be nil; the server takes
// ownership of it and closes it in Close.
func NewCalcServer(store *history.Store, logger *slog.Logger) *CalcServer {
	return &CalcServer{
		sessions: make(map[string]*calc.Session),
		store:    store,
		logger:   logger,
	}
}

// sessionLocked returns the named session, creating it on first use. Must
// be called with s.mu held.
func (s *CalcServer) sessionLocked(name string) *calc.Session {
	if sess, ok := s.sessions[name]; ok {
		return sess
	}
	var record calc.StepFunc
	if s.store != nil {
		record = s.store.Recorder(context.Background(), name, s.logger)
	}
	sess := calc.NewSession(record)
	s.sessions[name] = sess
	s.logger.Debug("session created", "session", name)
	return sess
}

// Press applies evs to the named session as one uninterrupted sequence and
// returns the resulting state.
func (s *CalcServer) Press(name string, evs []calc.Event) calc.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(name)
	sess.PressAll(evs)
	s.logger.Debug("keys pressed", "session", name, "keys", calc.Labels(evs), "display", sess.Display())
	return sess.State()
}

// State returns the state of the named session. A session that was never
// used is in the initial state.
func (s *CalcServer) State(name string) calc.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[name]; ok {
		return sess.State()
	}
	return calc.New()
}

// Sessions lists the live sessions sorted by name.
func (s *CalcServer) Sessions() []SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SessionInfo, 0, len(s.sessions))
	for name, sess := range s.sessions {
		out = append(out, SessionInfo{Name: name, Display: sess.Display()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// History lists recorded evaluations, newest first.
func (s *CalcServer) History(ctx context.Context, session string, limit int) ([]history.Entry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("history is disabled: start the server with DESKCALC_HISTORY_DB set")
	}
	return s.store.List(ctx, session, limit)
}

// Close releases the history store.
func (s *CalcServer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("close history failed", "err", err)
		}
		s.store = nil
	}
}

// sessionName maps an omitted session onto DefaultSession.
func sessionName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultSession
	}
	return name
}
