package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"neon-calculator/internal/calculator"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrLimitReached = errors.New("session limit reached")
)

// Session is one calculator owned by a single client. Presses are
// serialised, so each one runs to completion before the next starts.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	engine  *calculator.Engine
	presses int
}

func newSession() *Session {
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		engine:    calculator.New(),
	}
}

// Step is the record of one press.
type Step struct {
	Button  calculator.Button
	Outcome calculator.Outcome
	Display string
	// Operator pending before the press; for an evaluation it is the one
	// that was applied.
	Operator calculator.Operator
	// Entry is the history line written by an evaluation.
	Entry string
}

func (s *Session) press(b calculator.Button) Step {
	s.presses++
	op, _ := s.engine.PendingOperator()
	step := Step{Button: b, Operator: op}
	step.Outcome = s.engine.HandleButton(b)
	step.Display = s.engine.Display()
	if step.Outcome == calculator.Evaluated {
		step.Entry, _ = s.engine.LastEntry()
	}
	return step
}

// Press applies b and returns what it did together with the resulting state.
func (s *Session) Press(b calculator.Button) (Step, calculator.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.press(b)
	return step, s.engine.Snapshot()
}

// PressAll applies buttons in order while holding the session, so no press
// from another request can interleave. each, when set, sees every step as
// soon as it completes.
func (s *Session) PressAll(buttons []calculator.Button, each func(Step)) calculator.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range buttons {
		step := s.press(b)
		if each != nil {
			each(step)
		}
	}
	return s.engine.Snapshot()
}

func (s *Session) Snapshot() calculator.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Presses is the number of buttons handled since the session was created.
func (s *Session) Presses() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presses
}

// Store keeps the live sessions in memory. Nothing outlives the process.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	limit    int
}

// NewStore returns an empty store holding at most limit sessions; a limit of
// zero or less means unbounded.
func NewStore(limit int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		limit:    limit,
	}
}

func (st *Store) Create() (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.limit > 0 && len(st.sessions) >= st.limit {
		return nil, fmt.Errorf("%w: %d", ErrLimitReached, st.limit)
	}

	s := newSession()
	st.sessions[s.ID] = s
	return s, nil
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(st.sessions, id)
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
