package conversation

import (
	"errors"
	"strings"
	"sync"
)

var (
	// ErrNoSession is returned when a user without an open form answers.
	ErrNoSession = errors.New("no open form")
	// ErrEmptyAnswer is returned for blank answers; the session is unchanged.
	ErrEmptyAnswer = errors.New("empty answer")
	// ErrUnknownFlow is returned when starting a kind the engine was not built with.
	ErrUnknownFlow = errors.New("unknown form")
)

// Submission is a completed form, ready to be committed.
type Submission struct {
	Kind   Kind
	UserID int64
	Values map[string]string
}

// Reply is the outcome of an accepted answer. Either Prompt is the next
// question, or Done is set and Submission holds the collected record.
type Reply struct {
	Prompt     string
	State      State
	Done       bool
	Submission *Submission
}

type session struct {
	flow   *Flow
	step   int
	values map[string]string
}

// Engine keeps at most one open form per user. Sessions live only in memory
// and are removed on completion or cancellation.
type Engine struct {
	flows map[Kind]*Flow

	mu       sync.Mutex
	sessions map[int64]*session
}

// NewEngine creates an engine serving the given flows.
func NewEngine(flows ...Flow) *Engine {
	e := &Engine{
		flows:    make(map[Kind]*Flow, len(flows)),
		sessions: make(map[int64]*session),
	}
	for i := range flows {
		e.flows[flows[i].Kind] = &flows[i]
	}
	return e
}

// Start opens a form of the given kind at its first step and returns the
// first prompt. An open form is replaced; superseded reports whether that
// happened.
func (e *Engine) Start(userID int64, kind Kind) (prompt string, superseded bool, err error) {
	flow, ok := e.flows[kind]
	if !ok || len(flow.Steps) == 0 {
		return "", false, ErrUnknownFlow
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	_, superseded = e.sessions[userID]
	e.sessions[userID] = &session{
		flow:   flow,
		values: make(map[string]string, len(flow.Steps)),
	}
	return flow.Steps[0].Prompt, superseded, nil
}

// Answer stores text under the current step's field and advances. After the
// last step the session is discarded and the Submission returned, whatever
// the caller later does with it.
func (e *Engine) Answer(userID int64, text string) (Reply, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[userID]
	if !ok {
		return Reply{}, ErrNoSession
	}

	answer := strings.TrimSpace(text)
	if answer == "" {
		return Reply{}, ErrEmptyAnswer
	}

	s.values[s.flow.Steps[s.step].Field] = answer
	s.step++

	if s.step < len(s.flow.Steps) {
		next := s.flow.Steps[s.step]
		return Reply{Prompt: next.Prompt, State: next.State}, nil
	}

	delete(e.sessions, userID)
	return Reply{
		State: StateDone,
		Done:  true,
		Submission: &Submission{
			Kind:   s.flow.Kind,
			UserID: userID,
			Values: s.values,
		},
	}, nil
}

// Cancel discards the user's open form without committing it.
// It returns the kind that was cancelled and false if nothing was open.
func (e *Engine) Cancel(userID int64) (Kind, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[userID]
	if !ok {
		return "", false
	}
	delete(e.sessions, userID)
	return s.flow.Kind, true
}

// Active reports the kind and state of the user's open form.
func (e *Engine) Active(userID int64) (Kind, State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[userID]
	if !ok {
		return "", StateNone, false
	}
	return s.flow.Kind, s.flow.Steps[s.step].State, true
}

// Prompt returns the question the user still has to answer.
func (e *Engine) Prompt(userID int64) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[userID]
	if !ok {
		return "", false
	}
	return s.flow.Steps[s.step].Prompt, true
}

// Len returns the number of open forms.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}
