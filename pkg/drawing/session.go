// Package drawing holds the in-progress polygon a user is drawing on the map.
package drawing

import (
	"errors"
	"fmt"
	"sync"

	"fieldplot/pkg/geo"
)

var ErrVertexIndex = errors.New("vertex index out of range")

// State is a copy of the session; Vertices is the open ring in click order.
type State struct {
	Active    bool
	Vertices  []geo.LngLat
	DraftName string
	LastError string
}

// Session is Idle until Begin and Drawing until Cancel or Finish.
// The name may be edited at any time while drawing.
type Session struct {
	mu    sync.Mutex
	state State
}

func New() *Session { return &Session{} }

// Begin enters drawing mode; it reports whether the session was idle.
func (s *Session) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Active {
		return false
	}
	s.state.Active = true
	return true
}

// AddVertex appends p verbatim while drawing; clicks while idle are ignored.
func (s *Session) AddVertex(p geo.LngLat) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Active {
		return false
	}
	s.state.Vertices = append(s.state.Vertices, p)
	return true
}

func (s *Session) RemoveVertex(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.state.Vertices)
	if i < 0 || i >= n {
		return fmt.Errorf("remove vertex %d of %d: %w", i, n, ErrVertexIndex)
	}
	next := make([]geo.LngLat, 0, n-1)
	next = append(next, s.state.Vertices[:i]...)
	s.state.Vertices = append(next, s.state.Vertices[i+1:]...)
	return nil
}

func (s *Session) SetDraftName(name string) {
	s.mu.Lock()
	s.state.DraftName = name
	s.mu.Unlock()
}

// Clear drops the vertices and the error; mode and name are kept.
func (s *Session) Clear() {
	s.mu.Lock()
	s.state.Vertices = nil
	s.state.LastError = ""
	s.mu.Unlock()
}

// Cancel leaves drawing mode when canExit allows it, discarding the draft.
func (s *Session) Cancel(canExit bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !canExit || !s.state.Active {
		return false
	}
	s.state = State{}
	return true
}

// Finish ends a successful commit.
func (s *Session) Finish() {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()
}

func (s *Session) SetError(msg string) {
	s.mu.Lock()
	s.state.LastError = msg
	s.mu.Unlock()
}

func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Active
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Vertices = append([]geo.LngLat(nil), s.state.Vertices...)
	return st
}

// Preview is the ring to render: closed once there is a vertex, nil otherwise.
func (s *Session) Preview() []geo.LngLat {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.state.Vertices) == 0 {
		return nil
	}
	return geo.CloseRing(s.state.Vertices)
}
