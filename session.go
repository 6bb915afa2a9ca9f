package lattice

import (
	"context"
	"errors"
)

// SessionState is the lifecycle state of a session.
type SessionState uint8

const (
	SessionClosed SessionState = iota
	SessionOpen
)

func (s SessionState) String() string {
	if s == SessionOpen {
		return "open"
	}
	return "closed"
}

// Session is one open instance of an Interface for one viewer. It owns the
// viewer's arguments and the committed snapshot pushed to the host surface.
//
// Sessions are driven by their Engine; their methods must be called from the
// goroutine that drives the engine.
type Session struct {
	id      string
	viewer  ViewerID
	iface   *Interface
	args    Arguments
	title   string
	engine  *Engine
	surface Surface
	state   SessionState

	snapshot *Pane
	subs     []Subscription
	unsub    func()

	// pending is guarded by engine.mu; property callbacks may run on any
	// goroutine.
	pending dirtySet

	lastFull   int64
	lastErrors []error
	passes     int

	parent *Session
	child  *Session

	rendering    bool
	closePending *CloseCause
	needsRepaint bool
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Viewer returns who the session belongs to.
func (s *Session) Viewer() ViewerID { return s.viewer }

// Interface returns the definition the session renders.
func (s *Session) Interface() *Interface { return s.iface }

// Arguments returns the argument store the session was opened with.
func (s *Session) Arguments() Arguments { return s.args }

// Title returns the surface title.
func (s *Session) Title() string { return s.title }

// State returns the lifecycle state.
func (s *Session) State() SessionState { return s.state }

// IsOpen reports whether the session is open.
func (s *Session) IsOpen() bool { return s.state == SessionOpen }

// Parent returns the session this one was stacked on, or nil.
func (s *Session) Parent() *Session { return s.parent }

// Snapshot returns a copy of the last committed pane.
func (s *Session) Snapshot() *Pane {
	if s.snapshot == nil {
		return NewPane(s.iface.shape)
	}
	return s.snapshot.Clone()
}

// Passes returns how many render passes the session has committed.
func (s *Session) Passes() int { return s.passes }

// LastErrors returns the transform failures of the most recent pass. Each
// error matches ErrTransformFailure and wraps the transform's own error.
func (s *Session) LastErrors() []error {
	if len(s.lastErrors) == 0 {
		return nil
	}
	out := make([]error, len(s.lastErrors))
	copy(out, s.lastErrors)
	return out
}

// LastError joins LastErrors into one error, nil when the last pass was clean.
func (s *Session) LastError() error {
	return errors.Join(s.lastErrors...)
}

// Refresh runs a full pass now and pushes the changed cells.
func (s *Session) Refresh(ctx context.Context) error {
	if !s.IsOpen() {
		return newError(CodeSessionClosed, "session %s is closed", s.id)
	}
	s.engine.render(ctx, s, true)
	return nil
}

// Close closes the session, and any sessions stacked on it, with
// CloseExplicit. Closing a closed session does nothing.
func (s *Session) Close(ctx context.Context) {
	s.engine.closeSession(ctx, s, CloseExplicit)
}

// current reports whether s is the top of its viewer's stack.
func (s *Session) current() bool {
	return s.IsOpen() && s.child == nil
}

// markDirty flags the transform at pipeline position i. Called from property
// subscriptions under engine.mu.
func (s *Session) markDirty(i int) {
	if s.pending == nil {
		s.pending = make(dirtySet, s.iface.pipeline.Len())
	}
	s.pending[i] = true
}

// takeDirty returns and clears the pending dirty set. Caller holds engine.mu.
func (s *Session) takeDirty() dirtySet {
	d := s.pending
	s.pending = nil
	return d
}
