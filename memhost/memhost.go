// Package memhost is an in-memory lattice host. Surfaces record every push and
// mirror the cells they were sent, and clicks and closes are injected by the
// caller. It backs the engine's tests and the replay command.
package memhost

import (
	"context"
	"fmt"
	"sync"

	"github.com/phanxgames/lattice"
)

// Host is an in-memory lattice.Host with a manually advanced tick.
type Host struct {
	mu       sync.Mutex
	tick     int64
	surfaces []*Surface
	failOpen error
}

// New creates a host at tick zero.
func New() *Host {
	return &Host{}
}

// OpenSurface implements lattice.Host.
func (h *Host) OpenSurface(_ context.Context, viewer lattice.ViewerID, shape lattice.Shape, title string) (lattice.Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failOpen != nil {
		return nil, h.failOpen
	}
	s := &Surface{
		viewer: viewer,
		shape:  shape,
		title:  title,
		cells:  make([]*lattice.Element, shape.Cells()),
	}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

// CurrentTick implements lattice.Host.
func (h *Host) CurrentTick() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tick
}

// SetTick sets the tick counter.
func (h *Host) SetTick(t int64) {
	h.mu.Lock()
	h.tick = t
	h.mu.Unlock()
}

// Advance adds n to the tick counter and returns the new tick.
func (h *Host) Advance(n int64) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tick += n
	return h.tick
}

// FailOpen makes every later OpenSurface fail with err. nil restores normal
// behavior.
func (h *Host) FailOpen(err error) {
	h.mu.Lock()
	h.failOpen = err
	h.mu.Unlock()
}

// Surfaces returns every surface ever opened, oldest first.
func (h *Host) Surfaces() []*Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Surface, len(h.surfaces))
	copy(out, h.surfaces)
	return out
}

// Surface returns the newest surface opened for viewer that is still open, or
// nil.
func (h *Host) Surface(viewer lattice.ViewerID) *Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.surfaces) - 1; i >= 0; i-- {
		s := h.surfaces[i]
		if s.viewer == viewer && !s.Closed() {
			return s
		}
	}
	return nil
}

// Surface is an in-memory lattice.Surface.
type Surface struct {
	mu       sync.Mutex
	viewer   lattice.ViewerID
	shape    lattice.Shape
	title    string
	cells    []*lattice.Element
	pushes   [][]lattice.CellChange
	handlers *lattice.InteractionHandlers
	closed   bool
	gone     bool
	pushErr  error
}

// Viewer returns who the surface was opened for.
func (s *Surface) Viewer() lattice.ViewerID { return s.viewer }

// Shape returns the surface's shape.
func (s *Surface) Shape() lattice.Shape { return s.shape }

// Title returns the title the surface was opened with.
func (s *Surface) Title() string { return s.title }

// Push implements lattice.Surface. It records the changes and applies them to
// the mirrored cells. A batch with any change outside the shape is rejected
// whole: nothing is recorded or applied.
func (s *Surface) Push(_ context.Context, changes []lattice.CellChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gone {
		return fmt.Errorf("memhost: surface for %s: %w", s.viewer, lattice.ErrHostUnavailable)
	}
	if s.pushErr != nil {
		return s.pushErr
	}
	for _, c := range changes {
		if !s.shape.Contains(c.Point) {
			return fmt.Errorf("memhost: change at (%d, %d) outside %s", c.X, c.Y, s.shape)
		}
	}
	batch := make([]lattice.CellChange, len(changes))
	copy(batch, changes)
	s.pushes = append(s.pushes, batch)
	for _, c := range changes {
		s.cells[s.shape.Slot(c.Point)] = c.Element
	}
	return nil
}

// Subscribe implements lattice.Surface.
func (s *Surface) Subscribe(h lattice.InteractionHandlers) func() {
	s.mu.Lock()
	s.handlers = &h
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.handlers = nil
		s.mu.Unlock()
	}
}

// Close implements lattice.Surface.
func (s *Surface) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Closed reports whether the surface was closed by the engine or by
// InjectClose.
func (s *Surface) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Subscribed reports whether the engine is listening for interactions.
func (s *Surface) Subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handlers != nil
}

// Cell returns what the surface shows at (x, y).
func (s *Surface) Cell(x, y int) (lattice.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := lattice.Point{X: x, Y: y}
	if !s.shape.Contains(p) {
		return lattice.Element{}, false
	}
	e := s.cells[s.shape.Slot(p)]
	if e == nil {
		return lattice.Element{}, false
	}
	return *e, true
}

// Payload returns the payload shown at (x, y), or nil for an empty cell.
func (s *Surface) Payload(x, y int) any {
	e, ok := s.Cell(x, y)
	if !ok {
		return nil
	}
	return e.Payload
}

// Pushes returns every batch of changes pushed so far.
func (s *Surface) Pushes() [][]lattice.CellChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]lattice.CellChange, len(s.pushes))
	copy(out, s.pushes)
	return out
}

// PushCount returns the number of pushes.
func (s *Surface) PushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pushes)
}

// LastPush returns the most recent batch of changes, or nil.
func (s *Surface) LastPush() []lattice.CellChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pushes) == 0 {
		return nil
	}
	return s.pushes[len(s.pushes)-1]
}

// FailPush makes later pushes fail with err. nil restores normal behavior.
func (s *Surface) FailPush(err error) {
	s.mu.Lock()
	s.pushErr = err
	s.mu.Unlock()
}

// Vanish simulates the surface disappearing from the host without a close
// event: the next push fails with lattice.ErrHostUnavailable.
func (s *Surface) Vanish() {
	s.mu.Lock()
	s.gone = true
	s.mu.Unlock()
}

// InjectClick delivers a click at (x, y) as the host would. ok is false when
// nothing is subscribed, in which case the click is dropped.
func (s *Surface) InjectClick(x, y int, click lattice.ClickType) (res lattice.ClickResult, ok bool) {
	s.mu.Lock()
	h := s.handlers
	s.mu.Unlock()
	if h == nil || h.OnClick == nil {
		return lattice.ClickResult{}, false
	}
	return h.OnClick(lattice.ClickEvent{Slot: lattice.Point{X: x, Y: y}, Click: click}), true
}

// InjectClose closes the surface from the host side and reports cause to the
// engine.
func (s *Surface) InjectClose(cause lattice.CloseCause) {
	s.mu.Lock()
	s.closed = true
	h := s.handlers
	s.mu.Unlock()
	if h != nil && h.OnClose != nil {
		h.OnClose(cause)
	}
}
