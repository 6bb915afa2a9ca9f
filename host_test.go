package lattice

import (
	"context"
	"errors"
	"io"
	"log"
)

// fakeHost is a minimal in-package Host; the full-featured double lives in
// memhost, which cannot be imported here.
type fakeHost struct {
	tick     int64
	surfaces []*fakeSurface
	openErr  error
}

func (h *fakeHost) OpenSurface(_ context.Context, viewer ViewerID, shape Shape, title string) (Surface, error) {
	if h.openErr != nil {
		return nil, h.openErr
	}
	s := &fakeSurface{viewer: viewer, shape: shape, title: title, cells: NewPane(shape)}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

func (h *fakeHost) CurrentTick() int64 { return h.tick }

// last returns the newest surface for viewer.
func (h *fakeHost) last(viewer ViewerID) *fakeSurface {
	for i := len(h.surfaces) - 1; i >= 0; i-- {
		if h.surfaces[i].viewer == viewer {
			return h.surfaces[i]
		}
	}
	return nil
}

type fakeSurface struct {
	viewer   ViewerID
	shape    Shape
	title    string
	cells    *Pane
	pushes   [][]CellChange
	handlers *InteractionHandlers
	closed   bool
	pushErr  error
}

func (s *fakeSurface) Push(_ context.Context, changes []CellChange) error {
	if s.pushErr != nil {
		return s.pushErr
	}
	s.pushes = append(s.pushes, changes)
	for _, c := range changes {
		if c.Element == nil {
			_ = s.cells.Remove(c.X, c.Y)
		} else {
			_ = s.cells.Set(c.X, c.Y, *c.Element)
		}
	}
	return nil
}

func (s *fakeSurface) Subscribe(h InteractionHandlers) func() {
	s.handlers = &h
	return func() { s.handlers = nil }
}

func (s *fakeSurface) Close() { s.closed = true }

func (s *fakeSurface) click(x, y int) (ClickResult, bool) {
	if s.handlers == nil {
		return ClickResult{}, false
	}
	return s.handlers.OnClick(ClickEvent{Slot: Point{X: x, Y: y}, Click: ClickLeft}), true
}

func (s *fakeSurface) hostClose(cause CloseCause) {
	s.closed = true
	if s.handlers != nil {
		s.handlers.OnClose(cause)
	}
}

func (s *fakeSurface) payload(x, y int) any {
	e, ok := s.cells.Get(x, y)
	if !ok {
		return nil
	}
	return e.Payload
}

var errGone = errors.New("gone")

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestEngine(opts ...Option) (*Engine, *fakeHost) {
	h := &fakeHost{}
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewEngine(h, opts...), h
}

func el(payload any) Element {
	return Element{Payload: payload}
}
