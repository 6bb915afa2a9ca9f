package ebitenhost

import (
	"context"
	"fmt"
	"sync"

	"github.com/phanxgames/lattice"
)

// surface is one interface shown in the window.
type surface struct {
	shape lattice.Shape
	title string

	mu       sync.Mutex
	cells    []*lattice.Element
	handlers *lattice.InteractionHandlers
	closed   bool
}

func (s *surface) Push(_ context.Context, changes []lattice.CellChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("ebitenhost: push to closed surface: %w", lattice.ErrHostUnavailable)
	}
	for _, c := range changes {
		if s.shape.Contains(c.Point) {
			s.cells[s.shape.Slot(c.Point)] = c.Element
		}
	}
	return nil
}

func (s *surface) Subscribe(h lattice.InteractionHandlers) func() {
	s.mu.Lock()
	s.handlers = &h
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.handlers = nil
		s.mu.Unlock()
	}
}

func (s *surface) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *surface) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *surface) cell(i int) *lattice.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells[i]
}

func (s *surface) click(p lattice.Point, click lattice.ClickType) lattice.ClickResult {
	s.mu.Lock()
	h := s.handlers
	s.mu.Unlock()
	if h == nil || h.OnClick == nil {
		return lattice.ClickResult{}
	}
	return h.OnClick(lattice.ClickEvent{Slot: p, Click: click})
}

func (s *surface) hostClose() {
	s.mu.Lock()
	s.closed = true
	h := s.handlers
	s.mu.Unlock()
	if h != nil && h.OnClose != nil {
		h.OnClose(lattice.CloseHost)
	}
}
