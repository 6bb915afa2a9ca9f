// Package termhost shows lattice interfaces in a terminal. It is a single
// viewer host built on Bubble Tea: the program's tick message drives
// Engine.Tick, and mouse presses become clicks on the cell under the cursor.
package termhost

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/lattice"
)

// DefaultViewer is the viewer id of the person at the terminal.
const DefaultViewer lattice.ViewerID = "terminal"

// Options configures a Host.
type Options struct {
	// TickInterval is the wall time between host ticks. Default 50ms.
	TickInterval time.Duration
	// CellWidth is the number of columns each cell occupies. Default 4.
	CellWidth int
	// Viewer is reported as the viewer of every surface. Default
	// DefaultViewer.
	Viewer lattice.ViewerID
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = 50 * time.Millisecond
	}
	if o.CellWidth <= 0 {
		o.CellWidth = 4
	}
	if o.Viewer == "" {
		o.Viewer = DefaultViewer
	}
	return o
}

// Host is a lattice.Host drawing into a terminal.
type Host struct {
	opts Options

	mu       sync.Mutex
	tick     int64
	surfaces []*surface
	status   string
}

// New creates a terminal host.
func New(opts Options) *Host {
	return &Host{opts: opts.withDefaults()}
}

// Viewer returns the id of the terminal's viewer.
func (h *Host) Viewer() lattice.ViewerID { return h.opts.Viewer }

// OpenSurface implements lattice.Host.
func (h *Host) OpenSurface(_ context.Context, viewer lattice.ViewerID, shape lattice.Shape, title string) (lattice.Surface, error) {
	if viewer != h.opts.Viewer {
		return nil, fmt.Errorf("termhost: unknown viewer %q", viewer)
	}
	s := &surface{
		host:  h,
		shape: shape,
		title: title,
		cells: make([]*lattice.Element, shape.Cells()),
	}
	h.mu.Lock()
	h.surfaces = append(h.surfaces, s)
	h.mu.Unlock()
	return s, nil
}

// CurrentTick implements lattice.Host.
func (h *Host) CurrentTick() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tick
}

// Message shows msg on the status line. It matches demo.Messenger.
func (h *Host) Message(_ lattice.ViewerID, msg string) {
	h.mu.Lock()
	h.status = msg
	h.mu.Unlock()
}

// Run opens a full-screen program driving e until every surface is closed or
// the viewer quits.
func (h *Host) Run(e *lattice.Engine) error {
	p := tea.NewProgram(h.Model(e), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal host: %w", err)
	}
	return nil
}

// current returns the newest open surface, or nil.
func (h *Host) current() *surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.surfaces) - 1; i >= 0; i-- {
		if !h.surfaces[i].isClosed() {
			return h.surfaces[i]
		}
	}
	return nil
}

func (h *Host) advance() {
	h.mu.Lock()
	h.tick++
	h.mu.Unlock()
}

func (h *Host) statusLine() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// surface is one interface shown in the terminal.
type surface struct {
	host  *Host
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
		return fmt.Errorf("termhost: push to closed surface: %w", lattice.ErrHostUnavailable)
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

// hostClose closes the surface from the terminal side.
func (s *surface) hostClose() {
	s.mu.Lock()
	s.closed = true
	h := s.handlers
	s.mu.Unlock()
	if h != nil && h.OnClose != nil {
		h.OnClose(lattice.CloseHost)
	}
}
