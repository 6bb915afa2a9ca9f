// Package ebitenhost shows lattice interfaces in an Ebitengine window. One
// window is one viewer; ebiten's Update drives Engine.Tick at ebiten's TPS.
package ebitenhost

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/lattice"
)

// DefaultViewer is the viewer id of the person at the window.
const DefaultViewer lattice.ViewerID = "window"

// Config configures a Host.
type Config struct {
	Title string
	// CellSize is the side of a cell in pixels. Default 48.
	CellSize int
	// Gap is the spacing between cells and around the grid. Default 4.
	Gap int
	// ShowTPS draws the measured ticks per second in the corner.
	ShowTPS bool
	Viewer  lattice.ViewerID
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "lattice"
	}
	if c.CellSize <= 0 {
		c.CellSize = 48
	}
	if c.Gap <= 0 {
		c.Gap = 4
	}
	if c.Viewer == "" {
		c.Viewer = DefaultViewer
	}
	return c
}

// titleHeight is the strip above the grid holding the surface title.
const titleHeight = 20

// Tile is a window-native cell payload.
type Tile struct {
	Color color.Color
	Label string
}

// Colored payloads are filled with their color.
type Colored interface {
	Color() color.Color
}

// Labeled payloads have their label printed on the cell.
type Labeled interface {
	Label() string
}

var (
	backgroundColor = color.RGBA{0x1e, 0x1f, 0x26, 0xff}
	emptyCellColor  = color.RGBA{0x2c, 0x2e, 0x38, 0xff}
	unknownColor    = color.RGBA{0x8b, 0x8b, 0x8b, 0xff}
)

// errQuit ends RunGame when the last surface closes.
var errQuit = errors.New("ebitenhost: quit")

// Host is a lattice.Host drawing into a window.
type Host struct {
	cfg Config

	mu       sync.Mutex
	tick     int64
	surfaces []*surface
	status   string
}

// New creates a window host.
func New(cfg Config) *Host {
	return &Host{cfg: cfg.withDefaults()}
}

// Viewer returns the id of the window's viewer.
func (h *Host) Viewer() lattice.ViewerID { return h.cfg.Viewer }

// OpenSurface implements lattice.Host.
func (h *Host) OpenSurface(_ context.Context, viewer lattice.ViewerID, shape lattice.Shape, title string) (lattice.Surface, error) {
	if viewer != h.cfg.Viewer {
		return nil, fmt.Errorf("ebitenhost: unknown viewer %q", viewer)
	}
	s := &surface{shape: shape, title: title, cells: make([]*lattice.Element, shape.Cells())}
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

// Message shows msg under the grid. It matches demo.Messenger.
func (h *Host) Message(_ lattice.ViewerID, msg string) {
	h.mu.Lock()
	h.status = msg
	h.mu.Unlock()
}

// Run opens the window and drives e until the last surface closes or the
// window is closed.
func (h *Host) Run(e *lattice.Engine) error {
	g := h.Game(e)
	w, ht := g.Layout(0, 0)
	ebiten.SetWindowTitle(h.cfg.Title)
	ebiten.SetWindowSize(w, ht)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		return fmt.Errorf("run window host: %w", err)
	}
	e.CloseAll(context.Background(), lattice.CloseDisconnect)
	return nil
}

// Game returns the ebiten.Game driving e.
func (h *Host) Game(e *lattice.Engine) *Game {
	return &Game{host: h, engine: e, ctx: context.Background()}
}

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

// gridSize returns the window size needed for the largest shape opened so
// far, with a minimum of a six-row chest.
func (h *Host) gridSize() (int, int) {
	cols, rows := lattice.ChestColumns, lattice.MaxChestRows
	h.mu.Lock()
	for _, s := range h.surfaces {
		cols = max(cols, s.shape.Width)
		rows = max(rows, s.shape.Height)
	}
	h.mu.Unlock()
	step := h.cfg.CellSize + h.cfg.Gap
	return h.cfg.Gap + cols*step, titleHeight + h.cfg.Gap + rows*step + titleHeight
}

// Game implements ebiten.Game.
type Game struct {
	host   *Host
	engine *lattice.Engine
	ctx    context.Context
}

// Update processes input and advances the engine by one tick.
func (g *Game) Update() error {
	h := g.host
	if s := h.current(); s != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			s.hostClose()
		} else if click, ok := pressedClick(); ok {
			mx, my := ebiten.CursorPosition()
			if p, ok := slotAt(mx, my, s.shape, h.cfg.CellSize, h.cfg.Gap); ok {
				s.click(p, click)
			}
		}
	}

	h.mu.Lock()
	h.tick++
	h.mu.Unlock()
	g.engine.Tick(g.ctx)

	if h.current() == nil {
		return errQuit
	}
	return nil
}

// Draw paints the current surface.
func (g *Game) Draw(screen *ebiten.Image) {
	h := g.host
	screen.Fill(backgroundColor)
	s := h.current()
	if s == nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, s.title, h.cfg.Gap, 2)

	size := float32(h.cfg.CellSize)
	for i := 0; i < s.shape.Cells(); i++ {
		p := s.shape.Point(i)
		x, y := cellOrigin(p, h.cfg.CellSize, h.cfg.Gap)
		e := s.cell(i)
		if e == nil {
			vector.DrawFilledRect(screen, float32(x), float32(y), size, size, emptyCellColor, false)
			continue
		}
		fill, label := describe(e.Payload)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, fill, false)
		if label != "" {
			ebitenutil.DebugPrintAt(screen, label, x+2, y+2)
		}
	}

	_, height := h.gridSize()
	h.mu.Lock()
	status := h.status
	h.mu.Unlock()
	ebitenutil.DebugPrintAt(screen, status, h.cfg.Gap, height-titleHeight+2)

	if h.cfg.ShowTPS {
		w, _ := h.gridSize()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f", ebiten.ActualTPS()), w-70, 2)
	}
}

// Layout returns a fixed logical size large enough for every open surface.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.host.gridSize()
}

// cellOrigin returns the top-left pixel of cell p.
func cellOrigin(p lattice.Point, cellSize, gap int) (int, int) {
	step := cellSize + gap
	return gap + p.X*step, titleHeight + gap + p.Y*step
}

// slotAt maps a window pixel to the cell under it. Pixels in the gaps between
// cells hit nothing.
func slotAt(x, y int, shape lattice.Shape, cellSize, gap int) (lattice.Point, bool) {
	step := cellSize + gap
	x -= gap
	y -= titleHeight + gap
	if x < 0 || y < 0 || step <= 0 {
		return lattice.Point{}, false
	}
	if x%step >= cellSize || y%step >= cellSize {
		return lattice.Point{}, false
	}
	p := lattice.Point{X: x / step, Y: y / step}
	if !shape.Contains(p) {
		return lattice.Point{}, false
	}
	return p, true
}

// describe returns the fill color and label for a payload.
func describe(payload any) (color.Color, string) {
	switch p := payload.(type) {
	case Tile:
		c := p.Color
		if c == nil {
			c = unknownColor
		}
		return c, p.Label
	}
	fill := color.Color(unknownColor)
	if c, ok := payload.(Colored); ok {
		fill = c.Color()
	}
	label := ""
	if l, ok := payload.(Labeled); ok {
		label = l.Label()
	} else if s, ok := payload.(fmt.Stringer); ok {
		label = s.String()
	}
	return fill, label
}

func pressedClick() (lattice.ClickType, bool) {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if shift {
			return lattice.ClickShiftLeft, true
		}
		return lattice.ClickLeft, true
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		if shift {
			return lattice.ClickShiftRight, true
		}
		return lattice.ClickRight, true
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle):
		return lattice.ClickMiddle, true
	}
	return lattice.ClickLeft, false
}
