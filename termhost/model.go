package termhost

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/lattice"
)

// Layout of the frame drawn by View: a title line, then the grid inside a
// border one cell thick.
const (
	gridTop  = 2
	gridLeft = 1
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f0c674"))
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5c6370"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3e4451"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#98c379"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5c6370"))
)

// Glyph is a terminal-native cell payload.
type Glyph struct {
	Text string
	FG   lipgloss.Color
	BG   lipgloss.Color
}

// Colored payloads are drawn on their color.
type Colored interface {
	Color() color.Color
}

// Labeled payloads show their label.
type Labeled interface {
	Label() string
}

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	host   *Host
	engine *lattice.Engine
	ctx    context.Context
}

// Model returns the Bubble Tea model driving e. Use it to embed the host in
// a larger program; Run is the standalone form.
func (h *Host) Model(e *lattice.Engine) tea.Model {
	return &model{host: h, engine: e, ctx: context.Background()}
}

func (m *model) Init() tea.Cmd {
	return tickCmd(m.host.opts.TickInterval)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.host.advance()
		m.engine.Tick(m.ctx)
		if m.host.current() == nil {
			return m, tea.Quit
		}
		return m, tickCmd(m.host.opts.TickInterval)
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		s := m.host.current()
		if s == nil {
			return m, nil
		}
		p, ok := slotAt(msg.X, msg.Y, s.shape, m.host.opts.CellWidth)
		if !ok {
			return m, nil
		}
		click, ok := clickType(tea.MouseEvent(msg))
		if !ok {
			return m, nil
		}
		s.click(p, click)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.engine.CloseAll(m.ctx, lattice.CloseDisconnect)
			return m, tea.Quit
		case "q", "esc":
			if s := m.host.current(); s != nil {
				s.hostClose()
			}
			if m.host.current() == nil {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *model) View() string {
	s := m.host.current()
	if s == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.title))
	b.WriteByte('\n')
	b.WriteString(frameStyle.Render(renderGrid(s, m.host.opts.CellWidth)))
	b.WriteByte('\n')
	b.WriteString(statusStyle.Render(m.host.statusLine()))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(fmt.Sprintf("tick %d · click a cell · q close · ctrl+c quit", m.host.CurrentTick())))
	return b.String()
}

func renderGrid(s *surface, cellWidth int) string {
	rows := make([]string, s.shape.Height)
	for y := 0; y < s.shape.Height; y++ {
		var row strings.Builder
		for x := 0; x < s.shape.Width; x++ {
			row.WriteString(renderCell(s.cell(y*s.shape.Width+x), cellWidth))
		}
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}

// renderCell draws one cell exactly cellWidth columns wide.
func renderCell(e *lattice.Element, cellWidth int) string {
	if e == nil {
		return emptyStyle.Render(fit("·", cellWidth))
	}
	switch p := e.Payload.(type) {
	case Glyph:
		style := lipgloss.NewStyle()
		if p.FG != "" {
			style = style.Foreground(p.FG)
		}
		if p.BG != "" {
			style = style.Background(p.BG)
		}
		return style.Render(fit(p.Text, cellWidth))
	}
	text := labelOf(e.Payload)
	style := lipgloss.NewStyle()
	if c, ok := e.Payload.(Colored); ok {
		bg, fg := colorPair(c.Color())
		style = style.Background(bg).Foreground(fg)
	}
	return style.Render(fit(text, cellWidth))
}

func labelOf(payload any) string {
	if l, ok := payload.(Labeled); ok {
		return l.Label()
	}
	return fmt.Sprint(payload)
}

// fit pads or truncates s to exactly n runes, centred.
func fit(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	pad := n - len(r)
	left := pad / 2
	return strings.Repeat(" ", left) + string(r) + strings.Repeat(" ", pad-left)
}

// colorPair returns c as a background plus a readable foreground.
func colorPair(c color.Color) (bg, fg lipgloss.Color) {
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := r>>8, g>>8, b>>8
	bg = lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r8, g8, b8))
	// Rec. 601 luma
	if 299*r8+587*g8+114*b8 > 128*1000 {
		return bg, lipgloss.Color("#000000")
	}
	return bg, lipgloss.Color("#ffffff")
}

// slotAt maps a terminal cell to a grid slot of shape, given the frame layout
// drawn by View.
func slotAt(x, y int, shape lattice.Shape, cellWidth int) (lattice.Point, bool) {
	x -= gridLeft
	y -= gridTop
	if x < 0 || y < 0 || cellWidth <= 0 {
		return lattice.Point{}, false
	}
	p := lattice.Point{X: x / cellWidth, Y: y}
	if !shape.Contains(p) {
		return lattice.Point{}, false
	}
	return p, true
}

func clickType(ev tea.MouseEvent) (lattice.ClickType, bool) {
	switch ev.Button {
	case tea.MouseButtonLeft:
		if ev.Shift {
			return lattice.ClickShiftLeft, true
		}
		return lattice.ClickLeft, true
	case tea.MouseButtonRight:
		if ev.Shift {
			return lattice.ClickShiftRight, true
		}
		return lattice.ClickRight, true
	case tea.MouseButtonMiddle:
		return lattice.ClickMiddle, true
	}
	return lattice.ClickLeft, false
}
