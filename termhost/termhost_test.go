package termhost

import (
	"context"
	"image/color"
	"io"
	"log"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/lattice"
)

func newEngine(h *Host) *lattice.Engine {
	return lattice.NewEngine(h, lattice.WithLogger(log.New(io.Discard, "", 0)))
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSlotAt(t *testing.T) {
	shape := lattice.ChestShape(2)
	tests := []struct {
		name string
		x, y int
		want lattice.Point
		ok   bool
	}{
		{"first cell", gridLeft, gridTop, lattice.Point{X: 0, Y: 0}, true},
		{"inside first cell", gridLeft + 3, gridTop, lattice.Point{X: 0, Y: 0}, true},
		{"second column", gridLeft + 4, gridTop, lattice.Point{X: 1, Y: 0}, true},
		{"last cell", gridLeft + 35, gridTop + 1, lattice.Point{X: 8, Y: 1}, true},
		{"border", 0, gridTop, lattice.Point{}, false},
		{"title line", gridLeft, 0, lattice.Point{}, false},
		{"right of grid", gridLeft + 36, gridTop, lattice.Point{}, false},
		{"below grid", gridLeft, gridTop + 2, lattice.Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := slotAt(tt.x, tt.y, shape, 4)
			if ok != tt.ok || got != tt.want {
				t.Errorf("slotAt(%d, %d) = %v, %v; want %v, %v", tt.x, tt.y, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"a", 4, " a  "},
		{"ab", 4, " ab "},
		{"abcdef", 4, "abcd"},
		{"", 3, "   "},
		{"·", 2, "· "},
	}
	for _, tt := range tests {
		if got := fit(tt.in, tt.n); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestColorPair(t *testing.T) {
	tests := []struct {
		name   string
		c      color.Color
		bg, fg lipgloss.Color
	}{
		{"white", color.White, "#ffffff", "#000000"},
		{"black", color.Black, "#000000", "#ffffff"},
		{"yellow", color.RGBA{R: 0xf1, G: 0xaf, B: 0x15, A: 0xff}, "#f1af15", "#000000"},
		{"blue", color.RGBA{R: 0x2c, G: 0x2e, B: 0x8f, A: 0xff}, "#2c2e8f", "#ffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg, fg := colorPair(tt.c)
			if bg != tt.bg || fg != tt.fg {
				t.Errorf("colorPair = %s/%s, want %s/%s", bg, fg, tt.bg, tt.fg)
			}
		})
	}
}

type block struct{ name string }

func (b block) Label() string { return strings.ToUpper(b.name) }

func TestLabelOf(t *testing.T) {
	if got := labelOf(block{"ab"}); got != "AB" {
		t.Errorf("labelOf(Labeled) = %q", got)
	}
	if got := labelOf(12); got != "12" {
		t.Errorf("labelOf(12) = %q", got)
	}
}

func TestClickType(t *testing.T) {
	tests := []struct {
		ev   tea.MouseEvent
		want lattice.ClickType
		ok   bool
	}{
		{tea.MouseEvent{Button: tea.MouseButtonLeft}, lattice.ClickLeft, true},
		{tea.MouseEvent{Button: tea.MouseButtonLeft, Shift: true}, lattice.ClickShiftLeft, true},
		{tea.MouseEvent{Button: tea.MouseButtonRight}, lattice.ClickRight, true},
		{tea.MouseEvent{Button: tea.MouseButtonRight, Shift: true}, lattice.ClickShiftRight, true},
		{tea.MouseEvent{Button: tea.MouseButtonMiddle}, lattice.ClickMiddle, true},
		{tea.MouseEvent{Button: tea.MouseButtonWheelUp}, lattice.ClickLeft, false},
	}
	for _, tt := range tests {
		got, ok := clickType(tt.ev)
		if got != tt.want || ok != tt.ok {
			t.Errorf("clickType(%v) = %v, %v; want %v, %v", tt.ev.Button, got, ok, tt.want, tt.ok)
		}
	}
}

func TestOpenSurfaceUnknownViewer(t *testing.T) {
	h := New(Options{})
	if _, err := h.OpenSurface(context.Background(), "someone-else", lattice.ChestShape(1), ""); err == nil {
		t.Error("expected error for a viewer other than the terminal")
	}
	if h.Viewer() != DefaultViewer {
		t.Errorf("Viewer = %q", h.Viewer())
	}
}

func TestModelRoutesMouse(t *testing.T) {
	h := New(Options{})
	e := newEngine(h)
	var got []lattice.ClickContext
	iface := lattice.BuildChest(1, "Term").
		AddTransform(func(v *lattice.View) error {
			return v.Set(2, 0, lattice.NewElement(Glyph{Text: "g"}, nil))
		}).
		SetDefaultClickHandler(lattice.Canceling(func(ctx lattice.ClickContext) { got = append(got, ctx) })).
		Build()
	if _, err := e.Open(context.Background(), iface, h.Viewer(), lattice.NewArguments()); err != nil {
		t.Fatal(err)
	}
	m := h.Model(e)

	press := tea.MouseMsg{X: gridLeft + 9, Y: gridTop, Button: tea.MouseButtonRight, Action: tea.MouseActionPress}
	release := press
	release.Action = tea.MouseActionRelease
	m.Update(press)
	m.Update(release)
	m.Update(tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

	if len(got) != 1 {
		t.Fatalf("clicks = %d, want 1", len(got))
	}
	if got[0].Slot != (lattice.Point{X: 2, Y: 0}) || got[0].Click != lattice.ClickRight {
		t.Errorf("click = %v %v", got[0].Slot, got[0].Click)
	}
}

func TestModelTickAndClose(t *testing.T) {
	h := New(Options{})
	e := newEngine(h)
	var cause lattice.CloseCause
	iface := lattice.BuildChest(1, "Ticking").
		AddTransform(func(v *lattice.View) error {
			return v.Set(int(v.Tick()%9), 0, lattice.NewElement(Glyph{Text: "*", FG: "#ffffff"}, nil))
		}).
		SetUpdatePolicy(true, 1).
		SetCloseHandler(func(ev lattice.CloseEvent) { cause = ev.Cause }).
		Build()
	if _, err := e.Open(context.Background(), iface, h.Viewer(), lattice.NewArguments()); err != nil {
		t.Fatal(err)
	}
	m := h.Model(e)

	_, cmd := m.Update(tickMsg{})
	if cmd == nil || h.CurrentTick() != 1 {
		t.Fatalf("tick did not continue: tick=%d", h.CurrentTick())
	}
	s := h.current()
	if s.cell(1) == nil || s.cell(0) != nil {
		t.Error("tick did not render the moved cell")
	}

	h.Message(h.Viewer(), "hello there")
	view := m.View()
	for _, want := range []string{"Ticking", "hello there", "tick 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !isQuit(cmd) {
		t.Error("closing the last surface should quit")
	}
	if cause != lattice.CloseHost || h.current() != nil {
		t.Errorf("cause = %v", cause)
	}
	if m.View() != "" {
		t.Error("View should be empty with nothing open")
	}
}

func TestModelCtrlCDisconnects(t *testing.T) {
	h := New(Options{})
	e := newEngine(h)
	var cause lattice.CloseCause
	iface := lattice.BuildChest(1).SetCloseHandler(func(ev lattice.CloseEvent) { cause = ev.Cause }).Build()
	_, _ = e.Open(context.Background(), iface, h.Viewer(), lattice.NewArguments())

	_, cmd := h.Model(e).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) || cause != lattice.CloseDisconnect {
		t.Errorf("quit=%v cause=%v", isQuit(cmd), cause)
	}
}
