package demo

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/phanxgames/lattice"
	"github.com/phanxgames/lattice/memhost"
)

var bg = context.Background()

type inbox struct {
	msgs []string
}

func (i *inbox) send(_ lattice.ViewerID, msg string) { i.msgs = append(i.msgs, msg) }

func setup(t *testing.T) (*Demo, *memhost.Host, *lattice.Engine, *inbox) {
	t.Helper()
	box := &inbox{}
	h := memhost.New()
	e := lattice.NewEngine(h, lattice.WithLogger(log.New(io.Discard, "", 0)))
	return New(box.send), h, e, box
}

func material(t *testing.T, s *memhost.Surface, x, y int) Material {
	t.Helper()
	item, ok := s.Payload(x, y).(Item)
	if !ok {
		return ""
	}
	return item.Material
}

func TestChestRender(t *testing.T) {
	d, h, e, _ := setup(t)
	sess, err := e.Open(bg, d.Chest, "alice", DefaultArguments())
	if err != nil {
		t.Fatal(err)
	}
	if errs := sess.LastErrors(); len(errs) != 0 {
		t.Fatalf("LastErrors = %v", errs)
	}
	s := h.Surface("alice")
	if s.Title() != ChestTitle || s.Shape().Height != ChestRows {
		t.Errorf("surface %q %v", s.Title(), s.Shape())
	}

	for _, opt := range Options {
		item, _ := s.Payload(1, opt.Index).(Item)
		if item.Name != opt.Name || item.Material != opt.Material {
			t.Errorf("option row %d = %+v", opt.Index, item)
		}
	}
	if got := material(t, s, 0, 0); got != "" {
		t.Errorf("(0,0) = %q, want empty", got)
	}
	if got := material(t, s, 3, 0); got != BlackConcrete {
		t.Errorf("(3,0) = %q, want backing", got)
	}
	// "ONE": top row has only the middle pixel lit.
	if material(t, s, 5, 0) != LimeConcrete || material(t, s, 4, 0) != BlackConcrete {
		t.Errorf("art row 0 = %q %q", material(t, s, 4, 0), material(t, s, 5, 0))
	}
	if material(t, s, 4, 4) != LimeConcrete || material(t, s, 6, 4) != LimeConcrete {
		t.Error("art base row not lit")
	}
}

func TestChestSelectOption(t *testing.T) {
	d, h, e, box := setup(t)
	_, _ = e.Open(bg, d.Chest, "alice", lattice.With(lattice.NewArguments(), ArgConcrete, RedWool))
	s := h.Surface("alice")
	if material(t, s, 4, 1) != RedWool {
		t.Fatalf("ONE art (4,1) = %q", material(t, s, 4, 1))
	}

	res, _ := s.InjectClick(1, 1, lattice.ClickLeft)
	if res != lattice.Handled {
		t.Errorf("option click = %+v", res)
	}
	if d.Selected.Get().Name != "TWO" {
		t.Fatalf("Selected = %s", d.Selected.Get().Name)
	}
	// "TWO": top row is "## ".
	if material(t, s, 4, 0) != RedWool || material(t, s, 5, 0) != RedWool || material(t, s, 6, 0) != BlackConcrete {
		t.Errorf("art row 0 = %q %q %q", material(t, s, 4, 0), material(t, s, 5, 0), material(t, s, 6, 0))
	}
	// Lit by ONE only.
	for _, p := range []lattice.Point{{X: 4, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 3}} {
		if got := material(t, s, p.X, p.Y); got != BlackConcrete {
			t.Errorf("%v = %q after switching to TWO, want backing", p, got)
		}
	}
	if len(box.msgs) != 0 {
		t.Errorf("option click sent %v", box.msgs)
	}

	s.InjectClick(0, 2, lattice.ClickLeft)
	if len(box.msgs) != 1 || box.msgs[0] != "You clicked 18" {
		t.Errorf("messages = %v", box.msgs)
	}

	e.Close(bg, "alice")
	if box.msgs[len(box.msgs)-1] != "bye" {
		t.Errorf("messages = %v, want bye last", box.msgs)
	}
}

func TestChestSharedSelection(t *testing.T) {
	d, h, e, _ := setup(t)
	_, _ = e.Open(bg, d.Chest, "alice", DefaultArguments())
	_, _ = e.Open(bg, d.Chest, "bob", DefaultArguments())

	h.Surface("alice").InjectClick(1, 2, lattice.ClickLeft)

	// "THREE": row 2 is " ##".
	bob := h.Surface("bob")
	if material(t, bob, 5, 2) != LimeConcrete || material(t, bob, 4, 2) != BlackConcrete {
		t.Error("selection made by alice did not render for bob")
	}
}

func TestChestMissingConcrete(t *testing.T) {
	d, h, e, _ := setup(t)
	sess, err := e.Open(bg, d.Chest, "alice", lattice.NewArguments())
	if err != nil {
		t.Fatal(err)
	}
	errs := sess.LastErrors()
	if len(errs) != 1 || !errors.Is(errs[0], lattice.ErrMissingArgument) {
		t.Fatalf("LastErrors = %v", errs)
	}
	s := h.Surface("alice")
	if material(t, s, 5, 0) != BlackConcrete || material(t, s, 1, 0) != EmeraldBlock {
		t.Error("other transforms did not render around the failure")
	}
}

func TestPlayerAnimates(t *testing.T) {
	d, h, e, _ := setup(t)
	if _, err := e.Open(bg, d.Player, "alice", lattice.NewArguments()); err != nil {
		t.Fatal(err)
	}
	s := h.Surface("alice")

	tests := []struct {
		name string
		x, y int
		want Material
	}{
		{"main diagonal row 0", 0, 0, YellowWool},
		{"main diagonal row 2", 2, 2, YellowWool},
		{"main off diagonal", 1, 0, RedWool},
		{"hotbar 0", 0, 3, WhiteWool},
		{"hotbar 8", 8, 3, LightGrayWool},
		{"armor bit 0", 0, 4, BlackWool},
		{"offhand", 4, 4, ""},
	}
	for _, tt := range tests {
		if got := material(t, s, tt.x, tt.y); got != tt.want {
			t.Errorf("tick 0 %s = %q, want %q", tt.name, got, tt.want)
		}
	}

	h.SetTick(40)
	e.Tick(bg)

	tests = []struct {
		name string
		x, y int
		want Material
	}{
		{"main diagonal row 0", 2, 0, YellowWool},
		{"main old diagonal", 0, 0, RedWool},
		{"hotbar 0", 0, 3, LightGrayWool},
		{"armor bit 0", 0, 4, BlackWool},
		{"armor bit 1", 1, 4, WhiteWool},
	}
	for _, tt := range tests {
		if got := material(t, s, tt.x, tt.y); got != tt.want {
			t.Errorf("tick 40 %s = %q, want %q", tt.name, got, tt.want)
		}
	}

	if res, _ := s.InjectClick(0, 0, lattice.ClickLeft); res != lattice.Handled {
		t.Errorf("player cell click = %+v, want Handled", res)
	}
	if res, _ := s.InjectClick(4, 4, lattice.ClickLeft); res != (lattice.ClickResult{}) {
		t.Errorf("offhand click = %+v, want no-op", res)
	}
}

func TestParseArguments(t *testing.T) {
	args, err := ParseArguments(map[string]any{"concrete": "red_concrete"})
	if err != nil {
		t.Fatal(err)
	}
	if m, _ := lattice.Get(args, ArgConcrete); m != "RED_CONCRETE" {
		t.Errorf("concrete = %q", m)
	}

	for _, raw := range []map[string]any{
		{"concrete": 5},
		{"colour": "red"},
	} {
		if _, err := ParseArguments(raw); err == nil {
			t.Errorf("ParseArguments(%v) succeeded", raw)
		}
	}
}

func TestItemLabel(t *testing.T) {
	tests := []struct {
		item Item
		want string
	}{
		{Item{Material: BlackConcrete}, "BC"},
		{Item{Material: LightBlueWool}, "LBW"},
		{Item{Material: IronBlock, Name: "THREE"}, "THREE"},
	}
	for _, tt := range tests {
		if got := tt.item.Label(); got != tt.want {
			t.Errorf("%+v.Label() = %q, want %q", tt.item, got, tt.want)
		}
	}
	if Material("NOPE").Color() == nil {
		t.Error("unknown material has no color")
	}
}
