package lattice

import "testing"

func TestBuilderDefaults(t *testing.T) {
	iface := Build(ChestShape(2), "Title").Build()
	if iface.Title() != "Title" || iface.Shape().Height != 2 {
		t.Errorf("iface = %q %v", iface.Title(), iface.Shape())
	}
	if iface.DefaultClickHandler() != nil {
		t.Error("plain interfaces should have no default click handler")
	}
	if u := iface.UpdatePolicy(); u.Enabled || u.Interval != 1 {
		t.Errorf("update policy = %+v", u)
	}
	if iface.Pipeline().Len() != 0 {
		t.Error("unexpected transforms")
	}
}

func TestBuildChestCancels(t *testing.T) {
	h := BuildChest(3).Build().DefaultClickHandler()
	if h == nil {
		t.Fatal("chest has no default handler")
	}
	if res := h(ClickContext{}); res != Handled {
		t.Errorf("result = %+v, want Handled", res)
	}
}

func TestBuildPlayerShape(t *testing.T) {
	iface := BuildPlayer().Build()
	if iface.Shape().Kind != "player" || iface.Shape().Cells() != 45 {
		t.Errorf("shape = %v", iface.Shape())
	}
}

func TestSetUpdatePolicyClamps(t *testing.T) {
	tests := []struct {
		interval, want int64
	}{
		{-3, 1}, {0, 1}, {1, 1}, {20, 20},
	}
	for _, tt := range tests {
		u := BuildPlayer().SetUpdatePolicy(true, tt.interval).Build().UpdatePolicy()
		if !u.Enabled || u.Interval != tt.want {
			t.Errorf("SetUpdatePolicy(%d) = %+v, want interval %d", tt.interval, u, tt.want)
		}
	}
}

func TestBuilderReuse(t *testing.T) {
	b := BuildChest(1).AddTransform(writer(0, 0, 1))
	first := b.Build()
	b.AddTransform(writer(1, 0, 2)).Title("later").Fill(el("x"))
	second := b.Build()

	if first.Pipeline().Len() != 1 || first.Title() != "" || first.newPane().Occupied() != 0 {
		t.Error("builder changes leaked into an interface already built")
	}
	if second.Pipeline().Len() != 2 || second.newPane().Occupied() != 9 {
		t.Error("second build missing later configuration")
	}
}

func TestSetCloseHandlerReplaces(t *testing.T) {
	noop := func(CloseEvent) {}
	b := BuildChest(1).AddCloseHandler(noop).AddCloseHandler(noop)
	if n := len(b.Build().closeHandlers); n != 2 {
		t.Fatalf("handlers = %d, want 2", n)
	}
	b.SetCloseHandler(noop)
	if n := len(b.Build().closeHandlers); n != 1 {
		t.Errorf("handlers after SetCloseHandler = %d, want 1", n)
	}
	b.SetCloseHandler(nil).AddCloseHandler(nil)
	if n := len(b.Build().closeHandlers); n != 0 {
		t.Errorf("handlers after clearing = %d, want 0", n)
	}
}

func TestAddTransformNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	BuildChest(1).AddTransform(nil)
}

func TestWithPropertiesNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	var p *Property[int]
	WithProperties(nil, p)
}

func TestClickHelpers(t *testing.T) {
	calls := 0
	fn := func(ClickContext) { calls++ }
	tests := []struct {
		name string
		h    ClickHandler
		want ClickResult
	}{
		{"cancel", Cancel(), Handled},
		{"canceling", Canceling(fn), Handled},
		{"passing", Passing(fn), ClickResult{Consumed: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h(ClickContext{}); got != tt.want {
				t.Errorf("result = %+v, want %+v", got, tt.want)
			}
		})
	}
	if calls != 2 {
		t.Errorf("wrapped fn ran %d times, want 2", calls)
	}
}

func TestParseClickType(t *testing.T) {
	for c := ClickLeft; c <= ClickDouble; c++ {
		got, ok := ParseClickType(c.String())
		if !ok || got != c {
			t.Errorf("ParseClickType(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseClickType("triple"); ok {
		t.Error("unknown click type parsed")
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{CloseHostUnavailable.String(), "host-unavailable"},
		{CloseParentClosed.String(), "parent-closed"},
		{CloseCause(99).String(), "unknown"},
		{EventClick.String(), "click"},
		{SessionOpen.String(), "open"},
		{SessionClosed.String(), "closed"},
		{ClickShiftLeft.String(), "shift-left"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
