// Package demo holds the example interfaces shown by the lattice command: a
// chest with a selectable option and a tick-animated player inventory.
package demo

import (
	"fmt"
	"strings"

	"github.com/phanxgames/lattice"
)

const (
	ChestRows    = 5
	ChestColumns = lattice.ChestColumns
	ChestTitle   = "Example Chest"
)

// ArgConcrete is the material the selected option is drawn in.
var ArgConcrete = lattice.NewArgumentKey[Material]("concrete")

// Option is one selectable entry in the chest.
type Option struct {
	Name     string
	Index    int
	Material Material
	Art      []lattice.Point
}

// Options are the chest's choices, one per row of column 1.
var Options = []Option{
	{Name: "ONE", Index: 0, Material: EmeraldBlock, Art: art(
		" # ",
		"## ",
		" # ",
		" # ",
		"###",
	)},
	{Name: "TWO", Index: 1, Material: DiamondBlock, Art: art(
		"## ",
		"  #",
		" # ",
		"#  ",
		"###",
	)},
	{Name: "THREE", Index: 2, Material: IronBlock, Art: art(
		"## ",
		"  #",
		" ##",
		"  #",
		"## ",
	)},
}

// artArea is where an option's picture is drawn.
var artArea = lattice.Rect{X: 4, Y: 0, Width: 3, Height: ChestRows}

// art turns a 3-wide picture into chest points inside artArea.
func art(rows ...string) []lattice.Point {
	var pts []lattice.Point
	for y, row := range rows {
		for x, r := range row {
			if r == '#' {
				pts = append(pts, lattice.Point{X: 4 + x, Y: y})
			}
		}
	}
	return pts
}

// Messenger delivers a chat-style message to a viewer.
type Messenger func(viewer lattice.ViewerID, msg string)

// Demo owns the example interfaces and the property they share.
type Demo struct {
	Selected *lattice.Property[Option]
	Chest    *lattice.Interface
	Player   *lattice.Interface

	send Messenger
}

// New builds the example interfaces. send may be nil.
func New(send Messenger) *Demo {
	if send == nil {
		send = func(lattice.ViewerID, string) {}
	}
	d := &Demo{
		Selected: lattice.NewProperty(Options[0]),
		send:     send,
	}
	d.Chest = d.buildChest()
	d.Player = d.buildPlayer()
	return d
}

// Interfaces returns the interfaces by the names the CLI and scripts use.
func (d *Demo) Interfaces() map[string]*lattice.Interface {
	return map[string]*lattice.Interface{
		"chest":  d.Chest,
		"player": d.Player,
	}
}

// DefaultArguments binds the arguments the example interfaces read.
func DefaultArguments() lattice.Arguments {
	return lattice.With(lattice.NewArguments(), ArgConcrete, LimeConcrete)
}

// ParseArguments converts untyped arguments, as found in scripts, into the
// typed values the example interfaces read.
func ParseArguments(raw map[string]any) (lattice.Arguments, error) {
	args := lattice.NewArguments()
	for name, v := range raw {
		switch name {
		case ArgConcrete.Name():
			s, ok := v.(string)
			if !ok {
				return lattice.Arguments{}, fmt.Errorf("argument %q: want string, got %T", name, v)
			}
			args = lattice.With(args, ArgConcrete, Material(strings.ToUpper(s)))
		default:
			return lattice.Arguments{}, fmt.Errorf("unknown argument %q", name)
		}
	}
	return args, nil
}

func (d *Demo) buildChest() *lattice.Interface {
	backing := lattice.NewElement(Item{Material: BlackConcrete}, nil)

	return lattice.BuildChest(ChestRows, ChestTitle).
		SetDefaultClickHandler(lattice.Canceling(func(ctx lattice.ClickContext) {
			d.send(ctx.Viewer, fmt.Sprintf("You clicked %d", ctx.Session.Interface().Shape().Slot(ctx.Slot)))
		})).
		AddTransform(func(v *lattice.View) error {
			return v.Fill(lattice.Rect{X: 3, Y: 0, Width: ChestColumns - 4, Height: ChestRows}, backing)
		}, lattice.WithPriority(5), lattice.WithName("backing")).
		AddTransform(func(v *lattice.View) error {
			for _, opt := range Options {
				item := Item{Material: opt.Material, Name: opt.Name}
				if err := v.Set(1, opt.Index, lattice.NewElement(item, lattice.Canceling(func(lattice.ClickContext) {
					d.Selected.Set(opt)
				}))); err != nil {
					return err
				}
			}
			return nil
		}, lattice.WithName("options")).
		AddTransform(func(v *lattice.View) error {
			concrete, err := lattice.Arg(v, ArgConcrete)
			if err != nil {
				return err
			}
			// Partial passes start from the last picture, so unlit pixels
			// go back to the backing first.
			if err := v.Fill(artArea, backing); err != nil {
				return err
			}
			el := lattice.NewElement(Item{Material: concrete}, nil)
			for _, p := range d.Selected.Get().Art {
				if err := v.Set(p.X, p.Y, el); err != nil {
					return err
				}
			}
			return nil
		}, lattice.WithPriority(10), lattice.WithProperties(d.Selected), lattice.WithName("selected")).
		AddCloseHandler(func(ev lattice.CloseEvent) {
			d.send(ev.Viewer, "bye")
		}).
		Build()
}

func (d *Demo) buildPlayer() *lattice.Interface {
	cancel := lattice.Cancel()

	return lattice.BuildPlayer().
		AddTransform(func(v *lattice.View) error {
			armor, err := v.Region("armor")
			if err != nil {
				return err
			}
			num := (v.Tick() / 20) % 16
			for i := 0; i < 4; i++ {
				wool := BlackWool
				if num&(1<<i) != 0 {
					wool = WhiteWool
				}
				if err := armor.SetIndex(i, lattice.NewElement(Item{Material: wool}, cancel)); err != nil {
					return err
				}
			}
			return nil
		}, lattice.WithName("armor")).
		AddTransform(func(v *lattice.View) error {
			hotbar, err := v.Region("hotbar")
			if err != nil {
				return err
			}
			for i := 0; i < 9; i++ {
				wool := Wools[(int64(i)+v.Tick())%int64(len(Wools))]
				if err := hotbar.SetIndex(i, lattice.NewElement(Item{Material: wool}, cancel)); err != nil {
					return err
				}
			}
			return nil
		}, lattice.WithName("hotbar")).
		AddTransform(func(v *lattice.View) error {
			grid, err := v.Region("main")
			if err != nil {
				return err
			}
			lit := int((v.Tick() / 2) % 9)
			for x := 0; x < 9; x++ {
				for y := 0; y < 3; y++ {
					wool := RedWool
					if lit+y == x {
						wool = YellowWool
					}
					if err := grid.Set(x, y, lattice.NewElement(Item{Material: wool}, cancel)); err != nil {
						return err
					}
				}
			}
			return nil
		}, lattice.WithName("main")).
		SetUpdatePolicy(true, 1).
		Build()
}
