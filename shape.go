package lattice

import "fmt"

// Standard inventory dimensions.
const (
	ChestColumns = 9
	MaxChestRows = 6
)

// Region is a named sub-rectangle of a shape, such as a player's hotbar.
type Region struct {
	Name string
	Rect
}

// Shape describes the addressable grid a host surface exposes: its
// dimensions plus any named regions. Chest and player inventories are both
// Shapes; there are no per-surface interface types.
type Shape struct {
	Kind    string
	Width   int
	Height  int
	Regions []Region
}

// NewShape returns a plain width×height shape with no regions.
func NewShape(kind string, width, height int) Shape {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("lattice: invalid shape %dx%d", width, height))
	}
	return Shape{Kind: kind, Width: width, Height: height}
}

// ChestShape returns a 9-column chest shape. rows is clamped to [1, 6].
func ChestShape(rows int) Shape {
	rows = min(max(rows, 1), MaxChestRows)
	return Shape{Kind: "chest", Width: ChestColumns, Height: rows}
}

// PlayerShape returns the player inventory shape: three main rows, the
// hotbar, then a row holding the four armor slots and the offhand.
func PlayerShape() Shape {
	return Shape{
		Kind:   "player",
		Width:  9,
		Height: 5,
		Regions: []Region{
			{Name: "main", Rect: Rect{X: 0, Y: 0, Width: 9, Height: 3}},
			{Name: "hotbar", Rect: Rect{X: 0, Y: 3, Width: 9, Height: 1}},
			{Name: "armor", Rect: Rect{X: 0, Y: 4, Width: 4, Height: 1}},
			{Name: "offhand", Rect: Rect{X: 4, Y: 4, Width: 1, Height: 1}},
		},
	}
}

// Bounds returns the full rectangle of the shape.
func (s Shape) Bounds() Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Contains reports whether p is a valid cell of the shape.
func (s Shape) Contains(p Point) bool {
	return s.Bounds().Contains(p)
}

// Cells returns the number of cells in the shape.
func (s Shape) Cells() int {
	return s.Width * s.Height
}

// Region looks a named region up.
func (s Shape) Region(name string) (Region, bool) {
	for _, r := range s.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// Slot converts a point to a row-major slot index. The point must be inside
// the shape.
func (s Shape) Slot(p Point) int {
	return p.Y*s.Width + p.X
}

// Point converts a row-major slot index back to a point.
func (s Shape) Point(slot int) Point {
	return Point{X: slot % s.Width, Y: slot / s.Width}
}

// String renders the shape as "kind WxH".
func (s Shape) String() string {
	return fmt.Sprintf("%s %dx%d", s.Kind, s.Width, s.Height)
}
