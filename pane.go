package lattice

// CellChange is one cell that differs between two panes. Element is nil when
// the cell became empty.
type CellChange struct {
	Point
	Element *Element
}

// Pane is a grid of cells for one render snapshot. Cells are stored row-major;
// each holds exactly one Element or nothing.
type Pane struct {
	shape Shape
	cells []*Element // len = shape.Width * shape.Height, nil = empty
}

// NewPane creates an empty pane for shape.
func NewPane(shape Shape) *Pane {
	return &Pane{shape: shape, cells: make([]*Element, shape.Cells())}
}

// Shape returns the pane's shape.
func (p *Pane) Shape() Shape {
	return p.shape
}

// Set writes e at (x, y). Writes outside the shape fail with ErrOutOfBounds
// and leave the pane untouched.
func (p *Pane) Set(x, y int, e Element) error {
	i, err := p.index(x, y)
	if err != nil {
		return err
	}
	p.cells[i] = &e
	return nil
}

// Get returns the element at (x, y). ok is false for empty cells and for
// coordinates outside the shape.
func (p *Pane) Get(x, y int) (e Element, ok bool) {
	i, err := p.index(x, y)
	if err != nil || p.cells[i] == nil {
		return Element{}, false
	}
	return *p.cells[i], true
}

// Remove empties the cell at (x, y).
func (p *Pane) Remove(x, y int) error {
	i, err := p.index(x, y)
	if err != nil {
		return err
	}
	p.cells[i] = nil
	return nil
}

// Clear empties every cell of r that lies inside the pane. Parts of r outside
// the pane are ignored; clearing is never a bounds violation.
func (p *Pane) Clear(r Rect) {
	r = r.Intersect(p.shape.Bounds())
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			p.cells[y*p.shape.Width+x] = nil
		}
	}
}

// Fill writes e into every cell.
func (p *Pane) Fill(e Element) {
	for i := range p.cells {
		el := e
		p.cells[i] = &el
	}
}

// Clone returns an independent copy. Elements are values, so the copy shares
// nothing mutable with p.
func (p *Pane) Clone() *Pane {
	c := &Pane{shape: p.shape, cells: make([]*Element, len(p.cells))}
	copy(c.cells, p.cells)
	return c
}

// Occupied returns the number of non-empty cells.
func (p *Pane) Occupied() int {
	n := 0
	for _, c := range p.cells {
		if c != nil {
			n++
		}
	}
	return n
}

// Diff returns the cells of p that differ from prev, in row-major order. A
// nil prev, or one of another size, diffs against an empty pane.
func (p *Pane) Diff(prev *Pane) []CellChange {
	if prev == nil || prev.shape.Width != p.shape.Width || prev.shape.Height != p.shape.Height {
		prev = NewPane(p.shape)
	}
	var changes []CellChange
	for i, cur := range p.cells {
		if cellEqual(prev.cells[i], cur) {
			continue
		}
		changes = append(changes, CellChange{Point: p.shape.Point(i), Element: cur})
	}
	return changes
}

// Equal reports whether p and other hold identical-looking elements in every
// cell.
func (p *Pane) Equal(other *Pane) bool {
	if other == nil || p.shape.Width != other.shape.Width || p.shape.Height != other.shape.Height {
		return false
	}
	for i := range p.cells {
		if !cellEqual(p.cells[i], other.cells[i]) {
			return false
		}
	}
	return true
}

// All returns every cell change needed to paint p onto an empty surface,
// including empty cells.
func (p *Pane) All() []CellChange {
	changes := make([]CellChange, len(p.cells))
	for i, cur := range p.cells {
		changes[i] = CellChange{Point: p.shape.Point(i), Element: cur}
	}
	return changes
}

func (p *Pane) index(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= p.shape.Width || y >= p.shape.Height {
		return 0, newError(CodeOutOfBounds, "cell (%d, %d) outside %s", x, y, p.shape)
	}
	return y*p.shape.Width + x, nil
}

func cellEqual(a, b *Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.SameAs(*b)
}
