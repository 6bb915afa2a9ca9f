package lattice

// View is the handle a transform paints through during one render pass. It
// combines the pane being built, the session's arguments, and the viewer.
//
// Writes made by a transform are staged and only land in the pane when the
// transform returns without error; a failed transform leaves every cell as it
// found it. Once the pass commits, the view is sealed and further writes fail.
type View struct {
	pane      *Pane
	staged    map[int]*Element
	args      Arguments
	viewer    ViewerID
	sessionID string
	title     string
	tick      int64
	sealed    bool
}

func newView(pane *Pane, s *Session, tick int64) *View {
	return &View{
		pane:      pane,
		args:      s.args,
		viewer:    s.viewer,
		sessionID: s.id,
		title:     s.title,
		tick:      tick,
	}
}

// Set writes e at (x, y). Coordinates outside the shape fail with
// ErrOutOfBounds.
func (v *View) Set(x, y int, e Element) error {
	i, err := v.writable(x, y)
	if err != nil {
		return err
	}
	v.staged[i] = &e
	return nil
}

// Remove empties the cell at (x, y).
func (v *View) Remove(x, y int) error {
	i, err := v.writable(x, y)
	if err != nil {
		return err
	}
	v.staged[i] = nil
	return nil
}

// Get returns what the cell holds right now, including this transform's own
// staged writes.
func (v *View) Get(x, y int) (Element, bool) {
	i, err := v.pane.index(x, y)
	if err != nil {
		return Element{}, false
	}
	if e, ok := v.staged[i]; ok {
		if e == nil {
			return Element{}, false
		}
		return *e, true
	}
	return v.pane.Get(x, y)
}

// Clear empties every cell of r inside the pane. Cells of r outside the pane
// are ignored.
func (v *View) Clear(r Rect) error {
	if v.sealed {
		return v.staleError()
	}
	v.ensureStage()
	r = r.Intersect(v.pane.shape.Bounds())
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			v.staged[y*v.pane.shape.Width+x] = nil
		}
	}
	return nil
}

// Fill writes e into every cell of r inside the pane. Cells of r outside the
// pane are ignored.
func (v *View) Fill(r Rect, e Element) error {
	if v.sealed {
		return v.staleError()
	}
	v.ensureStage()
	r = r.Intersect(v.pane.shape.Bounds())
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			el := e
			v.staged[y*v.pane.shape.Width+x] = &el
		}
	}
	return nil
}

// Region returns a view of a named region of the shape whose coordinates are
// relative to the region's top-left cell.
func (v *View) Region(name string) (RegionView, error) {
	r, ok := v.pane.shape.Region(name)
	if !ok {
		return RegionView{}, newError(CodeUnknownRegion, "unknown region %q in %s", name, v.pane.shape)
	}
	return RegionView{view: v, region: r}, nil
}

// Shape returns the shape being rendered.
func (v *View) Shape() Shape { return v.pane.shape }

// Arguments returns the session's argument store.
func (v *View) Arguments() Arguments { return v.args }

// Viewer returns who the session belongs to.
func (v *View) Viewer() ViewerID { return v.viewer }

// SessionID returns the id of the session being rendered.
func (v *View) SessionID() string { return v.sessionID }

// Title returns the title the session was opened with.
func (v *View) Title() string { return v.title }

// Tick returns the host tick the pass runs at.
func (v *View) Tick() int64 { return v.tick }

// Arg reads an argument through a view. It is Get on v.Arguments().
func Arg[T any](v *View, key ArgumentKey[T]) (T, error) {
	return Get(v.args, key)
}

// staleError reports a write through a view kept past its pass.
func (v *View) staleError() error {
	return newError(CodeStaleView, "view of session %s used after its pass committed", v.sessionID)
}

func (v *View) writable(x, y int) (int, error) {
	if v.sealed {
		return 0, v.staleError()
	}
	i, err := v.pane.index(x, y)
	if err != nil {
		return 0, err
	}
	v.ensureStage()
	return i, nil
}

func (v *View) ensureStage() {
	if v.staged == nil {
		v.staged = make(map[int]*Element)
	}
}

// commitStage applies the current transform's writes to the pane.
func (v *View) commitStage() {
	for i, e := range v.staged {
		v.pane.cells[i] = e
	}
	v.staged = nil
}

// discardStage drops the current transform's writes.
func (v *View) discardStage() {
	v.staged = nil
}

func (v *View) seal() {
	v.staged = nil
	v.sealed = true
}

// RegionView addresses a named sub-region of a view.
type RegionView struct {
	view   *View
	region Region
}

// Set writes e at (x, y) relative to the region. Coordinates outside the
// region fail with ErrOutOfBounds even when they would fit the pane.
func (r RegionView) Set(x, y int, e Element) error {
	if x < 0 || y < 0 || x >= r.region.Width || y >= r.region.Height {
		return newError(CodeOutOfBounds, "cell (%d, %d) outside region %q (%dx%d)",
			x, y, r.region.Name, r.region.Width, r.region.Height)
	}
	return r.view.Set(r.region.X+x, r.region.Y+y, e)
}

// SetIndex writes e at the i-th cell of the region in row-major order, the
// natural addressing for one-row regions like the hotbar.
func (r RegionView) SetIndex(i int, e Element) error {
	if r.region.Width <= 0 || i < 0 || i >= r.region.Width*r.region.Height {
		return newError(CodeOutOfBounds, "index %d outside region %q", i, r.region.Name)
	}
	return r.Set(i%r.region.Width, i/r.region.Width, e)
}

// Get returns the element at (x, y) relative to the region.
func (r RegionView) Get(x, y int) (Element, bool) {
	if x < 0 || y < 0 || x >= r.region.Width || y >= r.region.Height {
		return Element{}, false
	}
	return r.view.Get(r.region.X+x, r.region.Y+y)
}

// Clear empties the whole region.
func (r RegionView) Clear() error {
	return r.view.Clear(r.region.Rect)
}

// Region returns the region being addressed.
func (r RegionView) Region() Region { return r.region }
