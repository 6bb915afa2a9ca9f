package lattice

// Point addresses a single cell. X is the column, Y the row, both zero-based
// from the top-left corner.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned block of cells. Width and Height are in cells.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether p lies inside the rectangle. Unlike pixel
// rectangles, the right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersect returns the overlap of r and other. The result has zero area when
// the rectangles do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0, y0 := max(r.X, other.X), max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ViewerID identifies whoever is looking at a surface. Hosts choose the
// format; the engine only compares ids.
type ViewerID string

// ClickType identifies the kind of interaction that produced a click.
type ClickType uint8

const (
	ClickLeft       ClickType = iota // primary button
	ClickRight                       // secondary button
	ClickMiddle                      // middle button
	ClickShiftLeft                   // primary button with shift held
	ClickShiftRight                  // secondary button with shift held
	ClickDrop                        // drop key over the slot
	ClickNumberKey                   // hotbar number key over the slot
	ClickDouble                      // double click
)

// String returns a short lowercase name for the click type.
func (c ClickType) String() string {
	switch c {
	case ClickLeft:
		return "left"
	case ClickRight:
		return "right"
	case ClickMiddle:
		return "middle"
	case ClickShiftLeft:
		return "shift-left"
	case ClickShiftRight:
		return "shift-right"
	case ClickDrop:
		return "drop"
	case ClickNumberKey:
		return "number-key"
	case ClickDouble:
		return "double"
	default:
		return "unknown"
	}
}

// ParseClickType returns the click type named by s, as produced by String.
func ParseClickType(s string) (ClickType, bool) {
	for c := ClickLeft; c <= ClickDouble; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return ClickLeft, false
}

// EventType identifies a kind of interaction event forwarded to an EventSink.
type EventType uint8

const (
	EventOpen  EventType = iota // a session was opened
	EventClick                  // a click was routed through a session
	EventClose                  // a session was closed
)

// String returns a short lowercase name for the event type.
func (e EventType) String() string {
	switch e {
	case EventOpen:
		return "open"
	case EventClick:
		return "click"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// CloseCause says why a session was closed.
type CloseCause uint8

const (
	CloseExplicit        CloseCause = iota // Engine.Close or Session.Close
	CloseHost                              // host closed the surface (viewer closed it)
	CloseDisconnect                        // viewer left the host
	CloseReplaced                          // another interface was opened for the viewer
	CloseParentClosed                      // the parent session closed
	CloseHostUnavailable                   // a push to the surface failed
)

// String returns a short lowercase name for the cause.
func (c CloseCause) String() string {
	switch c {
	case CloseExplicit:
		return "explicit"
	case CloseHost:
		return "host"
	case CloseDisconnect:
		return "disconnect"
	case CloseReplaced:
		return "replaced"
	case CloseParentClosed:
		return "parent-closed"
	case CloseHostUnavailable:
		return "host-unavailable"
	default:
		return "unknown"
	}
}

// InteractionEvent carries interaction data for an optional EventSink.
type InteractionEvent struct {
	Type      EventType
	SessionID string
	Viewer    ViewerID
	Slot      Point
	Click     ClickType
	Result    ClickResult
	Cause     CloseCause
	Tick      int64
}

// EventSink receives a copy of every open, click, and close the engine
// handles. It is the integration point for ECS worlds and audit logs.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}
