package lattice

// ClickResult is what a click handler tells the engine and, through it, the
// host.
type ClickResult struct {
	// Consumed marks the click as handled.
	Consumed bool
	// CancelHostAction asks the host to suppress its own handling of the
	// click, such as picking up the item in the slot.
	CancelHostAction bool
}

// Handled is the result of a handler that dealt with the click and cancels
// the host action.
var Handled = ClickResult{Consumed: true, CancelHostAction: true}

// ClickContext carries click event data to a handler.
type ClickContext struct {
	Session *Session
	Viewer  ViewerID
	Slot    Point
	Click   ClickType
	Tick    int64
	// Element is the element occupying the slot in the committed snapshot,
	// nil for an empty cell.
	Element *Element
}

// ClickHandler reacts to a click on a cell.
type ClickHandler func(ctx ClickContext) ClickResult

// Cancel returns a handler that cancels the host action and does nothing
// else. It is the default click handler of chest interfaces.
func Cancel() ClickHandler {
	return func(ClickContext) ClickResult { return Handled }
}

// Canceling wraps fn in a handler that always cancels the host action.
func Canceling(fn func(ctx ClickContext)) ClickHandler {
	return func(ctx ClickContext) ClickResult {
		fn(ctx)
		return Handled
	}
}

// Passing wraps fn in a handler that lets the host action go through.
func Passing(fn func(ctx ClickContext)) ClickHandler {
	return func(ctx ClickContext) ClickResult {
		fn(ctx)
		return ClickResult{Consumed: true}
	}
}

// CloseEvent carries close data to a close handler.
type CloseEvent struct {
	Session *Session
	Viewer  ViewerID
	Cause   CloseCause
}

// CloseHandler runs once when a session closes.
type CloseHandler func(ev CloseEvent)

// ClickEvent is a click as reported by a host surface.
type ClickEvent struct {
	Slot  Point
	Click ClickType
}

// InteractionHandlers are the callbacks the engine registers on a surface.
// Hosts call them on their event loop goroutine.
type InteractionHandlers struct {
	OnClick func(ev ClickEvent) ClickResult
	OnClose func(cause CloseCause)
}

// routeClick resolves the handler for a click against the committed snapshot:
// the element's own handler, else the interface default, else nothing.
func (s *Session) routeClick(ev ClickEvent, tick int64) (ClickResult, bool) {
	ctx := ClickContext{
		Session: s,
		Viewer:  s.viewer,
		Slot:    ev.Slot,
		Click:   ev.Click,
		Tick:    tick,
	}
	var handler ClickHandler
	if s.snapshot != nil {
		if e, ok := s.snapshot.Get(ev.Slot.X, ev.Slot.Y); ok {
			ctx.Element = &e
			handler = e.OnClick
		}
	}
	if handler == nil {
		handler = s.iface.defaultClick
	}
	if handler == nil {
		return ClickResult{}, false
	}
	return s.engine.invokeClick(handler, ctx), true
}

// invokeClick runs a handler, converting a panic into a logged failure whose
// cancel flag follows the engine configuration.
func (e *Engine) invokeClick(handler ClickHandler, ctx ClickContext) (res ClickResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logf("click handler panicked (session %s, slot %d,%d): %v",
				ctx.Session.id, ctx.Slot.X, ctx.Slot.Y, r)
			res = ClickResult{Consumed: true, CancelHostAction: e.cfg.CancelOnPanic}
		}
	}()
	return handler(ctx)
}
