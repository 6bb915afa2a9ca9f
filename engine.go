package lattice

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Host is the environment that owns the real surfaces.
type Host interface {
	// OpenSurface shows a new surface of the given shape to viewer.
	OpenSurface(ctx context.Context, viewer ViewerID, shape Shape, title string) (Surface, error)
	// CurrentTick returns the host's tick counter. It drives periodic passes.
	CurrentTick() int64
}

// Surface is one host surface showing a session.
type Surface interface {
	// Push applies changed cells. An error matching ErrHostUnavailable means
	// the surface is gone and the session must close.
	Push(ctx context.Context, changes []CellChange) error
	// Subscribe registers the engine's click and close callbacks and returns
	// a function that removes them.
	Subscribe(h InteractionHandlers) (unsubscribe func())
	// Close removes the surface from the viewer's screen.
	Close()
}

// Engine opens interfaces for viewers and keeps their sessions rendered. All
// methods except Post and Property.Set on bound properties must be called
// from the goroutine that drives the host loop.
type Engine struct {
	host   Host
	cfg    Config
	logger *log.Logger
	tracer trace.Tracer
	sink   EventSink

	order  []*Session
	stacks map[ViewerID][]*Session

	mu     sync.Mutex // guards session.pending and posted
	posted []func()

	tweens []*Tween
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithLogger sets the logger for failures and debug stats.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithEventSink forwards every open, click, and close to sink.
func WithEventSink(sink EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithTracer sets the tracer for render pass spans. By default the tracer
// comes from the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// NewEngine creates an engine bound to host.
func NewEngine(host Host, opts ...Option) *Engine {
	e := &Engine{
		host:   host,
		cfg:    DefaultConfig(),
		stacks: make(map[ViewerID][]*Session),
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.cfg.OpenPolicy.Valid() {
		e.cfg.OpenPolicy = OpenReplace
	}
	if e.logger == nil {
		e.logger = log.New(os.Stderr, "[lattice] ", log.LstdFlags)
	}
	if e.tracer == nil {
		name := e.cfg.TracerName
		if name == "" {
			name = DefaultTracerName
		}
		e.tracer = otel.Tracer(name)
	}
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Host returns the host the engine renders to.
func (e *Engine) Host() Host { return e.host }

// OpenOption configures a single Open call.
type OpenOption func(*openOptions)

type openOptions struct {
	title    string
	hasTitle bool
	parent   *Session
}

// WithTitle overrides the interface's title for this session.
func WithTitle(title string) OpenOption {
	return func(o *openOptions) {
		o.title = title
		o.hasTitle = true
	}
}

// WithParent opens the session on top of parent regardless of the open
// policy. Sessions stacked above parent are closed first.
func WithParent(parent *Session) OpenOption {
	return func(o *openOptions) { o.parent = parent }
}

// Open shows iface to viewer with args, runs the initial full pass, and pushes
// it. Transform failures during that pass do not fail the open; they are
// reported by the session's LastErrors.
func (e *Engine) Open(ctx context.Context, iface *Interface, viewer ViewerID, args Arguments, opts ...OpenOption) (*Session, error) {
	if iface == nil {
		return nil, newError(CodeInvalidInterface, "open: nil interface")
	}
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	parent, replaced, err := e.resolveParent(viewer, o.parent)
	if err != nil {
		return nil, err
	}

	title := iface.title
	if o.hasTitle {
		title = o.title
	}
	surface, err := e.host.OpenSurface(ctx, viewer, iface.shape, title)
	if err != nil {
		return nil, wrapError(CodeHostUnavailable, err, "open surface for %s", viewer)
	}
	if replaced != nil {
		e.closeSession(ctx, replaced, CloseReplaced)
		if parent != nil && !parent.IsOpen() {
			surface.Close()
			return nil, newError(CodeSessionClosed, "parent session closed while opening for %s", viewer)
		}
	}

	s := &Session{
		id:      uuid.NewString(),
		viewer:  viewer,
		iface:   iface,
		args:    args,
		title:   title,
		engine:  e,
		surface: surface,
		state:   SessionOpen,
		parent:  parent,
	}
	if parent != nil {
		parent.child = s
	}
	e.order = append(e.order, s)
	e.stacks[viewer] = append(e.stacks[viewer], s)
	e.bind(s)

	e.emit(InteractionEvent{Type: EventOpen, SessionID: s.id, Viewer: viewer, Tick: e.host.CurrentTick()})

	e.render(ctx, s, true)
	if !s.IsOpen() {
		return nil, newError(CodeHostUnavailable, "surface for %s closed during initial render", viewer)
	}
	return s, nil
}

// resolveParent applies the open policy. It returns the session the new one
// stacks on, if any, and the session the new one replaces. Open closes the
// replaced session only once the new surface exists.
func (e *Engine) resolveParent(viewer ViewerID, parent *Session) (*Session, *Session, error) {
	if parent != nil {
		if !parent.IsOpen() || parent.viewer != viewer || parent.engine != e {
			return nil, nil, newError(CodeSessionClosed, "parent session is not open for %s", viewer)
		}
		return parent, parent.child, nil
	}
	stack := e.stacks[viewer]
	if len(stack) == 0 {
		return nil, nil, nil
	}
	switch e.cfg.OpenPolicy {
	case OpenReject:
		return nil, nil, newError(CodeAlreadyOpen, "viewer %s already has %d open session(s)", viewer, len(stack))
	case OpenStack:
		return stack[len(stack)-1], nil, nil
	default:
		return nil, stack[0], nil
	}
}

// bind subscribes the session to its transforms' properties and to its
// surface's interaction events.
func (e *Engine) bind(s *Session) {
	p := s.iface.pipeline
	for i := 0; i < p.Len(); i++ {
		pos := i
		for _, prop := range p.At(i).Properties {
			s.subs = append(s.subs, prop.Subscribe(func() {
				e.mu.Lock()
				s.markDirty(pos)
				e.mu.Unlock()
			}))
		}
	}
	s.unsub = s.surface.Subscribe(InteractionHandlers{
		OnClick: func(ev ClickEvent) ClickResult { return e.handleClick(s, ev) },
		OnClose: func(cause CloseCause) { e.hostClosed(s, cause) },
	})
}

// hostClosed handles a close reported by a surface. A disconnect takes the
// viewer's whole stack with it.
func (e *Engine) hostClosed(s *Session, cause CloseCause) {
	if !s.IsOpen() {
		return
	}
	if cause == CloseDisconnect {
		if stack := e.stacks[s.viewer]; len(stack) > 0 {
			s = stack[0]
		}
	}
	e.closeSession(context.Background(), s, cause)
}

// Close closes every session the viewer has open with CloseExplicit.
func (e *Engine) Close(ctx context.Context, viewer ViewerID) {
	if stack := e.stacks[viewer]; len(stack) > 0 {
		e.closeSession(ctx, stack[0], CloseExplicit)
	}
}

// CloseAll closes every open session with cause, newest first.
func (e *Engine) CloseAll(ctx context.Context, cause CloseCause) {
	open := e.Sessions()
	for i := len(open) - 1; i >= 0; i-- {
		e.closeSession(ctx, open[i], cause)
	}
}

// Session returns the viewer's current session: the top of its stack, or nil
// when it has nothing open.
func (e *Engine) Session(viewer ViewerID) *Session {
	stack := e.stacks[viewer]
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// Sessions returns every open session in the order they were opened.
func (e *Engine) Sessions() []*Session {
	out := make([]*Session, len(e.order))
	copy(out, e.order)
	return out
}

// Post queues fn to run on the engine goroutine at the next Tick or Flush.
// It is safe to call from any goroutine.
func (e *Engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.posted = append(e.posted, fn)
	e.mu.Unlock()
}

// AddTween starts advancing t once per Tick until it is done.
func (e *Engine) AddTween(t *Tween) {
	if t != nil {
		e.tweens = append(e.tweens, t)
	}
}

// Tick advances the engine by one host tick: queued work runs, tweens step,
// then every current session gets a periodic full pass if one is due, or a
// partial pass if any of its transforms are dirty.
func (e *Engine) Tick(ctx context.Context) {
	e.drainPosted()
	e.advanceTweens()

	now := e.host.CurrentTick()
	for _, s := range e.Sessions() {
		if !s.current() {
			continue
		}
		if s.needsRepaint || e.periodicDue(s, now) {
			e.render(ctx, s, true)
			continue
		}
		if e.hasDirty(s) {
			e.render(ctx, s, false)
		}
	}
}

// Flush runs queued work and renders every current session with dirty
// transforms, without advancing tweens or periodic passes.
func (e *Engine) Flush(ctx context.Context) {
	e.drainPosted()
	for _, s := range e.Sessions() {
		if !s.current() {
			continue
		}
		if s.needsRepaint {
			e.render(ctx, s, true)
			continue
		}
		if e.hasDirty(s) {
			e.render(ctx, s, false)
		}
	}
}

func (e *Engine) periodicDue(s *Session, now int64) bool {
	u := s.iface.updates
	return u.Enabled && now-s.lastFull >= u.Interval
}

func (e *Engine) hasDirty(s *Session) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return s.pending.count() > 0
}

func (e *Engine) drainPosted() {
	e.mu.Lock()
	posted := e.posted
	e.posted = nil
	e.mu.Unlock()
	for _, fn := range posted {
		fn()
	}
}

func (e *Engine) advanceTweens() {
	live := e.tweens[:0]
	for _, t := range e.tweens {
		t.Update(1)
		if !t.Done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(e.tweens); i++ {
		e.tweens[i] = nil
	}
	e.tweens = live
}

// render runs one pass for s and pushes the cells that changed. A full pass
// starts from the interface's fill and runs every transform; a partial pass
// starts from the committed snapshot and runs only dirty transforms.
func (e *Engine) render(ctx context.Context, s *Session, full bool) {
	if !s.IsOpen() || s.rendering {
		return
	}
	now := e.host.CurrentTick()
	p := s.iface.pipeline

	e.mu.Lock()
	pending := s.takeDirty()
	e.mu.Unlock()

	var pane *Pane
	var dirty dirtySet
	mode := "partial"
	if full || s.snapshot == nil {
		pane = s.iface.newPane()
		dirty = p.allDirty()
		mode = "full"
		s.lastFull = now
	} else {
		pane = s.snapshot.Clone()
		dirty = make(dirtySet, p.Len())
		dirty.union(pending)
	}

	ctx, span := e.tracer.Start(ctx, "lattice.render", trace.WithAttributes(
		attribute.String("lattice.session", s.id),
		attribute.String("lattice.viewer", string(s.viewer)),
		attribute.String("lattice.mode", mode),
		attribute.Int64("lattice.tick", now),
	))
	defer span.End()

	var stats passStats
	var t0 time.Time
	if e.cfg.Debug {
		t0 = time.Now()
	}

	s.rendering = true
	v := newView(pane, s, now)
	res := p.run(v, dirty)
	v.seal()
	s.rendering = false

	var changes []CellChange
	if s.needsRepaint {
		changes = pane.All()
		s.needsRepaint = false
	} else {
		changes = pane.Diff(s.snapshot)
	}
	s.snapshot = pane
	s.lastErrors = res.failures
	s.passes++

	for _, err := range res.failures {
		e.logf("session %s: %v", s.id, err)
		span.RecordError(err)
	}
	if len(res.failures) > 0 {
		span.SetStatus(codes.Error, "transform failure")
	}
	span.SetAttributes(
		attribute.Int("lattice.transforms", res.ran),
		attribute.Int("lattice.changes", len(changes)),
	)

	if e.cfg.Debug {
		stats.mode = mode
		stats.ran = res.ran
		stats.failed = len(res.failures)
		stats.changes = len(changes)
		stats.renderTime = time.Since(t0)
		t0 = time.Now()
	}

	if len(changes) > 0 && s.closePending == nil {
		if err := s.surface.Push(ctx, changes); err != nil {
			span.RecordError(err)
			if errors.Is(err, ErrHostUnavailable) {
				e.logf("session %s: surface gone, closing: %v", s.id, err)
				e.closeSession(ctx, s, CloseHostUnavailable)
				return
			}
			e.logf("session %s: push failed: %v", s.id, err)
		}
	}

	if e.cfg.Debug {
		stats.pushTime = time.Since(t0)
		e.debugLog(s, stats)
	}

	if s.closePending != nil {
		cause := *s.closePending
		s.closePending = nil
		e.closeSession(ctx, s, cause)
	}
}

// handleClick routes a host click through s. Clicks on closed sessions are
// ignored. Property changes made by the handler render before returning.
func (e *Engine) handleClick(s *Session, ev ClickEvent) ClickResult {
	if !s.IsOpen() {
		return ClickResult{}
	}
	now := e.host.CurrentTick()
	res, _ := s.routeClick(ev, now)
	e.emit(InteractionEvent{
		Type:      EventClick,
		SessionID: s.id,
		Viewer:    s.viewer,
		Slot:      ev.Slot,
		Click:     ev.Click,
		Result:    res,
		Tick:      now,
	})
	e.Flush(context.Background())
	return res
}

// closeSession closes s and everything stacked on it. A close requested while
// s is rendering takes effect when the pass completes.
func (e *Engine) closeSession(ctx context.Context, s *Session, cause CloseCause) {
	if !s.IsOpen() {
		return
	}
	if s.rendering {
		if s.closePending == nil {
			c := cause
			s.closePending = &c
		}
		return
	}
	if s.child != nil {
		childCause := CloseParentClosed
		if cause == CloseDisconnect {
			childCause = CloseDisconnect
		}
		e.closeSession(ctx, s.child, childCause)
	}

	s.state = SessionClosed
	for _, sub := range s.subs {
		sub.Remove()
	}
	s.subs = nil
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	e.mu.Lock()
	s.pending = nil
	e.mu.Unlock()

	e.order = removeSession(e.order, s)
	stack := removeSession(e.stacks[s.viewer], s)
	if len(stack) == 0 {
		delete(e.stacks, s.viewer)
	} else {
		e.stacks[s.viewer] = stack
	}

	switch cause {
	case CloseHost, CloseDisconnect, CloseHostUnavailable:
	default:
		s.surface.Close()
	}

	ev := CloseEvent{Session: s, Viewer: s.viewer, Cause: cause}
	for _, h := range s.iface.closeHandlers {
		e.invokeClose(h, ev)
	}
	e.emit(InteractionEvent{
		Type:      EventClose,
		SessionID: s.id,
		Viewer:    s.viewer,
		Cause:     cause,
		Tick:      e.host.CurrentTick(),
	})

	if parent := s.parent; parent != nil {
		parent.child = nil
		if parent.IsOpen() && cause != CloseParentClosed && cause != CloseDisconnect {
			parent.needsRepaint = true
			e.render(ctx, parent, true)
		}
	}
}

func (e *Engine) invokeClose(h CloseHandler, ev CloseEvent) {
	defer func() {
		if r := recover(); r != nil {
			e.logf("close handler panicked (session %s): %v", ev.Session.id, r)
		}
	}()
	h(ev)
}

func (e *Engine) emit(ev InteractionEvent) {
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
}

func (e *Engine) logf(format string, args ...any) {
	e.logger.Printf(format, args...)
}

func removeSession(list []*Session, s *Session) []*Session {
	for i, x := range list {
		if x == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
