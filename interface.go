package lattice

// UpdatePolicy controls periodic full re-renders.
type UpdatePolicy struct {
	Enabled bool
	// Interval is the number of host ticks between full passes.
	Interval int64
}

// Interface is an immutable, renderable definition: a shape, a title, a
// pipeline of transforms, and click/close handlers. One Interface may back any
// number of open sessions.
type Interface struct {
	shape         Shape
	title         string
	fill          *Element
	pipeline      *Pipeline
	defaultClick  ClickHandler
	closeHandlers []CloseHandler
	updates       UpdatePolicy
}

// Shape returns the interface's grid shape.
func (i *Interface) Shape() Shape { return i.shape }

// Title returns the default title, used when Open is not given WithTitle.
func (i *Interface) Title() string { return i.title }

// Pipeline returns the sorted transform pipeline.
func (i *Interface) Pipeline() *Pipeline { return i.pipeline }

// UpdatePolicy returns the periodic update policy.
func (i *Interface) UpdatePolicy() UpdatePolicy { return i.updates }

// DefaultClickHandler returns the pane-wide click handler, or nil.
func (i *Interface) DefaultClickHandler() ClickHandler { return i.defaultClick }

// newPane returns the starting pane of a full pass: empty, or filled with the
// interface's fill element.
func (i *Interface) newPane() *Pane {
	p := NewPane(i.shape)
	if i.fill != nil {
		p.Fill(*i.fill)
	}
	return p
}

// Builder configures an Interface. Methods return the builder for chaining.
type Builder struct {
	shape         Shape
	title         string
	fill          *Element
	transforms    []*Transform
	defaultClick  ClickHandler
	closeHandlers []CloseHandler
	updates       UpdatePolicy
}

// Build starts an interface of the given shape. An optional title sets the
// default surface title.
func Build(shape Shape, title ...string) *Builder {
	b := &Builder{shape: shape, updates: UpdatePolicy{Interval: 1}}
	if len(title) > 0 {
		b.title = title[0]
	}
	return b
}

// BuildChest starts a chest interface with the given number of rows. Chest
// interfaces cancel clicks by default so viewers cannot take items out.
func BuildChest(rows int, title ...string) *Builder {
	return Build(ChestShape(rows), title...).SetDefaultClickHandler(Cancel())
}

// BuildPlayer starts an interface over the viewer's own inventory grid.
func BuildPlayer() *Builder {
	return Build(PlayerShape())
}

// Title sets the default title.
func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

// Fill sets the element every full pass starts from. Without it a full pass
// starts from an empty pane.
func (b *Builder) Fill(e Element) *Builder {
	b.fill = &e
	return b
}

// AddTransform registers fn. Options set its priority and property bindings.
func (b *Builder) AddTransform(fn TransformFunc, opts ...TransformOption) *Builder {
	b.transforms = append(b.transforms, newTransform(len(b.transforms), fn, opts))
	return b
}

// SetDefaultClickHandler sets the handler for clicks on cells whose element
// has no handler of its own, including empty cells. nil removes it.
func (b *Builder) SetDefaultClickHandler(h ClickHandler) *Builder {
	b.defaultClick = h
	return b
}

// SetCloseHandler replaces all close handlers with h.
func (b *Builder) SetCloseHandler(h CloseHandler) *Builder {
	b.closeHandlers = nil
	if h != nil {
		b.closeHandlers = append(b.closeHandlers, h)
	}
	return b
}

// AddCloseHandler appends a close handler. Handlers run in the order added.
func (b *Builder) AddCloseHandler(h CloseHandler) *Builder {
	if h != nil {
		b.closeHandlers = append(b.closeHandlers, h)
	}
	return b
}

// SetUpdatePolicy enables or disables periodic full passes every interval host
// ticks. Intervals below one are treated as one.
func (b *Builder) SetUpdatePolicy(enabled bool, interval int64) *Builder {
	if interval < 1 {
		interval = 1
	}
	b.updates = UpdatePolicy{Enabled: enabled, Interval: interval}
	return b
}

// Build freezes the configuration into an Interface. The builder may be reused;
// later changes do not affect interfaces already built.
func (b *Builder) Build() *Interface {
	transforms := make([]*Transform, len(b.transforms))
	copy(transforms, b.transforms)
	handlers := make([]CloseHandler, len(b.closeHandlers))
	copy(handlers, b.closeHandlers)
	var fill *Element
	if b.fill != nil {
		f := *b.fill
		fill = &f
	}
	return &Interface{
		shape:         b.shape,
		title:         b.title,
		fill:          fill,
		pipeline:      newPipeline(transforms),
		defaultClick:  b.defaultClick,
		closeHandlers: handlers,
		updates:       b.updates,
	}
}
