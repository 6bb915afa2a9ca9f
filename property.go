package lattice

import "sync"

// Observable is the type-erased side of a Property that transforms subscribe
// to. Any Property[T] satisfies it.
type Observable interface {
	Subscribe(fn func()) Subscription
}

type propertySubscriber struct {
	id uint32
	fn func()
}

// Property is a reactive single-value cell. Setting it notifies every
// subscriber; the engine subscribes on behalf of each open session whose
// interface has a transform bound to the property.
//
// Get and Set are safe from any goroutine. Subscribers run on the goroutine
// that called Set, after the new value is committed.
type Property[T any] struct {
	mu     sync.RWMutex
	value  T
	subs   []propertySubscriber
	nextID uint32
}

// NewProperty creates a property holding initial.
func NewProperty[T any](initial T) *Property[T] {
	return &Property[T]{value: initial}
}

// Get returns the latest committed value.
func (p *Property[T]) Get() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Set commits v and notifies subscribers. Subscribers are notified even when
// v equals the previous value.
func (p *Property[T]) Set(v T) {
	p.mu.Lock()
	p.value = v
	subs := p.snapshotSubscribers()
	p.mu.Unlock()
	notify(subs)
}

// Update replaces the value with fn(current) atomically with respect to other
// writers, then notifies subscribers.
func (p *Property[T]) Update(fn func(T) T) {
	p.mu.Lock()
	p.value = fn(p.value)
	subs := p.snapshotSubscribers()
	p.mu.Unlock()
	notify(subs)
}

// Getter returns a function reading the property, for closures that should
// not hold the property itself.
func (p *Property[T]) Getter() func() T {
	return p.Get
}

// Setter returns a function writing the property.
func (p *Property[T]) Setter() func(T) {
	return p.Set
}

// Subscribe registers fn to run after every Set or Update. The returned
// Subscription removes it.
func (p *Property[T]) Subscribe(fn func()) Subscription {
	if fn == nil {
		panic("lattice: cannot subscribe nil callback")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	id := p.nextID
	p.subs = append(p.subs, propertySubscriber{id: id, fn: fn})
	return Subscription{id: id, remove: p.unsubscribe}
}

// Subscribers returns the number of live subscriptions.
func (p *Property[T]) Subscribers() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subs)
}

func (p *Property[T]) unsubscribe(id uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.subs {
		if p.subs[i].id == id {
			copy(p.subs[i:], p.subs[i+1:])
			p.subs[len(p.subs)-1] = propertySubscriber{}
			p.subs = p.subs[:len(p.subs)-1]
			return
		}
	}
}

// snapshotSubscribers copies the subscriber list so callbacks can run without
// the lock held. Caller must hold p.mu.
func (p *Property[T]) snapshotSubscribers() []func() {
	if len(p.subs) == 0 {
		return nil
	}
	fns := make([]func(), len(p.subs))
	for i, s := range p.subs {
		fns[i] = s.fn
	}
	return fns
}

func notify(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

// Subscription allows removing a registered property callback.
type Subscription struct {
	id     uint32
	remove func(uint32)
}

// Remove unregisters the callback so it no longer fires. Removing twice or
// removing the zero Subscription is a no-op.
func (s Subscription) Remove() {
	if s.remove == nil {
		return
	}
	s.remove(s.id)
}
