package lattice

import "reflect"

// Element is one renderable unit occupying a cell. Payload is whatever the
// host knows how to display (an item stack, a glyph, a tile color); the engine
// never looks inside it except to decide whether a cell changed.
//
// OnClick, when set, overrides the interface's default click handler for the
// cell the element occupies.
type Element struct {
	Payload any
	OnClick ClickHandler
}

// NewElement creates an element with an optional click handler.
func NewElement(payload any, onClick ClickHandler) Element {
	return Element{Payload: payload, OnClick: onClick}
}

// Equaler lets a payload define its own equality for change detection.
type Equaler interface {
	Equal(other any) bool
}

// SameAs reports whether e and other would look identical on the host. Click
// handlers are not compared: a handler swap alone never needs a host push.
func (e Element) SameAs(other Element) bool {
	return payloadEqual(e.Payload, other.Payload)
}

func payloadEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if eq, ok := a.(Equaler); ok {
		return eq.Equal(b)
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if eq, ok := comparableEqual(a, b); ok {
		return eq
	}
	return reflect.DeepEqual(a, b)
}

// comparableEqual compares with ==. ok is false when the values cannot be
// compared that way: slices, maps, or structs whose interface fields hold one.
func comparableEqual(a, b any) (equal, ok bool) {
	if !reflect.TypeOf(a).Comparable() {
		return false, false
	}
	defer func() {
		if recover() != nil {
			equal, ok = false, false
		}
	}()
	return a == b, true
}
