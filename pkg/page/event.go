package page

import (
	"context"
	"slices"

	"golang.org/x/net/html"
)

// EventType names a pointer event.
type EventType string

const (
	PointerEnter EventType = "pointerenter"
	PointerLeave EventType = "pointerleave"
	Click        EventType = "click"
)

// Bubbles reports whether events of this type propagate to ancestors.
func (t EventType) Bubbles() bool { return t == Click }

// Event is passed to each listener during a dispatch.
type Event struct {
	Type          EventType
	Target        *html.Node
	CurrentTarget *html.Node

	defaultPrevented bool
	stopped          bool
}

// PreventDefault suppresses the default action (link navigation).
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops the event reaching further ancestors. Listeners on
// the current element still run.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// Listener handles an event.
type Listener func(context.Context, *Event)

// ListenerID identifies a registered listener.
type ListenerID uint64

type registration struct {
	node *html.Node
	typ  EventType
	fn   Listener
}

// AddListener registers fn for events of type typ on n. Listeners run in
// registration order.
func (d *Document) AddListener(n *html.Node, typ EventType, fn Listener) ListenerID {
	d.nextID++
	id := d.nextID
	d.listeners[id] = &registration{node: n, typ: typ, fn: fn}
	d.byNode[n] = append(d.byNode[n], id)
	return id
}

// RemoveListener unregisters the listener. It reports whether id was known.
func (d *Document) RemoveListener(id ListenerID) bool {
	reg, ok := d.listeners[id]
	if !ok {
		return false
	}
	delete(d.listeners, id)
	ids := slices.DeleteFunc(d.byNode[reg.node], func(x ListenerID) bool { return x == id })
	if len(ids) == 0 {
		delete(d.byNode, reg.node)
	} else {
		d.byNode[reg.node] = ids
	}
	return true
}

// ListenerCount returns the number of listeners of type typ on n.
func (d *Document) ListenerCount(n *html.Node, typ EventType) int {
	count := 0
	for _, id := range d.byNode[n] {
		if d.listeners[id].typ == typ {
			count++
		}
	}
	return count
}

// TotalListeners returns the number of registered listeners in the document.
func (d *Document) TotalListeners() int { return len(d.listeners) }

// Dispatch fires an event of type typ at target and returns it after all
// listeners have run. An un-prevented click inside a link records a
// navigation.
func (d *Document) Dispatch(ctx context.Context, target *html.Node, typ EventType) *Event {
	ev := &Event{Type: typ, Target: target}
	for n := target; n != nil; n = n.Parent {
		ev.CurrentTarget = n
		for _, id := range slices.Clone(d.byNode[n]) {
			if reg, ok := d.listeners[id]; ok && reg.typ == typ {
				reg.fn(ctx, ev)
			}
		}
		if ev.stopped || !typ.Bubbles() {
			break
		}
	}
	ev.CurrentTarget = nil

	if typ == Click && !ev.defaultPrevented {
		if href, ok := linkTarget(target); ok {
			d.nav = href
		}
	}
	return ev
}

// LastNavigation returns the href of the most recent link followed by an
// un-prevented click, or "" if none.
func (d *Document) LastNavigation() string { return d.nav }

func linkTarget(n *html.Node) (string, bool) {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" {
					return a.Val, true
				}
			}
		}
	}
	return "", false
}
