package page

import (
	"context"
	"testing"

	"golang.org/x/net/html"
)

const nested = `<body><div id="outer"><a id="link" href="/next"><span id="inner">go</span></a></div></body>`

func node(t *testing.T, d *Document, sel string) *html.Node {
	t.Helper()
	nodes, err := d.QueryAll(sel)
	if err != nil || len(nodes) != 1 {
		t.Fatalf("QueryAll(%q) = %d nodes, err %v", sel, len(nodes), err)
	}
	return nodes[0]
}

func TestDispatch_ClickBubbles(t *testing.T) {
	d := mustParse(t, nested)
	var order []string
	for _, id := range []string{"#outer", "#link", "#inner"} {
		d.AddListener(node(t, d, id), Click, func(_ context.Context, e *Event) {
			order = append(order, Describe(e.CurrentTarget))
		})
	}

	ev := d.Dispatch(context.Background(), node(t, d, "#inner"), Click)
	want := []string{"span#inner", "a#link", "div#outer"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
	if ev.Target != node(t, d, "#inner") || ev.CurrentTarget != nil {
		t.Error("event targets not reset after dispatch")
	}
	if d.LastNavigation() != "/next" {
		t.Errorf("LastNavigation() = %q, want /next", d.LastNavigation())
	}
}

func TestDispatch_StopAndPrevent(t *testing.T) {
	d := mustParse(t, nested)
	outerCalls := 0
	d.AddListener(node(t, d, "#outer"), Click, func(context.Context, *Event) { outerCalls++ })
	d.AddListener(node(t, d, "#inner"), Click, func(_ context.Context, e *Event) {
		e.PreventDefault()
		e.StopPropagation()
	})

	ev := d.Dispatch(context.Background(), node(t, d, "#inner"), Click)
	if !ev.DefaultPrevented() || !ev.PropagationStopped() {
		t.Error("flags not recorded on event")
	}
	if outerCalls != 0 {
		t.Errorf("outer listener ran %d times after StopPropagation", outerCalls)
	}
	if d.LastNavigation() != "" {
		t.Errorf("prevented click navigated to %q", d.LastNavigation())
	}
}

func TestDispatch_PointerEventsDoNotBubble(t *testing.T) {
	d := mustParse(t, nested)
	outer := 0
	d.AddListener(node(t, d, "#outer"), PointerEnter, func(context.Context, *Event) { outer++ })
	d.Dispatch(context.Background(), node(t, d, "#inner"), PointerEnter)
	if outer != 0 {
		t.Error("pointerenter bubbled to ancestor")
	}
	d.Dispatch(context.Background(), node(t, d, "#outer"), PointerEnter)
	if outer != 1 {
		t.Errorf("listener calls = %d, want 1", outer)
	}
}

func TestRemoveListener(t *testing.T) {
	d := mustParse(t, nested)
	n := node(t, d, "#outer")
	calls := 0
	a := d.AddListener(n, Click, func(context.Context, *Event) { calls++ })
	d.AddListener(n, PointerLeave, func(context.Context, *Event) {})

	if d.ListenerCount(n, Click) != 1 || d.TotalListeners() != 2 {
		t.Fatal("listener counts wrong after add")
	}
	if !d.RemoveListener(a) {
		t.Fatal("RemoveListener returned false for known id")
	}
	if d.RemoveListener(a) {
		t.Error("RemoveListener returned true twice")
	}
	d.Dispatch(context.Background(), n, Click)
	if calls != 0 {
		t.Error("removed listener still ran")
	}
	if d.ListenerCount(n, Click) != 0 || d.ListenerCount(n, PointerLeave) != 1 {
		t.Error("RemoveListener removed the wrong listener")
	}
}

func TestDispatch_ListenerRemovingItself(t *testing.T) {
	d := mustParse(t, nested)
	n := node(t, d, "#outer")
	var id ListenerID
	calls := 0
	id = d.AddListener(n, Click, func(context.Context, *Event) {
		calls++
		d.RemoveListener(id)
	})
	d.Dispatch(context.Background(), n, Click)
	d.Dispatch(context.Background(), n, Click)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
