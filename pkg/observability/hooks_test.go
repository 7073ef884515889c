package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopCaptureHooks{}
	c.OnModeChange(ctx, "member", 3)
	c.OnCapture(ctx, "member", 42)
	c.OnClear(ctx)

	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, 2)
	r.OnRenderComplete(ctx, 2, time.Millisecond, nil)
	r.OnExport(ctx, 2048)

	s := NoopStorageHooks{}
	s.OnRead(ctx, "selectedItems", true)
	s.OnWrite(ctx, "selectedItems", 128)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Capture().(NoopCaptureHooks); !ok {
		t.Error("Capture() should return NoopCaptureHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Storage().(NoopStorageHooks); !ok {
		t.Error("Storage() should return NoopStorageHooks by default")
	}

	customCapture := &testCaptureHooks{}
	SetCaptureHooks(customCapture)
	if Capture() != customCapture {
		t.Error("SetCaptureHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customStorage := &testStorageHooks{}
	SetStorageHooks(customStorage)
	if Storage() != customStorage {
		t.Error("SetStorageHooks should set custom hooks")
	}

	Reset()
	if _, ok := Capture().(NoopCaptureHooks); !ok {
		t.Error("Reset() should restore NoopCaptureHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testCaptureHooks{}
	SetCaptureHooks(custom)
	SetCaptureHooks(nil)

	if Capture() != custom {
		t.Error("SetCaptureHooks(nil) should not replace existing hooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testCaptureHooks{}
	SetCaptureHooks(h)

	Capture().OnCapture(context.Background(), "testimonial", 10)
	Capture().OnCapture(context.Background(), "member", 5)

	if h.captures != 2 {
		t.Errorf("captures = %d, want 2", h.captures)
	}
}

type testCaptureHooks struct {
	NoopCaptureHooks
	captures int
}

func (h *testCaptureHooks) OnCapture(context.Context, string, int) { h.captures++ }

type testRenderHooks struct{ NoopRenderHooks }

type testStorageHooks struct{ NoopStorageHooks }
