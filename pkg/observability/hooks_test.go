package observability

import (
	"context"
	"testing"
	"time"
)

type testRenderHooks struct {
	layouts    int
	composites int
}

func (h *testRenderHooks) OnLayout(context.Context, int, bool) { h.layouts++ }
func (h *testRenderHooks) OnCompositeStart(context.Context, int) {
	h.composites++
}
func (h *testRenderHooks) OnCompositeComplete(context.Context, int, int, time.Duration, error) {}

type testCacheHooks struct{ hits int }

func (h *testCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *testCacheHooks) OnCacheMiss(context.Context, string)     {}
func (h *testCacheHooks) OnCacheSet(context.Context, string, int) {}

type testSinkHooks struct{ encodes int }

func (h *testSinkHooks) OnEncode(context.Context, string, int, time.Duration, error) { h.encodes++ }

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRenderHooks{}
	r.OnLayout(ctx, 3, false)
	r.OnCompositeStart(ctx, 10)
	r.OnCompositeComplete(ctx, 800, 600, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	s := NoopSinkHooks{}
	s.OnEncode(ctx, "png", 2048, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Sink().(NoopSinkHooks); !ok {
		t.Error("Sink() should return NoopSinkHooks by default")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customSink := &testSinkHooks{}
	SetSinkHooks(customSink)
	if Sink() != customSink {
		t.Error("SetSinkHooks should set custom hooks")
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testRenderHooks{}
	SetRenderHooks(custom)
	SetRenderHooks(nil)
	if Render() != custom {
		t.Error("SetRenderHooks(nil) must not clear registered hooks")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testRenderHooks{}
	SetRenderHooks(custom)

	ctx := context.Background()
	Render().OnLayout(ctx, 2, true)
	Render().OnLayout(ctx, 0, false)
	Render().OnCompositeStart(ctx, 5)

	if custom.layouts != 2 {
		t.Errorf("layouts = %d, want 2", custom.layouts)
	}
	if custom.composites != 1 {
		t.Errorf("composites = %d, want 1", custom.composites)
	}
}
