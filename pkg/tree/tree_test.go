package tree

import (
	"sync/atomic"
	"testing"
)

func TestPhaseNames(t *testing.T) {
	cases := map[Phase]string{
		PhaseInit:         "init",
		PhaseDeinit:       "deinit",
		PhaseInfo:         "info",
		PhaseEvent:        "event",
		PhaseUpdate:       "update",
		PhaseRender:       "render",
		PhaseRenderUpdate: "render_update",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Fatalf("phase %d: got %q, want %q", int(phase), got, want)
		}
		back, ok := PhaseFromName(want)
		if !ok || back != phase {
			t.Fatalf("round-trip of %q failed", want)
		}
	}
	if _, ok := PhaseFromName("nonsense"); ok {
		t.Fatalf("expected unknown name to be rejected")
	}
}

func TestParallelConfig(t *testing.T) {
	cfg := NewParallelConfig(PhaseRender, PhaseUpdate)
	if !cfg.Enabled(PhaseRender) || !cfg.Enabled(PhaseUpdate) {
		t.Fatalf("expected enabled phases to report true")
	}
	if cfg.Enabled(PhaseInit) {
		t.Fatalf("expected init to stay sequential")
	}

	var zero ParallelConfig
	for _, p := range Phases() {
		if zero.Enabled(p) {
			t.Fatalf("zero config must disable every phase, %s was on", p)
		}
	}
}

func TestParallelConfigFromYAML(t *testing.T) {
	cfg, err := ParallelConfigFromYAML([]byte("parallel:\n  render: true\n  update: false\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Enabled(PhaseRender) {
		t.Fatalf("expected render enabled")
	}
	if cfg.Enabled(PhaseUpdate) {
		t.Fatalf("expected update disabled")
	}

	if _, err := ParallelConfigFromYAML([]byte("parallel:\n  repaint: true\n")); err == nil {
		t.Fatalf("expected unknown phase name to be rejected")
	}
}

func TestContext_WidgetScoping(t *testing.T) {
	root := NewContext(nil, nil)
	if root.Widget() != NoWidget {
		t.Fatalf("expected no ambient widget at the root")
	}

	outer, inner := NewWidgetID(), NewWidgetID()
	cx := root.WithWidget(outer)
	nested := cx.WithWidget(inner)

	if nested.Widget() != inner || nested.Parent() != outer {
		t.Fatalf("unexpected identity chain: widget=%d parent=%d", nested.Widget(), nested.Parent())
	}
	// Derivation leaves the original untouched.
	if cx.Widget() != outer || cx.Parent() != NoWidget {
		t.Fatalf("derivation mutated the parent context")
	}
}

func TestContext_ResortScope(t *testing.T) {
	root := NewContext(nil, nil)
	root.RequestResort() // outside any scope: no-op, no panic

	var flag atomic.Bool
	scoped := root.WithResort(&flag)
	scoped.RequestResort()
	if !flag.Load() {
		t.Fatalf("expected the scoped flag to be set")
	}
}

func TestContext_ZCaptureScope(t *testing.T) {
	root := NewContext(nil, nil)
	root.SetZIndex(3) // outside any scope: no-op

	var got uint32
	scoped := root.WithZCapture(func(z uint32) { got = z })
	scoped.SetZIndex(7)
	if got != 7 {
		t.Fatalf("expected captured z 7, got %d", got)
	}
}

func TestContext_PendingFlagsSharedAcrossDerivations(t *testing.T) {
	root := NewContext(nil, nil)
	derived := root.WithWidget(NewWidgetID())

	derived.MarkNeedsRender()
	if !root.TakeNeedsRender() {
		t.Fatalf("expected the pending flag to surface at the root")
	}
	if root.TakeNeedsRender() {
		t.Fatalf("expected TakeNeedsRender to clear the flag")
	}

	derived.MarkNeedsInfo()
	if !root.TakeNeedsInfo() {
		t.Fatalf("expected the info flag to surface at the root")
	}
}

func TestContext_EnabledWithNilFlags(t *testing.T) {
	cx := NewContext(nil, nil)
	for _, p := range Phases() {
		if cx.Enabled(p) {
			t.Fatalf("nil flags must keep %s sequential", p)
		}
	}
}
