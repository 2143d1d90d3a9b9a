package frame

import (
	"fmt"
	"testing"

	"github.com/go-ripple/ripple/pkg/graphics"
	"github.com/go-ripple/ripple/pkg/tree"
)

type traceCanvas struct {
	trace []string
}

func (c *traceCanvas) Save()    { c.trace = append(c.trace, "save") }
func (c *traceCanvas) Restore() { c.trace = append(c.trace, "restore") }

func (c *traceCanvas) Translate(dx, dy float64) {
	c.trace = append(c.trace, fmt.Sprintf("translate(%g,%g)", dx, dy))
}

func (c *traceCanvas) Transform(t graphics.Transform) {
	c.trace = append(c.trace, fmt.Sprintf("transform(%g,%g)", t.TX, t.TY))
}

func (c *traceCanvas) Rect(r graphics.Rect, label string) {
	c.trace = append(c.trace, "rect:"+label)
}

func TestFrameBuilder_ChildScopeNesting(t *testing.T) {
	b := NewFrameBuilder()
	b.Child(graphics.Offset{X: 5, Y: 10}, func(sub *FrameBuilder) {
		sub.Rect(graphics.RectFromLTWH(0, 0, 1, 1), "leaf")
	})

	var c traceCanvas
	b.Build().Replay(&c)
	want := []string{"save", "translate(5,10)", "rect:leaf", "restore"}
	if len(c.trace) != len(want) {
		t.Fatalf("unexpected trace: %v", c.trace)
	}
	for i := range want {
		if c.trace[i] != want[i] {
			t.Fatalf("trace[%d] = %q, want %q", i, c.trace[i], want[i])
		}
	}
}

func TestFrameBuilder_ForkJoinOrder(t *testing.T) {
	b := NewFrameBuilder()
	b.Rect(graphics.Rect{}, "before")

	f1, f2 := b.Fork(), b.Fork()
	f2.Rect(graphics.Rect{}, "second")
	f1.Rect(graphics.Rect{}, "first")
	b.Join(f1)
	b.Join(f2)

	var c traceCanvas
	b.Build().Replay(&c)
	want := []string{"rect:before", "rect:first", "rect:second"}
	for i := range want {
		if c.trace[i] != want[i] {
			t.Fatalf("trace[%d] = %q, want %q", i, c.trace[i], want[i])
		}
	}
}

func TestUpdateBuilder_PatchesKeyedScope(t *testing.T) {
	key := ScopeKey{List: NextScopeNamespace(), Index: 4}
	b := NewFrameBuilder()
	b.TransformScope(key, graphics.Translate(1, 2), func(sub *FrameBuilder) {
		sub.Rect(graphics.Rect{}, "framed")
	})
	f := b.Build()

	ub := NewUpdateBuilder()
	ub.SetTransform(key, graphics.Translate(9, 9))
	ub.SetTransform(ScopeKey{List: 12345, Index: 0}, graphics.Translate(0, 0))
	if applied := ub.ApplyTo(f); applied != 1 {
		t.Fatalf("expected 1 applied patch, got %d", applied)
	}

	tr, ok := f.ScopeTransform(key)
	if !ok || tr.TX != 9 || tr.TY != 9 {
		t.Fatalf("expected patched transform (9,9), got %+v ok=%v", tr, ok)
	}

	// The patched value is what replays.
	var c traceCanvas
	f.Replay(&c)
	if c.trace[1] != "transform(9,9)" {
		t.Fatalf("expected replay of the patched transform, got %v", c.trace)
	}
}

func TestUpdateBuilder_ForkJoin(t *testing.T) {
	key := ScopeKey{List: NextScopeNamespace(), Index: 0}
	b := NewFrameBuilder()
	b.TransformScope(key, graphics.Translate(0, 0), func(*FrameBuilder) {})
	f := b.Build()

	ub := NewUpdateBuilder()
	sub := ub.Fork()
	sub.SetTransform(key, graphics.Translate(3, 4))
	ub.Join(sub)
	if applied := ub.ApplyTo(f); applied != 1 {
		t.Fatalf("expected forked patch to apply, got %d", applied)
	}
}

func TestInfoBuilder_NestingAndForkJoin(t *testing.T) {
	parent := tree.NewWidgetID()
	childA, childB := tree.NewWidgetID(), tree.NewWidgetID()

	b := NewInfoBuilder()
	b.Node(parent, graphics.RectFromLTWH(0, 0, 100, 100), func(sub *InfoBuilder) {
		f1, f2 := sub.Fork(), sub.Fork()
		f1.Node(childA, graphics.Rect{}, nil)
		f2.Node(childB, graphics.Rect{}, nil)
		sub.Join(f1)
		sub.Join(f2)
	})

	nodes := b.Build()
	if len(nodes) != 1 {
		t.Fatalf("expected one root info node, got %d", len(nodes))
	}
	root := nodes[0]
	if root.Widget != parent || len(root.Children) != 2 {
		t.Fatalf("unexpected root: %+v", root)
	}
	if root.Children[0].Widget != childA || root.Children[1].Widget != childB {
		t.Fatalf("children joined out of order")
	}
}

func TestScopeNamespacesAreUnique(t *testing.T) {
	a, b := NextScopeNamespace(), NextScopeNamespace()
	if a == b {
		t.Fatalf("expected distinct namespaces, got %d twice", a)
	}
}
