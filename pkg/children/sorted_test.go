package children

import (
	"testing"

	"github.com/go-ripple/ripple/pkg/node"
)

func byKey(a, b node.Node) bool {
	return a.(*testNode).key < b.(*testNode).key
}

func TestSorted_StableOrder(t *testing.T) {
	// Keys [3,1,1,2]: sorted order is [1,1,2,3] and the two key-1
	// nodes keep their original relative order.
	n0 := newTestNode("n0", 3)
	n1 := newTestNode("n1", 1)
	n2 := newTestNode("n2", 1)
	n3 := newTestNode("n3", 2)
	s := NewSorted(NewVec(n0, n1, n2, n3), byKey)

	if got := names(s); !equalStrings(got, []string{"n1", "n2", "n3", "n0"}) {
		t.Fatalf("unexpected sorted order: %v", got)
	}
}

func TestSorted_VisitDereferencesThroughMap(t *testing.T) {
	n0, n1 := newTestNode("n0", 2), newTestNode("n1", 1)
	s := NewSorted(NewVec(n0, n1), byKey)

	var first node.Node
	s.Visit(0, func(n node.Node) { first = n })
	if first != n1 {
		t.Fatalf("expected visit(0) to reach the lowest-key node")
	}
}

func TestSorted_DrainMatchesIterationOrder(t *testing.T) {
	n0 := newTestNode("n0", 3)
	n1 := newTestNode("n1", 1)
	n2 := newTestNode("n2", 1)
	n3 := newTestNode("n3", 2)

	iterated := names(NewSorted(NewVec(n0, n1, n2, n3), byKey))

	s := NewSorted(NewVec(n0, n1, n2, n3), byKey)
	var buf []node.Node
	s.Drain(&buf)
	var drained []string
	for _, n := range buf {
		drained = append(drained, n.(*testNode).name)
	}
	if !equalStrings(drained, iterated) {
		t.Fatalf("drain order %v differs from iteration order %v", drained, iterated)
	}
	if s.Len() != 0 {
		t.Fatalf("expected drained list to be empty, got %d", s.Len())
	}
}

func TestSorted_DrainAppendsAfterExistingBuffer(t *testing.T) {
	existing := newTestNode("existing", 0)
	s := NewSorted(NewVec(newTestNode("n0", 2), newTestNode("n1", 1)), byKey)

	buf := []node.Node{existing}
	s.Drain(&buf)
	var got []string
	for _, n := range buf {
		got = append(got, n.(*testNode).name)
	}
	if !equalStrings(got, []string{"existing", "n1", "n0"}) {
		t.Fatalf("unexpected buffer contents: %v", got)
	}
}

func TestSorted_MapRebuiltAfterLengthChange(t *testing.T) {
	inner := NewEdit(newTestNode("n0", 2), newTestNode("n1", 1))
	s := NewSorted(inner, byKey)
	cx := seqContext()
	s.InitAll(cx)

	if got := names(s); !equalStrings(got, []string{"n1", "n0"}) {
		t.Fatalf("unexpected initial order: %v", got)
	}

	inner.Handle().Push(newTestNode("n2", 0))
	s.UpdateAll(cx, NopObserver{})

	if got := names(s); !equalStrings(got, []string{"n2", "n1", "n0"}) {
		t.Fatalf("expected new node sorted first, got %v", got)
	}
}

func TestSorted_DescendantResortRequest(t *testing.T) {
	// A node deep inside the inner list flags "resort needed" through
	// the scoped context value; the next positional operation re-sorts.
	n0 := newTestNode("n0", 1)
	n1 := newTestNode("n1", 2)
	s := NewSorted(NewVec(n0, n1), byKey)
	cx := seqContext()

	if got := names(s); !equalStrings(got, []string{"n0", "n1"}) {
		t.Fatalf("unexpected initial order: %v", got)
	}

	// The node swaps its own sort key during update and requests a
	// resort without holding a reference to the sorting list.
	n0.resortOnUpdate = true
	n0.key = 5
	s.UpdateAll(cx, NopObserver{})

	if got := names(s); !equalStrings(got, []string{"n1", "n0"}) {
		t.Fatalf("expected re-sorted order after resort request, got %v", got)
	}
}

func TestSorted_ResortRequestDuringEventPass(t *testing.T) {
	// Event delivery does not invalidate the map by itself; only the
	// scoped resort flag does.
	n0 := newTestNode("n0", 1)
	n1 := newTestNode("n1", 2)
	s := NewSorted(NewVec(n0, n1), byKey)
	cx := seqContext()

	if got := names(s); !equalStrings(got, []string{"n0", "n1"}) {
		t.Fatalf("unexpected initial order: %v", got)
	}

	// Without a resort request the stale key is not noticed.
	n0.key = 5
	s.EventAll(cx, "tick")
	if got := names(s); !equalStrings(got, []string{"n0", "n1"}) {
		t.Fatalf("expected cached order to survive a quiet event pass, got %v", got)
	}

	// With the request, the map is rebuilt right after the pass.
	n0.resortOnEvent = true
	s.EventAll(cx, "tick")
	if got := names(s); !equalStrings(got, []string{"n1", "n0"}) {
		t.Fatalf("expected re-sorted order after resort request, got %v", got)
	}
}

func TestSorted_ResortRequestOutsideScopeIsNoop(t *testing.T) {
	cx := seqContext()
	// No sorting list installed the flag: must not panic.
	cx.RequestResort()
}

func TestSorted_RenderUsesSortedOrder(t *testing.T) {
	s := NewSorted(NewVec(newTestNode("high", 9), newTestNode("low", 1)), byKey)
	if got := renderLabels(seqContext(), s); !equalStrings(got, []string{"low", "high"}) {
		t.Fatalf("unexpected render order: %v", got)
	}
}
