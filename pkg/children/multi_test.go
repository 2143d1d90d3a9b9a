package children

import (
	"testing"

	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/tree"
)

func multiFixture() (*Multi, []*testNode) {
	nodes := []*testNode{
		newTestNode("a0", 0), newTestNode("a1", 0),
		newTestNode("b0", 0),
		newTestNode("c0", 0), newTestNode("c1", 0), newTestNode("c2", 0),
	}
	m := NewMulti(
		NewVec(nodes[0], nodes[1]),
		NewVec(nodes[2]),
		NewVec(nodes[3], nodes[4], nodes[5]),
	)
	return m, nodes
}

func TestMulti_LengthAndRouting(t *testing.T) {
	m, nodes := multiFixture()

	if m.Len() != 6 {
		t.Fatalf("expected combined length 6, got %d", m.Len())
	}
	for i, want := range nodes {
		var got node.Node
		m.Visit(i, func(n node.Node) { got = n })
		if got != want {
			t.Fatalf("index %d routed to %s, want %s", i, got.(*testNode).name, want.name)
		}
	}
}

func TestMulti_VisitOutOfBoundsPanics(t *testing.T) {
	m, _ := multiFixture()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected out-of-bounds visit to panic")
		}
	}()
	m.Visit(6, func(node.Node) {})
}

func TestMulti_ForEachRange(t *testing.T) {
	m, _ := multiFixture()
	var got []string
	m.ForEachRange(1, 5, func(_ int, n node.Node) {
		got = append(got, n.(*testNode).name)
	})
	if !equalStrings(got, []string{"a1", "b0", "c0", "c1"}) {
		t.Fatalf("unexpected range visit: %v", got)
	}
}

func TestMulti_UpdateRunningOffset(t *testing.T) {
	a := NewEdit(newTestNode("a0", 0))
	b := NewEdit(newTestNode("b0", 0), newTestNode("b1", 0))
	c := NewEdit(newTestNode("c0", 0))
	m := NewMulti(a, b, c)
	cx := seqContext()
	m.InitAll(cx)

	// One edit per sub-list; offsets must track the updated lengths of
	// everything processed before.
	a.Handle().Push(newTestNode("a1", 0))
	b.Handle().Insert(0, newTestNode("b2", 0))
	c.Handle().Push(newTestNode("c1", 0))

	var obs recObserver
	m.UpdateAll(cx, &obs)
	// a push lands at combined 1; b insert at combined 2 (after a grew
	// to 2); c push at combined 6.
	if !equalStrings(obs.events, []string{"inserted(1)", "inserted(2)", "inserted(6)"}) {
		t.Fatalf("unexpected notifications: %v", obs.events)
	}
	if m.Len() != 7 {
		t.Fatalf("expected combined length 7, got %d", m.Len())
	}
}

func TestMulti_ResetOnlyFastPath(t *testing.T) {
	a := NewEdit(newTestNode("a0", 0))
	b := NewEdit(newTestNode("b0", 0))
	m := NewMulti(a, b)
	cx := parContext(tree.PhaseUpdate)
	m.InitAll(cx)

	b.Handle().Push(newTestNode("b1", 0))

	resets := 0
	m.UpdateAll(cx, ResetObserver(func() { resets++ }))
	if resets != 1 {
		t.Fatalf("expected exactly one reset, got %d", resets)
	}
}

func TestMulti_ParallelRenderMatchesSequential(t *testing.T) {
	build := func() *Multi {
		m, _ := multiFixture()
		return m
	}
	seq := renderLabels(seqContext(), build())
	par := renderLabels(parContext(tree.PhaseRender), build())
	if !equalStrings(seq, par) {
		t.Fatalf("parallel frame %v differs from sequential %v", par, seq)
	}
	if !equalStrings(seq, []string{"a0", "a1", "b0", "c0", "c1", "c2"}) {
		t.Fatalf("unexpected frame order: %v", seq)
	}
}

func TestMulti_DrainPreservesOrder(t *testing.T) {
	m, _ := multiFixture()
	var buf []node.Node
	m.Drain(&buf)
	var got []string
	for _, n := range buf {
		got = append(got, n.(*testNode).name)
	}
	if !equalStrings(got, []string{"a0", "a1", "b0", "c0", "c1", "c2"}) {
		t.Fatalf("unexpected drain order: %v", got)
	}
}
