package children

import (
	"runtime"

	"github.com/sourcegraph/conc"

	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/tree"
)

// VisitFunc receives one node together with its index in the list.
type VisitFunc func(index int, n node.Node)

// List is the uniform contract every child collection implements.
//
// Indices are 0-based and dense but not stable: they shift as nodes are
// inserted, removed and reordered, which is what [Observer] exists to
// track. Visiting out of bounds is a contract violation and panics;
// callers are expected to have checked Len first.
type List interface {
	// Len returns the number of nodes the list transitively owns.
	Len() int
	// Visit invokes fn on the node at index. Out of bounds panics.
	Visit(index int, fn func(n node.Node))
	// ForEach visits every node in index order.
	ForEach(fn VisitFunc)
	// ForEachRange visits the nodes in [lo, hi) in index order. It is
	// the chunk primitive behind ParForEach and FoldReduce.
	ForEachRange(lo, hi int, fn VisitFunc)
	// Drain moves every owned node into buf, emptying the list.
	Drain(buf *[]node.Node)

	// InitAll attaches every node to the tree.
	InitAll(cx *tree.Context)
	// DeinitAll detaches every node from the tree.
	DeinitAll(cx *tree.Context)
	// InfoAll rebuilds every node's info subtree.
	InfoAll(cx *tree.Context, b *frame.InfoBuilder)
	// EventAll delivers an event payload to every node.
	EventAll(cx *tree.Context, ev tree.Event)
	// UpdateAll updates every node, applying any pending structural
	// edits first and reporting them to obs.
	UpdateAll(cx *tree.Context, obs Observer)
	// RenderAll records every node into the frame builder.
	RenderAll(cx *tree.Context, b *frame.FrameBuilder)
	// RenderUpdateAll patches every node's recorded transforms.
	RenderUpdateAll(cx *tree.Context, b *frame.UpdateBuilder)
}

// Base supplies the default tree operations, each expressed in terms of
// the outer list's ForEach. Concrete lists embed Base and register
// themselves with SetSelf, the same back-reference idiom render boxes
// use; composites override whichever operations need routing, sinks or
// observer bookkeeping.
type Base struct {
	self List
}

// SetSelf registers the outer list so the default operations dispatch
// through its ForEach.
func (b *Base) SetSelf(l List) {
	b.self = l
}

// InitAll attaches every node in index order.
func (b *Base) InitAll(cx *tree.Context) {
	b.self.ForEach(func(_ int, n node.Node) {
		n.Init(cx)
	})
}

// DeinitAll detaches every node in index order.
func (b *Base) DeinitAll(cx *tree.Context) {
	b.self.ForEach(func(_ int, n node.Node) {
		n.Deinit(cx)
	})
}

// InfoAll rebuilds every node's info subtree in index order.
func (b *Base) InfoAll(cx *tree.Context, ib *frame.InfoBuilder) {
	b.self.ForEach(func(_ int, n node.Node) {
		n.RebuildInfo(cx, ib)
	})
}

// EventAll delivers the payload to every node in index order.
func (b *Base) EventAll(cx *tree.Context, ev tree.Event) {
	b.self.ForEach(func(_ int, n node.Node) {
		n.Event(cx, ev)
	})
}

// UpdateAll updates every node in index order. The base collection has
// no structural edits of its own, so obs is never notified here.
func (b *Base) UpdateAll(cx *tree.Context, obs Observer) {
	b.self.ForEach(func(_ int, n node.Node) {
		n.Update(cx)
	})
}

// RenderAll records every node in index order.
func (b *Base) RenderAll(cx *tree.Context, fb *frame.FrameBuilder) {
	b.self.ForEach(func(_ int, n node.Node) {
		n.Render(cx, fb)
	})
}

// RenderUpdateAll patches every node in index order.
func (b *Base) RenderUpdateAll(cx *tree.Context, ub *frame.UpdateBuilder) {
	b.self.ForEach(func(_ int, n node.Node) {
		n.RenderUpdate(cx, ub)
	})
}

// ParForEach visits every node of the list, concurrently when the phase
// is configured parallel. Visit order is unspecified on the parallel
// path; fn must be safe to call from multiple goroutines with disjoint
// indices. Panics in fn propagate to the caller.
func ParForEach(cx *tree.Context, phase tree.Phase, l List, fn VisitFunc) {
	n := l.Len()
	if n < 2 || !cx.Enabled(phase) {
		l.ForEach(fn)
		return
	}
	chunks := splitRange(n)
	var wg conc.WaitGroup
	for _, c := range chunks {
		lo, hi := c[0], c[1]
		wg.Go(func() {
			l.ForEachRange(lo, hi, fn)
		})
	}
	wg.Wait()
}

// FoldReduce folds every node of the list into an accumulator,
// concurrently when the phase is configured parallel: the index range is
// split into chunks, each chunk folded sequentially with fold, and chunk
// results combined in index order with reduce.
//
// reduce must be associative and identity must be a true identity for
// it; the engine is free to call identity more than once and to choose
// any grouping of chunks. Non-associative reduces give undefined
// results; this is a caller contract, not an engine-checked invariant.
func FoldReduce[T any](cx *tree.Context, phase tree.Phase, l List, identity func() T, fold func(acc T, index int, n node.Node) T, reduce func(a, b T) T) T {
	n := l.Len()
	if n < 2 || !cx.Enabled(phase) {
		acc := identity()
		l.ForEach(func(i int, nd node.Node) {
			acc = fold(acc, i, nd)
		})
		return acc
	}
	chunks := splitRange(n)
	results := make([]T, len(chunks))
	var wg conc.WaitGroup
	for ci, c := range chunks {
		lo, hi := c[0], c[1]
		wg.Go(func() {
			acc := identity()
			l.ForEachRange(lo, hi, func(i int, nd node.Node) {
				acc = fold(acc, i, nd)
			})
			results[ci] = acc
		})
	}
	wg.Wait()
	acc := results[0]
	for _, r := range results[1:] {
		acc = reduce(acc, r)
	}
	return acc
}

// splitRange cuts [0, n) into at most GOMAXPROCS contiguous chunks.
func splitRange(n int) [][2]int {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunks := make([][2]int, 0, workers)
	size := n / workers
	rem := n % workers
	lo := 0
	for w := 0; w < workers; w++ {
		hi := lo + size
		if w < rem {
			hi++
		}
		chunks = append(chunks, [2]int{lo, hi})
		lo = hi
	}
	return chunks
}
