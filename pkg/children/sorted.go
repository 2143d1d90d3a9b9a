package children

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/tree"
)

// Sorted is a read-only re-ordering view over an inner list, built from
// a caller-supplied comparator and invalidated lazily.
//
// The view maintains a sort map, a permutation of the inner indices,
// rebuilt only when the inner length changed, when a pass that can
// change membership ran, or when invalidation was requested. The sort
// is stable: nodes the comparator considers equal keep their original
// relative order.
//
// While any tree operation runs on a Sorted list, the pass context
// carries a scoped resort flag, so a node arbitrarily deep inside the
// inner list can call Context.RequestResort to tell this ancestor that
// its sort key changed without holding a reference to the list
// itself. The flag is read back immediately after the traversal
// returns.
type Sorted struct {
	Base
	inner List
	less  func(a, b node.Node) bool

	// order is the sort map; nil means stale.
	order  []int
	resort atomic.Bool
}

// NewSorted creates a sorted view over inner. less reports whether a
// should order before b.
func NewSorted(inner List, less func(a, b node.Node) bool) *Sorted {
	s := &Sorted{inner: inner, less: less}
	s.SetSelf(s)
	return s
}

// Invalidate marks the sort map stale; the next positional operation
// rebuilds it.
func (s *Sorted) Invalidate() {
	s.order = nil
}

// nodeAt reads the node at an inner index. Access is index-based and
// one node at a time, so the comparator never needs two simultaneous
// references into the inner storage.
func (s *Sorted) nodeAt(index int) node.Node {
	var out node.Node
	s.inner.Visit(index, func(n node.Node) {
		out = n
	})
	return out
}

// ensure rebuilds the sort map if it is stale or the length changed.
func (s *Sorted) ensure() {
	n := s.inner.Len()
	if s.order != nil && len(s.order) == n {
		return
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return s.less(s.nodeAt(order[i]), s.nodeAt(order[j]))
	})
	s.order = order
}

// Len returns the inner length.
func (s *Sorted) Len() int {
	return s.inner.Len()
}

// Visit invokes fn on the node at the sorted index. Out of bounds
// panics.
func (s *Sorted) Visit(index int, fn func(n node.Node)) {
	s.ensure()
	if index < 0 || index >= len(s.order) {
		panic(fmt.Sprintf("children: visit index %d out of range (len %d)", index, len(s.order)))
	}
	s.inner.Visit(s.order[index], fn)
}

// ForEach visits every node in sorted order.
func (s *Sorted) ForEach(fn VisitFunc) {
	s.ensure()
	for k, idx := range s.order {
		fn(k, s.nodeAt(idx))
	}
}

// ForEachRange visits the sorted positions in [lo, hi).
func (s *Sorted) ForEachRange(lo, hi int, fn VisitFunc) {
	s.ensure()
	for k := lo; k < hi; k++ {
		fn(k, s.nodeAt(s.order[k]))
	}
}

// Drain drains the inner list and permutes the drained segment in place
// so the caller receives the nodes in sorted order. The permutation is
// applied by cycle-following: O(n) swaps, no allocation beyond the sort
// map itself, which is consumed and invalidated.
func (s *Sorted) Drain(buf *[]node.Node) {
	s.ensure()
	start := len(*buf)
	s.inner.Drain(buf)
	seg := (*buf)[start:]
	perm := s.order
	s.order = nil
	for first := range perm {
		if perm[first] < 0 {
			continue
		}
		saved := seg[first]
		i := first
		for {
			j := perm[i]
			perm[i] = -1 - j
			if j == first {
				seg[i] = saved
				break
			}
			seg[i] = seg[j]
			i = j
		}
	}
}

// scoped installs the resort flag on the context for the duration of an
// inner traversal. The returned settle function reads the flag back and
// invalidates the map if any descendant requested a resort.
func (s *Sorted) scoped(cx *tree.Context) (*tree.Context, func()) {
	inner := cx.WithResort(&s.resort)
	return inner, func() {
		if s.resort.Swap(false) {
			s.Invalidate()
		}
	}
}

// InitAll delegates to the inner list in inner order. Membership may
// have changed, so the map is invalidated afterward.
func (s *Sorted) InitAll(cx *tree.Context) {
	inner, settle := s.scoped(cx)
	s.inner.InitAll(inner)
	settle()
	s.Invalidate()
}

// DeinitAll delegates to the inner list and invalidates the map.
func (s *Sorted) DeinitAll(cx *tree.Context) {
	inner, settle := s.scoped(cx)
	s.inner.DeinitAll(inner)
	settle()
	s.Invalidate()
}

// UpdateAll delegates to the inner list, so structural edits apply there
// with indices reported in inner order, and invalidates the map.
func (s *Sorted) UpdateAll(cx *tree.Context, obs Observer) {
	inner, settle := s.scoped(cx)
	s.inner.UpdateAll(inner, obs)
	settle()
	s.Invalidate()
}

// InfoAll rebuilds info in sorted order under the resort scope.
func (s *Sorted) InfoAll(cx *tree.Context, ib *frame.InfoBuilder) {
	inner, settle := s.scoped(cx)
	s.Base.InfoAll(inner, ib)
	settle()
}

// EventAll delivers the payload in sorted order under the resort scope.
func (s *Sorted) EventAll(cx *tree.Context, ev tree.Event) {
	inner, settle := s.scoped(cx)
	s.Base.EventAll(inner, ev)
	settle()
}

// RenderAll records in sorted order under the resort scope.
func (s *Sorted) RenderAll(cx *tree.Context, fb *frame.FrameBuilder) {
	inner, settle := s.scoped(cx)
	s.Base.RenderAll(inner, fb)
	settle()
}

// RenderUpdateAll patches in sorted order under the resort scope.
func (s *Sorted) RenderUpdateAll(cx *tree.Context, ub *frame.UpdateBuilder) {
	inner, settle := s.scoped(cx)
	s.Base.RenderUpdateAll(inner, ub)
	settle()
}
