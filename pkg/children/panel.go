package children

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/graphics"
	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/tree"
)

// ItemData is the per-item layout metadata a panel assigns to each
// child: where the child sits, and whether it defines its own reference
// frame. Reference-frame children render under a keyed transform scope
// that a later render-update pass can patch without re-recording.
type ItemData struct {
	Offset       graphics.Offset
	DefinesFrame bool
}

// ChangeMask reports which metadata fields changed since the previous
// commit. A set ChangedFrame bit forces a full re-render; a mask of
// only ChangedOffset allows the cheaper render-update path.
type ChangeMask uint8

const (
	// ChangedOffset is set when a child offset changed.
	ChangedOffset ChangeMask = 1 << iota
	// ChangedFrame is set when a define-reference-frame flag changed.
	ChangedFrame
)

// panelSlot is one metadata slot. Each slot is independently
// lock-guarded so parallel closures can mutate disjoint indices while
// the slot array stays addressable as one shared structure.
type panelSlot struct {
	mu   sync.Mutex
	cur  ItemData
	prev ItemData
	z    uint32
}

// commit computes the change mask against the previous pass and rolls
// the current values over. Caller holds the lock.
func (s *panelSlot) commit() ChangeMask {
	var mask ChangeMask
	if s.cur.Offset != s.prev.Offset {
		mask |= ChangedOffset
	}
	if s.cur.DefinesFrame != s.prev.DefinesFrame {
		mask |= ChangedFrame
	}
	s.prev = s.cur
	return mask
}

// Panel pairs an inner list with one metadata slot per item and a
// cached z-order permutation.
//
// The z map is rebuilt lazily and skipped entirely in the common case:
// one linear scan detects whether the z keys are already non-decreasing
// (or all default), and only when they are not does the panel sort a
// packed (z-key << 32 | index) table; the index in the low bits makes
// the numeric sort break z ties in original order for free.
type Panel struct {
	Base
	inner List
	slots []*panelSlot

	// z-order cache. zmap nil plus zNatural true means index order.
	zmap     []int
	zNatural bool
	zStale   atomic.Bool

	scope      uint64
	structural atomic.Bool
}

// NewPanel creates a panel list over inner with default metadata for
// every current item.
func NewPanel(inner List) *Panel {
	p := &Panel{
		inner: inner,
		slots: defaultSlots(inner.Len()),
		scope: frame.NextScopeNamespace(),
	}
	p.zStale.Store(true)
	p.SetSelf(p)
	return p
}

// NewPanelWith reconstructs a panel from separately-supplied list and
// metadata parts. The lengths must match; a mismatch is a programmer
// error and panics.
func NewPanelWith(inner List, items []ItemData) *Panel {
	if len(items) != inner.Len() {
		panic(fmt.Sprintf("children: panel metadata length %d does not match list length %d", len(items), inner.Len()))
	}
	p := NewPanel(inner)
	for i := range items {
		p.slots[i].cur = items[i]
	}
	return p
}

func defaultSlots(n int) []*panelSlot {
	slots := make([]*panelSlot, n)
	for i := range slots {
		slots[i] = &panelSlot{}
	}
	return slots
}

// lockSlot acquires a slot's lock, treating contention as re-entry from
// caller code: disjoint-index access never contends, so a busy lock is
// a programmer error, not a condition to wait out.
func (p *Panel) lockSlot(index int) *panelSlot {
	s := p.slots[index]
	if !s.mu.TryLock() {
		panic(fmt.Sprintf("children: panel item %d re-entered while locked", index))
	}
	return s
}

// WithItem grants mutable access to the metadata of one item. Safe to
// call from parallel closures with disjoint indices.
func (p *Panel) WithItem(index int, fn func(d *ItemData)) {
	s := p.lockSlot(index)
	defer s.mu.Unlock()
	fn(&s.cur)
}

// Item returns a snapshot of one item's metadata.
func (p *Panel) Item(index int) ItemData {
	s := p.lockSlot(index)
	defer s.mu.Unlock()
	return s.cur
}

// SetZIndex assigns the rendering z-key of one item. Items default to
// z 0, which renders in natural index order.
func (p *Panel) SetZIndex(index int, z uint32) {
	s := p.lockSlot(index)
	defer s.mu.Unlock()
	if s.z != z {
		s.z = z
		p.zStale.Store(true)
	}
}

// CommitData aggregates the per-item change masks for one layout pass.
// The panel widget uses the combined mask to decide between a full
// re-render and a cheap transform update.
func (p *Panel) CommitData() ChangeMask {
	var mask ChangeMask
	for i := range p.slots {
		s := p.lockSlot(i)
		mask |= s.commit()
		s.mu.Unlock()
	}
	return mask
}

// ScopeKey returns the binding key of one item's transform scope.
func (p *Panel) ScopeKey(index int) frame.ScopeKey {
	return frame.ScopeKey{List: p.scope, Index: index}
}

// ensureZ rebuilds the z map if stale.
func (p *Panel) ensureZ() {
	if !p.zStale.Swap(false) && (p.zNatural || len(p.zmap) == len(p.slots)) {
		return
	}
	n := len(p.slots)
	packed := make([]uint64, n)
	natural := true
	var prev uint32
	for i, s := range p.slots {
		z := s.z
		if i > 0 && z < prev {
			natural = false
		}
		prev = z
		packed[i] = uint64(z)<<32 | uint64(uint32(i))
	}
	if natural {
		p.zmap = nil
		p.zNatural = true
		return
	}
	slices.Sort(packed)
	m := make([]int, n)
	for k, v := range packed {
		m[k] = int(uint32(v))
	}
	p.zmap = m
	p.zNatural = false
}

// ZMap translates a z-order position to the original item index. With
// all-default z keys this is the identity and costs nothing.
func (p *Panel) ZMap(index int) int {
	p.ensureZ()
	if p.zNatural {
		return index
	}
	return p.zmap[index]
}

// ForEachZSorted visits every item in z order, lowest z first, ties in
// original order. fn receives the original item index.
func (p *Panel) ForEachZSorted(fn VisitFunc) {
	p.ensureZ()
	if p.zNatural {
		p.inner.ForEach(fn)
		return
	}
	for _, idx := range p.zmap {
		p.inner.Visit(idx, func(n node.Node) {
			fn(idx, n)
		})
	}
}

// Len returns the inner length.
func (p *Panel) Len() int {
	return p.inner.Len()
}

// Visit routes to the inner list.
func (p *Panel) Visit(index int, fn func(n node.Node)) {
	p.inner.Visit(index, fn)
}

// ForEach visits every node in index order.
func (p *Panel) ForEach(fn VisitFunc) {
	p.inner.ForEach(fn)
}

// ForEachRange visits the nodes in [lo, hi).
func (p *Panel) ForEachRange(lo, hi int, fn VisitFunc) {
	p.inner.ForEachRange(lo, hi, fn)
}

// Drain drains the inner list and drops all metadata.
func (p *Panel) Drain(buf *[]node.Node) {
	p.inner.Drain(buf)
	p.slots = nil
	p.zmap = nil
	p.zNatural = false
	p.zStale.Store(true)
}

// InitAll delegates to the inner list.
func (p *Panel) InitAll(cx *tree.Context) {
	p.inner.InitAll(cx)
}

// DeinitAll delegates to the inner list.
func (p *Panel) DeinitAll(cx *tree.Context) {
	p.inner.DeinitAll(cx)
}

// InfoAll delegates to the inner list.
func (p *Panel) InfoAll(cx *tree.Context, ib *frame.InfoBuilder) {
	p.inner.InfoAll(cx, ib)
}

// EventAll delegates to the inner list.
func (p *Panel) EventAll(cx *tree.Context, ev tree.Event) {
	p.inner.EventAll(cx, ev)
}

// UpdateAll updates the inner list through a bridging observer that
// keeps the metadata slots aligned with every structural change before
// forwarding it outward. If anything structural happened, the z map is
// invalidated and a re-render requested.
func (p *Panel) UpdateAll(cx *tree.Context, obs Observer) {
	p.structural.Store(false)
	p.inner.UpdateAll(cx, &panelBridge{panel: p, outer: obs})
	if p.structural.Load() {
		p.zStale.Store(true)
		cx.MarkNeedsRender()
	}
}

// RenderAll records every item in natural order, each under its own
// child scope: a keyed transform scope for reference-frame items, a
// plain translated scope otherwise. When the render phase is parallel
// the iteration folds forked frame builders back in index order.
func (p *Panel) RenderAll(cx *tree.Context, fb *frame.FrameBuilder) {
	if cx.Enabled(tree.PhaseRender) && p.inner.Len() > 1 {
		out := FoldReduce(cx, tree.PhaseRender, p.inner,
			func() *frame.FrameBuilder { return fb.Fork() },
			func(acc *frame.FrameBuilder, i int, n node.Node) *frame.FrameBuilder {
				p.renderItem(cx, acc, i, n)
				return acc
			},
			func(a, b *frame.FrameBuilder) *frame.FrameBuilder {
				a.Join(b)
				return a
			},
		)
		fb.Join(out)
		return
	}
	p.inner.ForEach(func(i int, n node.Node) {
		p.renderItem(cx, fb, i, n)
	})
}

// RenderZSorted records every item in z order. Unlike the natural-order
// fast path this is always sequential: the z permutation already fixes
// the scope order.
func (p *Panel) RenderZSorted(cx *tree.Context, fb *frame.FrameBuilder) {
	p.ForEachZSorted(func(i int, n node.Node) {
		p.renderItem(cx, fb, i, n)
	})
}

func (p *Panel) renderItem(cx *tree.Context, fb *frame.FrameBuilder, index int, n node.Node) {
	s := p.lockSlot(index)
	data := s.cur
	s.mu.Unlock()

	inner := cx.WithZCapture(func(z uint32) {
		p.SetZIndex(index, z)
	})
	if data.DefinesFrame {
		fb.TransformScope(p.ScopeKey(index), graphics.Translate(data.Offset.X, data.Offset.Y), func(sub *frame.FrameBuilder) {
			n.Render(inner, sub)
		})
		return
	}
	fb.Child(data.Offset, func(sub *frame.FrameBuilder) {
		n.Render(inner, sub)
	})
}

// RenderUpdateAll patches the transform of every reference-frame item
// through its binding key, then lets the inner list patch its own
// scopes. Offset-only changes never re-record the frame.
func (p *Panel) RenderUpdateAll(cx *tree.Context, ub *frame.UpdateBuilder) {
	for i := range p.slots {
		s := p.lockSlot(i)
		data := s.cur
		s.mu.Unlock()
		if data.DefinesFrame {
			ub.SetTransform(p.ScopeKey(i), graphics.Translate(data.Offset.X, data.Offset.Y))
		}
	}
	p.inner.RenderUpdateAll(cx, ub)
}

// panelBridge keeps the slot array aligned with structural changes
// before forwarding each notification to the outer observer, and
// records that something structural happened at all.
type panelBridge struct {
	panel *Panel
	outer Observer
}

// ResetOnly always reports false: the bridge itself needs precise
// indices to keep the slots in sync, whatever the outer observer needs.
func (b *panelBridge) ResetOnly() bool { return false }

func (b *panelBridge) Inserted(index int) {
	p := b.panel
	p.slots = append(p.slots, nil)
	copy(p.slots[index+1:], p.slots[index:])
	p.slots[index] = &panelSlot{}
	p.structural.Store(true)
	b.outer.Inserted(index)
}

func (b *panelBridge) Removed(index int) {
	p := b.panel
	copy(p.slots[index:], p.slots[index+1:])
	p.slots[len(p.slots)-1] = nil
	p.slots = p.slots[:len(p.slots)-1]
	p.structural.Store(true)
	b.outer.Removed(index)
}

func (b *panelBridge) Moved(from, to int) {
	p := b.panel
	s := p.slots[from]
	copy(p.slots[from:], p.slots[from+1:])
	p.slots[len(p.slots)-1] = nil
	p.slots = p.slots[:len(p.slots)-1]
	p.slots = append(p.slots, nil)
	copy(p.slots[to+1:], p.slots[to:])
	p.slots[to] = s
	p.structural.Store(true)
	b.outer.Moved(from, to)
}

func (b *panelBridge) Reset() {
	p := b.panel
	p.slots = defaultSlots(p.inner.Len())
	p.structural.Store(true)
	b.outer.Reset()
}
