package children

import (
	"fmt"

	"github.com/sourcegraph/conc"

	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/tree"
)

// Multi composes any number of lists end to end, generalizing [Chain]
// for panels that aggregate several child sources.
//
// Index routing linear-scans the sub-list lengths: O(number of
// sub-lists), not O(items). Panels are expected to have few sub-lists
// with many items each.
type Multi struct {
	Base
	lists []List
}

// NewMulti creates a composite over the given lists in order.
func NewMulti(lists ...List) *Multi {
	m := &Multi{lists: lists}
	m.SetSelf(m)
	return m
}

// Len returns the combined length.
func (m *Multi) Len() int {
	total := 0
	for _, l := range m.lists {
		total += l.Len()
	}
	return total
}

// Visit routes to the owning sub-list. Out of bounds of the combined
// length panics.
func (m *Multi) Visit(index int, fn func(n node.Node)) {
	rest := index
	for _, l := range m.lists {
		n := l.Len()
		if rest < n {
			l.Visit(rest, fn)
			return
		}
		rest -= n
	}
	panic(fmt.Sprintf("children: visit index %d out of range (len %d)", index, m.Len()))
}

// ForEach visits every sub-list in order with a running index offset.
func (m *Multi) ForEach(fn VisitFunc) {
	off := 0
	for _, l := range m.lists {
		base := off
		l.ForEach(func(i int, n node.Node) {
			fn(base+i, n)
		})
		off += l.Len()
	}
}

// ForEachRange visits the nodes in [lo, hi), clipping the range per
// sub-list.
func (m *Multi) ForEachRange(lo, hi int, fn VisitFunc) {
	off := 0
	for _, l := range m.lists {
		n := l.Len()
		start, end := lo-off, hi-off
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		if start < end {
			base := off
			l.ForEachRange(start, end, func(i int, nd node.Node) {
				fn(base+i, nd)
			})
		}
		off += n
		if off >= hi {
			return
		}
	}
}

// Drain drains every sub-list in order.
func (m *Multi) Drain(buf *[]node.Node) {
	for _, l := range m.lists {
		l.Drain(buf)
	}
}

// fanOut runs fn for every sub-list, concurrently when parallel.
func (m *Multi) fanOut(parallel bool, fn func(l List)) {
	if !parallel || len(m.lists) < 2 {
		for _, l := range m.lists {
			fn(l)
		}
		return
	}
	var wg conc.WaitGroup
	for _, l := range m.lists {
		wg.Go(func() { fn(l) })
	}
	wg.Wait()
}

// InitAll attaches every sub-list, fanning out when configured.
func (m *Multi) InitAll(cx *tree.Context) {
	m.fanOut(cx.Enabled(tree.PhaseInit), func(l List) {
		l.InitAll(cx)
	})
}

// DeinitAll detaches every sub-list, fanning out when configured.
func (m *Multi) DeinitAll(cx *tree.Context) {
	m.fanOut(cx.Enabled(tree.PhaseDeinit), func(l List) {
		l.DeinitAll(cx)
	})
}

// EventAll delivers the payload to every sub-list, fanning out when
// configured.
func (m *Multi) EventAll(cx *tree.Context, ev tree.Event) {
	m.fanOut(cx.Enabled(tree.PhaseEvent), func(l List) {
		l.EventAll(cx, ev)
	})
}

// InfoAll rebuilds every sub-list. The parallel path gives each
// sub-list a forked builder and joins them back in sub-list order.
func (m *Multi) InfoAll(cx *tree.Context, ib *frame.InfoBuilder) {
	if !cx.Enabled(tree.PhaseInfo) || len(m.lists) < 2 {
		for _, l := range m.lists {
			l.InfoAll(cx, ib)
		}
		return
	}
	forks := make([]*frame.InfoBuilder, len(m.lists))
	var wg conc.WaitGroup
	for i, l := range m.lists {
		forks[i] = ib.Fork()
		sub := forks[i]
		wg.Go(func() { l.InfoAll(cx, sub) })
	}
	wg.Wait()
	for _, sub := range forks {
		ib.Join(sub)
	}
}

// RenderAll records every sub-list, forking the frame builder per
// sub-list on the parallel path and joining in order.
func (m *Multi) RenderAll(cx *tree.Context, fb *frame.FrameBuilder) {
	if !cx.Enabled(tree.PhaseRender) || len(m.lists) < 2 {
		for _, l := range m.lists {
			l.RenderAll(cx, fb)
		}
		return
	}
	forks := make([]*frame.FrameBuilder, len(m.lists))
	var wg conc.WaitGroup
	for i, l := range m.lists {
		forks[i] = fb.Fork()
		sub := forks[i]
		wg.Go(func() { l.RenderAll(cx, sub) })
	}
	wg.Wait()
	for _, sub := range forks {
		fb.Join(sub)
	}
}

// RenderUpdateAll patches every sub-list, forking the update builder
// per sub-list on the parallel path and joining in order.
func (m *Multi) RenderUpdateAll(cx *tree.Context, ub *frame.UpdateBuilder) {
	if !cx.Enabled(tree.PhaseRenderUpdate) || len(m.lists) < 2 {
		for _, l := range m.lists {
			l.RenderUpdateAll(cx, ub)
		}
		return
	}
	forks := make([]*frame.UpdateBuilder, len(m.lists))
	var wg conc.WaitGroup
	for i, l := range m.lists {
		forks[i] = ub.Fork()
		sub := forks[i]
		wg.Go(func() { l.RenderUpdateAll(cx, sub) })
	}
	wg.Wait()
	for _, sub := range forks {
		ub.Join(sub)
	}
}

// UpdateAll updates every sub-list. With a reset-only observer the
// sub-lists run concurrently against private change recorders and
// obs.Reset fires at most once; otherwise they run sequentially with a
// running index offset, each offset read after the previous sub-list's
// own edits have settled.
func (m *Multi) UpdateAll(cx *tree.Context, obs Observer) {
	if obs.ResetOnly() && cx.Enabled(tree.PhaseUpdate) && len(m.lists) > 1 {
		recorders := make([]changeRecorder, len(m.lists))
		var wg conc.WaitGroup
		for i, l := range m.lists {
			rec := &recorders[i]
			wg.Go(func() { l.UpdateAll(cx, rec) })
		}
		wg.Wait()
		for i := range recorders {
			if recorders[i].changed {
				obs.Reset()
				return
			}
		}
		return
	}
	off := 0
	for _, l := range m.lists {
		l.UpdateAll(cx, &offsetObserver{inner: obs, offset: off})
		off += l.Len()
	}
}
