package children

import (
	"fmt"

	"github.com/sourcegraph/conc"

	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/tree"
)

// Chain composes two lists end to end. Indices below the first list's
// length route to it; the rest route to the second list shifted down,
// so each side keeps its own behavior while the pair presents one
// combined index space.
type Chain struct {
	Base
	a List
	b List
}

// NewChain creates a chain over a followed by b.
func NewChain(a, b List) *Chain {
	c := &Chain{a: a, b: b}
	c.SetSelf(c)
	return c
}

// Len returns the combined length.
func (c *Chain) Len() int {
	return c.a.Len() + c.b.Len()
}

// Visit routes to the owning side. Out of bounds of the combined length
// panics.
func (c *Chain) Visit(index int, fn func(n node.Node)) {
	la := c.a.Len()
	if index < la {
		c.a.Visit(index, fn)
		return
	}
	rest := index - la
	if rest >= c.b.Len() {
		panic(fmt.Sprintf("children: visit index %d out of range (len %d)", index, c.Len()))
	}
	c.b.Visit(rest, fn)
}

// ForEach visits the first list, then the second with indices offset by
// the first list's length.
func (c *Chain) ForEach(fn VisitFunc) {
	c.a.ForEach(fn)
	la := c.a.Len()
	c.b.ForEach(func(i int, n node.Node) {
		fn(i+la, n)
	})
}

// ForEachRange visits the nodes in [lo, hi), clipping the range to each
// side.
func (c *Chain) ForEachRange(lo, hi int, fn VisitFunc) {
	la := c.a.Len()
	if lo < la {
		end := hi
		if end > la {
			end = la
		}
		c.a.ForEachRange(lo, end, fn)
	}
	if hi > la {
		start := lo - la
		if start < 0 {
			start = 0
		}
		c.b.ForEachRange(start, hi-la, func(i int, n node.Node) {
			fn(i+la, n)
		})
	}
}

// Drain drains both sides in order.
func (c *Chain) Drain(buf *[]node.Node) {
	c.a.Drain(buf)
	c.b.Drain(buf)
}

// InitAll attaches both sides, concurrently when the init phase is
// configured parallel.
func (c *Chain) InitAll(cx *tree.Context) {
	if cx.Enabled(tree.PhaseInit) {
		var wg conc.WaitGroup
		wg.Go(func() { c.a.InitAll(cx) })
		wg.Go(func() { c.b.InitAll(cx) })
		wg.Wait()
		return
	}
	c.a.InitAll(cx)
	c.b.InitAll(cx)
}

// DeinitAll detaches both sides, concurrently when configured.
func (c *Chain) DeinitAll(cx *tree.Context) {
	if cx.Enabled(tree.PhaseDeinit) {
		var wg conc.WaitGroup
		wg.Go(func() { c.a.DeinitAll(cx) })
		wg.Go(func() { c.b.DeinitAll(cx) })
		wg.Wait()
		return
	}
	c.a.DeinitAll(cx)
	c.b.DeinitAll(cx)
}

// InfoAll rebuilds both sides. The parallel path records each side into
// a forked builder and joins them back in order, so the combined info
// tree is identical to the sequential result.
func (c *Chain) InfoAll(cx *tree.Context, ib *frame.InfoBuilder) {
	if cx.Enabled(tree.PhaseInfo) {
		ia, ibb := ib.Fork(), ib.Fork()
		var wg conc.WaitGroup
		wg.Go(func() { c.a.InfoAll(cx, ia) })
		wg.Go(func() { c.b.InfoAll(cx, ibb) })
		wg.Wait()
		ib.Join(ia)
		ib.Join(ibb)
		return
	}
	c.a.InfoAll(cx, ib)
	c.b.InfoAll(cx, ib)
}

// EventAll delivers the payload to both sides, concurrently when
// configured.
func (c *Chain) EventAll(cx *tree.Context, ev tree.Event) {
	if cx.Enabled(tree.PhaseEvent) {
		var wg conc.WaitGroup
		wg.Go(func() { c.a.EventAll(cx, ev) })
		wg.Go(func() { c.b.EventAll(cx, ev) })
		wg.Wait()
		return
	}
	c.a.EventAll(cx, ev)
	c.b.EventAll(cx, ev)
}

// UpdateAll updates both sides.
//
// With a reset-only observer the sides run concurrently against private
// change recorders and obs.Reset fires at most once afterward: precise
// indices are irrelevant, so no offset bookkeeping is needed. Otherwise
// the sides run sequentially: the first list's own edits can change
// its length, so the second list's observer offset is read only after
// the first side finished.
func (c *Chain) UpdateAll(cx *tree.Context, obs Observer) {
	if obs.ResetOnly() && cx.Enabled(tree.PhaseUpdate) {
		var ra, rb changeRecorder
		var wg conc.WaitGroup
		wg.Go(func() { c.a.UpdateAll(cx, &ra) })
		wg.Go(func() { c.b.UpdateAll(cx, &rb) })
		wg.Wait()
		if ra.changed || rb.changed {
			obs.Reset()
		}
		return
	}
	c.a.UpdateAll(cx, obs)
	c.b.UpdateAll(cx, &offsetObserver{inner: obs, offset: c.a.Len()})
}

// RenderAll records both sides, forking the frame builder on the
// parallel path and joining in order.
func (c *Chain) RenderAll(cx *tree.Context, fb *frame.FrameBuilder) {
	if cx.Enabled(tree.PhaseRender) {
		fa, fbb := fb.Fork(), fb.Fork()
		var wg conc.WaitGroup
		wg.Go(func() { c.a.RenderAll(cx, fa) })
		wg.Go(func() { c.b.RenderAll(cx, fbb) })
		wg.Wait()
		fb.Join(fa)
		fb.Join(fbb)
		return
	}
	c.a.RenderAll(cx, fb)
	c.b.RenderAll(cx, fb)
}

// RenderUpdateAll patches both sides, forking the update builder on the
// parallel path and joining in order.
func (c *Chain) RenderUpdateAll(cx *tree.Context, ub *frame.UpdateBuilder) {
	if cx.Enabled(tree.PhaseRenderUpdate) {
		ua, ubb := ub.Fork(), ub.Fork()
		var wg conc.WaitGroup
		wg.Go(func() { c.a.RenderUpdateAll(cx, ua) })
		wg.Go(func() { c.b.RenderUpdateAll(cx, ubb) })
		wg.Wait()
		ub.Join(ua)
		ub.Join(ubb)
		return
	}
	c.a.RenderUpdateAll(cx, ub)
	c.b.RenderUpdateAll(cx, ub)
}
