package tree

import "sync/atomic"

// Context is the pass context threaded through every tree operation.
//
// A Context is immutable: the With* methods derive a new value and leave
// the receiver untouched, so one Context can safely be shared across the
// branches of a fork-join without locking. State that genuinely spans a
// pass (pending-update flags, the scoped resort flag) lives behind
// pointers to atomics, giving the dynamic-scoping behavior of "set for
// the duration of a call, read immediately after" without any global.
type Context struct {
	widget   WidgetID
	parent   WidgetID
	flags    ParallelFlags
	sched    Scheduler
	pending  *pendingFlags
	resort   *atomic.Bool
	zCapture func(z uint32)
}

type pendingFlags struct {
	render atomic.Bool
	info   atomic.Bool
}

// NewContext creates a root context for one tree pass.
// Both flags and sched may be nil: nil flags keep every phase sequential,
// a nil scheduler turns wake requests into no-ops.
func NewContext(flags ParallelFlags, sched Scheduler) *Context {
	return &Context{
		flags:   flags,
		sched:   sched,
		pending: &pendingFlags{},
	}
}

// Widget returns the identity of the widget currently being processed,
// or NoWidget outside any widget scope.
func (cx *Context) Widget() WidgetID {
	return cx.widget
}

// Parent returns the identity of the enclosing widget.
func (cx *Context) Parent() WidgetID {
	return cx.parent
}

// Scheduler returns the update scheduler for this pass. May be nil.
func (cx *Context) Scheduler() Scheduler {
	return cx.sched
}

// Enabled reports whether the phase may run in parallel. Composites call
// this fresh at every level rather than caching the answer.
func (cx *Context) Enabled(phase Phase) bool {
	return cx.flags != nil && cx.flags.Enabled(phase)
}

// WithWidget derives a context scoped to the given widget. The previous
// widget becomes the parent identity.
func (cx *Context) WithWidget(id WidgetID) *Context {
	child := *cx
	child.parent = cx.widget
	child.widget = id
	return &child
}

// WithResort derives a context whose RequestResort calls land in the
// given flag. A sorting list installs this around its inner traversal
// and reads the flag back as soon as the traversal returns.
func (cx *Context) WithResort(flag *atomic.Bool) *Context {
	child := *cx
	child.resort = flag
	return &child
}

// RequestResort tells the nearest enclosing sorting list that this
// subtree's sort key changed. Outside any sorting scope it is a no-op.
func (cx *Context) RequestResort() {
	if cx.resort != nil {
		cx.resort.Store(true)
	}
}

// WithZCapture derives a context whose SetZIndex calls are routed to fn.
// A panel list installs this per item while the item renders.
func (cx *Context) WithZCapture(fn func(z uint32)) *Context {
	child := *cx
	child.zCapture = fn
	return &child
}

// SetZIndex registers the rendering z-key of the current child with the
// nearest enclosing panel list. Outside any panel scope it is a no-op.
func (cx *Context) SetZIndex(z uint32) {
	if cx.zCapture != nil {
		cx.zCapture(z)
	}
}

// MarkNeedsRender records that something structural happened and the
// owning widget must re-record its frame.
func (cx *Context) MarkNeedsRender() {
	cx.pending.render.Store(true)
}

// MarkNeedsInfo records that the info tree must be rebuilt.
func (cx *Context) MarkNeedsInfo() {
	cx.pending.info.Store(true)
}

// TakeNeedsRender reports and clears the pending-render flag.
func (cx *Context) TakeNeedsRender() bool {
	return cx.pending.render.Swap(false)
}

// TakeNeedsInfo reports and clears the pending-info flag.
func (cx *Context) TakeNeedsInfo() bool {
	return cx.pending.info.Swap(false)
}
