package panels

import (
	"github.com/go-ripple/ripple/pkg/children"
	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/graphics"
	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/tree"
)

// Flow presents its children in comparator order while leaving the
// backing buffer in insertion order. Children that change their sort
// key request a resort during the update pass and the flow re-sorts
// lazily before the next ordered traversal. The sort is stable, so
// equal keys keep insertion order.
type Flow struct {
	id     tree.WidgetID
	buf    *children.Vec
	sorted *children.Sorted
	extent float64
}

// NewFlow creates a flow ordering its children with less. Items lay
// out horizontally at the given extent, in sorted order.
func NewFlow(extent float64, less func(a, b node.Node) bool, nodes ...node.Node) *Flow {
	f := &Flow{id: tree.NewWidgetID(), extent: extent}
	f.buf = children.NewVec(nodes...)
	f.sorted = children.NewSorted(f.buf, less)
	return f
}

// Identity returns the flow's widget identity.
func (f *Flow) Identity() tree.WidgetID {
	return f.id
}

// Len returns the current child count.
func (f *Flow) Len() int {
	return f.sorted.Len()
}

// VisitSorted visits the child at the given position of the sorted
// presentation.
func (f *Flow) VisitSorted(index int, fn func(n node.Node)) {
	f.sorted.Visit(index, fn)
}

// Resort marks the order stale after an out-of-band key change. Key
// changes made inside a child's Update are picked up automatically.
func (f *Flow) Resort() {
	f.sorted.Invalidate()
}

// TakeSorted drains the children in sorted order, leaving the flow
// empty. The drained nodes stay initialized.
func (f *Flow) TakeSorted() []node.Node {
	var buf []node.Node
	f.sorted.Drain(&buf)
	return buf
}

func (f *Flow) scoped(cx *tree.Context) *tree.Context {
	return cx.WithWidget(f.id)
}

func (f *Flow) Init(cx *tree.Context) {
	f.sorted.InitAll(f.scoped(cx))
}

func (f *Flow) Deinit(cx *tree.Context) {
	f.sorted.DeinitAll(f.scoped(cx))
}

func (f *Flow) RebuildInfo(cx *tree.Context, ib *frame.InfoBuilder) {
	scoped := f.scoped(cx)
	bounds := graphics.RectFromLTWH(0, 0, float64(f.sorted.Len())*f.extent, 0)
	ib.Node(f.id, bounds, func(sub *frame.InfoBuilder) {
		f.sorted.InfoAll(scoped, sub)
	})
}

func (f *Flow) Event(cx *tree.Context, ev tree.Event) {
	f.sorted.EventAll(f.scoped(cx), ev)
}

func (f *Flow) Update(cx *tree.Context) {
	f.sorted.UpdateAll(f.scoped(cx), children.NopObserver{})
}

// Render paints the children in sorted order, each shifted by its
// sorted position.
func (f *Flow) Render(cx *tree.Context, fb *frame.FrameBuilder) {
	scoped := f.scoped(cx)
	pos := 0
	f.sorted.ForEach(func(i int, n node.Node) {
		off := graphics.Offset{X: float64(pos) * f.extent}
		fb.Child(off, func(sub *frame.FrameBuilder) {
			n.Render(scoped, sub)
		})
		pos++
	})
}

func (f *Flow) RenderUpdate(cx *tree.Context, ub *frame.UpdateBuilder) {
	f.sorted.RenderUpdateAll(f.scoped(cx), ub)
}
