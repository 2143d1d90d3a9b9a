package panels

import (
	"github.com/go-ripple/ripple/pkg/children"
	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/graphics"
	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/tree"
)

// Layers is an overlay container: all children share the origin by
// default, each can be offset individually, and paint order follows
// the z-keys its children register during render. Ties keep child
// order, so a freshly raised layer still paints over its peers only
// when its z truly exceeds theirs.
type Layers struct {
	id    tree.WidgetID
	edit  *children.Edit
	items *children.Panel
}

// NewLayers creates an overlay with the given initial children.
func NewLayers(nodes ...node.Node) *Layers {
	l := &Layers{id: tree.NewWidgetID()}
	l.edit = children.NewEdit(nodes...)
	l.items = children.NewPanel(l.edit)
	return l
}

// Identity returns the overlay's widget identity.
func (l *Layers) Identity() tree.WidgetID {
	return l.id
}

// Handle returns an edit handle for the overlay's children.
func (l *Layers) Handle() children.Handle {
	return l.edit.Handle()
}

// Len returns the current child count.
func (l *Layers) Len() int {
	return l.items.Len()
}

// Raise assigns the layer at index i a z-key above the default band.
// Takes effect on the next render.
func (l *Layers) Raise(i int, z uint32) {
	l.items.SetZIndex(i, z)
}

// SetOffset positions the layer at index i. Offset-only moves are
// patchable through a render update.
func (l *Layers) SetOffset(i int, off graphics.Offset) {
	l.items.WithItem(i, func(d *children.ItemData) {
		d.Offset = off
		d.DefinesFrame = true
	})
}

// PaintOrder reports the child indices in back-to-front paint order.
func (l *Layers) PaintOrder() []int {
	order := make([]int, l.items.Len())
	for i := range order {
		order[i] = l.items.ZMap(i)
	}
	return order
}

func (l *Layers) scoped(cx *tree.Context) *tree.Context {
	return cx.WithWidget(l.id)
}

func (l *Layers) Init(cx *tree.Context) {
	l.items.InitAll(l.scoped(cx))
}

func (l *Layers) Deinit(cx *tree.Context) {
	l.items.DeinitAll(l.scoped(cx))
}

func (l *Layers) RebuildInfo(cx *tree.Context, ib *frame.InfoBuilder) {
	scoped := l.scoped(cx)
	ib.Node(l.id, graphics.Rect{}, func(sub *frame.InfoBuilder) {
		l.items.InfoAll(scoped, sub)
	})
}

func (l *Layers) Event(cx *tree.Context, ev tree.Event) {
	l.items.EventAll(l.scoped(cx), ev)
}

func (l *Layers) Update(cx *tree.Context) {
	l.items.UpdateAll(l.scoped(cx), children.NopObserver{})
	if l.items.CommitData()&children.ChangedFrame != 0 {
		cx.MarkNeedsRender()
	}
}

// Render paints the layers back to front by z-key.
func (l *Layers) Render(cx *tree.Context, fb *frame.FrameBuilder) {
	l.items.RenderZSorted(l.scoped(cx), fb)
}

func (l *Layers) RenderUpdate(cx *tree.Context, ub *frame.UpdateBuilder) {
	l.items.RenderUpdateAll(l.scoped(cx), ub)
}
