// Package panels provides the multi-child containers built on the
// child-collection engine: a fixed-extent column, a z-ordered overlay,
// a comparator-sorted flow and a multi-source group. They are the
// consumers the engine in pkg/children exists for.
package panels

import (
	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/graphics"
	"github.com/go-ripple/ripple/pkg/tree"
)

// Box is a leaf node: a labelled rectangle. It is the simplest thing a
// panel can hold and the standard child in demos and tests.
type Box struct {
	id    tree.WidgetID
	label string
	size  graphics.Size
	z     uint32
	order int
}

// NewBox creates a box with the given label and size.
func NewBox(label string, size graphics.Size) *Box {
	return &Box{id: tree.NewWidgetID(), label: label, size: size}
}

// Identity returns the box's stable identity, making it addressable by
// identity-based edit operations.
func (b *Box) Identity() tree.WidgetID {
	return b.id
}

// Label returns the box label.
func (b *Box) Label() string {
	return b.label
}

// SetZ sets the rendering z-key registered with the enclosing panel on
// the next render.
func (b *Box) SetZ(z uint32) {
	b.z = z
}

// SetOrder sets the sort key used by order-comparing containers like
// [Flow].
func (b *Box) SetOrder(order int) {
	b.order = order
}

// Order returns the sort key.
func (b *Box) Order() int {
	return b.order
}

func (b *Box) Init(cx *tree.Context)   {}
func (b *Box) Deinit(cx *tree.Context) {}

func (b *Box) RebuildInfo(cx *tree.Context, ib *frame.InfoBuilder) {
	ib.Node(b.id, graphics.RectFromLTWH(0, 0, b.size.Width, b.size.Height), nil)
}

func (b *Box) Event(cx *tree.Context, ev tree.Event) {}

func (b *Box) Update(cx *tree.Context) {}

func (b *Box) Render(cx *tree.Context, fb *frame.FrameBuilder) {
	if b.z != 0 {
		cx.SetZIndex(b.z)
	}
	fb.Rect(graphics.RectFromLTWH(0, 0, b.size.Width, b.size.Height), b.label)
}

func (b *Box) RenderUpdate(cx *tree.Context, ub *frame.UpdateBuilder) {}
