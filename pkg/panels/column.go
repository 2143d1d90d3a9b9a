package panels

import (
	"github.com/go-ripple/ripple/pkg/children"
	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/graphics"
	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/tree"
)

// Column stacks its children vertically at a fixed extent per item.
// The child buffer is editable through [Column.Handle]; layout runs
// during the update pass and the column decides between a full render
// and a transform-only render update from the committed change mask.
type Column struct {
	id         tree.WidgetID
	extent     float64
	edit       *children.Edit
	items      *children.Panel
	structural bool
}

// NewColumn creates a column with the given per-item extent and
// initial children.
func NewColumn(extent float64, nodes ...node.Node) *Column {
	c := &Column{id: tree.NewWidgetID(), extent: extent}
	c.edit = children.NewEdit(nodes...)
	c.items = children.NewPanel(c.edit)
	return c
}

// Identity returns the column's widget identity.
func (c *Column) Identity() tree.WidgetID {
	return c.id
}

// Handle returns an edit handle for the column's children. The handle
// is safe to copy and to call from any goroutine; edits land on the
// next update pass.
func (c *Column) Handle() children.Handle {
	return c.edit.Handle()
}

// Len returns the current child count.
func (c *Column) Len() int {
	return c.items.Len()
}

// SetExtent changes the per-item extent. The resulting moves are
// offset-only, so they flow out through a render update rather than a
// full render.
func (c *Column) SetExtent(extent float64) {
	c.extent = extent
}

func (c *Column) scoped(cx *tree.Context) *tree.Context {
	return cx.WithWidget(c.id)
}

func (c *Column) Init(cx *tree.Context) {
	c.items.InitAll(c.scoped(cx))
}

func (c *Column) Deinit(cx *tree.Context) {
	c.items.DeinitAll(c.scoped(cx))
}

func (c *Column) RebuildInfo(cx *tree.Context, ib *frame.InfoBuilder) {
	scoped := c.scoped(cx)
	bounds := graphics.RectFromLTWH(0, 0, 0, float64(c.items.Len())*c.extent)
	ib.Node(c.id, bounds, func(sub *frame.InfoBuilder) {
		c.items.InfoAll(scoped, sub)
	})
}

func (c *Column) Event(cx *tree.Context, ev tree.Event) {
	c.items.EventAll(c.scoped(cx), ev)
}

// Update applies pending edits, propagates the update pass, then lays
// the children out in index order. Structural changes and frame-shape
// changes escalate to a full render; pure offset changes do not, so
// the caller can patch transforms in place.
func (c *Column) Update(cx *tree.Context) {
	scoped := c.scoped(cx)
	c.items.UpdateAll(scoped, children.ResetObserver(func() {
		c.structural = true
	}))

	for i := 0; i < c.items.Len(); i++ {
		off := graphics.Offset{Y: float64(i) * c.extent}
		c.items.WithItem(i, func(d *children.ItemData) {
			d.Offset = off
			d.DefinesFrame = true
		})
	}

	mask := c.items.CommitData()
	if c.structural || mask&children.ChangedFrame != 0 {
		c.structural = false
		cx.MarkNeedsRender()
	}
}

func (c *Column) Render(cx *tree.Context, fb *frame.FrameBuilder) {
	c.items.RenderAll(c.scoped(cx), fb)
}

func (c *Column) RenderUpdate(cx *tree.Context, ub *frame.UpdateBuilder) {
	c.items.RenderUpdateAll(c.scoped(cx), ub)
}
