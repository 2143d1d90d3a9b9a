package panels

import (
	"github.com/go-ripple/ripple/pkg/children"
	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/graphics"
	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/tree"
)

// Group aggregates several child sources into one logical list.
// Indices run across the sources in order, so observers attached to
// the group see positions in the combined space.
type Group struct {
	id    tree.WidgetID
	multi *children.Multi

	// OnChange, when set, receives structural change notifications in
	// combined-index space during the update pass.
	OnChange children.Observer
}

// NewGroup creates a group over the given sources.
func NewGroup(sources ...children.List) *Group {
	return &Group{id: tree.NewWidgetID(), multi: children.NewMulti(sources...)}
}

// Identity returns the group's widget identity.
func (g *Group) Identity() tree.WidgetID {
	return g.id
}

// Len returns the combined child count.
func (g *Group) Len() int {
	return g.multi.Len()
}

// Visit visits the child at the given combined index.
func (g *Group) Visit(index int, fn func(n node.Node)) {
	g.multi.Visit(index, fn)
}

func (g *Group) scoped(cx *tree.Context) *tree.Context {
	return cx.WithWidget(g.id)
}

func (g *Group) Init(cx *tree.Context) {
	g.multi.InitAll(g.scoped(cx))
}

func (g *Group) Deinit(cx *tree.Context) {
	g.multi.DeinitAll(g.scoped(cx))
}

func (g *Group) RebuildInfo(cx *tree.Context, ib *frame.InfoBuilder) {
	scoped := g.scoped(cx)
	ib.Node(g.id, graphics.Rect{}, func(sub *frame.InfoBuilder) {
		g.multi.InfoAll(scoped, sub)
	})
}

func (g *Group) Event(cx *tree.Context, ev tree.Event) {
	g.multi.EventAll(g.scoped(cx), ev)
}

func (g *Group) Update(cx *tree.Context) {
	obs := g.OnChange
	if obs == nil {
		obs = children.NopObserver{}
	}
	g.multi.UpdateAll(g.scoped(cx), obs)
}

func (g *Group) Render(cx *tree.Context, fb *frame.FrameBuilder) {
	g.multi.RenderAll(g.scoped(cx), fb)
}

func (g *Group) RenderUpdate(cx *tree.Context, ub *frame.UpdateBuilder) {
	g.multi.RenderUpdateAll(g.scoped(cx), ub)
}
