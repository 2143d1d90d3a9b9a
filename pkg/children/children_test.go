package children

import (
	"fmt"

	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/graphics"
	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/tree"
)

// testNode is the concrete node used across the package tests. It
// counts lifecycle calls and records its name into the frame so tests
// can assert traversal order.
type testNode struct {
	name string
	id   tree.WidgetID
	key  int

	inits   int
	deinits int
	updates int
	events  int

	resortOnUpdate bool
	resortOnEvent  bool
	zOnRender      uint32
}

func newTestNode(name string, key int) *testNode {
	return &testNode{name: name, id: tree.NewWidgetID(), key: key}
}

func (t *testNode) Identity() tree.WidgetID { return t.id }

func (t *testNode) Init(cx *tree.Context)   { t.inits++ }
func (t *testNode) Deinit(cx *tree.Context) { t.deinits++ }

func (t *testNode) RebuildInfo(cx *tree.Context, b *frame.InfoBuilder) {
	b.Node(t.id, graphics.RectFromLTWH(0, 0, 1, 1), nil)
}

func (t *testNode) Event(cx *tree.Context, ev tree.Event) {
	t.events++
	if t.resortOnEvent {
		cx.RequestResort()
	}
}

func (t *testNode) Update(cx *tree.Context) {
	t.updates++
	if t.resortOnUpdate {
		cx.RequestResort()
	}
}

func (t *testNode) Render(cx *tree.Context, b *frame.FrameBuilder) {
	if t.zOnRender != 0 {
		cx.SetZIndex(t.zOnRender)
	}
	b.Rect(graphics.RectFromLTWH(0, 0, 1, 1), t.name)
}

func (t *testNode) RenderUpdate(cx *tree.Context, b *frame.UpdateBuilder) {}

// recCanvas records replayed frame structure as a flat trace.
type recCanvas struct {
	trace []string
}

func (c *recCanvas) Save()    { c.trace = append(c.trace, "save") }
func (c *recCanvas) Restore() { c.trace = append(c.trace, "restore") }

func (c *recCanvas) Translate(dx, dy float64) {
	c.trace = append(c.trace, fmt.Sprintf("translate(%g,%g)", dx, dy))
}

func (c *recCanvas) Transform(t graphics.Transform) {
	c.trace = append(c.trace, fmt.Sprintf("transform(%g,%g)", t.TX, t.TY))
}

func (c *recCanvas) Rect(r graphics.Rect, label string) {
	c.trace = append(c.trace, label)
}

// labels returns only the leaf labels of the trace, in replay order.
func (c *recCanvas) labels() []string {
	var out []string
	for _, t := range c.trace {
		switch t {
		case "save", "restore":
		default:
			if len(t) > 9 && (t[:9] == "translate" || t[:9] == "transform") {
				continue
			}
			out = append(out, t)
		}
	}
	return out
}

// renderLabels records the list and returns the leaf labels in frame
// order.
func renderLabels(cx *tree.Context, l List) []string {
	fb := frame.NewFrameBuilder()
	l.RenderAll(cx, fb)
	var c recCanvas
	fb.Build().Replay(&c)
	return c.labels()
}

// names walks the list and returns node names in index order.
func names(l List) []string {
	var out []string
	l.ForEach(func(_ int, n node.Node) {
		out = append(out, n.(*testNode).name)
	})
	return out
}

// recObserver records precise structural notifications in order.
type recObserver struct {
	events []string
}

func (o *recObserver) Inserted(index int) {
	o.events = append(o.events, fmt.Sprintf("inserted(%d)", index))
}

func (o *recObserver) Removed(index int) {
	o.events = append(o.events, fmt.Sprintf("removed(%d)", index))
}

func (o *recObserver) Moved(from, to int) {
	o.events = append(o.events, fmt.Sprintf("moved(%d,%d)", from, to))
}

func (o *recObserver) Reset() {
	o.events = append(o.events, "reset")
}

func (o *recObserver) ResetOnly() bool { return false }

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func seqContext() *tree.Context {
	return tree.NewContext(nil, nil)
}

func parContext(phases ...tree.Phase) *tree.Context {
	cfg := tree.NewParallelConfig(phases...)
	return tree.NewContext(cfg, nil)
}
