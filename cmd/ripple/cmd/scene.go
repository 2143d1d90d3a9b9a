package cmd

import (
	"github.com/go-ripple/ripple/cmd/ripple/internal/config"
	"github.com/go-ripple/ripple/pkg/graphics"
	"github.com/go-ripple/ripple/pkg/node"
	"github.com/go-ripple/ripple/pkg/panels"
	"github.com/go-ripple/ripple/pkg/tree"
)

// demoScene builds the scene both demo and inspect operate on: an
// overlay holding a column of editable items next to a sorted flow,
// with one layer raised above the rest.
func demoScene() *panels.Layers {
	col := panels.NewColumn(30,
		demoBox("alpha"), demoBox("beta"), demoBox("gamma"))

	flow := panels.NewFlow(60, byBoxOrder,
		orderedDemoBox("third", 3),
		orderedDemoBox("first", 1),
		orderedDemoBox("second", 2))

	badge := demoBox("badge")
	badge.SetZ(10)

	layers := panels.NewLayers(col, flow, badge)
	return layers
}

func demoBox(label string) *panels.Box {
	return panels.NewBox(label, graphics.Size{Width: 50, Height: 24})
}

func orderedDemoBox(label string, order int) *panels.Box {
	b := demoBox(label)
	b.SetOrder(order)
	return b
}

func byBoxOrder(a, b node.Node) bool {
	return a.(*panels.Box).Order() < b.(*panels.Box).Order()
}

// sceneFlags loads the per-phase parallelism configuration from the
// enclosing project, falling back to fully sequential outside one.
func sceneFlags() tree.ParallelFlags {
	root, err := config.FindProjectRoot()
	if err != nil {
		return tree.ParallelConfig{}
	}
	resolved, err := config.Resolve(root)
	if err != nil {
		return tree.ParallelConfig{}
	}
	return resolved.Parallel
}
