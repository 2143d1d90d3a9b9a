package frame

import (
	"github.com/go-ripple/ripple/pkg/graphics"
	"github.com/go-ripple/ripple/pkg/tree"
)

// InfoNode is one entry of the rebuilt info tree: a widget identity, its
// bounds, and the info of its descendants.
type InfoNode struct {
	Widget   tree.WidgetID
	Bounds   graphics.Rect
	Children []InfoNode
}

// InfoBuilder records the info-rebuild pass. Like the other builders it
// supports Fork/Join so composite lists can rebuild sibling subtrees in
// parallel; forked recordings merge in join order.
type InfoBuilder struct {
	nodes []InfoNode
}

// NewInfoBuilder returns an empty builder.
func NewInfoBuilder() *InfoBuilder {
	return &InfoBuilder{}
}

// Node records one info entry. The children function, if non-nil,
// records the entry's subtree into a nested builder.
func (b *InfoBuilder) Node(id tree.WidgetID, bounds graphics.Rect, children func(*InfoBuilder)) {
	sub := InfoBuilder{}
	if children != nil {
		children(&sub)
	}
	b.nodes = append(b.nodes, InfoNode{Widget: id, Bounds: bounds, Children: sub.nodes})
}

// Fork returns an independent builder for one branch of a parallel
// fan-out.
func (b *InfoBuilder) Fork() *InfoBuilder {
	return &InfoBuilder{}
}

// Join folds a forked builder's entries back into this one.
func (b *InfoBuilder) Join(sub *InfoBuilder) {
	b.nodes = append(b.nodes, sub.nodes...)
}

// Len returns the number of top-level recorded entries.
func (b *InfoBuilder) Len() int {
	return len(b.nodes)
}

// Build returns the recorded info tree.
func (b *InfoBuilder) Build() []InfoNode {
	nodes := b.nodes
	b.nodes = nil
	return nodes
}
