// Package node declares the contract between the child-collection engine
// and the UI elements it drives. A Node is opaque to the engine: the
// engine routes the seven lifecycle operations to it by index and never
// looks inside.
package node

import (
	"github.com/go-ripple/ripple/pkg/frame"
	"github.com/go-ripple/ripple/pkg/tree"
)

// Node is a retained UI element owned by exactly one slot of exactly one
// child list at a time. Ownership transfers on insert and remove; a Node
// must never be shared between lists.
//
// A Node handles its own internal failures: none of these operations
// returns an error, and the engine only ever propagates structural shape.
type Node interface {
	// Init attaches the node to the tree.
	Init(cx *tree.Context)
	// Deinit detaches the node from the tree.
	Deinit(cx *tree.Context)
	// RebuildInfo records the node's subtree into the info builder.
	RebuildInfo(cx *tree.Context, b *frame.InfoBuilder)
	// Event delivers an input payload.
	Event(cx *tree.Context, ev tree.Event)
	// Update runs one state-update step.
	Update(cx *tree.Context)
	// Render records the node's subtree into the frame builder.
	Render(cx *tree.Context, b *frame.FrameBuilder)
	// RenderUpdate patches previously recorded transforms.
	RenderUpdate(cx *tree.Context, b *frame.UpdateBuilder)
}

// Identified is implemented by nodes that expose a stable identity.
// Identity-addressed edit operations (remove, move-by-identity) only
// match nodes implementing it; others are skipped.
type Identified interface {
	Identity() tree.WidgetID
}
