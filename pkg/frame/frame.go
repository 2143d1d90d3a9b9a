// Package frame implements the output sinks of the tree's writing passes:
// the frame builder (render), the update builder (render-update) and the
// info builder (info rebuild). Each builder carries the same split/merge
// contract: Fork returns an independent sub-builder and Join folds it
// back in call order, which is what lets composite child lists fan a
// writing phase out across goroutines and still produce a deterministic
// result.
package frame

import (
	"sync/atomic"

	"github.com/go-ripple/ripple/pkg/graphics"
)

// ScopeKey identifies a keyed transform scope inside a frame. List is a
// per-panel namespace and Index the item index within it, so a panel can
// re-address the scope of item i across passes without rebuilding it.
type ScopeKey struct {
	List  uint64
	Index int
}

var scopeNamespaces atomic.Uint64

// NextScopeNamespace allocates a process-unique List namespace for
// scope keys.
func NextScopeNamespace() uint64 {
	return scopeNamespaces.Add(1)
}

// Canvas receives a replayed frame. Implementations provide the actual
// drawing; the engine only ever records structure.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	Transform(t graphics.Transform)
	Rect(r graphics.Rect, label string)
}

// Frame is an immutable recorded frame. Keyed transform scopes remain
// patchable through UpdateBuilder.ApplyTo without re-recording.
type Frame struct {
	ops    []frameOp
	scopes map[ScopeKey]*opTransform
}

// Replay walks the recorded operations onto the canvas.
func (f *Frame) Replay(c Canvas) {
	for _, op := range f.ops {
		op.replay(c)
	}
}

// ScopeTransform returns the current transform recorded for a keyed
// scope, and whether the key exists in this frame.
func (f *Frame) ScopeTransform(key ScopeKey) (graphics.Transform, bool) {
	op, ok := f.scopes[key]
	if !ok {
		return graphics.Transform{}, false
	}
	return op.transform, true
}

type frameOp interface {
	replay(c Canvas)
}

type opRect struct {
	rect  graphics.Rect
	label string
}

func (o *opRect) replay(c Canvas) {
	c.Rect(o.rect, o.label)
}

type opChild struct {
	offset graphics.Offset
	ops    []frameOp
}

func (o *opChild) replay(c Canvas) {
	c.Save()
	c.Translate(o.offset.X, o.offset.Y)
	for _, op := range o.ops {
		op.replay(c)
	}
	c.Restore()
}

type opTransform struct {
	key       ScopeKey
	transform graphics.Transform
	ops       []frameOp
}

func (o *opTransform) replay(c Canvas) {
	c.Save()
	c.Transform(o.transform)
	for _, op := range o.ops {
		op.replay(c)
	}
	c.Restore()
}
