package frame

import "github.com/go-ripple/ripple/pkg/graphics"

// UpdateBuilder records the render-update pass: transform patches for
// keyed scopes of an already-built frame. It carries the same Fork/Join
// contract as FrameBuilder so the pass can run in parallel.
type UpdateBuilder struct {
	patches []transformPatch
}

type transformPatch struct {
	key       ScopeKey
	transform graphics.Transform
}

// NewUpdateBuilder returns an empty builder.
func NewUpdateBuilder() *UpdateBuilder {
	return &UpdateBuilder{}
}

// SetTransform records a new transform for a keyed scope.
func (b *UpdateBuilder) SetTransform(key ScopeKey, t graphics.Transform) {
	b.patches = append(b.patches, transformPatch{key: key, transform: t})
}

// Fork returns an independent builder for one branch of a parallel
// fan-out.
func (b *UpdateBuilder) Fork() *UpdateBuilder {
	return &UpdateBuilder{}
}

// Join folds a forked builder's patches back into this one.
func (b *UpdateBuilder) Join(sub *UpdateBuilder) {
	b.patches = append(b.patches, sub.patches...)
}

// Len returns the number of recorded patches.
func (b *UpdateBuilder) Len() int {
	return len(b.patches)
}

// ApplyTo rewrites the keyed transform scopes of the frame in place and
// returns how many patches matched a scope. Patches whose key does not
// exist in the frame are dropped; the scope may simply not have been
// recorded this frame.
func (b *UpdateBuilder) ApplyTo(f *Frame) int {
	applied := 0
	for _, p := range b.patches {
		if op, ok := f.scopes[p.key]; ok {
			op.transform = p.transform
			applied++
		}
	}
	return applied
}
