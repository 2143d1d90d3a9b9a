package frame

import "github.com/go-ripple/ripple/pkg/graphics"

// FrameBuilder records the render pass into a frame.
//
// The zero value is ready to use. A FrameBuilder is not safe for
// concurrent use; parallel producers each record into their own Fork and
// the owner folds the forks back with Join in sub-list order.
type FrameBuilder struct {
	ops []frameOp
}

// NewFrameBuilder returns an empty builder.
func NewFrameBuilder() *FrameBuilder {
	return &FrameBuilder{}
}

// Rect records a leaf drawing operation.
func (b *FrameBuilder) Rect(r graphics.Rect, label string) {
	b.ops = append(b.ops, &opRect{rect: r, label: label})
}

// Child records a plain translated child scope. Everything the record
// function emits is nested under the translation.
func (b *FrameBuilder) Child(offset graphics.Offset, record func(*FrameBuilder)) {
	sub := FrameBuilder{}
	record(&sub)
	b.ops = append(b.ops, &opChild{offset: offset, ops: sub.ops})
}

// TransformScope records a keyed transform scope. A later render-update
// pass can patch the transform value through the key without the scope's
// contents being re-recorded.
func (b *FrameBuilder) TransformScope(key ScopeKey, t graphics.Transform, record func(*FrameBuilder)) {
	sub := FrameBuilder{}
	record(&sub)
	b.ops = append(b.ops, &opTransform{key: key, transform: t, ops: sub.ops})
}

// Fork returns an independent builder for one branch of a parallel
// render fan-out.
func (b *FrameBuilder) Fork() *FrameBuilder {
	return &FrameBuilder{}
}

// Join folds a forked builder's recording back into this one. Joins must
// happen in sub-list order to keep the frame deterministic.
func (b *FrameBuilder) Join(sub *FrameBuilder) {
	b.ops = append(b.ops, sub.ops...)
}

// Len returns the number of top-level recorded operations.
func (b *FrameBuilder) Len() int {
	return len(b.ops)
}

// Build freezes the recording into a frame and indexes its keyed scopes.
func (b *FrameBuilder) Build() *Frame {
	f := &Frame{
		ops:    b.ops,
		scopes: make(map[ScopeKey]*opTransform),
	}
	indexScopes(f.ops, f.scopes)
	b.ops = nil
	return f
}

func indexScopes(ops []frameOp, into map[ScopeKey]*opTransform) {
	for _, op := range ops {
		switch o := op.(type) {
		case *opTransform:
			into[o.key] = o
			indexScopes(o.ops, into)
		case *opChild:
			indexScopes(o.ops, into)
		}
	}
}
