package graphics

// Transform is the affine transform a panel applies to a child scope.
// The engine only ever produces translation and uniform scale; rotation
// belongs to the drawing layer above this one.
type Transform struct {
	SX float64
	SY float64
	TX float64
	TY float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{SX: 1, SY: 1}
}

// Translate returns a pure translation transform.
func Translate(dx, dy float64) Transform {
	return Transform{SX: 1, SY: 1, TX: dx, TY: dy}
}

// Then composes two transforms: the result applies other first, then t.
func (t Transform) Then(other Transform) Transform {
	return Transform{
		SX: t.SX * other.SX,
		SY: t.SY * other.SY,
		TX: t.SX*other.TX + t.TX,
		TY: t.SY*other.TY + t.TY,
	}
}

// Apply maps a point through the transform.
func (t Transform) Apply(o Offset) Offset {
	return Offset{X: o.X*t.SX + t.TX, Y: o.Y*t.SY + t.TY}
}

// IsIdentity reports whether the transform leaves points unchanged.
func (t Transform) IsIdentity() bool {
	return floatEqual(t.SX, 1) && floatEqual(t.SY, 1) &&
		floatEqual(t.TX, 0) && floatEqual(t.TY, 0)
}
