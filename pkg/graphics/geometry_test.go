package graphics

import "testing"

func TestRectFromLTWH(t *testing.T) {
	r := RectFromLTWH(10, 20, 30, 40)
	if r.Right != 40 || r.Bottom != 60 {
		t.Fatalf("rect = %+v", r)
	}
	if r.Width() != 30 || r.Height() != 40 {
		t.Fatalf("size = %gx%g", r.Width(), r.Height())
	}
}

func TestRectShift(t *testing.T) {
	r := RectFromLTWH(0, 0, 10, 10).Shift(Offset{X: 5, Y: -5})
	if r.Left != 5 || r.Top != -5 || r.Right != 15 || r.Bottom != 5 {
		t.Fatalf("shifted = %+v", r)
	}
}

func TestTransformApply(t *testing.T) {
	tr := Transform{SX: 2, SY: 2, TX: 10, TY: 0}
	p := tr.Apply(Offset{X: 3, Y: 4})
	if p.X != 16 || p.Y != 8 {
		t.Fatalf("applied = %+v", p)
	}
}

func TestTransformThen(t *testing.T) {
	outer := Translate(10, 10)
	inner := Translate(5, 0)
	composed := outer.Then(inner)
	p := composed.Apply(Offset{})
	if p.X != 15 || p.Y != 10 {
		t.Fatalf("composed origin = %+v", p)
	}

	scaled := Transform{SX: 2, SY: 3}.Then(Translate(1, 1))
	p = scaled.Apply(Offset{})
	if p.X != 2 || p.Y != 3 {
		t.Fatalf("scaled translation = %+v", p)
	}
}

func TestTransformIsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Fatalf("Identity() not identity")
	}
	if Translate(1, 0).IsIdentity() {
		t.Fatalf("translation reported identity")
	}
}
