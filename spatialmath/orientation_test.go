package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestR4AAConversions(t *testing.T) {
	aa := &R4AA{Theta: math.Pi / 2, RZ: 1}

	q := aa.Quaternion()
	test.That(t, q.Real, test.ShouldAlmostEqual, math.Cos(math.Pi/4), 1e-9)
	test.That(t, q.Kmag, test.ShouldAlmostEqual, math.Sin(math.Pi/4), 1e-9)

	rm := aa.RotationMatrix()
	test.That(t, R3VectorAlmostEqual(rm.Col(0), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(rm.Col(1), r3.Vector{X: -1}, 1e-9), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(rm.Col(2), r3.Vector{Z: 1}, 1e-9), test.ShouldBeTrue)

	ea := aa.EulerAngles()
	test.That(t, ea.Yaw, test.ShouldAlmostEqual, math.Pi/2, 1e-9)
	test.That(t, ea.Roll, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, ea.Pitch, test.ShouldAlmostEqual, 0, 1e-9)
}

func TestR4AANormalize(t *testing.T) {
	aa := &R4AA{Theta: 1, RX: 3, RY: 0, RZ: 4}
	aa.Normalize()
	test.That(t, aa.RX, test.ShouldAlmostEqual, 0.6, 1e-9)
	test.That(t, aa.RZ, test.ShouldAlmostEqual, 0.8, 1e-9)
}

func TestR3R4RoundTrip(t *testing.T) {
	for _, aa := range []*R4AA{
		{Theta: math.Pi / 2, RZ: 1},
		{Theta: 0.9, RX: 0.6, RY: 0, RZ: 0.8},
		{Theta: 2.2, RY: -1},
	} {
		back := R3ToR4(aa.ToR3())
		test.That(t, back.Theta, test.ShouldAlmostEqual, aa.Theta, 1e-9)
		test.That(t, back.RX, test.ShouldAlmostEqual, aa.RX, 1e-9)
		test.That(t, back.RY, test.ShouldAlmostEqual, aa.RY, 1e-9)
		test.That(t, back.RZ, test.ShouldAlmostEqual, aa.RZ, 1e-9)
	}

	// the zero vector carries no axis; conversion falls back to the identity
	identity := R3ToR4(r3.Vector{})
	test.That(t, identity.Theta, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, QuaternionAlmostEqual(identity.Quaternion(), quat.Number{Real: 1}, 1e-9), test.ShouldBeTrue)
}

func TestNewEulerAngles(t *testing.T) {
	ea := NewEulerAngles()
	test.That(t, ea.Roll, test.ShouldEqual, 0.0)
	test.That(t, ea.Pitch, test.ShouldEqual, 0.0)
	test.That(t, ea.Yaw, test.ShouldEqual, 0.0)
	test.That(t, OrientationAlmostEqual(ea, NewZeroOrientation()), test.ShouldBeTrue)
}

func TestEulerRoundTrip(t *testing.T) {
	for _, ea := range []*EulerAngles{
		{Roll: 0.1, Pitch: -0.3, Yaw: 1.2},
		{Roll: -math.Pi / 2, Pitch: 0.4, Yaw: 0},
		{Roll: 0, Pitch: 0, Yaw: 0},
	} {
		back := QuatToEulerAngles(ea.Quaternion())
		test.That(t, back.Roll, test.ShouldAlmostEqual, ea.Roll, 1e-9)
		test.That(t, back.Pitch, test.ShouldAlmostEqual, ea.Pitch, 1e-9)
		test.That(t, back.Yaw, test.ShouldAlmostEqual, ea.Yaw, 1e-9)
	}
}

func TestRotationMatrixRoundTrip(t *testing.T) {
	for _, o := range []Orientation{
		&R4AA{Theta: 0.7, RX: 1},
		&R4AA{Theta: 2.9, RX: 0.6, RY: 0, RZ: 0.8},
		&EulerAngles{Roll: 0.2, Pitch: 1.1, Yaw: -0.4},
	} {
		rm := o.RotationMatrix()
		test.That(t, QuaternionAlmostEqual(rm.Quaternion(), o.Quaternion(), 1e-8), test.ShouldBeTrue)
	}
}

func TestNewRotationMatrixValidation(t *testing.T) {
	_, err := NewRotationMatrix([]float64{1, 0, 0})
	test.That(t, err, test.ShouldNotBeNil)

	rm, err := NewRotationMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, QuaternionAlmostEqual(rm.Quaternion(), quat.Number{Real: 1}, 1e-9), test.ShouldBeTrue)
}

func TestRotationMatrixFromAxes(t *testing.T) {
	// a quarter turn about Z expressed by its basis images
	rm := NewRotationMatrixFromAxes(r3.Vector{Y: 1}, r3.Vector{X: -1}, r3.Vector{Z: 1})
	want := (&R4AA{Theta: math.Pi / 2, RZ: 1}).Quaternion()
	test.That(t, QuaternionAlmostEqual(rm.Quaternion(), want, 1e-9), test.ShouldBeTrue)

	// Mul agrees with column picture
	test.That(t, R3VectorAlmostEqual(rm.Mul(r3.Vector{X: 1}), rm.Col(0), 1e-9), test.ShouldBeTrue)

	// rows are the transpose of the columns
	test.That(t, R3VectorAlmostEqual(rm.Row(0), r3.Vector{Y: -1}, 1e-9), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(rm.Row(1), r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(rm.Row(2), r3.Vector{Z: 1}, 1e-9), test.ShouldBeTrue)
	for i := 0; i < 3; i++ {
		row := rm.Row(i)
		test.That(t, row.X, test.ShouldAlmostEqual, rm.At(i, 0), 1e-9)
		test.That(t, row.Y, test.ShouldAlmostEqual, rm.At(i, 1), 1e-9)
		test.That(t, row.Z, test.ShouldAlmostEqual, rm.At(i, 2), 1e-9)
	}
}

func TestQuaternionDoubleCover(t *testing.T) {
	q := (&R4AA{Theta: 1.3, RY: 1}).Quaternion()
	negated := quat.Scale(-1, q)
	test.That(t, QuaternionAlmostEqual(q, negated, 1e-9), test.ShouldBeTrue)
}

func TestOrientationBetweenInverse(t *testing.T) {
	o1 := &R4AA{Theta: 0.9, RX: 1}
	o2 := &EulerAngles{Roll: -0.2, Pitch: 0.5, Yaw: 1.0}

	between := OrientationBetween(o1, o2)
	recomposed := Compose(NewPoseFromOrientation(o1), NewPoseFromOrientation(between))
	test.That(t, OrientationAlmostEqual(recomposed.Orientation(), o2), test.ShouldBeTrue)

	inv := OrientationInverse(o1)
	identity := Compose(NewPoseFromOrientation(o1), NewPoseFromOrientation(inv))
	test.That(t, OrientationAlmostEqual(identity.Orientation(), NewZeroOrientation()), test.ShouldBeTrue)
}
