// Package spatialmath defines spatial mathematical operations.
package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// dualQuaternion defines functions to perform rigid transformations in 3D space.
type dualQuaternion struct {
	dualquat.Number
}

// newDualQuaternion returns a pointer to a new dualQuaternion object whose rotation is an identity
// quaternion. Since the real part of a dual quaternion should be a unit quaternion, not all zeroes,
// this should be used instead of &dualQuaternion{}.
func newDualQuaternion() *dualQuaternion {
	return &dualQuaternion{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// newDualQuaternionFromRotation returns a pointer to a new dualQuaternion object whose rotation
// quaternion is set from a provided Orientation.
func newDualQuaternionFromRotation(o Orientation) *dualQuaternion {
	return &dualQuaternion{dualquat.Number{
		Real: Normalize(o.Quaternion()),
		Dual: quat.Number{},
	}}
}

// newDualQuaternionFromPoint returns a pointer to a new dualQuaternion object with an identity
// rotation and the given point as its translation.
func newDualQuaternionFromPoint(pt r3.Vector) *dualQuaternion {
	q := newDualQuaternion()
	q.SetTranslation(pt)
	return q
}

// newDualQuaternionFromPose returns a dual quaternion representing the given Pose, cloning it if it
// already is one.
func newDualQuaternionFromPose(p Pose) *dualQuaternion {
	if q, ok := p.(*dualQuaternion); ok {
		return q.Clone()
	}
	q := newDualQuaternionFromRotation(p.Orientation())
	q.SetTranslation(p.Point())
	return q
}

// Clone returns a dualQuaternion object identical to this one.
func (q *dualQuaternion) Clone() *dualQuaternion {
	// No need for deep copies here, dual quaternions are primitives all the way down.
	return &dualQuaternion{q.Number}
}

// Point multiplies the dual quaternion by its own conjugate to give a dq whose real part is the
// identity quaternion and whose dual part is purely the real-world translation.
func (q *dualQuaternion) Point() r3.Vector {
	tQuat := dualquat.Mul(q.Number, dualquat.Conj(q.Number)).Dual
	return r3.Vector{X: tQuat.Imag, Y: tQuat.Jmag, Z: tQuat.Kmag}
}

// Orientation returns the rotation of the transform as an Orientation.
func (q *dualQuaternion) Orientation() Orientation {
	o := quaternion(q.Real)
	return &o
}

// SetTranslation correctly sets the translation quaternion against the rotation.
func (q *dualQuaternion) SetTranslation(pt r3.Vector) {
	q.Dual = quat.Number{Imag: pt.X / 2, Jmag: pt.Y / 2, Kmag: pt.Z / 2}
	q.rotate()
}

// rotate multiplies the dual part of the quaternion by the real part to give the correct rotation.
func (q *dualQuaternion) rotate() {
	q.Dual = quat.Mul(q.Dual, q.Real)
}

// Invert returns the dual quaternion representing the inverse transform.
func (q *dualQuaternion) Invert() *dualQuaternion {
	rInv := quat.Conj(q.Real)
	return &dualQuaternion{dualquat.Number{
		Real: rInv,
		Dual: quat.Scale(-1, quat.Mul(quat.Mul(rInv, q.Dual), rInv)),
	}}
}

// Transformation multiplies the dual quaternion by another, producing the composed transform.
func (q *dualQuaternion) Transformation(by dualquat.Number) dualquat.Number {
	result := dualquat.Mul(q.Number, by)
	// Rotation error accumulates across repeated composition; renormalize the real part.
	if norm := quat.Abs(result.Real); norm != 1 {
		result.Real = quat.Scale(1/norm, result.Real)
	}
	return result
}
