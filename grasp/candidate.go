package grasp

import (
	"go.viam.com/grasp/spatialmath"
)

// Family identifies the structural family of the enumeration step that produced a candidate.
type Family int

const (
	// FamilyCorner is a pose from the radial fan swept around a box corner.
	FamilyCorner Family = iota
	// FamilyFace is a pose from a linear row along a box face.
	FamilyFace
	// FamilyDepth is a corner or face pose translated to a deeper finger insertion.
	FamilyDepth
	// FamilySweep is a pose produced by the collision-bounded angular sweep.
	FamilySweep
	// FamilyFlipped is a 180 degree about-Z duplicate of another pose.
	FamilyFlipped
)

// String returns the name of the family.
func (f Family) String() string {
	switch f {
	case FamilyCorner:
		return "corner"
	case FamilyFace:
		return "face"
	case FamilyDepth:
		return "depth"
	case FamilySweep:
		return "sweep"
	case FamilyFlipped:
		return "flipped"
	default:
		return "unknown"
	}
}

// Candidate is a single scored gripper pose: the gripper's frame at the moment of grasp plus a
// quality in [0, 1]. Candidates are immutable once generated; they are plain values owned by the
// caller's output slice.
type Candidate struct {
	// ID identifies the candidate within its generation request.
	ID string
	// Pose is the gripper frame, with the approach direction along local Z.
	Pose spatialmath.Pose
	// Family records which enumeration step produced the pose.
	Family Family
	// Score is the quality assigned by the grasp scorer.
	Score float64
}
