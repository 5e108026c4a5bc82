package grasp

import (
	"math"

	"go.viam.com/grasp/spatialmath"
)

// sweepStop describes why an angular sweep stopped producing poses.
type sweepStop int

const (
	// sweepStopCollision means the next orientation would drive the reach-in segment through the box.
	sweepStopCollision sweepStop = iota
	// sweepStopCapExceeded means the iteration cap was reached before any collision.
	sweepStopCapExceeded
)

// sweep rotates base about its local Y axis in increments of the configured angular resolution,
// in the direction given by sign, collecting every orientation whose reach-in segment stays clear
// of the box. It stops at the first collision, or after ceil(pi/resolution)+1 iterations if no
// orientation ever collides. Hitting the cap is an anomaly, not an error; the collected poses are
// still valid.
func (g *Generator) sweep(base spatialmath.Pose, box *spatialmath.Box, sign float64) ([]spatialmath.Pose, sweepStop) {
	angleRes := g.geom.AngleResolution
	maxIterations := int(math.Ceil(math.Pi/angleRes)) + 1

	var poses []spatialmath.Pose
	pose := spatialmath.Compose(base, rotY(sign*angleRes))
	for i := 0; i < maxIterations; i++ {
		if g.reachInCollides(box, pose) {
			return poses, sweepStopCollision
		}
		poses = append(poses, pose)
		pose = spatialmath.Compose(pose, rotY(sign*angleRes))
	}
	return poses, sweepStopCapExceeded
}

// reachInCollides reports whether the segment from the pose's position to the fingertip point,
// finger-to-palm depth along the pose's local Z axis, passes through the box volume. A colliding
// reach-in segment means the pose would drive the gripper into the object.
func (g *Generator) reachInCollides(box *spatialmath.Box, pose spatialmath.Pose) bool {
	from := pose.Point()
	to := from.Add(pose.Orientation().RotationMatrix().Col(2).Mul(g.geom.FingerToPalmDepth))
	return box.IntersectsSegment(from, to)
}
