package grasp

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/grasp/spatialmath"
)

// ScoreGrasp assigns a grasp pose a quality in [0, 1] relative to an ideal reference pose and the
// grasped object's pose. The score is the unweighted mean of three components: how closely the
// pose's approach axis (local Z) matches the ideal approach axis, how closely its local Y axis
// matches the ideal's, and how close the palm sits to the object centroid relative to the usable
// finger length (1 with the object in the palm, 0 at or beyond one finger length away).
func ScoreGrasp(pose, ideal spatialmath.Pose, geom *GripperGeometry, objectPose spatialmath.Pose) float64 {
	poseRM := pose.Orientation().RotationMatrix()
	idealRM := ideal.Orientation().RotationMatrix()

	zScore := axisCloseness(poseRM.Col(2), idealRM.Col(2))
	yScore := axisCloseness(poseRM.Col(1), idealRM.Col(1))

	// Distance is measured from the object centroid, not the nearest surface point.
	fingerLength := geom.FingerDepth()
	distance := pose.Point().Sub(objectPose.Point()).Norm()
	depthScore := 0.
	if distance <= fingerLength {
		depthScore = (fingerLength - distance) / fingerLength
	}

	return (zScore + yScore + depthScore) / 3
}

// axisCloseness maps the angle between two unit vectors onto [0, 1]: 1 for parallel, 0 for
// antiparallel.
func axisCloseness(a, b r3.Vector) float64 {
	dot := a.Dot(b)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}
	return (math.Pi - math.Acos(dot)) / math.Pi
}
