package grasp

import (
	"time"

	"github.com/golang/geo/r3"

	"go.viam.com/grasp/spatialmath"
)

// PoseMsg is the JSON wire form of a pose, position plus unit quaternion.
type PoseMsg struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
	QW float64 `json:"qw"`
	QX float64 `json:"qx"`
	QY float64 `json:"qy"`
	QZ float64 `json:"qz"`
}

// NewPoseMsg converts a pose to its wire form.
func NewPoseMsg(p spatialmath.Pose) PoseMsg {
	pt := p.Point()
	q := p.Orientation().Quaternion()
	return PoseMsg{
		X:  pt.X,
		Y:  pt.Y,
		Z:  pt.Z,
		QW: q.Real,
		QX: q.Imag,
		QY: q.Jmag,
		QZ: q.Kmag,
	}
}

// GripperTranslation describes a straight-line gripper motion in the grasp
// frame, used for the approach before closing and the retreat after.
type GripperTranslation struct {
	Direction       r3.Vector `json:"direction"`
	DesiredDistance float64   `json:"desired_distance"`
	MinDistance     float64   `json:"min_distance"`
}

// Named gripper postures referenced by planner grasps.
const (
	PostureOpen   = "open"
	PostureClosed = "closed"
)

// PlannerGrasp is a fully specified grasp as a motion planner consumes it:
// the grasp pose, its quality, the approach and retreat motions, and the
// gripper postures before and during the grasp.
type PlannerGrasp struct {
	ID               string             `json:"id"`
	FrameID          string             `json:"frame_id"`
	CreatedAt        time.Time          `json:"created_at"`
	Pose             PoseMsg            `json:"pose"`
	Quality          float64            `json:"quality"`
	PreGraspApproach GripperTranslation `json:"pre_grasp_approach"`
	PostGraspRetreat GripperTranslation `json:"post_grasp_retreat"`
	PreGraspPosture  string             `json:"pre_grasp_posture"`
	GraspPosture     string             `json:"grasp_posture"`
}

// NewPlannerGrasp packages a candidate for a motion planner. The approach
// drives along the grasp frame's +Z, the retreat backs out along -Z, both
// for the full finger-to-palm depth.
func NewPlannerGrasp(c Candidate, geom *GripperGeometry, frameID string) PlannerGrasp {
	return PlannerGrasp{
		ID:        c.ID,
		FrameID:   frameID,
		CreatedAt: time.Now().UTC(),
		Pose:      NewPoseMsg(c.Pose),
		Quality:   c.Score,
		PreGraspApproach: GripperTranslation{
			Direction:       r3.Vector{Z: 1},
			DesiredDistance: geom.FingerToPalmDepth,
			MinDistance:     geom.FingerToPalmDepth,
		},
		PostGraspRetreat: GripperTranslation{
			Direction:       r3.Vector{Z: -1},
			DesiredDistance: geom.FingerToPalmDepth,
			MinDistance:     geom.FingerToPalmDepth,
		},
		PreGraspPosture: PostureOpen,
		GraspPosture:    PostureClosed,
	}
}

// PreGraspPose is the standoff pose reached before the approach motion,
// backed off from the grasp pose along its local -Z by distance.
func PreGraspPose(c Candidate, distance float64) spatialmath.Pose {
	dir := c.Pose.Orientation().RotationMatrix().Col(2)
	return spatialmath.NewPose(c.Pose.Point().Add(dir.Mul(-distance)), c.Pose.Orientation())
}
