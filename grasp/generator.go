// Package grasp generates and scores antipodal grasp candidates for a
// two-finger parallel gripper over boxes and triangle meshes.
package grasp

import (
	"fmt"
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/grasp/spatialmath"
)

// Axis identifies one of the three local axes of an oriented box.
type Axis int

// The three grasp axes. Grasps about an axis close the gripper jaws across
// the box's cross-section perpendicular to that axis.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// palmStandoff keeps enumerated palm positions a hair off the box surface so
// that surface-grazing reach-in segments are not counted as collisions.
const palmStandoff = 0.001

// stagedPose is a grasp pose awaiting scoring, tagged with the enumeration
// family that produced it.
type stagedPose struct {
	pose   spatialmath.Pose
	family Family
}

// Generator enumerates grasp candidates for a configured gripper. It is immutable after
// construction; concurrent Generate calls are safe and each owns its output slice.
type Generator struct {
	geom   *GripperGeometry
	ideal  spatialmath.Pose
	logger golog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithIdealGraspPose overrides the ideal grasp orientation used for scoring.
func WithIdealGraspPose(ideal spatialmath.Pose) GeneratorOption {
	return func(g *Generator) {
		g.ideal = ideal
	}
}

// DefaultIdealGraspPose is the scoring reference orientation, a top-down grasp
// with the palm facing straight down.
func DefaultIdealGraspPose() spatialmath.Pose {
	return spatialmath.Compose(rotY(math.Pi/2), rotZ(math.Pi/2))
}

// NewGenerator validates the gripper geometry and returns a Generator.
func NewGenerator(geom *GripperGeometry, logger golog.Logger, opts ...GeneratorOption) (*Generator, error) {
	if geom == nil {
		return nil, errors.New("gripper geometry cannot be nil")
	}
	if err := geom.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid gripper geometry")
	}
	g := &Generator{
		geom:   geom,
		ideal:  DefaultIdealGraspPose(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// GenerateGrasps enumerates scored grasp candidates for the box over every
// axis whose cross-section fits within maxGraspSize. The candidates of each
// eligible axis are concatenated in X, Y, Z order.
func (g *Generator) GenerateGrasps(box *spatialmath.Box, maxGraspSize float64) ([]Candidate, error) {
	dims := box.Dims()
	var candidates []Candidate
	seq := 0
	for _, ax := range []struct {
		axis   Axis
		extent float64
	}{
		{AxisX, dims.X},
		{AxisY, dims.Y},
		{AxisZ, dims.Z},
	} {
		if ax.extent > maxGraspSize {
			g.logger.Debugf("skipping axis %s: extent %.4f exceeds max grasp size %.4f", ax.axis, ax.extent, maxGraspSize)
			continue
		}
		axisCandidates, err := g.axisGrasps(box, ax.axis, &seq)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, axisCandidates...)
	}
	if len(candidates) == 0 {
		g.logger.Warn("generated no grasp candidates")
	} else {
		g.logger.Infof("generated %d grasp candidates", len(candidates))
	}
	return candidates, nil
}

// GenerateGraspsFromMesh fits an oriented bounding box to the mesh and
// enumerates grasps for it, returning both the candidates and the fitted box.
func (g *Generator) GenerateGraspsFromMesh(mesh *spatialmath.Mesh, maxGraspSize float64) ([]Candidate, *spatialmath.Box, error) {
	box, err := spatialmath.BoundingBoxFromMesh(mesh)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to get bounding box from mesh")
	}
	candidates, err := g.GenerateGrasps(box, maxGraspSize)
	if err != nil {
		return nil, nil, err
	}
	return candidates, box, nil
}

// GenerateAxisGrasps enumerates scored grasp candidates about a single axis of
// the box, without the max-grasp-size gate.
func (g *Generator) GenerateAxisGrasps(box *spatialmath.Box, axis Axis) ([]Candidate, error) {
	seq := 0
	return g.axisGrasps(box, axis, &seq)
}

// axisGrasps runs the full enumeration pipeline for one box axis: corner
// fans, face rows, depth steps, angular sweeps, then bidirectional
// duplication, scoring every surviving pose.
func (g *Generator) axisGrasps(box *spatialmath.Box, axis Axis, seq *int) ([]Candidate, error) {
	dims := box.Dims()
	rm := box.Pose().Orientation().RotationMatrix()

	var lengthAlongA, lengthAlongB float64
	var aDir, bDir r3.Vector
	var align spatialmath.Pose
	switch axis {
	case AxisX:
		lengthAlongA, lengthAlongB = dims.Y, dims.Z
		aDir, bDir = rm.Col(1), rm.Col(2)
		align = alignRotation(-math.Pi/2, 0, -math.Pi/2)
	case AxisY:
		lengthAlongA, lengthAlongB = dims.X, dims.Z
		aDir, bDir = rm.Col(0), rm.Col(2)
		align = alignRotation(0, math.Pi/2, math.Pi)
	case AxisZ:
		lengthAlongA, lengthAlongB = dims.X, dims.Y
		aDir, bDir = rm.Col(0), rm.Col(1)
		align = alignRotation(math.Pi/2, math.Pi/2, 0)
	default:
		return nil, NewAxisNotDefinedError(axis)
	}
	aDir = aDir.Normalize()
	bDir = bDir.Normalize()

	base := spatialmath.Compose(box.Pose(), align)
	jaw := g.geom.GripperWidth

	var staged []stagedPose

	// Corner fans. Each corner of the cross-section gets a fan of poses
	// rotated about the local Y axis toward the adjacent faces.
	numRadial := int(math.Ceil((math.Pi / 2) / g.geom.AngleResolution))
	if numRadial < 1 {
		numRadial = 1
	}
	deltaAngle := (math.Pi / 2) / float64(numRadial+1)
	halfA := 0.5 * (lengthAlongA + palmStandoff)
	halfB := 0.5 * (lengthAlongB + palmStandoff)
	corners := []cornerFan{
		{offset: aDir.Mul(-halfA).Add(bDir.Mul(-halfB)), startAngle: 0},
		{offset: aDir.Mul(-halfA).Add(bDir.Mul(halfB)), startAngle: -math.Pi / 2},
		{offset: aDir.Mul(halfA).Add(bDir.Mul(halfB)), startAngle: math.Pi},
		{offset: aDir.Mul(halfA).Add(bDir.Mul(-halfB)), startAngle: math.Pi / 2},
	}
	for _, corner := range corners {
		cornerBase := offsetPose(base, corner.offset)
		pose := spatialmath.Compose(cornerBase, rotY(corner.startAngle))
		for i := 0; i < numRadial; i++ {
			pose = spatialmath.Compose(pose, rotY(deltaAngle))
			staged = append(staged, stagedPose{pose, FamilyCorner})
		}
	}
	numCornerGrasps := len(staged)

	// Face rows. Evenly spaced palm positions along each of the four faces of
	// the cross-section, oriented to close across the face.
	numAlongA := int(math.Floor((lengthAlongA-jaw)/g.geom.GraspResolution)) + 1
	if numAlongA <= 0 {
		numAlongA = 3
	}
	numAlongB := int(math.Floor((lengthAlongB-jaw)/g.geom.GraspResolution)) + 1
	if numAlongB <= 0 {
		numAlongB = 3
	}
	deltaA := 0.0
	if numAlongA > 1 {
		deltaA = (lengthAlongA - jaw) / float64(numAlongA-1)
	}
	deltaB := 0.0
	if numAlongB > 1 {
		deltaB = (lengthAlongB - jaw) / float64(numAlongB-1)
	}

	aTranslation := aDir.Mul(-0.5 * (lengthAlongA + palmStandoff)).
		Add(bDir.Mul(-0.5*(lengthAlongB-jaw) - deltaB))
	bTranslation := aDir.Mul(-0.5*(lengthAlongA-jaw) - deltaA).
		Add(bDir.Mul(-0.5 * (lengthAlongB + palmStandoff)))

	rows := []faceRow{
		{start: aTranslation, step: bDir.Mul(deltaB), rotation: 0, count: numAlongB},
		{start: bTranslation.Mul(-1), step: aDir.Mul(-deltaA), rotation: -math.Pi / 2, count: numAlongA},
		{start: aTranslation.Mul(-1), step: bDir.Mul(-deltaB), rotation: math.Pi, count: numAlongB},
		{start: bTranslation, step: aDir.Mul(deltaA), rotation: math.Pi / 2, count: numAlongA},
	}
	for _, row := range rows {
		rowBase := spatialmath.Compose(base, rotY(row.rotation))
		offset := row.start
		for i := 0; i < row.count; i++ {
			offset = offset.Add(row.step)
			staged = append(staged, stagedPose{offsetPose(rowBase, offset), FamilyFace})
		}
	}

	// Depth steps. Every corner and face pose is replicated at evenly spaced
	// reach-in depths, stepping the palm back out along its local Z axis.
	fingerDepth := g.geom.FingerDepth()
	numDepth := int(math.Ceil(fingerDepth / g.geom.DepthResolution))
	if numDepth < 1 {
		numDepth = 1
	}
	deltaDepth := fingerDepth / float64(numDepth)
	preDepthLen := len(staged)
	for i := 0; i < preDepthLen; i++ {
		sp := staged[i]
		dir := sp.pose.Orientation().RotationMatrix().Col(2)
		for d := 1; d <= numDepth; d++ {
			shifted := offsetPose(sp.pose, dir.Mul(-deltaDepth*float64(d)))
			staged = append(staged, stagedPose{shifted, FamilyDepth})
		}
	}

	// Angular sweeps. Every face and depth pose seeds two sweeps, one per
	// rotation direction, collecting orientations until the reach-in segment
	// collides.
	preSweepLen := len(staged)
	for i := numCornerGrasps; i < preSweepLen; i++ {
		for _, sign := range []float64{1, -1} {
			poses, stop := g.sweep(staged[i].pose, box, sign)
			if stop == sweepStopCapExceeded {
				g.logger.Warnf("angular sweep about %s axis never collided; keeping %d poses", axis, len(poses))
			}
			for _, pose := range poses {
				staged = append(staged, stagedPose{pose, FamilySweep})
			}
		}
	}

	// Bidirectional duplication. Every pose gets a twin rotated a half turn
	// about its local Z so the jaws approach from the opposite side.
	preFlipLen := len(staged)
	for i := 0; i < preFlipLen; i++ {
		flipped := spatialmath.Compose(staged[i].pose, rotZ(math.Pi))
		staged = append(staged, stagedPose{flipped, FamilyFlipped})
	}

	candidates := make([]Candidate, 0, len(staged))
	for _, sp := range staged {
		candidates = append(candidates, Candidate{
			ID:     fmt.Sprintf("grasp-%d", *seq),
			Pose:   sp.pose,
			Family: sp.family,
			Score:  ScoreGrasp(sp.pose, g.ideal, g.geom, box.Pose()),
		})
		*seq++
	}
	return candidates, nil
}

// cornerFan seeds a fan of rotated poses at one corner of a cross-section.
type cornerFan struct {
	offset     r3.Vector
	startAngle float64
}

// faceRow seeds a row of translated poses along one face of a cross-section.
type faceRow struct {
	start    r3.Vector
	step     r3.Vector
	rotation float64
	count    int
}

func rotX(theta float64) spatialmath.Pose {
	return spatialmath.NewPoseFromOrientation(&spatialmath.R4AA{Theta: theta, RX: 1})
}

func rotY(theta float64) spatialmath.Pose {
	return spatialmath.NewPoseFromOrientation(&spatialmath.R4AA{Theta: theta, RY: 1})
}

func rotZ(theta float64) spatialmath.Pose {
	return spatialmath.NewPoseFromOrientation(&spatialmath.R4AA{Theta: theta, RZ: 1})
}

// offsetPose translates a pose by a world-frame delta, keeping its orientation.
func offsetPose(p spatialmath.Pose, delta r3.Vector) spatialmath.Pose {
	return spatialmath.NewPose(p.Point().Add(delta), p.Orientation())
}

// alignRotation builds the intrinsic X-Y-Z rotation that aligns the gripper
// frame with a box axis.
func alignRotation(roll, pitch, yaw float64) spatialmath.Pose {
	return spatialmath.Compose(spatialmath.Compose(rotX(roll), rotY(pitch)), rotZ(yaw))
}
