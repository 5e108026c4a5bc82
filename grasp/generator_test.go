package grasp

import (
	"fmt"
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/grasp/spatialmath"
)

func testBox(t *testing.T) *spatialmath.Box {
	t.Helper()
	box, err := spatialmath.NewBox(spatialmath.NewZeroPose(), r3.Vector{X: 0.04, Y: 0.06, Z: 0.08}, "object")
	test.That(t, err, test.ShouldBeNil)
	return box
}

func familyCounts(candidates []Candidate) map[Family]int {
	counts := map[Family]int{}
	for _, c := range candidates {
		counts[c.Family]++
	}
	return counts
}

func TestNewGeneratorValidation(t *testing.T) {
	logger := golog.NewTestLogger(t)

	_, err := NewGenerator(nil, logger)
	test.That(t, err, test.ShouldNotBeNil)

	bad := validGeometry()
	bad.GraspResolution = 0
	_, err = NewGenerator(bad, logger)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewGenerator(validGeometry(), logger)
	test.That(t, err, test.ShouldBeNil)
}

func TestGenerateAxisGraspsCounts(t *testing.T) {
	logger := golog.NewTestLogger(t)
	g, err := NewGenerator(validGeometry(), logger)
	test.That(t, err, test.ShouldBeNil)

	// cross-section perpendicular to X is 0.06 x 0.08 with a 0.03 jaw:
	// 7 fan poses per corner, rows of 6 and 4 along the faces, 4 depth
	// steps over 0.04 of usable finger
	candidates, err := g.GenerateAxisGrasps(testBox(t), AxisX)
	test.That(t, err, test.ShouldBeNil)

	counts := familyCounts(candidates)
	test.That(t, counts[FamilyCorner], test.ShouldEqual, 28)
	test.That(t, counts[FamilyFace], test.ShouldEqual, 20)
	test.That(t, counts[FamilyDepth], test.ShouldEqual, 192)
	test.That(t, counts[FamilySweep], test.ShouldBeGreaterThanOrEqualTo, 0)

	// every pose gets exactly one flipped twin
	test.That(t, counts[FamilyFlipped], test.ShouldEqual, len(candidates)/2)
	test.That(t, len(candidates)%2, test.ShouldEqual, 0)
}

func TestGenerateAxisGraspsIDsAndScores(t *testing.T) {
	logger := golog.NewTestLogger(t)
	g, err := NewGenerator(validGeometry(), logger)
	test.That(t, err, test.ShouldBeNil)

	candidates, err := g.GenerateAxisGrasps(testBox(t), AxisZ)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(candidates), test.ShouldBeGreaterThan, 0)

	for i, c := range candidates {
		test.That(t, c.ID, test.ShouldEqual, fmt.Sprintf("grasp-%d", i))
		test.That(t, c.Score, test.ShouldBeGreaterThanOrEqualTo, 0.0)
		test.That(t, c.Score, test.ShouldBeLessThanOrEqualTo, 1.0)
	}
}

func TestGenerateAxisGraspsFaceRowSpan(t *testing.T) {
	logger := golog.NewTestLogger(t)
	g, err := NewGenerator(validGeometry(), logger)
	test.That(t, err, test.ShouldBeNil)

	candidates, err := g.GenerateAxisGrasps(testBox(t), AxisX)
	test.That(t, err, test.ShouldBeNil)

	var facePoses []spatialmath.Pose
	for _, c := range candidates {
		if c.Family == FamilyFace {
			facePoses = append(facePoses, c.Pose)
		}
	}
	test.That(t, len(facePoses), test.ShouldEqual, 20)

	// the first row runs along Z on the -Y face: palms sit just off the
	// surface and the row spans the usable extent symmetrically
	jaw := validGeometry().GripperWidth
	first, last := facePoses[0], facePoses[5]
	test.That(t, first.Point().Y, test.ShouldAlmostEqual, -0.5*(0.06+palmStandoff), 1e-9)
	test.That(t, last.Point().Y, test.ShouldAlmostEqual, -0.5*(0.06+palmStandoff), 1e-9)
	test.That(t, first.Point().Z, test.ShouldAlmostEqual, -0.5*(0.08-jaw), 1e-9)
	test.That(t, last.Point().Z, test.ShouldAlmostEqual, 0.5*(0.08-jaw), 1e-9)
}

func TestGenerateAxisGraspsSweepPosesStayClear(t *testing.T) {
	logger := golog.NewTestLogger(t)
	g, err := NewGenerator(validGeometry(), logger)
	test.That(t, err, test.ShouldBeNil)

	box := testBox(t)
	candidates, err := g.GenerateAxisGrasps(box, AxisY)
	test.That(t, err, test.ShouldBeNil)

	for _, c := range candidates {
		if c.Family != FamilySweep {
			continue
		}
		test.That(t, g.reachInCollides(box, c.Pose), test.ShouldBeFalse)
	}
}

func TestGenerateAxisGraspsUnknownAxis(t *testing.T) {
	logger := golog.NewTestLogger(t)
	g, err := NewGenerator(validGeometry(), logger)
	test.That(t, err, test.ShouldBeNil)

	_, err = g.GenerateAxisGrasps(testBox(t), Axis(7))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not defined")
}

func TestGenerateGraspsSizeGate(t *testing.T) {
	logger := golog.NewTestLogger(t)
	g, err := NewGenerator(validGeometry(), logger)
	test.That(t, err, test.ShouldBeNil)
	box := testBox(t)

	// only the X extent (0.04) fits under the gate
	gated, err := g.GenerateGrasps(box, 0.05)
	test.That(t, err, test.ShouldBeNil)
	xOnly, err := g.GenerateAxisGrasps(box, AxisX)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(gated), test.ShouldEqual, len(xOnly))

	// everything fits: X, Y, and Z candidates concatenate with sequential IDs
	all, err := g.GenerateGrasps(box, 1.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(all), test.ShouldBeGreaterThan, len(gated))
	for i, c := range all {
		test.That(t, c.ID, test.ShouldEqual, fmt.Sprintf("grasp-%d", i))
	}

	// nothing fits
	none, err := g.GenerateGrasps(box, 0.01)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(none), test.ShouldEqual, 0)
}

func TestGenerateGraspsFromMesh(t *testing.T) {
	logger := golog.NewTestLogger(t)
	g, err := NewGenerator(validGeometry(), logger)
	test.That(t, err, test.ShouldBeNil)

	mesh := testBox(t).ToMesh()
	candidates, box, err := g.GenerateGraspsFromMesh(mesh, 1.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, box, test.ShouldNotBeNil)
	test.That(t, len(candidates), test.ShouldBeGreaterThan, 0)

	// the fitted box recovers the cuboid's extents, in some axis order
	dims := box.Dims()
	got := []float64{dims.X, dims.Y, dims.Z}
	test.That(t, got[0]*got[1]*got[2], test.ShouldAlmostEqual, 0.04*0.06*0.08, 1e-12)

	// degenerate input surfaces the fitting error
	_, _, err = g.GenerateGraspsFromMesh(spatialmath.NewMesh(spatialmath.NewZeroPose(), nil, nil), 1.0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bounding box")
}

func TestWithIdealGraspPose(t *testing.T) {
	logger := golog.NewTestLogger(t)
	ideal := spatialmath.NewPoseFromOrientation(&spatialmath.R4AA{Theta: math.Pi / 2, RX: 1})
	g, err := NewGenerator(validGeometry(), logger, WithIdealGraspPose(ideal))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqual(g.ideal, ideal), test.ShouldBeTrue)

	base, err := NewGenerator(validGeometry(), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqual(base.ideal, DefaultIdealGraspPose()), test.ShouldBeTrue)
}

func TestAxisString(t *testing.T) {
	test.That(t, AxisX.String(), test.ShouldEqual, "x")
	test.That(t, AxisY.String(), test.ShouldEqual, "y")
	test.That(t, AxisZ.String(), test.ShouldEqual, "z")
	test.That(t, Axis(9).String(), test.ShouldEqual, "Axis(9)")
}

func TestFamilyString(t *testing.T) {
	test.That(t, FamilyCorner.String(), test.ShouldEqual, "corner")
	test.That(t, FamilySweep.String(), test.ShouldEqual, "sweep")
	test.That(t, Family(42).String(), test.ShouldEqual, "unknown")
}
