// Command graspgen generates grasp candidates for a box or mesh and writes
// them as planner-ready JSON to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/grasp/grasp"
	"go.viam.com/grasp/meshio"
	"go.viam.com/grasp/spatialmath"
)

var logger = golog.NewDevelopmentLogger("graspgen")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	gripperPath := flags.String("gripper", "", "path to gripper geometry JSON")
	boxDims := flags.String("box", "", "box dimensions as \"x,y,z\" in meters")
	meshPath := flags.String("mesh", "", "path to a mesh file")
	maxGraspSize := flags.Float64("max-grasp-size", 0.1, "maximum graspable extent in meters")
	frameID := flags.String("frame", "world", "frame the object pose is expressed in")
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	if *gripperPath == "" {
		return errors.New("-gripper is required")
	}
	if (*boxDims == "") == (*meshPath == "") {
		return errors.New("exactly one of -box or -mesh is required")
	}

	//nolint:gosec
	raw, err := os.ReadFile(*gripperPath)
	if err != nil {
		return errors.Wrap(err, "unable to read gripper geometry")
	}
	geom, err := grasp.ParseGripperGeometry(raw)
	if err != nil {
		return err
	}

	generator, err := grasp.NewGenerator(geom, logger)
	if err != nil {
		return err
	}

	var candidates []grasp.Candidate
	if *boxDims != "" {
		dims, err := parseDims(*boxDims)
		if err != nil {
			return err
		}
		box, err := spatialmath.NewBox(spatialmath.NewZeroPose(), dims, "object")
		if err != nil {
			return err
		}
		candidates, err = generator.GenerateGrasps(box, *maxGraspSize)
		if err != nil {
			return err
		}
	} else {
		mesh, err := meshio.ReadMeshFromFile(*meshPath, logger)
		if err != nil {
			return err
		}
		var box *spatialmath.Box
		candidates, box, err = generator.GenerateGraspsFromMesh(mesh, *maxGraspSize)
		if err != nil {
			return err
		}
		logger.Infof("fitted bounding box with dimensions %v", box.Dims())
	}

	grasps := make([]grasp.PlannerGrasp, 0, len(candidates))
	for _, c := range candidates {
		grasps = append(grasps, grasp.NewPlannerGrasp(c, geom, *frameID))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(grasps)
}

// parseDims parses "x,y,z" into a dimensions vector.
func parseDims(s string) (r3.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vector{}, errors.Errorf("expected 3 comma-separated dimensions, got %d", len(parts))
	}
	var out [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "dimension %d", i)
		}
		out[i] = v
	}
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}, nil
}
