// Package grasp generates and scores candidate gripper poses for picking up box-shaped objects.
//
// Candidates are enumerated geometrically around the axes of a box, without physics or
// contact-force simulation; filtering for kinematic reachability and scene collisions is left to
// a downstream planner.
package grasp

import (
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// GripperGeometry holds the fixed geometry and sampling resolutions of a parallel-jaw gripper.
// All lengths are in meters and all angles in radians. The zero value is invalid; every field
// must be positive.
type GripperGeometry struct {
	// GripperWidth is the maximum opening width between the fingers.
	GripperWidth float64 `json:"gripper_width"`
	// FingerToPalmDepth is the distance from the palm to the fingertips.
	FingerToPalmDepth float64 `json:"finger_to_palm_depth"`
	// GraspMinDepth is the minimum distance the fingers must overlap an object for a usable grasp.
	GraspMinDepth float64 `json:"grasp_min_depth"`
	// AngleResolution is the angular sampling resolution for corner fans and angular sweeps.
	AngleResolution float64 `json:"angle_resolution"`
	// GraspResolution is the nominal linear spacing between grasps along a face.
	GraspResolution float64 `json:"grasp_resolution"`
	// DepthResolution is the spacing between grasps at varying insertion depths.
	DepthResolution float64 `json:"grasp_depth_resolution"`
}

// Validate returns an error describing every invalid field of the geometry.
func (gg *GripperGeometry) Validate() error {
	var err error
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"gripper_width", gg.GripperWidth},
		{"finger_to_palm_depth", gg.FingerToPalmDepth},
		{"grasp_min_depth", gg.GraspMinDepth},
		{"angle_resolution", gg.AngleResolution},
		{"grasp_resolution", gg.GraspResolution},
		{"grasp_depth_resolution", gg.DepthResolution},
	} {
		if field.value <= 0 {
			err = multierr.Append(err, NewInvalidGeometryError(field.name, field.value))
		}
	}
	if gg.GraspMinDepth > gg.FingerToPalmDepth {
		err = multierr.Append(err, errors.Errorf(
			"grasp_min_depth %.5f exceeds finger_to_palm_depth %.5f", gg.GraspMinDepth, gg.FingerToPalmDepth))
	}
	return err
}

// FingerDepth returns the usable finger length, the span over which depth-varied grasps are
// sampled.
func (gg *GripperGeometry) FingerDepth() float64 {
	return gg.FingerToPalmDepth - gg.GraspMinDepth
}

// ParseGripperGeometry parses and validates a JSON gripper geometry description.
func ParseGripperGeometry(data []byte) (*GripperGeometry, error) {
	gg := &GripperGeometry{}
	if err := json.Unmarshal(data, gg); err != nil {
		return nil, errors.Wrap(err, "cannot parse gripper geometry")
	}
	if err := gg.Validate(); err != nil {
		return nil, err
	}
	return gg, nil
}
