package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// newBadBoxDimensionsError is returned when a box is constructed with a non-positive extent.
func newBadBoxDimensionsError(dims r3.Vector) error {
	return errors.Errorf("box dimensions must be positive, got (%.5f, %.5f, %.5f)", dims.X, dims.Y, dims.Z)
}

// NewDegenerateMeshError is returned when a mesh does not carry enough geometry for a computation
// to be well defined.
func NewDegenerateMeshError(numVertices int) error {
	return errors.Errorf("mesh is degenerate, has %d vertices", numVertices)
}

func newRotationMatrixInputError(m []float64) error {
	return errors.Errorf("rotation matrix needs exactly 9 elements, got %d", len(m))
}
