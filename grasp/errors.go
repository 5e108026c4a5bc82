package grasp

import "github.com/pkg/errors"

// NewInvalidGeometryError is returned when a gripper or box parameter is outside its valid range.
func NewInvalidGeometryError(name string, value float64) error {
	return errors.Errorf("invalid geometry: %s must be positive, got %.5f", name, value)
}

// NewAxisNotDefinedError is returned when an enumeration is requested around an unknown box axis.
func NewAxisNotDefinedError(axis Axis) error {
	return errors.Errorf("axis %d not defined properly", int(axis))
}
