package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Ordered list of box vertices.
var boxVertices = [8]r3.Vector{
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: -1, Z: -1},
}

// The sets of indices of the box vertices that tile the box exterior.
var boxTriangles = [12][3]int{
	{0, 1, 3},
	{0, 2, 3},
	{0, 1, 5},
	{0, 4, 5},
	{0, 2, 6},
	{0, 4, 6},
	{7, 1, 3},
	{7, 2, 3},
	{7, 1, 5},
	{7, 4, 5},
	{7, 2, 6},
	{7, 4, 6},
}

// Box is a geometry that represents a 3D rectangular prism; a pose and three extents fully define it.
// The extents are measured along the box's local X (depth), Y (width), and Z (height) axes.
type Box struct {
	pose     Pose
	halfSize [3]float64
	label    string
}

// NewBox instantiates a new Box. Dimensions are the full extents along the box's local axes and
// must be positive.
func NewBox(pose Pose, dims r3.Vector, label string) (*Box, error) {
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 {
		return nil, newBadBoxDimensionsError(dims)
	}
	return &Box{
		pose:     pose,
		halfSize: [3]float64{dims.X / 2, dims.Y / 2, dims.Z / 2},
		label:    label,
	}, nil
}

// String returns a human readable string that represents the box.
func (b *Box) String() string {
	pt := b.pose.Point()
	return fmt.Sprintf("Type: Box | Position: X:%.3f, Y:%.3f, Z:%.3f | Dims: X:%.3f, Y:%.3f, Z:%.3f",
		pt.X, pt.Y, pt.Z, 2*b.halfSize[0], 2*b.halfSize[1], 2*b.halfSize[2])
}

// Label returns the label of this box.
func (b *Box) Label() string {
	return b.label
}

// Pose returns the pose of the box.
func (b *Box) Pose() Pose {
	return b.pose
}

// Dims returns the full extents of the box along its local X, Y, and Z axes.
func (b *Box) Dims() r3.Vector {
	return r3.Vector{X: 2 * b.halfSize[0], Y: 2 * b.halfSize[1], Z: 2 * b.halfSize[2]}
}

// AlmostEqual compares the box with another box and checks if they are equivalent.
func (b *Box) AlmostEqual(other *Box) bool {
	for i := 0; i < 3; i++ {
		if !Float64AlmostEqual(b.halfSize[i], other.halfSize[i], 1e-8) {
			return false
		}
	}
	return PoseAlmostEqualEps(b.pose, other.pose, 1e-6)
}

// Transform premultiplies the box pose with a transform, allowing the box to be moved in space.
func (b *Box) Transform(toPremultiply Pose) *Box {
	return &Box{
		pose:     Compose(toPremultiply, b.pose),
		halfSize: b.halfSize,
		label:    b.label,
	}
}

// Vertices returns the world-space positions of the eight vertices defining the box.
func (b *Box) Vertices() []r3.Vector {
	verts := make([]r3.Vector, 0, 8)
	for _, vert := range boxVertices {
		offset := NewPoseFromPoint(r3.Vector{X: vert.X * b.halfSize[0], Y: vert.Y * b.halfSize[1], Z: vert.Z * b.halfSize[2]})
		verts = append(verts, Compose(b.pose, offset).Point())
	}
	return verts
}

// ToMesh returns a 12-triangle mesh representation of the box, 2 right triangles for each face.
func (b *Box) ToMesh() *Mesh {
	verts := make([]r3.Vector, 0, 8)
	for _, vert := range boxVertices {
		verts = append(verts, r3.Vector{X: vert.X * b.halfSize[0], Y: vert.Y * b.halfSize[1], Z: vert.Z * b.halfSize[2]})
	}
	triangles := make([][3]int, 0, 12)
	for _, tri := range boxTriangles {
		triangles = append(triangles, tri)
	}
	return NewMesh(b.pose, verts, triangles)
}

// SegmentCrossesRectangle reports whether a segment's crossing of an axis-aligned plane lands
// within a rectangle centered on the plane's origin. t is the segment parameterization at which
// the segment meets the plane, already solved by the caller; u1, v1 and u2, v2 are the segment
// endpoints' in-plane coordinates; a and b are the full rectangle extents. The crossing counts
// iff 0 <= t <= 1 and the interpolated point lies within [-a/2, a/2] x [-b/2, b/2].
func SegmentCrossesRectangle(t, u1, v1, u2, v2, a, b float64) bool {
	if t < 0 || t > 1 {
		return false
	}
	u := u1 + t*(u2-u1)
	v := v1 + t*(v2-v1)
	return u >= -a/2 && u <= a/2 && v >= -b/2 && v <= b/2
}

// IntersectsSegment reports whether the segment between from and to passes through the box volume.
// The segment endpoints are transformed into box-local coordinates and each of the six faces is
// tested in turn: the segment parameterization at which it meets the face plane is solved for, and
// the crossing point is checked against the face rectangle. A segment parallel to a face plane
// yields a non-finite t, which fails the range check.
func (b *Box) IntersectsSegment(from, to r3.Vector) bool {
	inv := PoseInverse(b.pose)
	pa := TransformPoint(inv, from)
	pb := TransformPoint(inv, to)
	depth, width, height := 2*b.halfSize[0], 2*b.halfSize[1], 2*b.halfSize[2]

	// XY faces (z = +/- height/2)
	t := (b.halfSize[2] - pa.Z) / (pb.Z - pa.Z)
	if SegmentCrossesRectangle(t, pa.X, pa.Y, pb.X, pb.Y, depth, width) {
		return true
	}
	t = (-b.halfSize[2] - pa.Z) / (pb.Z - pa.Z)
	if SegmentCrossesRectangle(t, pa.X, pa.Y, pb.X, pb.Y, depth, width) {
		return true
	}

	// XZ faces (y = +/- width/2)
	t = (b.halfSize[1] - pa.Y) / (pb.Y - pa.Y)
	if SegmentCrossesRectangle(t, pa.X, pa.Z, pb.X, pb.Z, depth, height) {
		return true
	}
	t = (-b.halfSize[1] - pa.Y) / (pb.Y - pa.Y)
	if SegmentCrossesRectangle(t, pa.X, pa.Z, pb.X, pb.Z, depth, height) {
		return true
	}

	// YZ faces (x = +/- depth/2)
	t = (b.halfSize[0] - pa.X) / (pb.X - pa.X)
	if SegmentCrossesRectangle(t, pa.Y, pa.Z, pb.Y, pb.Z, width, height) {
		return true
	}
	t = (-b.halfSize[0] - pa.X) / (pb.X - pa.X)
	if SegmentCrossesRectangle(t, pa.Y, pa.Z, pb.Y, pb.Z, width, height) {
		return true
	}

	return false
}
