package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Mesh is a triangle mesh geometry: an ordered list of vertex positions in the mesh's local frame
// and a list of triangles indexing into it, placed at a pose.
type Mesh struct {
	pose      Pose
	vertices  []r3.Vector
	triangles [][3]int
}

// NewMesh creates a mesh from an ordered vertex list and a triangle index list. The slices are
// referenced, not copied, and are treated as read-only from then on.
func NewMesh(pose Pose, vertices []r3.Vector, triangles [][3]int) *Mesh {
	return &Mesh{
		pose:      pose,
		vertices:  vertices,
		triangles: triangles,
	}
}

// Pose returns the pose of the mesh.
func (m *Mesh) Pose() Pose {
	return m.pose
}

// Vertices returns the mesh's vertex positions in its local frame.
func (m *Mesh) Vertices() []r3.Vector {
	return m.vertices
}

// Triangles returns the mesh's triangles as triples of vertex indices.
func (m *Mesh) Triangles() [][3]int {
	return m.triangles
}

// Transform premultiplies the mesh pose with a transform, allowing the mesh to be moved in space.
func (m *Mesh) Transform(pose Pose) *Mesh {
	// Vertices are in the frame of the mesh, like the corners of a box, so they need no update.
	return &Mesh{
		pose:      Compose(pose, m.pose),
		vertices:  m.vertices,
		triangles: m.triangles,
	}
}
