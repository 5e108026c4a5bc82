package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Tolerance per component when testing whether the eigenvector frame is right-handed.
const rightHandedEpsilon = 1e-6

// BoundingBoxFromMesh computes an oriented bounding box enclosing all of a mesh's vertices. The
// box frame comes from an eigendecomposition of the second-moment matrix of the vertex positions,
// and the box center is the world-space midpoint of the vertex extents in that frame, which need
// not coincide with the vertex centroid.
//
// Two behaviors are inherited from the upstream implementation and preserved deliberately: the
// second moments are accumulated about the origin rather than the centroid, and the eigenvectors
// are consumed in the solver's natural column order (gonum mat.Eigen right eigenvectors), not
// sorted by eigenvalue. Which principal direction becomes the box's local X, Y, or Z depends on
// those conventions.
func BoundingBoxFromMesh(m *Mesh) (*Box, error) {
	vertices := m.Vertices()
	if len(vertices) == 0 {
		return nil, NewDegenerateMeshError(0)
	}

	centroid := r3.Vector{}
	var ixx, iyy, izz, ixy, ixz, iyz float64
	for _, pt := range vertices {
		centroid = centroid.Add(pt)
		ixx += pt.Y*pt.Y + pt.Z*pt.Z
		iyy += pt.X*pt.X + pt.Z*pt.Z
		izz += pt.X*pt.X + pt.Y*pt.Y
		ixy += pt.X * pt.Y
		ixz += pt.X * pt.Z
		iyz += pt.Y * pt.Z
	}
	centroid = centroid.Mul(1 / float64(len(vertices)))

	moments := mat.NewDense(3, 3, []float64{
		ixx, -ixy, -ixz,
		-ixy, iyy, -iyz,
		-ixz, -iyz, izz,
	})
	var eig mat.Eigen
	if ok := eig.Factorize(moments, mat.EigenRight); !ok {
		return nil, errors.New("eigendecomposition of the vertex moment matrix did not converge")
	}
	var vecs mat.CDense
	eig.VectorsTo(&vecs)
	axes := [3]r3.Vector{}
	for i := 0; i < 3; i++ {
		axes[i] = r3.Vector{X: real(vecs.At(0, i)), Y: real(vecs.At(1, i)), Z: real(vecs.At(2, i))}
	}

	// The eigenvectors of a symmetric matrix are orthonormal but the solver makes no promise
	// about handedness; flip the third axis if the frame came back left-handed.
	w := axes[0].Cross(axes[1]).Sub(axes[2])
	if math.Abs(w.X) >= rightHandedEpsilon || math.Abs(w.Y) >= rightHandedEpsilon || math.Abs(w.Z) >= rightHandedEpsilon {
		axes[2] = axes[2].Mul(-1)
	}

	frame := NewPose(centroid, NewRotationMatrixFromAxes(axes[0], axes[1], axes[2]))
	toFrame := PoseInverse(frame)

	min := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, pt := range vertices {
		local := TransformPoint(toFrame, pt)
		min.X = math.Min(min.X, local.X)
		min.Y = math.Min(min.Y, local.Y)
		min.Z = math.Min(min.Z, local.Z)
		max.X = math.Max(max.X, local.X)
		max.Y = math.Max(max.Y, local.Y)
		max.Z = math.Max(max.Z, local.Z)
	}

	center := TransformPoint(frame, min.Add(max).Mul(0.5))
	box, err := NewBox(Compose(m.pose, NewPose(center, frame.Orientation())), max.Sub(min), "")
	if err != nil {
		return nil, errors.Wrap(err, "mesh vertex extents do not span a volume")
	}
	return box, nil
}
