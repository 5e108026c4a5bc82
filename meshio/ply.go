// Package meshio reads triangle meshes from common file formats.
package meshio

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chenzhekl/goply"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/grasp/spatialmath"
)

// ReadMeshFromFile loads a mesh from disk, dispatching on the file extension.
// Only PLY is supported today.
func ReadMeshFromFile(path string, logger golog.Logger) (*spatialmath.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply":
		//nolint:gosec
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logger.Errorw("failed to close mesh file", "path", path, "error", cerr)
			}
		}()
		return ReadMeshFromPLY(f, logger)
	default:
		return nil, errors.Errorf("unsupported mesh file format %q", filepath.Ext(path))
	}
}

// ReadMeshFromPLY parses a PLY stream into a mesh at the origin. Faces with
// more than three vertices are fan-triangulated.
func ReadMeshFromPLY(r io.Reader, logger golog.Logger) (*spatialmath.Mesh, error) {
	ply := goply.New(r)

	vertexElems := ply.Elements("vertex")
	vertices := make([]r3.Vector, 0, len(vertexElems))
	for i, elem := range vertexElems {
		x, err := toFloat(elem["x"])
		if err != nil {
			return nil, errors.Wrapf(err, "vertex %d x", i)
		}
		y, err := toFloat(elem["y"])
		if err != nil {
			return nil, errors.Wrapf(err, "vertex %d y", i)
		}
		z, err := toFloat(elem["z"])
		if err != nil {
			return nil, errors.Wrapf(err, "vertex %d z", i)
		}
		vertices = append(vertices, r3.Vector{X: x, Y: y, Z: z})
	}

	faceElems := ply.Elements("face")
	triangles := make([][3]int, 0, len(faceElems))
	for i, elem := range faceElems {
		indices, err := toIntSlice(elem["vertex_indices"])
		if err != nil {
			return nil, errors.Wrapf(err, "face %d", i)
		}
		if len(indices) < 3 {
			return nil, errors.Errorf("face %d has %d vertices, need at least 3", i, len(indices))
		}
		for _, idx := range indices {
			if idx < 0 || idx >= len(vertices) {
				return nil, errors.Errorf("face %d references vertex %d, mesh has %d", i, idx, len(vertices))
			}
		}
		for j := 2; j < len(indices); j++ {
			triangles = append(triangles, [3]int{indices[0], indices[j-1], indices[j]})
		}
	}

	logger.Debugf("read PLY mesh with %d vertices and %d triangles", len(vertices), len(triangles))
	return spatialmath.NewMesh(spatialmath.NewZeroPose(), vertices, triangles), nil
}

// toFloat coerces the numeric types goply hands back into a float64.
func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case nil:
		return 0, errors.New("property missing")
	default:
		return 0, errors.Errorf("unexpected property type %T", v)
	}
}

func toInt(v interface{}) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		return int(x), nil
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case float32:
		return int(x), nil
	case float64:
		return int(x), nil
	case nil:
		return 0, errors.New("property missing")
	default:
		return 0, errors.Errorf("unexpected property type %T", v)
	}
}

// toIntSlice coerces a list property into ints.
func toIntSlice(v interface{}) ([]int, error) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, errors.Errorf("unexpected list property type %T", v)
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		n, err := toInt(item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
