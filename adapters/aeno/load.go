package aeno

import (
	"bytes"
	"fmt"

	"github.com/netisu/aeno"
)

type LoadedObject struct {
	*aeno.Object
	Size int
}

// LoadObject decodes an assembled GLB container into an aeno object
func LoadObject(glb []byte) (*LoadedObject, error) {
	mesh, err := aeno.LoadGLTFFromReader(bytes.NewReader(glb))
	if err != nil {
		return nil, fmt.Errorf("aeno: loading container: %w", err)
	}

	return &LoadedObject{
		Object: &aeno.Object{
			Mesh:   mesh,
			Color:  aeno.Transparent,
			Matrix: aeno.Identity(),
		},
		Size: len(glb),
	}, nil
}

// Triangles returns how many triangles the loaded mesh has.
func (o *LoadedObject) Triangles() int {
	if o.Object == nil || o.Mesh == nil {
		return 0
	}
	return len(o.Mesh.Triangles)
}
