package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/netisu/glbpack/internal/config"
	"github.com/netisu/glbpack/internal/cube"
	"github.com/netisu/glbpack/internal/texture"
	"github.com/netisu/glbpack/scene"
)

// writeDemo writes the reference cube document, buffer and texture into dir
// and returns jobs packing it with and without the texture.
func writeDemo(dir string) ([]config.Job, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("mkdir failed: %w", err)
	}

	png, err := texture.PNG()
	if err != nil {
		return nil, err
	}

	files := map[string]*scene.Object{
		"cube.gltf":          cube.Document(false),
		"cube_textured.gltf": cube.Document(true),
	}
	for name, doc := range files {
		data, err := scene.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, cube.BufferURI), cube.Buffer(), 0644); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, cube.TextureURI), png, 0644); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}

	return []config.Job{
		{
			Document: filepath.Join(dir, "cube.gltf"),
			Output:   filepath.Join(dir, "cube.glb"),
		},
		{
			Document: filepath.Join(dir, "cube_textured.gltf"),
			Image:    filepath.Join(dir, cube.TextureURI),
			MIMEType: texture.MIMEType,
			Output:   filepath.Join(dir, "cube_textured.glb"),
		},
	}, nil
}
