package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResolvesPaths(t *testing.T) {
	data := []byte(`
output_dir: out
verify: true
jobs:
  - document: models/cube.gltf
    image: models/cube_texture.png
  - document: /abs/plain.gltf
    buffer: plain.bin
    output: custom/plain.glb
`)

	m, err := Parse(data, "/assets")
	require.NoError(t, err)

	want := &Manifest{
		Concurrency: DefaultConcurrency,
		OutputDir:   "/assets/out",
		Verify:      true,
		Jobs: []Job{
			{
				Document: "/assets/models/cube.gltf",
				Image:    "/assets/models/cube_texture.png",
				Output:   "/assets/out/cube.glb",
			},
			{
				Document: "/abs/plain.gltf",
				Buffer:   "/assets/plain.bin",
				Output:   "/assets/out/custom/plain.glb",
			},
		},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDefaultsOutputDir(t *testing.T) {
	m, err := Parse([]byte("concurrency: 2\njobs:\n  - document: a.gltf\n"), "base")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Concurrency)
	assert.Equal(t, filepath.Join("base", "a.glb"), m.Jobs[0].Output)
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"no jobs":          "concurrency: 1\n",
		"missing document": "jobs:\n  - buffer: a.bin\n",
		"mime only":        "jobs:\n  - document: a.gltf\n    mime: image/png\n",
		"duplicate output": "jobs:\n  - document: a/x.gltf\n  - document: b/x.gltf\n",
		"unknown field":    "jobs:\n  - document: a.gltf\n    texture: t.png\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data), ".")
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glbpack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs:\n  - document: cube.gltf\n"), 0644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cube.gltf"), m.Jobs[0].Document)
	assert.Equal(t, filepath.Join(dir, "cube.glb"), m.Jobs[0].Output)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
