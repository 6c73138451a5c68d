package glbpack_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netisu/glbpack"
	"github.com/netisu/glbpack/internal/cube"
	"github.com/netisu/glbpack/internal/texture"
	"github.com/netisu/glbpack/scene"
)

func TestCubeDecodesWithGLTF(t *testing.T) {
	glb, err := glbpack.Build(cube.Document(false), cube.Buffer(), nil)
	require.NoError(t, err)

	var doc gltf.Document
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(glb)).Decode(&doc))

	require.Len(t, doc.Buffers, 1)
	assert.Empty(t, doc.Buffers[0].URI)
	assert.EqualValues(t, cube.BufferLength, doc.Buffers[0].ByteLength)
	assert.True(t, bytes.HasPrefix(doc.Buffers[0].Data, cube.Buffer()))
	assert.Len(t, doc.Accessors, 4)
	assert.Len(t, doc.BufferViews, 4)
	require.Len(t, doc.Meshes, 1)
	assert.Equal(t, "Cube", doc.Meshes[0].Name)
}

func TestTexturedCube(t *testing.T) {
	png, err := texture.PNG()
	require.NoError(t, err)

	glb, err := glbpack.Build(cube.Document(true), cube.Buffer(), &glbpack.ImageAsset{Data: png, MIMEType: texture.MIMEType})
	require.NoError(t, err)

	c := split(t, glb)
	doc := c.document(t)

	viewIndex := intField(t, doc, "images", 0, "bufferView")
	assert.EqualValues(t, 4, viewIndex)
	off := intField(t, doc, "bufferViews", int(viewIndex), "byteOffset")
	length := intField(t, doc, "bufferViews", int(viewIndex), "byteLength")
	assert.EqualValues(t, cube.BufferLength, off)
	assert.EqualValues(t, len(png), length)
	assert.Equal(t, png, c.binChunk[off:off+length])
	assert.Equal(t, cube.Buffer(), c.binChunk[:cube.BufferLength])

	_, hasURI := field(t, doc, "images", 0).(*scene.Object).Get("uri")
	assert.False(t, hasURI)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.glb")

	glb, err := glbpack.Build(cube.Document(false), cube.Buffer(), nil)
	require.NoError(t, err)
	require.NoError(t, glbpack.WriteFile(path, glb))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, glb, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "cube.glb")
	require.Error(t, glbpack.WriteFile(path, []byte("glTF")))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
