// Package cube is the reference geometry source: a textured unit cube with
// per-face normals and UVs, laid out as positions, normals, UVs and then
// uint16 indices in one little-endian buffer.
package cube

import (
	"bytes"
	"encoding/binary"

	"github.com/netisu/glbpack/scene"
)

const (
	VertexCount = 24
	IndexCount  = 36

	// Default external file names referenced by Document.
	BufferURI  = "cube.bin"
	TextureURI = "cube_texture.png"
)

// glTF enums used by the document.
const (
	componentFloat         = 5126
	componentUnsignedShort = 5123
	targetArrayBuffer      = 34962
	targetElementBuffer    = 34963
	filterLinear           = 9729
	filterLinearMipLinear  = 9987
	wrapRepeat             = 10497
)

var Positions = [VertexCount][3]float32{
	// front
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	// back
	{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1},
	// top
	{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1},
	// bottom
	{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1},
	// right
	{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1},
	// left
	{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1},
}

var Normals = [VertexCount][3]float32{
	{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1},
	{0, 0, -1}, {0, 0, -1}, {0, 0, -1}, {0, 0, -1},
	{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0},
	{0, -1, 0}, {0, -1, 0}, {0, -1, 0}, {0, -1, 0},
	{1, 0, 0}, {1, 0, 0}, {1, 0, 0}, {1, 0, 0},
	{-1, 0, 0}, {-1, 0, 0}, {-1, 0, 0}, {-1, 0, 0},
}

var UVs = [VertexCount][2]float32{
	{0, 0}, {1, 0}, {1, 1}, {0, 1},
	{1, 0}, {1, 1}, {0, 1}, {0, 0},
	{0, 1}, {0, 0}, {1, 0}, {1, 1},
	{1, 1}, {0, 1}, {0, 0}, {1, 0},
	{1, 0}, {1, 1}, {0, 1}, {0, 0},
	{0, 0}, {1, 0}, {1, 1}, {0, 1},
}

var Indices = [IndexCount]uint16{
	0, 1, 2, 0, 2, 3, // front
	4, 5, 6, 4, 6, 7, // back
	8, 9, 10, 8, 10, 11, // top
	12, 13, 14, 12, 14, 15, // bottom
	16, 17, 18, 16, 18, 19, // right
	20, 21, 22, 20, 22, 23, // left
}

// Section is where one attribute block sits inside Buffer.
type Section struct {
	Offset int
	Length int
}

// Layout of the blocks in Buffer, in order.
var (
	PositionSection = Section{Offset: 0, Length: VertexCount * 12}
	NormalSection   = Section{Offset: VertexCount * 12, Length: VertexCount * 12}
	UVSection       = Section{Offset: VertexCount * 24, Length: VertexCount * 8}
	IndexSection    = Section{Offset: VertexCount * 32, Length: IndexCount * 2}

	BufferLength = IndexSection.Offset + IndexSection.Length
)

// Buffer returns the raw geometry buffer.
func Buffer() []byte {
	var buf bytes.Buffer
	buf.Grow(BufferLength)
	for _, block := range []any{Positions, Normals, UVs, Indices} {
		// Fixed-size arrays into a bytes.Buffer never fail.
		_ = binary.Write(&buf, binary.LittleEndian, block)
	}
	return buf.Bytes()
}

// Document returns the scene description for Buffer as it looks before
// embedding: buffers[0] and, when textured, images[0] reference external
// files by URI.
func Document(textured bool) *scene.Object {
	pbr := scene.NewObject().
		Set("baseColorFactor", floats(1, 1, 1, 1)).
		Set("metallicFactor", scene.Int(0)).
		Set("roughnessFactor", scene.Int(1))
	if textured {
		pbr.Set("baseColorTexture", scene.NewObject().Set("index", scene.Int(0)))
	}

	doc := scene.NewObject().
		Set("asset", scene.NewObject().
			Set("version", scene.String("2.0")).
			Set("generator", scene.String("glbpack cube"))).
		Set("scene", scene.Int(0)).
		Set("scenes", scene.NewArray(scene.NewObject().Set("nodes", ints(0)))).
		Set("nodes", scene.NewArray(scene.NewObject().
			Set("name", scene.String("Cube")).
			Set("mesh", scene.Int(0)))).
		Set("meshes", scene.NewArray(scene.NewObject().
			Set("name", scene.String("Cube")).
			Set("primitives", scene.NewArray(scene.NewObject().
				Set("attributes", scene.NewObject().
					Set("POSITION", scene.Int(0)).
					Set("NORMAL", scene.Int(1)).
					Set("TEXCOORD_0", scene.Int(2))).
				Set("indices", scene.Int(3)).
				Set("material", scene.Int(0)))))).
		Set("materials", scene.NewArray(scene.NewObject().
			Set("name", scene.String("CubeMaterial")).
			Set("pbrMetallicRoughness", pbr)))

	if textured {
		doc.Set("textures", scene.NewArray(scene.NewObject().
			Set("sampler", scene.Int(0)).
			Set("source", scene.Int(0))))
		doc.Set("samplers", scene.NewArray(scene.NewObject().
			Set("magFilter", scene.Int(filterLinear)).
			Set("minFilter", scene.Int(filterLinearMipLinear)).
			Set("wrapS", scene.Int(wrapRepeat)).
			Set("wrapT", scene.Int(wrapRepeat))))
		doc.Set("images", scene.NewArray(scene.NewObject().
			Set("uri", scene.String(TextureURI))))
	}

	doc.Set("accessors", scene.NewArray(
		accessor(0, componentFloat, VertexCount, "VEC3").
			Set("min", floats(-1, -1, -1)).
			Set("max", floats(1, 1, 1)),
		accessor(1, componentFloat, VertexCount, "VEC3"),
		accessor(2, componentFloat, VertexCount, "VEC2"),
		accessor(3, componentUnsignedShort, IndexCount, "SCALAR"),
	))
	doc.Set("bufferViews", scene.NewArray(
		view(PositionSection, targetArrayBuffer),
		view(NormalSection, targetArrayBuffer),
		view(UVSection, targetArrayBuffer),
		view(IndexSection, targetElementBuffer),
	))
	doc.Set("buffers", scene.NewArray(scene.NewObject().
		Set("uri", scene.String(BufferURI)).
		Set("byteLength", scene.Int(int64(BufferLength)))))

	return doc
}

func accessor(bufferView, componentType, count int, typ string) *scene.Object {
	return scene.NewObject().
		Set("bufferView", scene.Int(int64(bufferView))).
		Set("componentType", scene.Int(int64(componentType))).
		Set("count", scene.Int(int64(count))).
		Set("type", scene.String(typ))
}

func view(s Section, target int) *scene.Object {
	return scene.NewObject().
		Set("buffer", scene.Int(0)).
		Set("byteOffset", scene.Int(int64(s.Offset))).
		Set("byteLength", scene.Int(int64(s.Length))).
		Set("target", scene.Int(int64(target)))
}

func floats(fs ...float64) *scene.Array {
	arr := scene.NewArray()
	for _, f := range fs {
		arr.Append(scene.Float(f))
	}
	return arr
}

func ints(is ...int64) *scene.Array {
	arr := scene.NewArray()
	for _, i := range is {
		arr.Append(scene.Int(i))
	}
	return arr
}
