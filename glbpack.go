// Package glbpack assembles binary glTF (GLB) containers from a scene
// description, a geometry buffer and an optional embedded image.
package glbpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/netisu/glbpack/scene"
)

const (
	Magic   = 0x46546C67 // "glTF"
	Version = 2

	HeaderSize      = 12
	ChunkHeaderSize = 8

	ChunkTypeJSON = 0x4E4F534A // "JSON"
	ChunkTypeBIN  = 0x004E4942 // "BIN\x00"

	// JSONPadByte fills the JSON chunk to a 4-byte boundary.
	JSONPadByte = 0x20
	// BINPadByte fills the BIN chunk to a 4-byte boundary.
	BINPadByte = 0x00

	Alignment = 4
)

// Header is the fixed GLB file header.
type Header struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

type ChunkHeader struct {
	Length uint32
	Type   uint32
}

// PadLength returns how many bytes bring n up to the next 4-byte boundary.
func PadLength(n int) int {
	return (Alignment - n%Alignment) % Alignment
}

// writeChunk writes a chunk header, data and the padding up to the next 4-byte
// boundary.
func writeChunk(buf *bytes.Buffer, typ uint32, data []byte, fill byte) {
	n := PadLength(len(data))
	// Writes into a bytes.Buffer cannot fail.
	_ = binary.Write(buf, binary.LittleEndian, ChunkHeader{Length: uint32(len(data) + n), Type: typ})
	buf.Write(data)
	for i := 0; i < n; i++ {
		buf.WriteByte(fill)
	}
}

// Assemble serializes doc and writes it together with payload as a GLB
// container. payload is copied, never modified. Nothing is
// returned unless the whole container could be built.
func Assemble(doc *scene.Object, payload []byte) ([]byte, error) {
	if doc == nil {
		return nil, errors.Wrap(ErrSerialization, "no scene document")
	}
	docBytes, err := scene.Marshal(doc)
	if err != nil {
		// pkg/errors wraps a single cause; both sentinels must stay matchable.
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	total := uint64(HeaderSize) +
		ChunkHeaderSize + uint64(len(docBytes)+PadLength(len(docBytes))) +
		ChunkHeaderSize + uint64(len(payload)+PadLength(len(payload)))
	if total > math.MaxUint32 {
		return nil, errors.Wrapf(ErrContainerTooLarge, "%d bytes", total)
	}

	var buf bytes.Buffer
	buf.Grow(int(total))

	header := Header{
		Magic:   Magic,
		Version: Version,
		Length:  uint32(total),
	}
	_ = binary.Write(&buf, binary.LittleEndian, header)
	writeChunk(&buf, ChunkTypeJSON, docBytes, JSONPadByte)
	writeChunk(&buf, ChunkTypeBIN, payload, BINPadByte)

	return buf.Bytes(), nil
}
