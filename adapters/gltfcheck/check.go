// Package gltfcheck verifies an assembled container before it leaves the
// process: the header and chunk lengths must add up, and every reference the
// JSON chunk makes into the BIN chunk must land inside it.
package gltfcheck

import (
	"bytes"
	"encoding/binary"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/netisu/glbpack"
)

// ErrMalformed is wrapped by every verification failure.
var ErrMalformed = errors.New("malformed container")

// Report summarises a verified container.
type Report struct {
	JSONLength  int
	BINLength   int
	BufferViews int
	Images      int
	// EmbeddedImages counts images stored in a buffer view.
	EmbeddedImages int
}

// Check verifies glb and returns what it found.
func Check(glb []byte) (*Report, error) {
	r := bytes.NewReader(glb)

	var h glbpack.Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(ErrMalformed, "short header")
	}
	switch {
	case h.Magic != glbpack.Magic:
		return nil, errors.Wrapf(ErrMalformed, "magic %#08x", h.Magic)
	case h.Version != glbpack.Version:
		return nil, errors.Wrapf(ErrMalformed, "version %d", h.Version)
	case int(h.Length) != len(glb):
		return nil, errors.Wrapf(ErrMalformed, "header length %d, container is %d bytes", h.Length, len(glb))
	case len(glb)%glbpack.Alignment != 0:
		return nil, errors.Wrapf(ErrMalformed, "length %d not 4-byte aligned", len(glb))
	}

	jsonChunk, err := readChunk(r, glbpack.ChunkTypeJSON)
	if err != nil {
		return nil, err
	}
	binChunk, err := readChunk(r, glbpack.ChunkTypeBIN)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, errors.Wrapf(ErrMalformed, "%d trailing bytes", r.Len())
	}

	var doc gltf.Document
	if err := json.Unmarshal(jsonChunk, &doc); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "JSON chunk: %v", err)
	}

	rep := &Report{
		JSONLength:  len(jsonChunk),
		BINLength:   len(binChunk),
		BufferViews: len(doc.BufferViews),
		Images:      len(doc.Images),
	}

	if len(doc.Buffers) == 0 {
		return nil, errors.Wrap(ErrMalformed, "no buffers")
	}
	if doc.Buffers[0].URI != "" {
		return nil, errors.Wrapf(ErrMalformed, "buffers[0] still references %q", doc.Buffers[0].URI)
	}
	if int(doc.Buffers[0].ByteLength) > len(binChunk) {
		return nil, errors.Wrapf(ErrMalformed, "buffers[0].byteLength %d exceeds BIN chunk of %d bytes", doc.Buffers[0].ByteLength, len(binChunk))
	}

	for i, view := range doc.BufferViews {
		if view == nil || int(view.Buffer) != 0 {
			continue
		}
		if end := int(view.ByteOffset) + int(view.ByteLength); end > len(binChunk) {
			return nil, errors.Wrapf(ErrMalformed, "bufferViews[%d] ends at %d, BIN chunk is %d bytes", i, end, len(binChunk))
		}
	}

	for i, img := range doc.Images {
		if img == nil || img.BufferView == nil {
			continue
		}
		if idx := int(*img.BufferView); idx < 0 || idx >= len(doc.BufferViews) {
			return nil, errors.Wrapf(ErrMalformed, "images[%d].bufferView %d out of range", i, idx)
		}
		if img.MimeType == "" {
			return nil, errors.Wrapf(ErrMalformed, "images[%d] has no mimeType", i)
		}
		rep.EmbeddedImages++
	}

	return rep, nil
}

func readChunk(r *bytes.Reader, typ uint32) ([]byte, error) {
	var ch glbpack.ChunkHeader
	if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "missing chunk %#08x", typ)
	}
	if ch.Type != typ {
		return nil, errors.Wrapf(ErrMalformed, "chunk type %#08x, want %#08x", ch.Type, typ)
	}
	if ch.Length%glbpack.Alignment != 0 {
		return nil, errors.Wrapf(ErrMalformed, "chunk %#08x length %d not 4-byte aligned", typ, ch.Length)
	}
	if int64(ch.Length) > int64(r.Len()) {
		return nil, errors.Wrapf(ErrMalformed, "chunk %#08x claims %d bytes, %d left", typ, ch.Length, r.Len())
	}
	data := make([]byte, ch.Length)
	// Length was checked against what is left.
	_, _ = r.Read(data)
	return data, nil
}
