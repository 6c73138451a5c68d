package glbpack

import "github.com/pkg/errors"

// ImageAsset is an already encoded image to embed in the container.
type ImageAsset struct {
	Data     []byte
	MIMEType string
}

// Region is a byte range inside the combined payload.
type Region struct {
	Offset int
	Length int
}

// End returns the offset one past the last byte of the region.
func (r Region) End() int {
	return r.Offset + r.Length
}

// Payload is the geometry buffer followed by the optional image bytes. It is
// not padded; Assemble pads the BIN chunk as a whole.
type Payload struct {
	Bytes        []byte
	BufferLength int
	// Image is nil when no image was combined.
	Image *Region
}

func (img *ImageAsset) validate() error {
	if len(img.Data) == 0 {
		return errors.Wrap(ErrInvalidAsset, "image has no data")
	}
	if img.MIMEType == "" {
		return errors.Wrap(ErrInvalidAsset, "image has no MIME type")
	}
	return nil
}

// Combine concatenates raw and image into a freshly allocated payload. image
// may be nil. The image region starts right after raw with no alignment gap.
func Combine(raw []byte, image *ImageAsset) (*Payload, error) {
	size := len(raw)
	if image != nil {
		if err := image.validate(); err != nil {
			return nil, err
		}
		size += len(image.Data)
	}

	p := &Payload{
		Bytes:        make([]byte, 0, size),
		BufferLength: len(raw),
	}
	p.Bytes = append(p.Bytes, raw...)
	if image != nil {
		p.Image = &Region{Offset: len(raw), Length: len(image.Data)}
		p.Bytes = append(p.Bytes, image.Data...)
	}
	return p, nil
}
