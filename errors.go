package glbpack

import "github.com/pkg/errors"

var (
	// ErrInvalidAsset reports an image without bytes or without a MIME type.
	ErrInvalidAsset = errors.New("invalid asset")
	// ErrMissingResource reports a scene document lacking buffers[0] or images[0].
	ErrMissingResource = errors.New("missing resource")
	// ErrSerialization reports a scene document that cannot be encoded as JSON.
	ErrSerialization = errors.New("serialization error")
	// ErrContainerTooLarge reports a container whose size overflows the 32-bit length field.
	ErrContainerTooLarge = errors.New("container too large")
)
