package glbpack

import (
	"github.com/pkg/errors"

	"github.com/netisu/glbpack/scene"
)

// Mutate derives the document to embed from doc: buffers[0] becomes
// {"byteLength": bufferLength} and, when image is not nil, a buffer view over
// the image region is appended and images[0] is pointed at it. doc itself is
// left untouched; unchanged subtrees are shared with the result.
func Mutate(doc *scene.Object, bufferLength int, image *Region, mimeType string) (*scene.Object, error) {
	if doc == nil {
		return nil, errors.Wrap(ErrMissingResource, "no scene document")
	}
	if bufferLength < 0 {
		return nil, errors.Errorf("negative buffer length %d", bufferLength)
	}
	if image != nil && (image.Offset < 0 || image.Length < 0) {
		return nil, errors.Errorf("negative image region offset %d length %d", image.Offset, image.Length)
	}
	if image != nil && mimeType == "" {
		return nil, errors.Wrap(ErrInvalidAsset, "image region given without MIME type")
	}

	out := doc.Clone()

	buffers, err := firstEntry(out, "buffers")
	if err != nil {
		return nil, err
	}
	buffers.Set(0, scene.NewObject().Set("byteLength", scene.Int(int64(bufferLength))))
	out.Set("buffers", buffers)

	if image == nil {
		return out, nil
	}

	images, err := firstEntry(out, "images")
	if err != nil {
		return nil, err
	}

	// A null or nil bufferViews counts as absent.
	views := scene.NewArray()
	if v, ok := out.Get("bufferViews"); ok {
		switch existing := v.(type) {
		case nil, scene.Null:
		case *scene.Array:
			views = existing.Clone()
		default:
			return nil, errors.Wrapf(ErrMissingResource, "bufferViews is %s, not an array", v.Kind())
		}
	}
	viewIndex := views.Append(scene.NewObject().
		Set("buffer", scene.Int(0)).
		Set("byteOffset", scene.Int(int64(image.Offset))).
		Set("byteLength", scene.Int(int64(image.Length))))
	out.Set("bufferViews", views)

	images.Set(0, scene.NewObject().
		Set("bufferView", scene.Int(int64(viewIndex))).
		Set("mimeType", scene.String(mimeType)))
	out.Set("images", images)

	return out, nil
}

// firstEntry returns a copy of the array stored under key, which must hold at
// least one element.
func firstEntry(doc *scene.Object, key string) (*scene.Array, error) {
	v, ok := doc.Get(key)
	if !ok {
		return nil, errors.Wrapf(ErrMissingResource, "%s[0]: document has no %s", key, key)
	}
	arr, ok := v.(*scene.Array)
	if !ok {
		return nil, errors.Wrapf(ErrMissingResource, "%s[0]: %s is %s, not an array", key, key, v.Kind())
	}
	if arr.Len() == 0 {
		return nil, errors.Wrapf(ErrMissingResource, "%s[0]: %s is empty", key, key)
	}
	return arr.Clone(), nil
}
