// Package source loads the three assembly inputs from disk: the scene
// document, the raw geometry buffer and an optional image.
package source

import (
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/pkg/errors"

	"github.com/netisu/glbpack"
	"github.com/netisu/glbpack/scene"
)

// Inputs is everything Build needs for one container.
type Inputs struct {
	Document *scene.Object
	Buffer   []byte
	// Image is nil when nothing is embedded.
	Image *glbpack.ImageAsset
}

// Files names the files for one container. BufferPath may be empty, in which
// case buffers[0].uri of the document is resolved against its directory.
type Files struct {
	DocumentPath string
	BufferPath   string
	ImagePath    string
	MIMEType     string
}

// Load reads the files named by s.
func Load(s Files) (*Inputs, error) {
	doc, err := LoadDocument(s.DocumentPath)
	if err != nil {
		return nil, err
	}

	bufferPath := s.BufferPath
	if bufferPath == "" {
		uri, err := BufferURI(doc)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", s.DocumentPath)
		}
		rel, err := url.PathUnescape(uri)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: buffers[0].uri %q", s.DocumentPath, uri)
		}
		bufferPath = filepath.Join(filepath.Dir(s.DocumentPath), filepath.FromSlash(rel))
	}
	buf, err := LoadBuffer(bufferPath)
	if err != nil {
		return nil, err
	}

	in := &Inputs{Document: doc, Buffer: buf}
	if s.ImagePath != "" {
		if in.Image, err = LoadImage(s.ImagePath, s.MIMEType); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// LoadDocument reads a .gltf document. Comments and trailing commas are
// accepted.
func LoadDocument(path string) (*scene.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading scene document")
	}
	doc, err := scene.ParseJSONC(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return doc, nil
}

func LoadBuffer(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading geometry buffer")
	}
	return data, nil
}

// LoadImage reads an encoded image. An empty mimeType is detected from the
// file contents, falling back to the extension.
func LoadImage(path, mimeType string) (*glbpack.ImageAsset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading image")
	}
	if mimeType == "" {
		mimeType = DetectMIME(data, path)
	}
	if mimeType == "" {
		return nil, errors.Wrapf(glbpack.ErrInvalidAsset, "%s: cannot determine MIME type", path)
	}
	return &glbpack.ImageAsset{Data: data, MIMEType: mimeType}, nil
}

// DetectMIME sniffs data and falls back to the extension of path. It returns
// "" when neither is conclusive.
func DetectMIME(data []byte, path string) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
	}
	return ""
}

// BufferURI returns buffers[0].uri of doc.
func BufferURI(doc *scene.Object) (string, error) {
	buffers, ok := doc.Array("buffers")
	if !ok || buffers.Len() == 0 {
		return "", errors.Wrap(glbpack.ErrMissingResource, "buffers[0]")
	}
	b0, ok := buffers.At(0).(*scene.Object)
	if !ok {
		return "", errors.Wrap(glbpack.ErrMissingResource, "buffers[0] is not an object")
	}
	v, ok := b0.Get("uri")
	uri, isString := v.(scene.String)
	if !ok || !isString || uri == "" {
		return "", errors.Wrap(glbpack.ErrMissingResource, "buffers[0].uri")
	}
	if strings.HasPrefix(string(uri), "data:") {
		return "", errors.Errorf("buffers[0].uri is a data URI, pass the buffer explicitly")
	}
	return string(uri), nil
}
