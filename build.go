package glbpack

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/netisu/glbpack/scene"
)

// Build runs the whole pipeline: combine raw and image, rewrite doc to point
// into the combined payload and assemble the container.
func Build(doc *scene.Object, raw []byte, image *ImageAsset) ([]byte, error) {
	payload, err := Combine(raw, image)
	if err != nil {
		return nil, err
	}

	var mimeType string
	if image != nil {
		mimeType = image.MIMEType
	}
	embedded, err := Mutate(doc, payload.BufferLength, payload.Image, mimeType)
	if err != nil {
		return nil, err
	}

	return Assemble(embedded, payload.Bytes)
}

// WriteFile stores container at path. The bytes go to a temporary file in the
// same directory first and are renamed into place once fully written, so a
// failed write never leaves a truncated container behind.
func WriteFile(path string, container []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temporary file")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(container); err != nil {
		return errors.Wrapf(err, "writing %s", tmp.Name())
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrapf(err, "syncing %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp.Name())
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrapf(err, "chmod %s", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "renaming to %s", path)
	}
	return nil
}
