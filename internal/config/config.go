// Package config loads batch manifests for glbpack.
//
// A manifest is a YAML file listing one job per container. Relative paths
// inside it are resolved against the directory holding the manifest, so a
// manifest can be checked in next to the assets it describes.
//
//	concurrency: 4
//	output_dir: out
//	jobs:
//	  - document: models/cube.gltf
//	    image: models/cube_texture.png
//	  - document: models/plain.gltf
//	    buffer: models/plain.bin
//	    output: plain.glb
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultConcurrency = 4

// Manifest is a batch of containers to build.
type Manifest struct {
	// Concurrency is the number of jobs assembled in parallel.
	// Default: 4
	Concurrency int `yaml:"concurrency"`

	// OutputDir receives containers whose job has no explicit output, and
	// anchors relative outputs. Default: the manifest's directory.
	OutputDir string `yaml:"output_dir"`

	// Verify checks every produced container before it is written.
	Verify bool `yaml:"verify"`

	Jobs []Job `yaml:"jobs"`
}

// Job describes one container.
type Job struct {
	// Document is the .gltf scene description. Required.
	Document string `yaml:"document"`

	// Buffer is the raw geometry. Default: buffers[0].uri of the document.
	Buffer string `yaml:"buffer,omitempty"`

	// Image is embedded when set.
	Image string `yaml:"image,omitempty"`

	// MIMEType of Image. Default: sniffed from the image bytes.
	MIMEType string `yaml:"mime,omitempty"`

	// Output path. Default: <output_dir>/<document name>.glb
	Output string `yaml:"output,omitempty"`
}

// Load reads and validates the manifest at path and resolves every path in
// it to an absolute-or-cwd-relative form.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}
	m, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return m, nil
}

// Parse decodes a manifest whose relative paths are anchored at baseDir.
func Parse(data []byte, baseDir string) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}

	m.applyDefaults(baseDir)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) applyDefaults(baseDir string) {
	if m.Concurrency <= 0 {
		m.Concurrency = DefaultConcurrency
	}
	m.OutputDir = resolve(baseDir, m.OutputDir)
	if m.OutputDir == "" {
		m.OutputDir = baseDir
	}

	for i := range m.Jobs {
		job := &m.Jobs[i]
		job.Document = resolve(baseDir, job.Document)
		job.Buffer = resolve(baseDir, job.Buffer)
		job.Image = resolve(baseDir, job.Image)
		if job.Output == "" && job.Document != "" {
			base := filepath.Base(job.Document)
			job.Output = strings.TrimSuffix(base, filepath.Ext(base)) + ".glb"
		}
		job.Output = resolve(m.OutputDir, job.Output)
	}
}

// Validate reports the first job that cannot be run.
func (m *Manifest) Validate() error {
	if len(m.Jobs) == 0 {
		return errors.New("manifest has no jobs")
	}
	outputs := make(map[string]int, len(m.Jobs))
	for i, job := range m.Jobs {
		if job.Document == "" {
			return errors.Errorf("jobs[%d]: document is required", i)
		}
		if job.MIMEType != "" && job.Image == "" {
			return errors.Errorf("jobs[%d]: mime set without image", i)
		}
		if prev, ok := outputs[job.Output]; ok {
			return errors.Errorf("jobs[%d]: output %s already written by jobs[%d]", i, job.Output, prev)
		}
		outputs[job.Output] = i
	}
	return nil
}

func resolve(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
