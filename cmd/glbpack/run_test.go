package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netisu/glbpack/adapters/gltfcheck"
	"github.com/netisu/glbpack/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessDemoJobs(t *testing.T) {
	dir := t.TempDir()
	jobs, err := writeDemo(dir)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	summary := processJobs(jobs, 2, options{Verify: true}, discardLogger())
	success, failed := summary.Counts()
	require.Equal(t, 0, failed, "%v", summary.Results())
	assert.Equal(t, 2, success)

	for _, job := range jobs {
		glb, err := os.ReadFile(job.Output)
		require.NoError(t, err)
		_, err = gltfcheck.Check(glb)
		assert.NoError(t, err, job.Output)
	}

	textured, err := os.ReadFile(filepath.Join(dir, "cube_textured.glb"))
	require.NoError(t, err)
	plain, err := os.ReadFile(filepath.Join(dir, "cube.glb"))
	require.NoError(t, err)
	assert.Greater(t, len(textured), len(plain))
}

func TestProcessJobsDryRun(t *testing.T) {
	dir := t.TempDir()
	jobs, err := writeDemo(dir)
	require.NoError(t, err)

	summary := processJobs(jobs, 1, options{DryRun: true}, discardLogger())
	success, _ := summary.Counts()
	assert.Equal(t, 2, success)

	for _, job := range jobs {
		_, err := os.Stat(job.Output)
		assert.True(t, os.IsNotExist(err), job.Output)
	}
	for _, r := range summary.Results() {
		assert.Len(t, r.Digest, 64)
	}
}

func TestProcessJobsReportsFailures(t *testing.T) {
	dir := t.TempDir()
	jobs := []config.Job{{
		Document: filepath.Join(dir, "missing.gltf"),
		Output:   filepath.Join(dir, "missing.glb"),
	}}

	summary := processJobs(jobs, 4, options{}, discardLogger())
	_, failed := summary.Counts()
	assert.Equal(t, 1, failed)

	_, err := os.Stat(filepath.Join(dir, "missing.glb"))
	assert.True(t, os.IsNotExist(err))
}
