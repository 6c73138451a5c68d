package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/netisu/glbpack"
	aenoAdapter "github.com/netisu/glbpack/adapters/aeno"
	"github.com/netisu/glbpack/adapters/gltfcheck"
	"github.com/netisu/glbpack/internal/config"
	"github.com/netisu/glbpack/internal/report"
	"github.com/netisu/glbpack/internal/source"
)

type options struct {
	DryRun    bool
	Verify    bool
	LoadCheck bool
}

// processJobs packs every job with a fixed number of workers
func processJobs(jobs []config.Job, concurrency int, opts options, logger *slog.Logger) *report.Summary {
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		wg      sync.WaitGroup
		summary report.Summary
	)

	tasks := make(chan config.Job, len(jobs))
	for _, job := range jobs {
		tasks <- job
	}
	close(tasks)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			log := logger.With("worker", worker)
			for job := range tasks {
				log.Debug("Packing", "document", job.Document, "output", job.Output)

				res := packJob(job, opts, log)
				if res.Err != nil {
					log.Warn("Failed", "document", job.Document, "error", res.Err)
				} else {
					log.Debug("Packed", "output", job.Output, "bytes", res.Size, "took", res.Duration)
				}
				summary.Add(res)
			}
		}(i)
	}

	wg.Wait()
	return &summary
}

func packJob(job config.Job, opts options, logger *slog.Logger) report.Result {
	start := time.Now()
	res := report.Result{Source: job.Document, Output: job.Output}

	container, err := assemble(job, opts, logger)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	res.Size = len(container)
	res.Digest = report.Digest(container)
	res.Embedded = job.Image != ""

	if opts.DryRun {
		return res
	}

	if err := os.MkdirAll(filepath.Dir(job.Output), 0755); err != nil {
		res.Err = fmt.Errorf("mkdir failed: %w", err)
		return res
	}
	if err := glbpack.WriteFile(job.Output, container); err != nil {
		res.Err = fmt.Errorf("write failed: %w", err)
	}
	return res
}

func assemble(job config.Job, opts options, logger *slog.Logger) ([]byte, error) {
	in, err := source.Load(source.Files{
		DocumentPath: job.Document,
		BufferPath:   job.Buffer,
		ImagePath:    job.Image,
		MIMEType:     job.MIMEType,
	})
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}

	container, err := glbpack.Build(in.Document, in.Buffer, in.Image)
	if err != nil {
		return nil, fmt.Errorf("assembly failed: %w", err)
	}

	if opts.Verify {
		rep, err := gltfcheck.Check(container)
		if err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		logger.Debug("Verified", "output", job.Output, "json", rep.JSONLength, "bin", rep.BINLength, "embedded_images", rep.EmbeddedImages)
	}

	if opts.LoadCheck {
		obj, err := aenoAdapter.LoadObject(container)
		if err != nil {
			return nil, fmt.Errorf("load check failed: %w", err)
		}
		logger.Debug("Loaded", "output", job.Output, "triangles", obj.Triangles())
	}

	return container, nil
}
