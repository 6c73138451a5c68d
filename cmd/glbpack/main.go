package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/netisu/glbpack/internal/config"
)

func main() {
	docPath := flag.StringP("doc", "d", "", "Scene document (.gltf, comments allowed)")
	binPath := flag.StringP("bin", "b", "", "Geometry buffer (default: buffers[0].uri of the document)")
	imagePath := flag.StringP("image", "i", "", "Image to embed as images[0]")
	mimeType := flag.String("mime", "", "MIME type of --image (default: detected)")
	output := flag.StringP("output", "o", "", "Output .glb (default: document name with .glb)")
	manifest := flag.StringP("manifest", "m", "", "YAML manifest describing a batch of containers")
	demo := flag.String("demo", "", "Write the reference cube assets into this directory and pack them")
	concurrency := flag.IntP("concurrency", "c", 0, "Number of concurrent jobs (default: manifest value or 4)")
	dryRun := flag.Bool("dry-run", false, "Assemble without writing files")
	verify := flag.Bool("verify", false, "Verify every container before writing it")
	loadCheck := flag.Bool("load-check", false, "Load every container as a mesh before writing it")
	verbose := flag.BoolP("verbose", "v", false, "Enable verbose logging")
	confirm := flag.BoolP("yes", "y", false, "Skip confirmation prompt")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := options{
		DryRun:    *dryRun,
		Verify:    *verify,
		LoadCheck: *loadCheck,
	}

	var jobs []config.Job
	workers := config.DefaultConcurrency
	batch := false

	switch {
	case *demo != "":
		var err error
		if jobs, err = writeDemo(*demo); err != nil {
			fatal(logger, "Failed to write demo assets", err)
		}
	case *manifest != "":
		m, err := config.Load(*manifest)
		if err != nil {
			fatal(logger, "Failed to load manifest", err)
		}
		jobs = m.Jobs
		workers = m.Concurrency
		opts.Verify = opts.Verify || m.Verify
		batch = true
	case *docPath != "":
		job := config.Job{
			Document: *docPath,
			Buffer:   *binPath,
			Image:    *imagePath,
			MIMEType: *mimeType,
			Output:   *output,
		}
		if job.Output == "" {
			job.Output = strings.TrimSuffix(job.Document, ".gltf") + ".glb"
		}
		jobs = []config.Job{job}
	default:
		fmt.Fprintln(os.Stderr, "Usage: glbpack --doc scene.gltf [--bin scene.bin] [--image tex.png] [-o scene.glb]")
		fmt.Fprintln(os.Stderr, "       glbpack --manifest glbpack.yaml")
		fmt.Fprintln(os.Stderr, "       glbpack --demo ./demo")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *concurrency > 0 {
		workers = *concurrency
	}

	if batch {
		fmt.Printf("Found %d containers to pack:\n", len(jobs))
		for i, job := range jobs {
			if i < 10 || i >= len(jobs)-5 {
				fmt.Printf("  %s → %s\n", job.Document, job.Output)
			} else if i == 10 {
				fmt.Printf("  ...\n")
			}
		}
		fmt.Printf("Concurrency: %d workers\n", workers)
		if opts.DryRun {
			fmt.Println("Mode: DRY RUN (no files will be written)")
		}

		if !*confirm && !opts.DryRun {
			fmt.Print("\nProceed? [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(strings.ToLower(input))
			if input != "y" && input != "yes" {
				fmt.Println("Aborted.")
				os.Exit(0)
			}
		}
	}

	start := time.Now()
	summary := processJobs(jobs, workers, opts, logger)

	fmt.Println()
	if err := summary.Write(os.Stdout, time.Since(start)); err != nil {
		fatal(logger, "Failed to write summary", err)
	}

	if _, failed := summary.Counts(); failed > 0 {
		os.Exit(1)
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
