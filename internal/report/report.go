// Package report collects per-container results of a glbpack run.
package report

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/blake3"
)

// Digest is the BLAKE3-256 of a container, hex encoded.
func Digest(container []byte) string {
	sum := blake3.Sum256(container)
	return hex.EncodeToString(sum[:])
}

// Result describes one job.
type Result struct {
	Source   string
	Output   string
	Size     int
	Digest   string
	Embedded bool // an image was embedded
	Duration time.Duration
	Err      error
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("✗ %s: %v", r.Source, r.Err)
	}
	image := ""
	if r.Embedded {
		image = " +image"
	}
	return fmt.Sprintf("✓ %s → %s (%s%s) blake3:%s", r.Source, r.Output, humanize.Bytes(uint64(r.Size)), image, shortDigest(r.Digest))
}

func shortDigest(d string) string {
	if len(d) > 16 {
		return d[:16]
	}
	return d
}

// Summary is safe for concurrent use by workers.
type Summary struct {
	mu      sync.Mutex
	results []Result
}

func (s *Summary) Add(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
}

// Results returns the collected results ordered by source.
func (s *Summary) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]Result(nil), s.results...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// Counts returns how many jobs succeeded and failed.
func (s *Summary) Counts() (success, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.results {
		if r.Err != nil {
			failed++
		} else {
			success++
		}
	}
	return success, failed
}

// TotalBytes is the size of all successfully built containers.
func (s *Summary) TotalBytes() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n uint64
	for _, r := range s.results {
		if r.Err == nil {
			n += uint64(r.Size)
		}
	}
	return n
}

// Write prints one line per result followed by the totals.
func (s *Summary) Write(w io.Writer, elapsed time.Duration) error {
	for _, r := range s.Results() {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}
	success, failed := s.Counts()
	_, err := fmt.Fprintf(w, "\nPacked %d container(s), %s in %v\n✓ Succeeded: %d\n✗ Failed: %d\n",
		success, humanize.Bytes(s.TotalBytes()), elapsed.Truncate(time.Millisecond), success, failed)
	return err
}
