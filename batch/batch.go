// © 2025 The licensehdr authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package batch applies a header rewrite across many files concurrently.
//
// Each file is processed independently: the rewrite depends only on the
// read-only header spec and keep rules plus the file's own content, so
// files fan out to a bounded pool of workers with no ordering guarantees
// between them.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"licensehdr/header"
	"licensehdr/logger"
	"licensehdr/syncx"
	"licensehdr/textfile"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/term"
)

// Status classifies the outcome of processing one file.
type Status int

const (
	// StatusCompliant means the file already carries the expected header.
	StatusCompliant Status = iota
	// StatusUpdated means the file was rewritten (or would be, in dry-run mode).
	StatusUpdated
	// StatusIgnored means the file matched an ignore pattern.
	StatusIgnored
	// StatusError means the file could not be read or written.
	StatusError
)

// Result is the outcome of processing a single file.
type Result struct {
	Path   string
	Status Status
	Err    error
}

// Processor applies one header spec to a batch of files. Its fields are
// read-only during Process.
type Processor struct {
	Header header.Spec
	Keep   header.KeepRules

	// Ignore lists doublestar patterns; matching files are skipped.
	// Patterns are matched against the slash form of each path.
	Ignore []string

	// Workers bounds the number of files processed in parallel.
	// Zero or negative means GOMAXPROCS.
	Workers int

	// DryRun reports files that would change without rewriting them.
	DryRun bool

	// Progress, if non-nil, receives a one-line progress message per
	// file, clipped to the terminal width when it is a terminal.
	Progress io.Writer
}

// Process runs the batch and returns a summary of per-file results.
func (p *Processor) Process(ctx context.Context, paths []string) *Summary {
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	sum := &Summary{}
	lwg := syncx.NewLimitedWaitGroup(workers)
	for i, path := range paths {
		p.printProgress(i+1, len(paths), path)
		lwg.Go(func() {
			sum.results.Store(path, p.processFile(ctx, path))
		})
	}
	lwg.Wait()
	return sum
}

func (p *Processor) processFile(ctx context.Context, path string) Result {
	if pat, ok := p.ignored(path); ok {
		logger.Debug(ctx, "ignoring file",
			slog.String("path", path),
			slog.String("pattern", pat))
		return Result{Path: path, Status: StatusIgnored}
	}

	f, err := textfile.Read(path)
	if err != nil {
		logger.Error(ctx, "skipping unreadable file",
			slog.String("path", path),
			slog.Any("error", err))
		return Result{Path: path, Status: StatusError, Err: err}
	}

	res := header.Rewrite(f.Lines(), p.Header, p.Keep)
	if !res.Changed {
		logger.Debug(ctx, "file is compliant", slog.String("path", path))
		return Result{Path: path, Status: StatusCompliant}
	}

	if p.DryRun {
		logger.Info(ctx, "would update license header", slog.String("path", path))
		return Result{Path: path, Status: StatusUpdated}
	}

	f.SetLines(res.Lines)
	if err := textfile.Write(path, f); err != nil {
		logger.Error(ctx, "failed to write file",
			slog.String("path", path),
			slog.Any("error", err))
		return Result{Path: path, Status: StatusError, Err: err}
	}
	logger.Info(ctx, "updated license header", slog.String("path", path))
	return Result{Path: path, Status: StatusUpdated}
}

func (p *Processor) ignored(path string) (pattern string, ok bool) {
	slashed := filepath.ToSlash(path)
	for _, pat := range p.Ignore {
		if match, err := doublestar.Match(pat, slashed); err == nil && match {
			return pat, true
		}
	}
	return "", false
}

func (p *Processor) printProgress(current, total int, path string) {
	if p.Progress == nil {
		return
	}
	width := 0
	if f, ok := p.Progress.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}
	fmt.Fprintln(p.Progress, progressMessage(current, total, path, width))
}

// progressMessage renders "[current/total] Checking path", shortening
// the path so the message fits into width columns. The counter prefix is
// never shortened. A width of zero or less disables shortening.
func progressMessage(current, total int, path string, width int) string {
	prefix := fmt.Sprintf("[%d/%d] Checking ", current, total)
	msg := prefix + path
	if width <= 0 || len(msg) <= width {
		return msg
	}
	room := width - len(prefix)
	switch {
	case room <= 0:
		return prefix
	case room <= 3:
		return prefix + path[:room]
	default:
		return prefix + path[:room-3] + "..."
	}
}

// Summary aggregates per-file results of a batch run.
type Summary struct {
	results syncx.Map[string, Result]
}

// Result returns the result for path, if the path was part of the batch.
func (s *Summary) Result(path string) (Result, bool) {
	return s.results.Load(path)
}

// Paths returns the sorted paths that ended with the given status.
func (s *Summary) Paths(st Status) []string {
	var paths []string
	s.results.Range(func(path string, r Result) bool {
		if r.Status == st {
			paths = append(paths, path)
		}
		return true
	})
	slices.Sort(paths)
	return paths
}

// Updated returns the sorted paths that were (or would be) rewritten.
func (s *Summary) Updated() []string { return s.Paths(StatusUpdated) }

// Errors returns the sorted paths that failed to process.
func (s *Summary) Errors() []string { return s.Paths(StatusError) }

// ExitCode maps the batch outcome to a process exit status: 0 when all
// files are compliant, 1 when any file changed, 2 when any file failed.
// Failure wins over change.
func (s *Summary) ExitCode() int {
	code := 0
	s.results.Range(func(_ string, r Result) bool {
		switch r.Status {
		case StatusUpdated:
			if code == 0 {
				code = 1
			}
		case StatusError:
			code = 2
			return false
		}
		return true
	})
	return code
}
