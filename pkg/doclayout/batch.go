package doclayout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
	"golang.org/x/sync/errgroup"
)

// BatchOptions bounds a batch run.
type BatchOptions struct {
	// Workers is the number of documents analysed at once (0 means one per CPU).
	Workers int
	// Timeout abandons a document after this long (0 means no limit).
	Timeout time.Duration
}

// AnalyzeBatch analyses every path independently. A failure or timeout on
// one document is recorded in its result and never stops the others.
// Results keep the order of paths.
func AnalyzeBatch(ctx context.Context, paths []string, opts Options, bopts BatchOptions) []models.BatchResult {
	results := make([]models.BatchResult, len(paths))

	workers := bopts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = analyzeOne(ctx, path, opts, bopts.Timeout)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// analyzeFile is the per-document analysis run by batch workers.
var analyzeFile = Analyze

type analysisOutcome struct {
	report *models.Report
	err    error
}

// analyzeOne runs one analysis, abandoning it when ctx ends or the timeout
// elapses. An abandoned analysis finishes in the background.
func analyzeOne(ctx context.Context, path string, opts Options, timeout time.Duration) models.BatchResult {
	log := opts.Logger.WithValues("file", path)
	result := models.BatchResult{Path: path}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan analysisOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- analysisOutcome{err: NewAnalysisError(path, "analyze", fmt.Errorf("panic: %v", r))}
			}
		}()
		report, err := analyzeFile(path, opts)
		done <- analysisOutcome{report: report, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			log.Error(out.err, "analysis failed")
			result.Error = out.err.Error()
			return result
		}
		log.V(1).Info("analysed", "pages", len(out.report.Pages), "issues", len(out.report.AllIssues()))
		result.Report = out.report
	case <-ctx.Done():
		err := NewAnalysisError(path, "analyze", fmt.Errorf("%w: %w", ErrTimeout, ctx.Err()))
		log.Error(err, "analysis abandoned")
		result.Error = err.Error()
	}

	return result
}

// CollectInputs expands a directory, glob pattern or single file into a
// sorted list of DOCX paths. Word lock files (~$name.docx) are skipped.
func CollectInputs(arg string) ([]string, error) {
	var candidates []string

	info, err := os.Stat(arg)
	switch {
	case err == nil && info.IsDir():
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() {
				candidates = append(candidates, filepath.Join(arg, e.Name()))
			}
		}
	case err == nil:
		candidates = []string{arg}
	default:
		matches, gerr := filepath.Glob(arg)
		if gerr != nil {
			return nil, gerr
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, arg)
		}
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && !fi.IsDir() {
				candidates = append(candidates, m)
			}
		}
	}

	var paths []string
	for _, p := range candidates {
		base := filepath.Base(p)
		if strings.HasPrefix(base, "~$") || !strings.EqualFold(filepath.Ext(base), ".docx") {
			continue
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}
