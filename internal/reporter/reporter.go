// Package reporter walks two run directories and prints a comparison table
// for every benchmark they share.
package reporter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"benchdiff/internal/compare"
	"benchdiff/internal/output"
	"benchdiff/internal/summary"
	"benchdiff/internal/threshold"
)

// ErrMissingRoot indicates a run root directory does not exist or is not a
// directory.
var ErrMissingRoot = errors.New("run directory does not exist")

// Options configure a comparison run.
type Options struct {
	OldRoot     string
	NewRoot     string
	SummaryFile string // defaults to summary.DefaultFileName
	Workers     int    // defaults to 1 (sequential)
	KeepGoing   bool   // continue past bad benchmarks, warn, exit non-zero
	Colors      bool
	JSONOutput  bool
	HTMLPath    string
	Thresholds  []threshold.Threshold
	Stdout      io.Writer
	Stderr      io.Writer
}

// Reporter orchestrates loading, comparing, and rendering.
type Reporter struct {
	opts Options
}

// New creates a Reporter, applying option defaults.
func New(opts Options) *Reporter {
	if opts.SummaryFile == "" {
		opts.SummaryFile = summary.DefaultFileName
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Reporter{opts: opts}
}

// benchResult is the outcome of comparing one benchmark subdirectory.
type benchResult struct {
	name       string
	comparison output.Comparison
	thresholds []threshold.Result
	err        error
}

// Run compares every benchmark subdirectory of the old root against its
// counterpart under the new root and renders the results. Benchmarks are
// processed by a bounded worker pool but always rendered in sorted name
// order.
func (r *Reporter) Run() error {
	if err := checkRoot(r.opts.OldRoot); err != nil {
		return err
	}
	if err := checkRoot(r.opts.NewRoot); err != nil {
		return err
	}

	names, err := benchmarkNames(r.opts.OldRoot)
	if err != nil {
		return err
	}

	results := r.compareAll(names)
	return r.render(results)
}

// compareAll runs the per-benchmark comparisons, fanning out over the
// configured number of workers. os.ReadDir order is preserved in the result
// slice regardless of completion order.
func (r *Reporter) compareAll(names []string) []benchResult {
	results := make([]benchResult, len(names))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range r.opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.compareOne(names[i])
			}
		}()
	}

	for i := range names {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (r *Reporter) compareOne(name string) benchResult {
	result := benchResult{name: name}

	oldSummary, err := summary.Load(filepath.Join(r.opts.OldRoot, name), r.opts.SummaryFile)
	if err != nil {
		result.err = fmt.Errorf("benchmark %s: %w", name, err)
		return result
	}
	newSummary, err := summary.Load(filepath.Join(r.opts.NewRoot, name), r.opts.SummaryFile)
	if err != nil {
		result.err = fmt.Errorf("benchmark %s: %w", name, err)
		return result
	}

	cmp := compare.New(oldSummary, newSummary)

	result.comparison, err = output.BuildComparison(name, cmp)
	if err != nil {
		result.err = fmt.Errorf("benchmark %s: %w", name, err)
		return result
	}

	evaluator := threshold.NewEvaluator(r.opts.Thresholds)
	result.thresholds, err = evaluator.Evaluate(name, cmp)
	if err != nil {
		result.err = fmt.Errorf("benchmark %s: %w", name, err)
	}
	return result
}

// render walks results in order and produces the configured outputs. Without
// KeepGoing the first failed benchmark aborts after rendering those before
// it.
func (r *Reporter) render(results []benchResult) error {
	var comps []output.Comparison
	var thresholdResults []threshold.Result
	failed := 0

	for _, result := range results {
		if result.err != nil {
			if !r.opts.KeepGoing {
				return result.err
			}
			failed++
			fmt.Fprintf(r.opts.Stderr, "warning: %v\n", result.err)
			continue
		}

		comps = append(comps, result.comparison)
		thresholdResults = append(thresholdResults, result.thresholds...)

		if !r.opts.JSONOutput {
			output.PrintComparison(r.opts.Stdout, result.comparison, r.opts.Colors)
			fmt.Fprintln(r.opts.Stdout)
		}
	}

	if r.opts.JSONOutput {
		if err := output.PrintJSONReport(r.opts.Stdout, comps); err != nil {
			return err
		}
	}

	thresholdsFailed := r.printThresholds(thresholdResults)

	if r.opts.HTMLPath != "" {
		if err := r.writeHTML(comps, thresholdResults); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d benchmarks failed to compare", failed, len(results))
	}
	if thresholdsFailed > 0 {
		return fmt.Errorf("%d thresholds failed", thresholdsFailed)
	}
	return nil
}

func (r *Reporter) printThresholds(results []threshold.Result) int {
	if len(results) == 0 {
		return 0
	}

	failed := 0
	if !r.opts.JSONOutput {
		fmt.Fprintln(r.opts.Stdout, "Thresholds:")
	}
	for _, tr := range results {
		if !tr.Pass {
			failed++
		}
		if !r.opts.JSONOutput {
			fmt.Fprintf(r.opts.Stdout, "  %s\n", tr.Message)
		}
	}
	return failed
}

func (r *Reporter) writeHTML(comps []output.Comparison, thresholdResults []threshold.Result) error {
	f, err := os.Create(r.opts.HTMLPath)
	if err != nil {
		return fmt.Errorf("create HTML report: %w", err)
	}
	defer f.Close()

	if err := output.GenerateHTMLReport(f, r.opts.OldRoot, r.opts.NewRoot, comps, thresholdResults); err != nil {
		return err
	}
	return f.Close()
}

func checkRoot(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingRoot, path)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrMissingRoot, path)
	}
	return nil
}

// benchmarkNames lists the subdirectories of root. os.ReadDir returns entries
// sorted by name, which fixes the rendering order.
func benchmarkNames(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read run directory %s: %w", root, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
