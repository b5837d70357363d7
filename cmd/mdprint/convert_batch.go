package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	mdprint "github.com/alnah/go-mdprint"
	"github.com/alnah/go-mdprint/internal/fileutil"
)

// Sentinel errors for batch operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrReadThemeCSS   = errors.New("failed to read theme stylesheet")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrTerminalOutput = errors.New("refusing to write PDF to a terminal")
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	theme     string
	themeName string
	themeCSS  string
	page      *mdprint.PageSettings
	pdf       bool
	stdout    io.Writer
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Warnings   []error
	Err        error
	Duration   time.Duration
}

// batchError reports failed conversions. It unwraps to the first failure so
// the exit code reflects its cause.
type batchError struct {
	failed int
	total  int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error {
	return e.first
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark the jobs this worker takes as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("initializing converter: %w", err),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrReadMarkdown, err))
	}

	notePath, err := filepath.Abs(f.InputPath)
	if err != nil {
		notePath = f.InputPath
	}

	res, err := conv.Convert(ctx, mdprint.Input{
		Markdown:  string(content),
		Path:      notePath,
		Theme:     params.theme,
		ThemeName: params.themeName,
		ThemeCSS:  params.themeCSS,
		Page:      params.page,
		PDF:       params.pdf,
	})
	if err != nil {
		return fail(err)
	}
	result.Warnings = res.Warnings

	data := []byte(res.HTML)
	if params.pdf {
		data = res.PDF
	}

	if f.OutputPath == "" {
		if _, err := params.stdout.Write(data); err != nil {
			return fail(fmt.Errorf("%w: %w", ErrWriteOutput, err))
		}
	} else if err := fileutil.WriteOutput(f.OutputPath, data); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// firstError returns the first failure in results.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printResults reports conversions and returns the failure count. Status
// lines go to stdout unless the document itself went there.
func printResults(results []ConversionResult, flags commonFlags, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err, env))
			continue
		}

		if flags.quiet {
			continue
		}
		for _, w := range r.Warnings {
			fmt.Fprintf(env.Stderr, "warning: %s: %v%s\n", r.InputPath, w, hintFor(w, env))
		}
		if r.OutputPath == "" {
			continue
		}

		if flags.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !flags.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
