package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	mdembed "github.com/alnah/go-mdembed"
	"github.com/alnah/go-mdembed/internal/fileutil"
	"github.com/alnah/go-mdembed/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// timeoutPrefix starts the diagnostic message of a timed out oEmbed request.
const timeoutPrefix = "oEmbed URL timeout: "

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrWriteHTML       = errors.New("failed to write HTML file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input mdembed.Input) (*mdembed.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*mdembed.Converter)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	title    string
	fragment bool
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath   string
	OutputPath  string
	Diagnostics []mdembed.Diagnostic
	Err         error
	Duration    time.Duration
}

// convertBatch processes files concurrently with a fixed number of workers
// sharing one converter.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, workers int, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < 1 {
		concurrency = 1
	}
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
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrCreateOutputDir, err))
	}

	convResult, err := conv.Convert(ctx, mdembed.Input{
		Markdown: string(content),
		Title:    resolveTitle(params.title, string(content), f.InputPath),
		Fragment: params.fragment,
	})
	if err != nil {
		return fail(err)
	}
	result.Diagnostics = convResult.Diagnostics

	if err := fileutil.WriteFileAtomic(f.OutputPath, convResult.HTML, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteHTML, err))
	}

	result.Duration = time.Since(start)
	return result
}

// resolveTitle picks the document title: explicit value, first H1, then the
// file name without extension.
func resolveTitle(explicit, markdown, inputPath string) string {
	if explicit != "" {
		return explicit
	}
	if h := extractFirstHeading(markdown); h != "" {
		return h
	}
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded   int
	Failed      int
	Diagnostics int
	Timeouts    int
}

// countResults tallies succeeded and failed conversions and their diagnostics.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Diagnostics += len(r.Diagnostics)
		for _, d := range r.Diagnostics {
			if strings.HasPrefix(d.Message, timeoutPrefix) {
				summary.Timeouts++
			}
		}
	}
	return summary
}

// reportResults logs every result and returns an error wrapping the first
// failure, so the exit code follows its category.
func reportResults(results []ConversionResult, f commonFlags, env *Environment) error {
	summary := countResults(results)
	logger := env.Logger

	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			logger.Error("conversion failed", "file", r.InputPath, "err", r.Err)
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}

		for _, d := range r.Diagnostics {
			logger.Warn("embed fell back to link", "file", r.InputPath, "at", fmt.Sprintf("%d:%d", d.Line, d.Column), "reason", d.Message)
		}

		if f.quiet {
			continue
		}
		if f.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if summary.Diagnostics > 0 {
		if hint := hints.ForOEmbedFailures(summary.Timeouts); hint != "" {
			logger.Warn(strings.TrimSpace(hint))
		}
	}

	if len(results) > 1 {
		logger.Info("done", "succeeded", summary.Succeeded, "failed", summary.Failed, "fallbacks", summary.Diagnostics)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d conversion(s) failed: %w", summary.Failed, firstErr)
	}
	return nil
}
