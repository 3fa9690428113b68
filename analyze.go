package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"github.com/jadenpxrk/sizeband/majority"
	"go.uber.org/zap"
)

// inputLoader turns one command-line input into a list of sizes.
type inputLoader func(input string) ([]int64, error)

// newInputLoader dispatches inputs: .csv files are read as size lists,
// everything else goes through scanInput.
func newInputLoader(opts scanOptions, progress io.Writer, logger *zap.Logger) inputLoader {
	return func(input string) ([]int64, error) {
		if isSizeList(input) && !isDir(input) {
			sizes, skipped, err := readSizesFile(input)
			if err != nil {
				return nil, err
			}
			if skipped > 0 {
				logger.Debug("Skipped unparsable records", zap.String("path", input), zap.Int("records", skipped))
			}
			return sizes, nil
		}

		files, err := scanInput(input, opts, progress, logger)
		if err != nil {
			return nil, err
		}
		return sizesOf(files), nil
	}
}

// scanInput collects files from a local path, or from a Git URL cloned into
// a temporary directory. Paths of cloned files are relative to the clone.
func scanInput(input string, opts scanOptions, progress io.Writer, logger *zap.Logger) ([]FileInfo, error) {
	if !isGitURL(input) {
		return processLocalPath(input, opts, logger)
	}

	dir, err := cloneGitRepo(input, progress, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		logger.Debug("Cleaning up temporary directory", zap.String("dir", dir))
		_ = os.RemoveAll(dir)
	}()

	// Skip the clone metadata even when hidden files are shown.
	opts.Exclude = append(slices.Clone(opts.Exclude), ".git")
	files, err := processLocalPath(dir, opts, logger)
	if err != nil {
		return nil, err
	}
	for i := range files {
		if rel, err := filepath.Rel(dir, files[i].Path); err == nil {
			files[i].Path = rel
		}
	}
	return files, nil
}

type analyzeJob struct {
	index int
	input string
}

type analyzeResult struct {
	index  int
	report InputReport
}

// analyzeInputs loads and analyzes every input on a pool of workers and
// returns the reports in input order.
func analyzeInputs(a *majority.Analyzer, inputs []string, threads int, load inputLoader) []InputReport {
	numWorkers := threads
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	numWorkers = min(numWorkers, len(inputs))

	jobs := make(chan analyzeJob, len(inputs))
	results := make(chan analyzeResult, len(inputs))
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go analyzeWorker(a, load, jobs, results, &wg)
	}
	for i, input := range inputs {
		jobs <- analyzeJob{index: i, input: input}
	}
	close(jobs)

	wg.Wait()
	close(results)

	reports := make([]InputReport, len(inputs))
	for res := range results {
		reports[res.index] = res.report
	}
	return reports
}

func analyzeWorker(a *majority.Analyzer, load inputLoader, jobs <-chan analyzeJob, results chan<- analyzeResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for job := range jobs {
		report := InputReport{Input: job.input}
		sizes, err := load(job.input)
		if err != nil {
			report.Err = err
		} else {
			report.Files = len(sizes)
			report.Result, err = a.Analyze(sizes)
			if err != nil {
				report.Err = fmt.Errorf("analyze %s: %w", job.input, err)
			}
		}
		results <- analyzeResult{index: job.index, report: report}
	}
}

// isDir reports whether path is an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
