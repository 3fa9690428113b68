package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

// scanOptions are the filters applied while collecting file sizes.
type scanOptions struct {
	Include    []string
	Exclude    []string
	MinSize    int64
	MaxSize    int64
	MaxDepth   int
	ShowHidden bool
	NoIgnore   bool
}

// processLocalPath collects sizes from a single local file or directory.
func processLocalPath(path string, opts scanOptions, logger *zap.Logger) ([]FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	if info.IsDir() {
		logger.Debug("Scanning directory", zap.String("path", path))
		return walkDirectory(path, opts, logger)
	}

	keep, err := shouldKeepFile(info, opts)
	if err != nil {
		return nil, fmt.Errorf("error checking file %s: %w", path, err)
	}
	if !keep {
		logger.Debug("Skipping single file due to filters", zap.String("path", path))
		return nil, nil
	}
	return []FileInfo{{Path: path, Size: info.Size()}}, nil
}

// parsePatterns splits a comma-separated string of patterns into a slice.
func parsePatterns(patterns string) []string {
	if patterns == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// matchesAnyPattern checks if the given name matches any of the provided glob patterns.
func matchesAnyPattern(name string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// walkDirectory recursively walks a directory, respecting filters and the root .gitignore.
func walkDirectory(root string, opts scanOptions, logger *zap.Logger) ([]FileInfo, error) {
	var files []FileInfo
	var ignoreMatcher gitignore.IgnoreMatcher

	if !opts.NoIgnore {
		gitIgnorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				logger.Warn("Could not parse .gitignore", zap.String("path", gitIgnorePath), zap.Error(err))
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == root {
			return nil
		}

		baseName := d.Name()
		isDir := d.IsDir()

		if !opts.ShowHidden && isHidden(baseName) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if ignoreMatcher != nil && ignoreMatcher.Match(path, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		excluded, err := matchesAnyPattern(baseName, opts.Exclude)
		if err != nil {
			return err
		}

		if isDir {
			relPath, _ := filepath.Rel(root, path)
			if excluded || (opts.MaxDepth > 0 && countPathSeparators(relPath) >= opts.MaxDepth-1) {
				return fs.SkipDir
			}
			return nil
		}
		if excluded {
			return nil
		}
		if len(opts.Include) > 0 {
			included, err := matchesAnyPattern(baseName, opts.Include)
			if err != nil {
				return err
			}
			if !included {
				return nil
			}
		}
		// Sockets, devices and the like have no meaningful size.
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("Could not get file info", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !withinSizeLimits(info.Size(), opts) {
			return nil
		}

		files = append(files, FileInfo{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}

	logger.Debug("Scan finished", zap.String("root", root), zap.Int("files", len(files)))
	return files, nil
}

// shouldKeepFile checks if a single file (not in a walk) should be kept based on filters.
func shouldKeepFile(info fs.FileInfo, opts scanOptions) (bool, error) {
	baseName := info.Name()

	if !opts.ShowHidden && isHidden(baseName) {
		return false, nil
	}

	excluded, err := matchesAnyPattern(baseName, opts.Exclude)
	if err != nil {
		return false, fmt.Errorf("exclude pattern error: %w", err)
	}
	if excluded {
		return false, nil
	}

	if len(opts.Include) > 0 {
		included, err := matchesAnyPattern(baseName, opts.Include)
		if err != nil {
			return false, fmt.Errorf("include pattern error: %w", err)
		}
		if !included {
			return false, nil
		}
	}

	return withinSizeLimits(info.Size(), opts), nil
}

func withinSizeLimits(size int64, opts scanOptions) bool {
	if opts.MaxSize > 0 && size > opts.MaxSize {
		return false
	}
	return size >= opts.MinSize
}

// isHidden checks if a file path is hidden (starts with '.').
func isHidden(path string) bool {
	if path == "." || path == ".." {
		return false
	}
	baseName := filepath.Base(path)
	return len(baseName) > 0 && baseName[0] == '.'
}

// countPathSeparators counts the number of path separators in a relative path.
func countPathSeparators(path string) int {
	path = filepath.ToSlash(path)
	if path == "." || path == "" {
		return 0
	}
	return strings.Count(strings.Trim(path, "/"), "/")
}
