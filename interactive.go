package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// interactiveCandidates lists the directories and size lists under root that
// can be picked as inputs.
func interactiveCandidates(root string, showHidden bool) ([]string, error) {
	var candidates []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		if !showHidden && isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || isSizeList(path) {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for inputs: %w", err)
	}
	return candidates, nil
}

// runInteractiveFinder lets the user pick inputs with a fuzzy finder. A nil
// slice with a nil error means the user aborted.
func runInteractiveFinder(showHidden bool) ([]string, error) {
	candidates, err := interactiveCandidates(".", showHidden)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no directories or size lists found to select from")
	}

	idx, err := fuzzyfinder.FindMulti(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select directories or .csv size lists to analyze. Tab to multi-select, Enter to confirm."
			}
			path := candidates[i]
			info, statErr := os.Stat(path)
			if statErr != nil {
				return fmt.Sprintf("Path: %s\nError getting info: %v", path, statErr)
			}
			if info.IsDir() {
				return fmt.Sprintf("Path: %s\nType: Directory", path)
			}
			return fmt.Sprintf("Path: %s\nType: Size list\nSize: %s", path, humanize.IBytes(uint64(info.Size())))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, fmt.Errorf("fuzzy finder error: %w", err)
	}

	selected := make([]string, len(idx))
	for i, index := range idx {
		selected[i] = candidates[index]
	}
	return selected, nil
}
