package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// isGitURL checks if the input string looks like a Git repository URL.
// Prioritizes .git suffix or git@ prefix.
func isGitURL(input string) bool {
	if _, err := os.Stat(input); err == nil {
		// A local directory named foo.git is scanned, not cloned.
		return false
	}
	return strings.HasSuffix(input, ".git") || strings.HasPrefix(input, "git@")
}

// cloneGitRepo shallow-clones url into a temporary directory and returns its
// path. The caller removes the directory.
func cloneGitRepo(url string, progress io.Writer, logger *zap.Logger) (string, error) {
	tempDir, err := os.MkdirTemp("", "sizeband-git-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	logger.Info("Cloning Git repository", zap.String("url", url), zap.String("dir", tempDir))

	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      progress,
		Depth:         1,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}

	logger.Debug("Finished cloning", zap.String("url", url))
	return tempDir, nil
}
