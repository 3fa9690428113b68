package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractiveCandidates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{
		"logs/app.log":      1,
		"lists/sizes.csv":   1,
		".secret/other.csv": 1,
		"readme.md":         1,
	})

	got, err := interactiveCandidates(root, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "lists"),
		filepath.Join(root, "lists", "sizes.csv"),
		filepath.Join(root, "logs"),
	}, got)

	got, err = interactiveCandidates(root, true)
	require.NoError(t, err)
	assert.Contains(t, got, filepath.Join(root, ".secret", "other.csv"))
}
