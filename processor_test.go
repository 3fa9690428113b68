package main

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeTree creates files with the given sizes under root.
func writeTree(t *testing.T, root string, files map[string]int) {
	t.Helper()
	for rel, size := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	}
}

func relPaths(t *testing.T, root string, files []FileInfo) []string {
	t.Helper()
	var out []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestWalkDirectory_Filters(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{
		"a.txt":             10,
		"big.bin":           5000,
		".hidden":           3,
		".cache/blob":       7,
		"sub/b.log":         20,
		"sub/deep/c.log":    30,
		"node_modules/x.js": 40,
		"ignored/skip.me":   50,
		"notes.tmp":         60,
		".gitignore":        0,
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("ignored/\n*.tmp\n"), 0644))

	logger := zap.NewNop()

	t.Run("defaults", func(t *testing.T) {
		files, err := walkDirectory(root, scanOptions{Exclude: []string{"node_modules"}}, logger)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "big.bin", "sub/b.log", "sub/deep/c.log"}, relPaths(t, root, files))
	})

	t.Run("hidden and no ignore", func(t *testing.T) {
		files, err := walkDirectory(root, scanOptions{ShowHidden: true, NoIgnore: true}, logger)
		require.NoError(t, err)
		assert.Equal(t, []string{
			".cache/blob", ".gitignore", ".hidden", "a.txt", "big.bin",
			"ignored/skip.me", "node_modules/x.js", "notes.tmp", "sub/b.log", "sub/deep/c.log",
		}, relPaths(t, root, files))
	})

	t.Run("include and size limits", func(t *testing.T) {
		files, err := walkDirectory(root, scanOptions{Include: []string{"*.log"}, MinSize: 25}, logger)
		require.NoError(t, err)
		assert.Equal(t, []string{"sub/deep/c.log"}, relPaths(t, root, files))

		files, err = walkDirectory(root, scanOptions{MaxSize: 100, Exclude: []string{"node_modules"}}, logger)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "sub/b.log", "sub/deep/c.log"}, relPaths(t, root, files))
	})

	t.Run("max depth", func(t *testing.T) {
		files, err := walkDirectory(root, scanOptions{MaxDepth: 1}, logger)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "big.bin"}, relPaths(t, root, files))

		files, err = walkDirectory(root, scanOptions{MaxDepth: 2, Exclude: []string{"node_modules"}}, logger)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "big.bin", "sub/b.log"}, relPaths(t, root, files))
	})

	t.Run("sizes are recorded", func(t *testing.T) {
		files, err := walkDirectory(root, scanOptions{Include: []string{"big.bin"}}, logger)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, int64(5000), files[0].Size)
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := walkDirectory(root, scanOptions{Exclude: []string{"["}}, logger)
		assert.Error(t, err)
	})
}

func TestProcessLocalPath_SingleFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{"one.dat": 42, ".dot": 1})
	logger := zap.NewNop()

	files, err := processLocalPath(filepath.Join(root, "one.dat"), scanOptions{}, logger)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, int64(42), files[0].Size)

	files, err = processLocalPath(filepath.Join(root, "one.dat"), scanOptions{MaxSize: 10}, logger)
	require.NoError(t, err)
	assert.Empty(t, files)

	files, err = processLocalPath(filepath.Join(root, ".dot"), scanOptions{}, logger)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = processLocalPath(filepath.Join(root, "missing"), scanOptions{}, logger)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParsePatterns(t *testing.T) {
	assert.Nil(t, parsePatterns(""))
	assert.Equal(t, []string{"*.go", "*.rs"}, parsePatterns("*.go, *.rs,"))
}

func TestIsHidden(t *testing.T) {
	assert.True(t, isHidden(".git"))
	assert.True(t, isHidden("dir/.env"))
	assert.False(t, isHidden("."))
	assert.False(t, isHidden(".."))
	assert.False(t, isHidden("main.go"))
}

func TestCountPathSeparators(t *testing.T) {
	assert.Equal(t, 0, countPathSeparators("."))
	assert.Equal(t, 0, countPathSeparators("a"))
	assert.Equal(t, 2, countPathSeparators("a/b/c"))
	assert.Equal(t, 1, countPathSeparators("a/b/"))
}

func TestWalkDirectory_GitIgnoreRelativeRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]int{
		"keep.bin":       4,
		"build/out.o":    8,
		"cache/tmp.tmp":  16,
		"cache/data.bin": 32,
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("build/\n*.tmp\n"), 0644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	files, err := walkDirectory(".", scanOptions{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"cache/data.bin", "keep.bin"}, relPaths(t, ".", files))
}
