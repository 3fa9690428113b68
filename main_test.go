package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jadenpxrk/sizeband/majority"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger = zap.NewNop()
	goleak.VerifyTestMain(m)
}

// resetViper restores the defaults after a test changes configuration.
func resetViper(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		viper.Reset()
		setDefaults()
	})
}

func TestAnalysisConfig_Defaults(t *testing.T) {
	resetViper(t)

	cfg, err := analysisConfig()
	require.NoError(t, err)
	assert.Equal(t, majority.DefaultConfig(), cfg)
}

func TestAnalysisConfig_Overrides(t *testing.T) {
	resetViper(t)
	viper.Set("majority_coeff", 0.75)
	viper.Set("objective", "span")
	viper.Set("mass", "files")

	cfg, err := analysisConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.MajorityCoeff)
	assert.Equal(t, majority.ObjectiveSpan, cfg.Objective)
	assert.Equal(t, majority.MassFiles, cfg.Mass)
}

func TestAnalysisConfig_Invalid(t *testing.T) {
	t.Run("coefficient", func(t *testing.T) {
		resetViper(t)
		viper.Set("majority_coeff", 1.2)
		_, err := analysisConfig()
		assert.ErrorIs(t, err, majority.ErrInvalidCoefficient)
	})

	t.Run("objective", func(t *testing.T) {
		resetViper(t)
		viper.Set("objective", "widest")
		_, err := analysisConfig()
		assert.ErrorIs(t, err, majority.ErrUnknownObjective)
	})
}

func TestScanOptionsFromConfig(t *testing.T) {
	resetViper(t)

	opts := scanOptionsFromConfig()
	assert.Equal(t, []string{"node_modules", "target"}, opts.Exclude)

	viper.Set("exclude", "*.tmp, cache")
	viper.Set("include", "*.log")
	viper.Set("max_size", 1024)
	viper.Set("hidden", true)
	opts = scanOptionsFromConfig()
	assert.Equal(t, []string{"*.tmp", "cache"}, opts.Exclude)
	assert.Equal(t, []string{"*.log"}, opts.Include)
	assert.Equal(t, int64(1024), opts.MaxSize)
	assert.True(t, opts.ShowHidden)
}

func TestWriteOutput(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		resetViper(t)
		var buf bytes.Buffer
		require.NoError(t, writeOutput(&buf, "report\n"))
		assert.Equal(t, "report\n", buf.String())
	})

	t.Run("file", func(t *testing.T) {
		resetViper(t)
		path := filepath.Join(t.TempDir(), "out.txt")
		viper.Set("file", path)

		var buf bytes.Buffer
		require.NoError(t, writeOutput(&buf, "report\n"))
		assert.Empty(t, buf.String())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "report\n", string(data))
	})
}

func TestResolveInputs(t *testing.T) {
	inputs, err := resolveInputs(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, inputs)

	inputs, err = resolveInputs([]string{"a", "b.csv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b.csv"}, inputs)
}

func TestRunAnalyze_EndToEnd(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	list := filepath.Join(dir, "sizes.csv")
	require.NoError(t, os.WriteFile(list, []byte("path,size\n"+strings.Repeat("a,1\n", 9)+"b,100\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, runAnalyze(rootCmd, []string{list}))
	assert.Contains(t, out.String(), "Interval: [10:10]")
	assert.Contains(t, out.String(), "Majority of files (91.74% of space) have sizes between 100 B and 100 B")
}

func TestRunAnalyze_AllInputsFail(t *testing.T) {
	resetViper(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	err := runAnalyze(rootCmd, []string{filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.Contains(t, out.String(), "Inputs failed: 1")
}

func TestAllFailed(t *testing.T) {
	assert.NoError(t, allFailed(nil))
	assert.NoError(t, allFailed([]InputReport{{Input: "ok"}, {Input: "bad", Err: assert.AnError}}))
	assert.EqualError(t, allFailed([]InputReport{{Input: "bad", Err: assert.AnError}}), "all 1 inputs failed")
}
