package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/jadenpxrk/sizeband/majority"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile         string
	verbose         bool
	interactiveMode bool

	logger *zap.Logger
)

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "sizeband [PATHS...]",
	Short: "sizeband finds the narrowest band of file sizes holding most of a collection.",
	Long: `sizeband reads file sizes from directories, Git repositories or
path,size CSV lists and finds the smallest interval of sorted sizes that
still accounts for a majority (90% by default) of the bytes or of the files.`,
	Version:      version,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runAnalyze,
}

var collectCmd = &cobra.Command{
	Use:   "collect [PATHS...]",
	Short: "Write the sizes of scanned files as a path,size CSV list",
	Args:  cobra.ArbitraryArgs,
	RunE:  runCollect,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputs, err := resolveInputs(args)
	if err != nil || inputs == nil {
		return err
	}

	cfg, err := analysisConfig()
	if err != nil {
		return err
	}
	analyzer, err := majority.New(cfg)
	if err != nil {
		return err
	}
	logger.Debug("Analyzing inputs",
		zap.Strings("inputs", inputs),
		zap.Float64("majority_coeff", cfg.MajorityCoeff),
		zap.String("objective", string(cfg.Objective)),
		zap.String("mass", string(cfg.Mass)))

	load := newInputLoader(scanOptionsFromConfig(), cmd.ErrOrStderr(), logger)
	reports := analyzeInputs(analyzer, inputs, viper.GetInt("threads"), load)

	for _, r := range reports {
		if r.Err != nil {
			logger.Error("Failed to analyze input", zap.String("input", r.Input), zap.Error(r.Err))
		}
	}

	if pdfPath := viper.GetString("pdf"); pdfPath != "" {
		if err := generatePDF(reports, pdfPath, logger); err != nil {
			return err
		}
	} else {
		out, err := render(viper.GetString("format"), reports)
		if err != nil {
			return err
		}
		if err := writeOutput(cmd.OutOrStdout(), out); err != nil {
			return err
		}
	}

	return allFailed(reports)
}

// allFailed returns an error when there were inputs and none of them could be
// analyzed.
func allFailed(reports []InputReport) error {
	s := summarize(reports)
	if s.TotalInputs > 0 && s.FailedInputs == s.TotalInputs {
		return fmt.Errorf("all %d inputs failed", s.FailedInputs)
	}
	return nil
}

func runCollect(cmd *cobra.Command, args []string) error {
	inputs, err := resolveInputs(args)
	if err != nil || inputs == nil {
		return err
	}

	opts := scanOptionsFromConfig()
	var files []FileInfo
	for _, input := range inputs {
		found, err := scanInput(input, opts, cmd.ErrOrStderr(), logger)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", input, err)
		}
		files = append(files, found...)
	}

	var builder strings.Builder
	if err := writeSizes(&builder, files); err != nil {
		return err
	}
	logger.Debug("Collected sizes", zap.Int("files", len(files)))
	return writeOutput(cmd.OutOrStdout(), builder.String())
}

// resolveInputs returns the paths to process: the interactive selection, the
// arguments, or the current directory. A nil slice and nil error mean the
// user aborted the interactive picker.
func resolveInputs(args []string) ([]string, error) {
	if interactiveMode {
		inputs, err := runInteractiveFinder(viper.GetBool("hidden"))
		if err != nil {
			return nil, fmt.Errorf("interactive mode error: %w", err)
		}
		if inputs == nil {
			logger.Info("Interactive selection aborted")
		}
		return inputs, nil
	}
	if len(args) == 0 {
		return []string{"."}, nil
	}
	return args, nil
}

// writeOutput sends out to the configured file, the clipboard, or stdout.
func writeOutput(stdout io.Writer, out string) error {
	if outputFile := viper.GetString("file"); outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(out), 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", outputFile, err)
		}
		logger.Info("Output saved", zap.String("path", outputFile))
		return nil
	}
	if viper.GetBool("clipboard") {
		if err := clipboard.WriteAll(out); err != nil {
			logger.Warn("Error writing to clipboard, printing instead", zap.Error(err))
		} else {
			logger.Info("Output copied to clipboard")
			return nil
		}
	}
	_, err := fmt.Fprint(stdout, out)
	return err
}

// analysisConfig builds the analysis options from defaults, config file,
// environment and flags.
func analysisConfig() (majority.Config, error) {
	objective, err := majority.ParseObjective(viper.GetString("objective"))
	if err != nil {
		return majority.Config{}, err
	}
	mass, err := majority.ParseMass(viper.GetString("mass"))
	if err != nil {
		return majority.Config{}, err
	}
	cfg := majority.Config{
		MajorityCoeff: viper.GetFloat64("majority_coeff"),
		Objective:     objective,
		Mass:          mass,
	}
	return cfg, cfg.Validate()
}

// scanOptionsFromConfig gathers the scan filters.
func scanOptionsFromConfig() scanOptions {
	return scanOptions{
		Include:    parsePatterns(viper.GetString("include")),
		Exclude:    excludePatterns(),
		MinSize:    viper.GetInt64("min_size"),
		MaxSize:    viper.GetInt64("max_size"),
		MaxDepth:   viper.GetInt("max_depth"),
		ShowHidden: viper.GetBool("hidden"),
		NoIgnore:   viper.GetBool("no_ignore"),
	}
}

// excludePatterns prefers the --exclude flag and falls back to
// default_excludes from the config file.
func excludePatterns() []string {
	if s := viper.GetString("exclude"); s != "" {
		return parsePatterns(s)
	}
	return viper.GetStringSlice("default_excludes")
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/sizeband/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&interactiveMode, "interactive", false, "Pick inputs with an interactive finder")

	// Analysis
	rootCmd.Flags().Float64P("coeff", "k", majority.DefaultCoefficient, "Majority share the interval must hold, in (0, 1]")
	viper.BindPFlag("majority_coeff", rootCmd.Flags().Lookup("coeff"))
	rootCmd.Flags().String("objective", string(majority.ObjectiveCount), "What to minimise: count (fewest files) or span (narrowest size band)")
	viper.BindPFlag("objective", rootCmd.Flags().Lookup("objective"))
	rootCmd.Flags().String("mass", string(majority.MassBytes), "How the majority is measured: bytes or files")
	viper.BindPFlag("mass", rootCmd.Flags().Lookup("mass"))
	rootCmd.Flags().IntP("threads", "t", 0, "Number of inputs analyzed in parallel (0 for auto)")
	viper.BindPFlag("threads", rootCmd.Flags().Lookup("threads"))

	// Output
	rootCmd.Flags().StringP("format", "o", formatText, "Output format: text, yaml, or csv")
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	rootCmd.Flags().String("pdf", "", "Save the report as PDF")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))
	rootCmd.PersistentFlags().StringP("file", "f", "", "Save output to specified file")
	viper.BindPFlag("file", rootCmd.PersistentFlags().Lookup("file"))
	rootCmd.PersistentFlags().BoolP("clipboard", "c", false, "Copy output to clipboard")
	viper.BindPFlag("clipboard", rootCmd.PersistentFlags().Lookup("clipboard"))

	// Scan filters
	rootCmd.PersistentFlags().StringP("include", "i", "", "Only count files matching these patterns (comma-separated, e.g. *.log,*.bin)")
	viper.BindPFlag("include", rootCmd.PersistentFlags().Lookup("include"))
	rootCmd.PersistentFlags().StringP("exclude", "e", "", "Skip files and directories matching these patterns (comma-separated)")
	viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	rootCmd.PersistentFlags().Int64("min-size", 0, "Minimum file size in bytes")
	viper.BindPFlag("min_size", rootCmd.PersistentFlags().Lookup("min-size"))
	rootCmd.PersistentFlags().Int64P("max-size", "s", 0, "Maximum file size in bytes (0 for no limit)")
	viper.BindPFlag("max_size", rootCmd.PersistentFlags().Lookup("max-size"))
	rootCmd.PersistentFlags().Int("max-depth", 0, "Maximum directory depth to traverse (0 for no limit)")
	viper.BindPFlag("max_depth", rootCmd.PersistentFlags().Lookup("max-depth"))
	rootCmd.PersistentFlags().BoolP("hidden", "H", false, "Include hidden files and directories")
	viper.BindPFlag("hidden", rootCmd.PersistentFlags().Lookup("hidden"))
	rootCmd.PersistentFlags().Bool("no-ignore", false, "Don't respect .gitignore files")
	viper.BindPFlag("no_ignore", rootCmd.PersistentFlags().Lookup("no-ignore"))

	setDefaults()
	rootCmd.AddCommand(collectCmd)
}

// setDefaults registers the values used when neither flags, environment nor
// config file set a key.
func setDefaults() {
	viper.SetDefault("majority_coeff", majority.DefaultCoefficient)
	viper.SetDefault("objective", string(majority.ObjectiveCount))
	viper.SetDefault("mass", string(majority.MassBytes))
	viper.SetDefault("format", formatText)
	viper.SetDefault("threads", 0)
	viper.SetDefault("max_depth", 0)
	viper.SetDefault("default_excludes", []string{"node_modules", "target"})
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "sizeband"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("SIZEBAND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // SIZEBAND_MAJORITY_COEFF and friends

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
