package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/bbycal/internal/config"
	"github.com/username/bbycal/internal/generator"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	verbose    bool
	logger     = zap.NewNop()
)

// generateOptions are the flags shared by the root and generate commands
type generateOptions struct {
	year   string
	month  string
	format string
	outDir string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &generateOptions{}

	rootCmd := &cobra.Command{
		Use:   "bbycal [year] [month]",
		Short: "Printable monthly work schedule calendar",
		Long: "Generate a monthly work schedule calendar: a heading plus a Sunday-first grid of weeks " +
			"where every day cell carries its date label and blank time slots.",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				cfg.ExpandEnvVars()
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "bbycal.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	addGenerateFlags(rootCmd, opts)

	rootCmd.AddCommand(generateCmd(), previewCmd())

	return rootCmd
}

func addGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	cmd.Flags().StringVarP(&opts.year, "year", "y", "", "Calendar year, e.g. 2025 (prompted when empty)")
	cmd.Flags().StringVarP(&opts.month, "month", "m", "", "Month number 1-12 (prompted when empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: docx or png (overrides config)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Output directory (overrides config)")
}

func generateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [year] [month]",
		Short: "Generate the calendar document for a month",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts)
		},
	}
	addGenerateFlags(cmd, opts)

	return cmd
}

func previewCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "preview [year] [month]",
		Short: "Print the calendar grid to the terminal",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			year, month, err := resolveYearMonth(cmd.InOrStdin(), cmd.OutOrStdout(), args, opts)
			if err != nil {
				return reportInputError(cmd, err)
			}

			gen := generator.NewGenerator(cfg, generator.NewHolidaySource(cfg.Holidays, logger), logger)
			return gen.Preview(year, month, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.year, "year", "y", "", "Calendar year, e.g. 2025 (prompted when empty)")
	cmd.Flags().StringVarP(&opts.month, "month", "m", "", "Month number 1-12 (prompted when empty)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, opts *generateOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	year, month, err := resolveYearMonth(cmd.InOrStdin(), cmd.OutOrStdout(), args, opts)
	if err != nil {
		return reportInputError(cmd, err)
	}

	gen := generator.NewGenerator(cfg, generator.NewHolidaySource(cfg.Holidays, logger), logger)
	result, err := gen.Generate(year, month)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Calendar saved as %s\n", result.Path)
	return nil
}

func loadConfig(opts *generateOptions) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()

	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	return cfg, nil
}

// reportInputError prints validation failures and exits normally
func reportInputError(cmd *cobra.Command, err error) error {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		logger.Debug("Rejected input", zap.Error(err))
		fmt.Fprintln(cmd.OutOrStdout(), inputErr.Message)
		return nil
	}
	return err
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,  // Keep max 3 old log files
		MaxAge:     28, // days
		Compress:   true,
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	if verbose {
		zapLevel = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
