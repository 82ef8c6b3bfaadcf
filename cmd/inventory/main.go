package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aerovista-us/echovalentine/internal/classifier"
	"github.com/aerovista-us/echovalentine/internal/config"
	"github.com/aerovista-us/echovalentine/internal/core"
	"github.com/aerovista-us/echovalentine/internal/report"
	"github.com/aerovista-us/echovalentine/internal/storage"
	"github.com/aerovista-us/echovalentine/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "0.1.0"
	logger  *zap.Logger
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inventory - directory inventory scanner",
		Long: `Walks a directory tree, classifies and hashes every file, detects
application folders and writes a deduplicated CSV inventory.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()
			cmd.Help()
		},
	}

	// Global verbose flag
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(rulesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the development logger in verbose mode and an error-only
// JSON logger otherwise
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	return cfg.Build()
}

// scanOptions holds the scan command flags
type scanOptions struct {
	configFile   string
	quiet        bool
	workers      int
	exclude      []string
	outputDir    string
	format       string
	compress     bool
	rulesFile    string
	hash         string
	metricsFile  string
	s3Bucket     string
	s3Prefix     string
	otelEndpoint string
}

// apply overrides loaded configuration with the flags that were set
func (o *scanOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("quiet") {
		cfg.Quiet = o.quiet
	}
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	if len(o.exclude) > 0 {
		cfg.Exclude = o.exclude
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}
	if o.format != "" {
		cfg.ReportFormat = o.format
	}
	if flags.Changed("compress") {
		cfg.Compress = o.compress
	}
	if o.rulesFile != "" {
		cfg.RulesFile = o.rulesFile
	}
	if o.hash != "" {
		cfg.Hash = o.hash
	}
	if o.metricsFile != "" {
		cfg.MetricsFile = o.metricsFile
	}
	if o.s3Bucket != "" {
		cfg.S3.Bucket = o.s3Bucket
	}
	if o.s3Prefix != "" {
		cfg.S3.Prefix = o.s3Prefix
	}
	if o.otelEndpoint != "" {
		cfg.Telemetry.Endpoint = o.otelEndpoint
	}
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Inventory a directory tree",
		Long:  `Recursively inventory a directory and write a CSV report into the configured output directory.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(verbose)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
				return err
			}
			defer logger.Sync()

			// Load configuration
			cfg, err := config.LoadConfig(opts.configFile)
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}
			opts.apply(cmd, cfg)
			if len(args) > 0 {
				cfg.Path = args[0]
			}
			if err := cfg.Validate(); err != nil {
				printError("Invalid parameter", err)
				return err
			}

			policy, err := classifier.LoadPolicy(cfg.RulesFile)
			if err != nil {
				logger.Error("Failed to load rules", zap.Error(err))
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shutdown, err := telemetry.Init(ctx, cfg.Telemetry.ServiceName, version, cfg.Telemetry.Endpoint)
			if err != nil {
				logger.Error("Failed to initialize telemetry", zap.Error(err))
				return err
			}
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					logger.Warn("Telemetry shutdown failed", zap.Error(err))
				}
			}()

			scanner, err := core.NewScanner(cfg, policy, logger)
			if err != nil {
				return err
			}

			if cfg.S3.Bucket != "" {
				publisher, err := storage.NewPublisher(ctx, cfg.S3, logger)
				if err != nil {
					logger.Error("Failed to initialize S3 publisher", zap.Error(err))
					return err
				}
				scanner.SetPublisher(publisher)
			}

			var console *consoleProgress
			if !cfg.Quiet {
				printBanner(cfg.Path, cfg.GetWorkers())
				console = newConsoleProgress(os.Stdout)
				scanner.SetProgressCallback(console.Update)
			}

			results, err := scanner.Scan(ctx, cfg.Path)
			if console != nil {
				console.Done()
			}
			if errors.Is(err, report.ErrNoData) {
				fmt.Println(noDataLine())
				return nil
			}
			if err != nil {
				logger.Error("Scan failed", zap.Error(err))
				return err
			}

			if !cfg.Quiet {
				printSummary(results)
			}
			fmt.Println(savedLine(results.ReportPath))
			if results.PublishedURI != "" {
				fmt.Println(publishedLine(results.PublishedURI))
			}
			return nil
		},
	}

	bindScanFlags(cmd, opts)

	return cmd
}

func bindScanFlags(cmd *cobra.Command, opts *scanOptions) {
	cmd.Flags().StringVar(&opts.configFile, "config", "", "Config file (YAML)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress progress output")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of worker goroutines (default: min(32, CPU cores + 4))")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "Directory substrings to exclude (comma-separated)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory the report is written to")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Report format: csv, json")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "Gzip the report")
	cmd.Flags().StringVar(&opts.rulesFile, "rules", "", "Classification rules file (YAML)")
	cmd.Flags().StringVar(&opts.hash, "hash", "", "Hash algorithm: sha256, sha384, sha512")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	cmd.Flags().StringVar(&opts.s3Bucket, "s3-bucket", "", "Upload the report to this S3 bucket")
	cmd.Flags().StringVar(&opts.s3Prefix, "s3-prefix", "", "Object key prefix for uploaded reports")
	cmd.Flags().StringVar(&opts.otelEndpoint, "otel-endpoint", "", "OTLP HTTP endpoint for traces")
}
