package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the inventory scanner configuration
type Config struct {
	// Scan settings
	Path      string   `mapstructure:"path"`       // path to scan
	Workers   int      `mapstructure:"workers"`    // number of worker goroutines
	Exclude   []string `mapstructure:"exclude"`    // case-insensitive directory path substrings to prune
	Quiet     bool     `mapstructure:"quiet"`      // suppress progress display
	Hash      string   `mapstructure:"hash"`       // digest algorithm: sha256, sha384, sha512
	BlockSize int      `mapstructure:"block_size"` // hashing read block size in bytes
	RulesFile string   `mapstructure:"rules_file"` // optional classification policy (YAML)

	// Report settings
	OutputDir    string `mapstructure:"output_dir"`    // directory the report is written to
	ReportFormat string `mapstructure:"report_format"` // csv, json
	Compress     bool   `mapstructure:"compress"`      // gzip the report

	// Metrics settings
	MetricsFile string `mapstructure:"metrics_file"` // Prometheus textfile output, empty to disable

	// Publishing settings
	S3 S3Config `mapstructure:"s3"`

	// Tracing settings
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// S3Config holds report upload configuration
type S3Config struct {
	Bucket         string `mapstructure:"bucket"`           // upload disabled when empty
	Prefix         string `mapstructure:"prefix"`           // object key prefix
	Region         string `mapstructure:"region"`           // AWS region
	Endpoint       string `mapstructure:"endpoint"`         // custom endpoint (MinIO, SeaweedFS)
	AccessKey      string `mapstructure:"access_key"`       // static credentials, default chain when empty
	SecretKey      string `mapstructure:"secret_key"`       // static credentials, default chain when empty
	ForcePathStyle bool   `mapstructure:"force_path_style"` // path-style addressing
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Endpoint    string `mapstructure:"endpoint"`     // OTLP HTTP endpoint, spans discarded when empty
	ServiceName string `mapstructure:"service_name"` // reported service name
}

// DefaultExclude is the list of noise directories pruned from every scan
var DefaultExclude = []string{
	"node_modules",
	".git",
	"__pycache__",
	"venv",
	"env",
	"$recycle.bin",
	"system volume information",
}

// DefaultWorkers sizes the worker pool to the host's concurrency capacity
func DefaultWorkers() int {
	n := runtime.NumCPU() + 4
	if n > 32 {
		n = 32
	}
	return n
}

// LoadConfig loads configuration from defaults, an optional config file and
// environment variables
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("path", ".")
	v.SetDefault("workers", DefaultWorkers())
	v.SetDefault("exclude", DefaultExclude)
	v.SetDefault("quiet", false)
	v.SetDefault("hash", "sha256")
	v.SetDefault("block_size", 64*1024)
	v.SetDefault("rules_file", "")
	v.SetDefault("output_dir", ".")
	v.SetDefault("report_format", "csv")
	v.SetDefault("compress", false)
	v.SetDefault("metrics_file", "")

	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "inventory")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.force_path_style", true)

	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.service_name", "inventory")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail deep inside a scan
func (c *Config) Validate() error {
	switch c.ReportFormat {
	case "csv", "json":
	default:
		return fmt.Errorf("report format must be one of: csv, json (got: %s)", c.ReportFormat)
	}
	switch c.Hash {
	case "sha256", "sha384", "sha512":
	default:
		return fmt.Errorf("hash must be one of: sha256, sha384, sha512 (got: %s)", c.Hash)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("block size must be positive (got: %d)", c.BlockSize)
	}
	return nil
}

// GetWorkers returns the effective worker count
func (c *Config) GetWorkers() int {
	if c.Workers <= 0 {
		return DefaultWorkers()
	}
	return c.Workers
}
