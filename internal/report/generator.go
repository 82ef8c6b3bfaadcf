package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aerovista-us/echovalentine/internal/config"
	"github.com/aerovista-us/echovalentine/pkg/models"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

// ErrNoData is returned when a scan produced no records to report
var ErrNoData = errors.New("no inventory data found")

// timestampLayout is the file name timestamp, YYYYMMDD_HHMMSS
const timestampLayout = "20060102_150405"

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// Generator writes inventory reports
type Generator struct {
	config *config.Config
	logger *zap.Logger
	now    func() time.Time
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	switch cfg.ReportFormat {
	case "csv", "json":
	default:
		return nil, fmt.Errorf("unknown report format: %s", cfg.ReportFormat)
	}

	return &Generator{
		config: cfg,
		logger: logger,
		now:    time.Now,
	}, nil
}

// FileName returns the report file name for a scan root
func (g *Generator) FileName(rootName string) string {
	name := fmt.Sprintf("%s_inventory_%s.%s", sanitizeRoot(rootName), g.now().Format(timestampLayout), g.config.ReportFormat)
	if g.config.Compress {
		name += ".gz"
	}
	return name
}

// Generate writes the report for results and returns its absolute path.
// It returns ErrNoData and writes nothing when there are no records.
func (g *Generator) Generate(results *models.ScanResults) (string, error) {
	if len(results.Records) == 0 {
		return "", ErrNoData
	}

	rootName := ""
	if results.Run != nil {
		rootName = results.Run.RootName
	}
	if rootName == "" {
		rootName = filepath.Base(results.ScanPath)
	}

	outputDir := g.config.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputFile := filepath.Join(outputDir, g.FileName(rootName))

	g.logger.Info("Generating report",
		zap.String("format", g.config.ReportFormat),
		zap.Bool("compress", g.config.Compress),
		zap.String("output", outputFile))

	table := BuildTable(results.Records)
	if err := g.writeFile(outputFile, table); err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", g.config.ReportFormat, err)
	}

	absPath, err := filepath.Abs(outputFile)
	if err != nil {
		return outputFile, nil
	}
	return absPath, nil
}

func (g *Generator) writeFile(path string, table *Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	var w io.Writer = f
	var zw *gzip.Writer
	if g.config.Compress {
		zw = gzip.NewWriter(f)
		w = zw
	}

	switch g.config.ReportFormat {
	case "json":
		err = WriteJSON(w, table)
	default:
		err = WriteCSV(w, table)
	}
	if err != nil {
		return err
	}

	if zw != nil {
		return zw.Close()
	}
	return nil
}

// sanitizeRoot maps degenerate base names (filesystem roots) to "root"
func sanitizeRoot(name string) string {
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return "root"
	}
	if vol := filepath.VolumeName(name); vol != "" && vol == name {
		return "root"
	}
	return name
}
