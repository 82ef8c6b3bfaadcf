package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aerovista-us/echovalentine/internal/classifier"
	"github.com/aerovista-us/echovalentine/internal/config"
	"github.com/aerovista-us/echovalentine/internal/container"
	"github.com/aerovista-us/echovalentine/internal/filesystem"
	"github.com/aerovista-us/echovalentine/internal/host"
	"github.com/aerovista-us/echovalentine/internal/metrics"
	"github.com/aerovista-us/echovalentine/internal/report"
	"github.com/aerovista-us/echovalentine/internal/telemetry"
	"github.com/aerovista-us/echovalentine/pkg/models"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Progress phases
const (
	PhaseWalking    = "walking"
	PhaseProcessing = "processing"
	PhaseDedup      = "dedup"
	PhaseReport     = "report"
	PhasePublish    = "publish"
)

// ProgressCallback is called to report scan progress
type ProgressCallback func(phase string, current, total int, message string)

// Publisher ships a finished report somewhere and returns where it went
type Publisher interface {
	Publish(ctx context.Context, reportPath string, run *models.RunContext) (string, error)
}

// Scanner is the inventory engine
type Scanner struct {
	config           *config.Config
	logger           *zap.Logger
	walker           *filesystem.Walker
	detector         *container.Detector
	processor        *Processor
	reporter         *report.Generator
	metrics          *metrics.Metrics
	publisher        Publisher
	results          *models.ScanResults
	progressCallback ProgressCallback
	mu               sync.Mutex
}

// NewScanner creates a new scanner instance. A nil policy selects the
// default classification tables.
func NewScanner(cfg *config.Config, policy *classifier.Policy, logger *zap.Logger) (*Scanner, error) {
	if policy == nil {
		policy = classifier.DefaultPolicy()
	}

	hasher, err := filesystem.NewHasher(cfg.Hash, cfg.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hasher: %w", err)
	}

	reporter, err := report.NewGenerator(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report generator: %w", err)
	}

	return &Scanner{
		config:    cfg,
		logger:    logger,
		walker:    filesystem.NewWalker(cfg, logger),
		detector:  container.NewDetector(logger),
		processor: NewProcessor(policy, hasher, logger),
		reporter:  reporter,
		metrics:   metrics.New(),
	}, nil
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(cb ProgressCallback) {
	s.progressCallback = cb
}

// SetPublisher enables publishing of the written report
func (s *Scanner) SetPublisher(p Publisher) {
	s.publisher = p
}

// Metrics returns the scanner's metric set
func (s *Scanner) Metrics() *metrics.Metrics {
	return s.metrics
}

// reportProgress calls the progress callback if set
func (s *Scanner) reportProgress(phase string, current, total int, message string) {
	if s.progressCallback != nil {
		s.progressCallback(phase, current, total, message)
	}
}

// Scan inventories path, writes the report and publishes it when a publisher
// is set. With no records it returns the results together with
// report.ErrNoData and writes nothing.
func (s *Scanner) Scan(ctx context.Context, path string) (*models.ScanResults, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "inventory.scan")
	defer span.End()

	results, err := s.Inventory(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.reportProgress(PhaseReport, 0, 0, "Writing report...")
	reportPath, err := s.writeReport(ctx, results)
	if err != nil {
		if errors.Is(err, report.ErrNoData) {
			s.logger.Info("No inventory data found", zap.String("path", results.ScanPath))
			return results, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("Failed to generate report", zap.Error(err))
		return results, err
	}
	results.ReportPath = reportPath

	if s.publisher != nil {
		s.reportProgress(PhasePublish, 0, 0, "Publishing report...")
		uri, err := s.publisher.Publish(ctx, reportPath, results.Run)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return results, fmt.Errorf("failed to publish report: %w", err)
		}
		results.PublishedURI = uri
	}

	s.metrics.ObserveResults(results)
	if s.config.MetricsFile != "" {
		if err := s.metrics.WriteTextfile(s.config.MetricsFile); err != nil {
			// Metrics are auxiliary output
			s.logger.Warn("Failed to write metrics file", zap.String("path", s.config.MetricsFile), zap.Error(err))
		}
	}

	s.logger.Info("Scan completed",
		zap.Duration("duration", results.Duration),
		zap.Int("files", results.TotalFiles),
		zap.Int("duplicates", results.Stats.Duplicates),
		zap.String("report", reportPath))

	return results, nil
}

func (s *Scanner) writeReport(ctx context.Context, results *models.ScanResults) (string, error) {
	_, span := telemetry.Tracer().Start(ctx, "inventory.report")
	defer span.End()

	path, err := s.reporter.Generate(results)
	if err == nil {
		span.SetAttributes(attribute.String("report.path", path))
	}
	return path, err
}

// Inventory walks path and returns every file record with duplicates marked.
// The root must be an existing directory. A cancelled context aborts the scan
// and no results are returned.
func (s *Scanner) Inventory(ctx context.Context, path string) (*models.ScanResults, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "inventory.walk")
	defer span.End()

	root, err := resolveRoot(path)
	if err != nil {
		return nil, err
	}

	run := newRunContext(root)
	span.SetAttributes(
		attribute.String("scan.root", root),
		attribute.String("scan.id", run.ScanID.String()),
	)

	s.logger.Info("Starting scan",
		zap.String("path", root),
		zap.String("scan_id", run.ScanID.String()),
		zap.Int("workers", s.config.GetWorkers()))

	s.results = &models.ScanResults{
		StartTime: run.StartedAt,
		ScanPath:  root,
		Run:       run,
		Stats:     &models.ScanStatistics{},
	}

	workers := s.config.GetWorkers()
	s.results.Stats.WorkersUsed = workers

	if err := s.processTree(ctx, run, workers); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Every worker has finished; the record slice is complete
	s.reportProgress(PhaseDedup, 0, len(s.results.Records), "Marking duplicates...")
	s.results.Stats.Duplicates = Deduplicate(s.results.Records)
	s.calculateStats()

	s.results.EndTime = time.Now()
	s.results.Duration = s.results.EndTime.Sub(s.results.StartTime)
	if secs := s.results.Duration.Seconds(); secs > 0 {
		s.results.Stats.FilesPerSecond = float64(len(s.results.Records)) / secs
	}

	span.SetAttributes(
		attribute.Int("scan.files", s.results.TotalFiles),
		attribute.Int("scan.duplicates", s.results.Stats.Duplicates),
	)
	return s.results, nil
}

func resolveRoot(path string) (string, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid scan path %q: %w", path, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("invalid scan path %q: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid scan path %q: not a directory", path)
	}
	return root, nil
}

func newRunContext(root string) *models.RunContext {
	id := host.Lookup()
	return &models.RunContext{
		ScanID:    uuid.New(),
		Hostname:  id.Hostname,
		Username:  id.Username,
		OS:        id.OS,
		OSVersion: id.OSVersion,
		StartedAt: time.Now(),
		RootPath:  root,
		RootName:  filepath.Base(root),
	}
}

// processTree walks the tree and fans file tasks out to the worker pool
func (s *Scanner) processTree(ctx context.Context, run *models.RunContext, workers int) error {
	taskChan := make(chan *models.FileTask, workers*2)
	resultsChan := make(chan models.Record, workers*2)

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go s.worker(ctx, &wg, taskChan, resultsChan)
	}

	// Start results collector
	var collectWg sync.WaitGroup
	collectWg.Add(1)
	go s.collectResults(&collectWg, resultsChan)

	s.reportProgress(PhaseWalking, 0, 0, "Walking directory tree...")
	excluded, walkErr := s.walker.Walk(run.RootPath, func(dir *models.Directory) error {
		rec := s.detector.Detect(dir)
		s.metrics.ObserveDirectory(rec != nil)

		s.mu.Lock()
		s.results.TotalDirs++
		s.results.TotalFiles += len(dir.Files)
		if rec != nil {
			s.results.Containers++
		}
		s.mu.Unlock()

		for _, name := range dir.Files {
			task := &models.FileTask{
				Dir:       dir.Path,
				Name:      name,
				Run:       run,
				Container: rec.Clone(),
				IsAppDir:  rec != nil,
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case taskChan <- task:
			}
		}
		return nil
	})

	// Close channels and wait
	close(taskChan)
	wg.Wait()
	close(resultsChan)
	collectWg.Wait()

	s.results.ExcludedDirs = excluded
	return walkErr
}

// worker processes file tasks from the channel
func (s *Scanner) worker(ctx context.Context, wg *sync.WaitGroup, taskChan <-chan *models.FileTask, resultsChan chan<- models.Record) {
	defer wg.Done()

	for task := range taskChan {
		select {
		case <-ctx.Done():
			return
		default:
			resultsChan <- s.processor.Process(task)
		}
	}
}

// collectResults appends records in completion order and reports progress
func (s *Scanner) collectResults(wg *sync.WaitGroup, resultsChan <-chan models.Record) {
	defer wg.Done()

	processed := 0
	lastReport := time.Now()

	for rec := range resultsChan {
		s.mu.Lock()
		s.results.AddRecord(rec)
		total := s.results.TotalFiles
		s.mu.Unlock()

		s.metrics.ObserveRecord(rec)
		processed++

		// Report progress every 100ms or every 100 files
		if time.Since(lastReport) > 100*time.Millisecond || processed%100 == 0 {
			s.reportProgress(PhaseProcessing, processed, total, rec.Path())
			lastReport = time.Now()
		}
	}

	// Final progress report
	s.reportProgress(PhaseProcessing, processed, processed, "Processing complete")
}

// calculateStats derives totals that need the dedup pass
func (s *Scanner) calculateStats() {
	var dupSize int64
	for _, rec := range s.results.Records {
		if rec.Inventory != nil && rec.Inventory.IsDuplicate {
			dupSize += rec.Inventory.SizeBytes
		}
	}
	s.results.Stats.DuplicateSize = dupSize
}
