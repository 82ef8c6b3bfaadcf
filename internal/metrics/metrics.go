// Package metrics exposes scan counters in the Prometheus exposition format.
// Inventory runs are batch jobs, so the registry is written to a textfile for
// node_exporter's textfile collector rather than served over HTTP.
package metrics

import (
	"github.com/aerovista-us/echovalentine/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "inventory"

// Metrics holds the counters of a single scan
type Metrics struct {
	registry *prometheus.Registry

	filesProcessed prometheus.Counter
	errorRecords   prometheus.Counter
	hashErrors     prometheus.Counter
	bytesScanned   prometheus.Counter
	duplicates     prometheus.Counter
	duplicateBytes prometheus.Counter
	containers     prometheus.Counter
	dirsVisited    prometheus.Counter
	dirsExcluded   prometheus.Counter
	filesByRole    *prometheus.CounterVec
	duration       prometheus.Gauge
	lastSuccess    prometheus.Gauge
}

// New creates a metrics set on its own registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		filesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "files_processed_total",
			Help: "Files turned into full inventory records.",
		}),
		errorRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "error_records_total",
			Help: "Files whose metadata could not be collected.",
		}),
		hashErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "hash_errors_total",
			Help: "Files whose content could not be hashed.",
		}),
		bytesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "scanned_bytes_total",
			Help: "Sum of the sizes of inventoried files.",
		}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "duplicates_total",
			Help: "Files whose content matches an earlier file.",
		}),
		duplicateBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "duplicate_bytes_total",
			Help: "Bytes held by duplicate files.",
		}),
		containers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "app_containers_total",
			Help: "Directories recognized as application containers.",
		}),
		dirsVisited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "directories_visited_total",
			Help: "Directories listed during the walk.",
		}),
		dirsExcluded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "directories_excluded_total",
			Help: "Directory subtrees pruned by the exclusion list.",
		}),
		filesByRole: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "files_by_role_total",
			Help: "Inventoried files per semantic role.",
		}, []string{"role"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "scan_duration_seconds",
			Help: "Wall time of the last scan.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_success_timestamp_seconds",
			Help: "Unix time the last scan completed.",
		}),
	}

	m.registry.MustRegister(
		m.filesProcessed, m.errorRecords, m.hashErrors, m.bytesScanned,
		m.duplicates, m.duplicateBytes, m.containers, m.dirsVisited,
		m.dirsExcluded, m.filesByRole, m.duration, m.lastSuccess,
	)
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRecord counts one collected record
func (m *Metrics) ObserveRecord(rec models.Record) {
	if rec.IsError() {
		m.errorRecords.Inc()
		return
	}
	inv := rec.Inventory
	m.filesProcessed.Inc()
	m.bytesScanned.Add(float64(inv.SizeBytes))
	m.filesByRole.WithLabelValues(string(inv.Role)).Inc()
	if models.IsHashError(inv.FileHash) {
		m.hashErrors.Inc()
	}
}

// ObserveDirectory counts one walked directory
func (m *Metrics) ObserveDirectory(isContainer bool) {
	m.dirsVisited.Inc()
	if isContainer {
		m.containers.Inc()
	}
}

// ObserveResults records the totals that are only known after the scan
func (m *Metrics) ObserveResults(results *models.ScanResults) {
	m.dirsExcluded.Add(float64(results.ExcludedDirs))
	if results.Stats != nil {
		m.duplicates.Add(float64(results.Stats.Duplicates))
		m.duplicateBytes.Add(float64(results.Stats.DuplicateSize))
	}
	m.duration.Set(results.Duration.Seconds())
	m.lastSuccess.Set(float64(results.EndTime.Unix()))
}

// WriteTextfile writes all metrics to path atomically
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
