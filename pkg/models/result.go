package models

import "time"

// ScanResults contains the complete scan results
type ScanResults struct {
	// Summary
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	ScanPath  string        `json:"scan_path"`
	Run       *RunContext   `json:"-"`

	TotalDirs    int `json:"total_dirs"`
	ExcludedDirs int `json:"excluded_dirs"`
	Containers   int `json:"containers"`
	TotalFiles   int `json:"total_files"`

	// Records in completion order
	Records []Record `json:"-"`

	// Statistics
	Stats *ScanStatistics `json:"statistics"`

	// Report location
	ReportPath   string `json:"report_path,omitempty"`
	PublishedURI string `json:"published_uri,omitempty"`
}

// ScanStatistics contains detailed scan statistics
type ScanStatistics struct {
	ProcessedFiles int   `json:"processed_files"`
	ErrorRecords   int   `json:"error_records"`
	HashErrors     int   `json:"hash_errors"`
	Duplicates     int   `json:"duplicates"`
	TotalSize      int64 `json:"total_size"`
	DuplicateSize  int64 `json:"duplicate_size"`

	// Errors
	ErrorFiles []string `json:"error_files,omitempty"`

	// Performance
	FilesPerSecond float64 `json:"files_per_second"`
	WorkersUsed    int     `json:"workers_used"`
}

// AddRecord appends a record and updates the statistics
func (r *ScanResults) AddRecord(rec Record) {
	r.Records = append(r.Records, rec)

	if r.Stats == nil {
		r.Stats = &ScanStatistics{}
	}
	if rec.IsError() {
		r.Stats.ErrorRecords++
		r.Stats.ErrorFiles = append(r.Stats.ErrorFiles, rec.Failure.FullPath)
		return
	}
	r.Stats.ProcessedFiles++
	r.Stats.TotalSize += rec.Inventory.SizeBytes
	if IsHashError(rec.Inventory.FileHash) {
		r.Stats.HashErrors++
	}
}
