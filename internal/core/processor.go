package core

import (
	"fmt"
	"path/filepath"

	"github.com/aerovista-us/echovalentine/internal/classifier"
	"github.com/aerovista-us/echovalentine/internal/filesystem"
	"github.com/aerovista-us/echovalentine/pkg/models"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// Processor turns one file task into one inventory record. It holds no
// mutable state, so a single Processor is shared by all workers.
type Processor struct {
	policy *classifier.Policy
	hasher *filesystem.Hasher
	logger *zap.Logger
}

// NewProcessor creates a file processor
func NewProcessor(policy *classifier.Policy, hasher *filesystem.Hasher, logger *zap.Logger) *Processor {
	return &Processor{
		policy: policy,
		hasher: hasher,
		logger: logger,
	}
}

// Process builds the record for task. Metadata failures produce an error
// record instead of aborting the scan.
func (p *Processor) Process(task *models.FileTask) (rec models.Record) {
	fullPath := filepath.Join(task.Dir, task.Name)

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Recovered while processing file", zap.String("path", fullPath), zap.Any("panic", r))
			rec = failure(task.Name, fullPath, fmt.Errorf("%v", r))
		}
	}()

	info, err := filesystem.StatFile(fullPath)
	if err != nil {
		p.logger.Debug("Failed to stat file", zap.String("path", fullPath), zap.Error(err))
		return failure(task.Name, fullPath, err)
	}

	parent := filepath.Base(task.Dir)
	record := &models.InventoryRecord{
		FileName:     task.Name,
		FullPath:     fullPath,
		SizeBytes:    info.Size,
		LastModified: models.FormatTime(info.ModTime),
		LastAccessed: models.FormatTime(info.AccessTime),
		Created:      models.FormatTime(info.CreateTime),
		Extension:    filesystem.GetExtension(task.Name),
		Role:         p.policy.ClassifyRole(task.Name, parent),
		ParentFolder: parent,
		Owner:        p.policy.ClassifyOwner(fullPath),
		FileHash:     p.hasher.HashFile(fullPath),

		IsAppContainer: task.IsAppDir,
		Container:      task.Container,
	}

	if run := task.Run; run != nil {
		record.Host = run.Hostname
		record.Username = run.Username
		record.OS = run.OS
		record.OSVersion = run.OSVersion
		record.ScanID = run.ScanID.String()
		record.ScanTime = run.Timestamp()
		record.RootFolder = run.RootName
	}

	if mime, err := mimetype.DetectFile(fullPath); err == nil {
		record.MimeType = mime.String()
	}

	return models.NewInventory(record)
}

func failure(name, path string, err error) models.Record {
	return models.NewFailure(&models.ErrorRecord{
		FileName: name,
		FullPath: path,
		Error:    err.Error(),
	})
}
