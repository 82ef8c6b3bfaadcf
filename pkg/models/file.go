package models

import (
	"time"
)

// Directory is one directory visited by the walker together with its
// immediate (non-directory) entries
type Directory struct {
	Path  string   // Absolute directory path
	Name  string   // Directory base name
	Files []string // File names directly inside the directory
}

// FileInfo contains the filesystem metadata of a single file
type FileInfo struct {
	Path       string
	Size       int64
	ModTime    time.Time
	AccessTime time.Time
	CreateTime time.Time // Birth time where the platform has one, otherwise change time
	IsSymlink  bool
}

// FileTask is the unit of work handed to a worker. It carries everything a
// worker needs so that processing one file never depends on another task.
type FileTask struct {
	Dir       string
	Name      string
	Run       *RunContext
	Container *ContainerRecord
	IsAppDir  bool
}
