package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aerovista-us/echovalentine/internal/config"
	"github.com/aerovista-us/echovalentine/pkg/models"
	"go.uber.org/zap"
)

// DirFunc is called once for every directory that survives exclusion
type DirFunc func(dir *models.Directory) error

// Walker walks the filesystem and lists the files of every kept directory
type Walker struct {
	config  *config.Config
	logger  *zap.Logger
	exclude []string
}

// NewWalker creates a new filesystem walker
func NewWalker(cfg *config.Config, logger *zap.Logger) *Walker {
	// Matching is case-insensitive
	exclude := make([]string, 0, len(cfg.Exclude))
	for _, e := range cfg.Exclude {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			exclude = append(exclude, e)
		}
	}

	return &Walker{
		config:  cfg,
		logger:  logger,
		exclude: exclude,
	}
}

// Walk recursively walks the directory tree below root and returns the number
// of pruned directories. An excluded directory's files are never listed and
// nothing below it is visited.
func (w *Walker) Walk(root string, callback DirFunc) (int, error) {
	excluded := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return nil // Continue walking
		}
		if !d.IsDir() {
			return nil
		}

		// Get relative path
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		if w.ShouldExclude(relPath) {
			w.logger.Debug("Skipping excluded directory", zap.String("path", relPath))
			excluded++
			return filepath.SkipDir
		}

		files, err := listFiles(path)
		if err != nil {
			w.logger.Warn("Error listing directory", zap.String("path", path), zap.Error(err))
			return filepath.SkipDir
		}

		return callback(&models.Directory{
			Path:  path,
			Name:  filepath.Base(path),
			Files: files,
		})
	})
	return excluded, err
}

// ShouldExclude checks if a directory path (relative to the scan root)
// contains one of the excluded substrings
func (w *Walker) ShouldExclude(relPath string) bool {
	lower := strings.ToLower(relPath)
	for _, e := range w.exclude {
		if strings.Contains(lower, e) {
			return true
		}
	}
	return false
}

// listFiles returns the names of the non-directory entries of dir. Symlinks
// pointing at directories count as directories and are not followed.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, entry.Name())); err == nil && info.IsDir() {
				continue
			}
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// GetExtension returns the lowercased extension including the dot. Leading
// dots of the name do not start an extension, so ".env" has none.
func GetExtension(path string) string {
	name := strings.TrimLeft(filepath.Base(path), ".")
	return strings.ToLower(filepath.Ext(name))
}

// StatFile collects size and timestamps for path, following symlinks
func StatFile(path string) (*models.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	fileInfo := &models.FileInfo{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}

	// Get access and creation time (platform-dependent)
	fileInfo.AccessTime, fileInfo.CreateTime = getTimes(info)

	if linfo, err := os.Lstat(path); err == nil {
		fileInfo.IsSymlink = linfo.Mode()&os.ModeSymlink != 0
	}

	return fileInfo, nil
}
