//go:build !linux && !darwin && !windows

package filesystem

import (
	"os"
	"time"
)

// getTimes falls back to the modification time
func getTimes(info os.FileInfo) (time.Time, time.Time) {
	return info.ModTime(), info.ModTime()
}
