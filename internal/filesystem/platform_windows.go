//go:build windows

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// getTimes gets access and creation time from FileInfo (Windows)
func getTimes(info os.FileInfo) (time.Time, time.Time) {
	stat, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info.ModTime(), info.ModTime()
	}
	return time.Unix(0, stat.LastAccessTime.Nanoseconds()), time.Unix(0, stat.CreationTime.Nanoseconds())
}
