//go:build darwin

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// getTimes gets access and birth time from FileInfo (macOS)
func getTimes(info os.FileInfo) (time.Time, time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), info.ModTime()
	}
	atime := time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec)
	btime := time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec)
	return atime, btime
}
