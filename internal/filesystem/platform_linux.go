//go:build linux

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// getTimes gets access and change time from FileInfo (Linux has no portable birth time)
func getTimes(info os.FileInfo) (time.Time, time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), info.ModTime()
	}
	atime := time.Unix(int64(stat.Atim.Sec), int64(stat.Atim.Nsec))
	ctime := time.Unix(int64(stat.Ctim.Sec), int64(stat.Ctim.Nsec))
	return atime, ctime
}
