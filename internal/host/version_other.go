//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows

package host

func osVersion() string {
	return ""
}
