// Package host collects the identity of the machine and user running a scan.
package host

import (
	"os"
	"os/user"
	"runtime"
	"strings"
)

// Identity describes where a scan ran
type Identity struct {
	Hostname  string
	Username  string
	OS        string
	OSVersion string
}

// Lookup gathers the host identity. Lookups that fail leave the field empty.
func Lookup() Identity {
	id := Identity{
		OS:        osName(runtime.GOOS),
		OSVersion: osVersion(),
	}
	if name, err := os.Hostname(); err == nil {
		id.Hostname = name
	}
	id.Username = currentUser()
	return id
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// osName renders GOOS the way system reports usually spell it
func osName(goos string) string {
	switch goos {
	case "darwin":
		return "Darwin"
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	case "":
		return ""
	}
	return strings.ToUpper(goos[:1]) + goos[1:]
}
