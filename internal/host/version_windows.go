//go:build windows

package host

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// osVersion returns major.minor.build of the running Windows
func osVersion() string {
	v := windows.RtlGetVersion()
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
}
