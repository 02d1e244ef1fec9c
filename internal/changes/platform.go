// Package changes implements the selection and batch-action logic behind
// the changes panel: tri-state inclusion over a file set, mapping of
// selections to rows, context-menu construction and action dispatch.
package changes

import "runtime"

// HostPlatform identifies the platform the UI runs on. It is injected
// into the menu builder instead of being read from ambient state so the
// platform-dependent labels and gates are testable.
type HostPlatform int

// Supported host platforms.
const (
	PlatformLinux HostPlatform = iota
	PlatformDarwin
	PlatformWindows
)

// CurrentPlatform maps runtime.GOOS onto a HostPlatform. Anything that
// is not darwin or windows behaves like Linux.
func CurrentPlatform() HostPlatform {
	switch runtime.GOOS {
	case "darwin":
		return PlatformDarwin
	case "windows":
		return PlatformWindows
	default:
		return PlatformLinux
	}
}

// String returns the platform name.
func (p HostPlatform) String() string {
	switch p {
	case PlatformDarwin:
		return "darwin"
	case PlatformWindows:
		return "windows"
	default:
		return "linux"
	}
}
