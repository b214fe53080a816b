//go:build !cgo && !windows && !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"os"
	"sync"
)

var (
	initOnce sync.Once
	initErr  error
)

func ensureInit() error {
	initOnce.Do(func() {
		if needsDisplay() && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		initErr = errUnsupported
	})
	return initErr
}

func writePNG([]byte) error { return errUnsupported }
