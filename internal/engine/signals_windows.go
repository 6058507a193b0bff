//go:build windows

package engine

import (
	"os"
	"syscall"
)

// Windows has no resize signal; hosts call Resized instead.
var (
	terminationSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	resizeSignals      []os.Signal
)

func isResize(os.Signal) bool { return false }
