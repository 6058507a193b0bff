//go:build !windows

package engine

import (
	"os"
	"syscall"
)

var (
	terminationSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}
	resizeSignals      = []os.Signal{syscall.SIGWINCH}
)

func isResize(sig os.Signal) bool {
	return sig == syscall.SIGWINCH
}
