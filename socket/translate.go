//go:build linux || darwin || windows

package socket

import (
	"errors"
	"syscall"
)

// outcome is what a failed system call means to the caller.
type outcome int

const (
	// retry: interrupted, issue the same call again.
	retry outcome = iota
	// wouldBlock: no progress possible now; not an error.
	wouldBlock
	fatal
)

func (o outcome) String() string {
	switch o {
	case retry:
		return "retry"
	case wouldBlock:
		return "would-block"
	default:
		return "fatal"
	}
}

// errnoOf extracts the platform error code from err.
func errnoOf(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return 0
}

// classifyTransfer maps a send/recv failure.
func classifyTransfer(err error) (outcome, syscall.Errno) {
	code := errnoOf(err)
	switch code {
	case errInterrupted:
		return retry, code
	case errAgain:
		return wouldBlock, code
	}
	return fatal, code
}

// classifyConnect maps a connect failure. On a non-blocking socket an
// interrupted connect keeps going in the background, so it is pending just
// like an in-progress one.
func classifyConnect(err error) (outcome, syscall.Errno) {
	code := errnoOf(err)
	switch code {
	case errInterrupted, errInProgress:
		return wouldBlock, code
	}
	return fatal, code
}
