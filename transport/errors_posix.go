//go:build linux || darwin

package transport

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isPeerGone checks for broken pipe or connection reset
func isPeerGone(err error) bool {
	return errors.Is(err, unix.EPIPE) || errors.Is(err, unix.ECONNRESET)
}
