//go:build linux || darwin

// Command nbprobe opens a non-blocking TCP connection, optionally sends a
// payload and prints the first reply.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
