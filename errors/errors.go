package errors

import (
	"fmt"
	"syscall"
)

// SocketError represents the category of a socket failure
type SocketError int

const (
	SocketCreateFailure SocketError = iota
	SocketConnectFailure
	SocketWriteFailure
	SocketReadFailure
	AddressQueryFailure
	EventSelectFailure
	ConnectionClosed
	Timeout
	InvalidArgument
)

func (e SocketError) Error() string {
	switch e {
	case SocketCreateFailure:
		return "Socket creation failed"
	case SocketConnectFailure:
		return "Socket connection failed"
	case SocketWriteFailure:
		return "Socket write failed"
	case SocketReadFailure:
		return "Socket read failed"
	case AddressQueryFailure:
		return "Socket address query failed"
	case EventSelectFailure:
		return "Socket event selection failed"
	case ConnectionClosed:
		return "Connection closed"
	case Timeout:
		return "Operation timed out"
	case InvalidArgument:
		return "Invalid argument"
	default:
		return fmt.Sprintf("Unknown socket error: %d", e)
	}
}

// Error is the error returned for every recoverable socket failure.
// System failures carry the failing operation and the platform error code.
type Error struct {
	SocketErr  SocketError
	Op         string
	Code       syscall.Errno
	Message    string
	underlying error
}

func (e *Error) Error() string {
	switch {
	case e.Code != 0:
		return fmt.Sprintf("Socket Error: %s: %s() failed (code %d: %v)", e.SocketErr.Error(), e.Op, uintptr(e.Code), e.Code)
	case e.underlying != nil && e.Message != "":
		return fmt.Sprintf("Socket Error: %s: %s (underlying: %v)", e.SocketErr.Error(), e.Message, e.underlying)
	case e.underlying != nil:
		return fmt.Sprintf("Socket Error: %s (underlying: %v)", e.SocketErr.Error(), e.underlying)
	case e.Message != "":
		return fmt.Sprintf("Socket Error: %s: %s", e.SocketErr.Error(), e.Message)
	default:
		return fmt.Sprintf("Socket Error: %s", e.SocketErr.Error())
	}
}

// Unwrap exposes the platform code, so errors.Is(err, syscall.ECONNREFUSED)
// works on system errors.
func (e *Error) Unwrap() error {
	if e.Code != 0 {
		return e.Code
	}
	return e.underlying
}

// Is reports whether target is the SocketError kind of e.
func (e *Error) Is(target error) bool {
	kind, ok := target.(SocketError)
	return ok && kind == e.SocketErr
}

// NewSystemError creates an Error for a failed system call.
func NewSystemError(kind SocketError, op string, code syscall.Errno) *Error {
	return &Error{
		SocketErr: kind,
		Op:        op,
		Code:      code,
	}
}

// NewTransportError creates an Error raised above the system call layer.
func NewTransportError(kind SocketError, message string, underlying error) *Error {
	return &Error{
		SocketErr:  kind,
		Message:    message,
		underlying: underlying,
	}
}

// ContractViolation is the panic value used when a caller breaks a
// precondition, such as sending on a closed socket. It is never returned.
type ContractViolation struct {
	Op     string
	Reason string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Violate panics with a ContractViolation.
func Violate(op, reason string) {
	panic(&ContractViolation{Op: op, Reason: reason})
}
