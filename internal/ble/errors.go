package ble

import (
	"errors"
	"fmt"
)

// ErrorKind classifies transport failures so callers can react without
// parsing message text.
type ErrorKind int

const (
	ErrConnection ErrorKind = iota
	ErrScan
	ErrWrite
	ErrMissingCharacteristic
	ErrNotConnected
	ErrDeviceNotFound
	ErrKeepAlive
)

func (k ErrorKind) String() string {
	switch k {
	case ErrConnection:
		return "connection"
	case ErrScan:
		return "scan"
	case ErrWrite:
		return "write"
	case ErrMissingCharacteristic:
		return "missing characteristic"
	case ErrNotConnected:
		return "not connected"
	case ErrDeviceNotFound:
		return "device not found"
	case ErrKeepAlive:
		return "keep-alive"
	default:
		return "unknown"
	}
}

// Error is the transport error type. Chunk and Total are set only for
// write failures, so a caller can judge how much of a job reached the
// device before the link dropped.
type Error struct {
	Kind  ErrorKind
	Msg   string
	Chunk int // 1-based index of the failed chunk
	Total int // chunk count of the whole write
	Err   error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Kind == ErrWrite && e.Total > 0 {
		msg = fmt.Sprintf("%s (chunk %d/%d)", msg, e.Chunk, e.Total)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the ErrorKind from err, or -1 when err is not a
// transport error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return -1
}
