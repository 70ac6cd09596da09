package headset

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a device operation failed.
type ErrorKind uint8

const (
	// KindNotSupported: the model does not advertise the capability. Raised
	// before any hardware I/O.
	KindNotSupported ErrorKind = iota
	// KindDeviceOffline: the wireless headset is out of reach of its dongle.
	KindDeviceOffline
	// KindTimeout: the device did not answer within the read deadline.
	KindTimeout
	// KindProtocol: the device answered, but the response violates the
	// expected frame layout.
	KindProtocol
	// KindInvalidParameter: caller-supplied value out of range. Raised before
	// any hardware I/O.
	KindInvalidParameter
	// KindHID: the OS HID layer failed (open, write, read).
	KindHID
)

var errorKindNames = [...]string{
	KindNotSupported:     "not supported",
	KindDeviceOffline:    "device offline",
	KindTimeout:          "timeout",
	KindProtocol:         "protocol error",
	KindInvalidParameter: "invalid parameter",
	KindHID:              "hid error",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindNames) {
		return "unknown"
	}
	return errorKindNames[k]
}

// Error is the failure outcome of a device operation. Every error returned
// by a Device method is of this type; the kind set at the failure point is
// never downgraded on the way up.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func ErrNotSupported(c Capability) *Error {
	return &Error{Kind: KindNotSupported, Message: fmt.Sprintf("%s not supported by this device", c)}
}

func ErrOffline(format string, args ...any) *Error {
	return &Error{Kind: KindDeviceOffline, Message: fmt.Sprintf(format, args...)}
}

func ErrTimeout(format string, args ...any) *Error {
	return &Error{Kind: KindTimeout, Message: fmt.Sprintf(format, args...)}
}

func ErrProtocol(format string, args ...any) *Error {
	return &Error{Kind: KindProtocol, Message: fmt.Sprintf(format, args...)}
}

func ErrInvalidParameter(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidParameter, Message: fmt.Sprintf(format, args...)}
}

// ErrHID wraps a transport failure so the underlying error stays reachable
// through errors.Is/As.
func ErrHID(op string, cause error) *Error {
	return &Error{Kind: KindHID, Message: op, cause: cause}
}

// KindOf extracts the kind from a device error; transport errors that were
// never classified count as KindHID.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindHID
}
