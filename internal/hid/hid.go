// Package hid wraps report-level access to USB HID devices behind small
// interfaces so protocol code and tests never touch a platform library
// directly.
package hid

import "time"

// Device represents an opened HID endpoint capable of report I/O.
type Device interface {
	Write([]byte) (int, error) // send output report
	Read([]byte) (int, error)  // read input report, blocking

	// ReadWithTimeout reads an input report, giving up after timeout.
	// A zero timeout polls without blocking; a negative timeout blocks
	// indefinitely.
	ReadWithTimeout([]byte, time.Duration) (int, error)

	SendFeatureReport([]byte) (int, error)
	GetFeatureReport([]byte) (int, error)

	Close() error
}

// Info describes one enumerated HID endpoint. A physical device exposes one
// Info per logical interface/usage pair.
type Info struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Interface    int
	UsagePage    uint16
	UsageID      uint16
	Product      string
	Manufacturer string
}

// Selector identifies the logical endpoint a caller wants opened. UsagePage
// and UsageID of zero match any endpoint on the selected interface.
type Selector struct {
	VendorID  uint16
	ProductID uint16
	Interface int
	UsagePage uint16
	UsageID   uint16
}

// Matches reports whether the enumerated endpoint satisfies the selector.
// Backends that cannot report usage information leave the fields zero, in
// which case only the interface number is compared.
func (s Selector) Matches(i Info) bool {
	if i.VendorID != s.VendorID || i.ProductID != s.ProductID {
		return false
	}
	if i.Interface != s.Interface {
		return false
	}
	if s.UsagePage != 0 && i.UsagePage != 0 && i.UsagePage != s.UsagePage {
		return false
	}
	if s.UsageID != 0 && i.UsageID != 0 && i.UsageID != s.UsageID {
		return false
	}
	return true
}

// Manager enumerates and opens HID endpoints.
type Manager interface {
	// List returns every HID endpoint present on the system.
	List() ([]Info, error)

	// Find resolves the selector to a concrete endpoint path.
	Find(sel Selector) (Info, error)

	// Open opens the endpoint previously returned by List or Find.
	Open(info Info) (Device, error)
}

// NewManager returns the platform HID manager.
func NewManager() (Manager, error) {
	return newManager()
}
