//go:build purego

package hid

import (
	"fmt"
	"time"

	usbhid "rafaelmartins.com/p/usbhid"
)

// Pure-Go backend for CGO-less builds. usbhid does not expose interface or
// usage numbers, so Find matches on vendor/product only and routing degrades
// to the first enumerated endpoint of the device.

type usbManager struct{}

func newManager() (Manager, error) { return &usbManager{}, nil }

func (m *usbManager) List() ([]Info, error) {
	devs, err := usbhid.Enumerate(nil)
	if err != nil {
		return nil, fmt.Errorf("usbhid enumerate: %w", err)
	}
	out := make([]Info, 0, len(devs))
	for _, d := range devs {
		out = append(out, Info{
			Path:         d.Path(),
			VendorID:     d.VendorId(),
			ProductID:    d.ProductId(),
			Product:      d.Product(),
			Manufacturer: d.Manufacturer(),
		})
	}
	return out, nil
}

func (m *usbManager) Find(sel Selector) (Info, error) {
	devs, err := usbhid.Enumerate(nil)
	if err != nil {
		return Info{}, fmt.Errorf("usbhid enumerate: %w", err)
	}
	for _, d := range devs {
		if d.VendorId() != sel.VendorID || d.ProductId() != sel.ProductID {
			continue
		}
		return Info{
			Path:         d.Path(),
			VendorID:     d.VendorId(),
			ProductID:    d.ProductId(),
			Product:      d.Product(),
			Manufacturer: d.Manufacturer(),
		}, nil
	}
	return Info{}, fmt.Errorf("no HID endpoint for %04x:%04x", sel.VendorID, sel.ProductID)
}

func (m *usbManager) Open(info Info) (Device, error) {
	d, err := usbhid.Get(func(dev *usbhid.Device) bool {
		return dev.Path() == info.Path
	}, true, false)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", info.Path, err)
	}
	return &usbDevice{d}, nil
}

type usbDevice struct{ d *usbhid.Device }

func (d *usbDevice) Write(p []byte) (int, error) {
	// p includes the report ID at p[0]
	if len(p) == 0 {
		return 0, nil
	}
	if err := d.d.SetOutputReport(p[0], p[1:]); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (d *usbDevice) Read(p []byte) (int, error) {
	_, buf, err := d.d.GetInputReport()
	if err != nil {
		return 0, err
	}
	return copy(p, buf), nil
}

// ReadWithTimeout ignores the timeout: hidraw input reads through usbhid are
// blocking. Timed reads need the hidapi backend.
func (d *usbDevice) ReadWithTimeout(p []byte, _ time.Duration) (int, error) {
	return d.Read(p)
}

func (d *usbDevice) SendFeatureReport(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := d.d.SetFeatureReport(p[0], p[1:]); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (d *usbDevice) GetFeatureReport(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	buf, err := d.d.GetFeatureReport(p[0])
	if err != nil {
		return 0, err
	}
	return copy(p[1:], buf) + 1, nil
}

func (d *usbDevice) Close() error { return d.d.Close() }
