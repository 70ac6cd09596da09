//go:build !purego

package hid

import (
	"fmt"
	"time"

	hidapi "github.com/sstallion/go-hid"
)

type hidapiManager struct{}

func newManager() (Manager, error) {
	if err := hidapi.Init(); err != nil {
		return nil, fmt.Errorf("hidapi init: %w", err)
	}
	return &hidapiManager{}, nil
}

func fromDeviceInfo(d *hidapi.DeviceInfo) Info {
	return Info{
		Path:         d.Path,
		VendorID:     d.VendorID,
		ProductID:    d.ProductID,
		Interface:    d.InterfaceNbr,
		UsagePage:    d.UsagePage,
		UsageID:      d.Usage,
		Product:      d.ProductStr,
		Manufacturer: d.MfrStr,
	}
}

func (m *hidapiManager) List() ([]Info, error) {
	var out []Info
	err := hidapi.Enumerate(0, 0, func(d *hidapi.DeviceInfo) error {
		out = append(out, fromDeviceInfo(d))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hid enumerate: %w", err)
	}
	return out, nil
}

func (m *hidapiManager) Find(sel Selector) (Info, error) {
	var (
		exact    *Info
		fallback *Info
	)
	err := hidapi.Enumerate(sel.VendorID, sel.ProductID, func(d *hidapi.DeviceInfo) error {
		info := fromDeviceInfo(d)
		if !sel.Matches(info) {
			return nil
		}
		// Prefer the endpoint whose usage pair is reported and matches;
		// keep an interface-only match in case the platform reports none.
		if sel.UsagePage != 0 && info.UsagePage == sel.UsagePage && info.UsageID == sel.UsageID {
			if exact == nil {
				exact = &info
			}
		} else if fallback == nil {
			fallback = &info
		}
		return nil
	})
	if err != nil {
		return Info{}, fmt.Errorf("hid enumerate: %w", err)
	}
	if exact != nil {
		return *exact, nil
	}
	if fallback != nil {
		return *fallback, nil
	}
	return Info{}, fmt.Errorf("no HID endpoint for %04x:%04x interface %d usage %04x:%04x",
		sel.VendorID, sel.ProductID, sel.Interface, sel.UsagePage, sel.UsageID)
}

func (m *hidapiManager) Open(info Info) (Device, error) {
	d, err := hidapi.OpenPath(info.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", info.Path, err)
	}
	return &hidapiDevice{d}, nil
}

type hidapiDevice struct{ d *hidapi.Device }

func (d *hidapiDevice) Write(p []byte) (int, error) { return d.d.Write(p) }
func (d *hidapiDevice) Read(p []byte) (int, error)  { return d.d.Read(p) }

func (d *hidapiDevice) ReadWithTimeout(p []byte, timeout time.Duration) (int, error) {
	return d.d.ReadWithTimeout(p, timeout)
}

func (d *hidapiDevice) SendFeatureReport(p []byte) (int, error) { return d.d.SendFeatureReport(p) }
func (d *hidapiDevice) GetFeatureReport(p []byte) (int, error)  { return d.d.GetFeatureReport(p) }
func (d *hidapiDevice) Close() error                            { return d.d.Close() }
