package devices

import (
	"encoding/binary"
	"time"

	"github.com/Sapd/HeadsetControl-sub001/internal/battery"
	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

const (
	calphaRespLen       = 20
	calphaChargeOffset  = 4
	calphaVoltageOffset = 5

	calphaSidetoneMax = 100
	calphaInactiveMax = 90
)

var (
	calphaBatteryRequest = []byte{0x21, 0xbb, 0x0b}
	calphaSidetonePrefix = []byte{0x21, 0xbb, 0x10}
	calphaInactivePrefix = []byte{0x21, 0xbb, 0x12}
)

// calphaCurve converts pack voltage to percent; linear fit of the 3300 to
// 4200 mV discharge window.
var calphaCurve = battery.Polynomial{-1100.0 / 3, 1.0 / 9}

// HyperXCloudAlphaWireless drives the Cloud Alpha Wireless dongle. Unlike
// the Cloud Flight it reports raw pack voltage and leaves the percentage
// estimation to the host.
type HyperXCloudAlphaWireless struct {
	headset.Unimplemented
	model   *headset.Model
	timeout time.Duration
}

func NewHyperXCloudAlphaWireless(opts Options) *HyperXCloudAlphaWireless {
	t := opts.Timeout
	if t == 0 {
		t = 5 * time.Second
	}
	return &HyperXCloudAlphaWireless{
		model: &headset.Model{
			Name:       "HyperX Cloud Alpha Wireless",
			VendorID:   hpVendorID,
			ProductIDs: []uint16{0x098d},
			Capabilities: headset.Caps(
				headset.Sidetone,
				headset.BatteryStatus,
				headset.InactiveTime,
			),
			DefaultRoute: headset.Route{Interface: 3, UsagePage: 0xff90, UsageID: 0x0001},
		},
		timeout: t,
	}
}

func (d *HyperXCloudAlphaWireless) Model() *headset.Model { return d.model }

func (d *HyperXCloudAlphaWireless) Battery(dev hid.Device) (headset.BatteryResult, error) {
	if _, err := dev.Write(calphaBatteryRequest); err != nil {
		return headset.BatteryResult{}, headset.ErrHID("cloud alpha battery write", err)
	}
	resp := make([]byte, calphaRespLen)
	n, err := dev.ReadWithTimeout(resp, d.timeout)
	if err != nil {
		return headset.BatteryResult{}, headset.ErrHID("cloud alpha battery read", err)
	}
	if n == 0 {
		return headset.BatteryResult{}, headset.ErrTimeout("no battery response within %v", d.timeout)
	}
	if n < calphaVoltageOffset+2 {
		return headset.BatteryResult{}, headset.ErrProtocol("battery response truncated: %d bytes", n)
	}

	voltage := binary.BigEndian.Uint16(resp[calphaVoltageOffset : calphaVoltageOffset+2])
	state := headset.BatteryDischarging
	if resp[calphaChargeOffset] != 0 {
		state = headset.BatteryCharging
	}
	raw := make([]byte, n)
	copy(raw, resp[:n])
	return headset.BatteryResult{
		State:     state,
		Level:     calphaCurve.Estimate(voltage),
		VoltageMV: voltage,
		Raw:       raw,
	}, nil
}

func (d *HyperXCloudAlphaWireless) SetSidetone(dev hid.Device, level int) (headset.SidetoneResult, error) {
	if level < 0 || level > 128 {
		return headset.SidetoneResult{}, headset.ErrInvalidParameter("sidetone level %d out of range 0-128", level)
	}
	raw := headset.MapRange(level, 0, 128, 0, calphaSidetoneMax)
	cmd := append(append([]byte{}, calphaSidetonePrefix...), byte(raw))
	if _, err := dev.Write(cmd); err != nil {
		return headset.SidetoneResult{}, headset.ErrHID("cloud alpha sidetone write", err)
	}
	return headset.SidetoneResult{Level: level, Raw: raw, DeviceMin: 0, DeviceMax: calphaSidetoneMax}, nil
}

func (d *HyperXCloudAlphaWireless) SetInactiveTime(dev hid.Device, minutes int) error {
	if minutes < 0 || minutes > calphaInactiveMax {
		return headset.ErrInvalidParameter("inactive time %d out of range 0-%d minutes", minutes, calphaInactiveMax)
	}
	cmd := append(append([]byte{}, calphaInactivePrefix...), byte(minutes))
	if _, err := dev.Write(cmd); err != nil {
		return headset.ErrHID("cloud alpha inactive time write", err)
	}
	return nil
}
