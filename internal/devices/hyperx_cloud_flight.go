package devices

import (
	"time"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

const (
	hyperxVendorID = 0x0951
	hpVendorID     = 0x03f0

	cflightBatteryRespLen = 20
	cflightChargeOffset   = 3
	cflightLevelOffset    = 7
)

var (
	cflightBatteryRequest = []byte{0x21, 0xff, 0x05}
	cflightLightsPrefix   = []byte{0x0f, 0x00}
)

// Charge-state bytes the dongle reports at the charge offset.
const (
	cflightChargingA = 0x10
	cflightChargingB = 0x11
)

// HyperXCloudFlight drives the Cloud Flight wireless dongle. The firmware
// reports charge as a direct percentage, no voltage conversion involved.
type HyperXCloudFlight struct {
	headset.Unimplemented
	model   *headset.Model
	timeout time.Duration
}

func NewHyperXCloudFlight(opts Options) *HyperXCloudFlight {
	t := opts.Timeout
	if t == 0 {
		t = 5 * time.Second
	}
	return &HyperXCloudFlight{
		model: &headset.Model{
			Name:       "HyperX Cloud Flight",
			VendorID:   hyperxVendorID,
			ProductIDs: []uint16{0x16c4, 0x1723},
			Capabilities: headset.Caps(
				headset.BatteryStatus,
				headset.Lights,
			),
			DefaultRoute: headset.Route{Interface: 2, UsagePage: 0xff90, UsageID: 0x0001},
		},
		timeout: t,
	}
}

func (d *HyperXCloudFlight) Model() *headset.Model { return d.model }

func (d *HyperXCloudFlight) Battery(dev hid.Device) (headset.BatteryResult, error) {
	if _, err := dev.Write(cflightBatteryRequest); err != nil {
		return headset.BatteryResult{}, headset.ErrHID("cloud flight battery write", err)
	}
	resp := make([]byte, cflightBatteryRespLen)
	n, err := dev.ReadWithTimeout(resp, d.timeout)
	if err != nil {
		return headset.BatteryResult{}, headset.ErrHID("cloud flight battery read", err)
	}
	if n == 0 {
		return headset.BatteryResult{}, headset.ErrTimeout("no battery response within %v", d.timeout)
	}
	if n <= cflightLevelOffset {
		return headset.BatteryResult{}, headset.ErrProtocol("battery response truncated: %d bytes", n)
	}

	state := headset.BatteryDischarging
	if resp[cflightChargeOffset] == cflightChargingA || resp[cflightChargeOffset] == cflightChargingB {
		state = headset.BatteryCharging
	}
	level := int(resp[cflightLevelOffset])
	if level > 100 {
		level = 100
	}
	raw := make([]byte, n)
	copy(raw, resp[:n])
	return headset.BatteryResult{State: state, Level: level, Raw: raw}, nil
}

func (d *HyperXCloudFlight) SetLights(dev hid.Device, on bool) error {
	value := byte(0x00)
	if on {
		value = 0x01
	}
	cmd := append(append([]byte{}, cflightLightsPrefix...), value)
	if _, err := dev.Write(cmd); err != nil {
		return headset.ErrHID("cloud flight lights write", err)
	}
	return nil
}
