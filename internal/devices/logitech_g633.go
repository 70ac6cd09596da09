package devices

import (
	"github.com/Sapd/HeadsetControl-sub001/internal/battery"
	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
	"github.com/Sapd/HeadsetControl-sub001/internal/protocol/hidpp"
)

// Logitech G633/G933/G935 family constants. All traffic is long-format
// HID++ through the wireless receiver (the G633 itself is wired but speaks
// the same frames).
const (
	logitechVendorID = 0x046d

	g633SidetoneMax = 100
	g633InactiveMax = 90
	g633LightZones  = 2
	g633LightOn     = 0x01
	g633LightOff    = 0x00
)

var (
	g633SidetoneFeature = []byte{0x07, 0x1e}
	g633BatteryFeature  = []byte{0x08, 0x0a}
	g633InactiveFeature = []byte{0x08, 0x2b}
	g633LightsFeature   = []byte{0x04, 0x3c}
)

// g633Discharge is the measured voltage curve of the family's 1100 mAh
// pack.
var g633Discharge = battery.Calibration{
	{100, 4175}, {95, 4110}, {85, 4030}, {70, 3935}, {55, 3865},
	{40, 3800}, {25, 3730}, {15, 3670}, {5, 3570}, {0, 3400},
}

// LogitechG633 drives the G633/G933/G935 family.
type LogitechG633 struct {
	headset.Unimplemented
	model *headset.Model
	proto hidpp.Protocol
}

func NewLogitechG633(opts Options) *LogitechG633 {
	return &LogitechG633{
		model: &headset.Model{
			Name:       "Logitech G633/G933/G935",
			VendorID:   logitechVendorID,
			ProductIDs: []uint16{0x0a5c, 0x0a5b, 0x0a87, 0x0a8a},
			Capabilities: headset.Caps(
				headset.Sidetone,
				headset.BatteryStatus,
				headset.Lights,
				headset.InactiveTime,
			),
			DefaultRoute: headset.Route{Interface: 3, UsagePage: 0xff43, UsageID: 0x0202},
		},
		proto: hidpp.Protocol{Timeout: opts.Timeout},
	}
}

func (d *LogitechG633) Model() *headset.Model { return d.model }

func (d *LogitechG633) SetSidetone(dev hid.Device, level int) (headset.SidetoneResult, error) {
	if level < 0 || level > 128 {
		return headset.SidetoneResult{}, headset.ErrInvalidParameter("sidetone level %d out of range 0-128", level)
	}
	raw := headset.MapRange(level, 0, 128, 0, g633SidetoneMax)
	payload := append(append([]byte{}, g633SidetoneFeature...), byte(raw))
	if _, err := d.proto.Request(dev, payload); err != nil {
		return headset.SidetoneResult{}, err
	}
	return headset.SidetoneResult{Level: level, Raw: raw, DeviceMin: 0, DeviceMax: g633SidetoneMax}, nil
}

func (d *LogitechG633) Battery(dev hid.Device) (headset.BatteryResult, error) {
	return d.proto.Battery(dev, hidpp.BatterySpec{
		Request:   g633BatteryFeature,
		Estimator: g633Discharge,
	})
}

// SetLights switches the logo and strip zones together; the firmware wants
// one frame per zone.
func (d *LogitechG633) SetLights(dev hid.Device, on bool) error {
	value := byte(g633LightOff)
	if on {
		value = g633LightOn
	}
	for zone := byte(0); zone < g633LightZones; zone++ {
		payload := append(append([]byte{}, g633LightsFeature...), zone, value)
		if _, err := d.proto.Request(dev, payload); err != nil {
			return err
		}
	}
	return nil
}

func (d *LogitechG633) SetInactiveTime(dev hid.Device, minutes int) error {
	if minutes < 0 || minutes > g633InactiveMax {
		return headset.ErrInvalidParameter("inactive time %d out of range 0-%d minutes", minutes, g633InactiveMax)
	}
	return d.proto.SetInactiveTime(dev, g633InactiveFeature, minutes)
}
