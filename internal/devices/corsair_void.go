package devices

import (
	"log/slog"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
	"github.com/Sapd/HeadsetControl-sub001/internal/protocol/corsair"
)

// Corsair Void family wireless constants.
const (
	corsairVendorID = 0x1b1c

	voidCmdLights       = 0xc8
	voidCmdBattery      = 0xc9
	voidCmdNotification = 0xca
	voidCmdMicLED       = 0xcb

	voidBatteryArg = 0x64

	// voidSidetoneLen is the size of the sidetone feature report; the
	// level rides in its last byte.
	voidSidetoneLen = 12

	voidSidetoneMax = 255
	voidMicLEDMax   = 3
	voidSoundMax    = 1
)

// CorsairVoid drives the Void Pro / Elite wireless receivers.
type CorsairVoid struct {
	headset.Unimplemented
	model *headset.Model
	proto corsair.Protocol
	// quirkPID arms the V2 firmware battery quirk.
	quirkPID uint16
}

func NewCorsairVoid(opts Options) *CorsairVoid {
	return &CorsairVoid{
		model: &headset.Model{
			Name:     "Corsair Void (Pro/Elite)",
			VendorID: corsairVendorID,
			ProductIDs: []uint16{
				0x0a14, 0x0a16, 0x0a1a, 0x0a2b, 0x0a55,
			},
			Capabilities: headset.Caps(
				headset.Sidetone,
				headset.BatteryStatus,
				headset.NotificationSound,
				headset.Lights,
				headset.MicMuteLEDBrightness,
			),
			DefaultRoute: headset.Route{Interface: 3, UsagePage: 0xff42, UsageID: 0x0001},
		},
		proto: corsair.Protocol{Timeout: opts.Timeout},
	}
}

// NewCorsairVoidV2 covers the V2 wireless revision, whose firmware
// sometimes answers the battery query with its own product id + 1.
func NewCorsairVoidV2(opts Options) *CorsairVoid {
	d := NewCorsairVoid(opts)
	d.model.Name = "Corsair Void V2 Wireless"
	d.model.ProductIDs = []uint16{0x0a78}
	d.quirkPID = 0x0a78
	return d
}

func (d *CorsairVoid) Model() *headset.Model { return d.model }

func (d *CorsairVoid) SetSidetone(dev hid.Device, level int) (headset.SidetoneResult, error) {
	if level < 0 || level > 128 {
		return headset.SidetoneResult{}, headset.ErrInvalidParameter("sidetone level %d out of range 0-128", level)
	}
	raw := headset.MapRange(level, 0, 128, 0, voidSidetoneMax)
	report := make([]byte, voidSidetoneLen)
	copy(report, []byte{0xff, 0x0b, 0x00, 0xff, 0x04, 0x0e, 0xff, 0x05, 0x01, 0x04, 0x24})
	report[voidSidetoneLen-1] = byte(raw)
	if _, err := dev.SendFeatureReport(report); err != nil {
		return headset.SidetoneResult{}, headset.ErrHID("void sidetone feature report", err)
	}
	return headset.SidetoneResult{Level: level, Raw: raw, DeviceMin: 0, DeviceMax: voidSidetoneMax}, nil
}

func (d *CorsairVoid) Battery(dev hid.Device) (headset.BatteryResult, error) {
	res, err := d.proto.Battery(dev, corsair.BatterySpec{
		Request:  []byte{voidCmdBattery, voidBatteryArg},
		QuirkPID: d.quirkPID,
	})
	if err != nil {
		return headset.BatteryResult{}, err
	}
	if len(res.Raw) >= corsair.BatteryResponseLen {
		if dec, derr := corsair.DecodeBattery(res.Raw); derr == nil && dec.MicUp {
			slog.Debug("microphone is up", slog.String("device", d.model.Name))
		}
	}
	return res, nil
}

func (d *CorsairVoid) PlayNotification(dev hid.Device, soundID int) error {
	if soundID < 0 || soundID > voidSoundMax {
		return headset.ErrInvalidParameter("notification sound %d out of range 0-%d", soundID, voidSoundMax)
	}
	if _, err := dev.Write([]byte{voidCmdNotification, 0x02, byte(soundID)}); err != nil {
		return headset.ErrHID("void notification write", err)
	}
	return nil
}

func (d *CorsairVoid) SetLights(dev hid.Device, on bool) error {
	if _, err := dev.Write([]byte{voidCmdLights, corsair.LightsValue(on)}); err != nil {
		return headset.ErrHID("void lights write", err)
	}
	return nil
}

func (d *CorsairVoid) SetMicMuteLEDBrightness(dev hid.Device, level int) error {
	if level < 0 || level > 128 {
		return headset.ErrInvalidParameter("brightness %d out of range 0-128", level)
	}
	raw := headset.MapRange(level, 0, 128, 0, voidMicLEDMax)
	if _, err := dev.Write([]byte{voidCmdMicLED, byte(raw)}); err != nil {
		return headset.ErrHID("void mic led write", err)
	}
	return nil
}
