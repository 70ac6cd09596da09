package devices

import (
	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

const (
	audezeVendorID = 0x3329

	maxwellReportID    = 0x06
	maxwellCmdSidetone = 0x2c
	maxwellCmdLimiter  = 0x2e
	maxwellCmdPrompts  = 0x31

	maxwellSidetoneMax = 10
)

// AudezeMaxwell drives the Maxwell wireless dongle.
type AudezeMaxwell struct {
	headset.Unimplemented
	model *headset.Model
}

func NewAudezeMaxwell(Options) *AudezeMaxwell {
	return &AudezeMaxwell{
		model: &headset.Model{
			Name:       "Audeze Maxwell",
			VendorID:   audezeVendorID,
			ProductIDs: []uint16{0x0003},
			Capabilities: headset.Caps(
				headset.Sidetone,
				headset.VoicePrompts,
				headset.VolumeLimiter,
			),
			DefaultRoute: headset.Route{Interface: 5, UsagePage: 0xffa0, UsageID: 0x0001},
		},
	}
}

func (d *AudezeMaxwell) Model() *headset.Model { return d.model }

func (d *AudezeMaxwell) SetSidetone(dev hid.Device, level int) (headset.SidetoneResult, error) {
	if level < 0 || level > 128 {
		return headset.SidetoneResult{}, headset.ErrInvalidParameter("sidetone level %d out of range 0-128", level)
	}
	raw := headset.MapRange(level, 0, 128, 0, maxwellSidetoneMax)
	if _, err := dev.Write([]byte{maxwellReportID, maxwellCmdSidetone, byte(raw)}); err != nil {
		return headset.SidetoneResult{}, headset.ErrHID("maxwell sidetone write", err)
	}
	return headset.SidetoneResult{Level: level, Raw: raw, DeviceMin: 0, DeviceMax: maxwellSidetoneMax}, nil
}

func (d *AudezeMaxwell) SetVoicePrompts(dev hid.Device, on bool) error {
	value := byte(0x00)
	if on {
		value = 0x01
	}
	if _, err := dev.Write([]byte{maxwellReportID, maxwellCmdPrompts, value}); err != nil {
		return headset.ErrHID("maxwell voice prompts write", err)
	}
	return nil
}

func (d *AudezeMaxwell) SetVolumeLimiter(dev hid.Device, on bool) error {
	value := byte(0x00)
	if on {
		value = 0x01
	}
	if _, err := dev.Write([]byte{maxwellReportID, maxwellCmdLimiter, value}); err != nil {
		return headset.ErrHID("maxwell volume limiter write", err)
	}
	return nil
}
