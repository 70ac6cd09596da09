package devices

import (
	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

const (
	roccatVendorID = 0x1e7d

	eloReportID    = 0xff
	eloCmdLights   = 0x01
	eloCmdSidetone = 0x04
	eloCmdInactive = 0x06

	eloInactiveMax = 90
)

// eloSidetoneRaw maps the normalized level onto the firmware's exponential
// loudness curve: each 16 levels double the raw value, so 0 stays silent
// and 128 saturates at 255.
func eloSidetoneRaw(level int) int {
	return 1<<(level/16) - 1
}

// RoccatEloAir drives the Elo 7.1 Air dongle.
type RoccatEloAir struct {
	headset.Unimplemented
	model *headset.Model
}

func NewRoccatEloAir(Options) *RoccatEloAir {
	return &RoccatEloAir{
		model: &headset.Model{
			Name:       "ROCCAT Elo 7.1 Air",
			VendorID:   roccatVendorID,
			ProductIDs: []uint16{0x3a37},
			Capabilities: headset.Caps(
				headset.Sidetone,
				headset.Lights,
				headset.InactiveTime,
			),
			DefaultRoute: headset.Route{Interface: 3, UsagePage: 0xff00, UsageID: 0x0001},
		},
	}
}

func (d *RoccatEloAir) Model() *headset.Model { return d.model }

func (d *RoccatEloAir) SetSidetone(dev hid.Device, level int) (headset.SidetoneResult, error) {
	if level < 0 || level > 128 {
		return headset.SidetoneResult{}, headset.ErrInvalidParameter("sidetone level %d out of range 0-128", level)
	}
	raw := eloSidetoneRaw(level)
	if _, err := dev.Write([]byte{eloReportID, eloCmdSidetone, 0x00, byte(raw)}); err != nil {
		return headset.SidetoneResult{}, headset.ErrHID("elo sidetone write", err)
	}
	return headset.SidetoneResult{Level: level, Raw: raw, DeviceMin: 0, DeviceMax: 255}, nil
}

func (d *RoccatEloAir) SetLights(dev hid.Device, on bool) error {
	value := byte(0x00)
	if on {
		value = 0x01
	}
	if _, err := dev.Write([]byte{eloReportID, eloCmdLights, 0x00, value}); err != nil {
		return headset.ErrHID("elo lights write", err)
	}
	return nil
}

func (d *RoccatEloAir) SetInactiveTime(dev hid.Device, minutes int) error {
	if minutes < 0 || minutes > eloInactiveMax {
		return headset.ErrInvalidParameter("inactive time %d out of range 0-%d minutes", minutes, eloInactiveMax)
	}
	if _, err := dev.Write([]byte{eloReportID, eloCmdInactive, 0x00, byte(minutes)}); err != nil {
		return headset.ErrHID("elo inactive time write", err)
	}
	return nil
}
