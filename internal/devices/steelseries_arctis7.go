package devices

import (
	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
	"github.com/Sapd/HeadsetControl-sub001/internal/protocol/steelseries"
)

const (
	steelseriesVendorID = 0x1038

	arctis7CmdSidetone     = 0x39
	arctis7CmdBattery      = 0x18
	arctis7CmdBatteryArg0  = 0x06
	arctis7CmdChatMix      = 0x24
	arctis7CmdLights       = 0x55
	arctis7CmdInactive     = 0x51
	arctis7CmdVoicePrompts = 0x23
	arctis7CmdNotification = 0x40

	arctis7InactiveMax = 90
	arctis7SoundMax    = 1
)

// Arctis 7: sidetone has four firmware steps.
func arctis7SidetoneBucket(level int) byte {
	b := level / 32
	if b > 3 {
		b = 3
	}
	return byte(b)
}

// SteelSeriesArctis7 drives the Arctis 7 and its 2017/2019 revisions over
// the legacy 31-byte protocol.
type SteelSeriesArctis7 struct {
	headset.Unimplemented
	model *headset.Model
	proto steelseries.Legacy
}

func NewSteelSeriesArctis7(opts Options) *SteelSeriesArctis7 {
	return &SteelSeriesArctis7{
		model: &headset.Model{
			Name:       "SteelSeries Arctis 7",
			VendorID:   steelseriesVendorID,
			ProductIDs: []uint16{0x1260, 0x12ad},
			Capabilities: headset.Caps(
				headset.Sidetone,
				headset.BatteryStatus,
				headset.NotificationSound,
				headset.Lights,
				headset.InactiveTime,
				headset.ChatMix,
				headset.VoicePrompts,
			),
			DefaultRoute: headset.Route{Interface: 5, UsagePage: 0xffc0, UsageID: 0x0001},
		},
		proto: steelseries.Legacy{
			Save:    []byte{0x06, 0x09},
			Timeout: opts.Timeout,
		},
	}
}

func (d *SteelSeriesArctis7) Model() *headset.Model { return d.model }

func (d *SteelSeriesArctis7) SetSidetone(dev hid.Device, level int) (headset.SidetoneResult, error) {
	if level < 0 || level > 128 {
		return headset.SidetoneResult{}, headset.ErrInvalidParameter("sidetone level %d out of range 0-128", level)
	}
	bucket := arctis7SidetoneBucket(level)
	if err := d.proto.Apply(dev, []byte{arctis7CmdSidetone, bucket}); err != nil {
		return headset.SidetoneResult{}, err
	}
	return headset.SidetoneResult{Level: level, Raw: int(bucket), DeviceMin: 0, DeviceMax: 3}, nil
}

func (d *SteelSeriesArctis7) Battery(dev hid.Device) (headset.BatteryResult, error) {
	return d.proto.Battery(dev, steelseries.LegacyBatterySpec{
		Request:      []byte{arctis7CmdBatteryArg0, arctis7CmdBattery},
		LevelOffset:  2,
		LevelMin:     0,
		LevelMax:     100,
		StatusOffset: -1,
	})
}

func (d *SteelSeriesArctis7) ChatMix(dev hid.Device) (headset.ChatMixResult, error) {
	return d.proto.ChatMix(dev, steelseries.LegacyChatMixSpec{
		Request:    []byte{arctis7CmdChatMix},
		GameOffset: 1,
		ChatOffset: 2,
		RawMax:     100,
	})
}

func (d *SteelSeriesArctis7) SetLights(dev hid.Device, on bool) error {
	value := byte(0x00)
	if on {
		value = 0x01
	}
	return d.proto.Apply(dev, []byte{arctis7CmdLights, value})
}

func (d *SteelSeriesArctis7) SetInactiveTime(dev hid.Device, minutes int) error {
	if minutes < 0 || minutes > arctis7InactiveMax {
		return headset.ErrInvalidParameter("inactive time %d out of range 0-%d minutes", minutes, arctis7InactiveMax)
	}
	return d.proto.Apply(dev, []byte{arctis7CmdInactive, byte(minutes)})
}

func (d *SteelSeriesArctis7) SetVoicePrompts(dev hid.Device, on bool) error {
	value := byte(0x00)
	if on {
		value = 0x01
	}
	return d.proto.Apply(dev, []byte{arctis7CmdVoicePrompts, value})
}

// PlayNotification triggers one of the built-in prompt sounds; nothing to
// persist, so no save frame follows.
func (d *SteelSeriesArctis7) PlayNotification(dev hid.Device, soundID int) error {
	if soundID < 0 || soundID > arctis7SoundMax {
		return headset.ErrInvalidParameter("notification sound %d out of range 0-%d", soundID, arctis7SoundMax)
	}
	return d.proto.Write(dev, []byte{arctis7CmdNotification, byte(soundID)})
}
