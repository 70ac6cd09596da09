package devices

import (
	"time"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
	"github.com/Sapd/HeadsetControl-sub001/internal/protocol/steelseries"
)

const (
	arctis9CmdStatus       = 0x20
	arctis9CmdRotateToMute = 0xa3

	// arctis9ReadDelay is the dongle's settle time between the status
	// request and the response becoming readable.
	arctis9ReadDelay = 60 * time.Millisecond

	// Raw charge bounds of the status response.
	arctis9BatteryMin = 0x64
	arctis9BatteryMax = 0x9a
)

// SteelSeriesArctis9 drives the Arctis 9 / 9X dongle. Same 31-byte frames
// as the Arctis 7 generation but a different save opcode and a combined
// status response.
type SteelSeriesArctis9 struct {
	headset.Unimplemented
	model *headset.Model
	proto steelseries.Legacy
}

func NewSteelSeriesArctis9(opts Options) *SteelSeriesArctis9 {
	return &SteelSeriesArctis9{
		model: &headset.Model{
			Name:       "SteelSeries Arctis 9",
			VendorID:   steelseriesVendorID,
			ProductIDs: []uint16{0x12c2},
			Capabilities: headset.Caps(
				headset.BatteryStatus,
				headset.ChatMix,
				headset.RotateToMute,
			),
			DefaultRoute: headset.Route{Interface: 3, UsagePage: 0xffc0, UsageID: 0x0001},
		},
		proto: steelseries.Legacy{
			Save:      []byte{0x90, 0x00},
			ReadDelay: arctis9ReadDelay,
			Timeout:   opts.Timeout,
		},
	}
}

func (d *SteelSeriesArctis9) Model() *headset.Model { return d.model }

func (d *SteelSeriesArctis9) Battery(dev hid.Device) (headset.BatteryResult, error) {
	return d.proto.Battery(dev, steelseries.LegacyBatterySpec{
		Request:       []byte{arctis9CmdStatus},
		LevelOffset:   3,
		LevelMin:      arctis9BatteryMin,
		LevelMax:      arctis9BatteryMax,
		StatusOffset:  4,
		OfflineValue:  0x01,
		ChargingValue: 0x02,
	})
}

func (d *SteelSeriesArctis9) ChatMix(dev hid.Device) (headset.ChatMixResult, error) {
	return d.proto.ChatMix(dev, steelseries.LegacyChatMixSpec{
		Request:    []byte{arctis9CmdStatus},
		GameOffset: 5,
		ChatOffset: 6,
		RawMax:     100,
	})
}

func (d *SteelSeriesArctis9) SetRotateToMute(dev hid.Device, on bool) error {
	value := byte(0x00)
	if on {
		value = 0x01
	}
	return d.proto.Apply(dev, []byte{arctis9CmdRotateToMute, value})
}
