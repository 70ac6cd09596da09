package devices

import (
	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
	"github.com/Sapd/HeadsetControl-sub001/internal/protocol/steelseries"
)

const (
	nova7CmdSidetone  = 0x39
	nova7CmdEqualizer = 0x33
	nova7CmdInactive  = 0xa3
	nova7CmdLimiter   = 0x27
	nova7CmdBTPower   = 0xb2
	nova7CmdBTCall    = 0xb3
	nova7CmdSave      = 0x09
	nova7CmdStatus    = 0xb0

	nova7EqBands   = 10
	nova7EqMaxGain = 10.0
	nova7EqStep    = 0.5
	// nova7EqFlat is the wire byte for 0 dB; gains offset from it in step
	// units.
	nova7EqFlat = 0x14

	nova7InactiveMax = 90
	nova7BTCallMax   = 2
)

// nova7Presets are the stored firmware curves in dB per band: flat, bass
// boost, focus, smiley.
var nova7Presets = [][]float64{
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{3.5, 5.5, 4, 1, -1.5, -1.5, -1, -1, -1, -1},
	{-0.5, -1, -1, -0.5, 1.5, 2, 2.5, 2.5, 2, 1.5},
	{4, 3.5, 1.5, -1.5, -2, -1.5, 0, 2, 3.5, 4},
}

var nova7StatusSpec = steelseries.NovaStatusSpec{
	Request:       []byte{0x00, nova7CmdStatus},
	BatteryOffset: 2,
	BatteryMin:    0x00,
	BatteryMax:    0x04,
	ChargeOffset:  3,
	OnlineOffset:  1,
	GameOffset:    4,
	ChatOffset:    5,
	DialMax:       100,
}

// SteelSeriesArctisNova7 drives the Arctis Nova 7 dongle over 64-byte
// interrupt frames.
type SteelSeriesArctisNova7 struct {
	headset.Unimplemented
	model *headset.Model
	proto steelseries.Nova
}

func NewSteelSeriesArctisNova7(opts Options) *SteelSeriesArctisNova7 {
	return &SteelSeriesArctisNova7{
		model: &headset.Model{
			Name:       "SteelSeries Arctis Nova 7",
			VendorID:   steelseriesVendorID,
			ProductIDs: []uint16{0x2202, 0x2206, 0x220a},
			Capabilities: headset.Caps(
				headset.Sidetone,
				headset.BatteryStatus,
				headset.InactiveTime,
				headset.ChatMix,
				headset.Equalizer,
				headset.EqualizerPreset,
				headset.VolumeLimiter,
				headset.BTWhenPoweredOn,
				headset.BTCallVolume,
			),
			DefaultRoute: headset.Route{Interface: 3, UsagePage: 0xffc0, UsageID: 0x0001},
			Equalizer: &headset.EqualizerInfo{
				Bands:   nova7EqBands,
				MinGain: -nova7EqMaxGain,
				MaxGain: nova7EqMaxGain,
				Step:    nova7EqStep,
				Presets: len(nova7Presets),
			},
		},
		proto: steelseries.Nova{Timeout: opts.Timeout},
	}
}

func (d *SteelSeriesArctisNova7) Model() *headset.Model { return d.model }

func (d *SteelSeriesArctisNova7) save(dev hid.Device) error {
	return d.proto.Send(dev, []byte{0x00, nova7CmdSave})
}

func (d *SteelSeriesArctisNova7) SetSidetone(dev hid.Device, level int) (headset.SidetoneResult, error) {
	if level < 0 || level > 128 {
		return headset.SidetoneResult{}, headset.ErrInvalidParameter("sidetone level %d out of range 0-128", level)
	}
	bucket := arctis7SidetoneBucket(level)
	if err := d.proto.Send(dev, []byte{0x00, nova7CmdSidetone, bucket}); err != nil {
		return headset.SidetoneResult{}, err
	}
	if err := d.save(dev); err != nil {
		return headset.SidetoneResult{}, err
	}
	return headset.SidetoneResult{Level: level, Raw: int(bucket), DeviceMin: 0, DeviceMax: 3}, nil
}

func (d *SteelSeriesArctisNova7) Battery(dev hid.Device) (headset.BatteryResult, error) {
	return d.proto.Battery(dev, nova7StatusSpec)
}

func (d *SteelSeriesArctisNova7) ChatMix(dev hid.Device) (headset.ChatMixResult, error) {
	return d.proto.ChatMix(dev, nova7StatusSpec)
}

func (d *SteelSeriesArctisNova7) SetInactiveTime(dev hid.Device, minutes int) error {
	if minutes < 0 || minutes > nova7InactiveMax {
		return headset.ErrInvalidParameter("inactive time %d out of range 0-%d minutes", minutes, nova7InactiveMax)
	}
	if err := d.proto.Send(dev, []byte{0x00, nova7CmdInactive, byte(minutes)}); err != nil {
		return err
	}
	return d.save(dev)
}

// SetEqualizer writes all ten band gains in one frame: the command pair,
// one offset-encoded byte per band, and a terminator.
func (d *SteelSeriesArctisNova7) SetEqualizer(dev hid.Device, bands []float64) (headset.EqualizerResult, error) {
	if len(bands) != nova7EqBands {
		return headset.EqualizerResult{}, headset.ErrInvalidParameter("equalizer wants %d bands, got %d", nova7EqBands, len(bands))
	}
	cmd := make([]byte, 0, 2+nova7EqBands+1)
	cmd = append(cmd, 0x00, nova7CmdEqualizer)
	for i, gain := range bands {
		if gain < -nova7EqMaxGain || gain > nova7EqMaxGain {
			return headset.EqualizerResult{}, headset.ErrInvalidParameter("band %d gain %.1f out of range ±%.0f dB", i, gain, nova7EqMaxGain)
		}
		cmd = append(cmd, byte(nova7EqFlat+int(gain/nova7EqStep)))
	}
	cmd = append(cmd, 0x00)
	if err := d.proto.Send(dev, cmd); err != nil {
		return headset.EqualizerResult{}, err
	}
	if err := d.save(dev); err != nil {
		return headset.EqualizerResult{}, err
	}
	out := make([]float64, len(bands))
	copy(out, bands)
	return headset.EqualizerResult{Bands: out}, nil
}

func (d *SteelSeriesArctisNova7) SetEqualizerPreset(dev hid.Device, index int) error {
	if index < 0 || index >= len(nova7Presets) {
		return headset.ErrInvalidParameter("preset %d out of range 0-%d", index, len(nova7Presets)-1)
	}
	_, err := d.SetEqualizer(dev, nova7Presets[index])
	return err
}

func (d *SteelSeriesArctisNova7) SetVolumeLimiter(dev hid.Device, on bool) error {
	value := byte(0x00)
	if on {
		value = 0x01
	}
	if err := d.proto.Send(dev, []byte{0x00, nova7CmdLimiter, value}); err != nil {
		return err
	}
	return d.save(dev)
}

func (d *SteelSeriesArctisNova7) SetBTWhenPoweredOn(dev hid.Device, on bool) error {
	value := byte(0x00)
	if on {
		value = 0x01
	}
	if err := d.proto.Send(dev, []byte{0x00, nova7CmdBTPower, value}); err != nil {
		return err
	}
	return d.save(dev)
}

// SetBTCallVolume picks how far game audio ducks during a bluetooth call:
// three firmware steps from none to -12 dB.
func (d *SteelSeriesArctisNova7) SetBTCallVolume(dev hid.Device, level int) error {
	if level < 0 || level > 128 {
		return headset.ErrInvalidParameter("bt call volume %d out of range 0-128", level)
	}
	raw := headset.MapRange(level, 0, 128, 0, nova7BTCallMax)
	if err := d.proto.Send(dev, []byte{0x00, nova7CmdBTCall, byte(raw)}); err != nil {
		return err
	}
	return d.save(dev)
}
