package devices

import (
	"time"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
	"github.com/Sapd/HeadsetControl-sub001/internal/protocol/steelseries"
)

const (
	novaProCmdSidetone   = 0x39
	novaProCmdParametric = 0x49
	novaProCmdPreset     = 0x58
	novaProCmdMicLED     = 0xae
	novaProCmdMicVolume  = 0x37
	novaProCmdSave       = 0x09

	novaProEqBands  = 10
	novaProEqMax    = 12.0
	novaProEqStep   = 0.5
	novaProPresets  = 4
	novaProLevelMax = 0x0a

	// novaProFrameDelay is the base station's minimum gap between
	// consecutive parametric band frames; faster writes get dropped.
	novaProFrameDelay = 75 * time.Millisecond
)

// SteelSeriesArctisNovaPro drives the Nova Pro wired base station. All
// traffic goes over feature reports.
type SteelSeriesArctisNovaPro struct {
	headset.Unimplemented
	model *headset.Model
	proto steelseries.Nova
}

func NewSteelSeriesArctisNovaPro(opts Options) *SteelSeriesArctisNovaPro {
	return &SteelSeriesArctisNovaPro{
		model: &headset.Model{
			Name:       "SteelSeries Arctis Nova Pro",
			VendorID:   steelseriesVendorID,
			ProductIDs: []uint16{0x12e0, 0x12e5},
			Capabilities: headset.Caps(
				headset.Sidetone,
				headset.ParametricEqualizer,
				headset.EqualizerPreset,
				headset.MicMuteLEDBrightness,
				headset.MicVolume,
			),
			DefaultRoute: headset.Route{Interface: 4, UsagePage: 0xffc0, UsageID: 0x0001},
			Equalizer: &headset.EqualizerInfo{
				Bands:   novaProEqBands,
				MinGain: -novaProEqMax,
				MaxGain: novaProEqMax,
				Step:    novaProEqStep,
				Presets: novaProPresets,
				Filters: []headset.FilterType{
					headset.FilterLowShelf,
					headset.FilterPeaking,
					headset.FilterHighShelf,
					headset.FilterLowPass,
					headset.FilterHighPass,
				},
			},
		},
		proto: steelseries.Nova{UseFeatureReports: true, Timeout: opts.Timeout},
	}
}

func (d *SteelSeriesArctisNovaPro) Model() *headset.Model { return d.model }

func (d *SteelSeriesArctisNovaPro) save(dev hid.Device) error {
	return d.proto.Send(dev, []byte{0x00, novaProCmdSave})
}

func (d *SteelSeriesArctisNovaPro) SetSidetone(dev hid.Device, level int) (headset.SidetoneResult, error) {
	if level < 0 || level > 128 {
		return headset.SidetoneResult{}, headset.ErrInvalidParameter("sidetone level %d out of range 0-128", level)
	}
	raw := headset.MapRange(level, 0, 128, 0, novaProLevelMax)
	if err := d.proto.Send(dev, []byte{0x00, novaProCmdSidetone, byte(raw)}); err != nil {
		return headset.SidetoneResult{}, err
	}
	if err := d.save(dev); err != nil {
		return headset.SidetoneResult{}, err
	}
	return headset.SidetoneResult{Level: level, Raw: raw, DeviceMin: 0, DeviceMax: novaProLevelMax}, nil
}

// SetParametricEqualizer programs one filter per frame, band slots beyond
// the supplied filters cleared with the disabled tuple. The base station
// needs its settle gap between frames.
func (d *SteelSeriesArctisNovaPro) SetParametricEqualizer(dev hid.Device, bands []headset.ParametricBand) (headset.ParametricEQResult, error) {
	if len(bands) > novaProEqBands {
		return headset.ParametricEQResult{}, headset.ErrInvalidParameter("%d filters exceed the %d band slots", len(bands), novaProEqBands)
	}
	for _, b := range bands {
		if b.GainDB < -novaProEqMax || b.GainDB > novaProEqMax {
			return headset.ParametricEQResult{}, headset.ErrInvalidParameter("filter gain %.1f out of range ±%.0f dB", b.GainDB, novaProEqMax)
		}
	}

	for slot := 0; slot < novaProEqBands; slot++ {
		var tuple []byte
		if slot < len(bands) {
			var err error
			tuple, err = steelseries.EncodeBand(bands[slot], novaProEqStep)
			if err != nil {
				return headset.ParametricEQResult{}, err
			}
		} else {
			tuple = steelseries.DisabledBand()
		}
		cmd := append([]byte{0x00, novaProCmdParametric, byte(slot)}, tuple...)
		if slot > 0 {
			time.Sleep(novaProFrameDelay)
		}
		if err := d.proto.Send(dev, cmd); err != nil {
			return headset.ParametricEQResult{}, err
		}
	}
	if err := d.save(dev); err != nil {
		return headset.ParametricEQResult{}, err
	}

	out := make([]headset.ParametricBand, len(bands))
	copy(out, bands)
	return headset.ParametricEQResult{Bands: out}, nil
}

// SetEqualizerPreset selects one of the four curves stored on the base
// station itself.
func (d *SteelSeriesArctisNovaPro) SetEqualizerPreset(dev hid.Device, index int) error {
	if index < 0 || index >= novaProPresets {
		return headset.ErrInvalidParameter("preset %d out of range 0-%d", index, novaProPresets-1)
	}
	if err := d.proto.Send(dev, []byte{0x00, novaProCmdPreset, byte(index)}); err != nil {
		return err
	}
	return d.save(dev)
}

func (d *SteelSeriesArctisNovaPro) SetMicMuteLEDBrightness(dev hid.Device, level int) error {
	if level < 0 || level > 128 {
		return headset.ErrInvalidParameter("brightness %d out of range 0-128", level)
	}
	raw := headset.MapRange(level, 0, 128, 0, novaProLevelMax)
	if err := d.proto.Send(dev, []byte{0x00, novaProCmdMicLED, byte(raw)}); err != nil {
		return err
	}
	return d.save(dev)
}

func (d *SteelSeriesArctisNovaPro) SetMicVolume(dev hid.Device, level int) error {
	if level < 0 || level > 128 {
		return headset.ErrInvalidParameter("microphone volume %d out of range 0-128", level)
	}
	raw := headset.MapRange(level, 0, 128, 0, novaProLevelMax)
	if err := d.proto.Send(dev, []byte{0x00, novaProCmdMicVolume, byte(raw)}); err != nil {
		return err
	}
	return d.save(dev)
}
