package devices

import (
	"errors"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

// TestProfile selects how the synthetic device behaves. The profile is
// fixed at construction; nothing global switches it afterward.
type TestProfile string

const (
	// ProfileNormal answers every operation with plausible data.
	ProfileNormal TestProfile = "normal"
	// ProfileFail fails every operation with a simulated transport error.
	ProfileFail TestProfile = "fail"
	// ProfileOffline reports the headset as out of reach for every
	// operation.
	ProfileOffline TestProfile = "offline"
)

// ParseTestProfile resolves a profile name from the command line.
func ParseTestProfile(name string) (TestProfile, error) {
	switch TestProfile(name) {
	case ProfileNormal, ProfileFail, ProfileOffline:
		return TestProfile(name), nil
	}
	return "", errors.New("unknown test profile " + name)
}

// Synthetic ids; no real vendor owns them.
const (
	TestVendorID  = 0xf00b
	TestProductID = 0xa00c
)

var errSimulated = errors.New("simulated transport failure")

// TestDevice is a hardware-free device covering every capability, used to
// exercise the full pipeline. It never touches the transport it is handed.
type TestDevice struct {
	model   *headset.Model
	profile TestProfile
}

func NewTestDevice(profile TestProfile) *TestDevice {
	return &TestDevice{
		model: &headset.Model{
			Name:         "HeadsetControl Test Device",
			VendorID:     TestVendorID,
			ProductIDs:   []uint16{TestProductID},
			Capabilities: headset.Caps(headset.All()...),
			DefaultRoute: headset.Route{Interface: 0},
			Equalizer: &headset.EqualizerInfo{
				Bands:   10,
				MinGain: -10,
				MaxGain: 10,
				Step:    0.5,
				Presets: 4,
				Filters: []headset.FilterType{
					headset.FilterLowShelf,
					headset.FilterPeaking,
					headset.FilterHighShelf,
				},
			},
		},
		profile: profile,
	}
}

func (d *TestDevice) Model() *headset.Model { return d.model }

// fail maps the non-normal profiles onto their error.
func (d *TestDevice) fail() error {
	switch d.profile {
	case ProfileFail:
		return headset.ErrHID("test device", errSimulated)
	case ProfileOffline:
		return headset.ErrOffline("test device is offline")
	}
	return nil
}

func (d *TestDevice) SetSidetone(_ hid.Device, level int) (headset.SidetoneResult, error) {
	if level < 0 || level > 128 {
		return headset.SidetoneResult{}, headset.ErrInvalidParameter("sidetone level %d out of range 0-128", level)
	}
	if err := d.fail(); err != nil {
		return headset.SidetoneResult{}, err
	}
	return headset.SidetoneResult{Level: level, Raw: level, DeviceMin: 0, DeviceMax: 128}, nil
}

func (d *TestDevice) Battery(hid.Device) (headset.BatteryResult, error) {
	if err := d.fail(); err != nil {
		return headset.BatteryResult{}, err
	}
	return headset.BatteryResult{
		State:          headset.BatteryDischarging,
		Level:          64,
		VoltageMV:      3922,
		TimeToEmptyMin: 612,
	}, nil
}

func (d *TestDevice) PlayNotification(_ hid.Device, soundID int) error {
	if soundID < 0 || soundID > 1 {
		return headset.ErrInvalidParameter("notification sound %d out of range 0-1", soundID)
	}
	return d.fail()
}

func (d *TestDevice) SetLights(hid.Device, bool) error { return d.fail() }

func (d *TestDevice) SetInactiveTime(_ hid.Device, minutes int) error {
	if minutes < 0 || minutes > 90 {
		return headset.ErrInvalidParameter("inactive time %d out of range 0-90 minutes", minutes)
	}
	return d.fail()
}

func (d *TestDevice) ChatMix(hid.Device) (headset.ChatMixResult, error) {
	if err := d.fail(); err != nil {
		return headset.ChatMixResult{}, err
	}
	return headset.ChatMixResult{Level: 64}, nil
}

func (d *TestDevice) SetVoicePrompts(hid.Device, bool) error { return d.fail() }

func (d *TestDevice) SetRotateToMute(hid.Device, bool) error { return d.fail() }

func (d *TestDevice) SetEqualizer(_ hid.Device, bands []float64) (headset.EqualizerResult, error) {
	eq := d.model.Equalizer
	if len(bands) != eq.Bands {
		return headset.EqualizerResult{}, headset.ErrInvalidParameter("equalizer wants %d bands, got %d", eq.Bands, len(bands))
	}
	for i, gain := range bands {
		if gain < eq.MinGain || gain > eq.MaxGain {
			return headset.EqualizerResult{}, headset.ErrInvalidParameter("band %d gain %.1f out of range", i, gain)
		}
	}
	if err := d.fail(); err != nil {
		return headset.EqualizerResult{}, err
	}
	out := make([]float64, len(bands))
	copy(out, bands)
	return headset.EqualizerResult{Bands: out}, nil
}

func (d *TestDevice) SetEqualizerPreset(_ hid.Device, index int) error {
	if index < 0 || index >= d.model.Equalizer.Presets {
		return headset.ErrInvalidParameter("preset %d out of range 0-%d", index, d.model.Equalizer.Presets-1)
	}
	return d.fail()
}

func (d *TestDevice) SetParametricEqualizer(_ hid.Device, bands []headset.ParametricBand) (headset.ParametricEQResult, error) {
	if len(bands) > d.model.Equalizer.Bands {
		return headset.ParametricEQResult{}, headset.ErrInvalidParameter("%d filters exceed the %d band slots", len(bands), d.model.Equalizer.Bands)
	}
	if err := d.fail(); err != nil {
		return headset.ParametricEQResult{}, err
	}
	out := make([]headset.ParametricBand, len(bands))
	copy(out, bands)
	return headset.ParametricEQResult{Bands: out}, nil
}

func (d *TestDevice) SetMicMuteLEDBrightness(_ hid.Device, level int) error {
	if level < 0 || level > 128 {
		return headset.ErrInvalidParameter("brightness %d out of range 0-128", level)
	}
	return d.fail()
}

func (d *TestDevice) SetMicVolume(_ hid.Device, level int) error {
	if level < 0 || level > 128 {
		return headset.ErrInvalidParameter("microphone volume %d out of range 0-128", level)
	}
	return d.fail()
}

func (d *TestDevice) SetVolumeLimiter(hid.Device, bool) error { return d.fail() }

func (d *TestDevice) SetBTWhenPoweredOn(hid.Device, bool) error { return d.fail() }

func (d *TestDevice) SetBTCallVolume(_ hid.Device, level int) error {
	if level < 0 || level > 128 {
		return headset.ErrInvalidParameter("bt call volume %d out of range 0-128", level)
	}
	return d.fail()
}
