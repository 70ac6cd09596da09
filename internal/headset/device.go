package headset

import (
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

// Route names the HID endpoint a capability's traffic must use. Zero usage
// fields match any usage on the interface.
type Route struct {
	Interface int
	UsagePage uint16
	UsageID   uint16
}

// EqualizerInfo describes a device's fixed equalizer hardware.
type EqualizerInfo struct {
	Bands   int
	MinGain float64
	MaxGain float64
	// Step is the gain granularity in dB; writes snap to it.
	Step    float64
	Presets int
	// Filters lists the parametric filter shapes the firmware accepts.
	Filters []FilterType
}

// Model is the static description of one supported headset family.
type Model struct {
	Name         string
	VendorID     uint16
	ProductIDs   []uint16
	Capabilities CapabilitySet
	// DefaultRoute serves every capability without an explicit entry in
	// Routes.
	DefaultRoute Route
	Routes       map[Capability]Route
	Equalizer    *EqualizerInfo
}

// Supports reports whether the model advertises c.
func (m *Model) Supports(c Capability) bool { return m.Capabilities.Has(c) }

// Route returns the endpoint for c, falling back to the model default.
func (m *Model) Route(c Capability) Route {
	if r, ok := m.Routes[c]; ok {
		return r
	}
	return m.DefaultRoute
}

// HasProductID reports whether pid belongs to this model.
func (m *Model) HasProductID(pid uint16) bool {
	for _, p := range m.ProductIDs {
		if p == pid {
			return true
		}
	}
	return false
}

// Device is the per-vendor implementation contract: one method per
// capability, each taking the open transport for the capability's route.
// Every method returns either its typed result or a *Error; setters without
// a meaningful echo return only the error. Implementations embed
// Unimplemented and override exactly the methods their model advertises.
type Device interface {
	Model() *Model

	SetSidetone(dev hid.Device, level int) (SidetoneResult, error)
	Battery(dev hid.Device) (BatteryResult, error)
	PlayNotification(dev hid.Device, soundID int) error
	SetLights(dev hid.Device, on bool) error
	SetInactiveTime(dev hid.Device, minutes int) error
	ChatMix(dev hid.Device) (ChatMixResult, error)
	SetVoicePrompts(dev hid.Device, on bool) error
	SetRotateToMute(dev hid.Device, on bool) error
	SetEqualizer(dev hid.Device, bands []float64) (EqualizerResult, error)
	SetEqualizerPreset(dev hid.Device, index int) error
	SetParametricEqualizer(dev hid.Device, bands []ParametricBand) (ParametricEQResult, error)
	SetMicMuteLEDBrightness(dev hid.Device, level int) error
	SetMicVolume(dev hid.Device, level int) error
	SetVolumeLimiter(dev hid.Device, on bool) error
	SetBTWhenPoweredOn(dev hid.Device, on bool) error
	SetBTCallVolume(dev hid.Device, level int) error
}

// Unimplemented rejects every capability with a NotSupported error. Vendor
// devices embed it so the interface stays satisfied as capabilities are
// added.
type Unimplemented struct{}

func (Unimplemented) SetSidetone(hid.Device, int) (SidetoneResult, error) {
	return SidetoneResult{}, ErrNotSupported(Sidetone)
}

func (Unimplemented) Battery(hid.Device) (BatteryResult, error) {
	return BatteryResult{}, ErrNotSupported(BatteryStatus)
}

func (Unimplemented) PlayNotification(hid.Device, int) error {
	return ErrNotSupported(NotificationSound)
}

func (Unimplemented) SetLights(hid.Device, bool) error {
	return ErrNotSupported(Lights)
}

func (Unimplemented) SetInactiveTime(hid.Device, int) error {
	return ErrNotSupported(InactiveTime)
}

func (Unimplemented) ChatMix(hid.Device) (ChatMixResult, error) {
	return ChatMixResult{}, ErrNotSupported(ChatMix)
}

func (Unimplemented) SetVoicePrompts(hid.Device, bool) error {
	return ErrNotSupported(VoicePrompts)
}

func (Unimplemented) SetRotateToMute(hid.Device, bool) error {
	return ErrNotSupported(RotateToMute)
}

func (Unimplemented) SetEqualizer(hid.Device, []float64) (EqualizerResult, error) {
	return EqualizerResult{}, ErrNotSupported(Equalizer)
}

func (Unimplemented) SetEqualizerPreset(hid.Device, int) error {
	return ErrNotSupported(EqualizerPreset)
}

func (Unimplemented) SetParametricEqualizer(hid.Device, []ParametricBand) (ParametricEQResult, error) {
	return ParametricEQResult{}, ErrNotSupported(ParametricEqualizer)
}

func (Unimplemented) SetMicMuteLEDBrightness(hid.Device, int) error {
	return ErrNotSupported(MicMuteLEDBrightness)
}

func (Unimplemented) SetMicVolume(hid.Device, int) error {
	return ErrNotSupported(MicVolume)
}

func (Unimplemented) SetVolumeLimiter(hid.Device, bool) error {
	return ErrNotSupported(VolumeLimiter)
}

func (Unimplemented) SetBTWhenPoweredOn(hid.Device, bool) error {
	return ErrNotSupported(BTWhenPoweredOn)
}

func (Unimplemented) SetBTCallVolume(hid.Device, int) error {
	return ErrNotSupported(BTCallVolume)
}

// MapRange linearly rescales x from [inMin,inMax] to [outMin,outMax] with
// integer truncation.
func MapRange(x, inMin, inMax, outMin, outMax int) int {
	if inMax == inMin {
		return outMin
	}
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}
