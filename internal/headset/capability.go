// Package headset defines the device abstraction shared by every vendor
// implementation: the capability model, typed operation results, the error
// taxonomy, and the static model descriptions used for discovery and
// endpoint routing.
package headset

import "strings"

// Capability is one controllable or queryable headset feature.
type Capability uint8

const (
	Sidetone Capability = iota
	BatteryStatus
	NotificationSound
	Lights
	InactiveTime
	ChatMix
	VoicePrompts
	RotateToMute
	Equalizer
	EqualizerPreset
	ParametricEqualizer
	MicMuteLEDBrightness
	MicVolume
	VolumeLimiter
	BTWhenPoweredOn
	BTCallVolume

	numCapabilities
)

var capabilityNames = [numCapabilities]string{
	Sidetone:             "sidetone",
	BatteryStatus:        "battery",
	NotificationSound:    "notification_sound",
	Lights:               "lights",
	InactiveTime:         "inactive_time",
	ChatMix:              "chatmix",
	VoicePrompts:         "voice_prompts",
	RotateToMute:         "rotate_to_mute",
	Equalizer:            "equalizer",
	EqualizerPreset:      "equalizer_preset",
	ParametricEqualizer:  "parametric_equalizer",
	MicMuteLEDBrightness: "microphone_mute_led_brightness",
	MicVolume:            "microphone_volume",
	VolumeLimiter:        "volume_limiter",
	BTWhenPoweredOn:      "bt_when_powered_on",
	BTCallVolume:         "bt_call_volume",
}

func (c Capability) String() string {
	if c >= numCapabilities {
		return "unknown"
	}
	return capabilityNames[c]
}

// All lists every defined capability in declaration order.
func All() []Capability {
	out := make([]Capability, 0, numCapabilities)
	for c := Capability(0); c < numCapabilities; c++ {
		out = append(out, c)
	}
	return out
}

// CapabilitySet is a bitmask of advertised capabilities.
type CapabilitySet uint32

// Caps builds a set from the given capabilities.
func Caps(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		s |= 1 << c
	}
	return s
}

func (s CapabilitySet) Has(c Capability) bool {
	return s&(1<<c) != 0
}

func (s CapabilitySet) Add(c Capability) CapabilitySet {
	return s | 1<<c
}

// List returns the members of the set in declaration order.
func (s CapabilitySet) List() []Capability {
	var out []Capability
	for c := Capability(0); c < numCapabilities; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s CapabilitySet) String() string {
	names := make([]string, 0, numCapabilities)
	for _, c := range s.List() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}
