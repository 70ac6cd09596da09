package headset

// BatteryState is the charge state reported by the device.
type BatteryState uint8

const (
	BatteryUnknown BatteryState = iota
	BatteryDisconnected
	BatteryDischarging
	BatteryCharging
)

var batteryStateNames = [...]string{
	BatteryUnknown:      "unknown",
	BatteryDisconnected: "disconnected",
	BatteryDischarging:  "discharging",
	BatteryCharging:     "charging",
}

func (s BatteryState) String() string {
	if int(s) >= len(batteryStateNames) {
		return "unknown"
	}
	return batteryStateNames[s]
}

// BatteryResult reports the charge of a wireless headset. Level is -1 when
// the device reported no usable reading. VoltageMV and the time estimates
// are zero when the firmware does not expose them.
type BatteryResult struct {
	State          BatteryState
	Level          int
	VoltageMV      uint16
	TimeToFullMin  int
	TimeToEmptyMin int
	Raw            []byte
}

// SidetoneResult echoes an accepted sidetone write: the normalized level the
// caller asked for, the raw value written, and the device's raw range.
type SidetoneResult struct {
	Level     int
	Raw       int
	DeviceMin int
	DeviceMax int
}

// ChatMixResult is the game/chat balance, 0-128 with 64 centered.
type ChatMixResult struct {
	Level int
}

// EqualizerResult echoes the band gains accepted by the device, in dB.
type EqualizerResult struct {
	Bands []float64
}

// FilterType identifies a parametric equalizer filter shape.
type FilterType uint8

const (
	FilterNone FilterType = iota
	FilterLowShelf
	FilterPeaking
	FilterHighShelf
	FilterLowPass
	FilterHighPass
)

var filterTypeNames = [...]string{
	FilterNone:      "none",
	FilterLowShelf:  "lowshelf",
	FilterPeaking:   "peaking",
	FilterHighShelf: "highshelf",
	FilterLowPass:   "lowpass",
	FilterHighPass:  "highpass",
}

func (f FilterType) String() string {
	if int(f) >= len(filterTypeNames) {
		return "unknown"
	}
	return filterTypeNames[f]
}

// ParseFilterType resolves a CLI filter name, case-sensitively.
func ParseFilterType(name string) (FilterType, bool) {
	for i, n := range filterTypeNames {
		if n == name {
			return FilterType(i), true
		}
	}
	return FilterNone, false
}

// ParametricBand is one fully-specified parametric equalizer filter.
type ParametricBand struct {
	FrequencyHz int
	GainDB      float64
	Q           float64
	Type        FilterType
}

// ParametricEQResult echoes the filters accepted by the device.
type ParametricEQResult struct {
	Bands []ParametricBand
}
