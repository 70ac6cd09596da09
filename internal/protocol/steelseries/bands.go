package steelseries

import (
	"encoding/binary"
	"math"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
)

// Parametric equalizer filters travel as fixed 6-byte tuples: uint16-LE
// center frequency, filter-type code, encoded gain, uint16-LE Q factor
// scaled by 1000. Unused trailing band slots carry the disabled-frequency
// sentinel and a neutral gain.

const (
	// BandTupleLen is the wire size of one filter tuple.
	BandTupleLen = 6
	// DisabledFrequency marks an unused band slot.
	DisabledFrequency = 0xffff
)

var filterCodes = map[headset.FilterType]byte{
	headset.FilterLowShelf:  0x01,
	headset.FilterPeaking:   0x02,
	headset.FilterHighShelf: 0x03,
	headset.FilterLowPass:   0x04,
	headset.FilterHighPass:  0x05,
}

// EncodeGain converts a dB gain into its wire byte in units of step dB.
// Positive gains count up from zero; negative gains count down from 0x100,
// two's complement in step units.
func EncodeGain(gain, step float64) byte {
	if gain >= 0 {
		return byte(gain / step)
	}
	return 0xff - byte(-gain/step) + 1
}

// DecodeGain inverts EncodeGain. Values at 0x80 and above read as negative.
func DecodeGain(raw byte, step float64) float64 {
	if raw >= 0x80 {
		return -float64(0x100-int(raw)) * step
	}
	return float64(raw) * step
}

// EncodeBand packs one filter into its wire tuple.
func EncodeBand(b headset.ParametricBand, gainStep float64) ([]byte, error) {
	code, ok := filterCodes[b.Type]
	if !ok {
		return nil, headset.ErrInvalidParameter("unsupported filter type %q", b.Type)
	}
	if b.FrequencyHz <= 0 || b.FrequencyHz >= DisabledFrequency {
		return nil, headset.ErrInvalidParameter("filter frequency %d Hz out of range", b.FrequencyHz)
	}
	buf := make([]byte, BandTupleLen)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(b.FrequencyHz))
	buf[2] = code
	buf[3] = EncodeGain(b.GainDB, gainStep)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(math.Round(b.Q*1000)))
	return buf, nil
}

// DisabledBand fills an unused trailing band slot.
func DisabledBand() []byte {
	buf := make([]byte, BandTupleLen)
	binary.LittleEndian.PutUint16(buf[0:2], DisabledFrequency)
	return buf
}

// DecodeBand unpacks a wire tuple; ok is false for a disabled slot or a
// malformed tuple.
func DecodeBand(buf []byte, gainStep float64) (headset.ParametricBand, bool) {
	if len(buf) < BandTupleLen {
		return headset.ParametricBand{}, false
	}
	freq := binary.LittleEndian.Uint16(buf[0:2])
	if freq == DisabledFrequency {
		return headset.ParametricBand{}, false
	}
	var ftype headset.FilterType
	found := false
	for t, code := range filterCodes {
		if code == buf[2] {
			ftype, found = t, true
			break
		}
	}
	if !found {
		return headset.ParametricBand{}, false
	}
	return headset.ParametricBand{
		FrequencyHz: int(freq),
		GainDB:      DecodeGain(buf[3], gainStep),
		Q:           float64(binary.LittleEndian.Uint16(buf[4:6])) / 1000,
		Type:        ftype,
	}, true
}
