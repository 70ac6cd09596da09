package steelseries

import (
	"testing"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
)

func TestGainRoundTrip(t *testing.T) {
	const step = 0.5
	for g := -12.0; g <= 12.0; g += step {
		if got := DecodeGain(EncodeGain(g, step), step); got != g {
			t.Errorf("round trip %v -> %02x -> %v", g, EncodeGain(g, step), got)
		}
	}
}

func TestGainEncoding(t *testing.T) {
	cases := []struct {
		gain float64
		want byte
	}{
		{0, 0x00},
		{0.5, 0x01},
		{12, 0x18},
		{-0.5, 0xff},
		{-3, 0xfa},
		{-12, 0xe8},
	}
	for _, tc := range cases {
		if got := EncodeGain(tc.gain, 0.5); got != tc.want {
			t.Errorf("EncodeGain(%v) = %02x, want %02x", tc.gain, got, tc.want)
		}
	}
}

func TestDecodeGainBoundary(t *testing.T) {
	// 0x7f is the highest positive code, 0x80 the most negative.
	if got := DecodeGain(0x7f, 0.5); got != 63.5 {
		t.Fatalf("0x7f = %v, want 63.5", got)
	}
	if got := DecodeGain(0x80, 0.5); got != -64 {
		t.Fatalf("0x80 = %v, want -64", got)
	}
}

func TestEncodeBandLayout(t *testing.T) {
	b := headset.ParametricBand{
		FrequencyHz: 1000,
		GainDB:      -3,
		Q:           1.414,
		Type:        headset.FilterPeaking,
	}
	buf, err := EncodeBand(b, 0.5)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if len(buf) != BandTupleLen {
		t.Fatalf("tuple length %d", len(buf))
	}
	if buf[0] != 0xe8 || buf[1] != 0x03 { // 1000 LE
		t.Fatalf("frequency bytes %02x %02x", buf[0], buf[1])
	}
	if buf[2] != 0x02 {
		t.Fatalf("filter code %02x", buf[2])
	}
	if buf[3] != 0xfa {
		t.Fatalf("gain byte %02x", buf[3])
	}
	if q := int(buf[4]) | int(buf[5])<<8; q != 1414 {
		t.Fatalf("q bytes decode to %d", q)
	}
}

func TestEncodeBandRejectsUnknownFilter(t *testing.T) {
	_, err := EncodeBand(headset.ParametricBand{FrequencyHz: 500, Type: headset.FilterNone}, 0.5)
	if headset.KindOf(err) != headset.KindInvalidParameter {
		t.Fatalf("expected invalid parameter, got %v", err)
	}
}

func TestEncodeBandRejectsBadFrequency(t *testing.T) {
	for _, hz := range []int{0, -20, DisabledFrequency, 70000} {
		_, err := EncodeBand(headset.ParametricBand{FrequencyHz: hz, Type: headset.FilterPeaking}, 0.5)
		if headset.KindOf(err) != headset.KindInvalidParameter {
			t.Fatalf("frequency %d: expected invalid parameter, got %v", hz, err)
		}
	}
}

func TestBandRoundTrip(t *testing.T) {
	in := headset.ParametricBand{
		FrequencyHz: 250,
		GainDB:      6.5,
		Q:           0.707,
		Type:        headset.FilterLowShelf,
	}
	buf, err := EncodeBand(in, 0.5)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	out, ok := DecodeBand(buf, 0.5)
	if !ok {
		t.Fatalf("decode rejected the tuple")
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestDisabledBand(t *testing.T) {
	buf := DisabledBand()
	if buf[0] != 0xff || buf[1] != 0xff {
		t.Fatalf("sentinel bytes %02x %02x", buf[0], buf[1])
	}
	if _, ok := DecodeBand(buf, 0.5); ok {
		t.Fatalf("disabled slot must not decode")
	}
}
