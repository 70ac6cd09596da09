package devices

import (
	"bytes"
	"testing"

	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

func TestEloSidetoneCurve(t *testing.T) {
	cases := []struct {
		level int
		raw   int
	}{
		{0, 0}, {15, 0}, {16, 1}, {32, 3}, {48, 7}, {64, 15},
		{80, 31}, {96, 63}, {112, 127}, {128, 255},
	}
	for _, c := range cases {
		if got := eloSidetoneRaw(c.level); got != c.raw {
			t.Errorf("raw(%d) = %d, want %d", c.level, got, c.raw)
		}
	}
}

func TestEloSidetoneFrame(t *testing.T) {
	d := NewRoccatEloAir(Options{})
	dev := &hid.MockDevice{}

	res, err := d.SetSidetone(dev, 64)
	if err != nil {
		t.Fatalf("SetSidetone: %v", err)
	}
	if res.Raw != 15 {
		t.Fatalf("raw = %d", res.Raw)
	}
	if !bytes.Equal(dev.Writes[0], []byte{0xff, 0x04, 0x00, 15}) {
		t.Fatalf("frame = % x", dev.Writes[0])
	}
}

func TestEloLightsAndInactiveFrames(t *testing.T) {
	d := NewRoccatEloAir(Options{})
	dev := &hid.MockDevice{}

	if err := d.SetLights(dev, false); err != nil {
		t.Fatalf("SetLights: %v", err)
	}
	if err := d.SetInactiveTime(dev, 10); err != nil {
		t.Fatalf("SetInactiveTime: %v", err)
	}
	if !bytes.Equal(dev.Writes[0], []byte{0xff, 0x01, 0x00, 0x00}) {
		t.Fatalf("lights frame = % x", dev.Writes[0])
	}
	if !bytes.Equal(dev.Writes[1], []byte{0xff, 0x06, 0x00, 10}) {
		t.Fatalf("inactive frame = % x", dev.Writes[1])
	}
}
