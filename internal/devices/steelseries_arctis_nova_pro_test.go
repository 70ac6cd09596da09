package devices

import (
	"bytes"
	"testing"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

func TestNovaProParametricProgramsAllSlots(t *testing.T) {
	d := NewSteelSeriesArctisNovaPro(Options{})
	dev := &hid.MockDevice{}

	res, err := d.SetParametricEqualizer(dev, []headset.ParametricBand{
		{FrequencyHz: 1000, GainDB: 3, Q: 1.4, Type: headset.FilterPeaking},
		{FrequencyHz: 250, GainDB: -6, Q: 0.7, Type: headset.FilterLowShelf},
	})
	if err != nil {
		t.Fatalf("SetParametricEqualizer: %v", err)
	}
	if len(res.Bands) != 2 {
		t.Fatalf("result = %+v", res)
	}

	// One frame per band slot plus the save frame, all feature reports.
	if len(dev.Features) != 11 {
		t.Fatalf("got %d feature reports, want 11", len(dev.Features))
	}
	if len(dev.Writes) != 0 {
		t.Fatal("base station traffic must not use interrupt writes")
	}

	first := dev.Features[0]
	if !bytes.Equal(first[:9], []byte{0x00, 0x49, 0x00, 0xe8, 0x03, 0x02, 0x06, 0x78, 0x05}) {
		t.Fatalf("slot 0 frame = % x", first[:9])
	}
	second := dev.Features[1]
	if !bytes.Equal(second[:9], []byte{0x00, 0x49, 0x01, 0xfa, 0x00, 0x01, 0xf4, 0xbc, 0x02}) {
		t.Fatalf("slot 1 frame = % x", second[:9])
	}
	for slot := 2; slot < 10; slot++ {
		frame := dev.Features[slot]
		if frame[2] != byte(slot) || frame[3] != 0xff || frame[4] != 0xff {
			t.Fatalf("slot %d not disabled: % x", slot, frame[:9])
		}
	}
	if dev.Features[10][1] != 0x09 {
		t.Fatalf("save frame = % x", dev.Features[10][:2])
	}
}

func TestNovaProParametricRejectsTooManyFilters(t *testing.T) {
	d := NewSteelSeriesArctisNovaPro(Options{})
	dev := &hid.MockDevice{}
	bands := make([]headset.ParametricBand, 11)
	if _, err := d.SetParametricEqualizer(dev, bands); headset.KindOf(err) != headset.KindInvalidParameter {
		t.Fatalf("err = %v", err)
	}
	if len(dev.Features) != 0 {
		t.Fatal("rejected filters still reached the device")
	}
}

func TestNovaProParametricRejectsGainOutOfRange(t *testing.T) {
	d := NewSteelSeriesArctisNovaPro(Options{})
	dev := &hid.MockDevice{}
	_, err := d.SetParametricEqualizer(dev, []headset.ParametricBand{
		{FrequencyHz: 1000, GainDB: 12.5, Q: 1.4, Type: headset.FilterPeaking},
	})
	if headset.KindOf(err) != headset.KindInvalidParameter {
		t.Fatalf("err = %v", err)
	}
	if len(dev.Features) != 0 {
		t.Fatal("rejected filters still reached the device")
	}
}

func TestNovaProPresetSelect(t *testing.T) {
	d := NewSteelSeriesArctisNovaPro(Options{})
	dev := &hid.MockDevice{}

	if err := d.SetEqualizerPreset(dev, 2); err != nil {
		t.Fatalf("SetEqualizerPreset: %v", err)
	}
	if len(dev.Features) != 2 {
		t.Fatalf("got %d feature reports", len(dev.Features))
	}
	if dev.Features[0][1] != 0x58 || dev.Features[0][2] != 0x02 {
		t.Fatalf("preset frame = % x", dev.Features[0][:3])
	}
}

func TestNovaProLevelScaling(t *testing.T) {
	d := NewSteelSeriesArctisNovaPro(Options{})
	dev := &hid.MockDevice{}

	res, err := d.SetSidetone(dev, 128)
	if err != nil {
		t.Fatalf("SetSidetone: %v", err)
	}
	if res.Raw != 0x0a {
		t.Fatalf("raw = %#02x", res.Raw)
	}
	if dev.Features[0][1] != 0x39 || dev.Features[0][2] != 0x0a {
		t.Fatalf("sidetone frame = % x", dev.Features[0][:3])
	}

	if err := d.SetMicVolume(dev, 64); err != nil {
		t.Fatalf("SetMicVolume: %v", err)
	}
	if dev.Features[2][1] != 0x37 || dev.Features[2][2] != 0x05 {
		t.Fatalf("mic volume frame = % x", dev.Features[2][:3])
	}

	if err := d.SetMicMuteLEDBrightness(dev, 0); err != nil {
		t.Fatalf("SetMicMuteLEDBrightness: %v", err)
	}
	if dev.Features[4][1] != 0xae || dev.Features[4][2] != 0x00 {
		t.Fatalf("led frame = % x", dev.Features[4][:3])
	}
}
