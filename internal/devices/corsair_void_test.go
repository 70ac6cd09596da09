package devices

import (
	"bytes"
	"testing"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

func TestVoidSidetoneFeatureReport(t *testing.T) {
	d := NewCorsairVoid(Options{})
	dev := &hid.MockDevice{}

	res, err := d.SetSidetone(dev, 128)
	if err != nil {
		t.Fatalf("SetSidetone: %v", err)
	}
	if res.Raw != 255 {
		t.Fatalf("raw = %d", res.Raw)
	}
	if len(dev.Features) != 1 || len(dev.Writes) != 0 {
		t.Fatalf("features=%d writes=%d", len(dev.Features), len(dev.Writes))
	}
	want := []byte{0xff, 0x0b, 0x00, 0xff, 0x04, 0x0e, 0xff, 0x05, 0x01, 0x04, 0x24, 0xff}
	if !bytes.Equal(dev.Features[0], want) {
		t.Fatalf("report:\n got % x\nwant % x", dev.Features[0], want)
	}
}

func TestVoidBatteryDecodesLevelAndMicBit(t *testing.T) {
	d := NewCorsairVoid(Options{})
	dev := &hid.MockDevice{}
	dev.QueueRead([]byte{0xc9, 0x64, 0x80 | 42, 0x00, 0x01})

	res, err := d.Battery(dev)
	if err != nil {
		t.Fatalf("Battery: %v", err)
	}
	if res.State != headset.BatteryDischarging || res.Level != 42 {
		t.Fatalf("result = %+v", res)
	}
	if !bytes.Equal(dev.Writes[0], []byte{0xc9, 0x64}) {
		t.Fatalf("request = % x", dev.Writes[0])
	}
}

func TestVoidBatteryDisconnected(t *testing.T) {
	d := NewCorsairVoid(Options{})
	dev := &hid.MockDevice{}
	dev.QueueRead([]byte{0xc9, 0x64, 0x00, 0x00, 0x00})

	res, err := d.Battery(dev)
	if err != nil {
		t.Fatalf("Battery: %v", err)
	}
	if res.State != headset.BatteryDisconnected || res.Level != -1 {
		t.Fatalf("result = %+v", res)
	}
}

func TestVoidV2BatteryQuirk(t *testing.T) {
	d := NewCorsairVoidV2(Options{})
	dev := &hid.MockDevice{}
	// 0x0a79 little-endian at offsets 2-3: the firmware echoing its own
	// product id + 1 instead of a battery reading, twice.
	bogus := []byte{0xc9, 0x64, 0x79, 0x0a, 0x01}
	dev.QueueRead(bogus)
	dev.QueueRead(bogus)

	res, err := d.Battery(dev)
	if err != nil {
		t.Fatalf("Battery: %v", err)
	}
	if res.State != headset.BatteryUnknown || res.Level != -1 {
		t.Fatalf("result = %+v", res)
	}
	if len(dev.Writes) != 2 {
		t.Fatalf("got %d writes, want a single retry", len(dev.Writes))
	}
}

func TestVoidV2BatteryQuirkRecovers(t *testing.T) {
	d := NewCorsairVoidV2(Options{})
	dev := &hid.MockDevice{}
	dev.QueueRead([]byte{0xc9, 0x64, 0x79, 0x0a, 0x01})
	dev.QueueRead([]byte{0xc9, 0x64, 66, 0x00, 0x04})

	res, err := d.Battery(dev)
	if err != nil {
		t.Fatalf("Battery: %v", err)
	}
	if res.State != headset.BatteryCharging || res.Level != 66 {
		t.Fatalf("result = %+v", res)
	}
}

func TestVoidLightsInvertedLogic(t *testing.T) {
	d := NewCorsairVoid(Options{})
	dev := &hid.MockDevice{}

	if err := d.SetLights(dev, true); err != nil {
		t.Fatalf("SetLights on: %v", err)
	}
	if err := d.SetLights(dev, false); err != nil {
		t.Fatalf("SetLights off: %v", err)
	}
	if !bytes.Equal(dev.Writes[0], []byte{0xc8, 0x00}) {
		t.Fatalf("on frame = % x", dev.Writes[0])
	}
	if !bytes.Equal(dev.Writes[1], []byte{0xc8, 0x01}) {
		t.Fatalf("off frame = % x", dev.Writes[1])
	}
}

func TestVoidNotificationAndLEDBounds(t *testing.T) {
	d := NewCorsairVoid(Options{})
	dev := &hid.MockDevice{}

	if err := d.PlayNotification(dev, 0); err != nil {
		t.Fatalf("PlayNotification: %v", err)
	}
	if !bytes.Equal(dev.Writes[0], []byte{0xca, 0x02, 0x00}) {
		t.Fatalf("notification frame = % x", dev.Writes[0])
	}
	if err := d.PlayNotification(dev, 2); headset.KindOf(err) != headset.KindInvalidParameter {
		t.Fatalf("err = %v", err)
	}

	if err := d.SetMicMuteLEDBrightness(dev, 128); err != nil {
		t.Fatalf("SetMicMuteLEDBrightness: %v", err)
	}
	if !bytes.Equal(dev.Writes[1], []byte{0xcb, 0x03}) {
		t.Fatalf("led frame = % x", dev.Writes[1])
	}
}
