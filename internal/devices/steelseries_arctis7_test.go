package devices

import (
	"bytes"
	"testing"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
	"github.com/Sapd/HeadsetControl-sub001/internal/protocol/steelseries"
)

func TestArctis7SidetoneBuckets(t *testing.T) {
	cases := []struct {
		level int
		want  byte
	}{
		{0, 0}, {31, 0}, {32, 1}, {63, 1}, {64, 2}, {95, 2}, {96, 3}, {128, 3},
	}
	for _, c := range cases {
		if got := arctis7SidetoneBucket(c.level); got != c.want {
			t.Errorf("bucket(%d) = %d, want %d", c.level, got, c.want)
		}
	}
}

func TestArctis7SidetoneWritesCommandAndSave(t *testing.T) {
	d := NewSteelSeriesArctis7(Options{})
	dev := &hid.MockDevice{}

	res, err := d.SetSidetone(dev, 96)
	if err != nil {
		t.Fatalf("SetSidetone: %v", err)
	}
	if res.Raw != 3 || res.DeviceMax != 3 {
		t.Fatalf("result = %+v", res)
	}
	if len(dev.Writes) != 2 {
		t.Fatalf("got %d writes, want command plus save", len(dev.Writes))
	}
	if !bytes.Equal(dev.Writes[0], steelseries.LegacyFrame([]byte{0x39, 0x03})) {
		t.Fatalf("command frame = % x", dev.Writes[0])
	}
	if !bytes.Equal(dev.Writes[1], steelseries.LegacyFrame([]byte{0x06, 0x09})) {
		t.Fatalf("save frame = % x", dev.Writes[1])
	}
}

func TestArctis7SidetoneRejectsOutOfRange(t *testing.T) {
	d := NewSteelSeriesArctis7(Options{})
	dev := &hid.MockDevice{}
	if _, err := d.SetSidetone(dev, 129); headset.KindOf(err) != headset.KindInvalidParameter {
		t.Fatalf("err = %v", err)
	}
	if len(dev.Writes) != 0 {
		t.Fatal("rejected level still reached the device")
	}
}

func TestArctis7Battery(t *testing.T) {
	d := NewSteelSeriesArctis7(Options{})
	dev := &hid.MockDevice{}
	resp := make([]byte, 31)
	resp[0], resp[1], resp[2] = 0x06, 0x18, 72
	dev.QueueRead(resp)

	res, err := d.Battery(dev)
	if err != nil {
		t.Fatalf("Battery: %v", err)
	}
	if res.State != headset.BatteryDischarging || res.Level != 72 {
		t.Fatalf("result = %+v", res)
	}
	if len(dev.Writes) != 1 {
		t.Fatalf("battery read is not a state change, got %d writes", len(dev.Writes))
	}
}

func TestArctis7ChatMix(t *testing.T) {
	d := NewSteelSeriesArctis7(Options{})
	dev := &hid.MockDevice{}
	resp := make([]byte, 31)
	resp[0], resp[1], resp[2] = 0x24, 100, 0
	dev.QueueRead(resp)

	res, err := d.ChatMix(dev)
	if err != nil {
		t.Fatalf("ChatMix: %v", err)
	}
	if res.Level != 128 {
		t.Fatalf("level = %d, want full game", res.Level)
	}
}

func TestArctis7PlayNotificationSkipsSave(t *testing.T) {
	d := NewSteelSeriesArctis7(Options{})
	dev := &hid.MockDevice{}

	if err := d.PlayNotification(dev, 1); err != nil {
		t.Fatalf("PlayNotification: %v", err)
	}
	if len(dev.Writes) != 1 {
		t.Fatalf("got %d writes, want one", len(dev.Writes))
	}
	if dev.Writes[0][0] != 0x40 || dev.Writes[0][1] != 0x01 {
		t.Fatalf("frame = % x", dev.Writes[0])
	}

	if err := d.PlayNotification(dev, 2); headset.KindOf(err) != headset.KindInvalidParameter {
		t.Fatalf("err = %v", err)
	}
}

func TestArctis7InactiveTimeBounds(t *testing.T) {
	d := NewSteelSeriesArctis7(Options{})
	dev := &hid.MockDevice{}

	if err := d.SetInactiveTime(dev, 91); headset.KindOf(err) != headset.KindInvalidParameter {
		t.Fatalf("err = %v", err)
	}
	if err := d.SetInactiveTime(dev, 30); err != nil {
		t.Fatalf("SetInactiveTime: %v", err)
	}
	if dev.Writes[0][0] != 0x51 || dev.Writes[0][1] != 30 {
		t.Fatalf("frame = % x", dev.Writes[0])
	}
}
