package devices

import (
	"bytes"
	"testing"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

func g633Ack() []byte {
	resp := make([]byte, 20)
	resp[0], resp[1] = 0x11, 0xff
	return resp
}

func TestG633SidetoneMessage(t *testing.T) {
	d := NewLogitechG633(Options{})
	dev := &hid.MockDevice{}
	dev.QueueRead(g633Ack())

	res, err := d.SetSidetone(dev, 64)
	if err != nil {
		t.Fatalf("SetSidetone: %v", err)
	}
	if res.Raw != 50 {
		t.Fatalf("raw = %d", res.Raw)
	}
	want := make([]byte, 20)
	copy(want, []byte{0x11, 0xff, 0x07, 0x1e, 50})
	if !bytes.Equal(dev.Writes[0], want) {
		t.Fatalf("message:\n got % x\nwant % x", dev.Writes[0], want)
	}
}

func TestG633BatteryFromVoltage(t *testing.T) {
	d := NewLogitechG633(Options{})
	dev := &hid.MockDevice{}
	resp := make([]byte, 20)
	resp[0], resp[1], resp[2], resp[3] = 0x11, 0xff, 0x08, 0x0a
	resp[4], resp[5] = 0x0f, 0xbe // 4030 mV
	resp[6] = 0x00
	dev.QueueRead(resp)

	res, err := d.Battery(dev)
	if err != nil {
		t.Fatalf("Battery: %v", err)
	}
	if res.State != headset.BatteryDischarging || res.Level != 85 {
		t.Fatalf("result = %+v", res)
	}
	if res.VoltageMV != 4030 {
		t.Fatalf("voltage = %d", res.VoltageMV)
	}
}

func TestG633BatteryCharging(t *testing.T) {
	d := NewLogitechG633(Options{})
	dev := &hid.MockDevice{}
	resp := make([]byte, 20)
	resp[0], resp[1] = 0x11, 0xff
	resp[4], resp[5] = 0x10, 0x4f // 4175 mV, the table top
	resp[6] = 0x01
	dev.QueueRead(resp)

	res, err := d.Battery(dev)
	if err != nil {
		t.Fatalf("Battery: %v", err)
	}
	if res.State != headset.BatteryCharging || res.Level != 100 {
		t.Fatalf("result = %+v", res)
	}
}

func TestG633BatteryOfflineSentinel(t *testing.T) {
	d := NewLogitechG633(Options{})
	dev := &hid.MockDevice{}
	resp := make([]byte, 20)
	resp[0], resp[1], resp[2] = 0x11, 0xff, 0x8f
	dev.QueueRead(resp)

	_, err := d.Battery(dev)
	if headset.KindOf(err) != headset.KindDeviceOffline {
		t.Fatalf("err = %v", err)
	}
}

func TestG633LightsWriteOneFramePerZone(t *testing.T) {
	d := NewLogitechG633(Options{})
	dev := &hid.MockDevice{}
	dev.QueueRead(g633Ack())
	dev.QueueRead(g633Ack())

	if err := d.SetLights(dev, true); err != nil {
		t.Fatalf("SetLights: %v", err)
	}
	if len(dev.Writes) != 2 {
		t.Fatalf("got %d writes, want one per zone", len(dev.Writes))
	}
	for zone, msg := range dev.Writes {
		if msg[2] != 0x04 || msg[3] != 0x3c {
			t.Fatalf("zone %d feature bytes = % x", zone, msg[2:4])
		}
		if msg[4] != byte(zone) || msg[5] != 0x01 {
			t.Fatalf("zone %d payload = % x", zone, msg[4:6])
		}
	}
}

func TestG633InactiveTime(t *testing.T) {
	d := NewLogitechG633(Options{})
	dev := &hid.MockDevice{}
	dev.QueueRead(g633Ack())

	if err := d.SetInactiveTime(dev, 15); err != nil {
		t.Fatalf("SetInactiveTime: %v", err)
	}
	msg := dev.Writes[0]
	if msg[2] != 0x08 || msg[3] != 0x2b || msg[4] != 15 {
		t.Fatalf("message = % x", msg[:5])
	}

	if err := d.SetInactiveTime(dev, 120); headset.KindOf(err) != headset.KindInvalidParameter {
		t.Fatalf("err = %v", err)
	}
}
