package hidpp

import (
	"errors"
	"testing"

	"github.com/Sapd/HeadsetControl-sub001/internal/battery"
	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

var testCalibration = battery.Calibration{{100, 4200}, {50, 3850}, {0, 3300}}

func TestRequestFraming(t *testing.T) {
	d := &hid.MockDevice{}
	d.QueueRead(make([]byte, LongLen))

	p := Protocol{}
	if _, err := p.Request(d, []byte{0x08, 0x0a}); err != nil {
		t.Fatalf("request error: %v", err)
	}

	if len(d.Writes) != 1 {
		t.Fatalf("expected 1 write, got %d", len(d.Writes))
	}
	msg := d.Writes[0]
	if len(msg) != LongLen {
		t.Fatalf("message length %d, want %d", len(msg), LongLen)
	}
	if msg[0] != ReportIDLong || msg[1] != ReceiverIndex {
		t.Fatalf("bad header: %02x %02x", msg[0], msg[1])
	}
	if msg[2] != 0x08 || msg[3] != 0x0a {
		t.Fatalf("payload not copied: %v", msg[:4])
	}
	for i := 4; i < LongLen; i++ {
		if msg[i] != 0 {
			t.Fatalf("padding byte %d not zero: %02x", i, msg[i])
		}
	}
}

func TestRequestOffline(t *testing.T) {
	d := &hid.MockDevice{}
	resp := make([]byte, LongLen)
	resp[2] = 0x8f
	d.QueueRead(resp)

	_, err := Protocol{}.Request(d, []byte{0x08, 0x0a})
	if headset.KindOf(err) != headset.KindDeviceOffline {
		t.Fatalf("expected offline, got %v", err)
	}
}

func TestRequestTimeout(t *testing.T) {
	d := &hid.MockDevice{} // nothing queued reads as no data

	_, err := Protocol{}.Request(d, []byte{0x08, 0x0a})
	if headset.KindOf(err) != headset.KindTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestRequestWriteFailure(t *testing.T) {
	d := &hid.MockDevice{WriteErr: errors.New("endpoint gone")}

	_, err := Protocol{}.Request(d, []byte{0x08, 0x0a})
	if headset.KindOf(err) != headset.KindHID {
		t.Fatalf("expected hid error, got %v", err)
	}
}

func TestRequestOversizedPayload(t *testing.T) {
	d := &hid.MockDevice{}
	_, err := Protocol{}.Request(d, make([]byte, LongLen-1))
	if headset.KindOf(err) != headset.KindInvalidParameter {
		t.Fatalf("expected invalid parameter, got %v", err)
	}
	if len(d.Writes) != 0 {
		t.Fatalf("oversized payload must not reach the device")
	}
}

func TestBattery(t *testing.T) {
	d := &hid.MockDevice{}
	resp := make([]byte, LongLen)
	resp[4], resp[5] = 0x0f, 0xb9 // 4025 mV
	resp[6] = 0x00
	d.QueueRead(resp)

	got, err := Protocol{}.Battery(d, BatterySpec{
		Request:   []byte{0x08, 0x0a},
		Estimator: testCalibration,
	})
	if err != nil {
		t.Fatalf("battery error: %v", err)
	}
	if got.VoltageMV != 4025 {
		t.Fatalf("voltage = %d, want 4025", got.VoltageMV)
	}
	if got.Level != 75 {
		t.Fatalf("level = %d, want 75", got.Level)
	}
	if got.State != headset.BatteryDischarging {
		t.Fatalf("state = %v, want discharging", got.State)
	}
}

func TestBatteryCharging(t *testing.T) {
	d := &hid.MockDevice{}
	resp := make([]byte, LongLen)
	resp[4], resp[5] = 0x10, 0x68 // 4200 mV
	resp[6] = 0x01
	d.QueueRead(resp)

	got, err := Protocol{}.Battery(d, BatterySpec{
		Request:   []byte{0x08, 0x0a},
		Estimator: testCalibration,
	})
	if err != nil {
		t.Fatalf("battery error: %v", err)
	}
	if got.State != headset.BatteryCharging || got.Level != 100 {
		t.Fatalf("got state=%v level=%d", got.State, got.Level)
	}
}

func TestBatteryShortResponse(t *testing.T) {
	d := &hid.MockDevice{}
	d.QueueRead([]byte{0x11, 0xff, 0x08, 0x0a})

	_, err := Protocol{}.Battery(d, BatterySpec{
		Request:   []byte{0x08, 0x0a},
		Estimator: testCalibration,
	})
	if headset.KindOf(err) != headset.KindProtocol {
		t.Fatalf("expected protocol error, got %v", err)
	}
}

func TestSetInactiveTime(t *testing.T) {
	d := &hid.MockDevice{}
	d.QueueRead(make([]byte, LongLen))

	if err := (Protocol{}).SetInactiveTime(d, []byte{0x08, 0x2b}, 30); err != nil {
		t.Fatalf("inactive time error: %v", err)
	}
	msg := d.Writes[0]
	if msg[2] != 0x08 || msg[3] != 0x2b || msg[4] != 30 {
		t.Fatalf("frame bytes wrong: %v", msg[:5])
	}
}
