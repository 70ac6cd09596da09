package steelseries

import (
	"errors"
	"testing"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

func TestLegacyFramePadding(t *testing.T) {
	f := LegacyFrame([]byte{0x39, 0x08})
	if len(f) != LegacyFrameLen {
		t.Fatalf("frame length %d, want %d", len(f), LegacyFrameLen)
	}
	if f[0] != 0x39 || f[1] != 0x08 {
		t.Fatalf("command bytes not copied: %v", f[:2])
	}
	for i := 2; i < LegacyFrameLen; i++ {
		if f[i] != 0 {
			t.Fatalf("byte %d not zero", i)
		}
	}
}

func TestLegacyApplySendsSaveFrame(t *testing.T) {
	d := &hid.MockDevice{}
	l := Legacy{Save: []byte{0x06, 0x09}}

	if err := l.Apply(d, []byte{0x39, 0x04}); err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if len(d.Writes) != 2 {
		t.Fatalf("expected command + save writes, got %d", len(d.Writes))
	}
	if d.Writes[0][0] != 0x39 {
		t.Fatalf("first write not the command: %v", d.Writes[0][:2])
	}
	if d.Writes[1][0] != 0x06 || d.Writes[1][1] != 0x09 {
		t.Fatalf("second write not the save frame: %v", d.Writes[1][:2])
	}
}

func TestLegacyApplyNoSaveConfigured(t *testing.T) {
	d := &hid.MockDevice{}
	if err := (Legacy{}).Apply(d, []byte{0x39, 0x04}); err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if len(d.Writes) != 1 {
		t.Fatalf("expected single write, got %d", len(d.Writes))
	}
}

// A failed save must fail the whole operation: without it the device
// reverts the setting on power-off.
func TestLegacySaveFailureFailsOperation(t *testing.T) {
	d := &saveFailDevice{}
	l := Legacy{Save: []byte{0x90, 0x00}}

	err := l.Apply(d, []byte{0x87, 0x42})
	if headset.KindOf(err) != headset.KindHID {
		t.Fatalf("expected hid error from save, got %v", err)
	}
}

// saveFailDevice accepts the first write and fails the second.
type saveFailDevice struct {
	hid.MockDevice
	n int
}

func (d *saveFailDevice) Write(p []byte) (int, error) {
	d.n++
	if d.n > 1 {
		return 0, errors.New("endpoint stalled")
	}
	return d.MockDevice.Write(p)
}

func TestLegacyBatteryRescale(t *testing.T) {
	d := &hid.MockDevice{}
	resp := make([]byte, LegacyFrameLen)
	resp[2] = 0x02 // raw level on a 0-4 scale
	d.QueueRead(resp)

	got, err := Legacy{}.Battery(d, LegacyBatterySpec{
		Request:      []byte{0x06, 0x18},
		LevelOffset:  2,
		LevelMin:     0,
		LevelMax:     4,
		StatusOffset: -1,
	})
	if err != nil {
		t.Fatalf("battery error: %v", err)
	}
	if got.Level != 50 {
		t.Fatalf("level = %d, want 50", got.Level)
	}
	if got.State != headset.BatteryDischarging {
		t.Fatalf("state = %v", got.State)
	}
}

func TestLegacyBatteryOfflineSentinel(t *testing.T) {
	d := &hid.MockDevice{}
	resp := make([]byte, LegacyFrameLen)
	resp[4] = 0x01 // offline
	resp[3] = 0x64
	d.QueueRead(resp)

	got, err := Legacy{}.Battery(d, LegacyBatterySpec{
		Request:       []byte{0x20},
		LevelOffset:   3,
		LevelMax:      100,
		StatusOffset:  4,
		OfflineValue:  0x01,
		ChargingValue: 0x02,
	})
	if err != nil {
		t.Fatalf("battery error: %v", err)
	}
	if got.State != headset.BatteryDisconnected || got.Level != -1 {
		t.Fatalf("got state=%v level=%d, want disconnected/-1", got.State, got.Level)
	}
}

func TestLegacyBatteryChargingSentinel(t *testing.T) {
	d := &hid.MockDevice{}
	resp := make([]byte, LegacyFrameLen)
	resp[3] = 80
	resp[4] = 0x02
	d.QueueRead(resp)

	got, err := Legacy{}.Battery(d, LegacyBatterySpec{
		Request:       []byte{0x20},
		LevelOffset:   3,
		LevelMax:      100,
		StatusOffset:  4,
		OfflineValue:  0x01,
		ChargingValue: 0x02,
	})
	if err != nil {
		t.Fatalf("battery error: %v", err)
	}
	if got.State != headset.BatteryCharging || got.Level != 80 {
		t.Fatalf("got state=%v level=%d, want charging/80", got.State, got.Level)
	}
}

func TestLegacyBatteryTruncatedResponse(t *testing.T) {
	d := &hid.MockDevice{}
	d.QueueRead([]byte{0x01})

	_, err := Legacy{}.Battery(d, LegacyBatterySpec{
		Request:      []byte{0x20},
		LevelOffset:  3,
		LevelMax:     100,
		StatusOffset: -1,
	})
	if headset.KindOf(err) != headset.KindProtocol {
		t.Fatalf("expected protocol error, got %v", err)
	}
}

func TestLegacyBatteryTimeout(t *testing.T) {
	d := &hid.MockDevice{}

	_, err := Legacy{}.Battery(d, LegacyBatterySpec{
		Request:      []byte{0x20},
		LevelOffset:  3,
		LevelMax:     100,
		StatusOffset: -1,
	})
	if headset.KindOf(err) != headset.KindTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestLegacyChatMix(t *testing.T) {
	spec := LegacyChatMixSpec{
		Request:    []byte{0x24},
		GameOffset: 1,
		ChatOffset: 2,
		RawMax:     100,
	}

	cases := []struct {
		game, chat byte
		want       int
	}{
		{0, 0, 64},     // both dials centered
		{100, 0, 128},  // full game
		{0, 100, 0},    // full chat
		{100, 100, 64}, // both full cancel out
		{50, 0, 96},
		{0, 50, 32},
	}
	for _, tc := range cases {
		d := &hid.MockDevice{}
		resp := make([]byte, LegacyFrameLen)
		resp[1], resp[2] = tc.game, tc.chat
		d.QueueRead(resp)

		got, err := Legacy{}.ChatMix(d, spec)
		if err != nil {
			t.Fatalf("chatmix(%d,%d) error: %v", tc.game, tc.chat, err)
		}
		if got.Level != tc.want {
			t.Errorf("chatmix(%d,%d) = %d, want %d", tc.game, tc.chat, got.Level, tc.want)
		}
	}
}
