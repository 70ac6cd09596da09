// Package corsair implements the Corsair wireless headset exchanges: short
// write/read cycles on the control interface, with the Void battery layout
// and its V2 firmware quirk.
package corsair

import (
	"encoding/binary"
	"time"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

const (
	// BatteryResponseLen is the fixed battery response size.
	BatteryResponseLen = 5

	// micUpBit rides on the level byte; the firmware reuses bit 7 of the
	// charge level to report the microphone position.
	micUpBit = 0x80
)

// Battery status sentinels at response offset 4.
const (
	statusDisconnected = 0x00
	statusNormal       = 0x01
	statusLow          = 0x02
	statusCharging     = 0x04
	statusCharged      = 0x05
)

// DefaultTimeout bounds the wait for a response.
const DefaultTimeout = 5 * time.Second

// DefaultPacketDelay is the settle time the Void family needs between
// consecutive packets and before a quirk retry.
const DefaultPacketDelay = 40 * time.Millisecond

// Protocol is the Corsair exchange behavior.
type Protocol struct {
	Timeout time.Duration
	// PacketDelay overrides DefaultPacketDelay.
	PacketDelay time.Duration
}

func (p Protocol) timeout() time.Duration {
	if p.Timeout == 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

// Delay returns the inter-packet settle time for multi-write sequences.
func (p Protocol) Delay() time.Duration {
	if p.PacketDelay == 0 {
		return DefaultPacketDelay
	}
	return p.PacketDelay
}

// Exchange writes one request and reads a response of at most respLen
// bytes.
func (p Protocol) Exchange(dev hid.Device, req []byte, respLen int) ([]byte, error) {
	if _, err := dev.Write(req); err != nil {
		return nil, headset.ErrHID("corsair write", err)
	}
	resp := make([]byte, respLen)
	n, err := dev.ReadWithTimeout(resp, p.timeout())
	if err != nil {
		return nil, headset.ErrHID("corsair read", err)
	}
	if n == 0 {
		return nil, headset.ErrTimeout("no response within %v", p.timeout())
	}
	return resp[:n], nil
}

// DecodedBattery is a parsed battery response.
type DecodedBattery struct {
	State headset.BatteryState
	Level int
	// MicUp is the microphone position flag carried in bit 7 of the level
	// byte.
	MicUp bool
}

// DecodeBattery parses a battery response. The mic-position bit is masked
// off the level before use. Status bytes outside the known sentinel set
// fail with a protocol error.
func DecodeBattery(resp []byte) (DecodedBattery, error) {
	if len(resp) < BatteryResponseLen {
		return DecodedBattery{}, headset.ErrProtocol("battery response truncated: %d bytes", len(resp))
	}
	out := DecodedBattery{
		Level: int(resp[2] &^ micUpBit),
		MicUp: resp[2]&micUpBit != 0,
	}
	switch resp[4] {
	case statusDisconnected:
		out.State = headset.BatteryDisconnected
		out.Level = -1
	case statusNormal, statusLow:
		out.State = headset.BatteryDischarging
	case statusCharging, statusCharged:
		out.State = headset.BatteryCharging
	default:
		return DecodedBattery{}, headset.ErrProtocol("unknown battery status %#02x", resp[4])
	}
	return out, nil
}

// BatterySpec carries a model's battery exchange bytes.
type BatterySpec struct {
	// Request is the 2-byte battery query.
	Request []byte
	// QuirkPID arms the V2 wireless firmware quirk: a response whose level
	// and status bytes echo product id + 1 (little-endian at offsets 2-3)
	// is bogus. One retry, then an unset result with no error, matching
	// the firmware's observed behavior.
	QuirkPID uint16
}

// Battery runs the battery exchange and decodes the result.
func (p Protocol) Battery(dev hid.Device, spec BatterySpec) (headset.BatteryResult, error) {
	for attempt := 0; ; attempt++ {
		resp, err := p.Exchange(dev, spec.Request, BatteryResponseLen)
		if err != nil {
			return headset.BatteryResult{}, err
		}
		if spec.QuirkPID != 0 && len(resp) >= 4 &&
			binary.LittleEndian.Uint16(resp[2:4]) == spec.QuirkPID+1 {
			if attempt == 0 {
				time.Sleep(p.Delay())
				continue
			}
			raw := make([]byte, len(resp))
			copy(raw, resp)
			return headset.BatteryResult{State: headset.BatteryUnknown, Level: -1, Raw: raw}, nil
		}
		dec, err := DecodeBattery(resp)
		if err != nil {
			return headset.BatteryResult{}, err
		}
		raw := make([]byte, len(resp))
		copy(raw, resp)
		return headset.BatteryResult{State: dec.State, Level: dec.Level, Raw: raw}, nil
	}
}

// LightsValue returns the wire byte for the lights switch. The firmware
// logic is inverted: 0x00 turns lights on, 0x01 turns them off. Kept as
// the hardware expects, not normalized.
func LightsValue(on bool) byte {
	if on {
		return 0x00
	}
	return 0x01
}
