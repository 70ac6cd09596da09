// Package hidpp implements the slice of Logitech's HID++ protocol the
// supported headsets speak: long-format messages addressed to the wireless
// receiver, one solicited response per request.
package hidpp

import (
	"encoding/binary"
	"time"

	"github.com/Sapd/HeadsetControl-sub001/internal/battery"
	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

const (
	// ReportIDLong starts every long-format message.
	ReportIDLong = 0x11
	// ReceiverIndex addresses the paired device behind the receiver.
	ReceiverIndex = 0xff
	// LongLen is the fixed length of long-format messages and responses.
	LongLen = 20

	// offlineSentinel at response offset 2 means the headset is powered off
	// or out of range of its receiver.
	offlineSentinel = 0x8f
)

// DefaultTimeout bounds the wait for a solicited response.
const DefaultTimeout = 5 * time.Second

// Protocol carries the per-exchange settings shared by all HID++ devices.
type Protocol struct {
	Timeout time.Duration
}

func (p Protocol) timeout() time.Duration {
	if p.Timeout == 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

// Request sends one long message and returns its response. payload starts
// at the feature-index byte; the header and zero padding to LongLen are
// added here. An offline sentinel in the response is surfaced as
// DeviceOffline.
func (p Protocol) Request(dev hid.Device, payload []byte) ([]byte, error) {
	if len(payload) > LongLen-2 {
		return nil, headset.ErrInvalidParameter("hidpp payload %d bytes exceeds long message", len(payload))
	}
	msg := make([]byte, LongLen)
	msg[0] = ReportIDLong
	msg[1] = ReceiverIndex
	copy(msg[2:], payload)

	if _, err := dev.Write(msg); err != nil {
		return nil, headset.ErrHID("hidpp write", err)
	}
	resp := make([]byte, LongLen)
	n, err := dev.ReadWithTimeout(resp, p.timeout())
	if err != nil {
		return nil, headset.ErrHID("hidpp read", err)
	}
	if n == 0 {
		return nil, headset.ErrTimeout("no hidpp response within %v", p.timeout())
	}
	if n > 2 && resp[2] == offlineSentinel {
		return nil, headset.ErrOffline("headset not connected to receiver")
	}
	return resp[:n], nil
}

// BatterySpec names a model's voltage-read command and its voltage curve.
type BatterySpec struct {
	// Request holds the feature-index and function bytes of the voltage
	// read, without header or padding.
	Request   []byte
	Estimator battery.Estimator
}

// Battery reads the terminal voltage and estimates the charge level.
// Voltage is big-endian at response offsets 4-5; offset 6 is nonzero while
// charging.
func (p Protocol) Battery(dev hid.Device, spec BatterySpec) (headset.BatteryResult, error) {
	resp, err := p.Request(dev, spec.Request)
	if err != nil {
		return headset.BatteryResult{}, err
	}
	if len(resp) < 7 {
		return headset.BatteryResult{}, headset.ErrProtocol("battery response truncated: %d bytes", len(resp))
	}
	voltage := binary.BigEndian.Uint16(resp[4:6])
	state := headset.BatteryDischarging
	if resp[6] != 0 {
		state = headset.BatteryCharging
	}
	raw := make([]byte, len(resp))
	copy(raw, resp)
	return headset.BatteryResult{
		State:     state,
		Level:     spec.Estimator.Estimate(voltage),
		VoltageMV: voltage,
		Raw:       raw,
	}, nil
}

// SetInactiveTime writes the auto-off delay through the same exchange
// cycle; the receiver acks with a standard response frame.
func (p Protocol) SetInactiveTime(dev hid.Device, feature []byte, minutes int) error {
	payload := make([]byte, 0, len(feature)+1)
	payload = append(payload, feature...)
	payload = append(payload, byte(minutes))
	_, err := p.Request(dev, payload)
	return err
}
