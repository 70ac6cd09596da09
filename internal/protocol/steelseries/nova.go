package steelseries

import (
	"time"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

// NovaFrameLen is the fixed size of every Nova command frame.
const NovaFrameLen = 64

// NovaStatusMax bounds the status blob a dongle may return.
const NovaStatusMax = 128

// Nova is the Arctis Nova exchange behavior.
type Nova struct {
	// UseFeatureReports routes frames through feature reports instead of
	// interrupt writes (the wired Nova Pro base station wants this).
	UseFeatureReports bool
	Timeout           time.Duration
}

func (n Nova) timeout() time.Duration {
	if n.Timeout == 0 {
		return DefaultTimeout
	}
	return n.Timeout
}

// NovaFrame pads cmd to the Nova frame length.
func NovaFrame(cmd []byte) []byte {
	buf := make([]byte, NovaFrameLen)
	copy(buf, cmd)
	return buf
}

// Send transmits one command frame.
func (n Nova) Send(dev hid.Device, cmd []byte) error {
	if len(cmd) > NovaFrameLen {
		return headset.ErrInvalidParameter("command %d bytes exceeds frame", len(cmd))
	}
	frame := NovaFrame(cmd)
	var err error
	if n.UseFeatureReports {
		_, err = dev.SendFeatureReport(frame)
	} else {
		_, err = dev.Write(frame)
	}
	if err != nil {
		return headset.ErrHID("nova send", err)
	}
	return nil
}

// Status sends the model's status request and returns the raw blob.
func (n Nova) Status(dev hid.Device, request []byte) ([]byte, error) {
	if len(request) == 0 {
		return nil, headset.ErrInvalidParameter("empty status request")
	}
	if err := n.Send(dev, request); err != nil {
		return nil, err
	}
	resp := make([]byte, NovaStatusMax)
	var (
		read int
		err  error
	)
	if n.UseFeatureReports {
		resp[0] = request[0]
		read, err = dev.GetFeatureReport(resp)
	} else {
		read, err = dev.ReadWithTimeout(resp, n.timeout())
	}
	if err != nil {
		return nil, headset.ErrHID("nova status read", err)
	}
	if read == 0 {
		return nil, headset.ErrTimeout("no status within %v", n.timeout())
	}
	return resp[:read], nil
}

// NovaStatusSpec locates fields inside the status blob. Offsets set to -1
// are absent on the model.
type NovaStatusSpec struct {
	Request       []byte
	BatteryOffset int
	// BatteryMin/BatteryMax bound the raw charge byte; the reading
	// rescales linearly to 0-100.
	BatteryMin int
	BatteryMax int
	// ChargeOffset indexes the flag byte that is nonzero while charging.
	ChargeOffset int
	// OnlineOffset indexes the flag byte that is zero while the headset is
	// out of reach of the dongle.
	OnlineOffset int
	GameOffset   int
	ChatOffset   int
	// DialMax bounds the chat-mix dial bytes.
	DialMax int
}

// Battery extracts charge information from one status read. A powered-off
// headset yields a Disconnected result, not an error: the dongle always
// answers the status request.
func (n Nova) Battery(dev hid.Device, spec NovaStatusSpec) (headset.BatteryResult, error) {
	blob, err := n.Status(dev, spec.Request)
	if err != nil {
		return headset.BatteryResult{}, err
	}
	if len(blob) <= spec.BatteryOffset || (spec.ChargeOffset >= 0 && len(blob) <= spec.ChargeOffset) {
		return headset.BatteryResult{}, headset.ErrProtocol("status blob truncated: %d bytes", len(blob))
	}
	raw := make([]byte, len(blob))
	copy(raw, blob)

	if spec.OnlineOffset >= 0 {
		if len(blob) <= spec.OnlineOffset {
			return headset.BatteryResult{}, headset.ErrProtocol("status blob truncated: %d bytes", len(blob))
		}
		if blob[spec.OnlineOffset] == 0 {
			return headset.BatteryResult{State: headset.BatteryDisconnected, Level: -1, Raw: raw}, nil
		}
	}

	state := headset.BatteryDischarging
	if spec.ChargeOffset >= 0 && blob[spec.ChargeOffset] != 0 {
		state = headset.BatteryCharging
	}
	level := int(blob[spec.BatteryOffset])
	if level < spec.BatteryMin {
		level = spec.BatteryMin
	}
	if level > spec.BatteryMax {
		level = spec.BatteryMax
	}
	return headset.BatteryResult{
		State: state,
		Level: headset.MapRange(level, spec.BatteryMin, spec.BatteryMax, 0, 100),
		Raw:   raw,
	}, nil
}

// ChatMix extracts the dial balance from one status read. The dongle
// reports live dial values even while the headset itself is offline, so no
// online check applies here.
func (n Nova) ChatMix(dev hid.Device, spec NovaStatusSpec) (headset.ChatMixResult, error) {
	blob, err := n.Status(dev, spec.Request)
	if err != nil {
		return headset.ChatMixResult{}, err
	}
	if spec.GameOffset < 0 || spec.ChatOffset < 0 {
		return headset.ChatMixResult{}, headset.ErrProtocol("model reports no chat-mix dials")
	}
	need := spec.GameOffset
	if spec.ChatOffset > need {
		need = spec.ChatOffset
	}
	if len(blob) <= need {
		return headset.ChatMixResult{}, headset.ErrProtocol("status blob truncated: %d bytes", len(blob))
	}
	return headset.ChatMixResult{
		Level: mixLevel(int(blob[spec.GameOffset]), int(blob[spec.ChatOffset]), spec.DialMax),
	}, nil
}
