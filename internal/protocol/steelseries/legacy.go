// Package steelseries implements the two SteelSeries wireless protocol
// generations: the 31-byte frames of the original Arctis line and the
// 64-byte frames of the Nova line, including the Nova equalizer band codec.
package steelseries

import (
	"time"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

// LegacyFrameLen is the fixed size of every pre-Nova command frame.
const LegacyFrameLen = 31

// DefaultTimeout bounds the wait for a response frame.
const DefaultTimeout = 5 * time.Second

// Legacy is the pre-Nova exchange behavior. State-changing commands are
// followed by the model's save frame so settings survive power-off.
type Legacy struct {
	// Save is the model's persist-settings opcode pair (0x06,0x09 on the
	// Arctis 7 generation, 0x90,0x00 on the Arctis 9). Empty means the
	// model saves implicitly.
	Save []byte
	// ReadDelay is the model's settle time between a request write and the
	// response read.
	ReadDelay time.Duration
	Timeout   time.Duration
}

func (l Legacy) timeout() time.Duration {
	if l.Timeout == 0 {
		return DefaultTimeout
	}
	return l.Timeout
}

// LegacyFrame pads cmd to the fixed frame length.
func LegacyFrame(cmd []byte) []byte {
	buf := make([]byte, LegacyFrameLen)
	copy(buf, cmd)
	return buf
}

// Write sends one command frame.
func (l Legacy) Write(dev hid.Device, cmd []byte) error {
	if len(cmd) > LegacyFrameLen {
		return headset.ErrInvalidParameter("command %d bytes exceeds frame", len(cmd))
	}
	if _, err := dev.Write(LegacyFrame(cmd)); err != nil {
		return headset.ErrHID("steelseries write", err)
	}
	return nil
}

// Apply sends a state-changing command followed by the save frame. A save
// failure fails the whole operation: the device would revert the setting on
// power-off.
func (l Legacy) Apply(dev hid.Device, cmd []byte) error {
	if err := l.Write(dev, cmd); err != nil {
		return err
	}
	return l.SaveState(dev)
}

// SaveState persists the last written settings on the headset.
func (l Legacy) SaveState(dev hid.Device) error {
	if len(l.Save) == 0 {
		return nil
	}
	if _, err := dev.Write(LegacyFrame(l.Save)); err != nil {
		return headset.ErrHID("steelseries save state", err)
	}
	return nil
}

// Exchange sends a request frame and reads the response, honoring the
// model's settle delay.
func (l Legacy) Exchange(dev hid.Device, cmd []byte) ([]byte, error) {
	if err := l.Write(dev, cmd); err != nil {
		return nil, err
	}
	if l.ReadDelay > 0 {
		time.Sleep(l.ReadDelay)
	}
	resp := make([]byte, LegacyFrameLen)
	n, err := dev.ReadWithTimeout(resp, l.timeout())
	if err != nil {
		return nil, headset.ErrHID("steelseries read", err)
	}
	if n == 0 {
		return nil, headset.ErrTimeout("no response within %v", l.timeout())
	}
	return resp[:n], nil
}

// LegacyBatterySpec describes where a model reports charge inside the
// battery response. The raw value is a device-scale reading, not voltage.
type LegacyBatterySpec struct {
	Request     []byte
	LevelOffset int
	// LevelMin/LevelMax bound the raw scale; the reading rescales linearly
	// to 0-100.
	LevelMin int
	LevelMax int
	// StatusOffset indexes the sentinel byte distinguishing offline and
	// charging states; negative when the model has none.
	StatusOffset  int
	OfflineValue  byte
	ChargingValue byte
}

// Battery reads the charge level. An offline sentinel yields a
// Disconnected result with no level rather than an error: the dongle
// answered, the headset is simply off.
func (l Legacy) Battery(dev hid.Device, spec LegacyBatterySpec) (headset.BatteryResult, error) {
	resp, err := l.Exchange(dev, spec.Request)
	if err != nil {
		return headset.BatteryResult{}, err
	}
	if len(resp) <= spec.LevelOffset {
		return headset.BatteryResult{}, headset.ErrProtocol("battery response truncated: %d bytes", len(resp))
	}
	raw := make([]byte, len(resp))
	copy(raw, resp)

	state := headset.BatteryDischarging
	if spec.StatusOffset >= 0 {
		if len(resp) <= spec.StatusOffset {
			return headset.BatteryResult{}, headset.ErrProtocol("battery response truncated: %d bytes", len(resp))
		}
		switch resp[spec.StatusOffset] {
		case spec.OfflineValue:
			return headset.BatteryResult{State: headset.BatteryDisconnected, Level: -1, Raw: raw}, nil
		case spec.ChargingValue:
			state = headset.BatteryCharging
		}
	}

	level := int(resp[spec.LevelOffset])
	if level < spec.LevelMin {
		level = spec.LevelMin
	}
	if level > spec.LevelMax {
		level = spec.LevelMax
	}
	return headset.BatteryResult{
		State: state,
		Level: headset.MapRange(level, spec.LevelMin, spec.LevelMax, 0, 100),
		Raw:   raw,
	}, nil
}

// LegacyChatMixSpec locates the two dial bytes in the chat-mix response.
type LegacyChatMixSpec struct {
	Request    []byte
	GameOffset int
	ChatOffset int
	// RawMax bounds each dial byte, 0-RawMax.
	RawMax int
}

// ChatMix combines the game and chat dial readings into one 0-128 level
// centered at 64: game pulls up to +64, chat pulls down to -64.
func (l Legacy) ChatMix(dev hid.Device, spec LegacyChatMixSpec) (headset.ChatMixResult, error) {
	resp, err := l.Exchange(dev, spec.Request)
	if err != nil {
		return headset.ChatMixResult{}, err
	}
	need := spec.GameOffset
	if spec.ChatOffset > need {
		need = spec.ChatOffset
	}
	if len(resp) <= need {
		return headset.ChatMixResult{}, headset.ErrProtocol("chatmix response truncated: %d bytes", len(resp))
	}
	return headset.ChatMixResult{
		Level: mixLevel(int(resp[spec.GameOffset]), int(resp[spec.ChatOffset]), spec.RawMax),
	}, nil
}

func mixLevel(game, chat, rawMax int) int {
	if game > rawMax {
		game = rawMax
	}
	if chat > rawMax {
		chat = rawMax
	}
	return 64 + headset.MapRange(game, 0, rawMax, 0, 64) + headset.MapRange(chat, 0, rawMax, 0, -64)
}
