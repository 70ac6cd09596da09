// Package report executes requested operations against one device and
// aggregates the per-capability outcomes for rendering.
package report

import (
	"log/slog"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
	"github.com/Sapd/HeadsetControl-sub001/internal/router"
)

// Request names one capability to exercise plus its parameters; each
// capability reads the fields it needs.
type Request struct {
	Capability headset.Capability

	Level      int
	On         bool
	Minutes    int
	SoundID    int
	Preset     int
	Bands      []float64
	Parametric []headset.ParametricBand
}

// CapabilityResult is one operation's outcome: a typed payload for
// getters and echoing setters, nil payload for plain acks, or the error.
type CapabilityResult struct {
	Capability headset.Capability
	Payload    any
	Err        error
}

// DeviceReport aggregates one invocation against one device.
type DeviceReport struct {
	Device       string
	Vendor       uint16
	Product      uint16
	Capabilities headset.CapabilitySet
	Results      []CapabilityResult
}

// Failed reports whether any requested capability failed.
func (r DeviceReport) Failed() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return true
		}
	}
	return false
}

// Invoke dispatches one request to the device method serving its
// capability.
func Invoke(d headset.Device, dev hid.Device, req Request) (any, error) {
	switch req.Capability {
	case headset.Sidetone:
		return payload(d.SetSidetone(dev, req.Level))
	case headset.BatteryStatus:
		return payload(d.Battery(dev))
	case headset.NotificationSound:
		return nil, d.PlayNotification(dev, req.SoundID)
	case headset.Lights:
		return nil, d.SetLights(dev, req.On)
	case headset.InactiveTime:
		return nil, d.SetInactiveTime(dev, req.Minutes)
	case headset.ChatMix:
		return payload(d.ChatMix(dev))
	case headset.VoicePrompts:
		return nil, d.SetVoicePrompts(dev, req.On)
	case headset.RotateToMute:
		return nil, d.SetRotateToMute(dev, req.On)
	case headset.Equalizer:
		return payload(d.SetEqualizer(dev, req.Bands))
	case headset.EqualizerPreset:
		return nil, d.SetEqualizerPreset(dev, req.Preset)
	case headset.ParametricEqualizer:
		return payload(d.SetParametricEqualizer(dev, req.Parametric))
	case headset.MicMuteLEDBrightness:
		return nil, d.SetMicMuteLEDBrightness(dev, req.Level)
	case headset.MicVolume:
		return nil, d.SetMicVolume(dev, req.Level)
	case headset.VolumeLimiter:
		return nil, d.SetVolumeLimiter(dev, req.On)
	case headset.BTWhenPoweredOn:
		return nil, d.SetBTWhenPoweredOn(dev, req.On)
	case headset.BTCallVolume:
		return nil, d.SetBTCallVolume(dev, req.Level)
	}
	return nil, headset.ErrInvalidParameter("unknown capability %d", req.Capability)
}

func payload[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Run executes each request independently: one capability's failure is
// recorded and the next still runs. Unadvertised capabilities are rejected
// before any endpoint is resolved or opened.
func Run(rt *router.Router, d headset.Device, pid uint16, reqs []Request) DeviceReport {
	m := d.Model()
	rep := DeviceReport{
		Device:       m.Name,
		Vendor:       m.VendorID,
		Product:      pid,
		Capabilities: m.Capabilities,
	}
	for _, req := range reqs {
		if !m.Supports(req.Capability) {
			rep.Results = append(rep.Results, CapabilityResult{
				Capability: req.Capability,
				Err:        headset.ErrNotSupported(req.Capability),
			})
			continue
		}
		conn, err := rt.Acquire(m, pid, req.Capability)
		if err != nil {
			rep.Results = append(rep.Results, CapabilityResult{Capability: req.Capability, Err: err})
			continue
		}
		res, err := Invoke(d, conn, req)
		if err != nil {
			slog.Debug("operation failed",
				slog.String("device", m.Name),
				slog.String("capability", req.Capability.String()),
				slog.Any("error", err))
		}
		rep.Results = append(rep.Results, CapabilityResult{
			Capability: req.Capability,
			Payload:    res,
			Err:        err,
		})
	}
	return rep
}
