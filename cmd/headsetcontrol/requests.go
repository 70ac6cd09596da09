package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/report"
)

// buildRequests translates capability flags into the ordered request list
// run against each device. Flags map to requests in capability order, not
// in the order given on the command line.
func buildRequests(c *commandLine) ([]report.Request, error) {
	var reqs []report.Request

	if c.Sidetone != nil {
		reqs = append(reqs, report.Request{Capability: headset.Sidetone, Level: *c.Sidetone})
	}
	if c.Battery {
		reqs = append(reqs, report.Request{Capability: headset.BatteryStatus})
	}
	if c.Notificate != nil {
		reqs = append(reqs, report.Request{Capability: headset.NotificationSound, SoundID: *c.Notificate})
	}
	if c.Light != nil {
		on, err := onOff("--light", *c.Light)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, report.Request{Capability: headset.Lights, On: on})
	}
	if c.InactiveTime != nil {
		reqs = append(reqs, report.Request{Capability: headset.InactiveTime, Minutes: *c.InactiveTime})
	}
	if c.Chatmix {
		reqs = append(reqs, report.Request{Capability: headset.ChatMix})
	}
	if c.VoicePrompt != nil {
		on, err := onOff("--voice-prompt", *c.VoicePrompt)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, report.Request{Capability: headset.VoicePrompts, On: on})
	}
	if c.RotateToMute != nil {
		on, err := onOff("--rotate-to-mute", *c.RotateToMute)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, report.Request{Capability: headset.RotateToMute, On: on})
	}
	if c.Equalizer != "" {
		bands, err := parseEqualizer(c.Equalizer)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, report.Request{Capability: headset.Equalizer, Bands: bands})
	}
	if c.EqualizerPreset != nil {
		reqs = append(reqs, report.Request{Capability: headset.EqualizerPreset, Preset: *c.EqualizerPreset})
	}
	if c.ParametricEqualizer != "" {
		bands, err := parseParametric(c.ParametricEqualizer)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, report.Request{Capability: headset.ParametricEqualizer, Parametric: bands})
	}
	if c.MicrophoneMuteLedBrightness != nil {
		reqs = append(reqs, report.Request{Capability: headset.MicMuteLEDBrightness, Level: *c.MicrophoneMuteLedBrightness})
	}
	if c.MicrophoneVolume != nil {
		reqs = append(reqs, report.Request{Capability: headset.MicVolume, Level: *c.MicrophoneVolume})
	}
	if c.VolumeLimiter != nil {
		on, err := onOff("--volume-limiter", *c.VolumeLimiter)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, report.Request{Capability: headset.VolumeLimiter, On: on})
	}
	if c.BtWhenPoweredOn != nil {
		on, err := onOff("--bt-when-powered-on", *c.BtWhenPoweredOn)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, report.Request{Capability: headset.BTWhenPoweredOn, On: on})
	}
	if c.BtCallVolume != nil {
		reqs = append(reqs, report.Request{Capability: headset.BTCallVolume, Level: *c.BtCallVolume})
	}

	return reqs, nil
}

// onOff maps a 0|1 switch flag to a bool.
func onOff(flag string, v int) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("%s accepts 0 or 1, got %d", flag, v)
}

// parseEqualizer splits a comma separated gain list such as "3,1.5,0,-2".
func parseEqualizer(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	bands := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("equalizer band %q is not a number", p)
		}
		bands = append(bands, v)
	}
	return bands, nil
}

// parseParametric parses semicolon separated filter groups such as
// "1000,3,1.4,peaking;95,5,0.7,lowshelf". Each group is frequency in Hz,
// gain in dB, Q factor and filter type name.
func parseParametric(s string) ([]headset.ParametricBand, error) {
	var bands []headset.ParametricBand
	for _, group := range strings.Split(s, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		fields := strings.Split(group, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("parametric filter %q wants freq,gain,q,type", group)
		}
		freq, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("parametric filter %q: bad frequency %q", group, strings.TrimSpace(fields[0]))
		}
		gain, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("parametric filter %q: bad gain %q", group, strings.TrimSpace(fields[1]))
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("parametric filter %q: bad q %q", group, strings.TrimSpace(fields[2]))
		}
		name := strings.TrimSpace(fields[3])
		typ, ok := headset.ParseFilterType(name)
		if !ok {
			return nil, fmt.Errorf("parametric filter %q: unknown filter type %q", group, name)
		}
		bands = append(bands, headset.ParametricBand{
			FrequencyHz: freq,
			GainDB:      gain,
			Q:           q,
			Type:        typ,
		})
	}
	if len(bands) == 0 {
		return nil, errors.New("no parametric filters given")
	}
	return bands, nil
}
