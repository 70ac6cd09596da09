// Package output renders device reports in the formats the command line
// offers: human-readable text plus JSON, YAML and shell-sourceable env
// lines for scripting.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/report"
)

// Format selects a renderer.
type Format string

const (
	FormatStandard Format = "standard"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatEnv      Format = "env"
)

// ParseFormat resolves a format name from the command line.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatStandard, FormatJSON, FormatYAML, FormatEnv:
		return Format(name), nil
	}
	return "", fmt.Errorf("unknown output format %q", name)
}

// Renderer stamps program identity into the machine formats.
type Renderer struct {
	Name       string
	Version    string
	APIVersion string
	// Short strips the standard format down to bare values, one line per
	// requested capability.
	Short bool
}

// Render writes all reports to w in the requested format.
func (r Renderer) Render(w io.Writer, f Format, reports []report.DeviceReport) error {
	switch f {
	case FormatJSON:
		return r.renderJSON(w, reports)
	case FormatYAML:
		return r.renderYAML(w, reports)
	case FormatEnv:
		return r.renderEnv(w, reports)
	case FormatStandard, "":
		return r.renderStandard(w, reports)
	}
	return fmt.Errorf("unknown output format %q", f)
}

// document is the machine-format wire shape.
type document struct {
	Name        string       `json:"name" yaml:"name"`
	Version     string       `json:"version" yaml:"version"`
	APIVersion  string       `json:"api_version" yaml:"api_version"`
	DeviceCount int          `json:"device_count" yaml:"device_count"`
	Devices     []deviceView `json:"devices" yaml:"devices"`
}

type deviceView struct {
	Status       string   `json:"status" yaml:"status"`
	Device       string   `json:"device" yaml:"device"`
	Vendor       string   `json:"id_vendor" yaml:"id_vendor"`
	Product      string   `json:"id_product" yaml:"id_product"`
	Capabilities []string `json:"capabilities" yaml:"capabilities"`

	Battery             *batteryView  `json:"battery,omitempty" yaml:"battery,omitempty"`
	ChatMix             *int          `json:"chatmix,omitempty" yaml:"chatmix,omitempty"`
	Sidetone            *sidetoneView `json:"sidetone,omitempty" yaml:"sidetone,omitempty"`
	Equalizer           []float64     `json:"equalizer,omitempty" yaml:"equalizer,omitempty"`
	ParametricEqualizer []bandView    `json:"parametric_equalizer,omitempty" yaml:"parametric_equalizer,omitempty"`
	Actions             []actionView  `json:"actions,omitempty" yaml:"actions,omitempty"`
}

type batteryView struct {
	Status         string `json:"status" yaml:"status"`
	Level          int    `json:"level" yaml:"level"`
	VoltageMV      uint16 `json:"voltage_millivolts,omitempty" yaml:"voltage_millivolts,omitempty"`
	TimeToFullMin  int    `json:"time_to_full_min,omitempty" yaml:"time_to_full_min,omitempty"`
	TimeToEmptyMin int    `json:"time_to_empty_min,omitempty" yaml:"time_to_empty_min,omitempty"`
}

type sidetoneView struct {
	Level int `json:"level" yaml:"level"`
	Raw   int `json:"raw" yaml:"raw"`
}

type bandView struct {
	FrequencyHz int     `json:"frequency_hz" yaml:"frequency_hz"`
	GainDB      float64 `json:"gain_db" yaml:"gain_db"`
	Q           float64 `json:"q" yaml:"q"`
	Type        string  `json:"type" yaml:"type"`
}

// actionView records one requested capability's outcome. Status is
// "success" or the error kind.
type actionView struct {
	Capability string `json:"capability" yaml:"capability"`
	Status     string `json:"status" yaml:"status"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r Renderer) document(reports []report.DeviceReport) document {
	doc := document{
		Name:        r.Name,
		Version:     r.Version,
		APIVersion:  r.APIVersion,
		DeviceCount: len(reports),
		Devices:     make([]deviceView, 0, len(reports)),
	}
	for _, rep := range reports {
		doc.Devices = append(doc.Devices, buildView(rep))
	}
	return doc
}

func buildView(rep report.DeviceReport) deviceView {
	v := deviceView{
		Device:  rep.Device,
		Vendor:  fmt.Sprintf("0x%04x", rep.Vendor),
		Product: fmt.Sprintf("0x%04x", rep.Product),
	}
	for _, c := range rep.Capabilities.List() {
		v.Capabilities = append(v.Capabilities, c.String())
	}

	failed := 0
	for _, res := range rep.Results {
		act := actionView{Capability: res.Capability.String(), Status: "success"}
		if res.Err != nil {
			failed++
			act.Status = headset.KindOf(res.Err).String()
			act.Error = res.Err.Error()
			v.Actions = append(v.Actions, act)
			continue
		}
		switch p := res.Payload.(type) {
		case headset.BatteryResult:
			v.Battery = &batteryView{
				Status:         p.State.String(),
				Level:          p.Level,
				VoltageMV:      p.VoltageMV,
				TimeToFullMin:  p.TimeToFullMin,
				TimeToEmptyMin: p.TimeToEmptyMin,
			}
		case headset.ChatMixResult:
			level := p.Level
			v.ChatMix = &level
		case headset.SidetoneResult:
			v.Sidetone = &sidetoneView{Level: p.Level, Raw: p.Raw}
		case headset.EqualizerResult:
			v.Equalizer = p.Bands
		case headset.ParametricEQResult:
			for _, b := range p.Bands {
				v.ParametricEqualizer = append(v.ParametricEqualizer, bandView{
					FrequencyHz: b.FrequencyHz,
					GainDB:      b.GainDB,
					Q:           b.Q,
					Type:        b.Type.String(),
				})
			}
		}
		v.Actions = append(v.Actions, act)
	}

	switch {
	case failed == 0:
		v.Status = "success"
	case failed == len(rep.Results):
		v.Status = "failure"
	default:
		v.Status = "partial"
	}
	return v
}

func (r Renderer) renderJSON(w io.Writer, reports []report.DeviceReport) error {
	buf, err := json.MarshalIndent(r.document(reports), "", "  ")
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	_, err = w.Write(buf)
	return err
}

func (r Renderer) renderYAML(w io.Writer, reports []report.DeviceReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.document(reports)); err != nil {
		return err
	}
	return enc.Close()
}

// renderEnv emits shell-sourceable lines for the first device: identity,
// battery and chat-mix values, plus one error line per failed capability.
func (r Renderer) renderEnv(w io.Writer, reports []report.DeviceReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "HEADSET_DEVICE_COUNT=%d\n", len(reports))
	if len(reports) > 0 {
		v := buildView(reports[0])
		fmt.Fprintf(&b, "HEADSET_DEVICE=%s\n", envQuote(v.Device))
		fmt.Fprintf(&b, "HEADSET_VENDORID=%s\n", v.Vendor)
		fmt.Fprintf(&b, "HEADSET_PRODUCTID=%s\n", v.Product)
		fmt.Fprintf(&b, "HEADSET_CAPABILITIES=%s\n", envQuote(strings.Join(v.Capabilities, ",")))
		if v.Battery != nil {
			fmt.Fprintf(&b, "HEADSET_BATTERY_STATUS=%s\n", envQuote(v.Battery.Status))
			fmt.Fprintf(&b, "HEADSET_BATTERY_LEVEL=%d\n", v.Battery.Level)
			if v.Battery.VoltageMV != 0 {
				fmt.Fprintf(&b, "HEADSET_BATTERY_VOLTAGE_MV=%d\n", v.Battery.VoltageMV)
			}
		}
		if v.ChatMix != nil {
			fmt.Fprintf(&b, "HEADSET_CHATMIX=%d\n", *v.ChatMix)
		}
		if v.Sidetone != nil {
			fmt.Fprintf(&b, "HEADSET_SIDETONE=%d\n", v.Sidetone.Level)
		}
		for _, a := range v.Actions {
			if a.Error == "" {
				continue
			}
			fmt.Fprintf(&b, "HEADSET_%s_ERROR=%s\n",
				strings.ToUpper(a.Capability), envQuote(a.Error))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func envQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func (r Renderer) renderStandard(w io.Writer, reports []report.DeviceReport) error {
	if len(reports) == 0 {
		_, err := fmt.Fprintln(w, "No supported headset found.")
		return err
	}
	for i, rep := range reports {
		if i > 0 && !r.Short {
			fmt.Fprintln(w)
		}
		v := buildView(rep)
		if !r.Short {
			fmt.Fprintf(w, "Found %s (%s:%s)\n", v.Device, v.Vendor, v.Product)
			if len(rep.Results) == 0 {
				fmt.Fprintf(w, "  capabilities: %s\n", strings.Join(v.Capabilities, ", "))
				continue
			}
		}
		for _, res := range rep.Results {
			if r.Short {
				fmt.Fprintln(w, shortLine(res))
			} else {
				fmt.Fprintf(w, "  %s: %s\n", res.Capability, resultLine(res))
			}
		}
	}
	return nil
}

func resultLine(res report.CapabilityResult) string {
	if res.Err != nil {
		return fmt.Sprintf("%s (%s)", res.Err.Error(), headset.KindOf(res.Err))
	}
	switch p := res.Payload.(type) {
	case headset.BatteryResult:
		switch p.State {
		case headset.BatteryDisconnected:
			return "headset disconnected"
		case headset.BatteryUnknown:
			return "no reading"
		}
		s := fmt.Sprintf("%d%% (%s)", p.Level, p.State)
		if p.VoltageMV != 0 {
			s += fmt.Sprintf(", %d mV", p.VoltageMV)
		}
		if p.TimeToEmptyMin > 0 {
			s += fmt.Sprintf(", ~%dh%02dm left", p.TimeToEmptyMin/60, p.TimeToEmptyMin%60)
		}
		if p.TimeToFullMin > 0 {
			s += fmt.Sprintf(", ~%dh%02dm to full", p.TimeToFullMin/60, p.TimeToFullMin%60)
		}
		return s
	case headset.ChatMixResult:
		return fmt.Sprintf("%d", p.Level)
	case headset.SidetoneResult:
		return fmt.Sprintf("level %d (raw %d, device range %d-%d)", p.Level, p.Raw, p.DeviceMin, p.DeviceMax)
	case headset.EqualizerResult:
		return fmt.Sprintf("%d bands applied", len(p.Bands))
	case headset.ParametricEQResult:
		return fmt.Sprintf("%d filters applied", len(p.Bands))
	}
	return "ok"
}

// shortLine is the scripting-friendly single value: numbers where the
// capability has one, ok/error otherwise.
func shortLine(res report.CapabilityResult) string {
	if res.Err != nil {
		return "error"
	}
	switch p := res.Payload.(type) {
	case headset.BatteryResult:
		return fmt.Sprintf("%d", p.Level)
	case headset.ChatMixResult:
		return fmt.Sprintf("%d", p.Level)
	case headset.SidetoneResult:
		return fmt.Sprintf("%d", p.Level)
	}
	return "ok"
}
