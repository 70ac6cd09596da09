// Command headsetcontrol queries and configures USB and wireless gaming
// headsets: sidetone, battery state, lights, equalizers and the rest of the
// catalog's capabilities.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/Sapd/HeadsetControl-sub001/internal/devices"
	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
	"github.com/Sapd/HeadsetControl-sub001/internal/output"
	"github.com/Sapd/HeadsetControl-sub001/internal/report"
	"github.com/Sapd/HeadsetControl-sub001/internal/router"
	"github.com/Sapd/HeadsetControl-sub001/internal/udev"
)

const (
	version    = "3.0.0"
	apiVersion = "1.0"
)

// commandLine is the full flag surface. Capability flags are pointers where
// an explicit zero must be distinguishable from "not given".
type commandLine struct {
	Sidetone     *int `short:"s" placeholder:"LEVEL" help:"Set sidetone level (0 off, 128 loudest)."`
	Battery      bool `short:"b" help:"Query battery state and charge level."`
	Notificate   *int `short:"n" placeholder:"SOUNDID" help:"Play a built-in notification sound."`
	Light        *int `short:"l" placeholder:"0|1" help:"Switch lights off or on."`
	InactiveTime *int `short:"i" placeholder:"MINUTES" help:"Set inactive time in minutes, 0 disables."`
	Chatmix      bool `short:"m" help:"Query the chat/game mix level."`
	VoicePrompt  *int `short:"v" placeholder:"0|1" help:"Switch voice prompts off or on."`
	RotateToMute *int `short:"r" placeholder:"0|1" help:"Switch rotate-to-mute off or on."`

	Equalizer           string `placeholder:"BANDS" help:"Set equalizer band gains, comma separated dB values."`
	EqualizerPreset     *int   `short:"p" placeholder:"INDEX" help:"Apply a hardware equalizer preset."`
	ParametricEqualizer string `placeholder:"FILTERS" help:"Set parametric equalizer filters as freq,gain,q,type groups separated by semicolons."`

	MicrophoneMuteLedBrightness *int `placeholder:"LEVEL" help:"Set microphone mute LED brightness (0-128)."`
	MicrophoneVolume            *int `placeholder:"LEVEL" help:"Set microphone volume (0-128)."`
	VolumeLimiter               *int `placeholder:"0|1" help:"Switch the volume limiter off or on."`
	BtWhenPoweredOn             *int `placeholder:"0|1" help:"Switch bluetooth-on-power-up off or on."`
	BtCallVolume                *int `placeholder:"LEVEL" help:"Set headset volume during bluetooth calls (0-128)."`

	Output         string        `default:"standard" placeholder:"FORMAT" help:"Output format: standard, json, yaml or env."`
	ShortOutput    bool          `help:"Print bare values only, one per line."`
	Follow         bool          `help:"Rerun the requests periodically until interrupted."`
	FollowInterval time.Duration `default:"2s" help:"Delay between runs in follow mode."`

	Timeout    int    `default:"5000" placeholder:"MS" help:"Receive timeout in milliseconds."`
	TestDevice string `placeholder:"PROFILE" help:"Use the synthetic test device: normal, fail or offline."`
	Debug      bool   `help:"Enable debug logging."`

	DevRules     bool             `short:"u" help:"Print udev rules for all supported headsets and exit."`
	Capabilities bool             `help:"List connected headsets and their capabilities."`
	Version      kong.VersionFlag `help:"Print version and exit."`
}

var cli commandLine

// target is one discovered headset: the catalog entry claiming it plus the
// product id it enumerated under.
type target struct {
	device headset.Device
	pid    uint16
}

func main() {
	kong.Parse(&cli,
		kong.Name("headsetcontrol"),
		kong.Description("Control USB and wireless gaming headsets."),
		kong.Vars{"version": version},
	)

	level := slog.LevelWarn
	if cli.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	os.Exit(run())
}

func run() int {
	if cli.Timeout < 0 {
		fmt.Fprintln(os.Stderr, "headsetcontrol: timeout must not be negative")
		return 1
	}
	opts := devices.Options{Timeout: time.Duration(cli.Timeout) * time.Millisecond}

	if cli.DevRules {
		if err := udev.Write(os.Stdout, devices.All(opts)); err != nil {
			fmt.Fprintln(os.Stderr, "headsetcontrol:", err)
			return 1
		}
		return 0
	}

	format, err := output.ParseFormat(cli.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, "headsetcontrol:", err)
		return 1
	}

	reqs, err := buildRequests(&cli)
	if err != nil {
		fmt.Fprintln(os.Stderr, "headsetcontrol:", err)
		return 1
	}
	if cli.Capabilities {
		// Listing mode: render the discovered devices without touching
		// them.
		reqs = nil
	} else if len(reqs) == 0 {
		fmt.Fprintln(os.Stderr, "headsetcontrol: nothing to do, pass at least one capability flag (see --help)")
		return 1
	}
	if cli.Follow && cli.FollowInterval <= 0 {
		fmt.Fprintln(os.Stderr, "headsetcontrol: follow interval must be positive")
		return 1
	}

	targets, mgr, err := discover(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "headsetcontrol:", err)
		return 1
	}

	renderer := output.Renderer{
		Name:       "headsetcontrol",
		Version:    version,
		APIVersion: apiVersion,
		Short:      cli.ShortOutput,
	}

	if len(targets) == 0 {
		if err := renderer.Render(os.Stdout, format, nil); err != nil {
			fmt.Fprintln(os.Stderr, "headsetcontrol:", err)
		}
		return 1
	}

	rt := router.New(mgr)
	defer rt.Close()

	failed, err := runOnce(rt, targets, reqs, renderer, format)
	if err != nil {
		fmt.Fprintln(os.Stderr, "headsetcontrol:", err)
		return 1
	}
	code := 0
	if failed {
		code = 1
	}
	if !cli.Follow {
		return code
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer stop()

	ticker := time.NewTicker(cli.FollowInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return code
		case <-ticker.C:
		}
		failed, err = runOnce(rt, targets, reqs, renderer, format)
		if err != nil {
			fmt.Fprintln(os.Stderr, "headsetcontrol:", err)
			return 1
		}
		if failed {
			code = 1
		}
	}
}

// runOnce executes the request set against every target and renders the
// combined report.
func runOnce(rt *router.Router, targets []target, reqs []report.Request, renderer output.Renderer, format output.Format) (bool, error) {
	reports := make([]report.DeviceReport, 0, len(targets))
	for _, t := range targets {
		reports = append(reports, report.Run(rt, t.device, t.pid, reqs))
	}
	failed := false
	for _, rep := range reports {
		if rep.Failed() {
			failed = true
		}
	}
	return failed, renderer.Render(os.Stdout, format, reports)
}

// discover scans the HID bus for cataloged headsets, or fabricates the test
// device when requested. A physical headset enumerates one Info per HID
// endpoint, so hits are deduplicated by vendor and product id.
func discover(opts devices.Options) ([]target, hid.Manager, error) {
	if cli.TestDevice != "" {
		profile, err := devices.ParseTestProfile(cli.TestDevice)
		if err != nil {
			return nil, nil, err
		}
		mgr := hid.NewMockManager(hid.Info{
			Path:      "testdevice",
			VendorID:  devices.TestVendorID,
			ProductID: devices.TestProductID,
		})
		return []target{{devices.NewTestDevice(profile), devices.TestProductID}}, mgr, nil
	}

	mgr, err := hid.NewManager()
	if err != nil {
		return nil, nil, fmt.Errorf("opening hid backend: %w", err)
	}
	infos, err := mgr.List()
	if err != nil {
		return nil, nil, fmt.Errorf("enumerating hid devices: %w", err)
	}

	seen := make(map[uint32]bool)
	var targets []target
	for _, info := range infos {
		key := uint32(info.VendorID)<<16 | uint32(info.ProductID)
		if seen[key] {
			continue
		}
		seen[key] = true
		d, ok := devices.Lookup(info.VendorID, info.ProductID, opts)
		if !ok {
			continue
		}
		slog.Debug("found supported headset",
			slog.String("name", d.Model().Name),
			slog.String("path", info.Path))
		targets = append(targets, target{d, info.ProductID})
	}
	return targets, mgr, nil
}
