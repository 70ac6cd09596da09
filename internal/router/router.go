// Package router resolves each capability to the HID endpoint that serves
// it and hands out open handles, caching the one live connection.
package router

import (
	"log/slog"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
	"github.com/Sapd/HeadsetControl-sub001/internal/hid"
)

// Router opens per-capability endpoints for one logical device. At most
// one handle is open at any time: switching to a different endpoint closes
// the old handle before opening the new one, so repeated polling cannot
// leak OS handles. The router knows nothing about capability semantics.
type Router struct {
	mgr hid.Manager

	path string
	dev  hid.Device
}

func New(mgr hid.Manager) *Router {
	return &Router{mgr: mgr}
}

// Acquire returns an open handle on the endpoint serving c. The cached
// handle is reused while the resolved platform path stays the same.
func (r *Router) Acquire(m *headset.Model, pid uint16, c headset.Capability) (hid.Device, error) {
	route := m.Route(c)
	info, err := r.mgr.Find(hid.Selector{
		VendorID:  m.VendorID,
		ProductID: pid,
		Interface: route.Interface,
		UsagePage: route.UsagePage,
		UsageID:   route.UsageID,
	})
	if err != nil {
		return nil, headset.ErrHID("locate endpoint", err)
	}
	if r.dev != nil && r.path == info.Path {
		return r.dev, nil
	}
	if r.dev != nil {
		// close before open, never two handles at once
		if cerr := r.dev.Close(); cerr != nil {
			slog.Warn("failed to close previous endpoint",
				slog.String("path", r.path), slog.Any("error", cerr))
		}
		r.dev, r.path = nil, ""
	}
	dev, err := r.mgr.Open(info)
	if err != nil {
		return nil, headset.ErrHID("open endpoint", err)
	}
	slog.Debug("opened endpoint",
		slog.String("path", info.Path),
		slog.String("capability", c.String()))
	r.dev, r.path = dev, info.Path
	return dev, nil
}

// Close releases the cached handle, if any.
func (r *Router) Close() error {
	if r.dev == nil {
		return nil
	}
	err := r.dev.Close()
	r.dev, r.path = nil, ""
	return err
}
