// Package udev generates the Linux device-access rules that make supported
// headsets usable without root.
package udev

import (
	"fmt"
	"io"
	"strings"

	"github.com/Sapd/HeadsetControl-sub001/internal/headset"
)

// Write renders one rule block per device, tagging both the hidraw node
// and the usb parent for uaccess.
func Write(w io.Writer, devices []headset.Device) error {
	var b strings.Builder
	b.WriteString("# Generated by headsetcontrol. Install to /etc/udev/rules.d/70-headsets.rules\n")
	for _, d := range devices {
		m := d.Model()
		fmt.Fprintf(&b, "\n# %s\n", m.Name)
		for _, pid := range m.ProductIDs {
			fmt.Fprintf(&b, "KERNEL==\"hidraw*\", SUBSYSTEM==\"hidraw\", ATTRS{idVendor}==\"%04x\", ATTRS{idProduct}==\"%04x\", TAG+=\"uaccess\"\n",
				m.VendorID, pid)
		}
		for _, pid := range m.ProductIDs {
			fmt.Fprintf(&b, "SUBSYSTEM==\"usb\", ATTRS{idVendor}==\"%04x\", ATTRS{idProduct}==\"%04x\", TAG+=\"uaccess\"\n",
				m.VendorID, pid)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
