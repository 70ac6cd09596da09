package devices

import "github.com/Sapd/HeadsetControl-sub001/internal/headset"

// All returns every cataloged device, constructed with opts. The synthetic
// test device is not part of the catalog; callers wanting it construct it
// explicitly.
func All(opts Options) []headset.Device {
	return []headset.Device{
		NewCorsairVoid(opts),
		NewCorsairVoidV2(opts),
		NewLogitechG633(opts),
		NewSteelSeriesArctis7(opts),
		NewSteelSeriesArctis9(opts),
		NewSteelSeriesArctisNova7(opts),
		NewSteelSeriesArctisNovaPro(opts),
		NewHyperXCloudFlight(opts),
		NewHyperXCloudAlphaWireless(opts),
		NewRoccatEloAir(opts),
		NewAudezeMaxwell(opts),
	}
}

// Lookup finds the cataloged device claiming vid:pid.
func Lookup(vid, pid uint16, opts Options) (headset.Device, bool) {
	for _, d := range All(opts) {
		m := d.Model()
		if m.VendorID == vid && m.HasProductID(pid) {
			return d, true
		}
	}
	return nil, false
}
