// Package devices holds the catalog of supported headsets: one file per
// model family carrying its byte constants, capability set and endpoint
// routes, plus the registry used for discovery.
package devices

import "time"

// Options tunes constructed devices.
type Options struct {
	// Timeout bounds every response read.
	Timeout time.Duration
}
