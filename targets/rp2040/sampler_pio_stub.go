//go:build rp2350

package main

import (
	"machine"

	"sigreader/core"
)

// runPIOSampler is unavailable on this target; the caller falls back
// to the software-paced sampler.
func runPIOSampler(pin machine.Pin, sink core.ByteSink, state *core.State) bool {
	return false
}
