//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"sigreader/core"
)

// pinSource reads the monitored line's logic level.
type pinSource struct {
	pin machine.Pin
}

func (s pinSource) ReadLevel() bool {
	return s.pin.Get()
}

// uartSink forwards completed bytes to the data UART. The UART's TX
// ring buffer makes WriteByte bounded-time: a saturated line fails fast
// instead of stalling the tick.
type uartSink struct {
	uart *machine.UART
}

func (s *uartSink) WriteByte(b byte) error {
	return s.uart.WriteByte(b)
}

// runPacedSampler drives core.Sampler.Tick from a deadline-corrected
// software loop. Software pacing jitters more than the PIO backend but
// works on any target; drift does not accumulate because each deadline
// is derived from the previous one, not from "now". Never returns.
func runPacedSampler(pin machine.Pin, sink core.ByteSink, state *core.State) {
	sampler := core.NewSampler(pinSource{pin: pin}, sink, state)
	period := time.Second / samplingRate

	next := time.Now()
	for {
		sampler.Tick()

		next = next.Add(period)
		if d := time.Until(next); d > 0 {
			time.Sleep(d)
		}
	}
}
