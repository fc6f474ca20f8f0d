//go:build rp2040

package main

// PIO sampler backend using the tinygo-org/pio package
// The state machine samples the pin at the exact configured rate and
// autopushes every 8 bits, so the RX FIFO yields packed bytes with
// hardware timing and the CPU only drains the FIFO.

import (
	"machine"
	"time"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"sigreader/core"
)

// buildSamplerProgram creates the sampling PIO program using AssemblerV0
//
// Program flow:
//  1. Shift the pin level into the ISR (shift left, so the first
//     sample lands in bit 7 of each pushed byte)
//  2. Autopush moves the ISR to the RX FIFO every 8 bits
//
// The single instruction plus 7 delay cycles makes one sample cost
// exactly pioCyclesPerSample cycles, which the clock divider maps to
// the sampling rate.
func buildSamplerProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.In(rp2pio.InSrcPins, 1).Delay(7).Encode(), // 0: in pins, 1 [7]
		// .wrap
	}
}

const (
	samplerPIOOrigin   = 0
	pioCyclesPerSample = 8
)

type pioSampler struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	pin    machine.Pin
	offset uint8
}

// newPIOSampler claims PIO0 state machine 0 and configures it to
// sample pin at samplingRate
func newPIOSampler(pin machine.Pin) (*pioSampler, error) {
	pioHW := rp2pio.PIO0
	s := &pioSampler{
		pio: pioHW,
		sm:  pioHW.StateMachine(0),
		pin: pin,
	}

	s.sm.TryClaim()

	program := buildSamplerProgram()
	offset, err := s.pio.AddProgram(program, samplerPIOOrigin)
	if err != nil {
		return nil, err
	}
	s.offset = offset

	// The pin keeps its pull-up from bring-up; PIO only needs mux
	// ownership for input sampling.
	s.pin.Configure(machine.PinConfig{Mode: s.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()

	// Sample input base pin
	cfg.SetInPins(pin)

	// Shift left, autopush at 8 bits: first sample ends up in the MSB
	cfg.SetInShift(false, true, 8)

	// Wrap the single-instruction loop
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	div, frac := pioClockDiv(samplingRate)
	cfg.SetClkDivIntFrac(div, frac)

	s.sm.Init(offset, cfg)

	// Sample pin is an input
	s.sm.SetPindirsConsecutive(pin, 1, false)

	s.sm.SetEnabled(true)

	return s, nil
}

// pioClockDiv computes the 16.8 fixed-point divider that maps the
// system clock to pioCyclesPerSample cycles per sample
func pioClockDiv(rate uint32) (uint16, uint8) {
	div256 := uint64(machine.CPUFrequency()) * 256 / (uint64(rate) * pioCyclesPerSample)
	return uint16(div256 >> 8), uint8(div256 & 0xFF)
}

// drain forwards packed bytes from the RX FIFO to the sink and keeps
// the shared counters, exactly as the per-tick path would. Never
// returns. A byte arrives only every 8 sample periods, so the sleep in
// the empty branch yields to the monitor goroutine without risking
// FIFO overflow (the FIFO holds 4 entries).
func (s *pioSampler) drain(sink core.ByteSink, state *core.State) {
	for {
		if s.sm.IsRxFIFOEmpty() {
			time.Sleep(10 * time.Microsecond)
			continue
		}

		b := byte(s.sm.RxGet() & 0xFF)
		if err := sink.WriteByte(b); err != nil {
			state.SetIOError()
			continue
		}
		state.AddSamplesSent(8)
	}
}

// runPIOSampler starts the hardware-timed sampler. Returns false if the
// PIO could not be set up, so the caller can fall back to the paced
// loop; on success it never returns.
func runPIOSampler(pin machine.Pin, sink core.ByteSink, state *core.State) bool {
	s, err := newPIOSampler(pin)
	if err != nil {
		println("pio sampler init failed:", err.Error())
		return false
	}
	s.drain(sink, state)
	return true
}
