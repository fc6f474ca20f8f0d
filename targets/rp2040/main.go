//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"sigreader/core"
)

// Sampling rate in Hz. Check that it isn't big enough to overload the
// serial line: the sample flow is rate/8 bytes per second against a
// line capacity of baud/10.
const (
	samplingRate = 100000
	uartBaudRate = 128000

	monitorCycle = 500 * time.Millisecond
)

var (
	samplePin    = machine.GPIO14
	statusLEDPin = machine.GPIO16

	uart = machine.UART0
)

func main() {
	println("signal reader starting...")

	// Monitored line: input with pull-up, so an open line reads high.
	samplePin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	err := uart.Configure(machine.UARTConfig{
		BaudRate: uartBaudRate,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	if err != nil {
		println("uart configure failed:", err.Error())
		return
	}

	initStatusLED()

	state := &core.State{}
	sink := &uartSink{uart: uart}

	monitor := core.NewMonitor(state, core.NewSystemClock(), samplingRate, monitorCycle, consoleReporter{})

	// Baseline is captured at arm time, immediately before the first
	// tick can fire.
	monitor.Start()
	stop := make(chan struct{}) // no shutdown path; runs until reset
	go monitor.Run(stop)

	println("everything initiated!")

	if !runPIOSampler(samplePin, sink, state) {
		println("pio sampler unavailable; using software-paced sampler")
		runPacedSampler(samplePin, sink, state)
	}
}

// consoleReporter prints monitor reports on the debug console and
// mirrors the condition on the status LED. It runs in the monitor
// goroutine, never in the sampling path.
type consoleReporter struct{}

func (consoleReporter) Report(r core.Report) {
	if r.FatalIOError {
		println("FATAL! I/O error on data UART")
	}
	if r.Overrun {
		println("can't keep up! reduce the sampling rate or increase the baud rate")
	}
	println("record duration:", r.ElapsedSeconds, "second(s); samples sent:", r.TotalSamplesSent)

	setStatusLED(r)
}
