package core

import "time"

// Report is one monitor cycle's view of acquisition health. Presentation
// (console text, log lines, LEDs) is the Reporter's concern.
type Report struct {
	// FatalIOError is true exactly once per write-failure episode:
	// the cycle that first observes the sticky flag clears it.
	FatalIOError bool
	// Overrun is true while delivered samples lag the count expected
	// for the elapsed time. Recomputed every cycle; purely
	// informational, the monitor never throttles the sampler.
	Overrun bool
	// ElapsedSeconds is wall-clock time since the sampler was armed.
	ElapsedSeconds uint64
	// ExpectedSamples is elapsed * sampling rate.
	ExpectedSamples uint64
	// TotalSamplesSent is the bit-sample count delivered to the sink.
	TotalSamplesSent uint64
}

// Reporter receives one Report per monitor cycle.
type Reporter interface {
	Report(r Report)
}

// Monitor periodically compares elapsed time against delivered samples
// and surfaces overrun and sink-failure conditions. It runs outside the
// sampling context and is the only place allowed to block.
type Monitor struct {
	state    *State
	clock    Clock
	rate     uint64 // sampling rate in Hz
	interval time.Duration
	reporter Reporter

	baseline int64
}

// NewMonitor builds a monitor for the given shared state. rate is the
// configured sampling rate in Hz, interval the cycle period.
func NewMonitor(state *State, clock Clock, rate uint64, interval time.Duration, reporter Reporter) *Monitor {
	return &Monitor{
		state:    state,
		clock:    clock,
		rate:     rate,
		interval: interval,
		reporter: reporter,
	}
}

// Start captures the elapsed-time baseline. Call it at the moment the
// sampling timer is armed, before the first Cycle.
func (m *Monitor) Start() {
	m.baseline = m.clock.NowMicros()
}

// Cycle performs one supervisory pass and returns the resulting report.
// Taking the I/O flag here is what makes failure reporting
// edge-triggered: two failures inside one cycle coalesce, none are
// lost.
func (m *Monitor) Cycle() Report {
	elapsed := m.clock.NowMicros() - m.baseline
	if elapsed < 0 {
		elapsed = 0
	}

	expected := uint64(elapsed) * m.rate / usPerSecond
	actual := m.state.SamplesSent()

	return Report{
		FatalIOError:     m.state.TakeIOError(),
		Overrun:          actual < expected,
		ElapsedSeconds:   uint64(elapsed) / usPerSecond,
		ExpectedSamples:  expected,
		TotalSamplesSent: actual,
	}
}

// Run cycles until stop is closed, sleeping interval between passes and
// handing each report to the reporter. The stop channel exists so tests
// and hosts can terminate the loop; on the device it simply never
// closes.
func (m *Monitor) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.reporter.Report(m.Cycle())
		}
	}
}
