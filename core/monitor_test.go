package core

import (
	"testing"
	"time"
)

type fakeClock struct {
	us int64
}

func (c *fakeClock) NowMicros() int64 { return c.us }

func (c *fakeClock) advance(d time.Duration) { c.us += d.Microseconds() }

type captureReporter struct {
	reports []Report
}

func (r *captureReporter) Report(rep Report) { r.reports = append(r.reports, rep) }

func TestMonitorOverrunDetection(t *testing.T) {
	state := &State{}
	clock := &fakeClock{}
	m := NewMonitor(state, clock, 4, time.Second, nil)
	m.Start()

	// 4 Hz, one byte delivered, 2 seconds elapsed: exactly on pace.
	state.AddSamplesSent(8)
	clock.advance(2 * time.Second)

	r := m.Cycle()
	if r.Overrun {
		t.Error("overrun reported with actual == expected")
	}
	if r.ExpectedSamples != 8 || r.TotalSamplesSent != 8 {
		t.Errorf("expected/actual = %d/%d, want 8/8", r.ExpectedSamples, r.TotalSamplesSent)
	}
	if r.ElapsedSeconds != 2 {
		t.Errorf("ElapsedSeconds = %d, want 2", r.ElapsedSeconds)
	}

	// Sampler stalls for a second: 4 more expected, none delivered.
	clock.advance(time.Second)
	if r := m.Cycle(); !r.Overrun {
		t.Error("overrun not reported while sampler lags")
	}

	// Sampler catches up past the bound.
	state.AddSamplesSent(8)
	if r := m.Cycle(); r.Overrun {
		t.Errorf("overrun still reported after catch-up (expected %d, actual %d)",
			r.ExpectedSamples, r.TotalSamplesSent)
	}
}

func TestMonitorIOErrorReportedOnce(t *testing.T) {
	state := &State{}
	clock := &fakeClock{}
	m := NewMonitor(state, clock, 4, time.Second, nil)
	m.Start()

	state.SetIOError()

	if r := m.Cycle(); !r.FatalIOError {
		t.Error("first cycle after failure did not report it")
	}
	if r := m.Cycle(); r.FatalIOError {
		t.Error("failure reported on a second cycle with no new episode")
	}

	// A new episode is reported again.
	state.SetIOError()
	if r := m.Cycle(); !r.FatalIOError {
		t.Error("second episode not reported")
	}
}

func TestMonitorBaseline(t *testing.T) {
	state := &State{}
	clock := &fakeClock{us: 5_000_000}
	m := NewMonitor(state, clock, 100, time.Second, nil)
	m.Start()

	// No time has passed since arming: nothing expected yet.
	r := m.Cycle()
	if r.ExpectedSamples != 0 || r.Overrun {
		t.Errorf("fresh monitor: expected=%d overrun=%v, want 0/false", r.ExpectedSamples, r.Overrun)
	}
}

func TestMonitorRunStops(t *testing.T) {
	state := &State{}
	rep := &captureReporter{}
	m := NewMonitor(state, NewSystemClock(), 100, time.Millisecond, rep)
	m.Start()

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		m.Run(stop)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	close(stop)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor loop did not stop")
	}
	if len(rep.reports) == 0 {
		t.Error("monitor produced no reports while running")
	}
}
