package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"

	"sigreader/core"
)

// Options configures a simulation run.
type Options struct {
	// Rate is the sampling rate in Hz.
	Rate uint64
	// Tone is the synthetic square wave frequency in Hz.
	Tone uint64
	// Sink receives the packed byte stream (serial port, file, pipe).
	Sink io.Writer
	// MonitorInterval is the monitor cycle period.
	MonitorInterval time.Duration
	// Duration bounds the run; zero means run until ctx is cancelled.
	Duration time.Duration
	// Reporter receives monitor reports; nil selects glog output.
	Reporter core.Reporter
}

// GlogReporter logs monitor reports through glog, mirroring what the
// firmware prints on its debug console.
type GlogReporter struct{}

func (GlogReporter) Report(r core.Report) {
	if r.FatalIOError {
		glog.Error("FATAL! I/O error on byte sink")
	}
	if r.Overrun {
		glog.Errorf("can't keep up: %d samples sent, %d expected; reduce the sampling rate or speed up the sink",
			r.TotalSamplesSent, r.ExpectedSamples)
	}
	glog.Infof("record duration: %d second(s); samples sent: %d", r.ElapsedSeconds, r.TotalSamplesSent)
}

// Run drives the acquisition core at opts.Rate against a square wave
// source until the duration elapses or ctx is cancelled. The host has
// no hardware timer, so pacing is wall-clock catch-up: every wakeup
// runs however many ticks have fallen due, preserving the one-bit-per-
// tick contract while tolerating scheduler jitter.
func Run(ctx context.Context, opts Options) error {
	if opts.Rate == 0 {
		return fmt.Errorf("sampling rate must be positive")
	}
	if opts.Tone == 0 {
		opts.Tone = 440
	}
	if opts.MonitorInterval == 0 {
		opts.MonitorInterval = 500 * time.Millisecond
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = GlogReporter{}
	}

	state := &core.State{}
	src := &SquareWave{Rate: opts.Rate, Tone: opts.Tone}
	sampler := core.NewSampler(src, &writerSink{w: opts.Sink}, state)

	monitor := core.NewMonitor(state, core.NewSystemClock(), opts.Rate, opts.MonitorInterval, reporter)
	monitor.Start()

	stop := make(chan struct{})
	defer close(stop)
	go monitor.Run(stop)

	glog.V(1).Infof("simulating %d Hz acquisition of a %d Hz square wave", opts.Rate, opts.Tone)

	start := time.Now()
	ticked := uint64(0)
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			elapsed := now.Sub(start)
			if opts.Duration > 0 && elapsed >= opts.Duration {
				elapsed = opts.Duration
			}
			for due := DueTicks(elapsed, opts.Rate); ticked < due; ticked++ {
				sampler.Tick()
			}
			if opts.Duration > 0 && now.Sub(start) >= opts.Duration {
				return nil
			}
		}
	}
}

// DueTicks returns how many sampling ticks fall within elapsed at the
// given rate.
func DueTicks(elapsed time.Duration, rate uint64) uint64 {
	if elapsed <= 0 {
		return 0
	}
	return uint64(elapsed) * rate / uint64(time.Second)
}
