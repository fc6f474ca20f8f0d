package sim

import (
	"bytes"
	"context"
	"testing"
	"time"

	"sigreader/core"
)

func TestSquareWave(t *testing.T) {
	// 8 samples per period: 4 high, 4 low.
	w := &SquareWave{Rate: 8000, Tone: 1000}

	var got []bool
	for i := 0; i < 16; i++ {
		got = append(got, w.ReadLevel())
	}

	for i, level := range got {
		want := (i/4)%2 == 0
		if level != want {
			t.Errorf("sample %d = %v, want %v", i, level, want)
		}
	}
}

func TestDueTicks(t *testing.T) {
	testCases := []struct {
		elapsed time.Duration
		rate    uint64
		want    uint64
	}{
		{0, 100000, 0},
		{time.Second, 4, 4},
		{2 * time.Second, 4, 8},
		{time.Millisecond, 8000, 8},
		{time.Second, 100000, 100000},
		{125 * time.Microsecond, 8000, 1},
	}

	for _, tc := range testCases {
		if got := DueTicks(tc.elapsed, tc.rate); got != tc.want {
			t.Errorf("DueTicks(%v, %d) = %d, want %d", tc.elapsed, tc.rate, got, tc.want)
		}
	}
}

type countReporter struct {
	reports chan core.Report
}

func (r *countReporter) Report(rep core.Report) {
	select {
	case r.reports <- rep:
	default:
	}
}

func TestRunProducesStream(t *testing.T) {
	var buf bytes.Buffer
	rep := &countReporter{reports: make(chan core.Report, 64)}

	err := Run(context.Background(), Options{
		Rate:            8000,
		Tone:            1000,
		Sink:            &buf,
		MonitorInterval: 10 * time.Millisecond,
		Duration:        100 * time.Millisecond,
		Reporter:        rep,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 8 kHz for 100 ms is 800 samples = 100 bytes.
	if got := buf.Len(); got != 100 {
		t.Errorf("sink received %d bytes, want 100", got)
	}

	// 1 kHz tone at 8 kHz: every byte is 4 high then 4 low bits.
	for i, b := range buf.Bytes() {
		if b != 0xF0 {
			t.Errorf("byte %d = 0x%02X, want 0xF0", i, b)
			break
		}
	}

	if len(rep.reports) == 0 {
		t.Error("monitor produced no reports during the run")
	}
}

func TestRunRejectsZeroRate(t *testing.T) {
	if err := Run(context.Background(), Options{Sink: &bytes.Buffer{}}); err == nil {
		t.Error("Run with zero rate did not fail")
	}
}
