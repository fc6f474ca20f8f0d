// Package sim runs the acquisition core on the host at a real rate
// against a synthetic waveform, for exercising the pipeline without a
// device attached.
package sim

import "io"

// SquareWave is a core.SampleSource producing a square wave of Tone Hz
// as seen by a sampler running at Rate Hz. Each ReadLevel call is one
// sampling tick.
type SquareWave struct {
	Rate uint64 // sampling rate in Hz
	Tone uint64 // waveform frequency in Hz

	tick uint64
}

// ReadLevel returns the waveform level at the current tick and
// advances.
func (w *SquareWave) ReadLevel() bool {
	halfPeriod := w.Rate / (2 * w.Tone)
	if halfPeriod == 0 {
		halfPeriod = 1
	}
	level := (w.tick/halfPeriod)%2 == 0
	w.tick++
	return level
}

// writerSink adapts an io.Writer into a core.ByteSink.
type writerSink struct {
	w io.Writer
}

func (s *writerSink) WriteByte(b byte) error {
	_, err := s.w.Write([]byte{b})
	return err
}
