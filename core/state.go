package core

import "sync/atomic"

// State holds the only data shared between the sampling context and the
// monitor context. SamplesSent has a single writer (the sampler) and a
// single reader (the monitor). The I/O error flag has a single setter
// (the sampler) and a single clearer (the monitor); a failure landing in
// the same window as a clear is picked up on the next monitor cycle, so
// episodes coalesce but are never lost.
type State struct {
	samplesSent uint64
	ioError     uint32
}

// AddSamplesSent credits n delivered bit-samples. Called only from the
// sampling context, in units of 8.
func (s *State) AddSamplesSent(n uint64) {
	atomic.AddUint64(&s.samplesSent, n)
}

// SamplesSent returns the total bit-samples delivered to the sink so
// far. The atomic load keeps the 64-bit read tear-free on 32-bit
// targets.
func (s *State) SamplesSent() uint64 {
	return atomic.LoadUint64(&s.samplesSent)
}

// SetIOError marks a sink write failure. Sticky until taken.
func (s *State) SetIOError() {
	atomic.StoreUint32(&s.ioError, 1)
}

// TakeIOError reports whether a write failure occurred since the last
// call, clearing the flag in the same atomic step so each failure
// episode is reported exactly once.
func (s *State) TakeIOError() bool {
	return atomic.CompareAndSwapUint32(&s.ioError, 1, 0)
}
