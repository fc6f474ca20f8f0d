package core

// SampleSource reads the current logic level of the monitored line.
// Implementations must be non-blocking and callable from the sampling
// context; a read is defined to always succeed.
type SampleSource interface {
	ReadLevel() bool
}

// ByteSink transmits one byte toward the host. WriteByte must be a
// bounded-time operation from the sampler's point of view: it fails
// fast instead of waiting when the underlying transport is saturated.
type ByteSink interface {
	WriteByte(b byte) error
}

// Sampler runs the acquisition hot path: one Tick per hardware timer
// period reads a bit, packs it, and forwards completed bytes to the
// sink.
type Sampler struct {
	src    SampleSource
	sink   ByteSink
	packer BitPacker
	state  *State
}

// NewSampler builds a sampler around the given source, sink and shared
// state. All three must outlive the sampler; there is no teardown path
// in steady state.
func NewSampler(src SampleSource, sink ByteSink, state *State) *Sampler {
	return &Sampler{src: src, sink: sink, state: state}
}

// Tick performs exactly one sampling step. It never blocks, never
// retries and never loops: on a write failure the completed byte is
// dropped, the sticky error flag is raised and the sample counter is
// left untouched. Retrying here would blow the tick budget and cause
// the very overrun the monitor watches for.
func (s *Sampler) Tick() {
	b, ok := s.packer.Push(s.src.ReadLevel())
	if !ok {
		return
	}

	if err := s.sink.WriteByte(b); err != nil {
		s.state.SetIOError()
		return
	}
	s.state.AddSamplesSent(8)
}
