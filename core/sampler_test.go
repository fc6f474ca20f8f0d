package core

import (
	"errors"
	"testing"
)

// scriptedSource replays a fixed bit sequence, then holds the last
// level.
type scriptedSource struct {
	bits []bool
	pos  int
}

func (s *scriptedSource) ReadLevel() bool {
	if s.pos >= len(s.bits) {
		if len(s.bits) == 0 {
			return false
		}
		return s.bits[len(s.bits)-1]
	}
	bit := s.bits[s.pos]
	s.pos++
	return bit
}

// recordingSink captures written bytes and can be made to fail.
type recordingSink struct {
	bytes []byte
	fail  bool
}

var errSinkDown = errors.New("sink down")

func (s *recordingSink) WriteByte(b byte) error {
	if s.fail {
		return errSinkDown
	}
	s.bytes = append(s.bytes, b)
	return nil
}

func TestSamplerEndToEnd(t *testing.T) {
	src := &scriptedSource{bits: bitsOf("10110010")}
	sink := &recordingSink{}
	state := &State{}
	s := NewSampler(src, sink, state)

	for i := 0; i < 8; i++ {
		s.Tick()
	}

	if len(sink.bytes) != 1 || sink.bytes[0] != 0xB2 {
		t.Fatalf("sink received %v, want [0xB2]", sink.bytes)
	}
	if got := state.SamplesSent(); got != 8 {
		t.Errorf("SamplesSent = %d, want 8", got)
	}
	if state.TakeIOError() {
		t.Error("I/O error flag set on clean run")
	}
}

func TestSamplerWriteFailure(t *testing.T) {
	src := &scriptedSource{bits: bitsOf("10110010")}
	sink := &recordingSink{fail: true}
	state := &State{}
	s := NewSampler(src, sink, state)

	for i := 0; i < 8; i++ {
		s.Tick()
	}

	if got := state.SamplesSent(); got != 0 {
		t.Errorf("SamplesSent = %d after failed write, want 0", got)
	}
	if !state.TakeIOError() {
		t.Error("I/O error flag not set after failed write")
	}
	// The byte is dropped for good: recovery must not replay it.
	sink.fail = false
	for i := 0; i < 8; i++ {
		s.Tick()
	}
	if len(sink.bytes) != 1 {
		t.Fatalf("sink received %d bytes after recovery, want 1", len(sink.bytes))
	}
	if got := state.SamplesSent(); got != 8 {
		t.Errorf("SamplesSent = %d after recovery, want 8", got)
	}
}

func TestSamplerByteRate(t *testing.T) {
	src := &scriptedSource{}
	sink := &recordingSink{}
	state := &State{}
	s := NewSampler(src, sink, state)

	const ticks = 1000
	for i := 0; i < ticks; i++ {
		s.Tick()
	}

	if len(sink.bytes) != ticks/8 {
		t.Errorf("sink received %d bytes over %d ticks, want %d", len(sink.bytes), ticks, ticks/8)
	}
	if got := state.SamplesSent(); got != uint64(ticks/8*8) {
		t.Errorf("SamplesSent = %d, want %d", got, ticks/8*8)
	}
}

func TestSamplesSentMonotonic(t *testing.T) {
	src := &scriptedSource{bits: bitsOf("1100")}
	sink := &recordingSink{}
	state := &State{}
	s := NewSampler(src, sink, state)

	prev := uint64(0)
	for i := 0; i < 200; i++ {
		// Alternate sink health to mix successful and dropped bytes.
		sink.fail = i%3 == 0
		s.Tick()
		cur := state.SamplesSent()
		if cur < prev {
			t.Fatalf("SamplesSent decreased: %d -> %d at tick %d", prev, cur, i)
		}
		prev = cur
	}
}

func TestStateTakeIOErrorEdge(t *testing.T) {
	state := &State{}

	if state.TakeIOError() {
		t.Error("flag reads set before any failure")
	}
	state.SetIOError()
	state.SetIOError() // coalesces with the first
	if !state.TakeIOError() {
		t.Error("flag not observed after failures")
	}
	if state.TakeIOError() {
		t.Error("flag observed twice for one episode")
	}
}
