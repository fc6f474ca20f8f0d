package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Amplitude selects the unsigned PCM mapping used when streaming.
type Amplitude int

const (
	// Full maps low samples to 0 and high samples to 255.
	Full Amplitude = iota
	// Half maps low samples to 127, halving the playback volume.
	Half
)

// ParseAmplitude converts a CLI string into an Amplitude.
func ParseAmplitude(s string) (Amplitude, error) {
	switch s {
	case "full":
		return Full, nil
	case "half":
		return Half, nil
	}
	return Full, fmt.Errorf("unknown wave amplitude %q (want full or half)", s)
}

// StreamPCM reads the packed byte stream from in and writes decoded
// unsigned 8-bit PCM to out until ctx is cancelled or the stream ends.
// Piping out into any raw-PCM player (pacat, aplay, ffplay) gives live
// playback of the monitored line.
func StreamPCM(ctx context.Context, in io.Reader, out io.Writer, rate int, amp Amplitude) error {
	decode := DecodeFullRange
	if amp == Half {
		decode = DecodeHalfRange
	}

	// Hold roughly 50 ms of data per write so playback latency stays
	// low, with a floor for very slow rates.
	bufSize := rate / (8 * 20)
	if bufSize < 32 {
		bufSize = 32
	}

	buf := make([]byte, bufSize)
	pcm := make([]byte, 0, bufSize*8)

	total := uint64(0)
	for ctx.Err() == nil {
		n, rerr := in.Read(buf)
		if n > 0 {
			pcm = pcm[:0]
			for _, b := range buf[:n] {
				s := decode(b)
				pcm = append(pcm, s[:]...)
			}
			if _, werr := out.Write(pcm); werr != nil {
				return fmt.Errorf("failed to write PCM: %w", werr)
			}
			total += uint64(n) * 8
			printProgress(total, rate)
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			return fmt.Errorf("failed to read sample stream: %w", rerr)
		}
	}

	fmt.Fprintln(os.Stderr)
	return nil
}
