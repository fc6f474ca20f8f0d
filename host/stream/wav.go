package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// CaptureWAV reads the packed byte stream from in and appends the
// decoded samples to a mono 8-bit WAV file at the given sampling rate,
// until ctx is cancelled or the stream ends. The file header is
// finalized on the way out, so a Ctrl-C capture is still a valid file.
func CaptureWAV(ctx context.Context, in io.Reader, path string, rate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	enc := wav.NewEncoder(f, rate, 8, 1, 1)
	defer func() {
		if cerr := enc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	// Read roughly a quarter second of data at a time, with a floor
	// so slow rates still make progress.
	bufSize := rate / (8 * 4)
	if bufSize < 1024 {
		bufSize = 1024
	}

	buf := make([]byte, bufSize)
	pcm := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		SourceBitDepth: 8,
	}

	total := uint64(0)
	for ctx.Err() == nil {
		n, rerr := in.Read(buf)
		if n > 0 {
			pcm.Data = pcm.Data[:0]
			for _, b := range buf[:n] {
				for _, s := range DecodeFullRange(b) {
					pcm.Data = append(pcm.Data, int(s))
				}
			}
			if werr := enc.Write(pcm); werr != nil {
				return fmt.Errorf("failed to write samples: %w", werr)
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

// printProgress rewrites the capture status line on stderr.
func printProgress(totalSamples uint64, rate int) {
	fmt.Fprintf(os.Stderr, "Total %d samples read; %.2f seconds of recording...\r",
		totalSamples, float64(totalSamples)/float64(rate))
}
