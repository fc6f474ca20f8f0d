// Package stream turns the firmware's packed byte stream back into
// per-tick samples and feeds them to audio-style outputs (WAV capture,
// raw PCM). Each byte carries 8 samples, most significant bit first,
// matching the firmware's packing order.
package stream

// Levels expands one received byte into its 8 logic levels in temporal
// order (bit 7 was sampled first).
func Levels(b byte) [8]bool {
	var out [8]bool
	for i := 0; i < 8; i++ {
		out[i] = (b>>(7-i))&1 != 0
	}
	return out
}

// PCMSigned maps a logic level to a signed 8-bit PCM sample.
func PCMSigned(level bool) int8 {
	if level {
		return 127
	}
	return -128
}

// PCMFullRange maps a logic level to an unsigned 8-bit PCM sample using
// the full amplitude range.
func PCMFullRange(level bool) uint8 {
	if level {
		return 255
	}
	return 0
}

// PCMHalfRange maps a logic level to an unsigned 8-bit PCM sample using
// the upper half of the range, for quieter playback.
func PCMHalfRange(level bool) uint8 {
	if level {
		return 255
	}
	return 127
}

// DecodeFullRange expands one byte into 8 full-range unsigned PCM
// samples.
func DecodeFullRange(b byte) [8]uint8 {
	var out [8]uint8
	for i, level := range Levels(b) {
		out[i] = PCMFullRange(level)
	}
	return out
}

// DecodeHalfRange expands one byte into 8 half-range unsigned PCM
// samples.
func DecodeHalfRange(b byte) [8]uint8 {
	var out [8]uint8
	for i, level := range Levels(b) {
		out[i] = PCMHalfRange(level)
	}
	return out
}
