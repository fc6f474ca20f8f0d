package core

// BitPacker accumulates single-bit samples into bytes, most significant
// bit first: the first bit pushed after a reset ends up in bit 7 of the
// emitted byte.
type BitPacker struct {
	acc   uint8
	nbits uint8
}

// Push shifts one sample into the accumulator. When the 8th bit arrives
// it returns the completed byte with ok=true and resets the packer;
// otherwise ok is false and the returned byte is meaningless.
func (p *BitPacker) Push(bit bool) (b byte, ok bool) {
	p.acc <<= 1
	if bit {
		p.acc |= 1
	}
	p.nbits++

	if p.nbits < 8 {
		return 0, false
	}

	b = p.acc
	p.acc = 0
	p.nbits = 0
	return b, true
}

// Pending returns the number of bits buffered toward the next byte,
// always in [0,8).
func (p *BitPacker) Pending() int {
	return int(p.nbits)
}
