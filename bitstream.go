package qimdwt

// bitReader provides bit-level reading from a byte buffer.
// Bits are read in MSB-first order (most significant bit first).
type bitReader struct {
	data   []byte
	pos    int  // byte position
	bitPos uint // bit position within current byte (0-7)
}

// newBitReader creates a bit reader over data.
func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

// ReadBit reads a single bit, MSB first. Returns ErrFrame at end of
// data.
func (r *bitReader) ReadBit() (int, error) {
	if r.pos >= len(r.data) {
		return 0, ErrFrame
	}
	bit := int((r.data[r.pos] >> (7 - r.bitPos)) & 1)
	r.bitPos++
	if r.bitPos == 8 {
		r.bitPos = 0
		r.pos++
	}
	return bit, nil
}

// Remaining returns the number of unread bits.
func (r *bitReader) Remaining() int {
	return (len(r.data)-r.pos)*8 - int(r.bitPos)
}

// bitWriter assembles a byte buffer from bits written MSB-first.
type bitWriter struct {
	buf     []byte
	curByte byte
	bitPos  uint // number of bits written in current byte (0-7)
}

// newBitWriter creates an empty bit writer.
func newBitWriter() *bitWriter {
	return &bitWriter{}
}

// WriteBit appends a single bit (0 or 1), MSB first.
func (w *bitWriter) WriteBit(bit int) {
	if bit != 0 {
		w.curByte |= 1 << (7 - w.bitPos)
	}
	w.bitPos++
	if w.bitPos == 8 {
		w.buf = append(w.buf, w.curByte)
		w.curByte = 0
		w.bitPos = 0
	}
}

// Bytes returns the completed bytes. Any partial trailing byte is
// padded with zero bits, matching the zero-padding the bit packing
// convention uses on the embed side.
func (w *bitWriter) Bytes() []byte {
	for w.bitPos != 0 {
		w.WriteBit(0)
	}
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}

// Len returns the current length in bits.
func (w *bitWriter) Len() int {
	return len(w.buf)*8 + int(w.bitPos)
}
