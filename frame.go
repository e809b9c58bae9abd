package qimdwt

import (
	"encoding/binary"
	"fmt"
)

// headerBits is the size of the length header: one big-endian uint32.
const headerBits = 32

// frameBits returns the total embedded bit count for a payload of n
// bytes: the 32-bit header plus the payload itself.
func frameBits(n int) int {
	return headerBits + 8*n
}

// frame prepends the 4-byte big-endian length header to payload. The
// payload bytes follow verbatim; no further encoding is applied.
func frame(payload []byte) []byte {
	out := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(out, uint32(len(payload)))
	copy(out[4:], payload)
	return out
}

// unframe parses a framed byte stream: the declared length is read
// from the first 4 bytes, and exactly that many payload bytes must
// follow. Returns ErrFrame when the stream is too short for either
// the header or the declared payload.
func unframe(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %d bytes, need at least 4", ErrFrame, len(data))
	}
	length := int(binary.BigEndian.Uint32(data))
	if len(data)-4 < length {
		return nil, fmt.Errorf("%w: header declares %d payload bytes, %d present",
			ErrFrame, length, len(data)-4)
	}
	return data[4 : 4+length], nil
}
