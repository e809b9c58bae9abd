package qimdwt

import (
	"encoding/binary"
	"fmt"
	"image"
)

// extractSession is single-use state for one extraction pass,
// mirroring embedSession. The bands are only read, never written.
type extractSession struct {
	sel    *Selector
	policy stepPolicy
	phase  sessionPhase
}

// ExtractPayload recovers a payload from the coefficients addressed by
// sel. The first 32 positions decode the length header with the fixed
// header step; the decoded length then selects the adaptive step for
// the payload bits, exactly as at embed time. A decoded length that is
// implausible for the protocol or for this image's capacity fails with
// ErrCorruptHeader. Extraction never guesses: a failure is returned as
// a typed error, not as truncated data.
func ExtractPayload(sel *Selector) ([]byte, error) {
	s := &extractSession{sel: sel, policy: defaultStepPolicy}
	return s.run()
}

func (s *extractSession) run() ([]byte, error) {
	avail := s.sel.CapacityBits()
	if avail < headerBits {
		return nil, fmt.Errorf("%w: %d bits available, header needs %d", ErrFrame, avail, headerBits)
	}

	it := s.sel.iter()
	bits := newBitWriter()

	s.phase = phaseHeader
	for range headerBits {
		s.readBit(bits, it, headerStep)
	}
	length := int(binary.BigEndian.Uint32(bits.Bytes()))
	if length > MaxPayloadBytes {
		return nil, fmt.Errorf("%w: length %d exceeds protocol maximum %d",
			ErrCorruptHeader, length, MaxPayloadBytes)
	}
	if need := frameBits(length); need > avail {
		return nil, fmt.Errorf("%w: length %d needs %d bits, %d available",
			ErrCorruptHeader, length, need, avail)
	}

	s.phase = phasePayload
	q := s.policy.stepFor(length)
	for bits.Len() < frameBits(length) {
		s.readBit(bits, it, q)
	}

	s.phase = phaseDone
	return unframe(bits.Bytes())
}

// readBit decodes the bit at the next selector position into the frame
// buffer. The capacity checks in run guarantee the position stream is
// long enough.
func (s *extractSession) readBit(bits *bitWriter, it *positionIter, q float64) {
	band, row, col, _ := it.Next()
	bits.WriteBit(extractBit(band.Data[row][col], q))
}

// Extract recovers a payload from a stego image using the protocol
// defaults, mirroring Embed: grayscale conversion, 2-level 9/7
// decomposition, standard band order and margins.
func Extract(img image.Image) ([]byte, error) {
	set, err := Decompose(grayPixels(img), DefaultLevels)
	if err != nil {
		return nil, err
	}
	sel, err := NewSelector(set.DetailBands(), DefaultRowSkip, DefaultColSkip)
	if err != nil {
		return nil, err
	}
	return ExtractPayload(sel)
}
