package qimdwt

import (
	"fmt"
	"image"
)

// sessionPhase tracks the two-phase embedding/extraction protocol.
// The payload phase must not begin until the header phase has fully
// completed and the adaptive step is known; that ordering is part of
// the protocol, not an optimization.
type sessionPhase int

const (
	phaseInit sessionPhase = iota
	phaseHeader
	phasePayload
	phaseDone
)

// embedSession is single-use state for one embedding pass: the
// selector cursor, the step policy and the current phase. Sessions are
// created per band set and never reused or shared.
type embedSession struct {
	sel    *Selector
	policy stepPolicy
	phase  sessionPhase
}

// EmbedPayload hides payload in the coefficients addressed by sel,
// mutating the selector's bands in place. The 32-bit length header is
// embedded first with the fixed header step; the payload bits follow
// with the step the adaptive policy assigns to this payload length.
// Fails with ErrCapacityExceeded, before any coefficient is touched,
// if the framed payload does not fit.
func EmbedPayload(sel *Selector, payload []byte) error {
	s := &embedSession{sel: sel, policy: defaultStepPolicy}
	return s.run(payload)
}

func (s *embedSession) run(payload []byte) error {
	if len(payload) > MaxPayloadBytes {
		return fmt.Errorf("%w: %d bytes, protocol maximum is %d",
			ErrCapacityExceeded, len(payload), MaxPayloadBytes)
	}
	need := frameBits(len(payload))
	if avail := s.sel.CapacityBits(); need > avail {
		return fmt.Errorf("%w: need %d bits, %d available", ErrCapacityExceeded, need, avail)
	}

	bits := newBitReader(frame(payload))
	it := s.sel.iter()

	s.phase = phaseHeader
	for range headerBits {
		s.writeBit(bits, it, headerStep)
	}

	s.phase = phasePayload
	q := s.policy.stepFor(len(payload))
	for bits.Remaining() > 0 {
		s.writeBit(bits, it, q)
	}

	s.phase = phaseDone
	return nil
}

// writeBit embeds the next frame bit into the next selector position.
// The capacity gate in run guarantees both streams are long enough.
func (s *embedSession) writeBit(bits *bitReader, it *positionIter, q float64) {
	bit, _ := bits.ReadBit()
	band, row, col, _ := it.Next()
	band.Data[row][col] = embedBit(band.Data[row][col], bit, q)
}

// Embed hides payload in a cover image using the protocol defaults:
// grayscale conversion, a 2-level 9/7 decomposition, the standard
// detail-band order and margins. Returns the reconstructed stego image.
//
// The returned image quantizes pixels to 8 bits, which is part of the
// noisy channel the extractor must tolerate; callers needing an exact
// coefficient round trip should work at the BandSet level.
func Embed(img image.Image, payload []byte) (*image.Gray, error) {
	set, err := Decompose(grayPixels(img), DefaultLevels)
	if err != nil {
		return nil, err
	}
	sel, err := NewSelector(set.DetailBands(), DefaultRowSkip, DefaultColSkip)
	if err != nil {
		return nil, err
	}
	if err := EmbedPayload(sel, payload); err != nil {
		return nil, err
	}
	return grayImage(set.Reconstruct()), nil
}
