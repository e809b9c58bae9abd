package qimdwt

import "math"

// headerStep is the fixed quantization step (Q0) for the 32-bit length
// header. The header must decode before the payload length is known,
// so its step can never be adaptive.
const headerStep = 4.0

// MaxPayloadBytes bounds the length a decoded header may claim.
// Lengths above it are treated as corruption regardless of image
// geometry.
const MaxPayloadBytes = 1 << 24

// embedBit forces the quantization level of c to the parity of bit and
// returns the re-quantized coefficient.
//
//	level = round(c / Q)
//	level++ if parity differs
//	result = level * Q
//
// The fix-up always increments, never decrements, so the perturbation
// is deterministic and bounded to [0, Q). Every finite input is legal;
// there is no error path.
func embedBit(c float64, bit int, q float64) float64 {
	level := int64(math.Round(c / q))
	if level&1 != int64(bit) {
		level++
	}
	return float64(level) * q
}

// extractBit recovers the bit embedded in c as the parity of its
// quantization level. Exactly inverts embedBit when c is unperturbed;
// under transform noise the decode degrades statistically as the
// perturbation magnitude approaches Q/2.
func extractBit(c float64, q float64) int {
	return int(int64(math.Round(c/q)) & 1)
}

// stepRange maps payload lengths up to MaxBytes (inclusive) to a
// quantization step.
type stepRange struct {
	maxBytes int
	step     float64
}

// stepPolicy is an ordered step table: thresholds strictly increasing,
// steps non-decreasing. Small payloads get a fine step for fidelity;
// large payloads get a coarse step so the bit-error rate stays low
// over the many perturbed coefficients. The table is a protocol
// constant: extraction reproduces the step from the decoded length
// alone, so the policy cannot vary per call.
type stepPolicy []stepRange

// stepFor returns the quantization step for a payload of n bytes.
// Lengths beyond the last threshold use the last (coarsest) step.
func (p stepPolicy) stepFor(n int) float64 {
	for _, r := range p {
		if n <= r.maxBytes {
			return r.step
		}
	}
	return p[len(p)-1].step
}

// defaultStepPolicy is the protocol step table. The break points come
// from PSNR/robustness measurements on the reference corpus: payloads
// under ~2 KB keep the header step, mid-size payloads need Q=6 and
// anything larger Q=7 to stay under 1% raw bit errors after the
// transform round trip.
var defaultStepPolicy = stepPolicy{
	{2000, 4.0},
	{5000, 6.0},
	{MaxPayloadBytes, 7.0},
}
