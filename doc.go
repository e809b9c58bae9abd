// Package qimdwt implements adaptive QIM (quantization index modulation)
// steganography over wavelet coefficients.
//
// A payload is hidden by forcing the quantization level of selected
// high-frequency DWT coefficients to a chosen parity, one bit per
// coefficient. A 32-bit big-endian length header embedded with a fixed
// quantization step bootstraps extraction: the decoded length selects the
// adaptive step used for the payload bits, so the extractor needs no
// side channel.
//
// Embedding:
//
//	stego, err := qimdwt.Embed(cover, []byte("secret"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	qimdwt.EncodePNG(f, stego)
//
// Extraction:
//
//	payload, err := qimdwt.Extract(stego)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The stego image must be persisted in a lossless raster format (PNG or
// BMP). Lossy re-encoding destroys the embedded quantization structure.
// Reliability through the full image round trip is statistical, not
// exact: the inverse+forward wavelet transform and pixel rounding
// perturb every coefficient, and bit errors appear once the
// perturbation approaches half the quantization step. The adaptive step
// policy trades image fidelity against that noise margin as payloads
// grow.
package qimdwt
