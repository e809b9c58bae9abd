package qimdwt

import "math"

// PSNR returns the peak signal-to-noise ratio in decibels between two
// equally shaped sample grids, assuming an 8-bit peak of 255. Returns
// +Inf when the grids are identical. Embedding distortion shows up
// here directly: a coarser quantization step lowers the PSNR of the
// stego image against its cover.
func PSNR(a, b [][]float64) float64 {
	var sum float64
	var n int
	for y := range a {
		for x := range a[y] {
			d := a[y][x] - b[y][x]
			sum += d * d
			n++
		}
	}
	if n == 0 || sum == 0 {
		return math.Inf(1)
	}
	mse := sum / float64(n)
	return 10 * math.Log10(255.0*255.0/mse)
}
