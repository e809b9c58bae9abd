package qimdwt

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy/contrib/wavelet"
)

// DefaultLevels is the protocol decomposition depth.
const DefaultLevels = 2

// BandSet holds a multi-level CDF 9/7 decomposition of one grayscale
// plane, in the usual in-place Mallat layout: at each level the
// working region splits into [LL, HL; LH, HH], and the next level
// decomposes the LL quadrant. A BandSet is owned by at most one
// embedding or extraction session at a time.
type BandSet struct {
	coeffs [][]float64
	width  int
	height int
	levels int
}

// levelDim returns the size of one axis after level halvings,
// rounding up (the low-pass half keeps the extra sample).
func levelDim(n, level int) int {
	return (n + (1 << level) - 1) >> level
}

// Decompose performs a levels-deep forward 9/7 wavelet transform of
// pixels. The input is copied; the returned band set shares no data
// with the caller's grid. Band shapes depend only on the image
// dimensions, never on sample values, so decomposing a cover and its
// reconstructed stego counterpart yields identically shaped sets.
//
// Per JPEG2000 convention the forward transform applies vertical
// analysis first (columns), then horizontal (rows).
func Decompose(pixels [][]float64, levels int) (*BandSet, error) {
	height := len(pixels)
	if height == 0 || len(pixels[0]) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrConfiguration)
	}
	width := len(pixels[0])
	for _, row := range pixels {
		if len(row) != width {
			return nil, fmt.Errorf("%w: ragged pixel grid", ErrConfiguration)
		}
	}
	if levels < 1 {
		return nil, fmt.Errorf("%w: levels %d", ErrConfiguration, levels)
	}
	if levelDim(min(width, height), levels-1) < 2 {
		return nil, fmt.Errorf("%w: %d levels too deep for %dx%d image",
			ErrConfiguration, levels, width, height)
	}

	coeffs := make([][]float64, height)
	for y := range height {
		coeffs[y] = append([]float64(nil), pixels[y]...)
	}

	col := make([]float64, height)
	for level := 1; level <= levels; level++ {
		lw := levelDim(width, level-1)
		lh := levelDim(height, level-1)

		// Vertical analysis first (process columns)
		for x := range lw {
			for y := range lh {
				col[y] = coeffs[y][x]
			}
			wavelet.Analyze97(col[:lh], 0)
			for y := range lh {
				coeffs[y][x] = col[y]
			}
		}

		// Horizontal analysis second (process rows)
		for y := range lh {
			wavelet.Analyze97(coeffs[y][:lw], 0)
		}
	}

	return &BandSet{coeffs: coeffs, width: width, height: height, levels: levels}, nil
}

// Width returns the pixel width of the decomposed plane.
func (b *BandSet) Width() int { return b.width }

// Height returns the pixel height of the decomposed plane.
func (b *BandSet) Height() int { return b.height }

// Levels returns the decomposition depth.
func (b *BandSet) Levels() int { return b.levels }

// Reconstruct runs the inverse 9/7 transform and returns the pixel
// grid. The band set itself is left untouched, so it remains usable
// for inspection after reconstruction. Reconstruction is approximate:
// unmodified coefficients round-trip to floating tolerance, while
// re-decomposing the result perturbs embedded coefficients slightly.
func (b *BandSet) Reconstruct() [][]float64 {
	out := make([][]float64, b.height)
	for y := range b.height {
		out[y] = append([]float64(nil), b.coeffs[y]...)
	}

	col := make([]float64, b.height)
	for level := b.levels; level >= 1; level-- {
		lw := levelDim(b.width, level-1)
		lh := levelDim(b.height, level-1)

		// Horizontal synthesis first (process rows), undoing the last
		// forward step
		for y := range lh {
			wavelet.Synthesize97(out[y][:lw], 0)
		}

		// Vertical synthesis second (process columns)
		for x := range lw {
			for y := range lh {
				col[y] = out[y][x]
			}
			wavelet.Synthesize97(col[:lh], 0)
			for y := range lh {
				out[y][x] = col[y]
			}
		}
	}

	return out
}

// DetailBands returns the high-frequency sub-bands in the protocol
// embedding order: finest level first, HH then HL then LH within each
// level (HH1, HL1, LH1, HH2, ...). The bands are views into the
// decomposition, so coefficients written through them are picked up by
// Reconstruct.
func (b *BandSet) DetailBands() []Band {
	bands := make([]Band, 0, 3*b.levels)
	for level := 1; level <= b.levels; level++ {
		lw := levelDim(b.width, level-1)
		lh := levelDim(b.height, level-1)
		snH := (lw + 1) / 2
		snV := (lh + 1) / 2
		bands = append(bands,
			b.view(fmt.Sprintf("HH%d", level), snV, lh, snH, lw),
			b.view(fmt.Sprintf("HL%d", level), 0, snV, snH, lw),
			b.view(fmt.Sprintf("LH%d", level), snV, lh, 0, snH),
		)
	}
	return bands
}

// view builds a Band whose rows alias the backing coefficient array.
func (b *BandSet) view(name string, row0, row1, col0, col1 int) Band {
	data := make([][]float64, row1-row0)
	for r := range data {
		data[r] = b.coeffs[row0+r][col0:col1:col1]
	}
	return Band{Name: name, Data: data}
}
